package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/effortplan/internal/calendar"
	"github.com/alexanderramin/effortplan/internal/cli/formatter"
	"github.com/alexanderramin/effortplan/internal/domain"
	"github.com/alexanderramin/effortplan/internal/service"
)

// edit applies fn to the working project and saves it.
func (app *App) edit(cmd *cobra.Command, name string, fn func(doc *domain.Document) error) error {
	ctx := cmd.Context()
	if err := app.Workspace.Edit(ctx, name, fn); err != nil {
		return err
	}
	return app.Workspace.Save(ctx)
}

func newSettingsCmd(app *App) *cobra.Command {
	var (
		buffer      float64
		teamSize    int
		holidayDays int
		start       string
	)

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change buffer, team size, holidays and start date",
		Long: `Show or change the settings of an estimation. Plans take buffer and team
size from the defaults section of the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !app.Workspace.Loaded() {
				return service.ErrNoProject
			}
			flags := cmd.Flags()
			changed := flags.Changed("buffer") || flags.Changed("team-size") ||
				flags.Changed("holiday-days") || flags.Changed("start")

			if changed {
				var startDate calendar.Date
				if flags.Changed("start") && start != "" {
					d, err := calendar.ParseDate(start)
					if err != nil {
						return err
					}
					startDate = d
				}
				err := app.edit(cmd, "settings", func(doc *domain.Document) error {
					e, err := estimationOf(doc)
					if err != nil {
						return err
					}
					if flags.Changed("buffer") {
						e.Settings.SetBufferPercentage(buffer)
					}
					if flags.Changed("team-size") {
						e.Settings.SetTeamSize(teamSize)
					}
					if flags.Changed("holiday-days") {
						e.Settings.HolidayDays = max(0, holidayDays)
					}
					if flags.Changed("start") {
						e.Settings.StartDate = startDate
					}
					return nil
				})
				if err != nil {
					return err
				}
			}

			doc := app.Workspace.Document()
			settings := app.Workspace.Settings()
			if doc.Kind == domain.ModelEstimation {
				settings = doc.Estimation.Settings
			} else {
				settings.Holidays = doc.Plan.Holidays
			}
			if app.jsonOut {
				return printJSON(cmd.OutOrStdout(), settings)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSettings(settings))
			return nil
		},
	}

	cmd.Flags().Float64Var(&buffer, "buffer", 0, "Buffer percentage (negative values become 0)")
	cmd.Flags().IntVar(&teamSize, "team-size", 0, "Team size (values below 1 become 1)")
	cmd.Flags().IntVar(&holidayDays, "holiday-days", 0, "Holiday day count used when no holiday dates are listed")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD); empty starts today")
	return cmd
}

func newHolidayCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holiday",
		Short: "Manage holiday dates skipped by the timeline",
	}
	cmd.AddCommand(
		newHolidayChangeCmd(app, "add", "Add holiday dates", true),
		newHolidayChangeCmd(app, "rm", "Remove holiday dates", false),
	)
	return cmd
}

func newHolidayChangeCmd(app *App, use, short string, add bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " DATE...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dates := make([]calendar.Date, 0, len(args))
			for _, a := range args {
				d, err := calendar.ParseDate(a)
				if err != nil {
					return err
				}
				dates = append(dates, d)
			}

			changed := 0
			err := app.edit(cmd, "holiday-"+use, func(doc *domain.Document) error {
				switch doc.Kind {
				case domain.ModelEstimation:
					for _, d := range dates {
						if add && doc.Estimation.Settings.AddHoliday(d) || !add && doc.Estimation.Settings.RemoveHoliday(d) {
							changed++
						}
					}
				case domain.ModelPlan:
					s := domain.Settings{Holidays: doc.Plan.Holidays}
					for _, d := range dates {
						if add && s.AddHoliday(d) || !add && s.RemoveHoliday(d) {
							changed++
						}
					}
					doc.Plan.Holidays = s.Holidays
				}
				if changed == 0 {
					return errors.New("no holidays changed")
				}
				return nil
			})
			if err != nil {
				return err
			}
			verb := "Added"
			if !add {
				verb = "Removed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d holiday(s)\n", verb, changed)
			return nil
		},
	}
}
