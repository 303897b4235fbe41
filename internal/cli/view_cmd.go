package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/effortplan/internal/cli/formatter"
	"github.com/alexanderramin/effortplan/internal/contract"
	"github.com/alexanderramin/effortplan/internal/service"
)

func newEstimateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "estimate",
		Short: "Show effort totals, buffer and duration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := app.Workspace.View(cmd.Context())
			if err != nil {
				return err
			}
			if app.jsonOut {
				return printJSON(cmd.OutOrStdout(), contract.FromView("", v).Totals)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTotals(v.Name, v.Totals))
			return nil
		},
	}
}

func newTimelineCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "timeline",
		Short: "Show the business-day schedule of every leaf",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := app.Workspace.View(cmd.Context())
			if err != nil {
				return err
			}
			if app.jsonOut {
				out := contract.FromView("", v)
				return printJSON(cmd.OutOrStdout(), struct {
					Start    string                   `json:"start"`
					End      string                   `json:"end"`
					Timeline []contract.TimelineEntry `json:"timeline"`
					Spans    []contract.Span          `json:"spans"`
				}{out.Start, out.End, out.Timeline, out.Spans})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTimeline(v.Timeline, teamColors(v)))
			return nil
		},
	}
}

func newSummaryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show counts, per-team schedules and the date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := app.Workspace.View(cmd.Context())
			if err != nil {
				return err
			}
			if app.jsonOut {
				return printJSON(cmd.OutOrStdout(), contract.FromView("", v))
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderSummary(v))
			return nil
		},
	}
}

func renderSummary(v *service.View) string {
	if v.Plan != nil {
		return formatter.FormatPlanSummary(v.Plan)
	}
	return formatter.FormatEstimationSummary(v.Estimation)
}

func teamColors(v *service.View) map[string]string {
	colors := map[string]string{}
	if v.Plan != nil {
		for _, t := range v.Plan.Teams {
			colors[t.Name] = t.Color
		}
	}
	return colors
}
