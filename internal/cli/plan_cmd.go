package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/effortplan/internal/calendar"
	"github.com/alexanderramin/effortplan/internal/domain"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage the top-level tasks of a plan",
	}
	cmd.AddCommand(
		newTaskAddCmd(app, "task", "Add a task", func(p *domain.Plan, _ string, name, desc string) (string, error) {
			return p.AddTask(name, desc).ID, nil
		}),
		newTaskSetCmd(app, "task", func(p *domain.Plan, input string, patch domain.TaskPatch) error {
			t, err := resolve("task", input, taskRefs(p))
			if err != nil {
				return err
			}
			return p.UpdateTask(t.ID, patch)
		}),
		newTaskRmCmd(app, "task", func(p *domain.Plan, input string) error {
			t, err := resolve("task", input, taskRefs(p))
			if err != nil {
				return err
			}
			return p.DeleteTask(t.ID)
		}),
	)
	return cmd
}

func newSubTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subtask",
		Short: "Manage the subtasks of plan tasks",
	}
	cmd.AddCommand(
		newTaskAddCmd(app, "subtask", "Add a subtask to TASK", func(p *domain.Plan, parent, name, desc string) (string, error) {
			t, err := resolve("task", parent, taskRefs(p))
			if err != nil {
				return "", err
			}
			return t.AddSubTask(name, desc).ID, nil
		}),
		newTaskSetCmd(app, "subtask", func(p *domain.Plan, input string, patch domain.TaskPatch) error {
			r, err := resolve("subtask", input, subTaskRefs(p))
			if err != nil {
				return err
			}
			return r.task.UpdateSubTask(r.subTask.ID, patch)
		}),
		newTaskRmCmd(app, "subtask", func(p *domain.Plan, input string) error {
			r, err := resolve("subtask", input, subTaskRefs(p))
			if err != nil {
				return err
			}
			return r.task.DeleteSubTask(r.subTask.ID)
		}),
	)
	return cmd
}

type addFunc func(p *domain.Plan, parent, name, desc string) (string, error)

func newTaskAddCmd(app *App, what, short string, add addFunc) *cobra.Command {
	var desc string

	use := "add NAME"
	args := cobra.ExactArgs(1)
	if what == "subtask" {
		use = "add TASK NAME"
		args = cobra.ExactArgs(2)
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			parent, name := "", args[0]
			if len(args) == 2 {
				parent, name = args[0], args[1]
			}
			var id string
			err := app.edit(cmd, what+"-add", func(doc *domain.Document) error {
				p, err := planOf(doc)
				if err != nil {
					return err
				}
				id, err = add(p, parent, name, desc)
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %q (%s)\n", what, name, id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&desc, "description", "d", "", "Description")
	return cmd
}

// pathHelp explains how ID arguments address elements whose ids repeat
// under different parents.
const pathHelp = `ID is an id, a unique id prefix, or a slash-separated path from the top
task down (t1/s1, t1/s1/a) when the same id appears under several parents.`

func newTaskSetCmd(app *App, what string, update func(*domain.Plan, string, domain.TaskPatch) error) *cobra.Command {
	var (
		name    string
		desc    string
		depends string
	)

	cmd := &cobra.Command{
		Use:   "set ID",
		Short: fmt.Sprintf("Update a %s's name, description or dependencies", what),
		Long:  pathHelp,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch domain.TaskPatch
			flags := cmd.Flags()
			if flags.Changed("name") {
				patch.Name = &name
			}
			if flags.Changed("description") {
				patch.Description = &desc
			}
			if flags.Changed("depends") {
				deps := splitList(depends)
				patch.Dependencies = &deps
			}
			return app.edit(cmd, what+"-update", func(doc *domain.Document) error {
				p, err := planOf(doc)
				if err != nil {
					return err
				}
				return update(p, args[0], patch)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVarP(&desc, "description", "d", "", "New description")
	cmd.Flags().StringVar(&depends, "depends", "", "Comma-separated dependency IDs (stored, not scheduled)")
	return cmd
}

func newTaskRmCmd(app *App, what string, remove func(*domain.Plan, string) error) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   fmt.Sprintf("Remove a %s and everything under it", what),
		Long:    pathHelp,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.edit(cmd, what+"-remove", func(doc *domain.Document) error {
				p, err := planOf(doc)
				if err != nil {
					return err
				}
				return remove(p, args[0])
			})
		},
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func newTeamCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Manage team assignments of plan subtasks",
	}
	cmd.AddCommand(newTeamAddCmd(app), newTeamSetCmd(app), newTeamRmCmd(app))
	return cmd
}

func parseOptionalDate(s string) (calendar.Date, error) {
	if s == "" {
		return calendar.Date{}, nil
	}
	return calendar.ParseDate(s)
}

func newTeamAddCmd(app *App) *cobra.Command {
	var (
		start    string
		effort   float64
		parallel bool
	)

	cmd := &cobra.Command{
		Use:   "add SUBTASK NAME",
		Short: "Assign a team to a subtask",
		Long: `Assign a team to a subtask. Assignments without a start date stay
unscheduled.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := parseOptionalDate(start)
			if err != nil {
				return err
			}
			var id string
			err = app.edit(cmd, "team-add", func(doc *domain.Document) error {
				p, err := planOf(doc)
				if err != nil {
					return err
				}
				r, err := resolve("subtask", args[0], subTaskRefs(p))
				if err != nil {
					return err
				}
				id = r.subTask.AddTeam(args[1], startDate, effort, parallel).ID
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added team %q (%s)\n", args[1], id)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&effort, "effort", 0, "Effort in days (negative values become 0)")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "Runs in parallel with other work")
	return cmd
}

func newTeamSetCmd(app *App) *cobra.Command {
	var (
		name     string
		start    string
		effort   float64
		parallel bool
	)

	cmd := &cobra.Command{
		Use:   "set ID",
		Short: "Update a team assignment",
		Long:  pathHelp,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch domain.TeamPatch
			flags := cmd.Flags()
			if flags.Changed("name") {
				patch.Name = &name
			}
			if flags.Changed("start") {
				d, err := parseOptionalDate(start)
				if err != nil {
					return err
				}
				patch.StartDate = &d
			}
			if flags.Changed("effort") {
				patch.Effort = &effort
			}
			if flags.Changed("parallel") {
				patch.IsParallel = &parallel
			}
			return app.edit(cmd, "team-update", func(doc *domain.Document) error {
				p, err := planOf(doc)
				if err != nil {
					return err
				}
				r, err := resolve("team", args[0], teamRefs(p))
				if err != nil {
					return err
				}
				return r.subTask.UpdateTeam(r.team.ID, patch)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New team name")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD); empty unschedules")
	cmd.Flags().Float64Var(&effort, "effort", 0, "Effort in days (negative values become 0)")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "Runs in parallel with other work")
	return cmd
}

func newTeamRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Remove a team assignment",
		Long:    pathHelp,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.edit(cmd, "team-remove", func(doc *domain.Document) error {
				p, err := planOf(doc)
				if err != nil {
					return err
				}
				r, err := resolve("team", args[0], teamRefs(p))
				if err != nil {
					return err
				}
				return r.subTask.DeleteTeam(r.team.ID)
			})
		},
	}
}
