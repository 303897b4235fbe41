package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/effortplan/internal/domain"
)

func newGroupCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Manage screen and task groups of an estimation",
	}
	cmd.AddCommand(newGroupAddCmd(app), newGroupRenameCmd(app), newGroupRmCmd(app))
	return cmd
}

func newGroupAddCmd(app *App) *cobra.Command {
	var kindFlag string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := domain.ParseGroupKind(kindFlag)
			if err != nil {
				return err
			}
			var id string
			err = app.edit(cmd, "group-add", func(doc *domain.Document) error {
				e, err := estimationOf(doc)
				if err != nil {
					return err
				}
				g, err := e.AddGroup(kind, args[0])
				if err != nil {
					return err
				}
				id = g.ID
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s group %q (%s)\n", kind, args[0], id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&kindFlag, "kind", "k", string(domain.GroupScreen), "Group kind: screen or task")
	return cmd
}

func newGroupRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename ID NAME",
		Short: "Rename a group",
		Long: `Rename a group. ID is a group id, a unique id prefix, or a kind-qualified
path such as task/1 when a screen group and a task group share an id.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.edit(cmd, "group-rename", func(doc *domain.Document) error {
				e, err := estimationOf(doc)
				if err != nil {
					return err
				}
				g, err := resolve("group", args[0], groupRefs(e))
				if err != nil {
					return err
				}
				g.Name = args[1]
				return nil
			})
		},
	}
}

func newGroupRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Remove a group and its items",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.edit(cmd, "group-remove", func(doc *domain.Document) error {
				e, err := estimationOf(doc)
				if err != nil {
					return err
				}
				g, err := resolve("group", args[0], groupRefs(e))
				if err != nil {
					return err
				}
				return e.DeleteGroupIn(g.Kind, g.ID)
			})
		},
	}
}

func newItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage screens and tasks inside estimation groups",
	}
	cmd.AddCommand(newItemAddCmd(app), newItemSetCmd(app), newItemRmCmd(app))
	return cmd
}

// itemPatch collects the item flags the user actually set.
func itemPatch(cmd *cobra.Command, name string, effort float64, complexity string) (domain.ItemPatch, error) {
	var patch domain.ItemPatch
	flags := cmd.Flags()
	if flags.Changed("name") {
		patch.Name = &name
	}
	if flags.Changed("effort") {
		patch.EffortDays = &effort
	}
	if flags.Changed("complexity") {
		c, err := domain.ParseComplexity(complexity)
		if err != nil {
			return patch, err
		}
		patch.Complexity = &c
	}
	return patch, nil
}

func newItemAddCmd(app *App) *cobra.Command {
	var (
		effort     float64
		complexity string
	)

	cmd := &cobra.Command{
		Use:   "add GROUP NAME",
		Short: "Add an item to a group",
		Long: `Add an item to a group. Screens start at normal complexity; tasks start at
zero effort. A complexity overrides --effort with its base days.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := itemPatch(cmd, "", effort, complexity)
			if err != nil {
				return err
			}
			var id string
			err = app.edit(cmd, "item-add", func(doc *domain.Document) error {
				e, err := estimationOf(doc)
				if err != nil {
					return err
				}
				g, err := resolve("group", args[0], groupRefs(e))
				if err != nil {
					return err
				}
				it := g.AddItem(args[1])
				id = it.ID
				return g.UpdateItem(id, patch)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added item %q (%s)\n", args[1], id)
			return nil
		},
	}

	cmd.Flags().Float64Var(&effort, "effort", 0, "Effort in days (negative values become 0)")
	cmd.Flags().StringVar(&complexity, "complexity", "", "Screen complexity: easy, simple, normal or complex")
	return cmd
}

func newItemSetCmd(app *App) *cobra.Command {
	var (
		name       string
		effort     float64
		complexity string
	)

	cmd := &cobra.Command{
		Use:   "set ID",
		Short: "Update an item's name, effort or complexity",
		Long: `Update an item's name, effort or complexity. ID is an item id, a unique
id prefix, or a path such as screen/1/2 when item ids repeat across groups.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := itemPatch(cmd, name, effort, complexity)
			if err != nil {
				return err
			}
			return app.edit(cmd, "item-update", func(doc *domain.Document) error {
				e, err := estimationOf(doc)
				if err != nil {
					return err
				}
				r, err := resolve("item", args[0], itemRefs(e))
				if err != nil {
					return err
				}
				return r.group.UpdateItem(r.item.ID, patch)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().Float64Var(&effort, "effort", 0, "Effort in days (negative values become 0)")
	cmd.Flags().StringVar(&complexity, "complexity", "", "Screen complexity: easy, simple, normal or complex")
	return cmd
}

func newItemRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Remove an item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.edit(cmd, "item-remove", func(doc *domain.Document) error {
				e, err := estimationOf(doc)
				if err != nil {
					return err
				}
				r, err := resolve("item", args[0], itemRefs(e))
				if err != nil {
					return err
				}
				return r.group.DeleteItem(r.item.ID)
			})
		},
	}
}
