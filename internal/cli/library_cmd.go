package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/effortplan/internal/cli/formatter"
	"github.com/alexanderramin/effortplan/internal/contract"
	"github.com/alexanderramin/effortplan/internal/importer"
)

func newLibraryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "library",
		Aliases: []string{"lib"},
		Short:   "Publish and manage projects served by code",
	}
	cmd.AddCommand(
		newLibraryPutCmd(app),
		newLibraryGetCmd(app),
		newLibraryListCmd(app),
		newLibraryRmCmd(app),
		newLibrarySyncCmd(app),
	)
	return cmd
}

func newLibraryPutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "put CODE [FILE|-]",
		Short: "Publish a project file, or the working project, under CODE",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lib, err := app.library()
			if err != nil {
				return err
			}

			var data []byte
			var source string
			switch {
			case len(args) == 1:
				if data, _, err = app.Workspace.Export(ctx, importer.FormatJSON); err != nil {
					return err
				}
			case args[1] == "-":
				if app.StdinIsTerminal() {
					return fmt.Errorf("refusing to read a project from a terminal; pipe a file or pass a path")
				}
				if data, err = io.ReadAll(app.Stdin); err != nil {
					return fmt.Errorf("reading stdin: %w", err)
				}
			default:
				source = args[1]
				if data, err = os.ReadFile(source); err != nil {
					return fmt.Errorf("reading %s: %w", source, err)
				}
			}

			rec, err := lib.Publish(ctx, args[0], data, source)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Published %s %q as %s\n", rec.Kind, rec.Name, rec.Code)
			return nil
		},
	}
}

func newLibraryGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get CODE",
		Short: "Print the stored body of a published project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := app.library()
			if err != nil {
				return err
			}
			rec, err := lib.Lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(rec.Body)
			return err
		},
	}
}

func newLibraryListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List published projects",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lib, err := app.library()
			if err != nil {
				return err
			}
			entries, err := lib.List(cmd.Context())
			if err != nil {
				return err
			}
			if app.jsonOut {
				return printJSON(cmd.OutOrStdout(), contract.FromEntries(entries))
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatLibrary(entries))
			return nil
		},
	}
}

func newLibraryRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm CODE",
		Aliases: []string{"remove"},
		Short:   "Remove a published project",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := app.library()
			if err != nil {
				return err
			}
			if err := lib.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}
}

func newLibrarySyncCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sync DIR",
		Short: "Publish every project file in DIR under its base name",
		Long: `Publish every .json, .yaml and .yml file in DIR under its base name. All
files are validated first; nothing is written when any of them fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := app.library()
			if err != nil {
				return err
			}
			res, err := lib.Sync(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if app.jsonOut {
				return printJSON(cmd.OutOrStdout(), res)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Published %d project(s)\n", len(res.Published))
			for _, name := range res.Skipped {
				fmt.Fprintf(out, "  %s %s\n", formatter.Dim("skipped"), name)
			}
			return nil
		},
	}
}
