package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/effortplan/internal/cli/formatter"
	"github.com/alexanderramin/effortplan/internal/domain"
	"github.com/alexanderramin/effortplan/internal/importer"
	"github.com/alexanderramin/effortplan/internal/report"
	"github.com/alexanderramin/effortplan/internal/service"
)

func newInitCmd(app *App) *cobra.Command {
	var kind string
	var force bool

	cmd := &cobra.Command{
		Use:   "init NAME",
		Short: "Start a new working project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if app.Workspace.Loaded() && !force {
				return fmt.Errorf("%s already holds a project (use --force to replace it)", app.Config.Workspace.File)
			}
			if err := app.Workspace.Init(ctx, domain.ModelKind(kind), args[0]); err != nil {
				return err
			}
			if err := app.Workspace.Save(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s %q in %s\n", kind, args[0], app.Config.Workspace.File)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", string(domain.ModelEstimation), "Project kind (estimation or plan)")
	cmd.Flags().BoolVar(&force, "force", false, "Replace an existing working project")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import [FILE|-]",
		Short: "Replace the working project with a JSON or YAML project file",
		Long: `Replace the working project with a JSON or YAML project file. With no
argument, or "-", the project is read from standard input.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var (
				res *service.ImportResult
				err error
			)
			if len(args) == 1 && args[0] != "-" {
				data, readErr := os.ReadFile(args[0])
				if readErr != nil {
					return fmt.Errorf("reading import file: %w", readErr)
				}
				f := importer.FormatFromPath(args[0])
				if format != "" {
					f = importer.Format(format)
				}
				res, err = app.Workspace.ImportBytes(ctx, data, f, args[0])
			} else {
				if app.StdinIsTerminal() {
					return errors.New("no input: pass a project file or pipe one on standard input")
				}
				data, readErr := io.ReadAll(app.Stdin)
				if readErr != nil {
					return fmt.Errorf("reading standard input: %w", readErr)
				}
				f := importer.FormatJSON
				if format != "" {
					f = importer.Format(format)
				}
				res, err = app.Workspace.ImportBytes(ctx, data, f, "stdin")
			}
			if err != nil {
				return err
			}
			if err := app.Workspace.Save(ctx); err != nil {
				return err
			}

			unit := "groups"
			leaves := "items"
			if res.Kind == domain.ModelPlan {
				unit, leaves = "tasks", "team assignments"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s %q: %d %s, %d %s\n", res.Kind, res.Name, res.Groups, unit, res.Leaves, leaves)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Input format (json or yaml); defaults to the file extension")
	return cmd
}

func newExportCmd(app *App) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the working project as JSON, YAML or a PDF report",
		Long: `Write the working project as JSON, YAML or a PDF report. The default
file name is derived from the project name; "-o -" writes to standard output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			var (
				data []byte
				name string
				err  error
			)
			switch f := strings.ToLower(format); f {
			case "json", "yaml", "yml":
				exportFormat := importer.FormatJSON
				if f != "json" {
					exportFormat = importer.FormatYAML
				}
				data, name, err = app.Workspace.Export(ctx, exportFormat)
				if err != nil {
					return err
				}
			case "pdf":
				view, viewErr := app.Workspace.View(ctx)
				if viewErr != nil {
					return viewErr
				}
				var buf bytes.Buffer
				if err := report.WritePDF(&buf, view); err != nil {
					return err
				}
				data = buf.Bytes()
				name = importer.WithExt(importer.ExportFilename(app.Workspace.Document()), "pdf")
			default:
				return fmt.Errorf("unknown export format %q (expected json, yaml or pdf)", format)
			}

			if output == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if output == "" {
				output = name
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("writing export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Output format (json, yaml or pdf)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path, or - for standard output")
	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the work breakdown of the working project with IDs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !app.Workspace.Loaded() {
				return service.ErrNoProject
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStructure(app.Workspace.Document()))
			return nil
		},
	}
}
