package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/effortplan/internal/calendar"
	"github.com/alexanderramin/effortplan/internal/cli/formatter"
	"github.com/alexanderramin/effortplan/internal/importer"
	mcpserver "github.com/alexanderramin/effortplan/internal/mcp"
	"github.com/alexanderramin/effortplan/internal/server"
	"github.com/alexanderramin/effortplan/internal/service"
	"github.com/alexanderramin/effortplan/internal/watch"
)

// Version is stamped at build time.
var Version = "dev"

func signalContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

func newServeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve published projects over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lib, err := app.library()
			if err != nil {
				return err
			}
			ctx, stop := signalContext(cmd.Context())
			defer stop()
			return server.Run(ctx, app.Config.Server.Addr, server.NewRouter(lib, app.Logger), app.Logger)
		},
	}

	cmd.Flags().String("addr", "", "listen address (default 127.0.0.1:8080)")
	return cmd
}

func newMCPCmd(app *App) *cobra.Command {
	var noLibrary bool

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run an MCP server on stdio exposing estimation tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := mcpserver.Config{
				Defaults: app.Config.Settings(),
				Clock:    app.Clock,
				Logger:   app.Logger,
				Version:  Version,
			}
			if !noLibrary {
				lib, err := app.library()
				if err != nil {
					return err
				}
				cfg.Library = lib
			}
			ctx, stop := signalContext(cmd.Context())
			defer stop()
			return mcpserver.Serve(ctx, mcpserver.NewServer(cfg))
		},
	}

	cmd.Flags().BoolVar(&noLibrary, "no-library", false, "Only expose estimate_project")
	return cmd
}

func newWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Recompute and print the summary whenever the working file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := app.Config.Workspace.File
			out := cmd.OutOrStdout()
			settings := app.Config.Settings()

			w := watch.New(path, func(_ context.Context, data []byte) error {
				doc, err := importer.Parse(data, importer.FormatFromPath(path), path)
				if err != nil {
					return err
				}
				v, err := service.BuildView(doc, settings, calendar.Today(app.Clock()))
				if err != nil {
					return err
				}
				fmt.Fprintln(out, formatter.FormatTotals(v.Name, v.Totals))
				fmt.Fprintln(out, renderSummary(v))
				return nil
			}, watch.WithLogger(app.Logger))

			ctx, stop := signalContext(cmd.Context())
			defer stop()
			return w.Run(ctx)
		},
	}
}
