package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/effortplan/internal/config"
	"github.com/alexanderramin/effortplan/internal/db"
	"github.com/alexanderramin/effortplan/internal/repository"
	"github.com/alexanderramin/effortplan/internal/service"
)

// App holds the configuration and services used by CLI commands. Nil fields
// are filled in from configuration before a command runs, so tests can
// inject their own.
type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	Workspace service.WorkspaceService
	Library   service.LibraryService
	Clock     func() time.Time
	Stdin     io.Reader
	// StdinIsTerminal reports whether Stdin is interactive; import refuses to
	// block on a terminal.
	StdinIsTerminal func() bool

	cfgFile string
	jsonOut bool
	closers []func() error
}

// flagKeys binds root flags to config keys.
var flagKeys = map[string]string{
	"workspace.file":  "file",
	"log.level":       "log-level",
	"library.backend": "backend",
	"library.dir":     "library-dir",
	"library.db_path": "db",
	"server.addr":     "addr",
}

// NewRootCmd creates the top-level "effortplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "effortplan",
		Short: "Project effort estimation and timeline planning",
		Long: `effortplan keeps a working project file, either a flat estimation of
screen and task groups or a plan of tasks, subtasks and team assignments, and
computes buffered effort totals, business-day durations and timelines from it.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&app.cfgFile, "config", "c", "", "config file (default is ./effortplan.yaml or $HOME/.config/effortplan/effortplan.yaml)")
	pf.StringP("file", "f", "", "working project file")
	pf.BoolVar(&app.jsonOut, "json", false, "print machine-readable JSON")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.String("backend", "", "library backend (dir or sqlite)")
	pf.String("library-dir", "", "directory of published <code>.json files")
	pf.String("db", "", "library database path for the sqlite backend")

	root.AddCommand(
		newInitCmd(app),
		newImportCmd(app),
		newExportCmd(app),
		newShowCmd(app),
		newEstimateCmd(app),
		newTimelineCmd(app),
		newSummaryCmd(app),
		newSettingsCmd(app),
		newHolidayCmd(app),
		newGroupCmd(app),
		newItemCmd(app),
		newTaskCmd(app),
		newSubTaskCmd(app),
		newTeamCmd(app),
		newLibraryCmd(app),
		newServeCmd(app),
		newMCPCmd(app),
		newWatchCmd(app),
	)

	return root
}

func (app *App) setup(cmd *cobra.Command) error {
	if app.Clock == nil {
		app.Clock = time.Now
	}
	if app.Stdin == nil {
		app.Stdin = cmd.InOrStdin()
	}
	if app.StdinIsTerminal == nil {
		app.StdinIsTerminal = func() bool {
			f, ok := app.Stdin.(*os.File)
			return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
		}
	}
	if app.Config == nil {
		v, err := config.NewViper(app.cfgFile)
		if err != nil {
			return err
		}
		if err := config.BindFlags(v, cmd.Flags(), flagKeys); err != nil {
			return err
		}
		cfg, err := config.Load(v)
		if err != nil {
			return err
		}
		app.Config = cfg
	}
	if app.Logger == nil {
		app.Logger = config.NewLogger(app.Config.Log, cmd.ErrOrStderr())
	}
	if app.Workspace == nil {
		ws, err := service.OpenWorkspace(cmd.Context(), app.Config.Workspace.File, app.Config.Settings(),
			app.Clock, service.NewLogUseCaseObserver(app.Logger))
		if err != nil {
			return err
		}
		app.Workspace = ws
	}
	return nil
}

// library opens the configured project library on first use.
func (app *App) library() (service.LibraryService, error) {
	if app.Library != nil {
		return app.Library, nil
	}
	cfg := app.Config
	opts := []service.LibraryOption{
		service.WithClock(app.Clock),
		service.WithObserver(service.NewLogUseCaseObserver(app.Logger)),
	}

	var store repository.ProjectStore
	switch cfg.Library.Backend {
	case config.BackendSQLite:
		conn, err := db.OpenDB(cfg.Library.DBPath)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, conn.Close)
		store = repository.NewSQLiteProjectStore(conn)
		opts = append(opts, service.WithUnitOfWork(db.NewSQLiteUnitOfWork(conn), func(tx db.DBTX) repository.ProjectStore {
			return repository.NewSQLiteProjectStore(tx)
		}))
	default:
		store = repository.NewFileProjectStore(cfg.Library.Dir)
	}
	app.Library = service.NewLibraryService(store, cfg.Settings(), opts...)
	return app.Library, nil
}

// Close releases resources opened by commands.
func (app *App) Close() error {
	var errs []error
	for _, c := range app.closers {
		errs = append(errs, c())
	}
	app.closers = nil
	return errors.Join(errs...)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}
