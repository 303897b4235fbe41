package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/alexanderramin/effortplan/internal/calendar"
	"github.com/alexanderramin/effortplan/internal/domain"
	"github.com/alexanderramin/effortplan/internal/importer"
)

// ErrNoProject is returned by operations that need a working project when
// none has been created or imported.
var ErrNoProject = errors.New("no project loaded (run init or import first)")

type workspaceService struct {
	mu       sync.Mutex
	doc      domain.Document
	path     string
	defaults domain.Settings
	clock    func() time.Time
	views    ViewCache
	observer UseCaseObserver
}

// NewWorkspaceService creates an empty workspace saved to path. defaults
// seed new estimations and supply buffer and team size for plans.
func NewWorkspaceService(path string, defaults domain.Settings, clock func() time.Time, observers ...UseCaseObserver) WorkspaceService {
	if clock == nil {
		clock = time.Now
	}
	return &workspaceService{
		path:     path,
		defaults: defaults.Normalize(),
		clock:    clock,
		observer: useCaseObserverOrNoop(observers),
	}
}

// OpenWorkspace creates a workspace and loads path when it exists.
func OpenWorkspace(ctx context.Context, path string, defaults domain.Settings, clock func() time.Time, observers ...UseCaseObserver) (WorkspaceService, error) {
	ws := NewWorkspaceService(path, defaults, clock, observers...)
	if path == "" {
		return ws, nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ws, nil
		}
		return nil, fmt.Errorf("opening workspace: %w", err)
	}
	if _, err := ws.Import(ctx, path); err != nil {
		return nil, err
	}
	return ws, nil
}

func (s *workspaceService) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Check() == nil
}

func (s *workspaceService) Document() domain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

func (s *workspaceService) Settings() domain.Settings {
	return s.defaults.Clone()
}

func (s *workspaceService) Init(ctx context.Context, kind domain.ModelKind, name string) (err error) {
	done := observe(ctx, s.observer, "init", map[string]any{"kind": string(kind), "name": name})
	defer func() { done(err) }()

	var doc domain.Document
	switch kind {
	case domain.ModelEstimation:
		e := domain.NewEstimation(name)
		e.Settings = s.defaults.Clone()
		doc = domain.NewEstimationDocument(e)
	case domain.ModelPlan:
		p := domain.NewPlan(name)
		p.Holidays = s.defaults.Clone().Holidays
		doc = domain.NewPlanDocument(p)
	default:
		return fmt.Errorf("unknown model kind %q (expected estimation or plan)", kind)
	}

	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()
	return nil
}

func (s *workspaceService) Import(ctx context.Context, path string) (*ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading import file: %w", err)
	}
	return s.ImportBytes(ctx, data, importer.FormatFromPath(path), path)
}

// ImportBytes parses data and replaces the working project only on success.
func (s *workspaceService) ImportBytes(ctx context.Context, data []byte, format importer.Format, source string) (res *ImportResult, err error) {
	fields := map[string]any{"source": source, "bytes": len(data)}
	done := observe(ctx, s.observer, "import", fields)
	defer func() { done(err) }()

	doc, err := importer.Parse(data, format, source)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()

	res = describe(doc)
	fields["kind"] = string(res.Kind)
	fields["leaves"] = res.Leaves
	return res, nil
}

func describe(doc domain.Document) *ImportResult {
	res := &ImportResult{Kind: doc.Kind, Name: doc.Name()}
	switch doc.Kind {
	case domain.ModelEstimation:
		res.Groups = len(doc.Estimation.ScreenGroups) + len(doc.Estimation.TaskGroups)
		res.Leaves = doc.Estimation.LeafCount()
	case domain.ModelPlan:
		res.Groups, _, res.Leaves = doc.Plan.Counts()
	}
	return res
}

func (s *workspaceService) Edit(ctx context.Context, name string, fn func(doc *domain.Document) error) (err error) {
	done := observe(ctx, s.observer, name, nil)
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc.Check() != nil {
		return ErrNoProject
	}
	draft := s.doc.Clone()
	if err := fn(&draft); err != nil {
		return err
	}
	if err := draft.Check(); err != nil {
		return err
	}
	s.doc = draft
	return nil
}

func (s *workspaceService) Export(ctx context.Context, format importer.Format) ([]byte, string, error) {
	doc := s.Document()
	if doc.Check() != nil {
		return nil, "", ErrNoProject
	}
	data, err := importer.Marshal(doc, format)
	if err != nil {
		return nil, "", fmt.Errorf("exporting project: %w", err)
	}
	name := importer.ExportFilename(doc)
	if format == importer.FormatYAML {
		name = importer.WithExt(name, "yaml")
	}
	return data, name, nil
}

// Save writes the working project to the workspace file, replacing it
// atomically.
func (s *workspaceService) Save(ctx context.Context) (err error) {
	done := observe(ctx, s.observer, "save", map[string]any{"path": s.path})
	defer func() { done(err) }()

	if s.path == "" {
		return errors.New("no workspace file configured")
	}
	data, _, err := s.Export(ctx, importer.FormatFromPath(s.path))
	if err != nil {
		return err
	}
	return writeFileAtomic(s.path, data)
}

func (s *workspaceService) View(ctx context.Context) (*View, error) {
	doc := s.Document()
	if doc.Check() != nil {
		return nil, ErrNoProject
	}
	return s.views.Build(doc, s.defaults, calendar.Today(s.clock()))
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
