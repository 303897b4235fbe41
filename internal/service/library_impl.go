package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/effortplan/internal/calendar"
	"github.com/alexanderramin/effortplan/internal/db"
	"github.com/alexanderramin/effortplan/internal/domain"
	"github.com/alexanderramin/effortplan/internal/importer"
	"github.com/alexanderramin/effortplan/internal/repository"
)

type libraryService struct {
	store    repository.ProjectStore
	uow      db.UnitOfWork
	txStore  func(db.DBTX) repository.ProjectStore
	defaults domain.Settings
	clock    func() time.Time
	observer UseCaseObserver

	mu    sync.Mutex
	views map[string]*ViewCache
}

type LibraryOption func(*libraryService)

// WithUnitOfWork makes Sync transactional: every store write goes through
// txStore built on the unit's transaction.
func WithUnitOfWork(uow db.UnitOfWork, txStore func(db.DBTX) repository.ProjectStore) LibraryOption {
	return func(s *libraryService) {
		s.uow = uow
		s.txStore = txStore
	}
}

func WithClock(clock func() time.Time) LibraryOption {
	return func(s *libraryService) { s.clock = clock }
}

func WithObserver(obs UseCaseObserver) LibraryOption {
	return func(s *libraryService) {
		if obs != nil {
			s.observer = obs
		}
	}
}

// NewLibraryService serves published projects from store. defaults supply
// buffer and team size when computing plan views.
func NewLibraryService(store repository.ProjectStore, defaults domain.Settings, opts ...LibraryOption) LibraryService {
	s := &libraryService{
		store:    store,
		defaults: defaults.Normalize(),
		clock:    time.Now,
		observer: NoopUseCaseObserver{},
		views:    make(map[string]*ViewCache),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Publish validates data as a project file and stores it under code. JSON
// is stored byte for byte; YAML is converted to JSON first.
func (s *libraryService) Publish(ctx context.Context, code string, data []byte, source string) (rec *repository.ProjectRecord, err error) {
	done := observe(ctx, s.observer, "library-publish", map[string]any{"code": code})
	defer func() { done(err) }()

	rec, err = prepareRecord(code, data, source)
	if err != nil {
		return nil, err
	}
	if err := s.store.Put(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func prepareRecord(code string, data []byte, source string) (*repository.ProjectRecord, error) {
	if !repository.ValidCode(code) {
		return nil, fmt.Errorf("invalid project code %q (letters, digits, '-' and '_' only)", code)
	}
	format := importer.FormatJSON
	if source != "" {
		format = importer.FormatFromPath(source)
	}
	doc, err := importer.Parse(data, format, domain.CoalesceStr(source, code))
	if err != nil {
		return nil, err
	}
	body := data
	if format != importer.FormatJSON {
		if body, err = importer.Marshal(doc, importer.FormatJSON); err != nil {
			return nil, err
		}
	}
	return &repository.ProjectRecord{
		Code:   code,
		Name:   doc.Name(),
		Kind:   doc.Kind,
		Body:   body,
		Source: source,
	}, nil
}

func (s *libraryService) Lookup(ctx context.Context, code string) (*repository.ProjectRecord, error) {
	return s.store.Get(ctx, code)
}

// LookupView parses the stored project and computes its view. Views are
// memoized per code.
func (s *libraryService) LookupView(ctx context.Context, code string) (v *View, err error) {
	done := observe(ctx, s.observer, "library-view", map[string]any{"code": code})
	defer func() { done(err) }()

	rec, err := s.store.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	doc, err := importer.Parse(rec.Body, importer.FormatJSON, code)
	if err != nil {
		return nil, err
	}
	return s.cacheFor(code).Build(doc, s.defaults, calendar.Today(s.clock()))
}

func (s *libraryService) cacheFor(code string) *ViewCache {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.views[code]
	if !ok {
		c = &ViewCache{}
		s.views[code] = c
	}
	return c
}

// List returns every published project. Backends that do not record names
// have them read from the stored body.
func (s *libraryService) List(ctx context.Context) ([]LibraryEntry, error) {
	recs, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]LibraryEntry, 0, len(recs))
	for _, rec := range recs {
		entry := LibraryEntry{Code: rec.Code, Name: rec.Name, Kind: rec.Kind, UpdatedAt: rec.UpdatedAt}
		if entry.Kind == "" {
			if full, err := s.store.Get(ctx, rec.Code); err == nil {
				if doc, err := importer.Parse(full.Body, importer.FormatJSON, rec.Code); err == nil {
					entry.Name, entry.Kind = doc.Name(), doc.Kind
				}
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

func (s *libraryService) Remove(ctx context.Context, code string) (err error) {
	done := observe(ctx, s.observer, "library-remove", map[string]any{"code": code})
	defer func() { done(err) }()

	if err := s.store.Delete(ctx, code); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.views, code)
	s.mu.Unlock()
	return nil
}

// Sync publishes every .json, .yaml and .yml file in dir under its base
// name. All files are validated before anything is written; with a unit of
// work the writes are a single transaction.
func (s *libraryService) Sync(ctx context.Context, dir string) (res *SyncResult, err error) {
	fields := map[string]any{"dir": dir}
	done := observe(ctx, s.observer, "library-sync", fields)
	defer func() { done(err) }()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	res = &SyncResult{}
	var recs []*repository.ProjectRecord
	var errs []error
	for _, e := range entries {
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if e.IsDir() || (ext != ".json" && ext != ".yaml" && ext != ".yml") {
			continue
		}
		code := strings.TrimSuffix(name, filepath.Ext(name))
		if !repository.ValidCode(code) {
			res.Skipped = append(res.Skipped, name)
			continue
		}
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("reading %s: %w", path, err))
			continue
		}
		rec, err := prepareRecord(code, data, path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		recs = append(recs, rec)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	write := func(ctx context.Context, store repository.ProjectStore) error {
		for _, rec := range recs {
			if err := store.Put(ctx, rec); err != nil {
				return err
			}
		}
		return nil
	}
	if s.uow != nil && s.txStore != nil {
		err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			return write(ctx, s.txStore(tx))
		})
	} else {
		err = write(ctx, s.store)
	}
	if err != nil {
		return nil, fmt.Errorf("syncing library: %w", err)
	}

	for _, rec := range recs {
		res.Published = append(res.Published, rec.Code)
	}
	fields["published"] = len(res.Published)
	s.mu.Lock()
	s.views = make(map[string]*ViewCache)
	s.mu.Unlock()
	return res, nil
}
