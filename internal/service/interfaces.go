package service

import (
	"context"
	"time"

	"github.com/alexanderramin/effortplan/internal/domain"
	"github.com/alexanderramin/effortplan/internal/importer"
	"github.com/alexanderramin/effortplan/internal/repository"
)

// ImportResult describes the document that replaced the working project.
type ImportResult struct {
	Kind   domain.ModelKind
	Name   string
	Groups int // screen and task groups, or plan tasks
	Leaves int // items, or team assignments
}

// WorkspaceService owns the single working project.
type WorkspaceService interface {
	// Loaded reports whether a project is present.
	Loaded() bool
	Document() domain.Document
	Init(ctx context.Context, kind domain.ModelKind, name string) error
	Import(ctx context.Context, path string) (*ImportResult, error)
	ImportBytes(ctx context.Context, data []byte, format importer.Format, source string) (*ImportResult, error)
	// Edit applies fn to a copy of the document and keeps the copy only when
	// fn succeeds.
	Edit(ctx context.Context, name string, fn func(doc *domain.Document) error) error
	Export(ctx context.Context, format importer.Format) (data []byte, filename string, err error)
	Save(ctx context.Context) error
	View(ctx context.Context) (*View, error)
	// Settings are the buffer and team size applied to plans.
	Settings() domain.Settings
}

// LibraryEntry lists one published project.
type LibraryEntry struct {
	Code      string
	Name      string
	Kind      domain.ModelKind
	UpdatedAt time.Time
}

// SyncResult reports a bulk publish from a directory.
type SyncResult struct {
	Published []string
	Skipped   []string
}

// LibraryService manages published projects keyed by short code.
type LibraryService interface {
	Publish(ctx context.Context, code string, data []byte, source string) (*repository.ProjectRecord, error)
	Lookup(ctx context.Context, code string) (*repository.ProjectRecord, error)
	LookupView(ctx context.Context, code string) (*View, error)
	List(ctx context.Context) ([]LibraryEntry, error)
	Remove(ctx context.Context, code string) error
	Sync(ctx context.Context, dir string) (*SyncResult, error)
}
