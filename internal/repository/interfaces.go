package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/effortplan/internal/domain"
)

// ProjectRecord is a published project file. Body holds the file bytes
// exactly as published so lookups can serve them verbatim.
type ProjectRecord struct {
	Code      string
	Name      string
	Kind      domain.ModelKind
	Body      []byte
	Source    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProjectStore is the library of published projects keyed by short code.
// List returns records ordered by code with Body left empty.
type ProjectStore interface {
	Get(ctx context.Context, code string) (*ProjectRecord, error)
	Put(ctx context.Context, rec *ProjectRecord) error
	List(ctx context.Context) ([]*ProjectRecord, error)
	Delete(ctx context.Context, code string) error
}
