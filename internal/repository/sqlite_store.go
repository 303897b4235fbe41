package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/effortplan/internal/db"
	"github.com/alexanderramin/effortplan/internal/domain"
)

// SQLiteProjectStore implements ProjectStore on the project_documents table.
// Built on a db.DBTX, it works both directly and inside a unit of work.
type SQLiteProjectStore struct {
	db db.DBTX
}

func NewSQLiteProjectStore(conn db.DBTX) *SQLiteProjectStore {
	return &SQLiteProjectStore{db: conn}
}

func (r *SQLiteProjectStore) Get(ctx context.Context, code string) (*ProjectRecord, error) {
	if err := checkCode(code); err != nil {
		return nil, err
	}
	query := `SELECT code, name, kind, body, source, created_at, updated_at
		FROM project_documents WHERE code = ?`
	var (
		rec              ProjectRecord
		kind, body       string
		created, updated string
	)
	err := r.db.QueryRowContext(ctx, query, code).Scan(&rec.Code, &rec.Name, &kind, &body, &rec.Source, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("project %s: %w", code, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning project %s: %w", code, err)
	}
	rec.Kind = domain.ModelKind(kind)
	rec.Body = []byte(body)
	rec.CreatedAt = parseStamp(created)
	rec.UpdatedAt = parseStamp(updated)
	return &rec, nil
}

// Put inserts or replaces the record, keeping the original created_at.
func (r *SQLiteProjectStore) Put(ctx context.Context, rec *ProjectRecord) error {
	if !ValidCode(rec.Code) {
		return fmt.Errorf("invalid project code %q", rec.Code)
	}
	now := formatStamp(nowUTC())
	query := `INSERT INTO project_documents (code, name, kind, body, source, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET
			name = excluded.name,
			kind = excluded.kind,
			body = excluded.body,
			source = excluded.source,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		rec.Code,
		rec.Name,
		string(rec.Kind),
		string(rec.Body),
		rec.Source,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("storing project %s: %w", rec.Code, err)
	}
	return nil
}

func (r *SQLiteProjectStore) List(ctx context.Context) ([]*ProjectRecord, error) {
	query := `SELECT code, name, kind, source, created_at, updated_at
		FROM project_documents ORDER BY code`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var out []*ProjectRecord
	for rows.Next() {
		var (
			rec              ProjectRecord
			kind             string
			created, updated string
		)
		if err := rows.Scan(&rec.Code, &rec.Name, &kind, &rec.Source, &created, &updated); err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		rec.Kind = domain.ModelKind(kind)
		rec.CreatedAt = parseStamp(created)
		rec.UpdatedAt = parseStamp(updated)
		out = append(out, &rec)
	}
	return out, rows.Err()
}

func (r *SQLiteProjectStore) Delete(ctx context.Context, code string) error {
	if err := checkCode(code); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM project_documents WHERE code = ?`, code)
	if err != nil {
		return fmt.Errorf("deleting project %s: %w", code, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("project %s: %w", code, ErrNotFound)
	}
	return nil
}
