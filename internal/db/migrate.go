package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies every schema statement. Statements are re-run on each
// open, so they must be idempotent; ALTER TABLE ... ADD COLUMN is tolerated
// when the column already exists.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS project_documents (
		code       TEXT PRIMARY KEY,
		name       TEXT NOT NULL DEFAULT '',
		kind       TEXT NOT NULL CHECK(kind IN ('estimation','plan')),
		body       TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_project_documents_updated ON project_documents(updated_at)`,

	// source records the file a document was synced from
	`ALTER TABLE project_documents ADD COLUMN source TEXT NOT NULL DEFAULT ''`,
}
