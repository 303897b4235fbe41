package testutil

import (
	"context"
	"database/sql"

	"github.com/alexanderramin/effortplan/internal/db"
)

// FailOnNthExecUoW behaves like db.SQLiteUnitOfWork except that the
// FailOn-th write in the transaction (counting from 1) returns Err instead
// of running. Reads pass through untouched.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return db.RunInTx(ctx, u.DB, func(tx *sql.Tx) error {
		return fn(ctx, &countingTx{DBTX: tx, failOn: u.FailOn, err: u.Err})
	})
}

type countingTx struct {
	db.DBTX
	writes int
	failOn int
	err    error
}

func (c *countingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	c.writes++
	if c.writes == c.failOn {
		return nil, c.err
	}
	return c.DBTX.ExecContext(ctx, query, args...)
}
