package tripdb

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql needed by Queries, satisfied by both
// *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// New wraps a database handle in a query runner.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Queries runs the store's SQL statements against a DB or transaction.
type Queries struct {
	db DBTX
}

// WithTx returns a Queries bound to the given transaction.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}
