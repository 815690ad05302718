package repository

import (
	"context"
	"database/sql"
)

// DBTX is an interface abstracting *sqlx.DB and *sqlx.Tx for repository use.
// Queries are written with ? placeholders and passed through Rebind so one
// statement serves both the oracle and postgres drivers.
type DBTX interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	Rebind(query string) string
}

// BoolToInt maps a flag to the 0/1 integer stored in NUMBER(1)/SMALLINT columns.
func BoolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
