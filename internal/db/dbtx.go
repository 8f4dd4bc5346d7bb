package db

import (
	"context"
	"database/sql"
)

// DBTX is the common interface satisfied by both *sql.DB and *sql.Tx.
// Repository implementations depend on this interface instead of the
// concrete *sql.DB, enabling transactional composition.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Compile-time verification that *sql.DB and *sql.Tx satisfy DBTX.
var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
	_ DBTX = (*reboundDBTX)(nil)
)

// Bind adapts conn to the placeholder style of the dialect. Repositories
// write queries with '?' placeholders; for SQLite conn is returned as is.
func Bind(conn DBTX, dialect Dialect) DBTX {
	if dialect != Postgres {
		return conn
	}
	if rb, ok := conn.(*reboundDBTX); ok {
		return rb
	}
	return &reboundDBTX{inner: conn}
}

type reboundDBTX struct {
	inner DBTX
}

func (r *reboundDBTX) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return r.inner.ExecContext(ctx, Rebind(Postgres, query), args...)
}

func (r *reboundDBTX) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return r.inner.QueryContext(ctx, Rebind(Postgres, query), args...)
}

func (r *reboundDBTX) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return r.inner.QueryRowContext(ctx, Rebind(Postgres, query), args...)
}
