// Package postgres provides the server-backed catalog backend over the pgx
// stdlib driver. It mirrors the sqlite backend's semantics exactly; only the
// driver and placeholder dialect differ.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"providerdir/internal/infra/persistence/sqlstore"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

const defaultDSN = "postgres://localhost/providerdir?sslmode=disable"

// NewStore opens a postgres-backed catalog store using the provided DSN
// (falls back to a local default) and applies the catalog DDL.
func NewStore(ctx context.Context, dsn string) (*sqlstore.Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	store, err := sqlstore.New(ctx, db, sqlstore.Postgres)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}
