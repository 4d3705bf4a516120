// Package sqlite provides the embedded catalog backend over a single sqlite
// file. It is the default driver: no server, no credentials.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"providerdir/internal/infra/persistence/sqlstore"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// DefaultPath is used when no catalog path is configured.
const DefaultPath = "providers.db"

// NewStore opens (creating if necessary) a sqlite-backed catalog store.
// Foreign keys are enabled per connection so affiliation rows cascade when
// their provider is deleted.
func NewStore(ctx context.Context, path string) (*sqlstore.Store, error) {
	if path == "" {
		path = DefaultPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store, err := sqlstore.New(ctx, db, sqlstore.SQLite)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}
