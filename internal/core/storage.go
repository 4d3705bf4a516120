package core

import (
	"context"
	"fmt"
	"os"

	"providerdir/internal/infra/persistence/memory"
	"providerdir/internal/infra/persistence/postgres"
	"providerdir/internal/infra/persistence/sqlite"
	"providerdir/pkg/domain"
)

// StorageDriver identifies a concrete catalog storage implementation.
type StorageDriver string

const (
	StorageMemory   StorageDriver = "memory"   // in-memory only (tests / ephemeral)
	StorageSQLite   StorageDriver = "sqlite"   // embedded sqlite file
	StoragePostgres StorageDriver = "postgres" // PostgreSQL server
)

// OpenCatalogStore selects a backend using environment variables.
// Defaults to sqlite when unset.
//
//	PROVIDERDIR_STORAGE_DRIVER: memory|sqlite|postgres (default sqlite)
//	PROVIDERDIR_SQLITE_PATH: path to sqlite file (default ./providers.db)
//	PROVIDERDIR_POSTGRES_DSN: postgres DSN when driver=postgres
func OpenCatalogStore(ctx context.Context) (domain.CatalogStore, error) {
	driver := os.Getenv("PROVIDERDIR_STORAGE_DRIVER")
	if driver == "" {
		driver = string(StorageSQLite)
	}
	switch StorageDriver(driver) {
	case StorageMemory:
		return memory.NewStore(), nil
	case StorageSQLite:
		path := os.Getenv("PROVIDERDIR_SQLITE_PATH")
		return sqlite.NewStore(ctx, path)
	case StoragePostgres:
		dsn := os.Getenv("PROVIDERDIR_POSTGRES_DSN")
		return postgres.NewStore(ctx, dsn)
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}
