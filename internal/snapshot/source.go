// Package snapshot fetches catalog snapshots for the bulk loader. A snapshot
// is a JSON array of seed records held on the local filesystem, in an
// S3-compatible bucket, or in memory for tests.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"providerdir/pkg/domain"
)

// Driver identifies a snapshot source backend.
type Driver string

const (
	// DriverFilesystem reads snapshots from the local filesystem.
	DriverFilesystem Driver = "fs"
	// DriverS3 reads snapshots from an S3-compatible bucket.
	DriverS3 Driver = "s3"
	// DriverMemory serves snapshots from process memory (tests).
	DriverMemory Driver = "memory"
)

// Source retrieves a snapshot payload by key.
type Source interface {
	Driver() Driver
	// Fetch opens the snapshot stored under key. The caller closes the reader.
	Fetch(ctx context.Context, key string) (io.ReadCloser, error)
}

// Open selects a Source implementation using environment variables.
//
//	PROVIDERDIR_SNAPSHOT_DRIVER: fs|s3|memory (default fs)
//	PROVIDERDIR_SNAPSHOT_FS_ROOT: directory root when driver=fs (default .)
//	(S3 specific variables documented in s3.go)
func Open(ctx context.Context) (Source, error) {
	driver := os.Getenv("PROVIDERDIR_SNAPSHOT_DRIVER")
	if driver == "" {
		driver = string(DriverFilesystem)
	}
	switch Driver(driver) {
	case DriverFilesystem:
		return NewFilesystem(os.Getenv("PROVIDERDIR_SNAPSHOT_FS_ROOT"))
	case DriverS3:
		return OpenS3FromEnv(ctx)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown snapshot driver %s", driver)
	}
}

// Decode parses a snapshot payload into seed records.
func Decode(r io.Reader) ([]domain.ProviderSeed, error) {
	var seeds []domain.ProviderSeed
	dec := json.NewDecoder(r)
	if err := dec.Decode(&seeds); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return seeds, nil
}

// Load fetches and decodes the snapshot stored under key.
func Load(ctx context.Context, src Source, key string) ([]domain.ProviderSeed, error) {
	rc, err := src.Fetch(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("fetch snapshot %s: %w", key, err)
	}
	defer func() { _ = rc.Close() }()
	return Decode(rc)
}
