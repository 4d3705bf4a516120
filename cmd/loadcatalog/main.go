// Command loadcatalog replaces the provider catalog with an external
// snapshot: a JSON array of provider records fetched from a snapshot source
// (local file, S3 object, per PROVIDERDIR_SNAPSHOT_* environment). The load
// is a single transaction; on any failure the prior catalog is untouched.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"providerdir/internal/core"
	"providerdir/internal/snapshot"
)

func main() {
	key := flag.String("snapshot", "providers.json", "snapshot key (file path relative to the source root, or object key)")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	if err := run(context.Background(), log, *key); err != nil {
		log.Error("load failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger, key string) error {
	src, err := snapshot.Open(ctx)
	if err != nil {
		return fmt.Errorf("open snapshot source: %w", err)
	}
	seeds, err := snapshot.Load(ctx, src, key)
	if err != nil {
		return err
	}
	log.Info("snapshot fetched", "driver", src.Driver(), "key", key, "providers", len(seeds))

	store, err := core.OpenCatalogStore(ctx)
	if err != nil {
		return fmt.Errorf("open catalog store: %w", err)
	}
	svc := core.NewService(store, core.WithLogger(log))
	defer func() { _ = svc.Close() }()

	if err := svc.LoadCatalog(ctx, seeds); err != nil {
		return err
	}

	specialties, err := svc.AvailableSpecialties(ctx)
	if err != nil {
		return err
	}
	log.Info("catalog ready", "specialties", len(specialties))
	return nil
}
