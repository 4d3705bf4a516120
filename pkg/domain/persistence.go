package domain

import "context"

// CatalogReader exposes the read operations available inside a single
// request-scoped read transaction. Implementations bind the transaction (and
// its context) at acquisition time.
type CatalogReader interface {
	// SearchProviders returns the ordered, deduplicated, limit-bounded page of
	// catalog rows matching the normalized query.
	SearchProviders(SearchQuery) ([]Provider, error)
	// GetProvider performs a point lookup. A missing id reports found=false,
	// not an error.
	GetProvider(id int64) (Provider, bool, error)
	// InsuranceByProvider bulk-resolves insurance affiliations for a page of
	// provider ids in a single query.
	InsuranceByProvider(ids []int64) (map[int64][]string, error)
	// LanguagesByProvider bulk-resolves language affiliations for a page of
	// provider ids in a single query.
	LanguagesByProvider(ids []int64) (map[int64][]string, error)
	// DistinctSpecialties returns the sorted distinct specialty values.
	DistinctSpecialties() ([]string, error)
	// DistinctLanguages returns the sorted distinct language values.
	DistinctLanguages() ([]string, error)
	// DistinctInsurancePlans returns the sorted distinct insurance plan values.
	DistinctInsurancePlans() ([]string, error)
}

// CatalogStore is the persistence contract for the provider catalog. Read
// access happens through View's transaction closure so every caller holds a
// consistent snapshot that is released on all exit paths; ReplaceCatalog is
// the single write path and is atomic.
type CatalogStore interface {
	// View runs fn against a read-only transaction scoped to this call.
	View(ctx context.Context, fn func(CatalogReader) error) error
	// ReplaceCatalog atomically deletes the entire catalog (affiliations
	// cascade) and repopulates it from seeds. On failure the prior catalog
	// state is left untouched. Re-running with the same snapshot reproduces
	// the same contents.
	ReplaceCatalog(ctx context.Context, seeds []ProviderSeed) error
	// Close releases the underlying storage handle.
	Close() error
}
