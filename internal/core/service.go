// Package core implements the provider directory search engine: criteria
// normalization with fuzzy specialty correction, the filtered ranked search,
// bulk result hydration, single-entity lookup, and the transactional bulk
// loader. It sits between callers (a conversational front end, a CLI) and the
// catalog store.
package core

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"providerdir/pkg/domain"
)

// Service exposes the engine's operations over a catalog store. All read
// operations are safe for concurrent use; bulk loads must not run concurrently
// with each other.
type Service struct {
	store   domain.CatalogStore
	metrics MetricsRecorder
	log     *slog.Logger

	// Cached distinct value sets, lazily derived from the catalog. LoadCatalog
	// invalidates the cache; loads performed outside this Service require an
	// explicit InvalidateCache call.
	cacheMu   sync.Mutex
	valueSets *catalogValueSets
}

type catalogValueSets struct {
	specialties []string
	languages   []string
	insurance   []string
}

// Option configures a Service.
type Option func(*Service)

// WithMetrics installs a metrics recorder observing engine operations.
func WithMetrics(rec MetricsRecorder) Option {
	return func(s *Service) { s.metrics = rec }
}

// WithLogger installs a structured logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// NewService constructs an engine service backed by the supplied store.
func NewService(store domain.CatalogStore, opts ...Option) *Service {
	s := &Service{
		store:   store,
		metrics: NopMetrics{},
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search normalizes the criteria, runs the ranked catalog query, and hydrates
// the matched page. Malformed or unmatched criteria degrade to empty results;
// only storage faults return an error, alongside an empty result.
func (s *Service) Search(ctx context.Context, criteria domain.Criteria) (domain.SearchResult, error) {
	start := time.Now()

	sets, err := s.catalogValues(ctx)
	if err != nil {
		s.metrics.Record(OpSearch, time.Since(start), err)
		return emptyResult(), err
	}
	query := normalizeCriteria(criteria, sets.specialties)

	var records []domain.ProviderRecord
	err = s.store.View(ctx, func(r domain.CatalogReader) error {
		providers, err := r.SearchProviders(query)
		if err != nil {
			return err
		}
		records, err = hydrate(r, providers)
		return err
	})
	s.metrics.Record(OpSearch, time.Since(start), err)
	if err != nil {
		s.log.Error("search failed", "error", err)
		return emptyResult(), err
	}

	s.log.Debug("search completed", "matches", len(records), "limit", query.Limit)
	return domain.SearchResult{Providers: records, Count: len(records)}, nil
}

// GetByID fetches one fully hydrated record. A missing id is a normal
// outcome reported as found=false, never an error.
func (s *Service) GetByID(ctx context.Context, id int64) (domain.ProviderRecord, bool, error) {
	start := time.Now()

	var record domain.ProviderRecord
	var found bool
	err := s.store.View(ctx, func(r domain.CatalogReader) error {
		provider, ok, err := r.GetProvider(id)
		if err != nil || !ok {
			return err
		}
		records, err := hydrate(r, []domain.Provider{provider})
		if err != nil {
			return err
		}
		record, found = records[0], true
		return nil
	})
	s.metrics.Record(OpGetByID, time.Since(start), err)
	if err != nil {
		return domain.ProviderRecord{}, false, err
	}
	return record, found, nil
}

// AvailableSpecialties returns the sorted distinct specialty values currently
// in the catalog, for consumption by an external entity-extraction
// collaborator.
func (s *Service) AvailableSpecialties(ctx context.Context) ([]string, error) {
	sets, err := s.catalogValues(ctx)
	if err != nil {
		return nil, err
	}
	return sets.specialties, nil
}

// AvailableLanguages returns the sorted distinct language values.
func (s *Service) AvailableLanguages(ctx context.Context) ([]string, error) {
	sets, err := s.catalogValues(ctx)
	if err != nil {
		return nil, err
	}
	return sets.languages, nil
}

// AvailableInsurancePlans returns the sorted distinct insurance plan values.
func (s *Service) AvailableInsurancePlans(ctx context.Context) ([]string, error) {
	sets, err := s.catalogValues(ctx)
	if err != nil {
		return nil, err
	}
	return sets.insurance, nil
}

// LoadCatalog atomically replaces the catalog with the supplied snapshot and
// invalidates the cached value sets. It must not run concurrently with other
// loads; readers may observe either the pre-load or post-load catalog while
// the load is in flight.
func (s *Service) LoadCatalog(ctx context.Context, seeds []domain.ProviderSeed) error {
	start := time.Now()
	err := s.store.ReplaceCatalog(ctx, seeds)
	s.metrics.Record(OpLoadCatalog, time.Since(start), err)
	if err != nil {
		s.log.Error("catalog load failed", "providers", len(seeds), "error", err)
		return err
	}
	s.InvalidateCache()
	s.log.Info("catalog loaded", "providers", len(seeds))
	return nil
}

// InvalidateCache drops the cached distinct value sets. Callers that load the
// catalog through a different Service instance (or out of process) must call
// this before relying on fuzzy correction or the Available* getters.
func (s *Service) InvalidateCache() {
	s.cacheMu.Lock()
	s.valueSets = nil
	s.cacheMu.Unlock()
}

// Close releases the underlying store.
func (s *Service) Close() error {
	return s.store.Close()
}

func (s *Service) catalogValues(ctx context.Context) (*catalogValueSets, error) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if s.valueSets != nil {
		return s.valueSets, nil
	}

	sets := &catalogValueSets{}
	err := s.store.View(ctx, func(r domain.CatalogReader) error {
		var err error
		if sets.specialties, err = r.DistinctSpecialties(); err != nil {
			return err
		}
		if sets.languages, err = r.DistinctLanguages(); err != nil {
			return err
		}
		sets.insurance, err = r.DistinctInsurancePlans()
		return err
	})
	if err != nil {
		return nil, err
	}
	s.valueSets = sets
	return sets, nil
}

func emptyResult() domain.SearchResult {
	return domain.SearchResult{Providers: []domain.ProviderRecord{}}
}
