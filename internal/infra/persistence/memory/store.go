// Package memory provides an in-memory catalog store used for tests and
// ephemeral environments. It mirrors the SQL backends' query semantics:
// ANDed scalar filters, exact affiliation membership, availability-then-rating
// ordering with id as the tie-break, and limit applied after ordering.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"providerdir/pkg/domain"
)

// Compile-time contract assertion ensuring the store satisfies the domain interface.
var _ domain.CatalogStore = (*Store)(nil)

// Store holds the catalog in process memory behind an RWMutex. Reads take a
// consistent snapshot; ReplaceCatalog swaps the whole state at once.
type Store struct {
	mu        sync.RWMutex
	providers []domain.Provider
	insurance map[int64][]string
	languages map[int64][]string
}

// NewStore constructs an empty in-memory catalog store.
func NewStore() *Store {
	return &Store{
		insurance: make(map[int64][]string),
		languages: make(map[int64][]string),
	}
}

// View executes fn against a read-only snapshot of the catalog.
func (s *Store) View(_ context.Context, fn func(domain.CatalogReader) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&reader{store: s})
}

// ReplaceCatalog swaps the catalog contents for the supplied snapshot. The
// swap is all-or-nothing: state is staged aside and installed only once every
// seed has been accepted.
func (s *Store) ReplaceCatalog(_ context.Context, seeds []domain.ProviderSeed) error {
	providers := make([]domain.Provider, 0, len(seeds))
	insurance := make(map[int64][]string, len(seeds))
	languages := make(map[int64][]string, len(seeds))
	for _, seed := range seeds {
		if _, dup := insurance[seed.ID]; dup {
			return fmt.Errorf("provider %d: %w", seed.ID, domain.ErrDuplicateProvider)
		}
		providers = append(providers, seed.Row())
		insurance[seed.ID] = append([]string(nil), seed.InsuranceAccepted...)
		languages[seed.ID] = append([]string(nil), seed.Languages...)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.providers = providers
	s.insurance = insurance
	s.languages = languages
	return nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error { return nil }

type reader struct {
	store *Store
}

func (r *reader) SearchProviders(q domain.SearchQuery) ([]domain.Provider, error) {
	var out []domain.Provider
	for _, p := range r.store.providers {
		if matches(p, q, r.store.insurance[p.ID], r.store.languages[p.ID]) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.AcceptingNewPatients != b.AcceptingNewPatients {
			return a.AcceptingNewPatients
		}
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		return a.ID < b.ID
	})
	limit := q.Limit
	if limit <= 0 {
		limit = domain.DefaultSearchLimit
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *reader) GetProvider(id int64) (domain.Provider, bool, error) {
	for _, p := range r.store.providers {
		if p.ID == id {
			return p, true, nil
		}
	}
	return domain.Provider{}, false, nil
}

func (r *reader) InsuranceByProvider(ids []int64) (map[int64][]string, error) {
	return collect(r.store.insurance, ids), nil
}

func (r *reader) LanguagesByProvider(ids []int64) (map[int64][]string, error) {
	return collect(r.store.languages, ids), nil
}

func (r *reader) DistinctSpecialties() ([]string, error) {
	seen := make(map[string]struct{})
	for _, p := range r.store.providers {
		seen[p.Specialty] = struct{}{}
	}
	return sortedKeys(seen), nil
}

func (r *reader) DistinctLanguages() ([]string, error) {
	return distinctValues(r.store.languages), nil
}

func (r *reader) DistinctInsurancePlans() ([]string, error) {
	return distinctValues(r.store.insurance), nil
}

func matches(p domain.Provider, q domain.SearchQuery, insurance, languages []string) bool {
	if q.Name != "" {
		if !containsFold(p.FullName, q.Name) &&
			!containsFold(p.FirstName, q.Name) &&
			!containsFold(p.LastName, q.Name) {
			return false
		}
	}
	if q.State != "" && p.State != q.State {
		return false
	}
	if q.City != "" && !containsFold(p.City, q.City) {
		return false
	}
	if q.Zip != "" && !zipMatches(p.ZipCode, q.Zip) {
		return false
	}
	if q.Specialty != "" && !containsFold(p.Specialty, q.Specialty) {
		return false
	}
	if q.Language != "" && !member(languages, q.Language) {
		return false
	}
	if q.Insurance != "" && !member(insurance, q.Insurance) {
		return false
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func zipMatches(stored, pattern string) bool {
	stripped := strings.ReplaceAll(stored, "-", "")
	return strings.Contains(stripped, pattern) || strings.Contains(pattern, stripped)
}

func member(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

func collect(all map[int64][]string, ids []int64) map[int64][]string {
	out := make(map[int64][]string, len(ids))
	for _, id := range ids {
		if vals, ok := all[id]; ok && len(vals) > 0 {
			out[id] = append([]string(nil), vals...)
		}
	}
	return out
}

func distinctValues(all map[int64][]string) []string {
	seen := make(map[string]struct{})
	for _, vals := range all {
		for _, v := range vals {
			seen[v] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
