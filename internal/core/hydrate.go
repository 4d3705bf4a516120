package core

import (
	"providerdir/pkg/domain"
)

// hydrate assembles complete wire records for a matched page: exactly one
// bulk query per junction table regardless of page size, then per-provider
// grouping. Fetching affiliations per provider in a loop would turn an
// O(1)-round-trip page fetch into O(page size) round trips, so it is
// deliberately impossible through this path. Result order is preserved.
func hydrate(r domain.CatalogReader, providers []domain.Provider) ([]domain.ProviderRecord, error) {
	records := make([]domain.ProviderRecord, 0, len(providers))
	if len(providers) == 0 {
		return records, nil
	}

	ids := make([]int64, len(providers))
	for i, p := range providers {
		ids[i] = p.ID
	}

	insurance, err := r.InsuranceByProvider(ids)
	if err != nil {
		return nil, err
	}
	languages, err := r.LanguagesByProvider(ids)
	if err != nil {
		return nil, err
	}

	for _, p := range providers {
		records = append(records, p.Record(insurance[p.ID], languages[p.ID]))
	}
	return records, nil
}
