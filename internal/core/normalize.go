package core

import (
	"strings"

	"providerdir/pkg/domain"
)

// normalizeCriteria canonicalizes raw filter inputs before they reach the
// query layer. State is uppercased (full-name-to-code mapping is the caller's
// responsibility), zip patterns lose dashes and surrounding whitespace, and
// specialty is fuzzy-corrected against the catalog's distinct values.
// Language and insurance pass through verbatim: they are exact membership
// filters, never partial matches.
func normalizeCriteria(c domain.Criteria, specialties []string) domain.SearchQuery {
	q := domain.SearchQuery{
		Name:      strings.TrimSpace(c.Name),
		State:     strings.ToUpper(strings.TrimSpace(c.State)),
		City:      strings.TrimSpace(c.City),
		Zip:       normalizeZip(c.Zip),
		Specialty: correctSpecialty(strings.TrimSpace(c.Specialty), specialties),
		Language:  c.Language,
		Insurance: c.Insurance,
		Limit:     c.Limit,
	}
	if q.Limit <= 0 {
		q.Limit = domain.DefaultSearchLimit
	}
	return q
}

// normalizeZip strips dash characters and surrounding whitespace so 5-digit
// and extended (+4) forms match each other.
func normalizeZip(zip string) string {
	return strings.ReplaceAll(strings.TrimSpace(zip), "-", "")
}

// fuzzyStemLen is the shared-prefix length accepted as a stem match. Derived
// word forms ("radiologist"/"Radiology", "pediatrician"/"Pediatrics") diverge
// only in their suffix and share a stem well past this length, while unrelated
// specialties ("neurology"/"neurosurgery") fall short of it.
const fuzzyStemLen = 6

// correctSpecialty maps an informal specialty string onto a catalog value.
// An exact (case-sensitive) member passes through untouched. Otherwise, the
// first catalog value where either string contains the other
// case-insensitively, or the two share a stem, is substituted; specialties
// arrive sorted, which pins "first match" deterministically. With no
// candidate the input passes through unchanged, guaranteeing zero matches
// rather than an error.
func correctSpecialty(input string, specialties []string) string {
	if input == "" {
		return ""
	}
	for _, s := range specialties {
		if s == input {
			return input
		}
	}
	lowered := strings.ToLower(input)
	for _, s := range specialties {
		cat := strings.ToLower(s)
		if strings.Contains(cat, lowered) || strings.Contains(lowered, cat) || commonPrefixLen(cat, lowered) >= fuzzyStemLen {
			return s
		}
	}
	return input
}

func commonPrefixLen(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}
