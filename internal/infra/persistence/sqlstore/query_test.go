package sqlstore

import (
	"strings"
	"testing"

	"providerdir/pkg/domain"
)

func TestSearchSQLNoFilters(t *testing.T) {
	query, args := searchSQL(domain.SearchQuery{Limit: 5})
	if strings.Contains(query, "WHERE") || strings.Contains(query, "JOIN") {
		t.Fatalf("empty criteria must match the whole catalog: %s", query)
	}
	if !strings.Contains(query, "ORDER BY p.accepting_new_patients DESC, p.rating DESC, p.id ASC") {
		t.Fatalf("missing ranking order: %s", query)
	}
	if !strings.HasSuffix(query, "LIMIT ?") {
		t.Fatalf("missing limit: %s", query)
	}
	if len(args) != 1 || args[0] != 5 {
		t.Fatalf("args = %v", args)
	}
}

func TestSearchSQLScalarFilters(t *testing.T) {
	query, args := searchSQL(domain.SearchQuery{
		Name:      "Chen",
		State:     "TX",
		City:      "Houston",
		Zip:       "770021100",
		Specialty: "Radiology",
		Limit:     5,
	})
	for _, want := range []string{
		"(LOWER(p.full_name) LIKE ? OR LOWER(p.first_name) LIKE ? OR LOWER(p.last_name) LIKE ?)",
		"p.state = ?",
		"LOWER(p.city) LIKE ?",
		"REPLACE(p.zip_code, '-', '')",
		"LOWER(p.specialty) LIKE ?",
	} {
		if !strings.Contains(query, want) {
			t.Fatalf("query missing %q:\n%s", want, query)
		}
	}
	// name x3, state, city, zip x2, specialty, limit
	if len(args) != 9 {
		t.Fatalf("args = %v", args)
	}
	if args[0] != "%chen%" {
		t.Fatalf("name pattern = %v", args[0])
	}
	if args[3] != "TX" {
		t.Fatalf("state arg = %v", args[3])
	}
	if args[5] != "%770021100%" || args[6] != "770021100" {
		t.Fatalf("zip args = %v %v", args[5], args[6])
	}
}

func TestSearchSQLAffiliationJoins(t *testing.T) {
	query, args := searchSQL(domain.SearchQuery{Language: "Russian", Insurance: "Aetna", Limit: 5})
	if !strings.Contains(query, "JOIN provider_language AS pl ON pl.provider_id = p.id AND pl.language = ?") {
		t.Fatalf("missing language join: %s", query)
	}
	if !strings.Contains(query, "JOIN provider_insurance AS pi ON pi.provider_id = p.id AND pi.insurance = ?") {
		t.Fatalf("missing insurance join: %s", query)
	}
	if !strings.HasPrefix(query, "SELECT DISTINCT") {
		t.Fatalf("joined query must deduplicate: %s", query)
	}
	if len(args) != 3 || args[0] != "Russian" || args[1] != "Aetna" {
		t.Fatalf("args = %v", args)
	}
}

func TestSearchSQLDefaultsLimit(t *testing.T) {
	_, args := searchSQL(domain.SearchQuery{})
	if args[len(args)-1] != domain.DefaultSearchLimit {
		t.Fatalf("limit arg = %v, want default", args[len(args)-1])
	}
}

func TestAffiliationSQL(t *testing.T) {
	query, args := affiliationSQL("provider_language", "language", []int64{7, 8, 9})
	want := "SELECT provider_id, language FROM provider_language WHERE provider_id IN (?,?,?)"
	if query != want {
		t.Fatalf("query = %s", query)
	}
	if len(args) != 3 || args[0] != int64(7) || args[2] != int64(9) {
		t.Fatalf("args = %v", args)
	}
}

func TestRebind(t *testing.T) {
	q := "SELECT * FROM providers WHERE state = ? AND city LIKE ? LIMIT ?"
	if got := SQLite.Rebind(q); got != q {
		t.Fatalf("sqlite rebind must be identity: %s", got)
	}
	want := "SELECT * FROM providers WHERE state = $1 AND city LIKE $2 LIMIT $3"
	if got := Postgres.Rebind(q); got != want {
		t.Fatalf("postgres rebind = %s", got)
	}
}
