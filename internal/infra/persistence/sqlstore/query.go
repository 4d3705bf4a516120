package sqlstore

import (
	"strconv"
	"strings"

	"providerdir/pkg/domain"
)

// Dialect selects placeholder binding for a backend. Queries are written with
// ? placeholders and rebound to $n for postgres.
type Dialect int

// Supported SQL dialects.
const (
	SQLite Dialect = iota
	Postgres
)

// Rebind rewrites ? placeholders into the dialect's native form.
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

const providerColumns = `p.id, p.first_name, p.last_name, p.full_name, p.specialty,
	p.phone, p.email, p.street, p.city, p.state, p.zip_code,
	p.years_experience, p.accepting_new_patients, p.rating,
	p.license_number, p.board_certified`

// searchSQL turns a normalized query into a single filtered, joined, ordered,
// limited SELECT. Scalar predicates AND together; each affiliation filter adds
// an inner join on exact value equality. DISTINCT guards against a provider
// appearing twice through a join, and the ordering is the ranking contract:
// providers accepting new patients first, then highest rating, then id as the
// deterministic tie-break.
func searchSQL(q domain.SearchQuery) (string, []any) {
	var b strings.Builder
	var args []any

	b.WriteString("SELECT DISTINCT ")
	b.WriteString(providerColumns)
	b.WriteString(" FROM providers AS p")

	if q.Language != "" {
		b.WriteString(" JOIN provider_language AS pl ON pl.provider_id = p.id AND pl.language = ?")
		args = append(args, q.Language)
	}
	if q.Insurance != "" {
		b.WriteString(" JOIN provider_insurance AS pi ON pi.provider_id = p.id AND pi.insurance = ?")
		args = append(args, q.Insurance)
	}

	var where []string
	if q.Name != "" {
		where = append(where, "(LOWER(p.full_name) LIKE ? OR LOWER(p.first_name) LIKE ? OR LOWER(p.last_name) LIKE ?)")
		pat := likePattern(q.Name)
		args = append(args, pat, pat, pat)
	}
	if q.State != "" {
		where = append(where, "p.state = ?")
		args = append(args, q.State)
	}
	if q.City != "" {
		where = append(where, "LOWER(p.city) LIKE ?")
		args = append(args, likePattern(q.City))
	}
	if q.Zip != "" {
		// Dash-stripped containment in both directions, so a 5-digit stored
		// zip matches an extended pattern and vice versa.
		where = append(where, "(REPLACE(p.zip_code, '-', '') LIKE ? OR ? LIKE '%' || REPLACE(p.zip_code, '-', '') || '%')")
		args = append(args, likePattern(q.Zip), q.Zip)
	}
	if q.Specialty != "" {
		where = append(where, "LOWER(p.specialty) LIKE ?")
		args = append(args, likePattern(q.Specialty))
	}
	if len(where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}

	b.WriteString(" ORDER BY p.accepting_new_patients DESC, p.rating DESC, p.id ASC")

	limit := q.Limit
	if limit <= 0 {
		limit = domain.DefaultSearchLimit
	}
	b.WriteString(" LIMIT ?")
	args = append(args, limit)

	return b.String(), args
}

func likePattern(v string) string {
	return "%" + strings.ToLower(v) + "%"
}

// affiliationSQL builds the bulk hydration query for one junction table:
// a single provider_id IN (...) scan covering a whole result page.
func affiliationSQL(table, valueColumn string, ids []int64) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT provider_id, ")
	b.WriteString(valueColumn)
	b.WriteString(" FROM ")
	b.WriteString(table)
	b.WriteString(" WHERE provider_id IN (")
	args := make([]any, 0, len(ids))
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('?')
		args = append(args, id)
	}
	b.WriteByte(')')
	return b.String(), args
}
