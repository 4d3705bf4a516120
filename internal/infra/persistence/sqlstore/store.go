// Package sqlstore implements the catalog persistence contract over
// database/sql. The sqlite and postgres packages supply the driver and
// dialect; the schema, query construction, transaction scoping, and bulk load
// are shared here.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"providerdir/pkg/domain"
)

// Compile-time contract assertion ensuring the store satisfies the domain interface.
var _ domain.CatalogStore = (*Store)(nil)

// Store is a catalog store backed by a database/sql handle.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// New wraps an open database handle and applies the catalog DDL.
func New(ctx context.Context, db *sql.DB, dialect Dialect) (*Store, error) {
	s := &Store{db: db, dialect: dialect}
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("apply catalog schema: %w", err)
		}
	}
	return s, nil
}

// View runs fn against a read-only transaction scoped to this call. The
// transaction is released on every exit path, including panics unwinding
// through fn.
func (s *Store) View(ctx context.Context, fn func(domain.CatalogReader) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin read transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(&reader{ctx: ctx, tx: tx, dialect: s.dialect}); err != nil {
		return err
	}
	return tx.Commit()
}

// ReplaceCatalog atomically swaps the catalog contents for the supplied
// snapshot: delete everything (affiliations cascade), then insert each seed
// row plus its affiliation rows. Any failure rolls the whole operation back.
func (s *Store) ReplaceCatalog(ctx context.Context, seeds []domain.ProviderSeed) (retErr error) {
	seen := make(map[int64]struct{}, len(seeds))
	for _, seed := range seeds {
		if _, dup := seen[seed.ID]; dup {
			return fmt.Errorf("provider %d: %w", seed.ID, domain.ErrDuplicateProvider)
		}
		seen[seed.ID] = struct{}{}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin load transaction: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM providers`); err != nil {
		retErr = fmt.Errorf("clear catalog: %w", err)
		return retErr
	}

	insertProvider := s.dialect.Rebind(`INSERT INTO providers (
		id, first_name, last_name, full_name, specialty, phone, email,
		street, city, state, zip_code, years_experience,
		accepting_new_patients, rating, license_number, board_certified
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	insertInsurance := s.dialect.Rebind(`INSERT INTO provider_insurance (provider_id, insurance) VALUES (?, ?)`)
	insertLanguage := s.dialect.Rebind(`INSERT INTO provider_language (provider_id, language) VALUES (?, ?)`)

	for _, seed := range seeds {
		p := seed.Row()
		if _, err := tx.ExecContext(ctx, insertProvider,
			p.ID, p.FirstName, p.LastName, p.FullName, p.Specialty, p.Phone, p.Email,
			p.Street, p.City, p.State, p.ZipCode, p.YearsExperience,
			p.AcceptingNewPatients, p.Rating, p.LicenseNumber, p.BoardCertified,
		); err != nil {
			retErr = fmt.Errorf("insert provider %d: %w", p.ID, err)
			return retErr
		}
		for _, plan := range seed.InsuranceAccepted {
			if _, err := tx.ExecContext(ctx, insertInsurance, p.ID, plan); err != nil {
				retErr = fmt.Errorf("insert insurance affiliation for provider %d: %w", p.ID, err)
				return retErr
			}
		}
		for _, lang := range seed.Languages {
			if _, err := tx.ExecContext(ctx, insertLanguage, p.ID, lang); err != nil {
				retErr = fmt.Errorf("insert language affiliation for provider %d: %w", p.ID, err)
				return retErr
			}
		}
	}

	if err := tx.Commit(); err != nil {
		retErr = fmt.Errorf("commit load transaction: %w", err)
		return retErr
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// reader implements domain.CatalogReader over one read transaction.
type reader struct {
	ctx     context.Context
	tx      *sql.Tx
	dialect Dialect
}

func (r *reader) SearchProviders(q domain.SearchQuery) ([]domain.Provider, error) {
	query, args := searchSQL(q)
	rows, err := r.tx.QueryContext(r.ctx, r.dialect.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("search providers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []domain.Provider
	for rows.Next() {
		p, err := scanProvider(rows)
		if err != nil {
			return nil, fmt.Errorf("scan provider: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate providers: %w", err)
	}
	return out, nil
}

func (r *reader) GetProvider(id int64) (domain.Provider, bool, error) {
	query := r.dialect.Rebind("SELECT " + providerColumns + " FROM providers AS p WHERE p.id = ?")
	row := r.tx.QueryRowContext(r.ctx, query, id)
	p, err := scanProvider(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Provider{}, false, nil
	}
	if err != nil {
		return domain.Provider{}, false, fmt.Errorf("get provider %d: %w", id, err)
	}
	return p, true, nil
}

func (r *reader) InsuranceByProvider(ids []int64) (map[int64][]string, error) {
	return r.affiliations("provider_insurance", "insurance", ids)
}

func (r *reader) LanguagesByProvider(ids []int64) (map[int64][]string, error) {
	return r.affiliations("provider_language", "language", ids)
}

func (r *reader) affiliations(table, valueColumn string, ids []int64) (map[int64][]string, error) {
	out := make(map[int64][]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query, args := affiliationSQL(table, valueColumn, ids)
	rows, err := r.tx.QueryContext(r.ctx, r.dialect.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("bulk fetch %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var id int64
		var value string
		if err := rows.Scan(&id, &value); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		out[id] = append(out[id], value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return out, nil
}

func (r *reader) DistinctSpecialties() ([]string, error) {
	return r.distinct(`SELECT DISTINCT specialty FROM providers ORDER BY specialty`)
}

func (r *reader) DistinctLanguages() ([]string, error) {
	return r.distinct(`SELECT DISTINCT language FROM provider_language ORDER BY language`)
}

func (r *reader) DistinctInsurancePlans() ([]string, error) {
	return r.distinct(`SELECT DISTINCT insurance FROM provider_insurance ORDER BY insurance`)
}

func (r *reader) distinct(query string) ([]string, error) {
	rows, err := r.tx.QueryContext(r.ctx, query)
	if err != nil {
		return nil, fmt.Errorf("distinct values: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan distinct value: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate distinct values: %w", err)
	}
	return out, nil
}

// scanTarget covers *sql.Row and *sql.Rows.
type scanTarget interface {
	Scan(dest ...any) error
}

func scanProvider(row scanTarget) (domain.Provider, error) {
	var p domain.Provider
	err := row.Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.FullName, &p.Specialty,
		&p.Phone, &p.Email, &p.Street, &p.City, &p.State, &p.ZipCode,
		&p.YearsExperience, &p.AcceptingNewPatients, &p.Rating,
		&p.LicenseNumber, &p.BoardCertified,
	)
	return p, err
}
