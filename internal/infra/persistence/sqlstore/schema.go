package sqlstore

// Catalog DDL, portable across the sqlite and postgres backends. Every filter
// predicate the query layer emits is backed by an index here: point/range
// indexes on specialty, city, state, and rating, and junction-table indexes on
// the value column (membership filtering) and provider_id (bulk hydration).
// Affiliation rows are exclusively owned by their provider and cascade on
// delete.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS providers (
		id BIGINT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		full_name TEXT NOT NULL,
		specialty TEXT NOT NULL,
		phone TEXT NOT NULL,
		email TEXT NOT NULL,
		street TEXT NOT NULL,
		city TEXT NOT NULL,
		state TEXT NOT NULL,
		zip_code TEXT NOT NULL,
		years_experience INTEGER NOT NULL,
		accepting_new_patients BOOLEAN NOT NULL,
		rating DOUBLE PRECISION NOT NULL,
		license_number TEXT NOT NULL,
		board_certified BOOLEAN NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_providers_specialty ON providers(specialty)`,
	`CREATE INDEX IF NOT EXISTS idx_providers_city ON providers(city)`,
	`CREATE INDEX IF NOT EXISTS idx_providers_state ON providers(state)`,
	`CREATE INDEX IF NOT EXISTS idx_providers_rating ON providers(rating)`,
	`CREATE TABLE IF NOT EXISTS provider_insurance (
		provider_id BIGINT NOT NULL REFERENCES providers(id) ON DELETE CASCADE,
		insurance TEXT NOT NULL,
		PRIMARY KEY (provider_id, insurance)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_provider_insurance_insurance ON provider_insurance(insurance)`,
	`CREATE INDEX IF NOT EXISTS idx_provider_insurance_provider ON provider_insurance(provider_id)`,
	`CREATE TABLE IF NOT EXISTS provider_language (
		provider_id BIGINT NOT NULL REFERENCES providers(id) ON DELETE CASCADE,
		language TEXT NOT NULL,
		PRIMARY KEY (provider_id, language)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_provider_language_language ON provider_language(language)`,
	`CREATE INDEX IF NOT EXISTS idx_provider_language_provider ON provider_language(provider_id)`,
}
