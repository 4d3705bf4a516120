// Package domain defines the catalog entities, search criteria, wire records,
// and persistence contracts used by the provider directory engine.
package domain

// Provider is one catalog row: a searchable service provider with scalar
// attributes. Affiliation sets (insurance plans, languages) live in their own
// junction tables and are resolved during hydration.
type Provider struct {
	ID                   int64
	FirstName            string
	LastName             string
	FullName             string
	Specialty            string
	Phone                string
	Email                string
	Street               string
	City                 string
	State                string // uppercase 2-letter code
	ZipCode              string
	YearsExperience      int
	AcceptingNewPatients bool
	Rating               float64
	LicenseNumber        string
	BoardCertified       bool
}

// Address is the nested address object of the wire record.
type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

// ProviderRecord is the fully hydrated wire shape returned to callers:
// scalar fields plus both resolved affiliation lists. Affiliation slices are
// always non-nil so the serialized form carries empty arrays, never missing
// fields.
type ProviderRecord struct {
	ID                   int64    `json:"id"`
	FullName             string   `json:"full_name"`
	FirstName            string   `json:"first_name"`
	LastName             string   `json:"last_name"`
	Specialty            string   `json:"specialty"`
	Phone                string   `json:"phone"`
	Email                string   `json:"email"`
	Address              Address  `json:"address"`
	YearsExperience      int      `json:"years_experience"`
	AcceptingNewPatients bool     `json:"accepting_new_patients"`
	InsuranceAccepted    []string `json:"insurance_accepted"`
	Rating               float64  `json:"rating"`
	LicenseNumber        string   `json:"license_number"`
	BoardCertified       bool     `json:"board_certified"`
	Languages            []string `json:"languages"`
}

// ProviderSeed is one record of a bulk-load snapshot: the scalar fields plus
// both affiliation lists. Its JSON shape matches ProviderRecord so a catalog
// export can be re-loaded verbatim.
type ProviderSeed struct {
	ID                   int64    `json:"id"`
	FirstName            string   `json:"first_name"`
	LastName             string   `json:"last_name"`
	FullName             string   `json:"full_name"`
	Specialty            string   `json:"specialty"`
	Phone                string   `json:"phone"`
	Email                string   `json:"email"`
	Address              Address  `json:"address"`
	YearsExperience      int      `json:"years_experience"`
	AcceptingNewPatients bool     `json:"accepting_new_patients"`
	InsuranceAccepted    []string `json:"insurance_accepted"`
	Rating               float64  `json:"rating"`
	LicenseNumber        string   `json:"license_number"`
	BoardCertified       bool     `json:"board_certified"`
	Languages            []string `json:"languages"`
}

// Criteria carries raw, caller-supplied search filters. Every field is
// optional; the empty string (or zero Limit) means "no filter on this
// attribute". Values are normalized once by the engine before querying, never
// re-parsed at individual filter sites.
type Criteria struct {
	State     string
	City      string
	Zip       string
	Specialty string
	Language  string
	Insurance string
	Name      string
	Limit     int
}

// SearchQuery is the normalized form of Criteria consumed by the query layer.
// Name, City, Specialty, and Zip are case-insensitive partial patterns; State
// is an exact uppercase code; Language and Insurance are exact junction-table
// values. Limit is always positive.
type SearchQuery struct {
	Name      string
	State     string
	City      string
	Zip       string
	Specialty string
	Language  string
	Insurance string
	Limit     int
}

// SearchResult is the engine's answer to a search call.
type SearchResult struct {
	Providers []ProviderRecord `json:"providers"`
	Count     int              `json:"count"`
}

// DefaultSearchLimit bounds result pages when the caller does not supply one.
const DefaultSearchLimit = 5

// Record converts a catalog row into its hydrated wire shape. The affiliation
// slices default to empty, never nil.
func (p Provider) Record(insurance, languages []string) ProviderRecord {
	if insurance == nil {
		insurance = []string{}
	}
	if languages == nil {
		languages = []string{}
	}
	return ProviderRecord{
		ID:        p.ID,
		FullName:  p.FullName,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Specialty: p.Specialty,
		Phone:     p.Phone,
		Email:     p.Email,
		Address: Address{
			Street: p.Street,
			City:   p.City,
			State:  p.State,
			Zip:    p.ZipCode,
		},
		YearsExperience:      p.YearsExperience,
		AcceptingNewPatients: p.AcceptingNewPatients,
		InsuranceAccepted:    insurance,
		Rating:               p.Rating,
		LicenseNumber:        p.LicenseNumber,
		BoardCertified:       p.BoardCertified,
		Languages:            languages,
	}
}

// Row converts a seed record into its catalog row form.
func (s ProviderSeed) Row() Provider {
	return Provider{
		ID:                   s.ID,
		FirstName:            s.FirstName,
		LastName:             s.LastName,
		FullName:             s.FullName,
		Specialty:            s.Specialty,
		Phone:                s.Phone,
		Email:                s.Email,
		Street:               s.Address.Street,
		City:                 s.Address.City,
		State:                s.Address.State,
		ZipCode:              s.Address.Zip,
		YearsExperience:      s.YearsExperience,
		AcceptingNewPatients: s.AcceptingNewPatients,
		Rating:               s.Rating,
		LicenseNumber:        s.LicenseNumber,
		BoardCertified:       s.BoardCertified,
	}
}
