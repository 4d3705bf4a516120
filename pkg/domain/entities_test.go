package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestProviderRecordWireShape(t *testing.T) {
	p := Provider{
		ID: 7, FirstName: "Irina", LastName: "Volkova", FullName: "Dr. Irina Volkova",
		Specialty: "Cardiology", Phone: "555-0103", Email: "irina@example.com",
		Street: "56 Mission St", City: "San Francisco", State: "CA", ZipCode: "94105",
		YearsExperience: 22, AcceptingNewPatients: true, Rating: 4.9,
		LicenseNumber: "CA-7001", BoardCertified: true,
	}
	payload, err := json.Marshal(p.Record(nil, nil))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(payload)
	for _, field := range []string{
		`"id":7`, `"full_name"`, `"first_name"`, `"last_name"`, `"specialty"`,
		`"address":{"street":"56 Mission St","city":"San Francisco","state":"CA","zip":"94105"}`,
		`"years_experience":22`, `"accepting_new_patients":true`,
		`"insurance_accepted":[]`, `"rating":4.9`, `"license_number"`,
		`"board_certified":true`, `"languages":[]`,
	} {
		if !strings.Contains(s, field) {
			t.Fatalf("wire payload missing %s:\n%s", field, s)
		}
	}
}

func TestSeedRowRoundTrip(t *testing.T) {
	seed := ProviderSeed{
		ID: 3, FirstName: "Omar", LastName: "Haddad", FullName: "Dr. Omar Haddad",
		Specialty: "Radiology",
		Address:   Address{Street: "34 Elm St", City: "Houston", State: "TX", Zip: "77002-1100"},
		Rating:    4.2, AcceptingNewPatients: true,
		InsuranceAccepted: []string{"Aetna"}, Languages: []string{"Arabic"},
	}
	row := seed.Row()
	if row.ID != 3 || row.City != "Houston" || row.ZipCode != "77002-1100" {
		t.Fatalf("row = %+v", row)
	}
	rec := row.Record(seed.InsuranceAccepted, seed.Languages)
	if rec.Address != seed.Address {
		t.Fatalf("address mismatch: %+v vs %+v", rec.Address, seed.Address)
	}
	if len(rec.InsuranceAccepted) != 1 || rec.InsuranceAccepted[0] != "Aetna" {
		t.Fatalf("insurance = %v", rec.InsuranceAccepted)
	}
}
