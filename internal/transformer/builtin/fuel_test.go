package builtin

import (
	"testing"

	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/record"
)

/*
TestStandardizeFuel_TableDriven covers every step of the cascade, the letter
codes, the fallback, and missing input.
*/
func TestStandardizeFuel_TableDriven(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		in     string
		want   record.FuelType
		wantOK bool
	}{
		{name: "missing", in: "", want: "", wantOK: false},
		{name: "blank_is_missing", in: "   ", want: "", wantOK: false},
		{name: "electric_word", in: "Electric", want: record.FuelElectric, wantOK: true},
		{name: "german_elektro", in: "Elektro", want: record.FuelElectric, wantOK: true},
		{name: "battery", in: "Battery EV", want: record.FuelElectric, wantOK: true},
		{name: "hybrid", in: "Hybrid", want: record.FuelHybrid, wantOK: true},
		{name: "plug_in", in: "Plug-in", want: record.FuelHybrid, wantOK: true},
		{name: "diesel_hybrid_is_hybrid", in: "Diesel Hybrid", want: record.FuelHybrid, wantOK: true},
		{name: "diesel", in: " DIESEL ", want: record.FuelDiesel, wantOK: true},
		{name: "petrol", in: "Petrol", want: record.FuelPetrol, wantOK: true},
		{name: "gasoline", in: "Premium Gasoline", want: record.FuelPetrol, wantOK: true},
		{name: "benzin", in: "Benzin", want: record.FuelPetrol, wantOK: true},
		{name: "code_x", in: "X", want: record.FuelElectric, wantOK: true},
		{name: "code_e", in: "e", want: record.FuelElectric, wantOK: true},
		{name: "code_d", in: "D", want: record.FuelDiesel, wantOK: true},
		{name: "code_p", in: "P", want: record.FuelPetrol, wantOK: true},
		{name: "code_g", in: "g", want: record.FuelPetrol, wantOK: true},
		{name: "unknown_code", in: "Z", want: record.FuelOther, wantOK: true},
		{name: "lpg", in: "LPG", want: record.FuelOther, wantOK: true},
		{name: "code_must_be_whole_value", in: "dx", want: record.FuelOther, wantOK: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := StandardizeFuel(tc.in)
			if got != tc.want || ok != tc.wantOK {
				t.Fatalf("StandardizeFuel(%q) = (%q, %v); want (%q, %v)", tc.in, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

/*
TestStandardizeFuel_PriorityOrder verifies that electric tokens win over
hybrid tokens regardless of their position in the text.
*/
func TestStandardizeFuel_PriorityOrder(t *testing.T) {
	t.Parallel()

	for _, in := range []string{
		"ev hybrid assist",
		"hybrid ev",
		"phev electric-assist",
		"Plug-in Hybrid / Electric",
	} {
		if got, _ := StandardizeFuel(in); got != record.FuelElectric {
			t.Fatalf("StandardizeFuel(%q) = %q; want %q", in, got, record.FuelElectric)
		}
	}

	if got, _ := StandardizeFuel("hybrid diesel"); got != record.FuelHybrid {
		t.Fatalf("StandardizeFuel(hybrid diesel) = %q; want hybrid", got)
	}
	if got, _ := StandardizeFuel("diesel petrol"); got != record.FuelDiesel {
		t.Fatalf("StandardizeFuel(diesel petrol) = %q; want diesel", got)
	}
}
