package builtin

import (
	"strings"

	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/record"
)

// fuelRule is one step of the standardizer cascade. Rules are evaluated in
// slice order and the first rule with a matching token wins, so a value that
// carries both an electric and a hybrid token resolves to electric no matter
// where the tokens sit in the text.
type fuelRule struct {
	fuel   record.FuelType
	tokens []string
}

var fuelRules = []fuelRule{
	{record.FuelElectric, []string{"electric", "ev", "strom", "battery", "elektro"}},
	{record.FuelHybrid, []string{"hybrid", "plug-in", "plugin", "phev"}},
	{record.FuelDiesel, []string{"diesel"}},
	{record.FuelPetrol, []string{"petrol", "gasoline", "benzin"}},
}

// fuelCodes are single-letter codes used by some sources (e.g. the Canadian
// fuel consumption ratings). Compared against the whole normalized value.
var fuelCodes = map[string]record.FuelType{
	"x": record.FuelElectric,
	"e": record.FuelElectric,
	"d": record.FuelDiesel,
	"p": record.FuelPetrol,
	"g": record.FuelPetrol,
}

// StandardizeFuel maps a free-text or coded fuel descriptor onto the closed
// FuelType set. Matching is a substring test on NormalizeText(raw). ok is
// false only for missing input; anything unrecognised is FuelOther.
func StandardizeFuel(raw string) (fuel record.FuelType, ok bool) {
	s := NormalizeText(raw)
	if s == "" {
		return "", false
	}
	for _, rule := range fuelRules {
		for _, tok := range rule.tokens {
			if strings.Contains(s, tok) {
				return rule.fuel, true
			}
		}
	}
	if f, found := fuelCodes[s]; found {
		return f, true
	}
	return record.FuelOther, true
}
