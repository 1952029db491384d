// Package dataset maps typed records to and from the flat tables the
// pipeline publishes. The column lists below are the output schema; the
// intermediate files written by one stage are read back by the next with the
// same lists.
package dataset

// ListingColumns is the schema of the cleaned listings table.
var ListingColumns = []string{
	"brand", "model", "year", "price_in_euro", "power_kw", "mileage_in_km",
	"registration_date", "fuel_type", "transmission_type",
	"fuel_type_clean", "transmission_type_clean",
}

// EmissionColumns is the schema of the cleaned emissions table.
var EmissionColumns = []string{
	"year", "brand", "model", "fuel_type",
	"engine_size_l", "motor_kw", "fuel_consumption_l_100km", "co2_g_km",
	"fuel_type_clean",
}

// MergedColumns is the schema of the merged table: the listing columns,
// the join keys, the attached emission fields and the derived features.
var MergedColumns = append(append([]string(nil), ListingColumns...),
	"brand_n", "model_n", "model_base",
	"co2_g_km", "engine_size_l", "motor_kw", "fuel_consumption_l_100km",
	"car_age", "price_band", "mileage_band", "power_band_kw", "has_co2_data",
)

func indexOf(cols []string) map[string]int {
	m := make(map[string]int, len(cols))
	for i, c := range cols {
		m[c] = i
	}
	return m
}

var (
	listingIdx  = indexOf(ListingColumns)
	emissionIdx = indexOf(EmissionColumns)
	mergedIdx   = indexOf(MergedColumns)
)
