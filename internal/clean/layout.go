package clean

import "github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/parser/csv"

// Listing source columns, in layout order.
const (
	colBrand = iota
	colModel
	colYear
	colPrice
	colPower
	colMileage
	colRegistration
	colFuel
	colTransmission
)

// ListingLayout selects the listing columns the pipeline uses. Everything
// else in the source (including the "no" index column) is dropped.
var ListingLayout = csv.Layout{
	Columns: []string{
		"brand", "model", "year", "price_in_euro", "power_kw",
		"mileage_in_km", "registration_date", "fuel_type", "transmission_type",
	},
	Required: []string{"brand", "model", "year", "price_in_euro", "fuel_type"},
}

// Emission source columns, in layout order.
const (
	ecolYear = iota
	ecolBrand
	ecolModel
	ecolFuel
	ecolEngine
	ecolMotor
	ecolConsumption
	ecolCO2
)

// EmissionLayout renames the reference dataset's headers onto the listing
// vocabulary and keeps only the columns needed for linking.
var EmissionLayout = csv.Layout{
	Columns: []string{
		"year", "brand", "model", "fuel_type",
		"engine_size_l", "motor_kw", "fuel_consumption_l_100km", "co2_g_km",
	},
	Required: []string{"year", "brand", "model", "fuel_type", "co2_g_km"},
	HeaderMap: map[string]string{
		"Year":                               "year",
		"Make":                               "brand",
		"Model":                              "model",
		"Fuel Type":                          "fuel_type",
		"Engine Size (L)":                    "engine_size_l",
		"Motor (kW)":                         "motor_kw",
		"Fuel Consumption [Comb (L/100 km)]": "fuel_consumption_l_100km",
		"CO2 Emissions (g/km)":               "co2_g_km",
	},
}
