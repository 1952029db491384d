// Package record defines the strongly typed rows that flow between pipeline
// stages. Required attributes are plain values; optional attributes are
// pointers, where nil means the source cell was missing or could not be
// coerced. Free-text attributes use "" for missing.
package record

import "time"

// Listing is one cleaned used-vehicle offer.
type Listing struct {
	// Line is the 1-based line of the file the row was read from. It is not
	// serialized.
	Line int

	Brand string
	Model string
	Year  int
	Price float64

	PowerKW          *float64
	MileageKM        *float64
	RegistrationDate *time.Time

	FuelType          string // raw descriptor as found in the source
	FuelClean         FuelType
	Transmission      string
	TransmissionClean string
}

// Emission is one cleaned make/model/year CO2 reference entry.
type Emission struct {
	Line int

	Year  int
	Brand string
	Model string

	FuelType  string
	FuelClean FuelType

	EngineSizeL     *float64
	MotorKW         *float64
	FuelConsumption *float64 // l/100km, combined
	CO2             float64  // g/km
}

// Merged is a Listing augmented with the emission fields of its matching
// Emission, if any, plus derived features.
type Merged struct {
	Listing

	BrandKey  string // strict-normalized brand
	ModelKey  string // strict-normalized model
	ModelBase string // coarsened model key, "" when none could be derived

	CO2             *float64
	EngineSizeL     *float64
	MotorKW         *float64
	FuelConsumption *float64
	HasCO2          bool

	CarAge      int
	PriceBand   string
	MileageBand string
	PowerBand   string
}
