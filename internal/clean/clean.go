// Package clean turns raw listing and emission rows into typed records:
// text is normalized, fuel descriptors standardized, numeric and date cells
// coerced, unusable rows dropped and the emission reference de-duplicated.
package clean

import (
	"context"
	"fmt"
	"strconv"

	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/config"
	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/datasource"
	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/parser/csv"
	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/record"
	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/transformer"
	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/transformer/builtin"
)

// Dataset names used in stats, logs and reject entries.
const (
	DatasetListings  = "listings"
	DatasetEmissions = "emissions"
)

// RejectFunc receives every row removed while cleaning.
type RejectFunc func(dataset, reason string, line int)

// Cleaner applies the dataset rules to raw rows.
type Cleaner struct {
	Rules  config.Rules
	Reject RejectFunc
}

// New returns a Cleaner enforcing rules.
func New(rules config.Rules, reject RejectFunc) *Cleaner {
	return &Cleaner{Rules: rules, Reject: reject}
}

// LoadListings opens src, reads it with ListingLayout and cleans the rows.
func (c *Cleaner) LoadListings(ctx context.Context, src datasource.Source, opt config.Options) ([]record.Listing, Stats, error) {
	rows, parseErrs, err := c.read(ctx, DatasetListings, src, ListingLayout, opt)
	if err != nil {
		return nil, Stats{}, err
	}
	out, st := c.Listings(rows)
	st.ParseErrors = parseErrs.count
	st.parseAgg = parseErrs
	return out, st, nil
}

// LoadEmissions opens src, reads it with EmissionLayout and cleans the rows.
func (c *Cleaner) LoadEmissions(ctx context.Context, src datasource.Source, opt config.Options) ([]record.Emission, Stats, error) {
	rows, parseErrs, err := c.read(ctx, DatasetEmissions, src, EmissionLayout, opt)
	if err != nil {
		return nil, Stats{}, err
	}
	out, st := c.Emissions(rows)
	st.ParseErrors = parseErrs.count
	st.parseAgg = parseErrs
	return out, st, nil
}

func (c *Cleaner) read(ctx context.Context, dataset string, src datasource.Source, layout csv.Layout, opt config.Options) ([]transformer.Row, errAgg, error) {
	agg := errAgg{limit: maxParseErrorsShown}
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, agg, fmt.Errorf("%s: %w", dataset, err)
	}
	rows, err := csv.ReadRows(ctx, rc, layout, opt, func(line int, err error) {
		agg.add(fmt.Sprintf("line %d: %v", line, err))
		c.reject(dataset, ReasonParseError, line)
	})
	if err != nil {
		return nil, agg, fmt.Errorf("%s: %w", dataset, err)
	}
	return rows, agg, nil
}

func (c *Cleaner) reject(dataset, reason string, line int) {
	if c.Reject != nil {
		c.Reject(dataset, reason, line)
	}
}

// listingCandidate carries the coerced cells of one listing row before the
// required-field checks have run.
type listingCandidate struct {
	rec    record.Listing
	year   *int
	price  *float64
	fuelOK bool
}

// Listings cleans raw listing rows aligned to ListingLayout. Rows lacking a
// year, price or fuel category are dropped, as are prices outside the
// exclusive (PriceMin, PriceMax) band and negative mileages.
func (c *Cleaner) Listings(rows []transformer.Row) ([]record.Listing, Stats) {
	st := newStats(DatasetListings)
	st.Read = len(rows)

	cands := make([]listingCandidate, 0, len(rows))
	for i := range rows {
		cands = append(cands, coerceListing(&rows[i]))
	}

	drop := func(lc listingCandidate, reason string) {
		st.Dropped[reason]++
		c.reject(DatasetListings, reason, lc.rec.Line)
	}
	chain := transformer.Chain[listingCandidate]{
		builtin.Require[listingCandidate]{
			Checks: []builtin.Check[listingCandidate]{
				{Name: ReasonMissingYear, OK: func(lc listingCandidate) bool { return lc.year != nil }},
				{Name: ReasonMissingPrice, OK: func(lc listingCandidate) bool { return lc.price != nil }},
				{Name: ReasonMissingFuel, OK: func(lc listingCandidate) bool { return lc.fuelOK }},
				{Name: ReasonPriceRange, OK: func(lc listingCandidate) bool {
					return *lc.price > c.Rules.PriceMin && *lc.price < c.Rules.PriceMax
				}},
				{Name: ReasonMileage, OK: func(lc listingCandidate) bool {
					return lc.rec.MileageKM == nil || *lc.rec.MileageKM >= 0
				}},
			},
			Reject: drop,
		},
	}
	cands = chain.Apply(cands)

	out := make([]record.Listing, 0, len(cands))
	for _, lc := range cands {
		lc.rec.Year = *lc.year
		lc.rec.Price = *lc.price
		st.Fuel[lc.rec.FuelClean]++
		out = append(out, lc.rec)
	}
	st.Kept = len(out)
	return out, st
}

func coerceListing(r *transformer.Row) listingCandidate {
	raw := builtin.Text(r.V[colFuel])
	fuel, ok := builtin.StandardizeFuel(raw)
	transmission := builtin.Text(r.V[colTransmission])
	return listingCandidate{
		rec: record.Listing{
			Line:              r.Line,
			Brand:             builtin.NormalizeText(r.String(colBrand)),
			Model:             builtin.NormalizeText(r.String(colModel)),
			PowerKW:           builtin.Float(r.V[colPower]),
			MileageKM:         builtin.Float(r.V[colMileage]),
			RegistrationDate:  builtin.Date(r.V[colRegistration]),
			FuelType:          raw,
			FuelClean:         fuel,
			Transmission:      transmission,
			TransmissionClean: builtin.NormalizeText(transmission),
		},
		year:   builtin.Int(r.V[colYear]),
		price:  builtin.Float(r.V[colPrice]),
		fuelOK: ok,
	}
}

type emissionCandidate struct {
	rec    record.Emission
	year   *int
	co2    *float64
	fuelOK bool
}

// Emissions cleans raw emission rows aligned to EmissionLayout. Rows lacking
// year, brand, model, fuel category or CO2 are dropped; among rows sharing
// (brand, model, year) only the first in source order survives.
func (c *Cleaner) Emissions(rows []transformer.Row) ([]record.Emission, Stats) {
	st := newStats(DatasetEmissions)
	st.Read = len(rows)

	cands := make([]emissionCandidate, 0, len(rows))
	for i := range rows {
		cands = append(cands, coerceEmission(&rows[i]))
	}

	drop := func(ec emissionCandidate, reason string) {
		st.Dropped[reason]++
		c.reject(DatasetEmissions, reason, ec.rec.Line)
	}
	chain := transformer.Chain[emissionCandidate]{
		builtin.Require[emissionCandidate]{
			Checks: []builtin.Check[emissionCandidate]{
				{Name: ReasonMissingYear, OK: func(ec emissionCandidate) bool { return ec.year != nil }},
				{Name: ReasonMissingBrand, OK: func(ec emissionCandidate) bool { return ec.rec.Brand != "" }},
				{Name: ReasonMissingModel, OK: func(ec emissionCandidate) bool { return ec.rec.Model != "" }},
				{Name: ReasonMissingFuel, OK: func(ec emissionCandidate) bool { return ec.fuelOK }},
				{Name: ReasonMissingCO2, OK: func(ec emissionCandidate) bool { return ec.co2 != nil }},
			},
			Reject: drop,
		},
		builtin.DeDup[emissionCandidate]{
			Key: func(ec emissionCandidate) (string, bool) {
				return builtin.JoinKey(ec.rec.Brand, ec.rec.Model, strconv.Itoa(*ec.year)), true
			},
			Duplicate: func(ec emissionCandidate) { drop(ec, ReasonDuplicate) },
		},
	}
	cands = chain.Apply(cands)

	out := make([]record.Emission, 0, len(cands))
	for _, ec := range cands {
		ec.rec.Year = *ec.year
		ec.rec.CO2 = *ec.co2
		st.Fuel[ec.rec.FuelClean]++
		out = append(out, ec.rec)
	}
	st.Kept = len(out)
	return out, st
}

func coerceEmission(r *transformer.Row) emissionCandidate {
	raw := builtin.Text(r.V[ecolFuel])
	fuel, ok := builtin.StandardizeFuel(raw)
	return emissionCandidate{
		rec: record.Emission{
			Line:            r.Line,
			Brand:           builtin.NormalizeText(r.String(ecolBrand)),
			Model:           builtin.NormalizeText(r.String(ecolModel)),
			FuelType:        raw,
			FuelClean:       fuel,
			EngineSizeL:     builtin.Float(r.V[ecolEngine]),
			MotorKW:         builtin.Float(r.V[ecolMotor]),
			FuelConsumption: builtin.Float(r.V[ecolConsumption]),
		},
		year:   builtin.Int(r.V[ecolYear]),
		co2:    builtin.Float(r.V[ecolCO2]),
		fuelOK: ok,
	}
}
