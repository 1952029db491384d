package dataset

import (
	"fmt"
	"time"

	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/record"
	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/transformer"
	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/transformer/builtin"
)

func optFloat(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func optTime(p *time.Time) any {
	if p == nil {
		return nil
	}
	return *p
}

func optText(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func listingValues(l record.Listing) []any {
	return []any{
		optText(l.Brand), optText(l.Model), l.Year, l.Price,
		optFloat(l.PowerKW), optFloat(l.MileageKM), optTime(l.RegistrationDate),
		optText(l.FuelType), optText(l.Transmission),
		string(l.FuelClean), optText(l.TransmissionClean),
	}
}

// EncodeListings renders listings in ListingColumns order.
func EncodeListings(ls []record.Listing) [][]any {
	out := make([][]any, len(ls))
	for i, l := range ls {
		out[i] = listingValues(l)
	}
	return out
}

// EncodeEmissions renders emissions in EmissionColumns order.
func EncodeEmissions(es []record.Emission) [][]any {
	out := make([][]any, len(es))
	for i, e := range es {
		out[i] = []any{
			e.Year, optText(e.Brand), optText(e.Model), optText(e.FuelType),
			optFloat(e.EngineSizeL), optFloat(e.MotorKW), optFloat(e.FuelConsumption), e.CO2,
			string(e.FuelClean),
		}
	}
	return out
}

// EncodeMerged renders merged rows in MergedColumns order.
func EncodeMerged(ms []record.Merged) [][]any {
	out := make([][]any, len(ms))
	for i, m := range ms {
		out[i] = append(listingValues(m.Listing),
			optText(m.BrandKey), optText(m.ModelKey), optText(m.ModelBase),
			optFloat(m.CO2), optFloat(m.EngineSizeL), optFloat(m.MotorKW), optFloat(m.FuelConsumption),
			m.CarAge, optText(m.PriceBand), optText(m.MileageBand), optText(m.PowerBand), m.HasCO2,
		)
	}
	return out
}

// cells reads named columns of one row.
type cells struct {
	row *transformer.Row
	idx map[string]int
}

func (c cells) raw(name string) any { return c.row.V[c.idx[name]] }

func (c cells) text(name string) string { return builtin.Text(c.raw(name)) }

func (c cells) number(name string) *float64 { return builtin.Float(c.raw(name)) }

func (c cells) integer(name string) *int { return builtin.Int(c.raw(name)) }

func (c cells) reqInt(name string) (int, error) {
	p := c.integer(name)
	if p == nil {
		return 0, fmt.Errorf("line %d: %s: not an integer: %q", c.row.Line, name, c.text(name))
	}
	return *p, nil
}

func (c cells) reqFloat(name string) (float64, error) {
	p := c.number(name)
	if p == nil {
		return 0, fmt.Errorf("line %d: %s: not a number: %q", c.row.Line, name, c.text(name))
	}
	return *p, nil
}

func (c cells) fuel(name string) (record.FuelType, error) {
	f, ok := record.ParseFuelType(c.text(name))
	if !ok {
		return "", fmt.Errorf("line %d: %s: unknown category %q", c.row.Line, name, c.text(name))
	}
	return f, nil
}

func decodeListing(c cells) (record.Listing, error) {
	l := record.Listing{
		Line:              c.row.Line,
		Brand:             c.text("brand"),
		Model:             c.text("model"),
		PowerKW:           c.number("power_kw"),
		MileageKM:         c.number("mileage_in_km"),
		RegistrationDate:  builtin.Date(c.raw("registration_date")),
		FuelType:          c.text("fuel_type"),
		Transmission:      c.text("transmission_type"),
		TransmissionClean: c.text("transmission_type_clean"),
	}
	var err error
	if l.Year, err = c.reqInt("year"); err != nil {
		return l, err
	}
	if l.Price, err = c.reqFloat("price_in_euro"); err != nil {
		return l, err
	}
	if l.FuelClean, err = c.fuel("fuel_type_clean"); err != nil {
		return l, err
	}
	return l, nil
}

// DecodeListings converts rows read with ListingColumns back to listings.
// Required fields that fail to parse are errors: the table is ours, so a
// bad cell means the file is corrupt rather than dirty.
func DecodeListings(rows []transformer.Row) ([]record.Listing, error) {
	out := make([]record.Listing, 0, len(rows))
	for i := range rows {
		l, err := decodeListing(cells{&rows[i], listingIdx})
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

// DecodeEmissions converts rows read with EmissionColumns back to emissions.
func DecodeEmissions(rows []transformer.Row) ([]record.Emission, error) {
	out := make([]record.Emission, 0, len(rows))
	for i := range rows {
		c := cells{&rows[i], emissionIdx}
		e := record.Emission{
			Line:            rows[i].Line,
			Brand:           c.text("brand"),
			Model:           c.text("model"),
			FuelType:        c.text("fuel_type"),
			EngineSizeL:     c.number("engine_size_l"),
			MotorKW:         c.number("motor_kw"),
			FuelConsumption: c.number("fuel_consumption_l_100km"),
		}
		var err error
		if e.Year, err = c.reqInt("year"); err != nil {
			return nil, err
		}
		if e.CO2, err = c.reqFloat("co2_g_km"); err != nil {
			return nil, err
		}
		if e.FuelClean, err = c.fuel("fuel_type_clean"); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// DecodeMerged converts rows read with MergedColumns back to merged rows.
func DecodeMerged(rows []transformer.Row) ([]record.Merged, error) {
	out := make([]record.Merged, 0, len(rows))
	for i := range rows {
		c := cells{&rows[i], mergedIdx}
		l, err := decodeListing(c)
		if err != nil {
			return nil, err
		}
		m := record.Merged{
			Listing:         l,
			BrandKey:        c.text("brand_n"),
			ModelKey:        c.text("model_n"),
			ModelBase:       c.text("model_base"),
			CO2:             c.number("co2_g_km"),
			EngineSizeL:     c.number("engine_size_l"),
			MotorKW:         c.number("motor_kw"),
			FuelConsumption: c.number("fuel_consumption_l_100km"),
			PriceBand:       c.text("price_band"),
			MileageBand:     c.text("mileage_band"),
			PowerBand:       c.text("power_band_kw"),
		}
		if m.CarAge, err = c.reqInt("car_age"); err != nil {
			return nil, err
		}
		switch flag := c.text("has_co2_data"); flag {
		case "1":
			m.HasCO2 = true
		case "0":
		default:
			return nil, fmt.Errorf("line %d: has_co2_data: want 1 or 0, got %q", rows[i].Line, flag)
		}
		out = append(out, m)
	}
	return out, nil
}
