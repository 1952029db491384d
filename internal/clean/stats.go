package clean

import (
	"cmp"
	"log"
	"maps"
	"slices"

	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/record"
)

// Drop reasons reported to Reject and counted in Stats.Dropped.
const (
	ReasonMissingYear   = "missing_year"
	ReasonMissingPrice  = "missing_price"
	ReasonMissingFuel   = "missing_fuel"
	ReasonMissingBrand  = "missing_brand"
	ReasonMissingModel  = "missing_model"
	ReasonMissingCO2    = "missing_co2"
	ReasonPriceRange    = "price_out_of_range"
	ReasonMileage       = "negative_mileage"
	ReasonDuplicate     = "duplicate"
	ReasonParseError    = "parse_error"
	maxParseErrorsShown = 5
)

// Stats summarizes one cleaning pass. The counts satisfy
//
//	Read == Kept + sum(Dropped)
//
// where Read counts data rows the CSV reader produced and Dropped includes
// duplicates. ParseErrors counts malformed lines the reader skipped.
type Stats struct {
	Dataset     string
	Read        int
	Kept        int
	ParseErrors int
	Dropped     map[string]int
	Fuel        map[record.FuelType]int

	parseAgg errAgg
}

func newStats(dataset string) Stats {
	return Stats{
		Dataset:  dataset,
		Dropped:  map[string]int{},
		Fuel:     map[record.FuelType]int{},
		parseAgg: errAgg{limit: maxParseErrorsShown},
	}
}

// DroppedTotal is the number of rows removed by cleaning, duplicates included.
func (s Stats) DroppedTotal() int {
	n := 0
	for _, c := range s.Dropped {
		n += c
	}
	return n
}

// Log prints the stage-end summary: shape, drop reasons, parse error samples
// and the fuel distribution.
func (s Stats) Log() {
	log.Printf("clean: dataset=%s read=%d kept=%d dropped=%d parse_errors=%d",
		s.Dataset, s.Read, s.Kept, s.DroppedTotal(), s.ParseErrors)
	for _, reason := range slices.Sorted(maps.Keys(s.Dropped)) {
		log.Printf("clean: dataset=%s reason=%s rows=%d", s.Dataset, reason, s.Dropped[reason])
	}
	if s.parseAgg.count > 0 {
		log.Printf("clean: dataset=%s parse errors: %d (showing first %d)", s.Dataset, s.parseAgg.count, len(s.parseAgg.first))
		for i, msg := range s.parseAgg.first {
			log.Printf("  #%03d: %s", i+1, msg)
		}
	}
	for _, fc := range FuelDistribution(s.Fuel) {
		log.Printf("clean: dataset=%s fuel=%s rows=%d", s.Dataset, fc.Fuel, fc.Rows)
	}
}

// FuelCount is one entry of a fuel distribution.
type FuelCount struct {
	Fuel record.FuelType
	Rows int
}

// FuelDistribution orders fuel counts by rows desc, then fuel name asc.
func FuelDistribution(m map[record.FuelType]int) []FuelCount {
	out := make([]FuelCount, 0, len(m))
	for f, n := range m {
		out = append(out, FuelCount{Fuel: f, Rows: n})
	}
	slices.SortFunc(out, func(a, b FuelCount) int {
		if c := cmp.Compare(b.Rows, a.Rows); c != 0 {
			return c
		}
		return cmp.Compare(a.Fuel, b.Fuel)
	})
	return out
}

// errAgg keeps the first few error messages and a total count.
type errAgg struct {
	limit int
	count int
	first []string
}

func (a *errAgg) add(msg string) {
	if a.count < a.limit {
		a.first = append(a.first, msg)
	}
	a.count++
}
