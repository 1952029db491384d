package linkage

import (
	"math"

	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/record"
)

// Result is the output of LeftJoin.
type Result struct {
	Rows    []record.Merged
	Matched int
}

// MatchRate is the percentage of rows that found an emission entry, rounded
// to two decimals. It is 0 for an empty result.
func (r Result) MatchRate() float64 {
	if len(r.Rows) == 0 {
		return 0
	}
	return math.Round(float64(r.Matched)/float64(len(r.Rows))*100*100) / 100
}

// LeftJoin attaches emission fields to every listing whose (brand, model
// base, year) key is present in ix. Every listing yields exactly one output
// row, in input order; unmatched rows carry nil emission fields and
// HasCO2 == false.
func LeftJoin(listings []record.Listing, ix *Index) Result {
	res := Result{Rows: make([]record.Merged, len(listings))}
	for i, l := range listings {
		keys := Derive(l.Brand, l.Model)
		m := record.Merged{
			Listing:   l,
			BrandKey:  keys.BrandN,
			ModelKey:  keys.ModelN,
			ModelBase: keys.ModelBase,
		}
		if k, ok := keys.Key(l.Year); ok {
			if e, found := ix.Lookup(k); found {
				co2 := e.CO2
				m.CO2 = &co2
				m.EngineSizeL = clone(e.EngineSizeL)
				m.MotorKW = clone(e.MotorKW)
				m.FuelConsumption = clone(e.FuelConsumption)
				m.HasCO2 = true
				res.Matched++
			}
		}
		res.Rows[i] = m
	}
	return res
}

func clone(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
