// Package kpi builds the aggregate summary tables published next to the
// merged dataset. Every table is recomputed in full from the merged rows.
package kpi

import (
	"cmp"
	"math"
	"slices"
	"strconv"

	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/record"
)

// Table names, used as storage targets and in logs.
const (
	PriceByFuel   = "price_by_fuel"
	EVShareByYear = "ev_share_by_year"
	CO2ByFuel     = "co2_by_fuel"
	TopBrands     = "top_brands"
)

// Table is a named, ordered result set ready for a storage.Repository.
// Cells are string, int or float64.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]any
}

// All builds the four tables in their publication order.
func All(rows []record.Merged, topBrands int) []Table {
	return []Table{
		PriceByFuelTable(rows),
		EVShareByYearTable(rows),
		CO2ByFuelTable(rows),
		TopBrandsTable(rows, topBrands),
	}
}

// group collects float samples per string key.
type group struct {
	key    string
	values []float64
}

func groupBy(rows []record.Merged, key func(*record.Merged) string, value func(*record.Merged) (float64, bool)) []*group {
	idx := map[string]*group{}
	var out []*group
	for i := range rows {
		v, ok := value(&rows[i])
		if !ok {
			continue
		}
		k := key(&rows[i])
		g, seen := idx[k]
		if !seen {
			g = &group{key: k}
			idx[k] = g
			out = append(out, g)
		}
		g.values = append(g.values, v)
	}
	// listings desc, key asc
	slices.SortFunc(out, func(a, b *group) int {
		if c := cmp.Compare(len(b.values), len(a.values)); c != 0 {
			return c
		}
		return cmp.Compare(a.key, b.key)
	})
	return out
}

func price(m *record.Merged) (float64, bool) { return m.Price, true }

// ByFuel groups rows by standardized fuel category.
func ByFuel(m *record.Merged) string { return string(m.FuelClean) }

// ByBrand groups rows by cleaned brand.
func ByBrand(m *record.Merged) string { return m.Brand }

// PriceByFuelTable: listings, mean and median price per fuel category.
func PriceByFuelTable(rows []record.Merged) Table {
	t := Table{
		Name:    PriceByFuel,
		Columns: []string{"fuel_type_clean", "listings", "avg_price", "median_price"},
	}
	for _, g := range groupBy(rows, ByFuel, price) {
		t.Rows = append(t.Rows, []any{g.key, len(g.values), Mean(g.values), Median(g.values)})
	}
	return t
}

// EVShareByYearTable: total and electric listings per year with the
// electric share in percent, rounded to two decimals. Years ascend.
func EVShareByYearTable(rows []record.Merged) Table {
	t := Table{
		Name:    EVShareByYear,
		Columns: []string{"year", "total_listings", "ev_listings", "ev_share_pct"},
	}
	type counts struct{ total, ev int }
	byYear := map[int]*counts{}
	for i := range rows {
		c, ok := byYear[rows[i].Year]
		if !ok {
			c = &counts{}
			byYear[rows[i].Year] = c
		}
		c.total++
		if rows[i].FuelClean == record.FuelElectric {
			c.ev++
		}
	}
	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	slices.Sort(years)
	for _, y := range years {
		c := byYear[y]
		t.Rows = append(t.Rows, []any{y, c.total, c.ev, Round2(float64(c.ev) / float64(c.total) * 100)})
	}
	return t
}

// CO2ByFuelTable: vehicles with CO2 data, mean and median CO2 per fuel
// category. Rows without a match are excluded.
func CO2ByFuelTable(rows []record.Merged) Table {
	t := Table{
		Name:    CO2ByFuel,
		Columns: []string{"fuel_type_clean", "vehicles_with_co2", "avg_co2", "median_co2"},
	}
	co2 := func(m *record.Merged) (float64, bool) {
		if m.CO2 == nil {
			return 0, false
		}
		return *m.CO2, true
	}
	for _, g := range groupBy(rows, ByFuel, co2) {
		t.Rows = append(t.Rows, []any{g.key, len(g.values), Mean(g.values), Median(g.values)})
	}
	return t
}

// TopBrandsTable: listings and mean price for the n brands with the most
// listings. Ties are broken by brand name.
func TopBrandsTable(rows []record.Merged, n int) Table {
	t := Table{
		Name:    TopBrands,
		Columns: []string{"brand", "listings", "avg_price"},
	}
	groups := groupBy(rows, ByBrand, price)
	if n >= 0 && len(groups) > n {
		groups = groups[:n]
	}
	for _, g := range groups {
		t.Rows = append(t.Rows, []any{g.key, len(g.values), Mean(g.values)})
	}
	return t
}

// Mean returns the arithmetic mean, NaN for no values.
func Mean(vs []float64) float64 {
	if len(vs) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}

// Median returns the middle value, or the mean of the two middle values for
// an even count. NaN for no values. vs is not modified.
func Median(vs []float64) float64 {
	n := len(vs)
	if n == 0 {
		return math.NaN()
	}
	s := slices.Clone(vs)
	slices.Sort(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Top returns the first n (key, count) pairs of the rows grouped by key,
// ordered by count desc then key asc. Used for stage-end quick checks.
func Top(rows []record.Merged, key func(*record.Merged) string, n int) []KeyCount {
	var out []KeyCount
	for _, g := range groupBy(rows, key, price) {
		if len(out) == n {
			break
		}
		out = append(out, KeyCount{Key: g.key, Count: len(g.values)})
	}
	return out
}

// KeyCount pairs a group key with its row count.
type KeyCount struct {
	Key   string
	Count int
}

func (kc KeyCount) String() string { return kc.Key + "=" + strconv.Itoa(kc.Count) }
