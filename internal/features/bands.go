// Package features derives the per-row reporting columns of the merged
// dataset: car age and the price, mileage and power bands.
package features

import "sort"

// Interval is one named bucket. Open and closed ends are explicit so the
// boundary semantics of each scheme are reproduced exactly.
type Interval struct {
	Lower, Upper             float64
	LowerClosed, UpperClosed bool
	Label                    string
}

// Contains reports whether v falls inside the interval.
func (iv Interval) Contains(v float64) bool {
	if v < iv.Lower || (v == iv.Lower && !iv.LowerClosed) {
		return false
	}
	if v > iv.Upper || (v == iv.Upper && !iv.UpperClosed) {
		return false
	}
	return true
}

// Bands is an ordered, non-overlapping list of intervals.
type Bands []Interval

// Label returns the label of the interval containing v, or "" when v falls
// outside every interval.
func (b Bands) Label(v float64) string {
	// First interval whose upper end is not entirely below v.
	i := sort.Search(len(b), func(i int) bool {
		return v < b[i].Upper || (v == b[i].Upper && b[i].UpperClosed)
	})
	if i < len(b) && b[i].Contains(v) {
		return b[i].Label
	}
	return ""
}

// PriceBands are left-closed, except the last which is closed on both ends.
var PriceBands = Bands{
	{0, 5000, true, false, "0-5k"},
	{5000, 10000, true, false, "5-10k"},
	{10000, 20000, true, false, "10-20k"},
	{20000, 30000, true, false, "20-30k"},
	{30000, 50000, true, false, "30-50k"},
	{50000, 100000, true, false, "50-100k"},
	{100000, 300000, true, true, "100k+"},
}

// MileageBands are right-closed; the first starts above -1 so 0 km is
// included.
var MileageBands = Bands{
	{-1, 20000, false, true, "0-20k"},
	{20000, 50000, false, true, "20-50k"},
	{50000, 100000, false, true, "50-100k"},
	{100000, 150000, false, true, "100-150k"},
	{150000, 200000, false, true, "150-200k"},
	{200000, 5000000, false, true, "200k+"},
}

// PowerBands (kW) are right-closed.
var PowerBands = Bands{
	{0, 50, false, true, "0-50"},
	{50, 75, false, true, "50-75"},
	{75, 100, false, true, "75-100"},
	{100, 150, false, true, "100-150"},
	{150, 250, false, true, "150-250"},
	{250, 2000, false, true, "250+"},
}
