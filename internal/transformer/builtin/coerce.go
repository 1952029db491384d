package builtin

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayouts are tried in order by Date. The month/year forms cover
// registration dates such as "10/2019"; ISO forms cover our own outputs.
var DateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01/2006",
	"1/2006",
	"02.01.2006",
	"2006-01",
	"2006",
}

// Float parses v as a finite float64. Any failure yields nil; coercion is
// per cell and never an error.
func Float(v any) *float64 {
	s, ok := cellString(v)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// Int parses v as an integer. Integral decimals such as "2019.0" are
// accepted; fractional values are treated as missing.
func Int(v any) *int {
	s, ok := cellString(v)
	if !ok {
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return &n
	}
	f := Float(s)
	if f == nil || *f != math.Trunc(*f) || math.Abs(*f) > math.MaxInt32 {
		return nil
	}
	n := int(*f)
	return &n
}

// Date parses v with the first matching entry of DateLayouts.
func Date(v any) *time.Time {
	s, ok := cellString(v)
	if !ok {
		return nil
	}
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// Text returns v as a string, "" when nil.
func Text(v any) string {
	s, _ := v.(string)
	return s
}

func cellString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	if HasEdgeSpace(s) {
		s = strings.TrimSpace(s)
	}
	return s, s != ""
}
