// Package linkage matches listings to emission reference entries. The two
// datasets name models at different granularities ("golf vii 1.6 tdi" vs
// "golf"), so both sides are reduced to a coarse model base before a left
// join on (brand, model base, year).
package linkage

import (
	"strconv"
	"strings"

	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/transformer/builtin"
)

// Key is the composite join key. The zero Key is never produced for a
// matchable record.
type Key struct {
	Brand     string
	ModelBase string
	Year      int
}

func (k Key) String() string {
	return builtin.JoinKey(k.Brand, k.ModelBase, strconv.Itoa(k.Year))
}

// ModelBase coarsens a strict-normalized model name:
//
//	"3 series 320d"    -> "3 series"  (numeric first token)
//	"a class 180"      -> "a class"   (second token is "class")
//	"golf vii 1 6 tdi" -> "golf"      (first token otherwise)
//
// It reports false when model has no tokens.
func ModelBase(model string) (string, bool) {
	tokens := strings.Fields(model)
	switch {
	case len(tokens) == 0:
		return "", false
	case len(tokens) >= 2 && isDigits(tokens[0]):
		return tokens[0] + " " + tokens[1], true
	case len(tokens) >= 2 && tokens[1] == "class":
		return tokens[0] + " " + tokens[1], true
	default:
		return tokens[0], true
	}
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

// Keys holds the normalized join attributes of one record.
type Keys struct {
	BrandN    string
	ModelN    string
	ModelBase string
}

// Derive normalizes brand and model with the strict normalizer and computes
// the model base. Missing inputs yield empty fields.
func Derive(brand, model string) Keys {
	k := Keys{
		BrandN: builtin.NormalizeStrict(brand),
		ModelN: builtin.NormalizeStrict(model),
	}
	k.ModelBase, _ = ModelBase(k.ModelN)
	return k
}

// Key returns the join key for year. It reports false when the brand or the
// model base is missing; such records never match.
func (k Keys) Key(year int) (Key, bool) {
	if k.BrandN == "" || k.ModelBase == "" {
		return Key{}, false
	}
	return Key{Brand: k.BrandN, ModelBase: k.ModelBase, Year: year}, true
}
