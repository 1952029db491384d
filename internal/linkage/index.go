package linkage

import (
	"github.com/zeebo/xxh3"

	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/record"
)

// Index maps join keys to emission entries. Keys are bucketed by their
// 64-bit xxh3 hash; entries within a bucket are compared by value, so hash
// collisions cannot produce false matches.
type Index struct {
	buckets map[uint64][]int
	keys    []Key
	entries []record.Emission

	// Collapsed counts entries whose key was already taken by an earlier
	// entry. Coarse model bases make this common ("golf" and "golf sportsvan").
	Collapsed int
	// Unkeyed counts entries with no derivable key.
	Unkeyed int
}

// NewIndex indexes ems. The first entry per key in slice order wins, which
// keeps the left join at most one match per listing.
func NewIndex(ems []record.Emission) *Index {
	ix := &Index{buckets: make(map[uint64][]int, len(ems))}
	for _, e := range ems {
		k, ok := Derive(e.Brand, e.Model).Key(e.Year)
		if !ok {
			ix.Unkeyed++
			continue
		}
		if _, found := ix.find(k); found {
			ix.Collapsed++
			continue
		}
		h := hashKey(k)
		ix.buckets[h] = append(ix.buckets[h], len(ix.entries))
		ix.keys = append(ix.keys, k)
		ix.entries = append(ix.entries, e)
	}
	return ix
}

// Len returns the number of distinct keys.
func (ix *Index) Len() int { return len(ix.entries) }

// Lookup returns the emission indexed under k.
func (ix *Index) Lookup(k Key) (record.Emission, bool) {
	i, ok := ix.find(k)
	if !ok {
		return record.Emission{}, false
	}
	return ix.entries[i], true
}

func (ix *Index) find(k Key) (int, bool) {
	for _, i := range ix.buckets[hashKey(k)] {
		if ix.keys[i] == k {
			return i, true
		}
	}
	return 0, false
}

func hashKey(k Key) uint64 { return xxh3.HashString(k.String()) }
