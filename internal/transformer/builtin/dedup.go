package builtin

import "strings"

// DeDup collapses records sharing a business key and keeps the earliest
// occurrence of each key in input order. Records for which Key reports false
// cannot be keyed and are appended unchanged after the winners, in input
// order.
type DeDup[T any] struct {
	Key func(T) (string, bool)

	// Duplicate, when set, is called for every record that loses.
	Duplicate func(rec T)
}

// Apply executes the de-duplication and returns a new slice.
func (d DeDup[T]) Apply(in []T) []T {
	if len(in) == 0 || d.Key == nil {
		return in
	}

	seen := make(map[string]struct{}, len(in))
	var kept, unkeyed, losers []int
	for i, rec := range in {
		k, ok := d.Key(rec)
		if !ok {
			unkeyed = append(unkeyed, i)
			continue
		}
		if _, dup := seen[k]; dup {
			losers = append(losers, i)
			continue
		}
		seen[k] = struct{}{}
		kept = append(kept, i)
	}

	if d.Duplicate != nil {
		for _, i := range losers {
			d.Duplicate(in[i])
		}
	}

	out := make([]T, 0, len(kept)+len(unkeyed))
	for _, i := range kept {
		out = append(out, in[i])
	}
	for _, i := range unkeyed {
		out = append(out, in[i])
	}
	return out
}

// JoinKey builds a composite key from parts with a separator that cannot
// appear in normalized text.
func JoinKey(parts ...string) string {
	return strings.Join(parts, "\x1f")
}
