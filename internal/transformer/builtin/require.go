// Package builtin contains the reusable transformers and per-cell helpers used
// by the cleaning stages: text normalization, fuel standardization, type
// coercion, required-field filtering and de-duplication.
package builtin

// Check is a named predicate. Name doubles as the drop reason.
type Check[T any] struct {
	Name string
	OK   func(T) bool
}

// Require removes any record failing one of Checks. Checks run in order and
// the first failing check is reported to Reject.
type Require[T any] struct {
	Checks []Check[T]
	Reject func(rec T, reason string)
}

// Apply returns the records passing every check. It filters in place and
// reuses the input's backing array.
func (r Require[T]) Apply(in []T) []T {
	out := in[:0]
	for _, rec := range in {
		reason, ok := r.firstFailure(rec)
		if !ok {
			if r.Reject != nil {
				r.Reject(rec, reason)
			}
			continue
		}
		out = append(out, rec)
	}
	return out
}

func (r Require[T]) firstFailure(rec T) (string, bool) {
	for _, c := range r.Checks {
		if !c.OK(rec) {
			return c.Name, false
		}
	}
	return "", true
}
