// Package transformer holds the row and chain primitives shared by the
// cleaning stages.
package transformer

// Row is one parsed source line. V is aligned to the reader's target columns;
// each cell is either nil (empty or absent column) or a string.
type Row struct {
	Line int
	V    []any
}

// String returns cell i as a string, or "" when it is nil or out of range.
func (r *Row) String(i int) string {
	if r == nil || i < 0 || i >= len(r.V) {
		return ""
	}
	s, _ := r.V[i].(string)
	return s
}

// Transformer rewrites a batch of records. Implementations may filter,
// reorder or mutate in place; they must not retain the input slice.
type Transformer[T any] interface {
	Apply(in []T) []T
}

// Chain is an ordered list of transformers.
type Chain[T any] []Transformer[T]

// Apply runs every transformer in order, feeding each the previous output.
func (c Chain[T]) Apply(in []T) []T {
	out := in
	for _, t := range c {
		out = t.Apply(out)
	}
	return out
}
