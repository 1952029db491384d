package builtin

import (
	"reflect"
	"strconv"
	"testing"
)

type entry struct {
	brand, model string
	year         int
	co2          float64
}

func entryKey(e entry) (string, bool) {
	if e.brand == "" {
		return "", false
	}
	return JoinKey(e.brand, e.model, strconv.Itoa(e.year)), true
}

func TestDeDupApply_KeepsFirst(t *testing.T) {
	t.Parallel()

	in := []entry{
		{"audi", "a4", 2019, 150},
		{"bmw", "x3", 2019, 180},
		{"audi", "a4", 2019, 160},
		{"", "orphan", 2019, 1},
		{"audi", "a4", 2020, 170},
		{"audi", "a4", 2019, 999},
	}
	want := []entry{
		{"audi", "a4", 2019, 150},
		{"bmw", "x3", 2019, 180},
		{"audi", "a4", 2020, 170},
		{"", "orphan", 2019, 1},
	}

	var dupes []float64
	d := DeDup[entry]{
		Key:       entryKey,
		Duplicate: func(e entry) { dupes = append(dupes, e.co2) },
	}
	got := d.Apply(append([]entry(nil), in...))
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("DeDup.Apply() = %+v; want %+v", got, want)
	}
	if !reflect.DeepEqual(dupes, []float64{160, 999}) {
		t.Fatalf("duplicates = %v; want [160 999] in input order", dupes)
	}
}

func TestDeDupApply_NoKeyFunc(t *testing.T) {
	t.Parallel()

	in := []entry{{"a", "b", 1, 0}, {"a", "b", 1, 0}}
	if got := (DeDup[entry]{}).Apply(in); len(got) != 2 {
		t.Fatalf("DeDup without Key should pass input through, got %d rows", len(got))
	}
}
