package rollz

import (
	"slices"
	"testing"
)

func TestNunique(t *testing.T) {
	seq := slices.Values([]int{1, 2, 2, 3, 1, 4})
	n := NewNunique(seq, NewWindowSpec(3))
	got := collectOK(n.Values())
	want := []int{2, 2, 3, 3}
	if !slices.Equal(got, want) {
		t.Fatalf("Nunique = %v, want %v", got, want)
	}
}

func TestNuniqueIndexed(t *testing.T) {
	idx := []int{0, 1, 2, 5}
	val := []int{1, 1, 2, 3}
	seq := func(yield func(int, int) bool) {
		for i := range idx {
			if !yield(idx[i], val[i]) {
				return
			}
		}
	}
	n := NewNuniqueIndexed[int, int](seq, 3)
	got := collectOK(n.Values())
	want := []int{1, 1, 2, 1}
	if !slices.Equal(got, want) {
		t.Fatalf("NuniqueIndexed = %v, want %v", got, want)
	}
}

func TestModeTieReportsAllValues(t *testing.T) {
	seq := slices.Values([]string{"a", "b", "a", "b"})
	m := NewMode(seq, NewWindowSpec(4))
	got := collectOK(m.Values())
	if len(got) != 1 {
		t.Fatalf("expected one result, got %v", got)
	}
	values := got[0].Values
	slices.Sort(values)
	if !slices.Equal(values, []string{"a", "b"}) {
		t.Fatalf("Mode.Values = %v, want [a b]", values)
	}
}

func TestModeWithCount(t *testing.T) {
	seq := slices.Values([]string{"a", "a", "b"})
	m := NewMode(seq, NewWindowSpec(3), WithCount())
	got := collectOK(m.Values())
	if len(got) != 1 {
		t.Fatalf("expected one result, got %v", got)
	}
	if got[0].Count != 2 {
		t.Fatalf("Mode.Count = %d, want 2", got[0].Count)
	}
	if !slices.Equal(got[0].Values, []string{"a"}) {
		t.Fatalf("Mode.Values = %v, want [a]", got[0].Values)
	}
}
