package rollz

import (
	"slices"
	"testing"
)

func isEven(v int) bool { return v%2 == 0 }

func TestAny(t *testing.T) {
	seq := slices.Values([]int{1, 3, 5, 4, 7})
	a := NewAny(seq, NewWindowSpec(3), isEven)
	got := collectOK(a.Values())
	want := []bool{false, true, true}
	if !slices.Equal(got, want) {
		t.Fatalf("Any = %v, want %v", got, want)
	}
}

func TestAll(t *testing.T) {
	seq := slices.Values([]int{2, 4, 6, 5, 8})
	a := NewAll(seq, NewWindowSpec(3), isEven)
	got := collectOK(a.Values())
	want := []bool{true, false, false}
	if !slices.Equal(got, want) {
		t.Fatalf("All = %v, want %v", got, want)
	}
}

func TestMonotonicConstantRunIsBoth(t *testing.T) {
	seq := slices.Values([]int{5, 5, 5})
	m := NewMonotonic(seq, NewWindowSpec(3))
	got := collectOK(m.Values())
	if len(got) != 1 {
		t.Fatalf("expected one result, got %v", got)
	}
	if !got[0].NonDecreasing || !got[0].NonIncreasing {
		t.Fatalf("a constant window should satisfy both orderings, got %+v", got[0])
	}
}

func TestMonotonicIncreasingAndDecreasing(t *testing.T) {
	seqInc := slices.Values([]int{1, 2, 3, 2})
	m := NewMonotonic(seqInc, NewWindowSpec(3))
	got := collectOK(m.Values())
	want := []MonotonicResult{
		{NonDecreasing: true, NonIncreasing: false},
		{NonDecreasing: false, NonIncreasing: false},
	}
	if !slices.Equal(got, want) {
		t.Fatalf("Monotonic = %+v, want %+v", got, want)
	}
}
