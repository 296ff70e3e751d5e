package rollz

import (
	"slices"
	"testing"
)

func TestMatchFindsTargets(t *testing.T) {
	data := []int{1, 2, 3, 9, 9, 1, 2, 3}
	targets := [][]int{{1, 2, 3}, {9, 9, 1}}
	toInt := func(v int) int64 { return int64(v) }

	seq := slices.Values(data)
	m := NewMatch(seq, targets, toInt)
	got := collectOK(m.Values())

	want := []bool{true, false, false, true, false, true}
	if !slices.Equal(got, want) {
		t.Fatalf("Match = %v, want %v", got, want)
	}
}

func TestMatchEmptyTargetsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic constructing Match with no targets")
		}
	}()
	seq := slices.Values([]int{1, 2, 3})
	NewMatch(seq, [][]int{}, func(v int) int64 { return int64(v) })
}

func TestMatchUnequalLengthTargetsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic constructing Match with targets of differing length")
		}
	}()
	seq := slices.Values([]int{1, 2, 3})
	NewMatch(seq, [][]int{{1, 2}, {1, 2, 3}}, func(v int) int64 { return int64(v) })
}
