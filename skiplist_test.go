package rollz

import (
	"slices"
	"testing"
)

func TestIndexableSkiplistInsertAt(t *testing.T) {
	s := newIndexableSkiplist[int](8)
	values := []int{5, 3, 9, 1, 7}
	for _, v := range values {
		s.insert(v)
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	for rank, want := range sorted {
		if got := s.at(rank); got != want {
			t.Fatalf("at(%d) = %d, want %d", rank, got, want)
		}
	}
}

func TestIndexableSkiplistRemove(t *testing.T) {
	s := newIndexableSkiplist[int](8)
	for _, v := range []int{5, 3, 9, 1, 7} {
		s.insert(v)
	}
	s.remove(3)
	s.remove(9)
	remaining := []int{1, 5, 7}
	for rank, want := range remaining {
		if got := s.at(rank); got != want {
			t.Fatalf("at(%d) = %d, want %d", rank, got, want)
		}
	}
}

func TestIndexableSkiplistRemoveMissingPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic removing an absent value")
		}
	}()
	s := newIndexableSkiplist[int](4)
	s.insert(1)
	s.remove(2)
}

func TestIndexableSkiplistDuplicates(t *testing.T) {
	s := newIndexableSkiplist[int](8)
	for _, v := range []int{4, 4, 2, 4} {
		s.insert(v)
	}
	want := []int{2, 4, 4, 4}
	for rank, w := range want {
		if got := s.at(rank); got != w {
			t.Fatalf("at(%d) = %d, want %d", rank, got, w)
		}
	}
}
