package rollz

import (
	"slices"
	"testing"

	"github.com/rollz/rollz/internal/rollztest"
)

func TestMinFixed(t *testing.T) {
	data := []int{8, 1, 1, 3, 6, 5}
	seq := slices.Values(data)
	m := NewMin(seq, NewWindowSpec(3))

	var got []int
	for v, err := range m.Values() {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got = append(got, v)
	}

	want := naiveMins(data, 3)
	if !slices.Equal(got, want) {
		t.Fatalf("Min = %v, want %v", got, want)
	}
}

func TestMaxFixed(t *testing.T) {
	data := []int{8, 1, 1, 3, 6, 5}
	seq := slices.Values(data)
	m := NewMax(seq, NewWindowSpec(3))

	var got []int
	for v, err := range m.Values() {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got = append(got, v)
	}

	want := naiveMaxes(data, 3)
	if !slices.Equal(got, want) {
		t.Fatalf("Max = %v, want %v", got, want)
	}
}

func TestMinHeapMatchesMin(t *testing.T) {
	data := []int{5, 3, 9, 1, 1, 7, 2, 8, 4}
	seqMin := slices.Values(data)
	seqHeap := slices.Values(data)

	min := NewMin(seqMin, NewWindowSpec(4))
	mh := NewMinHeap(seqHeap, NewWindowSpec(4))

	var gotMin, gotHeap []int
	for v := range valuesOnly(min.Values()) {
		gotMin = append(gotMin, v)
	}
	for v := range valuesOnly(mh.Values()) {
		gotHeap = append(gotHeap, v)
	}
	if !slices.Equal(gotMin, gotHeap) {
		t.Fatalf("MinHeap disagrees with Min: %v vs %v", gotHeap, gotMin)
	}
}

func naiveMins(data []int, size int) []int {
	var out []int
	for _, w := range rollztest.Windows(data, size) {
		m := w[0]
		for _, v := range w[1:] {
			if v < m {
				m = v
			}
		}
		out = append(out, m)
	}
	return out
}

func naiveMaxes(data []int, size int) []int {
	var out []int
	for _, w := range rollztest.Windows(data, size) {
		m := w[0]
		for _, v := range w[1:] {
			if v > m {
				m = v
			}
		}
		out = append(out, m)
	}
	return out
}
