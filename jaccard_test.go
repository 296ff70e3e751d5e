package rollz

import (
	"math"
	"slices"
	"testing"
)

func TestJaccardIndex(t *testing.T) {
	data := []string{"a", "b", "c", "d"}
	seq := slices.Values(data)
	j := NewJaccardIndex(seq, NewWindowSpec(2), []string{"a", "b", "z"})
	got := collectOK(j.Values())

	// target set is {a,b,z}; union always includes z even though it
	// never appears in the data.
	// window {a,b}: intersection {a,b}=2, union {a,b,z}=3 -> 2/3
	// window {b,c}: intersection {b}=1, union {a,b,z,c}=4 -> 1/4
	// window {c,d}: intersection {}=0, union {a,b,z,c,d}=5 -> 0
	want := []float64{2.0 / 3.0, 1.0 / 4.0, 0}
	for i, w := range want {
		if math.Abs(got[i]-w) > 1e-9 {
			t.Fatalf("JaccardIndex[%d] = %v, want %v", i, got[i], w)
		}
	}
}

func TestJaccardIndexPrimesWorkedExample(t *testing.T) {
	data := []int{1, 2, 3, 4, 5, 6, 7, 8, 9}
	primes := []int{2, 3, 5, 7, 11}
	seq := slices.Values(data)
	j := NewJaccardIndex(seq, NewWindowSpec(4), primes)
	got := collectOK(j.Values())

	want := []float64{2.0 / 7.0, 0.5, 2.0 / 7.0}
	for i, w := range want {
		if math.Abs(got[i]-w) > 1e-9 {
			t.Fatalf("JaccardIndex[%d] = %v, want %v", i, got[i], w)
		}
	}
}

func TestJaccardIndexEmptyTargetPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic constructing JaccardIndex with an empty target set")
		}
	}()
	seq := slices.Values([]string{"a"})
	NewJaccardIndex(seq, NewWindowSpec(1), nil)
}
