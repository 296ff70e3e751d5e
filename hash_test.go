package rollz

import (
	"slices"
	"testing"
)

func TestPolynomialHashMatchesOneShot(t *testing.T) {
	data := []int64{3, 1, 4, 1, 5, 9, 2, 6}
	size := 3
	seq := slices.Values(data)
	h := NewPolynomialHash[int64](seq, NewWindowSpec(size))
	got := collectOK(h.Values())

	i := 0
	for start := 0; start+size <= len(data); start++ {
		want := polynomialHashSequence(data[start:start+size], DefaultHashBase, DefaultHashMod)
		if got[i] != want {
			t.Fatalf("hash[%d] = %d, want %d", i, got[i], want)
		}
		i++
	}
}

func TestPolynomialHashCustomBaseMod(t *testing.T) {
	data := []int64{1, 2, 3, 4}
	size := 2
	seq := slices.Values(data)
	h := NewPolynomialHash[int64](seq, NewWindowSpec(size), WithBase(31), WithMod(9967))
	got := collectOK(h.Values())

	i := 0
	for start := 0; start+size <= len(data); start++ {
		want := polynomialHashSequence(data[start:start+size], 31, 9967)
		if got[i] != want {
			t.Fatalf("hash[%d] = %d, want %d", i, got[i], want)
		}
		i++
	}
}

func TestModPowAndMulModAgreeWithBigMod(t *testing.T) {
	base := int64(719)
	for exp := int64(0); exp < 8; exp++ {
		got := powMod(base, exp, DefaultHashMod)
		want := int64(1)
		for i := int64(0); i < exp; i++ {
			want = mulMod(want, base, DefaultHashMod)
		}
		if got != want {
			t.Fatalf("powMod(%d,%d) = %d, want %d", base, exp, got, want)
		}
	}
}
