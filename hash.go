package rollz

import (
	"iter"
	"math/big"
)

// Default base and modulus for PolynomialHash, chosen to match the
// reference implementation: mod is the Mersenne prime 2^61-1.
const (
	DefaultHashBase = 719
	DefaultHashMod  = (int64(1) << 61) - 1
)

func mod64(v, m int64) int64 {
	v %= m
	if v < 0 {
		v += m
	}
	return v
}

// mulMod computes a*b mod m without overflowing int64, using math/big
// for the intermediate product; mod can be as large as 2^61-1, at which
// point a native int64 multiply would overflow.
func mulMod(a, b, m int64) int64 {
	var x, y, mm big.Int
	x.SetInt64(a)
	y.SetInt64(b)
	mm.SetInt64(m)
	x.Mul(&x, &y)
	x.Mod(&x, &mm)
	return x.Int64()
}

func powMod(base, exp, mod int64) int64 {
	result := int64(1) % mod
	b := mod64(base, mod)
	for exp > 0 {
		if exp&1 == 1 {
			result = mulMod(result, b, mod)
		}
		b = mulMod(b, b, mod)
		exp >>= 1
	}
	return result
}

// hashConfig holds PolynomialHash's (and Match's) options.
type hashConfig struct {
	base int64
	mod  int64
}

// HashOption configures PolynomialHash and Match.
type HashOption func(*hashConfig)

// WithBase sets the polynomial base. Defaults to DefaultHashBase.
func WithBase(base int64) HashOption {
	return func(c *hashConfig) { c.base = base }
}

// WithMod sets the modulus every hash value is reduced by. Defaults to
// DefaultHashMod.
func WithMod(mod int64) HashOption {
	return func(c *hashConfig) { c.mod = mod }
}

func resolveHashConfig(opts []HashOption) hashConfig {
	cfg := hashConfig{base: DefaultHashBase, mod: DefaultHashMod}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// polyHashAgg maintains a rolling polynomial hash: the window contents
// w_0..w_(k-1) (oldest first) hash to
//
//	w_0*base^(k-1) + w_1*base^(k-2) + ... + w_(k-1)*base^0  (mod m)
//
// Appending a value shifts every existing term up one power and adds the
// new term at power 0; evicting the oldest value subtracts its term at
// its current power, after which the remaining terms are already at the
// correct powers for the now-smaller window.
type polyHashAgg[T Integral] struct {
	buf  ringBuffer[T]
	hash int64
	base int64
	mod  int64
}

func (a *polyHashAgg[T]) addNew(v T) {
	a.buf.push(v)
	a.hash = mod64(mulMod(a.hash, a.base, a.mod)+int64(v), a.mod)
}

func (a *polyHashAgg[T]) removeOld() {
	old := a.buf.pop()
	power := powMod(a.base, int64(a.buf.len()), a.mod)
	a.hash = mod64(a.hash-mulMod(int64(old), power, a.mod), a.mod)
}

func (a *polyHashAgg[T]) current() (int64, error) { return a.hash, nil }
func (a *polyHashAgg[T]) count() int              { return a.buf.len() }

// PolynomialHash reports the rolling polynomial hash of each window
// position. Collisions are possible; adjust base and mod via HashOption
// for a given use case.
type PolynomialHash[T Integral] struct{ driver *Rolling[T, int64] }

// NewPolynomialHash constructs a rolling polynomial hash over seq under
// spec.
func NewPolynomialHash[T Integral](seq iter.Seq[T], spec WindowSpec, opts ...HashOption) *PolynomialHash[T] {
	cfg := resolveHashConfig(opts)
	agg := &polyHashAgg[T]{base: cfg.base, mod: cfg.mod}
	return &PolynomialHash[T]{driver: newRolling[T, int64]("PolynomialHash", seq, spec, agg)}
}

func (h *PolynomialHash[T]) Values() iter.Seq2[int64, error] { return h.driver.Values() }
func (h *PolynomialHash[T]) Extend(more iter.Seq[T]) iter.Seq2[int64, error] {
	return h.driver.Extend(more)
}
func (h *PolynomialHash[T]) SetLogger(l Logger) { h.driver.SetLogger(l) }
func (h *PolynomialHash[T]) Count() int         { return h.driver.Count() }
func (h *PolynomialHash[T]) String() string     { return h.driver.String() }

// polynomialHashSequence hashes a fixed sequence the same way
// PolynomialHash hashes a window of the same contents, so a target
// sequence's hash can be precomputed once and compared cheaply against
// each window's rolling hash (see Match).
func polynomialHashSequence[T Integral](seq []T, base, mod int64) int64 {
	h := int64(0)
	for _, v := range seq {
		h = mod64(mulMod(h, base, mod)+int64(v), mod)
	}
	return h
}
