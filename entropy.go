package rollz

import (
	"fmt"
	"iter"
	"math"
)

// entropyConfig holds the options shared by Entropy.
type entropyConfig[T comparable] struct {
	base      float64
	reference map[T]float64
}

// EntropyOption configures Entropy.
type EntropyOption[T comparable] func(*entropyConfig[T])

// WithBase sets the logarithm base entropy is reported in. The default
// is e (natural log, i.e. nats).
func WithBase[T comparable](base float64) EntropyOption[T] {
	return func(c *entropyConfig[T]) { c.base = base }
}

// WithReference supplies a reference distribution (value -> probability).
// When set, Entropy reports the relative entropy (KL divergence) of the
// window's empirical distribution from reference, instead of plain
// Shannon entropy.
func WithReference[T comparable](reference map[T]float64) EntropyOption[T] {
	return func(c *entropyConfig[T]) { c.reference = reference }
}

func resolveEntropyConfig[T comparable](opts []EntropyOption[T]) entropyConfig[T] {
	cfg := entropyConfig[T]{base: math.E}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// entropyAgg tracks the (relative) entropy of a fixed-size window
// incrementally: each distinct value's contribution to the total is
// separable from the others, so incorporating or evicting one
// occurrence only has to update that single value's term rather than
// recompute the whole distribution.
//
// Only Fixed windows are supported: the formula divides by the window's
// configured size, which only holds steady while the window stays full.
type entropyAgg[T comparable] struct {
	buf        ringBuffer[T]
	counts     map[T]int
	entropy    float64
	size       float64
	invLnBase  float64
	reference  map[T]float64
	violations int
}

// valid reports whether v may contribute to the entropy: always true
// for plain Shannon entropy, and true only when v carries a positive
// reference probability when computing relative entropy.
func (a *entropyAgg[T]) valid(v T) bool {
	if a.reference == nil {
		return true
	}
	q, ok := a.reference[v]
	return ok && q > 0
}

func (a *entropyAgg[T]) contribution(v T, count int) float64 {
	if count == 0 || !a.valid(v) {
		return 0
	}
	p := float64(count) / a.size
	if a.reference == nil {
		return -p * math.Log(p) * a.invLnBase
	}
	q := a.reference[v]
	return p * math.Log(p/q) * a.invLnBase
}

func (a *entropyAgg[T]) addNew(v T) {
	a.buf.push(v)
	before := a.counts[v]
	a.entropy -= a.contribution(v, before)
	a.counts[v] = before + 1
	a.entropy += a.contribution(v, before+1)
	if before == 0 && !a.valid(v) {
		a.violations++
	}
}

func (a *entropyAgg[T]) removeOld() {
	old := a.buf.pop()
	before := a.counts[old]
	a.entropy -= a.contribution(old, before)
	if before <= 1 {
		delete(a.counts, old)
		if !a.valid(old) {
			a.violations--
		}
	} else {
		a.counts[old] = before - 1
	}
	a.entropy += a.contribution(old, before-1)
}

func (a *entropyAgg[T]) current() (float64, error) {
	if a.violations > 0 {
		return 0, newError("Entropy", ErrDomain)
	}
	return a.entropy, nil
}

func (a *entropyAgg[T]) count() int { return a.buf.len() }

// Entropy reports the Shannon entropy of the distribution of values in
// each window position, in the configured logarithm base (default e).
// With a reference distribution supplied via WithReference, it instead
// reports the relative entropy of the window's distribution from the
// reference, failing with ErrDomain if the window ever contains a value
// absent from (or zero-probability in) the reference. Only Fixed
// windows are supported.
type Entropy[T comparable] struct{ driver *Rolling[T, float64] }

// NewEntropy constructs a rolling entropy over seq under spec. Panics if
// spec is not a Fixed window, or if the configured base is not a
// positive real other than 1.
func NewEntropy[T comparable](seq iter.Seq[T], spec WindowSpec, opts ...EntropyOption[T]) *Entropy[T] {
	if spec.Kind() != Fixed {
		panic(newError("Entropy", ErrWindowType).Error())
	}
	cfg := resolveEntropyConfig(opts)
	if cfg.base <= 0 || cfg.base == 1 {
		panic(fmt.Sprintf("rollz: Entropy: base %v must be positive and not equal to 1", cfg.base))
	}
	agg := &entropyAgg[T]{
		counts:    make(map[T]int),
		size:      float64(spec.Size()),
		invLnBase: 1 / math.Log(cfg.base),
		reference: cfg.reference,
	}
	return &Entropy[T]{driver: newRolling[T, float64]("Entropy", seq, spec, agg)}
}

func (e *Entropy[T]) Values() iter.Seq2[float64, error]              { return e.driver.Values() }
func (e *Entropy[T]) Extend(more iter.Seq[T]) iter.Seq2[float64, error] { return e.driver.Extend(more) }
func (e *Entropy[T]) SetLogger(l Logger)                             { e.driver.SetLogger(l) }
func (e *Entropy[T]) Count() int                                     { return e.driver.Count() }
func (e *Entropy[T]) String() string                                 { return e.driver.String() }
