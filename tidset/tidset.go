// Package tidset implements the sparse per-itemset transaction list used
// throughout the mining core: an ascending sequence of (transaction id,
// existence probability) pairs, with a linear-merge intersection that
// multiplies probabilities on matching tids.
package tidset

import (
	"errors"
	"fmt"
)

// MinProb is the numerical floor below which a probability is treated as
// zero (spec.md §4.1, §9). A single constant governs underflow clamping
// across the calculator and Tidset construction and intersection.
const MinProb = 1e-12

// ErrNonMonotonicTid indicates tids were not supplied in strictly
// ascending order.
var ErrNonMonotonicTid = errors.New("tidset: tids must be strictly ascending")

// ErrInvalidProbability indicates a probability outside (0,1].
var ErrInvalidProbability = errors.New("tidset: probability must be in (0,1]")

// ErrTidOutOfRange indicates a tid outside [0,N).
var ErrTidOutOfRange = errors.New("tidset: tid out of range [0,N)")

// Pair is one (transaction id, probability) entry of a Tidset.
type Pair struct {
	Tid  int
	Prob float64
}

// Tidset is an ordered, duplicate-free sequence of Pairs with strictly
// ascending Tid, each Prob in (0,1]. N bounds the universe of valid tids
// ([0,N)) the Tidset was built against.
type Tidset struct {
	n     int
	pairs []Pair
}

// New validates and wraps pairs (already sorted by the caller) into a
// Tidset over a universe of n transactions. Pairs with probability below
// MinProb are dropped (numerical-underflow clamping, spec.md §4.1).
func New(n int, pairs []Pair) (*Tidset, error) {
	out := make([]Pair, 0, len(pairs))
	prevTid := -1
	for _, p := range pairs {
		if p.Tid < 0 || p.Tid >= n {
			return nil, fmt.Errorf("%w: tid=%d n=%d", ErrTidOutOfRange, p.Tid, n)
		}
		if p.Tid <= prevTid {
			return nil, fmt.Errorf("%w: tid=%d after tid=%d", ErrNonMonotonicTid, p.Tid, prevTid)
		}
		if p.Prob <= 0 || p.Prob > 1 {
			return nil, fmt.Errorf("%w: prob=%v at tid=%d", ErrInvalidProbability, p.Prob, p.Tid)
		}
		prevTid = p.Tid
		if p.Prob < MinProb {
			continue
		}
		out = append(out, p)
	}

	return &Tidset{n: n, pairs: out}, nil
}

// Empty returns an empty Tidset over a universe of n transactions.
func Empty(n int) *Tidset {
	return &Tidset{n: n}
}

// Full returns a Tidset covering all n transactions with probability 1,
// the legal-but-unused result of Database.tidset(emptyItemset) (spec.md §6).
func Full(n int) *Tidset {
	pairs := make([]Pair, n)
	for i := 0; i < n; i++ {
		pairs[i] = Pair{Tid: i, Prob: 1}
	}
	return &Tidset{n: n, pairs: pairs}
}

// N returns the universe size this Tidset was built against.
func (t *Tidset) N() int {
	return t.n
}

// Len returns the number of non-zero entries.
func (t *Tidset) Len() int {
	return len(t.pairs)
}

// Pairs returns the underlying (tid, prob) pairs in ascending tid order.
// Callers must not mutate the returned slice.
func (t *Tidset) Pairs() []Pair {
	return t.pairs
}

// Probs returns just the probability column, in ascending-tid order —
// the dense input SupportCalculator.FromSparse needs.
func (t *Tidset) Probs() []float64 {
	out := make([]float64, len(t.pairs))
	for i, p := range t.pairs {
		out[i] = p.Prob
	}
	return out
}

// Intersect computes the linear-merge intersection of t and other: a new
// Tidset containing every tid present in both, with probability equal to
// the product of the two inputs' probabilities at that tid (spec.md §3).
// t and other must share the same universe size N.
func (t *Tidset) Intersect(other *Tidset) (*Tidset, error) {
	if t.n != other.n {
		return nil, fmt.Errorf("tidset: intersect universe mismatch: %d vs %d", t.n, other.n)
	}
	out := make([]Pair, 0, minInt(len(t.pairs), len(other.pairs)))
	i, j := 0, 0
	for i < len(t.pairs) && j < len(other.pairs) {
		a, b := t.pairs[i], other.pairs[j]
		switch {
		case a.Tid < b.Tid:
			i++
		case a.Tid > b.Tid:
			j++
		default:
			prob := a.Prob * b.Prob
			if prob >= MinProb {
				out = append(out, Pair{Tid: a.Tid, Prob: prob})
			}
			i++
			j++
		}
	}

	return &Tidset{n: t.n, pairs: out}, nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
