// Package support implements the probabilistic-support calculator
// (spec.md §4.1): given per-transaction existence probabilities for an
// itemset, it materializes the support-count probability mass function
// via the generating function G(x) = Π_t ((1-p_t) + p_t·x), then returns
// the probabilistic support s* = max{s : tail[s] >= τ} and its tail
// probability q* = tail[s*].
package support

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/probmine/ucim/tidset"
)

// MinProb is the numerical floor below which a probability is clamped to
// zero. Shared with tidset.MinProb (spec.md §9: "a single MIN_PROB
// constant governs underflow clamping across the calculator and the
// singleton-filter in Phase 1").
const MinProb = tidset.MinProb

// ErrInvalidTau indicates τ outside (0,1].
var ErrInvalidTau = errors.New("support: tau must be in (0,1]")

// Result is the output of a probabilistic-support computation.
type Result struct {
	// Support is s*, the probabilistic support.
	Support int
	// Tail is q* = P(sup(X) >= s*).
	Tail float64
}

// Calculator computes (s*, q*) for a given tau from either a dense
// probability vector or a sparse Tidset. Implementations must agree on
// s* exactly and on q* to within 1e-9 (spec.md §4.1).
type Calculator interface {
	// Tau returns the configured probability threshold.
	Tau() float64
	// FromDense computes the result for a dense per-transaction
	// probability vector (zeros for transactions where the itemset
	// cannot appear).
	FromDense(p []float64) Result
	// FromSparse computes the result for a sparse Tidset over n
	// transactions. Shortcuts to {0,0} on an empty tidset.
	FromSparse(t *tidset.Tidset, n int) Result
}

// validateTau validates tau against spec.md §7's InvalidParameter rule.
func validateTau(tau float64) error {
	if tau <= 0 || tau > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidTau, tau)
	}
	return nil
}

// pmfFromDense builds the probability mass function of S = Σ Bernoulli(p_t)
// by direct sequential convolution: O(N^2) time, O(N) space. Probabilities
// below MinProb are treated as exactly zero (the trial is impossible).
func pmfFromDense(p []float64) []float64 {
	pmf := make([]float64, 1, len(p)+1)
	pmf[0] = 1
	for _, pt := range p {
		if pt < MinProb {
			continue
		}
		next := make([]float64, len(pmf)+1)
		for s, mass := range pmf {
			if mass == 0 {
				continue
			}
			next[s] += mass * (1 - pt)
			next[s+1] += mass * pt
		}
		pmf = next
	}
	return pmf
}

// pmfFromDenseDC builds the same pmf via divide-and-conquer convolution:
// recursively split p, convolve the two halves' pmfs. Same asymptotic
// complexity as pmfFromDense, better cache behavior on long vectors
// (spec.md §4.1, strategy 2).
func pmfFromDenseDC(p []float64) []float64 {
	n := len(p)
	if n == 0 {
		return []float64{1}
	}
	if n == 1 {
		if p[0] < MinProb {
			return []float64{1}
		}
		return []float64{1 - p[0], p[0]}
	}
	mid := n / 2
	left := pmfFromDenseDC(p[:mid])
	right := pmfFromDenseDC(p[mid:])
	return convolve(left, right)
}

// convolve computes the coefficient-wise product of two polynomials
// (pmfs), i.e. the pmf of the sum of two independent variables.
func convolve(a, b []float64) []float64 {
	out := make([]float64, len(a)+len(b)-1)
	for i, av := range a {
		if av == 0 {
			continue
		}
		for j, bv := range b {
			out[i+j] += av * bv
		}
	}
	return out
}

// tailFromPMF computes tail[s] = Σ_{r>=s} pmf[r] for every s, and returns
// s* = max{s : tail[s] >= tau}, q* = tail[s*]. tailFromPMF sums the pmf
// from the top down with gonum/floats.CumSum, a plain running sum
// (SPEC_FULL.md §4.1.1).
func tailFromPMF(pmf []float64, tau float64) Result {
	n := len(pmf) - 1

	// tail[s] = Σ_{r>=s} pmf[r]; compute it as a prefix cumulative sum
	// over the reversed pmf (gonum/floats.CumSum) and reverse back.
	reversed := make([]float64, n+1)
	for s := 0; s <= n; s++ {
		reversed[s] = pmf[n-s]
	}
	cum := make([]float64, n+1)
	floats.CumSum(cum, reversed)
	tail := make([]float64, n+1)
	for s := 0; s <= n; s++ {
		tail[s] = cum[n-s]
	}

	best := 0
	bestQ := tail[0]
	for s := n; s >= 0; s-- {
		if tail[s] >= tau {
			best = s
			bestQ = tail[s]
			break
		}
	}
	return Result{Support: best, Tail: bestQ}
}

// direct is the sequential-GF Calculator (spec.md §4.1, strategy 1).
type direct struct{ tau float64 }

// NewDirectConvolution builds the default calculator: the factory wires
// this implementation unless told otherwise (spec.md §6).
func NewDirectConvolution(tau float64) (Calculator, error) {
	if err := validateTau(tau); err != nil {
		return nil, err
	}
	return &direct{tau: tau}, nil
}

func (d *direct) Tau() float64 { return d.tau }

func (d *direct) FromDense(p []float64) Result {
	if len(p) == 0 {
		return Result{0, 0}
	}
	return tailFromPMF(pmfFromDense(p), d.tau)
}

func (d *direct) FromSparse(t *tidset.Tidset, n int) Result {
	if t.Len() == 0 {
		return Result{0, 0}
	}
	return tailFromPMF(pmfFromDense(t.Probs()), d.tau)
}

// divideAndConquer is the recursive-split Calculator (spec.md §4.1, strategy 2).
type divideAndConquer struct{ tau float64 }

// NewDivideAndConquer builds the divide-and-conquer calculator strategy.
func NewDivideAndConquer(tau float64) (Calculator, error) {
	if err := validateTau(tau); err != nil {
		return nil, err
	}
	return &divideAndConquer{tau: tau}, nil
}

func (d *divideAndConquer) Tau() float64 { return d.tau }

func (d *divideAndConquer) FromDense(p []float64) Result {
	if len(p) == 0 {
		return Result{0, 0}
	}
	return tailFromPMF(pmfFromDenseDC(p), d.tau)
}

func (d *divideAndConquer) FromSparse(t *tidset.Tidset, n int) Result {
	if t.Len() == 0 {
		return Result{0, 0}
	}
	return tailFromPMF(pmfFromDenseDC(t.Probs()), d.tau)
}
