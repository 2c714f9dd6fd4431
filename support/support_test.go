package support_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/probmine/ucim/support"
	"github.com/probmine/ucim/tidset"
)

func TestInvalidTau(t *testing.T) {
	_, err := support.NewDirectConvolution(0)
	require.ErrorIs(t, err, support.ErrInvalidTau)

	_, err = support.NewDirectConvolution(1.5)
	require.ErrorIs(t, err, support.ErrInvalidTau)
}

func TestCertainItemsScenarioA(t *testing.T) {
	// Scenario A: every item present with probability 1 in 3 transactions.
	calc, err := support.NewDirectConvolution(0.5)
	require.NoError(t, err)

	r := calc.FromDense([]float64{1, 1, 1})
	require.Equal(t, 3, r.Support)
	require.InDelta(t, 1.0, r.Tail, 1e-9)
}

func TestScenarioB(t *testing.T) {
	calc, err := support.NewDirectConvolution(0.5)
	require.NoError(t, err)

	// {a}: transactions with p=0.5, 0.5, 0.5 -> P(S>=2) should be 0.5
	ra := calc.FromDense([]float64{0.5, 0.5, 0.5})
	require.Equal(t, 2, ra.Support)
	require.InDelta(t, 0.5, ra.Tail, 1e-9)

	// {b}: only transaction 1 has b with p=0.5
	rb := calc.FromDense([]float64{0.5, 0, 0})
	require.Equal(t, 1, rb.Support)
	require.InDelta(t, 0.5, rb.Tail, 1e-9)

	// {a,b}: only transaction 1, prob 0.25
	rab := calc.FromDense([]float64{0.25, 0, 0})
	require.Equal(t, 0, rab.Support)
}

func TestEmptyDatabase(t *testing.T) {
	calc, err := support.NewDirectConvolution(0.5)
	require.NoError(t, err)
	r := calc.FromDense(nil)
	require.Equal(t, 0, r.Support)
	require.Equal(t, 0.0, r.Tail)
}

func TestSparseShortcutsEmptyTidset(t *testing.T) {
	calc, err := support.NewDirectConvolution(0.5)
	require.NoError(t, err)
	r := calc.FromSparse(tidset.Empty(10), 10)
	require.Equal(t, 0, r.Support)
	require.Equal(t, 0.0, r.Tail)
}

func TestAllBelowMinProbIsImpossible(t *testing.T) {
	calc, err := support.NewDirectConvolution(0.5)
	require.NoError(t, err)
	r := calc.FromDense([]float64{1e-13, 1e-13, 1e-13})
	require.Equal(t, 0, r.Support)
}

// TestStrategiesAgree is the I-family cross-strategy check from spec.md
// §4.1: direct convolution and divide-and-conquer must produce bit
// identical s* and agree on q* to within 1e-9.
func TestStrategiesAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	direct, err := support.NewDirectConvolution(0.6)
	require.NoError(t, err)
	dc, err := support.NewDivideAndConquer(0.6)
	require.NoError(t, err)

	for trial := 0; trial < 50; trial++ {
		n := 1 + rng.Intn(40)
		p := make([]float64, n)
		for i := range p {
			p[i] = 0.1 + rng.Float64()*0.8
		}
		rd := direct.FromDense(p)
		rc := dc.FromDense(p)
		require.Equal(t, rd.Support, rc.Support, "support mismatch for p=%v", p)
		require.True(t, floats.EqualWithinAbs(rd.Tail, rc.Tail, 1e-9),
			"tail mismatch: direct=%v dc=%v", rd.Tail, rc.Tail)
	}
}

func TestTauOne(t *testing.T) {
	calc, err := support.NewDirectConvolution(1)
	require.NoError(t, err)
	r := calc.FromDense([]float64{1, 1})
	require.Equal(t, 2, r.Support)
	require.InDelta(t, 1.0, r.Tail, 1e-9)

	// with any uncertainty, tau=1 cannot be met at s=1 (P(S>=1) < 1)
	r2 := calc.FromDense([]float64{0.9, 0.9})
	require.Equal(t, 0, r2.Support)
}
