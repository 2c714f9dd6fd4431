package tidset_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/probmine/ucim/tidset"
)

func TestNewValid(t *testing.T) {
	ts, err := tidset.New(5, []tidset.Pair{{Tid: 0, Prob: 0.5}, {Tid: 2, Prob: 1}, {Tid: 4, Prob: 0.1}})
	require.NoError(t, err)
	require.Equal(t, 3, ts.Len())
	require.Equal(t, 5, ts.N())
	require.Equal(t, []tidset.Pair{{Tid: 0, Prob: 0.5}, {Tid: 2, Prob: 1}, {Tid: 4, Prob: 0.1}}, ts.Pairs())
}

func TestNewDropsBelowMinProb(t *testing.T) {
	ts, err := tidset.New(3, []tidset.Pair{{Tid: 0, Prob: 0.5}, {Tid: 1, Prob: 1e-13}})
	require.NoError(t, err)
	require.Equal(t, 1, ts.Len())
	require.Equal(t, 0, ts.Pairs()[0].Tid)
}

func TestNewRejectsTidOutOfRange(t *testing.T) {
	_, err := tidset.New(3, []tidset.Pair{{Tid: 3, Prob: 0.5}})
	require.ErrorIs(t, err, tidset.ErrTidOutOfRange)

	_, err = tidset.New(3, []tidset.Pair{{Tid: -1, Prob: 0.5}})
	require.ErrorIs(t, err, tidset.ErrTidOutOfRange)
}

func TestNewRejectsNonMonotonicTid(t *testing.T) {
	_, err := tidset.New(5, []tidset.Pair{{Tid: 2, Prob: 0.5}, {Tid: 1, Prob: 0.5}})
	require.ErrorIs(t, err, tidset.ErrNonMonotonicTid)

	_, err = tidset.New(5, []tidset.Pair{{Tid: 2, Prob: 0.5}, {Tid: 2, Prob: 0.5}})
	require.ErrorIs(t, err, tidset.ErrNonMonotonicTid, "duplicate tids are non-ascending")
}

func TestNewRejectsInvalidProbability(t *testing.T) {
	_, err := tidset.New(5, []tidset.Pair{{Tid: 0, Prob: 0}})
	require.ErrorIs(t, err, tidset.ErrInvalidProbability)

	_, err = tidset.New(5, []tidset.Pair{{Tid: 0, Prob: -0.1}})
	require.ErrorIs(t, err, tidset.ErrInvalidProbability)

	_, err = tidset.New(5, []tidset.Pair{{Tid: 0, Prob: 1.1}})
	require.ErrorIs(t, err, tidset.ErrInvalidProbability)
}

func TestEmpty(t *testing.T) {
	ts := tidset.Empty(7)
	require.Equal(t, 0, ts.Len())
	require.Equal(t, 7, ts.N())
	require.Empty(t, ts.Pairs())
}

func TestFull(t *testing.T) {
	ts := tidset.Full(3)
	require.Equal(t, 3, ts.Len())
	for tid, p := range ts.Pairs() {
		require.Equal(t, tid, p.Tid)
		require.Equal(t, 1.0, p.Prob)
	}
}

func TestProbs(t *testing.T) {
	ts, err := tidset.New(4, []tidset.Pair{{Tid: 0, Prob: 0.3}, {Tid: 3, Prob: 0.9}})
	require.NoError(t, err)
	require.Equal(t, []float64{0.3, 0.9}, ts.Probs())
}

func TestIntersectMultipliesProbabilitiesOnMatchingTids(t *testing.T) {
	a, err := tidset.New(5, []tidset.Pair{{Tid: 0, Prob: 0.5}, {Tid: 1, Prob: 0.8}, {Tid: 3, Prob: 0.2}})
	require.NoError(t, err)
	b, err := tidset.New(5, []tidset.Pair{{Tid: 1, Prob: 0.5}, {Tid: 2, Prob: 0.9}, {Tid: 3, Prob: 0.5}})
	require.NoError(t, err)

	inter, err := a.Intersect(b)
	require.NoError(t, err)
	require.Equal(t, []tidset.Pair{{Tid: 1, Prob: 0.4}, {Tid: 3, Prob: 0.1}}, inter.Pairs())
}

func TestIntersectWithEmptyIsEmpty(t *testing.T) {
	a, err := tidset.New(3, []tidset.Pair{{Tid: 0, Prob: 0.5}})
	require.NoError(t, err)

	inter, err := a.Intersect(tidset.Empty(3))
	require.NoError(t, err)
	require.Equal(t, 0, inter.Len())
}

func TestIntersectDropsProductBelowMinProb(t *testing.T) {
	a, err := tidset.New(2, []tidset.Pair{{Tid: 0, Prob: 1e-6}})
	require.NoError(t, err)
	b, err := tidset.New(2, []tidset.Pair{{Tid: 0, Prob: 1e-7}})
	require.NoError(t, err)

	inter, err := a.Intersect(b)
	require.NoError(t, err)
	require.Equal(t, 0, inter.Len(), "product 1e-13 is below MinProb")
}

func TestIntersectRejectsUniverseMismatch(t *testing.T) {
	a := tidset.Empty(3)
	b := tidset.Empty(4)

	_, err := a.Intersect(b)
	require.Error(t, err)
}

func TestIntersectIsOrderPreservingAndAscending(t *testing.T) {
	a, err := tidset.New(6, []tidset.Pair{{Tid: 0, Prob: 1}, {Tid: 2, Prob: 1}, {Tid: 4, Prob: 1}, {Tid: 5, Prob: 1}})
	require.NoError(t, err)
	b, err := tidset.New(6, []tidset.Pair{{Tid: 1, Prob: 1}, {Tid: 2, Prob: 1}, {Tid: 4, Prob: 1}})
	require.NoError(t, err)

	inter, err := a.Intersect(b)
	require.NoError(t, err)
	var tids []int
	for _, p := range inter.Pairs() {
		tids = append(tids, p.Tid)
	}
	require.Equal(t, []int{2, 4}, tids)
}
