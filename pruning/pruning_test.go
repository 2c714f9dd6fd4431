package pruning_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/probmine/ucim/pruning"
)

func TestAllEnabledAllDisabled(t *testing.T) {
	all := pruning.AllEnabled()
	none := pruning.AllDisabled()
	for f := pruning.P1a; f <= pruning.P7; f++ {
		require.True(t, all.Enabled(f))
		require.False(t, none.Enabled(f))
	}
}

func TestWithWithout(t *testing.T) {
	p := pruning.AllDisabled().With(pruning.P3).With(pruning.P6)
	require.True(t, p.Enabled(pruning.P3))
	require.True(t, p.Enabled(pruning.P6))
	require.False(t, p.Enabled(pruning.P4))

	p2 := p.Without(pruning.P3)
	require.False(t, p2.Enabled(pruning.P3))
	require.True(t, p.Enabled(pruning.P3), "Without must not mutate the receiver")
}

func TestCountersRecordAndObserve(t *testing.T) {
	var c pruning.Counters
	c.RecordSkip(pruning.P3)
	c.RecordSkip(pruning.P3)
	c.RecordVisit()
	c.RecordCacheHit()
	c.RecordCacheMiss()
	c.ObserveFrontierSize(5)
	c.ObserveFrontierSize(2)
	c.ObserveLevel(1)
	c.ObserveLevel(2)

	require.Equal(t, int64(2), c.Skipped[pruning.P3])
	require.Equal(t, int64(1), c.CandidatesVisited)
	require.Equal(t, int64(1), c.CacheHits)
	require.Equal(t, int64(1), c.CacheMisses)
	require.Equal(t, 5, c.FrontierHighWater, "ObserveFrontierSize keeps the running max")
	require.Equal(t, []int64{0, 1, 1}, c.PerLevelCounts)
}
