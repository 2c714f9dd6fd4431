package patterncache_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/probmine/ucim/itemset"
	"github.com/probmine/ucim/patterncache"
)

func TestPutGet(t *testing.T) {
	c := patterncache.New()
	s := itemset.Of(1, 2)
	_, ok := c.Get(s)
	require.False(t, ok)

	c.Put(patterncache.Entry{Set: s, Support: 3, Prob: 0.7})
	e, ok := c.Get(s)
	require.True(t, ok)
	require.Equal(t, 3, e.Support)
	require.InDelta(t, 0.7, e.Prob, 1e-9)
}

func TestConcurrentShardsMerge(t *testing.T) {
	shards := patterncache.NewShards(4)
	var wg sync.WaitGroup
	for w, shard := range shards {
		w, shard := w, shard
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				item := w*50 + i
				shard.Put(patterncache.Entry{Set: itemset.Of(item), Support: item, Prob: 1})
			}
		}()
	}
	wg.Wait()

	merged := patterncache.MergeShards(shards)
	require.Equal(t, 200, merged.Len())
	e, ok := merged.Get(itemset.Of(77))
	require.True(t, ok)
	require.Equal(t, 77, e.Support)
}
