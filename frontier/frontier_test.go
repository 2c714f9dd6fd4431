package frontier_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/probmine/ucim/frontier"
	"github.com/probmine/ucim/itemset"
	"github.com/probmine/ucim/topk"
)

func item(supp int, items ...int) topk.Item {
	return topk.Item{Set: itemset.Of(items...), Support: supp, Prob: 1}
}

func TestBestFirstOrdersBySupportDesc(t *testing.T) {
	s := frontier.New(frontier.BestFirst)
	s.Push(item(3, 1))
	s.Push(item(9, 2))
	s.Push(item(5, 3))

	got := drainAll(s)
	require.Equal(t, []int{9, 5, 3}, got)
	require.True(t, s.SupportsEarlyTermination())
}

func TestDFSIsLIFO(t *testing.T) {
	s := frontier.New(frontier.DFS)
	s.Push(item(1, 1))
	s.Push(item(2, 2))
	s.Push(item(3, 3))

	got := drainAll(s)
	require.Equal(t, []int{3, 2, 1}, got)
	require.False(t, s.SupportsEarlyTermination())
}

func TestBFSIsFIFO(t *testing.T) {
	s := frontier.New(frontier.BFS)
	s.Push(item(1, 1))
	s.Push(item(2, 2))
	s.Push(item(3, 3))

	got := drainAll(s)
	require.Equal(t, []int{1, 2, 3}, got)
	require.False(t, s.SupportsEarlyTermination())
}

func TestPushOrderDFSAscending(t *testing.T) {
	descending := []topk.Item{item(9, 1), item(5, 2), item(1, 3)}
	ordered := frontier.PushOrder(frontier.DFS, descending)
	require.Equal(t, []int{1, 5, 9}, supports(ordered))
}

func TestPushOrderBFSDescending(t *testing.T) {
	descending := []topk.Item{item(9, 1), item(5, 2), item(1, 3)}
	ordered := frontier.PushOrder(frontier.BFS, descending)
	require.Equal(t, []int{9, 5, 1}, supports(ordered))
}

func drainAll(s frontier.Strategy) []int {
	var out []int
	for {
		it, ok := s.Pop()
		if !ok {
			break
		}
		out = append(out, it.Support)
	}
	return out
}

func supports(items []topk.Item) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.Support
	}
	return out
}
