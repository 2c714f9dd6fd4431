package frontier

import (
	"container/heap"

	"github.com/probmine/ucim/itemset"
	"github.com/probmine/ucim/topk"
)

// bestFirst is a priority-queue Strategy ordered by
// (support desc, size asc, probability desc) — spec.md §4.4. It supports
// Phase 3 early termination: if the current best candidate fails theta,
// every remaining candidate does too.
type bestFirst struct {
	pq bestFirstPQ
}

func newBestFirst() *bestFirst {
	return &bestFirst{}
}

func (s *bestFirst) Push(item topk.Item) {
	heap.Push(&s.pq, item)
}

func (s *bestFirst) Pop() (topk.Item, bool) {
	if len(s.pq) == 0 {
		return topk.Item{}, false
	}
	return heap.Pop(&s.pq).(topk.Item), true
}

func (s *bestFirst) Len() int { return len(s.pq) }

func (s *bestFirst) SupportsEarlyTermination() bool { return true }

// bestFirstPQ implements heap.Interface for a max-priority queue over
// topk.Item, grounded directly on prim_kruskal/prim.go's edgePQ
// (container/heap wrapping a plain slice).
type bestFirstPQ []topk.Item

func (pq bestFirstPQ) Len() int { return len(pq) }

func (pq bestFirstPQ) Less(i, j int) bool {
	a, b := pq[i], pq[j]
	if a.Support != b.Support {
		return a.Support > b.Support // support desc
	}
	if a.Set.Len() != b.Set.Len() {
		return a.Set.Len() < b.Set.Len() // size asc
	}
	if a.Prob != b.Prob {
		return a.Prob > b.Prob // probability desc
	}
	return compareAscending(a.Set, b.Set) < 0
}

func (pq bestFirstPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *bestFirstPQ) Push(x interface{}) { *pq = append(*pq, x.(topk.Item)) }

func (pq *bestFirstPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// compareAscending breaks exact ties deterministically (item-ID
// ascending, spec.md §9's Open Question resolution).
func compareAscending(a, b *itemset.Set) int {
	ai, bi := a.Items(), b.Items()
	for i := 0; i < len(ai) && i < len(bi); i++ {
		if ai[i] != bi[i] {
			if ai[i] < bi[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(ai) < len(bi):
		return -1
	case len(ai) > len(bi):
		return 1
	default:
		return 0
	}
}
