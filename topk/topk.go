// Package topk implements the bounded top-K min-heap (spec.md §4.5, C5)
// that feeds the dynamic support threshold theta back into the closure
// engine's pruning rules.
//
// Ordering mirrors the teacher's container/heap priority queue for MST
// edges (prim_kruskal's edgePQ): a small heap.Interface implementation
// wrapping a slice, exposed behind a narrow, purpose-built API rather
// than the raw container/heap surface.
package topk

import (
	"container/heap"
	"sort"

	"github.com/probmine/ucim/itemset"
)

// Item is one candidate tracked by the heap: a closed itemset plus its
// probabilistic support and tail probability.
type Item struct {
	Set     *itemset.Set
	Support int
	Prob    float64
}

// lessEviction reports whether a is evicted before b: smaller support
// first, ties broken by smaller probability, final tie broken by the
// lexicographically smaller ascending item-ID list (then the shorter
// list) for determinism (spec.md §9, Open Question: "fix it at item-ID
// ascending").
func lessEviction(a, b Item) bool {
	if a.Support != b.Support {
		return a.Support < b.Support
	}
	if a.Prob != b.Prob {
		return a.Prob < b.Prob
	}
	return compareItemsAscending(a.Set, b.Set) < 0
}

// compareItemsAscending orders two itemsets deterministically by
// comparing their ascending item-ID sequences lexicographically, and
// then by length. Used only for breaking exact (support, prob) ties.
func compareItemsAscending(a, b *itemset.Set) int {
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

// Heap is a fixed-capacity min-heap of Items ordered for eviction by
// (support asc, probability asc). Capacity is set at construction and
// never changes (spec.md §4.5).
type Heap struct {
	cap int
	pq  itemPQ
}

// New creates a Heap with the given capacity K (K >= 1).
func New(capacity int) *Heap {
	return &Heap{cap: capacity, pq: make(itemPQ, 0, capacity)}
}

// Len returns the current number of items held.
func (h *Heap) Len() int { return h.pq.Len() }

// IsFull reports whether the heap holds Capacity items.
func (h *Heap) IsFull() bool { return h.pq.Len() >= h.cap }

// Capacity returns K.
func (h *Heap) Capacity() int { return h.cap }

// MinSupport returns the eviction-order minimum's support, or 0 if the
// heap is not yet full (spec.md §4.5's theta definition).
func (h *Heap) MinSupport() int {
	if !h.IsFull() {
		return 0
	}
	return h.pq[0].Support
}

// Insert attempts to add item to the heap. It succeeds (returns true)
// iff the heap is not yet full, or item outranks (by eviction order)
// the current minimum; on success when full, the current minimum is
// displaced. Returns false if item was rejected.
func (h *Heap) Insert(item Item) bool {
	if !h.IsFull() {
		heap.Push(&h.pq, item)
		return true
	}
	if lessEviction(h.pq[0], item) {
		h.pq[0] = item
		heap.Fix(&h.pq, 0)
		return true
	}
	return false
}

// Drain empties the heap and returns its contents sorted by
// (support desc, probability desc) per spec.md §4.3's Return contract.
// The Heap is left empty and may be reused for a fresh capacity-bounded
// pass (though MiningPipeline never does so within one run).
func (h *Heap) Drain() []Item {
	out := make([]Item, len(h.pq))
	copy(out, h.pq)
	h.pq = h.pq[:0]

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Support != b.Support {
			return a.Support > b.Support
		}
		if a.Prob != b.Prob {
			return a.Prob > b.Prob
		}
		return compareItemsAscending(a.Set, b.Set) < 0
	})
	return out
}

// itemPQ implements heap.Interface for a min-heap of Items ordered by
// lessEviction, directly grounded on prim_kruskal's edgePQ.
type itemPQ []Item

func (pq itemPQ) Len() int            { return len(pq) }
func (pq itemPQ) Less(i, j int) bool  { return lessEviction(pq[i], pq[j]) }
func (pq itemPQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *itemPQ) Push(x interface{}) { *pq = append(*pq, x.(Item)) }
func (pq *itemPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
