package frontier

import "github.com/probmine/ucim/topk"

// dfsStack is a LIFO Strategy (spec.md §4.4). No Phase-3 early
// termination: a low-support candidate only means that one candidate is
// skipped (P2a), not that the whole stack can be discarded.
//
// Grounded on the teacher's bfs.walker queue-management style
// (bfs/bfs.go's enqueue/dequeue pair), adapted from FIFO to LIFO.
type dfsStack struct {
	items []topk.Item
}

func newDFSStack() *dfsStack {
	return &dfsStack{}
}

func (s *dfsStack) Push(item topk.Item) {
	s.items = append(s.items, item)
}

func (s *dfsStack) Pop() (topk.Item, bool) {
	n := len(s.items)
	if n == 0 {
		return topk.Item{}, false
	}
	item := s.items[n-1]
	s.items = s.items[:n-1]
	return item, true
}

func (s *dfsStack) Len() int { return len(s.items) }

func (s *dfsStack) SupportsEarlyTermination() bool { return false }
