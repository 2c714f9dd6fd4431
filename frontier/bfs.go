package frontier

import "github.com/probmine/ucim/topk"

// bfsQueue is a FIFO Strategy (spec.md §4.4). No Phase-3 early
// termination (P2a only). spec.md §4.4's "implementation must track
// maximum queue size and per-level counts" is satisfied by the caller:
// miner.MiningPipeline reports the high-water mark uniformly across all
// three strategies via pruning.Counters.ObserveFrontierSize(strategy.Len())
// after every Push, and per-level counts via ObserveLevel, since both are
// properties of what flows through the frontier, not of the queue itself.
//
// Grounded directly on the teacher's bfs.walker.queue/dequeue slice-based
// FIFO (bfs/bfs.go).
type bfsQueue struct {
	items []topk.Item
	head  int
}

func newBFSQueue() *bfsQueue {
	return &bfsQueue{}
}

func (s *bfsQueue) Push(item topk.Item) {
	s.items = append(s.items, item)
}

func (s *bfsQueue) Pop() (topk.Item, bool) {
	if s.head >= len(s.items) {
		return topk.Item{}, false
	}
	item := s.items[s.head]
	s.items[s.head] = topk.Item{}
	s.head++
	// Reclaim backing array once fully drained to bound memory growth.
	if s.head == len(s.items) {
		s.items = s.items[:0]
		s.head = 0
	}
	return item, true
}

func (s *bfsQueue) Len() int { return len(s.items) - s.head }

func (s *bfsQueue) SupportsEarlyTermination() bool { return false }
