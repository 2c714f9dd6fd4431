// Package frontier implements the three pluggable Phase 3 data structures
// (spec.md §4.4, C9): best-first (priority queue), DFS (LIFO stack), and
// BFS (FIFO queue). All three share the same Strategy surface so
// MiningPipeline's Phase 3 loop (see package miner) is identical
// regardless of which is chosen; spec.md §8's I7 requires the three to
// yield identical closed top-K result sets.
package frontier

import "github.com/probmine/ucim/topk"

// Strategy abstracts the not-yet-processed candidate store Phase 3
// drains (spec.md §4.4).
type Strategy interface {
	// Push adds a candidate to the frontier.
	Push(item topk.Item)
	// Pop removes and returns the next candidate per the strategy's
	// order, or (zero, false) if the frontier is empty.
	Pop() (topk.Item, bool)
	// Len returns the number of candidates currently held.
	Len() int
	// SupportsEarlyTermination reports whether Phase 3 may stop the
	// entire drain loop (P2b) as soon as the next popped candidate
	// fails theta, rather than only skipping that one candidate (P2a).
	// Only best-first supports this (spec.md §4.3 step 2).
	SupportsEarlyTermination() bool
}

// Name identifies which concrete Strategy to build.
type Name string

const (
	BestFirst Name = "best-first"
	DFS       Name = "dfs"
	BFS       Name = "bfs"
)

// New builds the named Strategy.
func New(name Name) Strategy {
	switch name {
	case BestFirst:
		return newBestFirst()
	case DFS:
		return newDFSStack()
	case BFS:
		return newBFSQueue()
	default:
		return newBestFirst()
	}
}

// PushOrder returns items reordered the way each strategy wants a batch
// pushed together, whether that's Phase 2's initial 2-itemset seed batch
// or one candidate's Phase 3 extension batch (spec.md §4.3, §4.4):
// ascending support for stacks (so the highest-support item ends up on
// top), descending support for queues, and unchanged (irrelevant) order
// for a priority frontier. items must already be sorted by support
// descending; PushOrder returns a new slice, items is left untouched.
func PushOrder(name Name, items []topk.Item) []topk.Item {
	switch name {
	case DFS:
		out := make([]topk.Item, len(items))
		for i, it := range items {
			out[len(items)-1-i] = it
		}
		return out
	case BFS:
		out := make([]topk.Item, len(items))
		copy(out, items)
		return out
	default: // BestFirst: order doesn't matter
		out := make([]topk.Item, len(items))
		copy(out, items)
		return out
	}
}
