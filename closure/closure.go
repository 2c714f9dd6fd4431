// Package closure implements the two closure-checking operations at the
// heart of the mining core (spec.md §4.2, C7): the 1-itemset closure
// check run during Phase 2 seeding, and the general
// checkClosureAndGenerateExtensions run for every candidate drained from
// the frontier in Phase 3. Both share one PatternCache and apply the
// P1b/P3-P7 pruning shortcuts controlled by a pruning.Profile.
//
// The iteration/early-exit shape (a single pass over an ordered slice
// with a monotonic "done" flag) mirrors the teacher's bfs.walker loop
// (bfs/bfs.go); there is no graph-algorithm analog for the closure math
// itself, which follows spec.md §4.2 directly.
package closure

import (
	"fmt"

	"github.com/probmine/ucim/itemset"
	"github.com/probmine/ucim/patterncache"
	"github.com/probmine/ucim/pruning"
	"github.com/probmine/ucim/support"
	"github.com/probmine/ucim/tidset"
	"github.com/probmine/ucim/topk"
	"github.com/probmine/ucim/udb"
)

// OrderedItem is one entry of the deterministic singleton / frequent_items
// ordering (support desc, probability desc, item-ID asc) spec.md §5
// requires of Phase 2's observation order.
type OrderedItem struct {
	ItemID  int
	Support int
	Prob    float64
}

// Candidate bundles an itemset with its already-known (cached) support,
// probability, and owned tidset — the inputs checkClosureAndGenerateExtensions
// needs about X itself (spec.md §4.2.2).
type Candidate struct {
	Set     *itemset.Set
	Support int
	Prob    float64
	Tidset  *tidset.Tidset
}

// ExtensionResult is the output of CheckClosureAndGenerateExtensions:
// whether X is closed, and the canonical supersets to enqueue.
type ExtensionResult struct {
	Closed     bool
	Extensions []topk.Item
}

// Engine evaluates closure and generates extensions against one shared
// PatternCache, Database, and SupportCalculator for a single mining run.
type Engine struct {
	db            udb.Database
	cache         *patterncache.Cache
	calc          support.Calculator
	profile       pruning.Profile
	counters      *pruning.Counters
	singletonSets []*itemset.Set // indexed by item id, size V
}

// New builds an Engine. singletonSets must be indexed by item id
// (spec.md §3's singleton_cache[i]) and pre-populated by the caller
// (miner.MiningPipeline, Phase 1).
func New(db udb.Database, cache *patterncache.Cache, calc support.Calculator, profile pruning.Profile, counters *pruning.Counters, singletonSets []*itemset.Set) *Engine {
	return &Engine{
		db:            db,
		cache:         cache,
		calc:          calc,
		profile:       profile,
		counters:      counters,
		singletonSets: singletonSets,
	}
}

// SingletonSet returns the shared *itemset.Set for item id i.
func (e *Engine) SingletonSet(i int) *itemset.Set {
	return e.singletonSets[i]
}

// CacheEntry exposes a read-only lookup into the Engine's shared
// PatternCache, for callers (miner.MiningPipeline's Phase 3) that need a
// candidate's already-computed (support, prob, tidset) before calling
// CheckClosureAndGenerateExtensions.
func (e *Engine) CacheEntry(s *itemset.Set) (patterncache.Entry, bool) {
	return e.cache.Get(s)
}

// singletonEntry returns the cached entry for item i's singleton,
// recomputing it from the Database only on a cache miss (spec.md §4.2.2
// step 6's fallback).
func (e *Engine) singletonEntry(i int) (patterncache.Entry, error) {
	set := e.singletonSets[i]
	if entry, ok := e.cache.Get(set); ok {
		e.counters.RecordCacheHit()
		return entry, nil
	}
	e.counters.RecordCacheMiss()
	ts, err := e.db.Tidset(set)
	if err != nil {
		return patterncache.Entry{}, fmt.Errorf("closure: tidset({%d}): %w", i, err)
	}
	res := e.calc.FromSparse(ts, e.db.Size())
	entry := patterncache.Entry{Set: set, Support: res.Support, Prob: res.Tail, Tidset: ts}
	e.cache.Put(entry)
	return entry, nil
}

// CheckClosureSingleton implements spec.md §4.2.1: is the singleton {A}
// closed, given the current (ordered, support-descending) singleton list
// and the dynamic threshold minSup? As a side effect, every 2-itemset
// {A,B} with sup({B}) >= minSup is memoized in the cache (spec.md §9's
// resolved Open Question).
func (e *Engine) CheckClosureSingleton(a OrderedItem, ordered []OrderedItem, minSup int) (bool, error) {
	closed := true
	for _, b := range ordered {
		if b.ItemID == a.ItemID {
			continue
		}
		if e.profile.Enabled(pruning.P1b) && b.Support < a.Support {
			e.counters.RecordSkip(pruning.P1b)
			break
		}

		pairSet := e.singletonSets[a.ItemID].Union(e.singletonSets[b.ItemID])
		entry, hit := e.cache.Get(pairSet)
		if hit {
			e.counters.RecordCacheHit()
		} else {
			e.counters.RecordCacheMiss()
			entryA, err := e.singletonEntry(a.ItemID)
			if err != nil {
				return false, err
			}
			entryB, err := e.singletonEntry(b.ItemID)
			if err != nil {
				return false, err
			}
			inter, err := entryA.Tidset.Intersect(entryB.Tidset)
			if err != nil {
				return false, fmt.Errorf("closure: intersect {%d,%d}: %w", a.ItemID, b.ItemID, err)
			}
			res := e.calc.FromSparse(inter, e.db.Size())
			entry = patterncache.Entry{Set: pairSet, Support: res.Support, Prob: res.Tail, Tidset: inter}
			if b.Support >= minSup {
				e.cache.Put(entry)
			}
		}

		if entry.Support == a.Support {
			closed = false
		}
	}

	return closed, nil
}

// CheckClosureAndGenerateExtensions implements spec.md §4.2.2: is
// candidate X closed, and which canonical supersets X∪{i} should be
// enqueued as Phase 3 frontier candidates? frequentItems must be sorted
// by support descending (Phase 2's frequent_items[] array); theta is the
// current topk.Heap.MinSupport(), and topKFull reports whether the
// top-K is at capacity (gates P4's tightened upper bound, spec.md §4.2.2
// step 4).
func (e *Engine) CheckClosureAndGenerateExtensions(x Candidate, theta int, topKFull bool, frequentItems []OrderedItem) (ExtensionResult, error) {
	e.counters.RecordVisit()

	isClosed := true
	closureCheckingDone := false
	maxItem, hasMax := x.Set.MaxItem()
	xItems := x.Set.Items()
	var extensions []topk.Item

	for _, fi := range frequentItems {
		i := fi.ItemID
		if x.Set.Contains(i) {
			continue
		}

		// 1. P3 — item-support cutoff.
		if e.profile.Enabled(pruning.P3) && fi.Support < theta {
			e.counters.RecordSkip(pruning.P3)
			break
		}

		// 2. Closure-checking done flag.
		if !closureCheckingDone && fi.Support < x.Support {
			closureCheckingDone = true
		}

		// 3. Booleans.
		needClosureCheck := !closureCheckingDone && isClosed
		needExtension := !hasMax || i > maxItem

		// 4. P4 — subset upper bound.
		ub := minInt(x.Support, fi.Support)
		if e.profile.Enabled(pruning.P4) && topKFull && needExtension {
			for _, existing := range xItems {
				pairSet := e.singletonSets[int(existing)].Union(e.singletonSets[i])
				entry, ok := e.cache.Get(pairSet)
				if !ok {
					continue
				}
				if entry.Support < ub {
					ub = entry.Support
				}
				if ub < theta {
					break
				}
			}
		}

		// 5. P5 — upper-bound filter.
		canEnter := ub >= theta
		if !e.profile.Enabled(pruning.P5) {
			canEnter = true
		}
		shouldExtend := needExtension && canEnter
		if !needClosureCheck && !shouldExtend {
			e.counters.RecordSkip(pruning.P5)
			continue
		}

		// 6. Form Xe, cache hit/miss.
		xe := x.Set.WithItem(i)
		entry, hit := e.cache.Get(xe)
		var sXe int
		var pXe float64
		if hit {
			e.counters.RecordCacheHit()
			sXe, pXe = entry.Support, entry.Prob
		} else {
			e.counters.RecordCacheMiss()
			parentI, err := e.singletonEntry(i)
			if err != nil {
				return ExtensionResult{}, err
			}
			tsXe, err := x.Tidset.Intersect(parentI.Tidset)
			if err != nil {
				return ExtensionResult{}, fmt.Errorf("closure: intersect extension: %w", err)
			}
			m := tsXe.Len()

			// 7. P6 — tidset-size cutoff.
			if e.profile.Enabled(pruning.P6) && m < theta && !needClosureCheck {
				e.cache.Put(patterncache.Entry{Set: xe, Support: 0, Prob: 0, Tidset: tsXe})
				e.counters.RecordSkip(pruning.P6)
				continue
			}

			// 8. P7 — tidset-based closure shortcut.
			if needClosureCheck && e.profile.Enabled(pruning.P7) && m < x.Support {
				if !shouldExtend {
					e.counters.RecordSkip(pruning.P7)
					continue
				}
				needClosureCheck = false
			}

			// 9. Invoke calculator, cache.
			res := e.calc.FromSparse(tsXe, e.db.Size())
			sXe, pXe = res.Support, res.Tail
			e.cache.Put(patterncache.Entry{Set: xe, Support: sXe, Prob: pXe, Tidset: tsXe})
		}

		// 10. Closure test.
		if needClosureCheck && sXe == x.Support {
			isClosed = false
		}

		// 11. Extension.
		if shouldExtend {
			extensions = append(extensions, topk.Item{Set: xe, Support: sXe, Prob: pXe})
		}
	}

	return ExtensionResult{Closed: isClosed, Extensions: extensions}, nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
