package miner

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/probmine/ucim/closure"
	"github.com/probmine/ucim/frontier"
	"github.com/probmine/ucim/itemset"
	"github.com/probmine/ucim/patterncache"
	"github.com/probmine/ucim/pruning"
	"github.com/probmine/ucim/topk"
	"github.com/probmine/ucim/udb"
)

// FrequentItemset is one entry of a mining Result (spec.md §3).
type FrequentItemset struct {
	Set     *itemset.Set
	Support int
	Prob    float64
}

// Result is the core's sole output: a list of closed FrequentItemsets
// sorted by (support desc, probability desc), per spec.md §6.
type Result []FrequentItemset

// PhaseStats records the elapsed wall time of one pipeline phase.
type PhaseStats struct {
	Name     string
	Duration time.Duration
}

// Stats is the plain, non-observer reporting value MiningPipeline.Mine
// returns alongside Result (SPEC_FULL.md §4.8): phase timings and a
// pruning.Counters snapshot. It is not the phase-timing observer spec.md
// §1 keeps external — there is no callback or printing contract here.
type Stats struct {
	Phases  []PhaseStats
	Pruning pruning.Counters
}

// MiningPipeline runs the fixed three-phase template against one
// Database (spec.md §4.3, C8). A MiningPipeline is built once per run by
// MinerFactory's NewPipeline and is not reentrant: Mine constructs all
// mutable state fresh and discards it on return (spec.md §3's Lifecycle).
type MiningPipeline struct {
	db     udb.Database
	config Config
}

// NewPipeline validates (tau, k, db) and any Options, returning
// InvalidParameter errors eagerly (spec.md §7); mining is not attempted
// on a construction error.
func NewPipeline(db udb.Database, tau float64, k int, opts ...Option) (*MiningPipeline, error) {
	if db == nil {
		return nil, ErrNilDatabase
	}
	if db.Size() == 0 {
		return nil, ErrEmptyDatabase
	}
	cfg, err := newConfig(tau, k, opts)
	if err != nil {
		return nil, err
	}

	return &MiningPipeline{db: db, config: cfg}, nil
}

// Mine runs Phases 1->2->3 and returns the closed top-K result.
func (p *MiningPipeline) Mine(ctx context.Context) (Result, Stats, error) {
	log := p.config.logger
	v := p.db.Vocabulary().Size()

	singletonSets := make([]*itemset.Set, v)
	for i := 0; i < v; i++ {
		singletonSets[i] = itemset.Of(i)
	}

	var stats Stats
	var counters pruning.Counters

	cache, err := p.runPhase1(ctx, v, singletonSets, &stats)
	if err != nil {
		return nil, stats, err
	}

	orderedSingletons := p.collectSingletons(cache, singletonSets, v)
	log.Debug("phase1 complete", zap.Int("vocabulary", v), zap.Int("singletons", len(orderedSingletons)))

	engine := closure.New(p.db, cache, p.config.calc, p.config.profile, &counters, singletonSets)

	heap := topk.New(p.config.k)
	t0 := time.Now()
	frequentItems, minSup, err := p.runPhase2(engine, heap, orderedSingletons, &counters)
	if err != nil {
		return nil, stats, err
	}
	stats.Phases = append(stats.Phases, PhaseStats{Name: "phase2", Duration: time.Since(t0)})
	log.Debug("phase2 complete", zap.Int("frequent_items", len(frequentItems)), zap.Int("min_support", minSup))

	seeds := p.seedFrontier(cache, minSup)

	t0 = time.Now()
	if err := p.runPhase3(engine, heap, seeds, frequentItems, &counters); err != nil {
		return nil, stats, err
	}
	stats.Phases = append(stats.Phases, PhaseStats{Name: "phase3", Duration: time.Since(t0)})
	stats.Pruning = counters
	log.Debug("phase3 complete", zap.Int64("candidates_visited", counters.CandidatesVisited))

	drained := heap.Drain()
	result := make(Result, len(drained))
	for i, it := range drained {
		result[i] = FrequentItemset{Set: it.Set, Support: it.Support, Prob: it.Prob}
	}

	return result, stats, nil
}

// runPhase1 computes every non-empty singleton's (support, prob, tidset)
// in parallel (spec.md §4.3 Phase 1), one PatternCache shard per worker
// (spec.md §5), merged into a single Cache before returning.
func (p *MiningPipeline) runPhase1(ctx context.Context, v int, singletonSets []*itemset.Set, stats *Stats) (*patterncache.Cache, error) {
	t0 := time.Now()
	workers := p.config.parallelism
	if workers > v && v > 0 {
		workers = v
	}
	if workers < 1 {
		workers = 1
	}
	shards := patterncache.NewShards(workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < v; i++ {
		i := i
		shard := shards[i%workers]
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			set := singletonSets[i]
			ts, err := p.db.Tidset(set)
			if err != nil {
				return fmt.Errorf("miner: phase1 tidset({%d}): %w", i, err)
			}
			if ts.Len() == 0 {
				return nil
			}
			res := p.config.calc.FromSparse(ts, p.db.Size())
			shard.Put(patterncache.Entry{Set: set, Support: res.Support, Prob: res.Tail, Tidset: ts})

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	cache := patterncache.MergeShards(shards)
	stats.Phases = append(stats.Phases, PhaseStats{Name: "phase1", Duration: time.Since(t0)})

	return cache, nil
}

// collectSingletons returns the cached non-empty singletons in the
// deterministic order spec.md §5 requires: support desc, probability
// desc, item-ID asc.
func (p *MiningPipeline) collectSingletons(cache *patterncache.Cache, singletonSets []*itemset.Set, v int) []closure.OrderedItem {
	out := make([]closure.OrderedItem, 0, v)
	for i := 0; i < v; i++ {
		entry, ok := cache.Get(singletonSets[i])
		if !ok {
			continue
		}
		out = append(out, closure.OrderedItem{ItemID: i, Support: entry.Support, Prob: entry.Prob})
	}
	sortOrderedItems(out)

	return out
}

func sortOrderedItems(items []closure.OrderedItem) {
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Support != b.Support {
			return a.Support > b.Support
		}
		if a.Prob != b.Prob {
			return a.Prob > b.Prob
		}
		return a.ItemID < b.ItemID
	})
}

// runPhase2 seeds the top-K heap from closed singletons and builds
// frequent_items[] (spec.md §4.3 Phase 2). A Database/tidset error from a
// closure check ends the phase and is returned to the caller.
func (p *MiningPipeline) runPhase2(engine *closure.Engine, heap *topk.Heap, ordered []closure.OrderedItem, counters *pruning.Counters) ([]closure.OrderedItem, int, error) {
	minSup := 0

	for _, single := range ordered {
		if p.config.profile.Enabled(pruning.P1a) && heap.IsFull() && single.Support < minSup {
			counters.RecordSkip(pruning.P1a)
			break
		}

		closed, err := engine.CheckClosureSingleton(single, ordered, minSup)
		if err != nil {
			return nil, 0, err
		}
		if !closed {
			continue
		}

		itemSet := singletonSetFor(engine, single.ItemID)
		if heap.Insert(topk.Item{Set: itemSet, Support: single.Support, Prob: single.Prob}) {
			if heap.IsFull() {
				minSup = heap.MinSupport()
			}
		}
	}

	frequentItems := make([]closure.OrderedItem, 0, len(ordered))
	for _, single := range ordered {
		if single.Support >= minSup {
			frequentItems = append(frequentItems, single)
		}
	}

	return frequentItems, minSup, nil
}

// seedFrontier collects every cached 2-itemset with support >= minSup
// (spec.md §4.3 Phase 2's final seeding step), sorted by support desc as
// the baseline order frontier.PushOrder expects.
func (p *MiningPipeline) seedFrontier(cache *patterncache.Cache, minSup int) []topk.Item {
	var seeds []topk.Item
	for _, entry := range cache.Entries() {
		if entry.Set.Len() != 2 {
			continue
		}
		if entry.Support < minSup {
			continue
		}
		seeds = append(seeds, topk.Item{Set: entry.Set, Support: entry.Support, Prob: entry.Prob})
	}
	sort.Slice(seeds, func(i, j int) bool {
		a, b := seeds[i], seeds[j]
		if a.Support != b.Support {
			return a.Support > b.Support
		}
		if a.Prob != b.Prob {
			return a.Prob > b.Prob
		}
		return compareAscendingItems(a.Set, b.Set) < 0
	})

	return seeds
}

// runPhase3 drains the frontier, checking closure and re-pushing viable
// extensions, until it is empty (spec.md §4.3 Phase 3).
func (p *MiningPipeline) runPhase3(engine *closure.Engine, heap *topk.Heap, seeds []topk.Item, frequentItems []closure.OrderedItem, counters *pruning.Counters) error {
	strategy := frontier.New(p.config.strategy)
	for _, s := range frontier.PushOrder(p.config.strategy, seeds) {
		strategy.Push(s)
		counters.ObserveFrontierSize(strategy.Len())
	}

	for strategy.Len() > 0 {
		item, ok := strategy.Pop()
		if !ok {
			break
		}
		counters.ObserveLevel(item.Set.Len())

		theta := heap.MinSupport()
		if item.Support < theta {
			if strategy.SupportsEarlyTermination() && p.config.profile.Enabled(pruning.P2b) {
				counters.RecordSkip(pruning.P2b)
				break
			}
			if p.config.profile.Enabled(pruning.P2a) {
				counters.RecordSkip(pruning.P2a)
				continue
			}
		}

		entry, ok := engine.CacheEntry(item.Set)
		if !ok {
			return fmt.Errorf("miner: phase3 cache miss for %s (invariant violation)", item.Set)
		}

		candidate := closure.Candidate{Set: item.Set, Support: entry.Support, Prob: entry.Prob, Tidset: entry.Tidset}
		result, err := engine.CheckClosureAndGenerateExtensions(candidate, theta, heap.IsFull(), frequentItems)
		if err != nil {
			return err
		}
		if result.Closed {
			heap.Insert(topk.Item{Set: item.Set, Support: entry.Support, Prob: entry.Prob})
		}

		theta2 := heap.MinSupport()
		var viable []topk.Item
		for _, ext := range result.Extensions {
			if !p.config.profile.Enabled(pruning.P2c) || ext.Support >= theta2 {
				viable = append(viable, ext)
			} else {
				counters.RecordSkip(pruning.P2c)
			}
		}
		sort.Slice(viable, func(i, j int) bool {
			a, b := viable[i], viable[j]
			if a.Support != b.Support {
				return a.Support > b.Support
			}
			return compareAscendingItems(a.Set, b.Set) < 0
		})
		for _, e := range frontier.PushOrder(p.config.strategy, viable) {
			strategy.Push(e)
			counters.ObserveFrontierSize(strategy.Len())
		}
	}

	return nil
}

func singletonSetFor(engine *closure.Engine, itemID int) *itemset.Set {
	return engine.SingletonSet(itemID)
}

func compareAscendingItems(a, b *itemset.Set) int {
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
