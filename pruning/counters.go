package pruning

// Counters tallies how many times each pruning rule actually fired during
// one mining run, plus a few related bookkeeping totals. It is a plain
// snapshot returned to the caller (SPEC_FULL.md §4.8) — never a
// caller-supplied observer/callback, which spec.md §1 keeps external.
type Counters struct {
	// Skipped[f] counts candidates pruning rule f caused to be skipped
	// or short-circuited.
	Skipped [numFlags]int64

	// CandidatesVisited counts every candidate itemset that reached
	// checkClosureAndGenerateExtensions.
	CandidatesVisited int64

	// CacheHits and CacheMisses count patterncache lookups.
	CacheHits   int64
	CacheMisses int64

	// FrontierHighWater is the largest frontier size observed during
	// Phase 3.
	FrontierHighWater int

	// PerLevelCounts is recorded for every candidate Phase 3 pops,
	// regardless of frontier strategy: index i holds the number of
	// i-item candidates processed. spec.md §4.4 requires BFS in
	// particular to track this; the other two strategies get it for
	// free from the same call site.
	PerLevelCounts []int64
}

// RecordSkip increments the counter for flag.
func (c *Counters) RecordSkip(flag Flag) {
	c.Skipped[flag]++
}

// RecordVisit increments CandidatesVisited.
func (c *Counters) RecordVisit() {
	c.CandidatesVisited++
}

// RecordCacheHit increments CacheHits.
func (c *Counters) RecordCacheHit() {
	c.CacheHits++
}

// RecordCacheMiss increments CacheMisses.
func (c *Counters) RecordCacheMiss() {
	c.CacheMisses++
}

// ObserveFrontierSize updates FrontierHighWater if size is a new max.
func (c *Counters) ObserveFrontierSize(size int) {
	if size > c.FrontierHighWater {
		c.FrontierHighWater = size
	}
}

// ObserveLevel records one candidate processed at the given BFS level
// (number of items in the candidate itemset).
func (c *Counters) ObserveLevel(level int) {
	for len(c.PerLevelCounts) <= level {
		c.PerLevelCounts = append(c.PerLevelCounts, 0)
	}
	c.PerLevelCounts[level]++
}
