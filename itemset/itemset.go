// Package itemset implements the canonical item-set type the mining core
// enumerates over: ascending item-ID iteration, O(1)-amortized contains,
// union, and max-item, plus a stable cache key for memoization.
//
// The set is backed by a github.com/RoaringBitmap/roaring/v2 compressed
// bitmap indexed by dense item ID (see SPEC_FULL.md §3) rather than a
// plain sorted slice, so large vocabularies stay cheap to union; a
// lazily built sorted []uint32 view serves the
// iteration/hashing paths that want a concrete ordering.
package itemset

import (
	"strconv"
	"strings"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
)

// Set is an immutable-after-construction canonical set of non-negative
// item IDs. The zero value is not usable; use Empty or Of.
type Set struct {
	bm *roaring.Bitmap

	once  sync.Once
	items []uint32 // lazily memoized ascending view of bm
}

// Empty returns the empty Set.
func Empty() *Set {
	return &Set{bm: roaring.New()}
}

// Of builds a canonical Set from the given item IDs (order and
// duplicates in the input do not matter).
func Of(items ...int) *Set {
	bm := roaring.New()
	for _, it := range items {
		bm.Add(uint32(it))
	}
	return &Set{bm: bm}
}

// fromBitmap wraps an already-built bitmap without copying.
func fromBitmap(bm *roaring.Bitmap) *Set {
	return &Set{bm: bm}
}

// Len returns the number of items in the set.
func (s *Set) Len() int {
	return int(s.bm.GetCardinality())
}

// Contains reports whether item is a member of s.
func (s *Set) Contains(item int) bool {
	return s.bm.Contains(uint32(item))
}

// Items returns the set's members in ascending canonical order. Callers
// must not mutate the returned slice.
func (s *Set) Items() []uint32 {
	s.once.Do(func() {
		s.items = s.bm.ToArray()
	})
	return s.items
}

// MaxItem returns the largest item ID in s and true, or (0, false) if s
// is empty. Used for canonical-extension checks (spec.md glossary).
func (s *Set) MaxItem() (int, bool) {
	if s.bm.IsEmpty() {
		return 0, false
	}
	return int(s.bm.Maximum()), true
}

// Union returns a new Set containing every item in s or other (or both).
func (s *Set) Union(other *Set) *Set {
	return fromBitmap(roaring.Or(s.bm, other.bm))
}

// WithItem returns a new Set equal to s with item added. If item is
// already a member, the result is equivalent to s.
func (s *Set) WithItem(item int) *Set {
	clone := s.bm.Clone()
	clone.Add(uint32(item))
	return fromBitmap(clone)
}

// Equals reports whether s and other contain exactly the same items.
func (s *Set) Equals(other *Set) bool {
	return s.bm.Equals(other.bm)
}

// Key returns a deterministic string uniquely identifying s's contents,
// suitable as a map key for patterncache.Cache. Two equal sets (by
// Equals) always produce the same Key, and vice versa, regardless of
// construction order — the canonical-ordering invariant spec.md §3
// requires of Itemset.
func (s *Set) Key() string {
	items := s.Items()
	var b strings.Builder
	for i, it := range items {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(uint64(it), 10))
	}
	return b.String()
}

// String renders s as a human-readable "{a,b,c}" set literal, used only
// for diagnostics/logging — never relied on for equality or ordering.
func (s *Set) String() string {
	items := s.Items()
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = strconv.FormatUint(uint64(it), 10)
	}
	return "{" + strings.Join(parts, ",") + "}"
}
