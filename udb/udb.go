// Package udb defines the Database interface the mining core consumes
// (spec.md §6) and ships one reference implementation, MemoryDatabase, an
// in-memory vector of transactions over a fixed Vocabulary.
//
// MemoryDatabase is deliberately the only concrete Database this module
// ships: file-format loaders and any other "parse X into a Database"
// collaborator are out of scope (spec.md §1).
package udb

import (
	"errors"
	"fmt"

	"github.com/probmine/ucim/itemset"
	"github.com/probmine/ucim/tidset"
	"github.com/probmine/ucim/vocab"
)

// ErrDuplicateItem indicates the same item ID appears twice within one
// Transaction (spec.md §3's invariant: "each item appears at most once").
var ErrDuplicateItem = errors.New("udb: item appears twice in one transaction")

// ErrItemOutOfRange indicates an item ID outside [0,V).
var ErrItemOutOfRange = errors.New("udb: item id out of vocabulary range")

// Transaction holds the (item-id, probability) pairs of one row of an
// uncertain transactional database (spec.md §3), keyed by item id; the
// order in which the pairs were supplied is not retained.
type Transaction struct {
	probs map[int]float64
}

// NewTransaction validates and builds a Transaction from (item, prob)
// pairs. Probabilities must be in (0,1]; items below MinProb are
// dropped by the tidset layer, not here — a Transaction records exactly
// what was given to it.
func NewTransaction(vocabSize int, items []int, probs []float64) (Transaction, error) {
	if len(items) != len(probs) {
		return Transaction{}, fmt.Errorf("udb: items/probs length mismatch: %d vs %d", len(items), len(probs))
	}
	m := make(map[int]float64, len(items))
	for i, it := range items {
		if it < 0 || it >= vocabSize {
			return Transaction{}, fmt.Errorf("%w: %d", ErrItemOutOfRange, it)
		}
		if _, dup := m[it]; dup {
			return Transaction{}, fmt.Errorf("%w: %d", ErrDuplicateItem, it)
		}
		if probs[i] <= 0 || probs[i] > 1 {
			return Transaction{}, fmt.Errorf("%w: item %d prob %v", tidset.ErrInvalidProbability, it, probs[i])
		}
		m[it] = probs[i]
	}
	return Transaction{probs: m}, nil
}

// Prob returns the recorded probability of item in this transaction, or
// 0 if the item is absent (spec.md §3).
func (t Transaction) Prob(item int) float64 {
	return t.probs[item]
}

// Database is the sole interface the mining core imports (spec.md §6).
type Database interface {
	// Size returns N, the number of transactions.
	Size() int
	// Vocabulary returns the fixed item vocabulary.
	Vocabulary() *vocab.Vocabulary
	// Tidset returns the sparse set of transactions where every item in
	// x has a recorded probability, with per-transaction probability
	// equal to the product of the items' probabilities. The empty
	// itemset returns a Tidset covering every transaction with
	// probability 1 (legal, unused by the core).
	Tidset(x *itemset.Set) (*tidset.Tidset, error)
}

// MemoryDatabase is a fixed in-memory vector of Transactions plus a
// Vocabulary (spec.md §3). Tidset(x) performs a linear scan, which is
// the right tradeoff for the sizes this module is meant to run at — a
// caller with a true index should supply its own Database, an external
// collaborator (spec.md §1).
type MemoryDatabase struct {
	v   *vocab.Vocabulary
	txs []Transaction
}

// NewMemoryDatabase wraps v and txs into a Database. txs is retained, not
// copied; callers must not mutate it afterward.
func NewMemoryDatabase(v *vocab.Vocabulary, txs []Transaction) *MemoryDatabase {
	return &MemoryDatabase{v: v, txs: txs}
}

// Size returns N.
func (d *MemoryDatabase) Size() int { return len(d.txs) }

// Vocabulary returns the fixed item vocabulary.
func (d *MemoryDatabase) Vocabulary() *vocab.Vocabulary { return d.v }

// Tidset scans every transaction and keeps those where every item in x
// has a non-zero probability, with per-transaction probability equal to
// the product of x's items' probabilities.
func (d *MemoryDatabase) Tidset(x *itemset.Set) (*tidset.Tidset, error) {
	if x.Len() == 0 {
		return tidset.Full(len(d.txs)), nil
	}
	items := x.Items()
	pairs := make([]tidset.Pair, 0, len(d.txs))
	for tid, tx := range d.txs {
		prob := 1.0
		ok := true
		for _, it := range items {
			p := tx.Prob(int(it))
			if p <= 0 {
				ok = false
				break
			}
			prob *= p
		}
		if ok {
			pairs = append(pairs, tidset.Pair{Tid: tid, Prob: prob})
		}
	}
	return tidset.New(len(d.txs), pairs)
}
