// Package miner implements the MiningPipeline (C8) and MinerFactory
// (C10): the fixed three-phase template (spec.md §4.3) that mines the
// top-K frequent closed itemsets of an uncertain transactional database.
//
// Configuration follows the teacher's functional-option-over-a-struct
// idiom (core.GraphOption / prim_kruskal.Option): NewPipeline applies
// Options to a Config, validating eagerly so InvalidParameter errors
// surface at construction, never mid-run (spec.md §7).
package miner

import (
	"errors"
	"fmt"
	"runtime"

	"go.uber.org/zap"

	"github.com/probmine/ucim/frontier"
	"github.com/probmine/ucim/pruning"
	"github.com/probmine/ucim/support"
)

// ErrInvalidK indicates K < 1.
var ErrInvalidK = errors.New("miner: K must be >= 1")

// ErrNilDatabase indicates a nil Database was supplied.
var ErrNilDatabase = errors.New("miner: database is nil")

// ErrEmptyDatabase indicates a Database with zero transactions.
var ErrEmptyDatabase = errors.New("miner: database has zero transactions")

// Config holds the validated parameters of one mining run.
type Config struct {
	tau         float64
	k           int
	strategy    frontier.Name
	calc        support.Calculator
	profile     pruning.Profile
	parallelism int
	logger      *zap.Logger
}

// Option configures a Config before construction.
type Option func(*Config) error

// WithStrategy selects the Phase 3 frontier strategy. Defaults to
// frontier.BestFirst.
func WithStrategy(name frontier.Name) Option {
	return func(c *Config) error {
		c.strategy = name
		return nil
	}
}

// WithCalculator overrides the default DirectConvolutionCalculator
// (spec.md §6: "the factory wires DirectConvolutionCalculator(τ) by
// default").
func WithCalculator(calc support.Calculator) Option {
	return func(c *Config) error {
		c.calc = calc
		return nil
	}
}

// WithProfile sets the pruning.Profile. Defaults to pruning.AllEnabled().
func WithProfile(p pruning.Profile) Option {
	return func(c *Config) error {
		c.profile = p
		return nil
	}
}

// WithParallelism overrides Phase 1's worker count. Defaults to
// runtime.GOMAXPROCS(0). n <= 0 is treated as 1.
func WithParallelism(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			n = 1
		}
		c.parallelism = n
		return nil
	}
}

// WithLogger sets the structured logger used for diagnostic output
// (SPEC_FULL.md §7.2). Defaults to zap.NewNop().
func WithLogger(l *zap.Logger) Option {
	return func(c *Config) error {
		if l != nil {
			c.logger = l
		}
		return nil
	}
}

func newConfig(tau float64, k int, opts []Option) (Config, error) {
	if k < 1 {
		return Config{}, fmt.Errorf("%w: %d", ErrInvalidK, k)
	}

	calc, err := support.NewDirectConvolution(tau)
	if err != nil {
		return Config{}, err
	}

	c := Config{
		tau:         tau,
		k:           k,
		strategy:    frontier.BestFirst,
		calc:        calc,
		profile:     pruning.AllEnabled(),
		parallelism: runtime.GOMAXPROCS(0),
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		if err := opt(&c); err != nil {
			return Config{}, err
		}
	}

	return c, nil
}
