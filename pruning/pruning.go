// Package pruning defines the P1-P7 correctness-preserving shortcuts the
// closure engine may apply (spec.md §4.6), as an immutable bit-flag
// Profile. Disabling a flag replaces its shortcut with the unconditional
// work it would otherwise skip; every subset of flags must yield the
// same closed top-K result (spec.md §8, I6).
package pruning

// Flag identifies one individually toggleable pruning rule.
type Flag int

const (
	// P1a is Phase 2's early termination once the top-K is full and the
	// current singleton's support drops below minsup.
	P1a Flag = iota
	// P1b is check_closure_singleton's early termination once a later
	// singleton's support drops below the one being checked.
	P1b
	// P2a is Phase 3's per-candidate skip (DFS/BFS) once s_X < theta.
	P2a
	// P2b is Phase 3's whole-loop early termination (best-first only)
	// once the frontier's best candidate fails theta.
	P2b
	// P2c is Phase 3's extension filter: only push extensions with
	// support >= theta onto the frontier.
	P2c
	// P3 is the item-support cutoff in checkClosureAndGenerateExtensions.
	P3
	// P4 is the subset upper-bound tightening via cached pair supports.
	P4
	// P5 is the upper-bound filter deciding shouldExtend/needClosureCheck.
	P5
	// P6 is the tidset-size cutoff before invoking the calculator.
	P6
	// P7 is the tidset-based closure shortcut avoiding a calculator call.
	P7

	numFlags = int(P7) + 1
)

// Profile is an immutable set of enabled pruning flags for one mining run.
type Profile struct {
	enabled [numFlags]bool
}

// AllEnabled returns a Profile with every pruning rule P1-P7 turned on —
// the production default.
func AllEnabled() Profile {
	p := Profile{}
	for i := range p.enabled {
		p.enabled[i] = true
	}
	return p
}

// AllDisabled returns a Profile with every pruning rule turned off,
// forcing the unconditional-work path everywhere — the baseline used by
// ablation studies and by the pruning-equivalence property tests
// (spec.md §8, I6; SPEC_FULL.md "Supplemented feature").
func AllDisabled() Profile {
	return Profile{}
}

// New builds a Profile with exactly the given flags enabled.
func New(flags ...Flag) Profile {
	p := Profile{}
	for _, f := range flags {
		p.enabled[f] = true
	}
	return p
}

// With returns a copy of p with flag set to on.
func (p Profile) With(flag Flag) Profile {
	out := p
	out.enabled[flag] = true
	return out
}

// Without returns a copy of p with flag set to off.
func (p Profile) Without(flag Flag) Profile {
	out := p
	out.enabled[flag] = false
	return out
}

// Enabled reports whether flag is active in p.
func (p Profile) Enabled(flag Flag) bool {
	return p.enabled[flag]
}
