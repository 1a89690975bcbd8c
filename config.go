package parex

import (
	"time"

	"github.com/parexlang/parex/errs"
)

// CompileOptions configures how a Regex is built from an expression tree.
// The surface-syntax parser is an external collaborator: callers hand
// Compile an already-parsed *ast.Node, the same handoff spec.md describes
// ("the parser hands ownership of the tree to the core").
type CompileOptions struct {
	// MaxDFAStates bounds eager subset construction, mirroring
	// dfa.Config.MaxStates. Zero selects dfa.DefaultConfig's bound.
	MaxDFAStates uint32

	// Reverse builds the DFA over the reversed expression tree instead of
	// the forward one, for callers that need a reverse-anchored search
	// engine (ssfa.h's ParallelDFA/SSFA both accept either orientation).
	Reverse bool

	// Minimize runs Hopcroft-style minimization on the constructed DFA.
	Minimize bool
}

// DefaultCompileOptions returns forward, unminimized compilation with
// dfa.DefaultConfig's state bound.
func DefaultCompileOptions() CompileOptions {
	return CompileOptions{}
}

// Validate reports whether the options are usable.
func (o *CompileOptions) Validate() error {
	return nil
}

// MatchOptions configures a single Match call.
type MatchOptions struct {
	// Parallel selects the SSFA sharded matcher over the sequential
	// reference driver. K is the shard count passed to ssfa.MatchOptions
	// when Parallel is true; it is ignored otherwise.
	Parallel bool
	K        int

	// Cancel and Deadline are forwarded to ssfa.MatchOptions when Parallel
	// is true, and checked once before running the sequential driver
	// otherwise. A cancelled or deadline-exceeded match reports
	// parex.Cancelled with an error wrapping the specific sentinel
	// (errs.ErrCancelled or errs.ErrDeadlineExceeded), never Accept or
	// Reject.
	Cancel   <-chan struct{}
	Deadline time.Time
}

// DefaultMatchOptions runs the sequential reference driver.
func DefaultMatchOptions() MatchOptions {
	return MatchOptions{}
}

// Validate reports whether the options are usable.
func (o *MatchOptions) Validate() error {
	if o.K < 0 {
		return &errs.ConfigError{Field: "K", Message: "must be >= 0"}
	}
	return nil
}
