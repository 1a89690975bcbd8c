// Package errs collects the error taxonomy shared by the compile and match
// paths: sentinel errors for the conditions callers are expected to check
// for, plus wrapping structs that attach context to a failure (the
// compile stage that failed, or the config field that was rejected).
package errs

import (
	"errors"
	"fmt"
)

// Construction-time sentinel errors. These identify the condition; callers
// that need to distinguish them use errors.Is against the wrapping
// *CompileError.
var (
	// ErrInvalidExpressionKind is returned when a builder is fed a node
	// that is not a state-expression where one is required (for example,
	// CharClass synthesis fed a Concat or Union node).
	ErrInvalidExpressionKind = errors.New("regex/errs: invalid expression kind")

	// ErrComplementTooLarge is returned when eager subset construction hits
	// the configured MaxDFAStates bound before completing. Complement is
	// named because it is the operator most likely to trigger the blowup
	// (its Loop branch adds a Sigma* alternative alongside the operand,
	// roughly doubling the live position count per nesting level), but the
	// bound applies to subset construction generally, not just to trees
	// containing a Complement node.
	ErrComplementTooLarge = errors.New("regex/errs: DFA state count exceeds configured bound")

	// ErrEmptyPositionUniverse is returned when an expression tree contains
	// no state-expression leaves at all (so no position can ever be live).
	ErrEmptyPositionUniverse = errors.New("regex/errs: expression has no state-expression leaves")

	// ErrUnknownPairTag is returned when subset construction encounters an
	// operator position whose pair tag is neither Intersection nor XOR.
	// This indicates a builder invariant was violated; it is never expected
	// from well-formed input and is treated as fatal.
	ErrUnknownPairTag = errors.New("regex/errs: unknown operator pair tag")
)

// CompileError wraps a construction-time failure with the stage that
// failed and the underlying sentinel error.
type CompileError struct {
	// Stage names the phase that failed: "annotate" or "subset".
	Stage string
	Err   error
}

func (e *CompileError) Error() string {
	if e.Stage != "" {
		return fmt.Sprintf("regex: compile failed in %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("regex: compile failed: %v", e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// MatchError wraps a runtime match failure. Match failures are always
// cooperative (cancellation or a deadline), never a symptom of malformed
// input, since the byte alphabet is total (every byte has a defined
// transition, even if it lands on the reject sentinel).
type MatchError struct {
	Err error
}

func (e *MatchError) Error() string {
	return fmt.Sprintf("regex: match failed: %v", e.Err)
}

func (e *MatchError) Unwrap() error { return e.Err }

var (
	// ErrCancelled is returned when a match is abandoned because its
	// cancel flag was observed set between bytes.
	ErrCancelled = errors.New("regex/errs: match cancelled")

	// ErrDeadlineExceeded is returned when a match is abandoned because
	// its deadline passed before completion.
	ErrDeadlineExceeded = errors.New("regex/errs: match deadline exceeded")
)

// ConfigError represents an invalid configuration field, mirroring the
// Config/Validate convention used throughout this module.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "regex: invalid config: " + e.Field + ": " + e.Message
}
