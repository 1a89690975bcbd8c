// Package parex provides a parallel, position-automaton-based full-match
// engine for the extended regular-expression algebra (literals, character
// classes, concatenation, union, star/plus/qmark, intersection, XOR, and
// complement).
//
// A surface-syntax parser is an external collaborator, not part of this
// package: callers hand Compile an *ast.Node tree already built with
// package ast's constructors, the same handoff the engine this module was
// distilled from describes ("the parser hands ownership of the tree to
// the core; the core does not re-enter the parser").
//
// Basic usage:
//
//	u := pos.NewUniverse()
//	root := ast.Concat(ast.Literal(u, 'h'), ast.Literal(u, 'i'))
//	re, err := parex.Compile(root, u, parex.DefaultCompileOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := re.Match([]byte("hi"), parex.DefaultMatchOptions())
package parex

import (
	"time"

	"github.com/parexlang/parex/ast"
	"github.com/parexlang/parex/dfa"
	"github.com/parexlang/parex/errs"
	"github.com/parexlang/parex/litscan"
	"github.com/parexlang/parex/match"
	"github.com/parexlang/parex/pos"
	"github.com/parexlang/parex/ssfa"
)

// Result is the three-way outcome of a Match call: unlike a plain bool, a
// cancelled or deadline-exceeded parallel match must not be reported as
// either Accept or Reject.
type Result uint8

const (
	Reject Result = iota
	Accept
	Cancelled
)

func (r Result) String() string {
	switch r {
	case Accept:
		return "accept"
	case Reject:
		return "reject"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Regex is a compiled expression tree: a materialized DFA plus the
// derived matchers and prefilter built over it. A Regex is safe for
// concurrent use by multiple goroutines; Match holds no mutable state.
type Regex struct {
	dfa       *dfa.DFA
	ssfa      *ssfa.Matcher
	prefilter *litscan.Prefilter
	hasFilter bool
}

// Compile builds a Regex from root, using u as the position universe root
// was built against.
func Compile(root *ast.Node, u *pos.Universe, opts CompileOptions) (*Regex, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	var tree *ast.Tree
	var err error
	if opts.Reverse {
		tree, err = ast.BuildReverse(root, u)
	} else {
		tree, err = ast.Build(root, u)
	}
	if err != nil {
		return nil, err
	}

	dfaCfg := dfa.DefaultConfig()
	if opts.MaxDFAStates != 0 {
		dfaCfg = dfaCfg.WithMaxStates(opts.MaxDFAStates)
	}
	d, err := dfa.NewBuilder(tree, dfaCfg).Build()
	if err != nil {
		return nil, err
	}
	if opts.Minimize {
		d = d.Minimize()
	}

	// The mandatory-literal prefilter scans for root's literal runs in
	// forward orientation; a reverse-compiled Regex matches against
	// reversed input, where that literal would appear reversed too, so
	// the prefilter is skipped rather than built against the wrong
	// byte order.
	var pf *litscan.Prefilter
	var ok bool
	if !opts.Reverse {
		pf, ok = litscan.Build(root)
	}

	return &Regex{
		dfa:       d,
		ssfa:      ssfa.New(d),
		prefilter: pf,
		hasFilter: ok,
	}, nil
}

// MustCompile is like Compile but panics on error, for patterns known to
// be valid at init time.
func MustCompile(root *ast.Node, u *pos.Universe, opts CompileOptions) *Regex {
	re, err := Compile(root, u, opts)
	if err != nil {
		panic("parex: Compile: " + err.Error())
	}
	return re
}

// Match reports whether input is a full match of re's expression.
func (re *Regex) Match(input []byte, opts MatchOptions) (Result, error) {
	if err := opts.Validate(); err != nil {
		return Reject, err
	}

	if re.hasFilter && !re.prefilter.MayMatch(input) {
		return Reject, nil
	}

	if !opts.Parallel {
		// match.Run is a plain byte loop with no cooperative check between
		// bytes, so the sequential driver can only honor a cancel/deadline
		// that has already fired by the time Match is called.
		if err := cancellation(opts); err != nil {
			return Cancelled, err
		}
		if match.Run(re.dfa, input) {
			return Accept, nil
		}
		return Reject, nil
	}

	r, err := re.ssfa.Match(input, ssfa.MatchOptions{K: opts.K, Cancel: opts.Cancel, Deadline: opts.Deadline})
	if err != nil {
		return Reject, err
	}
	switch r {
	case ssfa.Accept:
		return Accept, nil
	case ssfa.Cancelled:
		err := cancellation(opts)
		if err == nil {
			// ssfa.Match observed one of the signals, and both stay fired
			// once fired, so cancellation is not expected to return nil
			// here; if it does, report a deadline exceedance rather than
			// surface an unexplained Cancelled.
			err = &errs.MatchError{Err: errs.ErrDeadlineExceeded}
		}
		return Cancelled, err
	default:
		return Reject, nil
	}
}

// cancellation reports a *errs.MatchError wrapping errs.ErrCancelled or
// errs.ErrDeadlineExceeded if opts' cancel channel or deadline has already
// fired (ErrCancelled takes priority when both have), or nil otherwise.
func cancellation(opts MatchOptions) error {
	if opts.Cancel != nil {
		select {
		case <-opts.Cancel:
			return &errs.MatchError{Err: errs.ErrCancelled}
		default:
		}
	}
	if !opts.Deadline.IsZero() && time.Now().After(opts.Deadline) {
		return &errs.MatchError{Err: errs.ErrDeadlineExceeded}
	}
	return nil
}

// NumStates returns the number of states in re's compiled DFA, including
// the reject sentinel.
func (re *Regex) NumStates() int { return re.dfa.NumStates() }
