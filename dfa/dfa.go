// Package dfa builds a fully materialized byte-transition table from an
// annotated position-automaton tree (package ast), via eager Glushkov
// subset construction, and offers Hopcroft-style minimization over the
// result.
//
// Unlike the retrieved coregx/coregex engine's lazy DFA (which determinizes
// states on demand from an NFA and caches them behind a mutex), this
// package determinizes the whole automaton up front: the parallel matcher
// in package ssfa needs every row of the table available to every worker
// goroutine without contending on a shared cache.
package dfa

// DFA is a complete, deterministic, total transition table: every state
// has exactly one successor for every possible byte.
type DFA struct {
	trans  [][256]StateID
	accept []bool
	start  StateID
}

// NumStates returns the number of states, including RejectState.
func (d *DFA) NumStates() int { return len(d.trans) }

// Start returns the initial state.
func (d *DFA) Start() StateID { return d.start }

// Step returns the successor of q on byte b.
func (d *DFA) Step(q StateID, b byte) StateID { return d.trans[q][b] }

// IsAccept reports whether q is an accepting state.
func (d *DFA) IsAccept(q StateID) bool { return d.accept[q] }

// IsReject reports whether q is the dead state: once reached, no input can
// ever lead back to an accepting state.
func (d *DFA) IsReject(q StateID) bool { return q == RejectState }

// Row returns the raw 256-wide transition row for q. Exposed for package
// ssfa, which composes shard results by looking up rows directly rather
// than calling Step byte by byte.
func (d *DFA) Row(q StateID) [256]StateID { return d.trans[q] }
