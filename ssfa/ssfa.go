// Package ssfa implements the Simultaneous-Start Finite Automaton matcher:
// a parallel full-match driver that shards the input across worker
// goroutines instead of walking the DFA one byte at a time on a single
// core.
//
// Each worker treats its shard as a total function over DFA states
// (assuming every possible starting state, not just the one the automaton
// would actually be in) and reports the resulting per-state transition
// vector. A short sequential reconciliation pass then composes the K
// vectors starting from the automaton's real initial state. This trades
// K-fold redundant work (each worker explores all states, most of which
// the real run would never visit) for the ability to start all K workers
// at once with no dependency on each other.
//
// The worker fan-out is grounded on the retrieved sneller repo's
// sorting.threadPool: a fixed pool of goroutines synchronized with a
// sync.WaitGroup, no context.Context, errors collected under a mutex. The
// two-phase algorithm itself is grounded on the original engine's SSFA
// class (ssfa.h), reworked from an NFA-subset-based scheme onto the
// pre-built dfa.DFA this module already materializes.
package ssfa

import (
	"sync"
	"time"

	"github.com/parexlang/parex/bytesniff"
	"github.com/parexlang/parex/dfa"
)

// Result is the three-way outcome of a parallel match: unlike a plain
// bool, a cancelled or deadline-exceeded match must not be reported as
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

// chunkSize bounds how many bytes a worker processes between cooperative
// cancellation/deadline checks. Small enough to cancel promptly, large
// enough that the check isn't the bottleneck.
const chunkSize = 4096

// Matcher runs the two-phase SSFA algorithm over a fixed DFA.
type Matcher struct {
	d *dfa.DFA
	// absorbing[q] is true when q is a sink: every byte maps q back to
	// itself. Workers short-circuit a state's simulation the moment it
	// lands on a sink, since nothing past that point can change the
	// outcome for that state.
	absorbing []bool
}

// New precomputes the sink table for d and returns a Matcher over it.
func New(d *dfa.DFA) *Matcher {
	n := d.NumStates()
	absorbing := make([]bool, n)
	for q := 0; q < n; q++ {
		row := d.Row(dfa.StateID(q))
		sink := true
		for _, next := range row {
			if next != dfa.StateID(q) {
				sink = false
				break
			}
		}
		absorbing[q] = sink
	}
	return &Matcher{d: d, absorbing: absorbing}
}

// effectiveK clamps the requested worker count to 1..min(len, hardware
// parallelism), and applies the K=2 default when k is 0.
func effectiveK(k, inputLen int) int {
	if k == 0 {
		k = 2
	}
	if hw := numCPU(); k > hw {
		k = hw
	}
	if inputLen == 0 {
		return 1
	}
	if k > inputLen {
		k = inputLen
	}
	if k < 1 {
		k = 1
	}
	return k
}

// shardBounds returns the half-open [start, end) byte range for shard k
// out of numShards over an input of length n, distributing the remainder
// across the leading shards.
func shardBounds(k, numShards, n int) (int, int) {
	base := n / numShards
	rem := n % numShards
	start := k*base + min(k, rem)
	end := start + base
	if k < rem {
		end++
	}
	return start, end
}

// deadlineExceeded reports whether the caller's deadline, if any, has
// passed.
func deadlineExceeded(deadline time.Time) bool {
	return !deadline.IsZero() && time.Now().After(deadline)
}

// cancelled reports whether the caller's cancel channel, if any, has
// fired.
func cancelled(cancel <-chan struct{}) bool {
	if cancel == nil {
		return false
	}
	select {
	case <-cancel:
		return true
	default:
		return false
	}
}

// psi computes shard k's transition vector: psi[s] is the state reached
// after starting from state s and consuming input[start:end]. It returns
// nil if a cancellation or deadline signal fires mid-shard.
func (m *Matcher) psi(input []byte, start, end int, opts *MatchOptions) []dfa.StateID {
	n := m.d.NumStates()
	psi := make([]dfa.StateID, n)
	for s := 0; s < n; s++ {
		psi[s] = dfa.StateID(s)
	}

	rejectU32 := uint32(dfa.RejectState)
	for i := start; i < end; i++ {
		if (i-start)%chunkSize == 0 {
			if cancelled(opts.Cancel) || deadlineExceeded(opts.Deadline) {
				return nil
			}
			if i > start && bytesniff.AllEqual(stateIDsAsUint32(psi), rejectU32) {
				// Every entry has already reached the reject sentinel,
				// which self-loops on every byte: nothing left in the
				// shard can change psi again.
				break
			}
		}
		b := input[i]
		for s := 0; s < n; s++ {
			cur := psi[s]
			if m.absorbing[cur] {
				continue
			}
			psi[s] = m.d.Row(cur)[b]
		}
	}
	return psi
}

// stateIDsAsUint32 copies a []dfa.StateID into a []uint32 for
// bytesniff.AllEqual, which operates on the underlying integer
// representation and has no reason to depend on package dfa.
func stateIDsAsUint32(states []dfa.StateID) []uint32 {
	out := make([]uint32, len(states))
	for i, s := range states {
		out[i] = uint32(s)
	}
	return out
}

// Match runs the SSFA algorithm over input and reports Accept, Reject, or
// Cancelled.
func (m *Matcher) Match(input []byte, opts MatchOptions) (Result, error) {
	if err := opts.Validate(); err != nil {
		return Reject, err
	}

	k := effectiveK(opts.K, len(input))

	// Phase 1 (parallel): each worker computes its shard's total
	// transition function independently, with no shared mutable state
	// beyond the read-only DFA and the per-shard result slot it owns.
	psis := make([][]dfa.StateID, k)
	var wg sync.WaitGroup
	wg.Add(k)
	for shard := 0; shard < k; shard++ {
		start, end := shardBounds(shard, k, len(input))
		go func(shard, start, end int) {
			defer wg.Done()
			psis[shard] = m.psi(input, start, end, &opts)
		}(shard, start, end)
	}
	wg.Wait()

	for _, p := range psis {
		if p == nil {
			return Cancelled, nil
		}
	}

	if cancelled(opts.Cancel) || deadlineExceeded(opts.Deadline) {
		return Cancelled, nil
	}

	// Phase 2 (sequential reconciliation): compose the shard functions
	// left to right, starting from the automaton's real initial state.
	q := m.d.Start()
	for _, p := range psis {
		q = p[q]
	}

	if m.d.IsAccept(q) {
		return Accept, nil
	}
	return Reject, nil
}
