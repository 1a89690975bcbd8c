package ssfa

import "github.com/parexlang/parex/dfa"

// SimpleMatcher is a supplemental, less aggressively optimized sibling of
// Matcher, grounded on the original engine's plain ParallelDFA class
// (paralleldfa.h) rather than its SSFA class: where Matcher stores each
// shard's per-state transition function as a dense []StateID indexed
// directly by state, SimpleMatcher stores the identical function as a
// map[StateID]StateID, exactly mirroring ParallelDFA's
// std::map<int,int>-typed parallel transition table. The two matchers
// compute the same function; each shard's map holds an entry for every
// DFA state, and reconciliation does one map lookup per shard where
// Matcher indexes a slice.
//
// SimpleMatcher does not support the absorbing-sink short-circuit or
// cooperative cancellation that Matcher does; it is a minimal reference
// variant, not the optimized default.
type SimpleMatcher struct {
	d *dfa.DFA
}

// NewSimpleMatcher returns a SimpleMatcher over d.
func NewSimpleMatcher(d *dfa.DFA) *SimpleMatcher {
	return &SimpleMatcher{d: d}
}

// psiMap computes shard [start,end)'s transition function for every DFA
// state, keyed by map instead of by slice index.
func (m *SimpleMatcher) psiMap(input []byte, start, end int) map[dfa.StateID]dfa.StateID {
	n := m.d.NumStates()
	psi := make(map[dfa.StateID]dfa.StateID, n)
	for s := 0; s < n; s++ {
		cur := dfa.StateID(s)
		for i := start; i < end; i++ {
			cur = m.d.Row(cur)[input[i]]
		}
		psi[dfa.StateID(s)] = cur
	}
	return psi
}

// Match runs the same two-phase algorithm as Matcher.Match but composes
// map-based per-shard transition tables instead of dense vectors.
func (m *SimpleMatcher) Match(input []byte, k int) (Result, error) {
	opts := MatchOptions{K: k}
	if err := opts.Validate(); err != nil {
		return Reject, err
	}
	k = effectiveK(k, len(input))

	type shardResult struct {
		idx int
		psi map[dfa.StateID]dfa.StateID
	}
	results := make([]map[dfa.StateID]dfa.StateID, k)
	done := make(chan shardResult, k)
	for shard := 0; shard < k; shard++ {
		start, end := shardBounds(shard, k, len(input))
		go func(shard, start, end int) {
			done <- shardResult{idx: shard, psi: m.psiMap(input, start, end)}
		}(shard, start, end)
	}
	for i := 0; i < k; i++ {
		r := <-done
		results[r.idx] = r.psi
	}

	q := m.d.Start()
	for _, psi := range results {
		q = psi[q]
	}

	if m.d.IsAccept(q) {
		return Accept, nil
	}
	return Reject, nil
}
