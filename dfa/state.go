package dfa

// StateID identifies a state in a built DFA's dense transition table.
// Grounded on the retrieved lazy DFA's StateID/StateKey split (nfa state
// sets interned to a compact numeric id), generalized to an eager,
// fully-materialized table instead of a cache populated on demand.
type StateID uint32

// RejectState is always id 0: a real, total state whose every transition
// loops back to itself and which never accepts. Every DFA built by this
// package contains it, so match loops never need to special-case "no
// transition" — every byte from every state has a defined successor.
const RejectState StateID = 0
