// Package posset provides a sparse set of position identifiers.
//
// Positions are the leaves of an annotated expression tree (see package
// ast): every state-expression leaf and every operator marker is assigned
// a stable, small integer identity when the tree is built. The DFA builder
// manipulates sets of these identities constantly (first/last/follow sets,
// the position-set that labels a subset-construction state), so a set type
// tuned for a known, bounded universe of small integers is worth having
// instead of reaching for map[int]struct{} everywhere.
//
// Set carries both a dense slice (for fast, allocation-free iteration and
// for producing the canonical sorted key used to intern DFA states) and a
// sparse index (for O(1) membership tests), the same layout used by
// internal/sparse.SparseSet in the NFA-simulation code this package is
// adapted from.
package posset

import "sort"

// Set is a set of position ids, initially sized for [0, capacity) and grown
// by Add when a larger id arrives, supporting O(1) insertion, membership
// testing, and removal, plus O(n log n) canonical ordering.
type Set struct {
	sparse []uint32 // position id -> index into dense, valid only if Contains
	dense  []uint32 // the actual members, in insertion order except where Remove moved the last member into a gap
	size   uint32
}

// New creates a Set over the universe [0, capacity).
func New(capacity int) *Set {
	return &Set{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Add inserts id into the set. A no-op if id is already present.
//
// The sparse index grows on demand when id falls outside it: package ast
// builds a node's First/Last sets against the universe size at the moment
// that node is annotated, but Intersection/XOR/Complement desugaring (and
// Dot-in-Complement) allocate new positions during annotation, so an
// earlier-annotated sibling's set can later be Union'd with one that
// carries a larger id than it was originally sized for.
func (s *Set) Add(id uint32) {
	if int(id) >= len(s.sparse) {
		grown := make([]uint32, id+1)
		copy(grown, s.sparse)
		s.sparse = grown
	}
	if s.Contains(id) {
		return
	}
	s.dense = append(s.dense, id)
	s.sparse[id] = s.size
	s.size++
}

// AddAll inserts every id in ids.
func (s *Set) AddAll(ids ...uint32) {
	for _, id := range ids {
		s.Add(id)
	}
}

// Contains reports whether id is a member of the set.
func (s *Set) Contains(id uint32) bool {
	if int(id) >= len(s.sparse) {
		return false
	}
	idx := s.sparse[id]
	return idx < s.size && s.dense[idx] == id
}

// Remove deletes id from the set. A no-op if id is not present.
func (s *Set) Remove(id uint32) {
	if !s.Contains(id) {
		return
	}
	idx := s.sparse[id]
	last := s.dense[s.size-1]
	s.dense[idx] = last
	s.sparse[last] = idx
	s.size--
	s.dense = s.dense[:s.size]
}

// Len returns the number of members.
func (s *Set) Len() int {
	return int(s.size)
}

// IsEmpty reports whether the set has no members.
func (s *Set) IsEmpty() bool {
	return s.size == 0
}

// Clear removes every member in O(1).
func (s *Set) Clear() {
	s.size = 0
	s.dense = s.dense[:0]
}

// Values returns the members in unspecified order. The returned slice
// aliases internal storage and is only valid until the next mutation.
func (s *Set) Values() []uint32 {
	return s.dense[:s.size]
}

// Sorted returns the members sorted ascending. This is the canonical key
// used to intern DFA states from position sets: two sets with the same
// sorted member sequence are the same subset-construction state.
func (s *Set) Sorted() []uint32 {
	out := make([]uint32, s.size)
	copy(out, s.dense[:s.size])
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Union adds every member of other into s.
func (s *Set) Union(other *Set) {
	for _, v := range other.Values() {
		s.Add(v)
	}
}

// Iter calls f for every member. Iteration order is unspecified.
func (s *Set) Iter(f func(uint32)) {
	for i := uint32(0); i < s.size; i++ {
		f(s.dense[i])
	}
}

// Clone returns an independent copy of s.
func (s *Set) Clone() *Set {
	c := &Set{
		sparse: make([]uint32, len(s.sparse)),
		dense:  make([]uint32, len(s.dense)),
		size:   s.size,
	}
	copy(c.sparse, s.sparse)
	copy(c.dense, s.dense)
	return c
}
