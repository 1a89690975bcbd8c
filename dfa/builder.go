package dfa

import (
	"encoding/binary"

	"github.com/parexlang/parex/ast"
	"github.com/parexlang/parex/errs"
	"github.com/parexlang/parex/internal/conv"
	"github.com/parexlang/parex/internal/posset"
	"github.com/parexlang/parex/pos"
)

// Builder performs eager subset construction over an annotated position
// tree, the way the retrieved lazy DFA's Builder wraps an NFA
// (NewBuilder/Build), except every reachable state is determinized
// immediately instead of lazily on first visit.
type Builder struct {
	tree *ast.Tree
	cfg  Config
}

// NewBuilder creates a Builder for tree.
func NewBuilder(tree *ast.Tree, cfg Config) *Builder {
	return &Builder{tree: tree, cfg: cfg}
}

// Build runs subset construction to completion and returns the resulting
// DFA, or an error if the configured state bound is exceeded.
func (b *Builder) Build() (*DFA, error) {
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}

	u := b.tree.Universe
	n := u.Len()

	// ast.Build appends the boundary sentinel after root and starts
	// subset construction from Root.First; ast.BuildReverse prepends it
	// before root and starts from Root.Last instead (spec §4.3's
	// reverse-DFA construction). Either way the sentinel sits at the far
	// end of the traversal, so both directions share the identical
	// "does the frontier contain the sentinel" accept check.
	eopID := uint32(b.tree.EOP.ID())
	accepts := func(set *posset.Set) bool {
		return set.Contains(eopID)
	}
	initial := b.tree.Root.First
	if b.tree.Reverse {
		initial = b.tree.Root.Last
	}

	type record struct {
		trans  [256]StateID
		accept bool
	}

	states := make([]record, 1, 64) // states[0] = RejectState, self-looping
	for c := range states[0].trans {
		states[0].trans[c] = RejectState
	}
	keyToID := make(map[string]StateID, 64)

	startSet := initial.Clone()
	if err := reconcile(startSet, u); err != nil {
		return nil, err
	}
	startID := StateID(conv.IntToUint32(len(states)))
	states = append(states, record{accept: accepts(startSet)})
	keyToID[stateKey(startSet.Sorted())] = startID

	type pending struct {
		id  StateID
		set *posset.Set
	}
	queue := []pending{{startID, startSet}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for c := 0; c < 256; c++ {
			nextSet := move(cur.set, u, byte(c), n)
			if nextSet.IsEmpty() {
				states[cur.id].trans[c] = RejectState
				continue
			}
			if err := reconcile(nextSet, u); err != nil {
				return nil, err
			}
			if nextSet.IsEmpty() {
				states[cur.id].trans[c] = RejectState
				continue
			}

			key := stateKey(nextSet.Sorted())
			id, ok := keyToID[key]
			if !ok {
				if conv.IntToUint32(len(states)) >= b.cfg.MaxStates {
					return nil, &errs.CompileError{Stage: "subset", Err: errs.ErrComplementTooLarge}
				}
				id = StateID(conv.IntToUint32(len(states)))
				states = append(states, record{accept: accepts(nextSet)})
				keyToID[key] = id
				queue = append(queue, pending{id, nextSet})
			}
			states[cur.id].trans[c] = id
		}
	}

	d := &DFA{
		trans:  make([][256]StateID, len(states)),
		accept: make([]bool, len(states)),
		start:  startID,
	}
	for i, r := range states {
		d.trans[i] = r.trans
		d.accept[i] = r.accept
	}
	return d, nil
}

// move computes the raw successor position set of s on byte b: the union
// of Follow(p) for every p in s that consumes b. Non-consuming leaves
// (operator markers, EOP, Epsilon, BegLine/EndLine) never match a byte, so
// they never directly contribute an edge here — EOP, Epsilon and the
// anchors were already folded into their neighbors' First/Last sets during
// annotation, and operator markers are resolved by reconcile.
func move(s *posset.Set, u *pos.Universe, b byte, capacity int) *posset.Set {
	next := posset.New(capacity)
	s.Iter(func(id uint32) {
		p := u.Get(pos.ID(id))
		if p.Matches(b) {
			next.Union(p.Follow())
		}
	})
	return next
}

// reconcile removes operator-pair positions whose halves are jointly
// inconsistent with the pair's tag, realizing intersection and XOR during
// subset construction the way expr.cc's DFA construction filters operator
// states: an Intersection pair only survives when both halves reached the
// same state; an XOR pair only survives when exactly one half did.
//
// A marker's Last (see ast.syncMarkerLast) is restricted to the marker
// itself, so whatever a synchronized branch connects to next — EOP
// included — hangs off the marker's own Follow set rather than off the
// branch's real trailing positions. That means surviving a pair is not
// enough to let matching continue past it: reconcile must also perform the
// closure a byte-consuming move() transition never does for these
// non-consuming markers, unioning each surviving marker's Follow into s
// before dropping the raw marker ids. That closure can itself hand s a
// fresh operator marker (nested synchronization, or the same marker's own
// pair partner arriving via a different route), so groups are recomputed
// and the pass repeats until no operator markers remain.
//
// Snapshotting Values() before mutating s is required: Set.Remove
// compacts the dense slice in place, so removing while iterating an
// aliased view of it would skip or double-visit members.
func reconcile(s *posset.Set, u *pos.Universe) error {
	for {
		ids := append([]uint32(nil), s.Values()...)
		groups := make(map[uint32][]uint32)
		for _, id := range ids {
			p := u.Get(pos.ID(id))
			if p.Kind() == pos.KindOperator {
				groups[p.PairID()] = append(groups[p.PairID()], id)
			}
		}
		if len(groups) == 0 {
			return nil
		}
		for _, members := range groups {
			tag := u.Get(pos.ID(members[0])).OperatorTag()
			var keep bool
			switch tag {
			case pos.TagIntersection:
				keep = len(members) == 2
			case pos.TagXOR:
				keep = len(members) == 1
			default:
				return errs.ErrUnknownPairTag
			}
			if keep {
				for _, id := range members {
					s.Union(u.Get(pos.ID(id)).Follow())
				}
			}
			for _, id := range members {
				s.Remove(id)
			}
		}
	}
}

// stateKey builds an exact canonical key from a sorted position-id slice.
// This is grounded on the retrieved lazy DFA's ComputeStateKey (sort then
// hash for interning), but packs the ids into a byte string directly
// rather than hashing them: subset construction here runs once at compile
// time rather than per-search, so paying for an exact key instead of a
// collision-prone FNV hash costs nothing that matters.
func stateKey(ids []uint32) string {
	buf := make([]byte, len(ids)*4)
	for i, id := range ids {
		binary.LittleEndian.PutUint32(buf[i*4:], id)
	}
	return string(buf)
}
