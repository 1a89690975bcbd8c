package ast

import (
	"github.com/parexlang/parex/internal/posset"
	"github.com/parexlang/parex/pos"
)

// leafFirstLast returns the singleton {p} used as both First and Last for
// a state-expression leaf.
func leafFirstLast(id pos.ID, universeSize int) *posset.Set {
	s := posset.New(universeSize)
	s.Add(uint32(id))
	return s
}

// syncMarkerLast builds the Last set for a desugared
// Intersection/XOR/Complement node from its synchronization marker
// positions alone, discarding whatever real branch positions the generic
// Concat annotation rule would otherwise have folded in.
//
// Each branch is wired as Concat(branch, marker) with marker nullable, so
// the ordinary Concat rule ("if the right side is nullable, fold its
// sibling's Last in too") makes the branch's own trailing positions part
// of that Concat's Last — correct for a genuinely optional continuation
// like Qmark or Star, but wrong here: it would let the wrapping node's
// Last (and whatever it gets connected to next, EOP included) become
// reachable straight from a real matched byte, bypassing the marker
// entirely and making the pair reconciliation in dfa.Builder's reconcile
// pointless. Restricting Last to just the marker(s) means whatever
// follows this node can only be reached once dfa.Builder's reconcile has
// confirmed the pair, since only the surviving marker's own Follow set —
// unioned in by reconcile, not by a byte-consuming transition — carries
// that connection forward.
func syncMarkerLast(u *pos.Universe, markers ...*pos.Position) *posset.Set {
	s := posset.New(u.Len())
	for _, m := range markers {
		s.Add(uint32(m.ID()))
	}
	return s
}

// annotate performs the bottom-up nullable/min/max/first/last pass of
// spec §4.2, dispatching by Tag the way nfa.Compiler.compileRegexp
// dispatches by syntax.Op, and desugaring Intersection/XOR/Complement into
// Concat/Union structure exactly as expr.cc's FillPosition methods do (by
// mutating Left/Right in place before annotating the rewritten subtree).
//
// u is threaded through explicitly rather than recovered from a leaf,
// since Intersection/XOR/Complement desugaring must allocate fresh
// operator positions and Star's non-greedy path must allocate twins
// before the universe's final size (and therefore every Follow set's
// capacity) is known.
func annotate(n *Node, u *pos.Universe) {
	switch n.Tag {
	case TagLiteral, TagCharClass, TagDot:
		n.Nullable = false
		n.Min, n.Max = 1, 1
		n.First = leafFirstLast(n.Leaf.ID(), u.Len())
		n.Last = leafFirstLast(n.Leaf.ID(), u.Len())

	case TagBegLine, TagEndLine:
		n.Nullable = true
		n.Min, n.Max = 0, 1
		n.First = leafFirstLast(n.Leaf.ID(), u.Len())
		n.Last = leafFirstLast(n.Leaf.ID(), u.Len())

	case TagEpsilon, TagEOP, tagOperatorLeaf:
		n.Nullable = true
		n.Min, n.Max = 0, 0
		n.First = leafFirstLast(n.Leaf.ID(), u.Len())
		n.Last = leafFirstLast(n.Leaf.ID(), u.Len())

	case TagConcat:
		annotate(n.Left, u)
		annotate(n.Right, u)
		l, r := n.Left, n.Right
		n.Nullable = l.Nullable && r.Nullable
		n.Min = saturatingAdd(l.Min, r.Min)
		n.Max = saturatingAdd(l.Max, r.Max)

		n.First = l.First.Clone()
		if l.Nullable {
			n.First.Union(r.First)
		}
		n.Last = r.Last.Clone()
		if r.Nullable {
			n.Last.Union(l.Last)
		}

	case TagUnion:
		annotate(n.Left, u)
		annotate(n.Right, u)
		l, r := n.Left, n.Right
		n.Nullable = l.Nullable || r.Nullable
		n.Min = minU64(l.Min, r.Min)
		n.Max = maxU64(l.Max, r.Max)
		n.First = l.First.Clone()
		n.First.Union(r.First)
		n.Last = l.Last.Clone()
		n.Last.Union(r.Last)

	case TagQmark:
		annotate(n.Left, u)
		l := n.Left
		n.Nullable = true
		n.Min = 0
		n.Max = l.Min // preserves the source formula flagged in spec §9's first Open Question
		n.First = l.First.Clone()
		n.Last = l.Last.Clone()
		if n.NonGreedy {
			nonGreedify(n, u)
		}

	case TagStar:
		annotate(n.Left, u)
		l := n.Left
		n.Nullable = true
		n.Min = 0
		n.Max = Infinity
		n.First = l.First.Clone()
		n.Last = l.Last.Clone()
		if n.NonGreedy {
			nonGreedify(n, u)
		}

	case TagPlus:
		annotate(n.Left, u)
		l := n.Left
		n.Nullable = l.Nullable
		n.Min = l.Min
		n.Max = Infinity
		n.First = l.First.Clone()
		n.Last = l.Last.Clone()

	case TagIntersection:
		desugarIntersection(n, u)
		l, r := n.Left, n.Right
		annotate(l, u)
		annotate(r, u)
		n.Nullable = l.Nullable && r.Nullable
		n.Max = minU64(l.Max, r.Max)
		n.Min = maxU64(l.Min, r.Min)
		n.First = l.First.Clone()
		n.First.Union(r.First)
		n.Last = syncMarkerLast(u, l.Right.Leaf, r.Right.Leaf)

	case TagXOR:
		desugarXOR(n, u)
		l, r := n.Left, n.Right
		annotate(l, u)
		annotate(r, u)
		n.Nullable = l.Nullable != r.Nullable
		n.Max = Infinity
		n.Min = minU64(l.Min, r.Min)
		n.First = l.First.Clone()
		n.First.Union(r.First)
		n.Last = syncMarkerLast(u, l.Right.Leaf, r.Right.Leaf)

	case TagComplement:
		// orig is captured before desugaring and shared by reference with
		// the rewritten tree below, so annotating the rewrite also
		// annotates orig in place. Reading orig.Nullable rather than the
		// rewrite's own Nullable matters when Loop is set: the injected
		// Star(Dot) branch makes the rewrite unconditionally nullable,
		// which would otherwise mask whether the original operand is.
		orig := n.Left
		desugarComplement(n, u)
		l := n.Left
		annotate(l, u)
		n.Max = Infinity
		if orig.Nullable {
			n.Min = Infinity
		} else {
			n.Min = 0
		}
		n.Nullable = !orig.Nullable
		n.First = l.First.Clone()
		if n.Loop {
			n.Last = syncMarkerLast(u, n.master, n.slave)
		} else {
			n.Last = syncMarkerLast(u, n.master)
		}

	default:
		panic("ast: annotate: unhandled tag " + n.Tag.String())
	}
}

// desugarIntersection rewrites Intersection(L,R) into a pair of Concats
// threaded with a shared Intersection-tagged operator pair, per expr.cc's
// Intersection::FillPosition:
//
//	Operator::NewPair(&op1_, &op2_, kIntersection);
//	lhs_ = new Concat(lhs_, op1_);
//	rhs_ = new Concat(rhs_, op2_);
func desugarIntersection(n *Node, u *pos.Universe) {
	op1, op2 := u.NewOperatorPair(pos.TagIntersection)
	n.Left = Concat(n.Left, operatorLeaf(op1))
	n.Right = Concat(n.Right, operatorLeaf(op2))
}

// desugarXOR mirrors desugarIntersection with a XOR-tagged pair.
func desugarXOR(n *Node, u *pos.Universe) {
	op1, op2 := u.NewOperatorPair(pos.TagXOR)
	n.Left = Concat(n.Left, operatorLeaf(op1))
	n.Right = Concat(n.Right, operatorLeaf(op2))
}

// desugarComplement rewrites Complement(L) into
//
//	Union(Concat(Star(Dot), slave), Concat(L, master))   -- if Loop
//	Concat(L, master)                                     -- otherwise
//
// with (master, slave) a fresh XOR-tagged pair, per expr.cc's
// Complement::FillPosition. n.master/n.slave are recorded for the
// follow-copy step performed in fillTransition.
func desugarComplement(n *Node, u *pos.Universe) {
	l := n.Left
	master, slave := u.NewOperatorPair(pos.TagXOR)
	n.master, n.slave = master, slave

	lhs := Concat(l, operatorLeaf(master))
	if n.Loop {
		lhs = Union(Concat(Star(Dot(u, false), false), operatorLeaf(slave)), lhs)
	}
	n.Left = lhs
}

func operatorLeaf(p *pos.Position) *Node {
	return &Node{Tag: tagOperatorLeaf, Leaf: p}
}

// fillTransition wires follow-set edges top-down (spec §4.2's second
// pass), dispatching by Tag with the exact recursion order of expr.cc's
// FillTransition methods: a Concat/Star/Plus node connects its own
// last-to-first edge (or first-to-last, when reverse) *before* recursing,
// so that by the time a Complement node copies master's follow into
// slave's, whatever the enclosing context already connected into master
// is visible.
func fillTransition(n *Node, u *pos.Universe, reverse bool) {
	switch n.Tag {
	case TagLiteral, TagCharClass, TagDot, TagBegLine, TagEndLine, TagEpsilon, TagEOP, tagOperatorLeaf:
		// leaves have no children to recurse into; their follow sets are
		// populated entirely by their neighbors' connect calls.

	case TagConcat:
		connect(u, n.Left.Last, n.Right.First, reverse)
		fillTransition(n.Right, u, reverse)
		fillTransition(n.Left, u, reverse)

	case TagUnion, TagIntersection, TagXOR:
		fillTransition(n.Right, u, reverse)
		fillTransition(n.Left, u, reverse)

	case TagQmark:
		fillTransition(n.Left, u, reverse)

	case TagStar, TagPlus:
		connect(u, n.Left.Last, n.Left.First, reverse)
		fillTransition(n.Left, u, reverse)

	case TagComplement:
		fillTransition(n.Left, u, reverse)
		n.slave.Follow().Union(n.master.Follow())

	default:
		panic("ast: fillTransition: unhandled tag " + n.Tag.String())
	}
}

// nonGreedify implements spec §4.2's non-greedification: for every
// position in the node's Last set, ensure a non-greedy twin exists.
//
// Because captures/submatch extraction are an explicit non-goal (spec §1),
// greedy and non-greedy variants of the same subexpression accept exactly
// the same language under full-match semantics (property 8 in spec §8
// only requires accept-equivalence, never differing spans). This
// implementation therefore takes the "priority integer" alternative spec
// §9's first Open Question calls "a cleaner realisation": twins are
// allocated (so the position universe carries the same {original, twin}
// structure spec §3 describes, and Position.IsNonGreedy()/Twin() are live,
// inspectable data), but Last is left pointing at the *original* positions
// so follow-set wiring, and therefore the accepted language, is completely
// unaffected. See DESIGN.md for the reasoning.
func nonGreedify(n *Node, u *pos.Universe) {
	n.Last.Iter(func(id uint32) {
		u.Twin(pos.ID(id))
	})
}
