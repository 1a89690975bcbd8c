// Package ast implements the annotated expression tree: the tagged node
// hierarchy over the position universe (package pos), the bottom-up
// nullable/min/max/first/last annotation pass, the follow-set fill pass,
// and the desugaring of the extended operators (intersection, XOR,
// complement) into synchronization-marker pairs threaded through Concat
// and Union nodes.
//
// This is a direct, idiomatic-Go restatement of the annotation algorithm
// in the original engine's expr.cc (FillPosition / FillTransition per node
// type), organized the way the retrieved coregx/coregex compiler
// organizes its own Thompson-NFA construction: a Builder-style entry
// point (Compile/CompileRegexp in nfa/compile.go) driving a recursive
// per-node-kind dispatch, with a typed tag instead of a virtual method
// table (nfa.StateKind), matching the "dispatch by tag, not by vtable"
// guidance in the design notes.
package ast

import (
	"github.com/parexlang/parex/errs"
	"github.com/parexlang/parex/internal/posset"
	"github.com/parexlang/parex/pos"
)

// Infinity represents an unbounded max_length.
const Infinity = ^uint64(0)

// Tag identifies a node's operator or leaf kind.
type Tag uint8

const (
	TagLiteral Tag = iota
	TagCharClass
	TagDot
	TagBegLine
	TagEndLine
	TagEOP
	TagEpsilon
	TagConcat
	TagUnion
	TagQmark
	TagStar
	TagPlus
	TagIntersection
	TagXOR
	TagComplement
	// tagOperatorLeaf wraps a pos.Position of pos.KindOperator inserted by
	// Intersection/XOR/Complement desugaring. It is not constructed
	// directly by callers.
	tagOperatorLeaf
)

func (t Tag) String() string {
	switch t {
	case TagLiteral:
		return "Literal"
	case TagCharClass:
		return "CharClass"
	case TagDot:
		return "Dot"
	case TagBegLine:
		return "BegLine"
	case TagEndLine:
		return "EndLine"
	case TagEOP:
		return "EOP"
	case TagEpsilon:
		return "Epsilon"
	case TagConcat:
		return "Concat"
	case TagUnion:
		return "Union"
	case TagQmark:
		return "Qmark"
	case TagStar:
		return "Star"
	case TagPlus:
		return "Plus"
	case TagIntersection:
		return "Intersection"
	case TagXOR:
		return "XOR"
	case TagComplement:
		return "Complement"
	case tagOperatorLeaf:
		return "Operator"
	default:
		return "Unknown"
	}
}

// Node is one node of the expression tree. Unary nodes use Left only;
// binary nodes use both; leaves use neither. Every node carries the
// shared annotation header (Nullable/Min/Max/First/Last) described in
// spec §3 "Expression node" — filled in by Build/BuildReverse, not by the
// constructors below.
type Node struct {
	Tag         Tag
	Left, Right *Node
	Leaf        *pos.Position // valid for leaf tags (including tagOperatorLeaf)

	NonGreedy bool // Qmark/Star built in non-greedy mode
	Loop      bool // Complement: include a self-starting Sigma* prefix

	Nullable bool
	Min, Max uint64
	First    *posset.Set
	Last     *posset.Set

	// master/slave are populated by desugarComplement and consumed by
	// fillTransition's post-recursion follow copy (spec §4.2 "Complement:
	// after recursing, copy follow(master) -> follow(slave)").
	master, slave *pos.Position
}

// Literal builds a leaf matching exactly byte b.
func Literal(u *pos.Universe, b byte) *Node {
	return &Node{Tag: TagLiteral, Leaf: u.NewLiteral(b)}
}

// CharClass builds a leaf matching the given byte set.
func CharClass(u *pos.Universe, set pos.ByteSet, negative bool) *Node {
	return &Node{Tag: TagCharClass, Leaf: u.NewCharClass(set, negative)}
}

// Dot builds a leaf matching any byte; nlExcluded suppresses matching '\n'.
func Dot(u *pos.Universe, nlExcluded bool) *Node {
	return &Node{Tag: TagDot, Leaf: u.NewDot(nlExcluded)}
}

// BegLine builds a beginning-of-line/text anchor leaf.
func BegLine(u *pos.Universe) *Node {
	return &Node{Tag: TagBegLine, Leaf: u.NewBegLine()}
}

// EndLine builds an end-of-line/text anchor leaf.
func EndLine(u *pos.Universe) *Node {
	return &Node{Tag: TagEndLine, Leaf: u.NewEndLine()}
}

// Epsilon builds a leaf matching only the empty string.
func Epsilon(u *pos.Universe) *Node {
	return &Node{Tag: TagEpsilon, Leaf: u.NewEpsilon()}
}

// eop builds the unique boundary sentinel leaf: appended after root by
// Build, prepended before root by BuildReverse.
func eop(u *pos.Universe) *Node {
	return &Node{Tag: TagEOP, Leaf: u.NewEOP()}
}

// Concat builds the sequence l then r.
func Concat(l, r *Node) *Node { return &Node{Tag: TagConcat, Left: l, Right: r} }

// Union builds the alternation l|r.
func Union(l, r *Node) *Node { return &Node{Tag: TagUnion, Left: l, Right: r} }

// Qmark builds l? (nonGreedy selects the lazy variant).
func Qmark(l *Node, nonGreedy bool) *Node {
	return &Node{Tag: TagQmark, Left: l, NonGreedy: nonGreedy}
}

// Star builds l* (nonGreedy selects the lazy variant).
func Star(l *Node, nonGreedy bool) *Node {
	return &Node{Tag: TagStar, Left: l, NonGreedy: nonGreedy}
}

// Plus builds l+.
func Plus(l *Node) *Node { return &Node{Tag: TagPlus, Left: l} }

// Intersection builds the language intersection of l and r.
func Intersection(l, r *Node) *Node { return &Node{Tag: TagIntersection, Left: l, Right: r} }

// XOR builds the symmetric difference of l and r.
func XOR(l, r *Node) *Node { return &Node{Tag: TagXOR, Left: l, Right: r} }

// Complement builds the language complement of l. expr.cc's
// Complement::FillPosition always prefixes the desugared expression with
// Concat(Star(Dot), slave): without that Sigma*-consuming branch, any byte
// not matched by some leaf of l has no transition at all and the automaton
// falls into the dead state instead of accepting, which is wrong for a
// total complement over Sigma*.
//
// loop should be true for a standalone complement, reproducing that
// unconditional prefix. loop=false omits it, which is only correct when l
// is composed inside a larger expression that already supplies its own
// Sigma*-consuming branch for the bytes l doesn't care about (for example,
// a Complement nested as one operand of an Intersection whose other
// operand already bounds every byte) — this is the "anchored vs
// unanchored complement" distinction spec §9's second Open Question asks
// to be surfaced explicitly, so it is a constructor parameter rather than
// an inferred flag.
func Complement(l *Node, loop bool) *Node {
	return &Node{Tag: TagComplement, Left: l, Loop: loop}
}

// Tree is a fully annotated expression tree, ready for DFA subset
// construction. It owns the position universe the tree's leaves and
// desugared operator markers were allocated from.
type Tree struct {
	Root     *Node // the user's expression, Concat'd with the implicit boundary sentinel
	Universe *pos.Universe
	EOP      *pos.Position // the unique boundary sentinel leaf (end-of-pattern for Build, start-of-pattern for BuildReverse)

	// Reverse reports whether follow sets were wired in the reversed
	// direction (via BuildReverse). package dfa uses this to pick the
	// correct start set: a forward tree starts subset construction from
	// Root.First; a reverse tree starts from Root.Last (the positions
	// that could be last consumed going forward, now the first thing
	// consumed running backward). Both directions accept on reaching
	// EOP, since BuildReverse places the sentinel at the opposite end of
	// root so it is always the last thing the traversal can reach (spec
	// §4.3 "Reverse-DFA construction").
	Reverse bool
}

// Build appends the implicit EOP leaf, annotates the tree bottom-up, and
// wires follow sets in the forward direction. BuildReverse is the
// counterpart for the reversed-automaton wiring used to build a reverse DFA
// (spec §4.3 "Reverse-DFA construction").
//
// Build takes ownership of root's positions: root must have been built
// entirely through this package's constructors against u, and must not be
// passed to both Build and BuildReverse (each call grows the universe with
// fresh twins and operator pairs).
func Build(root *Node, u *pos.Universe) (*Tree, error) {
	return build(root, u, false)
}

// BuildReverse mirrors Build but wires follow sets in the reversed
// direction, for constructing the reverse DFA (spec §4.3).
//
// The boundary sentinel is prepended instead of appended: a forward tree
// places it after root so reaching it means "the input is exactly
// exhausted here", and package dfa starts from Root.First and watches for
// the sentinel while consuming forward. A reverse tree needs the same
// property at the opposite end — reaching the sentinel should mean "we've
// backed up all the way to what would be the start of a forward match" —
// so it goes at the front, and package dfa starts from Root.Last instead.
// Both directions then share the identical "does the frontier contain the
// sentinel's id" accept check.
func BuildReverse(root *Node, u *pos.Universe) (*Tree, error) {
	return build(root, u, true)
}

func build(root *Node, u *pos.Universe, reverse bool) (*Tree, error) {
	if !hasStateExprLeaf(root) {
		return nil, &errs.CompileError{Stage: "annotate", Err: errs.ErrEmptyPositionUniverse}
	}

	sentinel := eop(u)
	var full *Node
	if reverse {
		full = Concat(sentinel, root)
	} else {
		full = Concat(root, sentinel)
	}
	annotate(full, u)
	u.FreezeFollowCapacity()
	fillTransition(full, u, reverse)

	return &Tree{Root: full, Universe: u, EOP: sentinel.Leaf, Reverse: reverse}, nil
}

// hasStateExprLeaf reports whether the tree contains at least one leaf
// that consumes input or observes an anchor (spec's "state-expression"),
// as opposed to being built entirely from Epsilon and operator markers.
func hasStateExprLeaf(n *Node) bool {
	if n == nil {
		return false
	}
	switch n.Tag {
	case TagLiteral, TagCharClass, TagDot, TagBegLine, TagEndLine:
		return true
	}
	return hasStateExprLeaf(n.Left) || hasStateExprLeaf(n.Right)
}

func saturatingAdd(a, b uint64) uint64 {
	if a == Infinity || b == Infinity {
		return Infinity
	}
	sum := a + b
	if sum < a { // overflow
		return Infinity
	}
	return sum
}

func minU64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

func maxU64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

func connect(u *pos.Universe, src, dst *posset.Set, reverse bool) {
	if reverse {
		dst.Iter(func(d uint32) {
			p := u.Get(pos.ID(d))
			p.Follow().Union(src)
		})
	} else {
		src.Iter(func(s uint32) {
			p := u.Get(pos.ID(s))
			p.Follow().Union(dst)
		})
	}
}
