// Package pos implements the position universe of the Glushkov-style
// annotated expression tree: the identity, leaf kind, and per-byte match
// predicate of every state-expression and operator-marker leaf, plus the
// follow-set bookkeeping the DFA builder walks during subset construction.
//
// The type layout is grounded on the Thompson-NFA state representation in
// the retrieved coregx/coregex engine (nfa.StateID / nfa.StateKind /
// nfa.State: a compact numeric id, a kind tag, and kind-specific fields
// accessed through typed getters) generalized from NFA states to Glushkov
// positions, and on the leaf constructors in the original engine's
// expr.cc (Literal, CharClass, Dot, BegLine, EndLine, Operator pairs).
package pos

import (
	"github.com/parexlang/parex/errs"
	"github.com/parexlang/parex/internal/conv"
	"github.com/parexlang/parex/internal/posset"
)

// ID identifies a position. Zero is a valid id; InvalidID is the sentinel.
type ID uint32

// InvalidID marks the absence of a position.
const InvalidID ID = 0xFFFFFFFF

// Kind identifies what a position's leaf represents.
type Kind uint8

const (
	// KindLiteral matches exactly one byte value.
	KindLiteral Kind = iota
	// KindCharClass matches any byte in (or, if Negative, outside) a set.
	KindCharClass
	// KindDot matches any byte (subject to the nl-excluded flag).
	KindDot
	// KindBegLine is a zero-width beginning-of-line anchor. It is treated as
	// a nullable pass-through; neighboring bytes are not inspected.
	KindBegLine
	// KindEndLine is a zero-width end-of-line anchor. It is treated as a
	// nullable pass-through; neighboring bytes are not inspected.
	KindEndLine
	// KindEOP is the unique end-of-pattern sentinel; its presence in a
	// position-set marks a DFA state as accepting.
	KindEOP
	// KindOperator is a synchronization marker used to realize
	// intersection/XOR/complement during subset construction. It never
	// matches a byte.
	KindOperator
	// KindEpsilon matches only the empty string; it never matches a byte
	// and contributes to a position-set purely as a nullable pass-through.
	KindEpsilon
)

// String renders a Kind for diagnostics, mirroring nfa.StateKind.String().
func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "Literal"
	case KindCharClass:
		return "CharClass"
	case KindDot:
		return "Dot"
	case KindBegLine:
		return "BegLine"
	case KindEndLine:
		return "EndLine"
	case KindEOP:
		return "EOP"
	case KindOperator:
		return "Operator"
	case KindEpsilon:
		return "Epsilon"
	default:
		return "Unknown"
	}
}

// OperatorTag distinguishes the two kinds of synchronization pair.
type OperatorTag uint8

const (
	// TagIntersection pairs are reconciled by keeping the pair-id only
	// when both halves are jointly reachable.
	TagIntersection OperatorTag = iota
	// TagXOR pairs are reconciled by keeping the pair-id only when
	// exactly one half is reachable.
	TagXOR
)

func (t OperatorTag) String() string {
	if t == TagIntersection {
		return "Intersection"
	}
	return "XOR"
}

// Position is one leaf identity in the annotated expression tree.
type Position struct {
	id   ID
	kind Kind

	literal  byte    // valid for KindLiteral
	class    ByteSet // valid for KindCharClass
	negative bool    // valid for KindCharClass: class holds the complement
	dotNL    bool    // valid for KindDot: true if '.' also matches '\n'

	opTag  OperatorTag // valid for KindOperator
	pairID uint32      // valid for KindOperator: shared by both halves of a pair

	nonGreedy bool // true if this position is a non-greedy twin
	twin      ID   // the other half of a greedy/non-greedy pair, or InvalidID
	original  ID   // for a twin, the position it was cloned from

	follow *posset.Set // successor positions reachable after matching this one
}

// ID returns the position's stable identity.
func (p *Position) ID() ID { return p.id }

// Kind returns the leaf kind.
func (p *Position) Kind() Kind { return p.kind }

// Literal returns the matched byte for a KindLiteral position.
func (p *Position) Literal() byte { return p.literal }

// CharClass returns the byte set and negation flag for a KindCharClass position.
func (p *Position) CharClass() (ByteSet, bool) { return p.class, p.negative }

// OperatorTag returns the pair tag for a KindOperator position.
func (p *Position) OperatorTag() OperatorTag { return p.opTag }

// PairID returns the shared pair identity for a KindOperator position.
func (p *Position) PairID() uint32 { return p.pairID }

// IsNonGreedy reports whether this position is a non-greedy twin.
func (p *Position) IsNonGreedy() bool { return p.nonGreedy }

// Twin returns the other half of this position's greedy/non-greedy pair,
// or InvalidID if it has none.
func (p *Position) Twin() ID { return p.twin }

// Follow returns this position's follow set. Empty (never nil) once the
// universe has been built, even for positions with no successors (EOP).
func (p *Position) Follow() *posset.Set { return p.follow }

// Matches reports whether this position consumes byte b. Operator and EOP
// positions never consume input and always return false; BegLine/EndLine
// are zero-width and also always return false. No caller evaluates them
// against line-boundary context: subset construction bridges over them
// through First/Last sets.
func (p *Position) Matches(b byte) bool {
	switch p.kind {
	case KindLiteral:
		return b == p.literal
	case KindCharClass:
		hit := p.class.Test(b)
		if p.negative {
			return !hit
		}
		return hit
	case KindDot:
		if b == '\n' {
			return p.dotNL
		}
		return true
	default:
		return false
	}
}

// IsStateExpr reports whether this leaf is anything other than an operator
// synchronization marker. It is true for EOP and Epsilon positions as well
// as for leaves that consume input or observe an anchor.
func (p *Position) IsStateExpr() bool {
	return p.kind != KindOperator
}

// Universe owns every position allocated while building one expression
// tree. Positions are frozen (never reassigned an id or reclassified)
// once allocated; only their Follow set mutates, during ast's follow-set
// fill pass (fillTransition).
type Universe struct {
	positions []*Position
	nextPair  uint32
}

// NewUniverse creates an empty position universe.
func NewUniverse() *Universe {
	return &Universe{}
}

// Len returns the number of positions allocated so far.
func (u *Universe) Len() int { return len(u.positions) }

// Get returns the position with the given id.
func (u *Universe) Get(id ID) *Position {
	return u.positions[id]
}

func (u *Universe) alloc(kind Kind) *Position {
	p := &Position{
		id:     ID(conv.IntToUint32(len(u.positions))),
		kind:   kind,
		twin:   InvalidID,
		follow: posset.New(1), // re-sized by FreezeFollowCapacity once universe size is known
	}
	u.positions = append(u.positions, p)
	return p
}

// FreezeFollowCapacity re-sizes every position's follow set to the current
// universe size. Must be called once after the tree (including any twins
// created by non-greedy propagation) has stopped growing, and before
// ast's fillTransition wires any edges: follow sets are sized to the final position
// count so every id in [0, Len()) can be inserted.
func (u *Universe) FreezeFollowCapacity() {
	n := len(u.positions)
	for _, p := range u.positions {
		p.follow = posset.New(n)
	}
}

// NewLiteral allocates a position matching exactly byte b.
func (u *Universe) NewLiteral(b byte) *Position {
	p := u.alloc(KindLiteral)
	p.literal = b
	return p
}

// NewCharClass allocates a position matching the given byte set.
// If negative is true, the position matches every byte NOT in class.
func (u *Universe) NewCharClass(class ByteSet, negative bool) *Position {
	p := u.alloc(KindCharClass)
	p.class = class
	p.negative = negative
	return p
}

// NewCharClassFromLeaves builds a CharClass position out of the union of
// two other leaves, mirroring the original engine's
// `CharClass(StateExpr *e1, StateExpr *e2)` constructor: each leaf
// contributes the bytes it matches (Literal -> one bit, CharClass -> its
// table, Dot -> every bit, BegLine/EndLine -> '\n'), and if the resulting
// occupancy is at least half the alphabet the class is stored complemented
// to keep it compact.
//
// No path in this package's own tree calls this; it exists as a
// parser-facing constructor for a caller building char-class leaves out of
// smaller pieces (e.g. folding two single-byte alternatives into one
// class), and is exercised directly by this package's tests.
func (u *Universe) NewCharClassFromLeaves(e1, e2 *Position) (*Position, error) {
	var table ByteSet
	for _, e := range []*Position{e1, e2} {
		if e == nil {
			continue
		}
		switch e.kind {
		case KindLiteral:
			table.Set(e.literal)
		case KindCharClass:
			for b := 0; b < 256; b++ {
				if e.Matches(byte(b)) {
					table.Set(byte(b))
				}
			}
		case KindDot:
			table.SetAll()
		case KindBegLine, KindEndLine:
			table.Set('\n')
		default:
			return nil, errInvalidLeafForCharClass(e.kind)
		}
	}
	negative := false
	if table.Count() >= 128 {
		table.Flip()
		negative = true
	}
	return u.NewCharClass(table, negative), nil
}

// NewDot allocates a position matching any byte. If nlExcluded is true,
// '.' does not match '\n'.
func (u *Universe) NewDot(nlExcluded bool) *Position {
	p := u.alloc(KindDot)
	p.dotNL = !nlExcluded
	return p
}

// NewBegLine allocates a zero-width beginning-of-line anchor position.
func (u *Universe) NewBegLine() *Position { return u.alloc(KindBegLine) }

// NewEndLine allocates a zero-width end-of-line anchor position.
func (u *Universe) NewEndLine() *Position { return u.alloc(KindEndLine) }

// NewEOP allocates the end-of-pattern sentinel position.
func (u *Universe) NewEOP() *Position { return u.alloc(KindEOP) }

// NewEpsilon allocates a position matching only the empty string.
func (u *Universe) NewEpsilon() *Position { return u.alloc(KindEpsilon) }

// NewOperatorPair allocates two synchronization positions sharing a fresh
// pair id and the given tag, used to desugar Intersection/XOR/Complement.
func (u *Universe) NewOperatorPair(tag OperatorTag) (op1, op2 *Position) {
	pairID := u.nextPair
	u.nextPair++
	op1 = u.alloc(KindOperator)
	op1.opTag = tag
	op1.pairID = pairID
	op2 = u.alloc(KindOperator)
	op2.opTag = tag
	op2.pairID = pairID
	return op1, op2
}

// Twin returns the non-greedy twin of p, allocating one on first request.
// The twin shares p's Matches predicate (same kind/literal/class/dotNL)
// but carries the non-greedy flag, per the priority-tie-break design in
// spec §4.2 "Non-greedification". Twinning is idempotent: repeated calls
// for the same position return the same twin.
func (u *Universe) Twin(id ID) *Position {
	orig := u.Get(id)
	if orig.twin != InvalidID {
		return u.Get(orig.twin)
	}
	twin := u.alloc(orig.kind)
	twin.literal = orig.literal
	twin.class = orig.class
	twin.negative = orig.negative
	twin.dotNL = orig.dotNL
	twin.opTag = orig.opTag
	twin.pairID = orig.pairID
	twin.nonGreedy = true
	twin.original = orig.id
	twin.twin = orig.id
	orig.twin = twin.id
	return twin
}

func errInvalidLeafForCharClass(k Kind) error {
	return &InvalidLeafError{Kind: k}
}

// InvalidLeafError reports that CharClass synthesis was fed a leaf kind it
// cannot fold into a byte table (an operator marker or EOP). It wraps
// errs.ErrInvalidExpressionKind so callers can errors.Is against the
// documented compile-error taxonomy without caring about the offending
// Kind.
type InvalidLeafError struct {
	Kind Kind
}

func (e *InvalidLeafError) Error() string {
	return "pos: invalid leaf kind for CharClass synthesis: " + e.Kind.String()
}

func (e *InvalidLeafError) Unwrap() error {
	return errs.ErrInvalidExpressionKind
}
