package pos

import (
	"errors"
	"testing"

	"github.com/parexlang/parex/errs"
)

func TestLiteralMatches(t *testing.T) {
	u := NewUniverse()
	p := u.NewLiteral('a')
	if !p.Matches('a') {
		t.Error("literal 'a' should match 'a'")
	}
	if p.Matches('b') {
		t.Error("literal 'a' should not match 'b'")
	}
	if p.Kind() != KindLiteral {
		t.Errorf("expected KindLiteral, got %v", p.Kind())
	}
}

func TestCharClassMatches(t *testing.T) {
	u := NewUniverse()
	var set ByteSet
	set.Set('0')
	set.Set('5')
	set.Set('9')
	p := u.NewCharClass(set, false)
	if !p.Matches('0') || !p.Matches('5') || !p.Matches('9') {
		t.Error("charclass should match its members")
	}
	if p.Matches('a') {
		t.Error("charclass should not match non-members")
	}
}

func TestCharClassNegative(t *testing.T) {
	u := NewUniverse()
	var set ByteSet
	set.Set('a')
	p := u.NewCharClass(set, true)
	if p.Matches('a') {
		t.Error("negated class should not match its listed member")
	}
	if !p.Matches('b') {
		t.Error("negated class should match everything else")
	}
}

func TestDotExcludesNewlineWhenConfigured(t *testing.T) {
	u := NewUniverse()
	dot := u.NewDot(true)
	if dot.Matches('\n') {
		t.Error("nl-excluded dot should not match '\\n'")
	}
	if !dot.Matches('x') {
		t.Error("dot should match ordinary bytes")
	}

	dotAny := u.NewDot(false)
	if !dotAny.Matches('\n') {
		t.Error("default dot should match '\\n'")
	}
}

func TestOperatorPairSharesID(t *testing.T) {
	u := NewUniverse()
	op1, op2 := u.NewOperatorPair(TagIntersection)
	if op1.PairID() != op2.PairID() {
		t.Error("operator pair should share a pair id")
	}
	if op1.OperatorTag() != TagIntersection || op2.OperatorTag() != TagIntersection {
		t.Error("both halves should carry the requested tag")
	}
	if op1.Matches('a') || op2.Matches('a') {
		t.Error("operator positions never consume input")
	}
	if op1.IsStateExpr() || op2.IsStateExpr() {
		t.Error("operator positions are not state-expressions")
	}
}

func TestTwinIsIdempotentAndSharesPredicate(t *testing.T) {
	u := NewUniverse()
	lit := u.NewLiteral('x')
	t1 := u.Twin(lit.ID())
	t2 := u.Twin(lit.ID())
	if t1.ID() != t2.ID() {
		t.Error("Twin should be idempotent")
	}
	if !t1.IsNonGreedy() {
		t.Error("twin should be marked non-greedy")
	}
	if !t1.Matches('x') || t1.Matches('y') {
		t.Error("twin should share the original's match predicate")
	}
	if lit.Twin() != t1.ID() {
		t.Error("original should point back at its twin")
	}
}

func TestCharClassFromLeavesUnionsAndFlips(t *testing.T) {
	u := NewUniverse()
	dot := u.NewDot(false)
	lit := u.NewLiteral('z')
	cc, err := u.NewCharClassFromLeaves(dot, lit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Dot alone covers all 256 bytes, so occupancy triggers the flip to
	// negative storage, but the observable behavior stays "matches everything".
	for b := 0; b < 256; b++ {
		if !cc.Matches(byte(b)) {
			t.Fatalf("byte %d should match dot-derived class", b)
		}
	}
}

func TestCharClassFromLeavesRejectsOperator(t *testing.T) {
	u := NewUniverse()
	op1, _ := u.NewOperatorPair(TagXOR)
	_, err := u.NewCharClassFromLeaves(op1, nil)
	if err == nil {
		t.Fatal("expected error synthesizing CharClass from an operator leaf")
	}
	if !errors.Is(err, errs.ErrInvalidExpressionKind) {
		t.Errorf("expected an error wrapping errs.ErrInvalidExpressionKind, got %v", err)
	}
}

func TestFreezeFollowCapacityAllowsFullRangeInserts(t *testing.T) {
	u := NewUniverse()
	var ids []ID
	for i := 0; i < 10; i++ {
		ids = append(ids, u.NewLiteral(byte(i)).ID())
	}
	u.FreezeFollowCapacity()
	for _, id := range ids {
		u.Get(id).Follow().Add(uint32(id))
	}
	for _, id := range ids {
		if !u.Get(id).Follow().Contains(uint32(id)) {
			t.Errorf("position %d should self-follow after Add", id)
		}
	}
}
