package ast

import (
	"errors"
	"testing"

	"github.com/parexlang/parex/errs"
	"github.com/parexlang/parex/pos"
)

func TestBuildConcatAnnotation(t *testing.T) {
	u := pos.NewUniverse()
	a := &Node{Tag: TagLiteral, Leaf: u.NewLiteral('a')}
	b := &Node{Tag: TagLiteral, Leaf: u.NewLiteral('b')}
	root := Concat(a, b)

	tree, err := Build(root, u)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Root.Nullable {
		t.Error("\"ab\" concatenated with EOP should not be nullable")
	}
	if tree.Root.Min != 2 {
		t.Errorf("expected min length 2, got %d", tree.Root.Min)
	}
	// First of the full tree should be exactly {a}.
	if tree.Root.First.Len() != 1 || !tree.Root.First.Contains(uint32(a.Leaf.ID())) {
		t.Error("First(ab$) should be {a}")
	}
}

func TestBuildUnionAnnotation(t *testing.T) {
	u := pos.NewUniverse()
	a := &Node{Tag: TagLiteral, Leaf: u.NewLiteral('a')}
	b := &Node{Tag: TagLiteral, Leaf: u.NewLiteral('b')}
	root := Union(a, b)

	tree, err := Build(root, u)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// First(a|b) should contain both a and b.
	if !tree.Root.First.Contains(uint32(a.Leaf.ID())) {
		t.Error("First(a|b$) should contain a")
	}
	if !containsUnionBranch(tree, a, b) {
		t.Error("First(a|b$) should contain b via the Union's first-set union")
	}
}

func containsUnionBranch(tree *Tree, a, b *Node) bool {
	// tree.Root is Concat(Union(a,b), eop); Union node is tree.Root.Left.
	union := tree.Root.Left
	return union.First.Contains(uint32(a.Leaf.ID())) && union.First.Contains(uint32(b.Leaf.ID()))
}

func TestBuildStarIsNullable(t *testing.T) {
	u := pos.NewUniverse()
	a := &Node{Tag: TagLiteral, Leaf: u.NewLiteral('a')}
	root := Star(a, false)

	tree, err := Build(root, u)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	star := tree.Root.Left
	if !star.Nullable {
		t.Error("a* should be nullable")
	}
	if star.Max != Infinity {
		t.Error("a* should have unbounded max length")
	}
	// Star wires its own last-to-first loop: a's follow should contain a.
	if !a.Leaf.Follow().Contains(uint32(a.Leaf.ID())) {
		t.Error("a* should wire a self-loop into a's follow set")
	}
}

func TestNonGreedyTwinDoesNotChangeLast(t *testing.T) {
	u := pos.NewUniverse()
	a := &Node{Tag: TagLiteral, Leaf: u.NewLiteral('a')}
	root := Star(a, true) // a*?

	beforeLen := u.Len()
	tree, err := Build(root, u)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Len() <= beforeLen {
		t.Error("non-greedy Star should allocate a twin position")
	}
	star := tree.Root.Left
	// Last must still reference the original position, not the twin, so
	// follow-set wiring (and hence the accepted language) is unaffected.
	if !star.Last.Contains(uint32(a.Leaf.ID())) {
		t.Error("Last should still reference the original position after non-greedification")
	}
	if star.Last.Len() != 1 {
		t.Error("Last should not have grown to include the twin")
	}
}

func TestQmarkMaxLength(t *testing.T) {
	u := pos.NewUniverse()
	a := &Node{Tag: TagLiteral, Leaf: u.NewLiteral('a')}
	root := Qmark(a, false)

	tree, err := Build(root, u)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	qmark := tree.Root.Left
	if qmark.Min != 0 {
		t.Error("a? should have min length 0")
	}
	if qmark.Max != 1 {
		t.Errorf("a? should have max length 1, got %d", qmark.Max)
	}
}

func TestIntersectionDesugarsIntoOperatorPair(t *testing.T) {
	u := pos.NewUniverse()
	a := &Node{Tag: TagLiteral, Leaf: u.NewLiteral('a')}
	b := &Node{Tag: TagLiteral, Leaf: u.NewLiteral('b')}
	root := Intersection(a, b)

	beforeLen := u.Len()
	tree, err := Build(root, u)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Two fresh operator positions plus the implicit EOP leaf should have
	// been allocated.
	if u.Len() != beforeLen+3 {
		t.Errorf("expected universe to grow by 3 (2 operators + EOP), grew by %d", u.Len()-beforeLen)
	}
	inter := tree.Root.Left
	if inter.Tag != TagIntersection {
		t.Fatalf("expected root's left child to still be tagged Intersection, got %v", inter.Tag)
	}
	// After desugaring, Left/Right are Concat(orig, operatorLeaf).
	if inter.Left.Tag != TagConcat || inter.Right.Tag != TagConcat {
		t.Error("Intersection should desugar into Concat(orig, operator) on each side")
	}
	if inter.Left.Right.Leaf.Kind() != pos.KindOperator || inter.Left.Right.Leaf.OperatorTag() != pos.TagIntersection {
		t.Error("appended leaf should be an Intersection-tagged operator marker")
	}
	if inter.Left.Right.Leaf.PairID() != inter.Right.Right.Leaf.PairID() {
		t.Error("both halves of the desugared pair should share a pair id")
	}
}

func TestXORDesugarsIntoOperatorPair(t *testing.T) {
	u := pos.NewUniverse()
	a := &Node{Tag: TagLiteral, Leaf: u.NewLiteral('a')}
	b := &Node{Tag: TagLiteral, Leaf: u.NewLiteral('b')}
	root := XOR(a, b)

	tree, err := Build(root, u)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	xor := tree.Root.Left
	if xor.Left.Right.Leaf.OperatorTag() != pos.TagXOR {
		t.Error("appended leaf should be an XOR-tagged operator marker")
	}
}

func TestComplementWithoutLoopDesugarsToConcat(t *testing.T) {
	u := pos.NewUniverse()
	a := &Node{Tag: TagLiteral, Leaf: u.NewLiteral('a')}
	root := Complement(a, false)

	tree, err := Build(root, u)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	comp := tree.Root.Left
	if comp.Left.Tag != TagConcat {
		t.Error("non-looping Complement should desugar Left into Concat(orig, master)")
	}
	if comp.master == nil || comp.slave == nil {
		t.Fatal("Complement should record master/slave operator positions")
	}
	// fillTransition must have copied master's follow into slave's.
	if comp.slave.Follow().Len() != comp.master.Follow().Len() {
		t.Error("slave's follow set should mirror master's after fillTransition")
	}
}

func TestComplementWithLoopPrefixesSigmaStar(t *testing.T) {
	u := pos.NewUniverse()
	a := &Node{Tag: TagLiteral, Leaf: u.NewLiteral('a')}
	root := Complement(a, true)

	tree, err := Build(root, u)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	comp := tree.Root.Left
	if comp.Left.Tag != TagUnion {
		t.Error("looping Complement should desugar Left into Union(Sigma*+slave, orig+master)")
	}
}

func TestBuildRejectsEmptyPositionUniverse(t *testing.T) {
	u := pos.NewUniverse()
	root := Epsilon(u)

	_, err := Build(root, u)
	if err == nil {
		t.Fatal("expected an error building a tree with no state-expression leaves")
	}
	if !errors.Is(err, errs.ErrEmptyPositionUniverse) {
		t.Errorf("expected ErrEmptyPositionUniverse, got %v", err)
	}
}

func TestBuildReverseWiresOppositeDirection(t *testing.T) {
	u := pos.NewUniverse()
	a := &Node{Tag: TagLiteral, Leaf: u.NewLiteral('a')}
	b := &Node{Tag: TagLiteral, Leaf: u.NewLiteral('b')}
	root := Concat(a, b)

	tree, err := BuildReverse(root, u)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// In the reverse wiring, b's follow should contain a (edges flipped),
	// not a's follow containing b as in the forward direction.
	if !b.Leaf.Follow().Contains(uint32(a.Leaf.ID())) {
		t.Error("reverse Build should wire b -> a, not a -> b")
	}
	if a.Leaf.Follow().Contains(uint32(b.Leaf.ID())) {
		t.Error("reverse Build should not also wire the forward a -> b edge")
	}
	_ = tree
}

func TestPlusRequiresAtLeastOne(t *testing.T) {
	u := pos.NewUniverse()
	a := &Node{Tag: TagLiteral, Leaf: u.NewLiteral('a')}
	root := Plus(a)

	tree, err := Build(root, u)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	plus := tree.Root.Left
	if plus.Nullable {
		t.Error("a+ should not be nullable")
	}
	if plus.Min != 1 {
		t.Errorf("a+ should have min length 1, got %d", plus.Min)
	}
	if plus.Max != Infinity {
		t.Error("a+ should have unbounded max length")
	}
	if !a.Leaf.Follow().Contains(uint32(a.Leaf.ID())) {
		t.Error("a+ should wire a self-loop into a's follow set")
	}
}

func TestBegLineEndLineAreNullablePassThrough(t *testing.T) {
	u := pos.NewUniverse()
	beg := BegLine(u)
	a := &Node{Tag: TagLiteral, Leaf: u.NewLiteral('a')}
	end := EndLine(u)
	root := Concat(Concat(beg, a), end)

	tree, err := Build(root, u)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// First(^a$ . EOP) is {^, a}: ^ is nullable, so First leaks through to
	// a's leaf, but ^ itself must appear too.
	if !tree.Root.First.Contains(uint32(beg.Leaf.ID())) {
		t.Error("BegLine leaf should remain visible in First")
	}
	if beg.Leaf.Matches('x') {
		t.Error("BegLine should never match any byte via Matches")
	}
	_ = end
}
