package dfa_test

import (
	"testing"

	"github.com/parexlang/parex/ast"
	"github.com/parexlang/parex/pos"
)

func TestMinimizePreservesLanguage(t *testing.T) {
	u := pos.NewUniverse()
	// (a|b)*abb, the textbook minimization example.
	ab := ast.Union(lit(u, 'a'), lit(u, 'b'))
	root := concatAll(ast.Star(ab, false), lit(u, 'a'), lit(u, 'b'), lit(u, 'b'))
	d := build(t, root, u)
	m := d.Minimize()

	cases := []string{"abb", "aabb", "babb", "ababb", "", "a", "ab", "abbb", "abba"}
	for _, s := range cases {
		if run(d, s) != run(m, s) {
			t.Errorf("minimized DFA disagrees with original on %q", s)
		}
	}
}

func TestMinimizeIsIdempotent(t *testing.T) {
	u := pos.NewUniverse()
	root := ast.Star(ast.Union(lit(u, 'a'), lit(u, 'b')), false)
	d := build(t, root, u)
	m1 := d.Minimize()
	m2 := m1.Minimize()

	if m1.NumStates() != m2.NumStates() {
		t.Errorf("Minimize should be idempotent on state count: %d vs %d", m1.NumStates(), m2.NumStates())
	}
	for _, s := range []string{"", "a", "b", "ab", "ba", "aabb", "c"} {
		if run(m1, s) != run(m2, s) {
			t.Errorf("re-minimizing changed behavior on %q", s)
		}
	}
}

func TestMinimizeReducesRedundantStates(t *testing.T) {
	u := pos.NewUniverse()
	// a|a: two structurally distinct but behaviorally identical branches.
	root := ast.Union(lit(u, 'a'), lit(u, 'a'))
	d := build(t, root, u)
	m := d.Minimize()

	if m.NumStates() > d.NumStates() {
		t.Error("minimization should never increase state count")
	}
	if !run(m, "a") || run(m, "b") {
		t.Error("minimized DFA should preserve the language of a|a")
	}
}
