package dfa_test

import (
	"testing"

	"github.com/parexlang/parex/ast"
	"github.com/parexlang/parex/dfa"
	"github.com/parexlang/parex/errs"
	"github.com/parexlang/parex/pos"
)

func TestBuildRespectsMaxStates(t *testing.T) {
	u := pos.NewUniverse()
	root := ast.Concat(lit(u, 'a'), lit(u, 'b'))
	tree, err := ast.Build(root, u)
	if err != nil {
		t.Fatalf("ast.Build: %v", err)
	}
	_, err = dfa.NewBuilder(tree, dfa.Config{MaxStates: 1}).Build()
	if err == nil {
		t.Fatal("expected a state-bound error with MaxStates=1")
	}
	if got := err.(*errs.CompileError).Err; got != errs.ErrComplementTooLarge {
		t.Errorf("expected ErrComplementTooLarge, got %v", got)
	}
}

func TestBuildRejectsInvalidConfig(t *testing.T) {
	u := pos.NewUniverse()
	tree, err := ast.Build(lit(u, 'a'), u)
	if err != nil {
		t.Fatalf("ast.Build: %v", err)
	}
	if _, err := dfa.NewBuilder(tree, dfa.Config{MaxStates: 0}).Build(); err == nil {
		t.Error("expected a config error with MaxStates=0")
	}
}

func TestRejectStateIsSelfLooping(t *testing.T) {
	u := pos.NewUniverse()
	tree, err := ast.Build(lit(u, 'a'), u)
	if err != nil {
		t.Fatalf("ast.Build: %v", err)
	}
	d, err := dfa.NewBuilder(tree, dfa.DefaultConfig()).Build()
	if err != nil {
		t.Fatalf("dfa.Build: %v", err)
	}
	for c := 0; c < 256; c++ {
		if d.Step(dfa.RejectState, byte(c)) != dfa.RejectState {
			t.Fatalf("RejectState should self-loop on every byte, byte %d escaped", c)
		}
	}
	if d.IsAccept(dfa.RejectState) {
		t.Error("RejectState should never be accepting")
	}
}
