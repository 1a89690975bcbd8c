package litscan

import (
	"github.com/coregx/ahocorasick"
	"github.com/parexlang/parex/ast"
)

// Prefilter wraps an Aho-Corasick automaton over a single mandatory
// literal, letting a caller reject a haystack (or a shard of one) without
// running the automaton at all, the way the retrieved engine's
// UseAhoCorasick strategy bypasses the NFA/DFA entirely once it can prove
// no candidate occurrence exists.
type Prefilter struct {
	literal   []byte
	automaton *ahocorasick.Automaton
}

// Build extracts root's mandatory literal and compiles it into a
// Prefilter. The second return value is false if root has no mandatory
// literal to filter on (e.g. it is just `.*` or an alternation), in
// which case callers should skip prefiltering and run the automaton
// directly.
func Build(root *ast.Node) (*Prefilter, bool) {
	lit := Extract(root)
	if len(lit) == 0 {
		return nil, false
	}
	builder := ahocorasick.NewBuilder()
	builder.AddPattern(lit)
	automaton, err := builder.Build()
	if err != nil {
		return nil, false
	}
	return &Prefilter{literal: lit, automaton: automaton}, true
}

// Literal returns the mandatory literal this Prefilter was built from.
func (p *Prefilter) Literal() []byte { return p.literal }

// MayMatch reports whether haystack could possibly match: false is a
// proof of rejection, true only means the literal was found and the full
// automaton must still decide.
func (p *Prefilter) MayMatch(haystack []byte) bool {
	return p.automaton.IsMatch(haystack)
}
