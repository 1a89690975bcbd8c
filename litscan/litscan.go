// Package litscan extracts a mandatory literal factor from a compiled
// expression tree and uses it to reject input outright before running the
// full automaton, the way the retrieved engine's meta package extracts an
// anchored literal (meta/anchored_literal.go) and dispatches large literal
// sets to Aho-Corasick (meta/compile.go's UseAhoCorasick strategy) instead
// of walking the NFA/DFA byte by byte.
//
// A mandatory literal is a run of Literal leaves that every string in the
// expression's language must contain verbatim, found by walking the
// Concat spine of the tree: a Union, Star, Qmark, Intersection, XOR, or
// Complement node ends the current run, since none of them guarantee
// their contents appear in every accepted string.
package litscan

import "github.com/parexlang/parex/ast"

// Extract returns the longest run of concatenated Literal leaves that
// every matching input must contain, or nil if the expression has no
// such run (e.g. no Literal leaf lies on its mandatory Concat spine).
func Extract(root *ast.Node) []byte {
	var best, cur []byte

	flush := func() {
		if len(cur) > len(best) {
			best = append([]byte(nil), cur...)
		}
		cur = nil
	}

	var walk func(n *ast.Node)
	walk = func(n *ast.Node) {
		if n == nil {
			flush()
			return
		}
		switch n.Tag {
		case ast.TagLiteral:
			cur = append(cur, n.Leaf.Literal())
		case ast.TagConcat:
			walk(n.Left)
			walk(n.Right)
		case ast.TagPlus:
			// At least one iteration is mandatory, so its contents (if
			// themselves a literal run) count once, but the run cannot
			// continue past the loop boundary.
			walk(n.Left)
			flush()
		default:
			// TagCharClass, TagDot, TagUnion, TagQmark, TagStar,
			// TagIntersection, TagXOR, TagComplement, anchors, epsilon:
			// none guarantee their contents appear verbatim in every
			// accepted string, so any in-progress run ends here.
			flush()
		}
	}

	walk(root)
	flush()
	return best
}
