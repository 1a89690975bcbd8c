// Package match implements the single-threaded reference driver: the
// oracle that package ssfa's parallel matcher must agree with on every
// input, per the retrieved engine's convention of keeping a minimal,
// obviously-correct implementation alongside an optimized one for tests to
// check against.
package match

import "github.com/parexlang/parex/dfa"

// Run walks d one byte at a time and reports whether input is a full
// match. Its observable behavior must equal ssfa.Match's on every input.
func Run(d *dfa.DFA, input []byte) bool {
	q := d.Start()
	for _, b := range input {
		q = d.Step(q, b)
		if d.IsReject(q) {
			return false
		}
	}
	return d.IsAccept(q)
}
