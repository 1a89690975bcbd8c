// Package bytesniff provides a vectorized "is everything dead yet" scan
// over a shard's per-state transition vector, gated on runtime CPU
// feature detection the same way the retrieved engine's simd package
// gates its ASCII scan (simd/ascii_amd64.go, simd/ascii_fallback.go).
//
// Once every entry of an ssfa worker's current-state vector has reached
// the DFA's reject sentinel, no further byte in the shard can change the
// outcome for any state: the reject state is a universal self-loop.
// AllEqual lets a worker detect that condition with one pass over the
// vector instead of re-deriving it per state, and package ssfa uses it to
// break out of a shard's byte loop early.
package bytesniff

// AllEqual reports whether every element of states equals target. It
// processes two uint32 lanes per iteration via a widened equality mask
// (four on amd64 when AVX2 is available and len(states) >= 8),
// the same "compare a whole machine word at once" idea the retrieved
// engine's ASCII scan applies to ASCII detection, generalized from a
// fixed high-bit test to an arbitrary broadcast target.
func AllEqual(states []uint32, target uint32) bool {
	return allEqual(states, target)
}
