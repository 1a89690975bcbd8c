package pos

// ByteSet is a fixed 256-bit set, one bit per possible byte value. It backs
// CharClass leaves. Grounded on the original engine's `std::bitset<256>`
// occupancy table (expr.cc's CharClass constructor) and on the word-based
// bitset idiom in the retrieved regexp2 example (lib.BitSet.go), adapted to
// a fixed-width array since the universe here is exactly 256 bytes wide.
type ByteSet [4]uint64

// Set marks b as a member.
func (bs *ByteSet) Set(b byte) {
	bs[b>>6] |= 1 << (uint(b) & 63)
}

// Test reports whether b is a member.
func (bs ByteSet) Test(b byte) bool {
	return bs[b>>6]&(1<<(uint(b)&63)) != 0
}

// Flip complements every bit in place.
func (bs *ByteSet) Flip() {
	for i := range bs {
		bs[i] = ^bs[i]
	}
}

// SetAll marks every byte as a member.
func (bs *ByteSet) SetAll() {
	for i := range bs {
		bs[i] = ^uint64(0)
	}
}

// Count returns the number of member bytes.
func (bs ByteSet) Count() int {
	n := 0
	for _, w := range bs {
		for w != 0 {
			w &= w - 1
			n++
		}
	}
	return n
}
