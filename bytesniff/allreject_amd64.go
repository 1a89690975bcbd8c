//go:build amd64

package bytesniff

import (
	"encoding/binary"

	"golang.org/x/sys/cpu"
)

// hasAVX2 mirrors simd/ascii_amd64.go's feature flag. No AVX2 assembly
// ships in this module (none was available to adapt), so the flag only
// selects a wider pure Go unroll rather than dispatching to a vector
// kernel; the hook stays in place for a future assembly implementation.
var hasAVX2 = cpu.X86.HasAVX2

// allEqualUnrolled compares four uint32 lanes per iteration (two uint64
// words) once AVX2 is available, on the assumption that a CPU wide enough
// to benefit from real vector instructions also benefits from a deeper
// pure Go unroll.
func allEqualUnrolled(states []uint32, target uint32) bool {
	n := len(states)
	broadcast := uint64(target) | uint64(target)<<32
	buf := make([]byte, 16)

	i := 0
	for ; i+4 <= n; i += 4 {
		binary.LittleEndian.PutUint32(buf[0:4], states[i])
		binary.LittleEndian.PutUint32(buf[4:8], states[i+1])
		binary.LittleEndian.PutUint32(buf[8:12], states[i+2])
		binary.LittleEndian.PutUint32(buf[12:16], states[i+3])
		if binary.LittleEndian.Uint64(buf[0:8]) != broadcast {
			return false
		}
		if binary.LittleEndian.Uint64(buf[8:16]) != broadcast {
			return false
		}
	}
	return allEqualGeneric(states[i:], target)
}

func allEqual(states []uint32, target uint32) bool {
	if hasAVX2 && len(states) >= 8 {
		return allEqualUnrolled(states, target)
	}
	return allEqualGeneric(states, target)
}
