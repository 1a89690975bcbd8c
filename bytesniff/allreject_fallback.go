//go:build !amd64

package bytesniff

func allEqual(states []uint32, target uint32) bool {
	return allEqualGeneric(states, target)
}
