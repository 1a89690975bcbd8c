package ssfa

import "runtime"

// numCPU reports the hardware parallelism to clamp K against. A var
// (rather than a direct runtime.GOMAXPROCS(0) call at each use site) so
// tests can override it to exercise the clamp deterministically.
var numCPU = func() int {
	return runtime.GOMAXPROCS(0)
}
