package generate

import "math/rand/v2"

// NewRand returns a PCG-backed random source for a single generation run.
// Sources are not safe for concurrent use and must not be shared between
// runs.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}
