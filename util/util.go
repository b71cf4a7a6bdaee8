package util

import (
	"math/rand/v2"

	"code.cloudfoundry.org/clock"
)

// NewRand returns a generator seeded with seed. A zero seed is replaced with
// one taken from the clock.
func NewRand(seed uint64, c clock.Clock) *rand.Rand {
	if seed == 0 {
		seed = uint64(c.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// DeriveSeed gives sample i of a batch its own seed so batches reproduce no
// matter which worker runs which sample.
func DeriveSeed(base uint64, i int) uint64 {
	z := base + uint64(i+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

func RandomIntIn(r *rand.Rand, min, max int) int {
	return r.IntN(max-min+1) + min
}
