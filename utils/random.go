package utils

import (
	"math/rand"
)

// Rand is the only source of randomness used by the simulation.
// *math/rand.Rand satisfies it; tests substitute scripted sources.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Derives an independent seed for a sub-stream (e.g. one trial of a sweep), via splitmix64 finalisation.
func DeriveSeed(seed int64, keys ...uint64) int64 {
	z := uint64(seed)
	for _, k := range keys {
		z += 0x9e3779b97f4a7c15 + k
		z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
		z = (z ^ (z >> 27)) * 0x94d049bb133111eb
		z ^= z >> 31
	}
	return int64(z)
}
