package waveopt

import "math/rand"

// workerRNG derives a reproducible *rand.Rand from (global seed, stream
// index). The VNS driver passes round*vnsFanout+fanoutIndex as the index, so
// each shaken copy gets its own stream no matter which worker computes it.
// splitmix64 gives a cheap, well-distributed per-stream seed from a single
// uint64.
func workerRNG(seed uint64, workerIndex int) *rand.Rand {
	mixed := splitmix64(seed ^ (uint64(workerIndex)*0x9E3779B97F4A7C15 + 1))
	return rand.New(rand.NewSource(int64(mixed)))
}

func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}
