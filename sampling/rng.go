// Package sampling - RNG utilities for the likelihood-weighting sampler.
//
// Goals:
//   - Determinism: same seed and worker count give identical estimates.
//   - Encapsulation: one RNG factory; no time-based sources anywhere.
//   - Independence: per-worker streams are derived, never shared.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Each worker owns exactly one stream.
//   - Use workerStreams to split a seed into n streams before fanning out.
//
// Complexity: O(1) per stream; workerStreams is O(n).
package sampling

import "math/rand"

// defaultSeed is used when callers pass seed == 0.
const defaultSeed int64 = 1

// rngFromSeed returns a deterministic generator; seed 0 maps to defaultSeed.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}
	return rand.New(rand.NewSource(seed))
}

// deriveSeed mixes parent and stream with a SplitMix64 finalizer so that
// neighbouring stream ids yield uncorrelated seeds.
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// workerStreams returns n independent generators derived from seed. Stream 0
// of a single worker is the seed's own stream.
func workerStreams(seed int64, n int) []*rand.Rand {
	if n == 1 {
		return []*rand.Rand{rngFromSeed(seed)}
	}
	base := rngFromSeed(seed)
	out := make([]*rand.Rand, n)
	for w := range out {
		out[w] = rand.New(rand.NewSource(deriveSeed(base.Int63(), uint64(w))))
	}
	return out
}
