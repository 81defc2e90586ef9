package sim

import (
	"math"
	"math/rand"
)

// poissonSample draws one sample from Poisson(lambda) using the provided
// random stream. Inverse transform sampling is exact and cheap for the
// small lambdas a hockey game produces; a normal approximation covers the
// large-lambda tail.
func poissonSample(rng *rand.Rand, lambda float64) int {
	if lambda <= 0 {
		return 0
	}

	if lambda < 12 {
		L := math.Exp(-lambda)
		k := 0
		p := 1.0
		for p > L {
			k++
			p *= rng.Float64()
		}
		return k - 1
	}

	return int(math.Max(0, rng.NormFloat64()*math.Sqrt(lambda)+lambda+0.5))
}
