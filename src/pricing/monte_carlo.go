package pricing

import (
	"math"
	"math/rand"

	"github.com/jiaming2012/options-analyzer/src/eventmodels"
)

// MonteCarloPrice simulates terminal prices under geometric brownian motion with
// antithetic pairs. The same seed always yields the same price.
func MonteCarloPrice(spot, strike, t, r, sigma float64, optionType eventmodels.OptionType, paths int, seed int64) float64 {
	if t <= 0 || sigma <= 0 || paths < 1 {
		return intrinsic(spot, strike, optionType)
	}

	rng := rand.New(rand.NewSource(seed))
	drift := (r - 0.5*sigma*sigma) * t
	diffusion := sigma * math.Sqrt(t)

	pairs := (paths + 1) / 2
	var sum float64
	for i := 0; i < pairs; i++ {
		z := rng.NormFloat64()
		up := spot * math.Exp(drift+diffusion*z)
		down := spot * math.Exp(drift-diffusion*z)
		sum += (intrinsic(up, strike, optionType) + intrinsic(down, strike, optionType)) / 2
	}

	return math.Exp(-r*t) * sum / float64(pairs)
}

func NewMonteCarloPricer(paths int, seed int64) PriceFunc {
	return func(spot, strike, t, r, sigma float64, optionType eventmodels.OptionType) float64 {
		return MonteCarloPrice(spot, strike, t, r, sigma, optionType, paths, seed)
	}
}
