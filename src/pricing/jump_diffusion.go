package pricing

import (
	"math"

	"github.com/jiaming2012/options-analyzer/src/eventmodels"
)

// JumpParams describes lognormal jumps: Intensity per year, Mean and StdDev of log jump size.
type JumpParams struct {
	Intensity float64
	Mean      float64
	StdDev    float64
}

func NewJumpParams(y eventmodels.JumpParamsYAML) JumpParams {
	return JumpParams{Intensity: y.Intensity, Mean: y.Mean, StdDev: y.StdDev}
}

const maxJumpTerms = 60

// JumpDiffusionPrice is Merton's series: a poisson weighted sum of Black-Scholes prices,
// one per number of jumps before expiry.
func JumpDiffusionPrice(spot, strike, t, r, sigma float64, optionType eventmodels.OptionType, params JumpParams) float64 {
	if t <= 0 {
		return intrinsic(spot, strike, optionType)
	}

	if params.Intensity <= 0 {
		return BlackScholes(spot, strike, t, r, sigma, optionType)
	}

	k := math.Exp(params.Mean+0.5*params.StdDev*params.StdDev) - 1
	lambdaT := params.Intensity * (1 + k) * t

	var price float64
	logWeight := -lambdaT
	for n := 0; n < maxJumpTerms; n++ {
		if n > 0 {
			logWeight += math.Log(lambdaT) - math.Log(float64(n))
		}

		weight := math.Exp(logWeight)
		sigmaN := math.Sqrt(sigma*sigma + float64(n)*params.StdDev*params.StdDev/t)
		rN := r - params.Intensity*k + float64(n)*math.Log(1+k)/t

		price += weight * BlackScholes(spot, strike, t, rN, sigmaN, optionType)

		if n > int(lambdaT) && weight < 1e-12 {
			break
		}
	}

	return price
}

func NewJumpDiffusionPricer(params JumpParams) PriceFunc {
	return func(spot, strike, t, r, sigma float64, optionType eventmodels.OptionType) float64 {
		return JumpDiffusionPrice(spot, strike, t, r, sigma, optionType, params)
	}
}
