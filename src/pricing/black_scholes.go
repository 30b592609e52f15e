package pricing

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/jiaming2012/options-analyzer/src/eventmodels"
)

// PriceFunc values a European option. t is in years, r is a decimal rate and sigma a fraction.
type PriceFunc func(spot, strike, t, r, sigma float64, optionType eventmodels.OptionType) float64

func d1d2(spot, strike, t, r, sigma float64) (float64, float64) {
	sqrtT := math.Sqrt(t)
	d1 := (math.Log(spot/strike) + (r+0.5*sigma*sigma)*t) / (sigma * sqrtT)
	return d1, d1 - sigma*sqrtT
}

func intrinsic(spot, strike float64, optionType eventmodels.OptionType) float64 {
	if optionType == eventmodels.Put {
		return math.Max(strike-spot, 0)
	}
	return math.Max(spot-strike, 0)
}

// BlackScholes returns the closed form European price. At or past expiry, or with no
// volatility, the contract is worth its intrinsic value.
func BlackScholes(spot, strike, t, r, sigma float64, optionType eventmodels.OptionType) float64 {
	if t <= 0 || sigma <= 0 {
		return intrinsic(spot, strike, optionType)
	}

	d1, d2 := d1d2(spot, strike, t, r, sigma)
	discount := strike * math.Exp(-r*t)

	if optionType == eventmodels.Put {
		return discount*distuv.UnitNormal.CDF(-d2) - spot*distuv.UnitNormal.CDF(-d1)
	}

	return spot*distuv.UnitNormal.CDF(d1) - discount*distuv.UnitNormal.CDF(d2)
}

// Vega is the price sensitivity to a unit change in sigma. Identical for calls and puts.
func Vega(spot, strike, t, r, sigma float64) float64 {
	if t <= 0 || sigma <= 0 {
		return 0
	}

	d1, _ := d1d2(spot, strike, t, r, sigma)
	return spot * distuv.UnitNormal.Prob(d1) * math.Sqrt(t)
}
