package pricing

import (
	"fmt"
	"math"

	"github.com/jiaming2012/options-analyzer/src/eventmodels"
)

const (
	ivMinSigma = 1e-4
	ivMaxSigma = 5.0
	ivMaxIter  = 100
	ivTol      = 1e-6
)

// ImpliedVolatility solves BlackScholes(spot, strike, t, r, sigma) == price for sigma.
// Newton-Raphson is tried first; bisection over [1e-4, 5] takes over when vega vanishes
// or the iterate leaves the bracket.
func ImpliedVolatility(spot, strike, t, r, price float64, optionType eventmodels.OptionType) (float64, error) {
	if err := optionType.Validate(); err != nil {
		return 0, fmt.Errorf("ImpliedVolatility: %w", err)
	}

	for _, v := range []float64{spot, strike, t, r, price} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("ImpliedVolatility: non-finite input: %w", eventmodels.ErrImpliedVolNotConverged)
		}
	}

	if spot <= 0 || strike <= 0 || t <= 0 || price <= 0 {
		return 0, fmt.Errorf("ImpliedVolatility: spot=%v strike=%v t=%v price=%v: %w", spot, strike, t, price, eventmodels.ErrImpliedVolNotConverged)
	}

	lower, upper := noArbitrageBounds(spot, strike, t, r, optionType)
	if price < lower-ivTol || price > upper+ivTol {
		return 0, fmt.Errorf("ImpliedVolatility: price %v outside [%v, %v]: %w", price, lower, upper, eventmodels.ErrImpliedVolNotConverged)
	}

	if sigma, ok := newtonIV(spot, strike, t, r, price, optionType); ok {
		return sigma, nil
	}

	if sigma, ok := bisectionIV(spot, strike, t, r, price, optionType); ok {
		return sigma, nil
	}

	return 0, fmt.Errorf("ImpliedVolatility: no root for price %v: %w", price, eventmodels.ErrImpliedVolNotConverged)
}

func noArbitrageBounds(spot, strike, t, r float64, optionType eventmodels.OptionType) (float64, float64) {
	discount := strike * math.Exp(-r*t)
	if optionType == eventmodels.Put {
		return math.Max(discount-spot, 0), discount
	}
	return math.Max(spot-discount, 0), spot
}

func newtonIV(spot, strike, t, r, price float64, optionType eventmodels.OptionType) (float64, bool) {
	sigma := 0.2
	for i := 0; i < ivMaxIter; i++ {
		diff := BlackScholes(spot, strike, t, r, sigma, optionType) - price
		if math.Abs(diff) < ivTol {
			return sigma, true
		}

		vega := Vega(spot, strike, t, r, sigma)
		if vega < 1e-10 {
			return 0, false
		}

		sigma -= diff / vega
		if sigma < ivMinSigma || sigma > ivMaxSigma || math.IsNaN(sigma) {
			return 0, false
		}
	}

	return 0, false
}

func bisectionIV(spot, strike, t, r, price float64, optionType eventmodels.OptionType) (float64, bool) {
	lo, hi := ivMinSigma, ivMaxSigma
	fLo := BlackScholes(spot, strike, t, r, lo, optionType) - price
	fHi := BlackScholes(spot, strike, t, r, hi, optionType) - price
	if fLo > 0 || fHi < 0 {
		return 0, false
	}

	for i := 0; i < 200; i++ {
		mid := (lo + hi) / 2
		diff := BlackScholes(spot, strike, t, r, mid, optionType) - price
		if math.Abs(diff) < ivTol || hi-lo < 1e-10 {
			return mid, true
		}

		if diff > 0 {
			hi = mid
		} else {
			lo = mid
		}
	}

	return 0, false
}
