package pricing

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/options-analyzer/src/eventmodels"
)

func TestBlackScholes(t *testing.T) {
	t.Run("at the money call", func(t *testing.T) {
		price := BlackScholes(100, 100, 0.25, 0.05, 0.20, eventmodels.Call)
		assert.InDelta(t, 4.615, price, 1e-3)
	})

	t.Run("put call parity", func(t *testing.T) {
		call := BlackScholes(100, 95, 0.5, 0.03, 0.25, eventmodels.Call)
		put := BlackScholes(100, 95, 0.5, 0.03, 0.25, eventmodels.Put)
		assert.InDelta(t, call-put, 100-95*math.Exp(-0.03*0.5), 1e-9)
	})

	t.Run("expired contracts are worth intrinsic value", func(t *testing.T) {
		assert.Equal(t, 10.0, BlackScholes(110, 100, 0, 0.05, 0.2, eventmodels.Call))
		assert.Equal(t, 0.0, BlackScholes(110, 100, 0, 0.05, 0.2, eventmodels.Put))
		assert.Equal(t, 5.0, BlackScholes(95, 100, -0.01, 0.05, 0.2, eventmodels.Put))
	})

	t.Run("zero volatility is intrinsic value", func(t *testing.T) {
		assert.Equal(t, 0.0, BlackScholes(95, 100, 0.5, 0.05, 0, eventmodels.Call))
	})

	t.Run("vega is positive before expiry and zero after", func(t *testing.T) {
		assert.Greater(t, Vega(100, 100, 0.25, 0.05, 0.2), 0.0)
		assert.Equal(t, 0.0, Vega(100, 100, 0, 0.05, 0.2))
	})
}

func TestImpliedVolatility(t *testing.T) {
	t.Run("recovers the pricing volatility", func(t *testing.T) {
		for _, tc := range []struct {
			strike     float64
			sigma      float64
			optionType eventmodels.OptionType
		}{
			{100, 0.2, eventmodels.Call},
			{90, 0.35, eventmodels.Call},
			{110, 0.5, eventmodels.Put},
			{100, 1.2, eventmodels.Put},
		} {
			price := BlackScholes(100, tc.strike, 0.25, 0.05, tc.sigma, tc.optionType)
			iv, err := ImpliedVolatility(100, tc.strike, 0.25, 0.05, price, tc.optionType)
			require.NoError(t, err)
			assert.InDelta(t, tc.sigma, iv, 1e-4)
		}
	})

	t.Run("price above the no-arbitrage bound", func(t *testing.T) {
		_, err := ImpliedVolatility(100, 100, 0.25, 0.05, 150, eventmodels.Call)
		assert.True(t, errors.Is(err, eventmodels.ErrImpliedVolNotConverged))
	})

	t.Run("expired contract", func(t *testing.T) {
		_, err := ImpliedVolatility(100, 100, 0, 0.05, 2, eventmodels.Call)
		assert.True(t, errors.Is(err, eventmodels.ErrImpliedVolNotConverged))
	})

	t.Run("invalid option type", func(t *testing.T) {
		_, err := ImpliedVolatility(100, 100, 0.25, 0.05, 2, "straddle")
		assert.True(t, errors.Is(err, eventmodels.ErrInvalidOptionType))
	})
}
