package eventservices

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/options-analyzer/src/eventmodels"
	"github.com/jiaming2012/options-analyzer/src/pricing"
)

func TestFetchCombinedOptionChain(t *testing.T) {
	ctx := context.Background()
	now := day(2024, time.June, 10)

	provider := newFakeProvider()
	provider.expirations = []time.Time{day(2024, time.June, 24), day(2024, time.June, 14), day(2024, time.June, 21), day(2024, time.June, 26)}
	provider.chains["2024-06-21"] = eventmodels.OptionChain{
		{Symbol: "SPY240621C00100000", Strike: 100, LastPrice: 2, ImpliedVolatility: 0.2, OptionType: eventmodels.Call, Expiration: day(2024, time.June, 21)},
	}
	provider.chains["2024-06-24"] = eventmodels.OptionChain{
		{Symbol: "SPY240624C00100000", Strike: 100, LastPrice: 2.5, ImpliedVolatility: 0.25, OptionType: eventmodels.Call, Expiration: day(2024, time.June, 24)},
	}

	req := CombinedOptionChainRequest{
		Underlying:    "SPY",
		OptionType:    eventmodels.Call,
		From:          day(2024, time.June, 21),
		To:            day(2024, time.June, 24),
		Spot:          100,
		RiskFreeRate:  0.05,
		DayCountBasis: 365,
		Now:           now,
	}

	t.Run("only expirations in range, ascending", func(t *testing.T) {
		chain, err := FetchCombinedOptionChain(ctx, provider, req)
		require.NoError(t, err)
		require.Len(t, chain, 2)
		assert.Equal(t, eventmodels.OptionSymbol("SPY240621C00100000"), chain[0].Symbol)
		assert.Equal(t, eventmodels.OptionSymbol("SPY240624C00100000"), chain[1].Symbol)
	})

	t.Run("missing implied volatility is derived", func(t *testing.T) {
		expiration := day(2024, time.June, 21)
		tm := 11.0 / 365.0
		price := pricing.BlackScholes(100, 100, tm, 0.05, 0.3, eventmodels.Call)

		p := newFakeProvider()
		p.expirations = []time.Time{expiration}
		p.chains["2024-06-21"] = eventmodels.OptionChain{
			{Symbol: "SPY240621C00100000", Strike: 100, LastPrice: price, OptionType: eventmodels.Call, Expiration: expiration},
			{Symbol: "SPY240621C00200000", Strike: 200, LastPrice: 150, OptionType: eventmodels.Call, Expiration: expiration},
		}

		chain, err := FetchCombinedOptionChain(ctx, p, req)
		require.NoError(t, err)
		require.Len(t, chain, 1)
		assert.InDelta(t, 0.3, chain[0].ImpliedVolatility, 1e-4)
	})

	t.Run("chain errors propagate", func(t *testing.T) {
		p := newFakeProvider()
		p.expirations = []time.Time{day(2024, time.June, 21)}
		p.chainErr = eventmodels.ErrMalformedChain

		_, err := FetchCombinedOptionChain(ctx, p, req)
		assert.True(t, errors.Is(err, eventmodels.ErrMalformedChain))
	})
}
