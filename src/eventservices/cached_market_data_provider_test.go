package eventservices

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/options-analyzer/src/eventmodels"
)

func TestCachedMarketDataProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("zero ttl returns the inner provider", func(t *testing.T) {
		inner := newFakeProvider()
		assert.Same(t, inner, NewCachedMarketDataProvider(inner, 0))
	})

	t.Run("answers are reused", func(t *testing.T) {
		inner := newFakeProvider()
		inner.spot = 100
		inner.quote = &eventmodels.OptionQuote{LastPrice: 2, ImpliedVolatility: 0.2}
		inner.expirations = []time.Time{day(2024, time.June, 21)}
		inner.chains["2024-06-21"] = eventmodels.OptionChain{{Symbol: "X", Strike: 100}}

		provider := NewCachedMarketDataProvider(inner, time.Minute)

		for i := 0; i < 3; i++ {
			price, err := provider.FetchUnderlyingPrice(ctx, "SPY")
			require.NoError(t, err)
			assert.Equal(t, 100.0, price)

			quote, err := provider.FetchOptionQuote(ctx, "SPY240621C00100000")
			require.NoError(t, err)
			assert.Equal(t, 2.0, quote.LastPrice)

			chain, err := provider.FetchOptionChain(ctx, "SPY", eventmodels.Call, day(2024, time.June, 21))
			require.NoError(t, err)
			assert.Len(t, chain, 1)

			_, err = provider.FetchExpirations(ctx, "SPY")
			require.NoError(t, err)
		}

		assert.Equal(t, 1, inner.calls["price"])
		assert.Equal(t, 1, inner.calls["quote"])
		assert.Equal(t, 1, inner.calls["chain"])
		assert.Equal(t, 1, inner.calls["expirations"])
	})

	t.Run("callers cannot mutate cached values", func(t *testing.T) {
		inner := newFakeProvider()
		inner.chains["2024-06-21"] = eventmodels.OptionChain{{Symbol: "X", Strike: 100}}
		provider := NewCachedMarketDataProvider(inner, time.Minute)

		chain, err := provider.FetchOptionChain(ctx, "SPY", eventmodels.Call, day(2024, time.June, 21))
		require.NoError(t, err)
		chain[0].Strike = 1

		again, err := provider.FetchOptionChain(ctx, "SPY", eventmodels.Call, day(2024, time.June, 21))
		require.NoError(t, err)
		assert.Equal(t, 100.0, again[0].Strike)
	})

	t.Run("errors are not cached", func(t *testing.T) {
		inner := newFakeProvider()
		inner.spotErr = eventmodels.ErrDataUnavailable
		provider := NewCachedMarketDataProvider(inner, time.Minute)

		_, err := provider.FetchUnderlyingPrice(ctx, "SPY")
		assert.True(t, errors.Is(err, eventmodels.ErrDataUnavailable))
		_, err = provider.FetchUnderlyingPrice(ctx, "SPY")
		assert.True(t, errors.Is(err, eventmodels.ErrDataUnavailable))

		assert.Equal(t, 2, inner.calls["price"])
	})
}
