package analysis

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

func TestPriceLevels(t *testing.T) {
	t.Run("centred on spot in half steps", func(t *testing.T) {
		levels, err := PriceLevels(100.2, 98, 102, 0.5)
		require.NoError(t, err)
		assert.Equal(t, []float64{98, 98.5, 99, 99.5, 100, 100.5, 101, 101.5, 102}, levels)
	})

	t.Run("band is re-centred on spot", func(t *testing.T) {
		levels, err := PriceLevels(50, 98, 99, 0.5)
		require.NoError(t, err)
		assert.Equal(t, []float64{49.5, 50, 50.5}, levels)
	})

	t.Run("rounds half to even", func(t *testing.T) {
		levels, err := PriceLevels(100.25, 100, 100, 0.5)
		require.NoError(t, err)
		assert.Equal(t, []float64{100}, levels)

		levels, err = PriceLevels(100.75, 100, 100, 0.5)
		require.NoError(t, err)
		assert.Equal(t, []float64{101}, levels)
	})

	t.Run("band narrower than a step is a single level", func(t *testing.T) {
		levels, err := PriceLevels(100, 100, 100.6, 0.5)
		require.NoError(t, err)
		assert.Equal(t, []float64{100}, levels)
	})

	t.Run("inverted band", func(t *testing.T) {
		_, err := PriceLevels(100, 102, 98, 0.5)
		assert.True(t, errors.Is(err, eventmodels.ErrDegenerateInput))
	})
}

func TestBuildSurface(t *testing.T) {
	ctx := context.Background()
	expiry := day(2024, time.June, 21)
	now := day(2024, time.June, 17)
	contract := eventmodels.OptionSymbol("SPY240621C00100000")
	dates := []time.Time{day(2024, time.June, 17), day(2024, time.June, 18), day(2024, time.June, 20), day(2024, time.June, 21)}

	provider := newFakeProvider(100)
	provider.quote = &eventmodels.OptionQuote{LastPrice: 2.5, ImpliedVolatility: 0.25}

	a, err := NewAnalyzer(provider, fakeRates{percent: 5}, fakeCalendar{days: dates}, nil, clock(now))
	require.NoError(t, err)

	t.Run("odd offsets average their neighbours", func(t *testing.T) {
		surface, err := a.BuildSurface(ctx, contract, 97, 103)
		require.NoError(t, err)

		require.Len(t, surface.PriceLevels, 13)
		assert.Equal(t, 97.0, surface.PriceLevels[0])
		assert.Equal(t, 103.0, surface.PriceLevels[12])
		assert.Equal(t, dates, surface.Dates)

		require.Len(t, surface.Values, 13)
		for i, row := range surface.Values {
			require.Len(t, row, len(dates))
			assert.Equal(t, i%2 == 1, surface.Interpolated[i])
		}

		for i := 1; i < len(surface.PriceLevels)-1; i++ {
			if !surface.Interpolated[i] {
				continue
			}
			for j := range surface.Dates {
				assert.Equal(t, (surface.Values[i-1][j]+surface.Values[i+1][j])/2, surface.Values[i][j])
			}
		}
	})

	t.Run("direct cells are the last price scaled by the model move", func(t *testing.T) {
		surface, err := a.BuildSurface(ctx, contract, 99, 101)
		require.NoError(t, err)

		cmp := pricing.BlackScholes(100, 100, 4.0/365.0, 0.05, 0.25, eventmodels.Call)
		assert.InDelta(t, cmp, surface.CurrentModelPrice, 1e-12)
		assert.InDelta(t, (2.5-cmp)/cmp, surface.BaselineDiffRatio, 1e-12)

		// spot level on the first date reprices to the current model price
		v, ok := surface.Value(100, now)
		require.True(t, ok)
		assert.InDelta(t, 2.5, v, 1e-12)

		bs := pricing.BlackScholes(101, 100, 1.0/365.0, 0.05, 0.25, eventmodels.Call)
		v, ok = surface.Value(101, day(2024, time.June, 20))
		require.True(t, ok)
		assert.InDelta(t, 2.5*(1+(bs-cmp)/cmp), v, 1e-12)

		// on expiry the contract is worth intrinsic value
		bs = pricing.BlackScholes(99, 100, 0, 0.05, 0.25, eventmodels.Call)
		v, ok = surface.Value(99, expiry)
		require.True(t, ok)
		assert.Equal(t, 0.0, bs)
		assert.InDelta(t, 2.5*(1-1), v, 1e-12)
	})

	t.Run("collapsed band is one price column", func(t *testing.T) {
		surface, err := a.BuildSurface(ctx, contract, 105, 105)
		require.NoError(t, err)

		assert.Equal(t, []float64{100}, surface.PriceLevels)
		assert.Equal(t, []bool{false}, surface.Interpolated)
		require.Len(t, surface.Values, 1)
		assert.Len(t, surface.Values[0], len(dates))
	})

	t.Run("zero model price fails explicitly", func(t *testing.T) {
		p := newFakeProvider(100)
		p.quote = &eventmodels.OptionQuote{LastPrice: 0.01, ImpliedVolatility: 0.2}

		b, err := NewAnalyzer(p, fakeRates{percent: 5}, fakeCalendar{days: dates}, nil, clock(expiry.AddDate(0, 0, -1)))
		require.NoError(t, err)

		_, err = b.BuildSurface(ctx, "SPY240621C01000000", 99, 101)
		assert.True(t, errors.Is(err, eventmodels.ErrDegenerateInput))
	})

	t.Run("no business days", func(t *testing.T) {
		b, err := NewAnalyzer(provider, fakeRates{percent: 5}, fakeCalendar{}, nil, clock(now))
		require.NoError(t, err)

		_, err = b.BuildSurface(ctx, contract, 99, 101)
		assert.True(t, errors.Is(err, eventmodels.ErrDataUnavailable))
	})

	t.Run("rate failure abandons the surface", func(t *testing.T) {
		b, err := NewAnalyzer(provider, fakeRates{err: eventmodels.ErrDataUnavailable}, fakeCalendar{days: dates}, nil, clock(now))
		require.NoError(t, err)

		surface, err := b.BuildSurface(ctx, contract, 99, 101)
		assert.Nil(t, surface)
		assert.True(t, errors.Is(err, eventmodels.ErrDataUnavailable))
	})
}
