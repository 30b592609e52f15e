package eventservices

import (
	"context"
	"fmt"
	"time"

	"github.com/jiaming2012/options-analyzer/src/eventmodels"
)

// FetchMarketSnapshot gathers spot, quote and rate for one contract. Contract facts
// (strike, expiry, type, underlying) are decoded from the OCC symbol itself.
func FetchMarketSnapshot(ctx context.Context, provider MarketDataProvider, rates RiskFreeRateProvider, contract eventmodels.OptionSymbol, now time.Time, dayCountBasis float64) (*eventmodels.MarketSnapshot, error) {
	components, err := contract.Components()
	if err != nil {
		return nil, fmt.Errorf("FetchMarketSnapshot: %w", err)
	}

	spot, err := provider.FetchUnderlyingPrice(ctx, components.Underlying)
	if err != nil {
		return nil, fmt.Errorf("FetchMarketSnapshot: failed to fetch underlying price: %w", err)
	}

	quote, err := provider.FetchOptionQuote(ctx, components.Symbol)
	if err != nil {
		return nil, fmt.Errorf("FetchMarketSnapshot: failed to fetch option quote: %w", err)
	}

	ratePercent, err := rates.FetchRiskFreeRate(ctx)
	if err != nil {
		return nil, fmt.Errorf("FetchMarketSnapshot: failed to fetch risk free rate: %w", err)
	}

	days := components.DaysToExpiry(now)

	snapshot := &eventmodels.MarketSnapshot{
		Contract:          components.Symbol,
		Underlying:        components.Underlying,
		Spot:              spot,
		Strike:            components.StrikePrice,
		Expiration:        components.Expiration,
		DaysToExpiry:      days,
		TimeToMaturity:    eventmodels.YearFraction(days, dayCountBasis),
		RiskFreeRate:      ratePercent / 100,
		ImpliedVolatility: quote.ImpliedVolatility,
		OptionType:        components.OptionType,
		LastPrice:         quote.LastPrice,
		FetchedAt:         now,
	}

	if err := snapshot.Validate(); err != nil {
		return nil, fmt.Errorf("FetchMarketSnapshot: %w", err)
	}

	return snapshot, nil
}
