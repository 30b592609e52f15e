package eventservices

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jiaming2012/options-analyzer/src/eventmodels"
	"github.com/jiaming2012/options-analyzer/src/pricing"
)

type CombinedOptionChainRequest struct {
	Underlying    eventmodels.StockSymbol
	OptionType    eventmodels.OptionType
	From          time.Time
	To            time.Time
	Spot          float64
	DividendYield float64 // decimal
	RiskFreeRate  float64 // decimal
	DayCountBasis float64
	Now           time.Time
}

func sameOrAfterDate(a, b time.Time) bool {
	return eventmodels.DaysBetween(b, a) >= 0
}

// FetchCombinedOptionChain concatenates the chains of every expiration in [From, To] in
// ascending expiration order. Rows missing an implied volatility get one from the solver
// using a dividend adjusted spot; rows the solver cannot price are dropped.
func FetchCombinedOptionChain(ctx context.Context, provider MarketDataProvider, req CombinedOptionChainRequest) (eventmodels.OptionChain, error) {
	tracer := otel.Tracer("FetchCombinedOptionChain")
	ctx, span := tracer.Start(ctx, "FetchCombinedOptionChain")
	defer span.End()

	logger := log.WithContext(ctx)

	expirations, err := provider.FetchExpirations(ctx, req.Underlying)
	if err != nil {
		return nil, fmt.Errorf("FetchCombinedOptionChain: failed to fetch expirations: %w", err)
	}

	sort.Slice(expirations, func(i, j int) bool {
		return expirations[i].Before(expirations[j])
	})

	combined := eventmodels.OptionChain{}
	for _, expiration := range expirations {
		if !sameOrAfterDate(expiration, req.From) || !sameOrAfterDate(req.To, expiration) {
			continue
		}

		chain, err := provider.FetchOptionChain(ctx, req.Underlying, req.OptionType, expiration)
		if err != nil {
			return nil, fmt.Errorf("FetchCombinedOptionChain: failed to fetch chain for %s: %w", expiration.Format("2006-01-02"), err)
		}

		for _, row := range chain {
			if row.ImpliedVolatility <= 0 || math.IsNaN(row.ImpliedVolatility) {
				iv, ok := deriveImpliedVolatility(row, req)
				if !ok {
					logger.Debugf("FetchCombinedOptionChain: dropping %s, implied volatility could not be derived", row.Symbol)
					continue
				}
				row.ImpliedVolatility = iv
			}

			combined = append(combined, row)
		}
	}

	span.SetAttributes(attribute.Int("rows", len(combined)))

	return combined, nil
}

func deriveImpliedVolatility(row eventmodels.OptionChainRow, req CombinedOptionChainRequest) (float64, bool) {
	t := eventmodels.YearFraction(eventmodels.DaysBetween(req.Now, row.Expiration), req.DayCountBasis)
	adjustedSpot := req.Spot * math.Exp(-req.DividendYield*t)

	iv, err := pricing.ImpliedVolatility(adjustedSpot, row.Strike, t, req.RiskFreeRate, row.LastPrice, row.OptionType)
	if err != nil {
		return 0, false
	}

	return iv, true
}
