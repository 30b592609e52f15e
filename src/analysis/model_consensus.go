package analysis

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"

	"github.com/jiaming2012/options-analyzer/src/eventmodels"
	"github.com/jiaming2012/options-analyzer/src/eventservices"
	"github.com/jiaming2012/options-analyzer/src/pricing"
)

const jumpThresholdStdDevs = 2.0

// PriceWithAllModels prices a contract with every pricing model and averages the results.
// With a history provider, jump parameters and historical volatility come from daily
// closes; otherwise the configured jump parameters are used.
func (a *Analyzer) PriceWithAllModels(ctx context.Context, contract eventmodels.OptionSymbol) (*eventmodels.ModelConsensus, error) {
	tracer := otel.Tracer("Analyzer")
	ctx, span := tracer.Start(ctx, "Analyzer.PriceWithAllModels")
	defer span.End()

	logger := log.WithContext(ctx)
	now := a.now()

	snapshot, err := eventservices.FetchMarketSnapshot(ctx, a.provider, a.rates, contract, now, a.config.Profitability.DayCountBasis)
	if err != nil {
		return nil, fmt.Errorf("PriceWithAllModels: %w", err)
	}

	jump := pricing.NewJumpParams(a.config.Pricing.Jump)
	var historicalVolatility *float64

	if a.history != nil {
		from := now.AddDate(0, 0, -a.config.Pricing.HistoryLookbackDays)
		closes, err := a.history.FetchDailyCloses(ctx, snapshot.Underlying, from, now)
		if err != nil {
			return nil, fmt.Errorf("PriceWithAllModels: failed to fetch history: %w", err)
		}

		estimated, err := pricing.EstimateJumpParameters(closes, jumpThresholdStdDevs)
		switch {
		case err == nil:
			jump = estimated
		case errors.Is(err, eventmodels.ErrDataUnavailable):
			logger.Warnf("PriceWithAllModels: %v, using configured jump parameters", err)
		default:
			return nil, fmt.Errorf("PriceWithAllModels: %w", err)
		}

		if hv, err := pricing.HistoricalVolatility(closes); err == nil {
			historicalVolatility = &hv
		}
	}

	models := pricing.NewModels(a.config.Pricing, jump)
	prices, average, err := models.PriceAll(snapshot.Spot, snapshot.Strike, snapshot.TimeToMaturity, snapshot.RiskFreeRate, snapshot.ImpliedVolatility, snapshot.OptionType)
	if err != nil {
		return nil, fmt.Errorf("PriceWithAllModels: %w", err)
	}

	return &eventmodels.ModelConsensus{
		Contract:             snapshot.Contract,
		Prices:               prices,
		Average:              average,
		LastPrice:            snapshot.LastPrice,
		HistoricalVolatility: historicalVolatility,
	}, nil
}
