package analysis

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jiaming2012/options-analyzer/src/eventmodels"
	"github.com/jiaming2012/options-analyzer/src/eventservices"
	"github.com/jiaming2012/options-analyzer/src/pricing"
)

const noSuitableOptionsAfterStrikeFilter = "no suitable options found after filtering by strike price"

// RankContracts reprices every row at expectedPrice with one shared time to maturity and
// rate. The output is index aligned with rows.
func RankContracts(rows eventmodels.OptionChain, expectedPrice, t, rate float64) []eventmodels.RankedContract {
	ranked := make([]eventmodels.RankedContract, len(rows))
	for i, row := range rows {
		future := pricing.BlackScholes(expectedPrice, row.Strike, t, rate, row.ImpliedVolatility, row.OptionType)
		ranked[i] = eventmodels.RankedContract{
			OptionChainRow:         row,
			FuturePrice:            future,
			PotentialProfitPercent: (future - row.LastPrice) / row.LastPrice * 100,
		}
	}
	return ranked
}

// bestRanked returns the highest profit. The earliest row wins ties.
func bestRanked(ranked []eventmodels.RankedContract) *eventmodels.RankedContract {
	if len(ranked) == 0 {
		return nil
	}

	best := 0
	for i := 1; i < len(ranked); i++ {
		if ranked[i].PotentialProfitPercent > ranked[best].PotentialProfitPercent {
			best = i
		}
	}

	out := ranked[best]
	return &out
}

func (a *Analyzer) riskFreeRatePercent(ctx context.Context, override *float64) (float64, error) {
	if override != nil {
		return *override, nil
	}

	rate, err := a.rates.FetchRiskFreeRate(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch risk free rate: %w", err)
	}

	return rate, nil
}

func (a *Analyzer) SelectBest(ctx context.Context, req eventmodels.SelectBestRequest) (*eventmodels.SelectBestResult, error) {
	tracer := otel.Tracer("Analyzer")
	ctx, span := tracer.Start(ctx, "Analyzer.SelectBest")
	defer span.End()

	logger := log.WithContext(ctx)

	if req.ExpectedPrice <= 0 {
		return nil, fmt.Errorf("SelectBest: expected price must be positive, got %v: %w", req.ExpectedPrice, eventmodels.ErrDegenerateInput)
	}

	if req.DaysAfterTarget < 0 {
		return nil, fmt.Errorf("SelectBest: days after target must not be negative: %w", eventmodels.ErrDegenerateInput)
	}

	spot, err := a.provider.FetchUnderlyingPrice(ctx, req.Ticker)
	if err != nil {
		return nil, fmt.Errorf("SelectBest: failed to fetch underlying price: %w", err)
	}

	optionType := eventmodels.Put
	if req.ExpectedPrice > spot {
		optionType = eventmodels.Call
	}

	ratePercent, err := a.riskFreeRatePercent(ctx, req.RiskFreeRate)
	if err != nil {
		return nil, fmt.Errorf("SelectBest: %w", err)
	}

	basis := a.config.Profitability.DayCountBasis
	chain, err := eventservices.FetchCombinedOptionChain(ctx, a.provider, eventservices.CombinedOptionChainRequest{
		Underlying:    req.Ticker,
		OptionType:    optionType,
		From:          req.ExpectedDate,
		To:            req.ExpectedDate.AddDate(0, 0, req.DaysAfterTarget),
		Spot:          spot,
		DividendYield: req.DividendYield,
		RiskFreeRate:  ratePercent / 100,
		DayCountBasis: basis,
		Now:           a.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("SelectBest: %w", err)
	}

	if err := chain.Validate(); err != nil {
		return nil, fmt.Errorf("SelectBest: %w", err)
	}

	band := a.config.Ranking.StrikeBandPercent
	filtered := chain.FilterByStrike(req.ExpectedPrice*(1-band), req.ExpectedPrice*(1+band)).
		Filter(func(row eventmodels.OptionChainRow) bool {
			if row.LastPrice <= 0 {
				logger.Debugf("SelectBest: dropping %s, no last price to measure profit against", row.Symbol)
				return false
			}
			return true
		})

	span.SetAttributes(
		attribute.String("ticker", req.Ticker.String()),
		attribute.String("optionType", string(optionType)),
		attribute.Int("candidates", len(filtered)),
	)

	if len(filtered) == 0 {
		logger.Infof("SelectBest: %s: %s", req.Ticker, noSuitableOptionsAfterStrikeFilter)
		return &eventmodels.SelectBestResult{
			Found:      false,
			Message:    noSuitableOptionsAfterStrikeFilter,
			OptionType: optionType,
		}, nil
	}

	t := eventmodels.YearFraction(eventmodels.DaysBetween(req.ExpectedDate, filtered[0].Expiration), basis)
	best := bestRanked(RankContracts(filtered, req.ExpectedPrice, t, ratePercent/100))

	logger.Debugf("SelectBest: %s best contract %s with %.2f%% potential profit", req.Ticker, best.Symbol, best.PotentialProfitPercent)

	return &eventmodels.SelectBestResult{
		Found:      true,
		OptionType: optionType,
		Best:       best,
		Candidates: len(filtered),
	}, nil
}
