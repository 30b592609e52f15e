package analysis

import (
	"context"
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jiaming2012/options-analyzer/src/eventmodels"
	"github.com/jiaming2012/options-analyzer/src/eventservices"
	"github.com/jiaming2012/options-analyzer/src/pricing"
)

// ClassifyPremium labels a contract underpriced when the gap between market and model
// implied volatility is strictly below threshold times the market implied volatility.
// Both volatilities are in percent.
func ClassifyPremium(marketIV, modelIV, threshold float64) (eventmodels.Mispricing, float64) {
	premium := math.Abs(marketIV - modelIV)
	if premium < threshold*marketIV {
		return eventmodels.Underpriced, premium
	}

	return eventmodels.Overpriced, premium
}

func (a *Analyzer) modelImpliedVolatility(snapshot *eventmodels.MarketSnapshot) (float64, error) {
	switch a.config.Mispricing.ModelIVSource {
	case eventmodels.ModelIVSABR:
		forward := snapshot.Spot * math.Exp(snapshot.RiskFreeRate*snapshot.TimeToMaturity)
		return pricing.SABRVolatility(forward, snapshot.Strike, snapshot.TimeToMaturity, pricing.NewSABRParams(a.config.Mispricing.SABR))
	default:
		return pricing.ImpliedVolatility(snapshot.Spot, snapshot.Strike, snapshot.TimeToMaturity, snapshot.RiskFreeRate, snapshot.LastPrice, snapshot.OptionType)
	}
}

func (a *Analyzer) ClassifyMispricing(ctx context.Context, contract eventmodels.OptionSymbol) (*eventmodels.MispricingResult, error) {
	tracer := otel.Tracer("Analyzer")
	ctx, span := tracer.Start(ctx, "Analyzer.ClassifyMispricing")
	defer span.End()

	logger := log.WithContext(ctx)

	snapshot, err := eventservices.FetchMarketSnapshot(ctx, a.provider, a.rates, contract, a.now(), a.config.Profitability.DayCountBasis)
	if err != nil {
		return nil, fmt.Errorf("ClassifyMispricing: %w", err)
	}

	modelIV, err := a.modelImpliedVolatility(snapshot)
	if err != nil {
		return nil, fmt.Errorf("ClassifyMispricing: failed to derive model implied volatility: %w", err)
	}

	marketIVPercent := snapshot.ImpliedVolatility * 100
	modelIVPercent := modelIV * 100
	threshold := a.config.Mispricing.PremiumThreshold

	classification, premium := ClassifyPremium(marketIVPercent, modelIVPercent, threshold)

	span.SetAttributes(
		attribute.String("contract", contract.String()),
		attribute.String("classification", string(classification)),
		attribute.Float64("premium", premium),
	)

	logger.Debugf("ClassifyMispricing: %s market iv %.2f%%, model iv %.2f%% -> %s", contract, marketIVPercent, modelIVPercent, classification)

	return &eventmodels.MispricingResult{
		Contract:       snapshot.Contract,
		Classification: classification,
		MarketIV:       marketIVPercent,
		ModelIV:        modelIVPercent,
		Premium:        premium,
		Threshold:      threshold,
	}, nil
}
