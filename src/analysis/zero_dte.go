package analysis

import (
	"context"
	"errors"
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jiaming2012/options-analyzer/src/eventmodels"
)

// SelectZeroDTE narrows a same day chain to its most active, most volatile, near the money
// rows and picks the highest volume x implied volatility score.
func SelectZeroDTE(chain eventmodels.OptionChain, spot float64, cfg eventmodels.ZeroDTEConfigYAML) (*eventmodels.ZeroDTEResult, error) {
	if len(chain) == 0 {
		return &eventmodels.ZeroDTEResult{
			Outcome: eventmodels.SelectionEmptyChain,
			Message: "no options available expiring today",
		}, nil
	}

	noSuitable := &eventmodels.ZeroDTEResult{
		Outcome: eventmodels.SelectionNoSuitableOptions,
		Message: "no suitable options found based on criteria",
	}

	volumeThreshold, err := percentile(chain.Volumes(), cfg.VolumePercentile)
	if err != nil {
		return nil, fmt.Errorf("SelectZeroDTE: volume percentile: %w", err)
	}

	active := chain.Filter(func(row eventmodels.OptionChainRow) bool {
		return row.Volume > volumeThreshold
	})

	if len(active) < cfg.MinQuartileSample {
		return noSuitable, nil
	}

	ivThreshold, err := percentile(active.ImpliedVolatilities(), cfg.IVPercentile)
	if err != nil {
		return nil, fmt.Errorf("SelectZeroDTE: implied volatility percentile: %w", err)
	}

	highIV := active.Filter(func(row eventmodels.OptionChainRow) bool {
		return row.ImpliedVolatility > ivThreshold
	})

	if len(highIV) == 0 {
		return noSuitable, nil
	}

	distances := make([]float64, len(highIV))
	for i, row := range highIV {
		distances[i] = math.Abs(row.Strike - spot)
	}

	atmThreshold, err := percentile(distances, cfg.ATMPercentile)
	if err != nil {
		return nil, fmt.Errorf("SelectZeroDTE: distance percentile: %w", err)
	}

	var selected *eventmodels.ZeroDTECandidate
	for i, row := range highIV {
		if distances[i] > atmThreshold {
			continue
		}

		score := row.Volume * row.ImpliedVolatility
		if selected == nil || score > selected.SelectionScore {
			selected = &eventmodels.ZeroDTECandidate{
				OptionChainRow: row,
				DistanceToATM:  distances[i],
				SelectionScore: score,
			}
		}
	}

	if selected == nil {
		return noSuitable, nil
	}

	return &eventmodels.ZeroDTEResult{
		Outcome:  eventmodels.SelectionFound,
		Selected: selected,
	}, nil
}

func (a *Analyzer) ChooseZeroDTE(ctx context.Context, ticker eventmodels.StockSymbol, optionType eventmodels.OptionType) (*eventmodels.ZeroDTEResult, error) {
	tracer := otel.Tracer("Analyzer")
	ctx, span := tracer.Start(ctx, "Analyzer.ChooseZeroDTE")
	defer span.End()

	logger := log.WithContext(ctx)

	if err := optionType.Validate(); err != nil {
		return nil, fmt.Errorf("ChooseZeroDTE: %w", err)
	}

	spot, err := a.provider.FetchUnderlyingPrice(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("ChooseZeroDTE: failed to fetch underlying price: %w", err)
	}

	today := a.now()
	chain, err := a.provider.FetchOptionChain(ctx, ticker, optionType, today)
	if err == nil {
		err = chain.Validate()
	}

	if err != nil {
		if errors.Is(err, eventmodels.ErrMalformedChain) {
			logger.Warnf("ChooseZeroDTE: %s: %v", ticker, err)
			return &eventmodels.ZeroDTEResult{
				Outcome: eventmodels.SelectionMalformedChain,
				Message: err.Error(),
			}, nil
		}
		return nil, fmt.Errorf("ChooseZeroDTE: failed to fetch option chain: %w", err)
	}

	result, err := SelectZeroDTE(chain, spot, a.config.ZeroDTE)
	if err != nil {
		return nil, fmt.Errorf("ChooseZeroDTE: %w", err)
	}

	if result.Outcome == eventmodels.SelectionEmptyChain {
		result.Message = fmt.Sprintf("no options available for %s expiring today", ticker)
	}

	span.SetAttributes(
		attribute.String("ticker", ticker.String()),
		attribute.String("outcome", string(result.Outcome)),
	)

	logger.Debugf("ChooseZeroDTE: %s %s -> %s", ticker, optionType, result.Outcome)

	return result, nil
}
