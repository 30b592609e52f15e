package pricing

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"github.com/jiaming2012/options-analyzer/src/eventmodels"
)

const TradingDaysPerYear = 252

func logReturns(closes []float64) ([]float64, error) {
	if len(closes) < 3 {
		return nil, fmt.Errorf("logReturns: need at least 3 closes, got %d: %w", len(closes), eventmodels.ErrDataUnavailable)
	}

	out := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] <= 0 || closes[i] <= 0 {
			return nil, fmt.Errorf("logReturns: non-positive close at %d: %w", i, eventmodels.ErrDegenerateInput)
		}
		out = append(out, math.Log(closes[i]/closes[i-1]))
	}

	return out, nil
}

// HistoricalVolatility annualises the sample standard deviation of daily log returns.
func HistoricalVolatility(closes []float64) (float64, error) {
	returns, err := logReturns(closes)
	if err != nil {
		return 0, fmt.Errorf("HistoricalVolatility: %w", err)
	}

	stdev, err := stats.StandardDeviationSample(returns)
	if err != nil {
		return 0, fmt.Errorf("HistoricalVolatility: failed to calculate standard deviation: %w", err)
	}

	return stdev * math.Sqrt(TradingDaysPerYear), nil
}

// EstimateJumpParameters treats daily log returns further than threshold standard
// deviations from the mean as jumps.
func EstimateJumpParameters(closes []float64, threshold float64) (JumpParams, error) {
	returns, err := logReturns(closes)
	if err != nil {
		return JumpParams{}, fmt.Errorf("EstimateJumpParameters: %w", err)
	}

	mean, err := stats.Mean(returns)
	if err != nil {
		return JumpParams{}, fmt.Errorf("EstimateJumpParameters: failed to calculate mean: %w", err)
	}

	stdev, err := stats.StandardDeviation(returns)
	if err != nil {
		return JumpParams{}, fmt.Errorf("EstimateJumpParameters: failed to calculate standard deviation: %w", err)
	}

	var jumps []float64
	for _, r := range returns {
		if math.Abs(r-mean) > threshold*stdev {
			jumps = append(jumps, r)
		}
	}

	if len(jumps) == 0 {
		return JumpParams{}, fmt.Errorf("EstimateJumpParameters: no jumps beyond %.1f standard deviations: %w", threshold, eventmodels.ErrDataUnavailable)
	}

	years := float64(len(returns)) / TradingDaysPerYear

	jumpMean, err := stats.Mean(jumps)
	if err != nil {
		return JumpParams{}, fmt.Errorf("EstimateJumpParameters: failed to calculate jump mean: %w", err)
	}

	jumpStdev, err := stats.StandardDeviation(jumps)
	if err != nil {
		return JumpParams{}, fmt.Errorf("EstimateJumpParameters: failed to calculate jump standard deviation: %w", err)
	}

	return JumpParams{
		Intensity: float64(len(jumps)) / years,
		Mean:      jumpMean,
		StdDev:    jumpStdev,
	}, nil
}
