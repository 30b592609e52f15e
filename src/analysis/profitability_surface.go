package analysis

import (
	"context"
	"fmt"
	"math"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jiaming2012/options-analyzer/src/eventmodels"
	"github.com/jiaming2012/options-analyzer/src/eventservices"
	"github.com/jiaming2012/options-analyzer/src/pricing"
)

// PriceLevels centres a grid of step sized levels on spot rounded half-to-even to the
// nearest step. The grid spans half of (high - low) on either side; a band narrower than
// one step collapses to the single centre level.
func PriceLevels(spot, expectedLow, expectedHigh, step float64) ([]float64, error) {
	for _, v := range []float64{spot, expectedLow, expectedHigh, step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("PriceLevels: non-finite input: %w", eventmodels.ErrDegenerateInput)
		}
	}

	if step <= 0 {
		return nil, fmt.Errorf("PriceLevels: step must be positive: %w", eventmodels.ErrDegenerateInput)
	}

	if expectedHigh < expectedLow {
		return nil, fmt.Errorf("PriceLevels: expected high %v below expected low %v: %w", expectedHigh, expectedLow, eventmodels.ErrDegenerateInput)
	}

	mid := math.RoundToEven(spot/step) * step
	halfWidth := (expectedHigh - expectedLow) / 2
	n := int(math.Floor(halfWidth/step + 1e-9))

	levels := make([]float64, 0, 2*n+1)
	for k := -n; k <= n; k++ {
		levels = append(levels, mid+float64(k)*step)
	}

	return levels, nil
}

// surfaceInputs are the values held fixed across the whole grid.
type surfaceInputs struct {
	strike            float64
	expiration        time.Time
	rate              float64
	sigma             float64
	optionType        eventmodels.OptionType
	lastPrice         float64
	currentModelPrice float64
	dayCountBasis     float64
}

func (in surfaceInputs) adjustedValue(level float64, date time.Time) float64 {
	t := eventmodels.YearFraction(eventmodels.DaysBetween(date, in.expiration), in.dayCountBasis)
	bs := pricing.BlackScholes(level, in.strike, t, in.rate, in.sigma, in.optionType)
	return in.lastPrice * (1 + (bs-in.currentModelPrice)/in.currentModelPrice)
}

// fillSurface computes even offset rows directly and then reconstructs each odd offset row
// as the mean of its two direct neighbours.
func fillSurface(levels []float64, dates []time.Time, in surfaceInputs) ([][]float64, []bool) {
	values := make([][]float64, len(levels))
	interpolated := make([]bool, len(levels))

	for i, level := range levels {
		if i%2 == 1 {
			continue
		}

		row := make([]float64, len(dates))
		for j, date := range dates {
			row[j] = in.adjustedValue(level, date)
		}
		values[i] = row
	}

	for i := 1; i < len(levels); i += 2 {
		row := make([]float64, len(dates))
		for j := range dates {
			row[j] = (values[i-1][j] + values[i+1][j]) / 2
		}
		values[i] = row
		interpolated[i] = true
	}

	return values, interpolated
}

func (a *Analyzer) BuildSurface(ctx context.Context, contract eventmodels.OptionSymbol, expectedLow, expectedHigh float64) (*eventmodels.ProfitabilitySurface, error) {
	tracer := otel.Tracer("Analyzer")
	ctx, span := tracer.Start(ctx, "Analyzer.BuildSurface")
	defer span.End()

	logger := log.WithContext(ctx)
	now := a.now()
	basis := a.config.Profitability.DayCountBasis

	snapshot, err := eventservices.FetchMarketSnapshot(ctx, a.provider, a.rates, contract, now, basis)
	if err != nil {
		return nil, fmt.Errorf("BuildSurface: %w", err)
	}

	currentModelPrice := pricing.BlackScholes(snapshot.Spot, snapshot.Strike, snapshot.TimeToMaturity, snapshot.RiskFreeRate, snapshot.ImpliedVolatility, snapshot.OptionType)
	if currentModelPrice == 0 || math.IsNaN(currentModelPrice) || math.IsInf(currentModelPrice, 0) {
		return nil, fmt.Errorf("BuildSurface: current model price is %v: %w", currentModelPrice, eventmodels.ErrDegenerateInput)
	}

	levels, err := PriceLevels(snapshot.Spot, expectedLow, expectedHigh, a.config.Profitability.PriceStep)
	if err != nil {
		return nil, fmt.Errorf("BuildSurface: %w", err)
	}

	dates, err := a.calendar.BusinessDays(ctx, now, snapshot.Expiration)
	if err != nil {
		return nil, fmt.Errorf("BuildSurface: failed to fetch business days: %w", err)
	}

	if len(dates) == 0 {
		return nil, fmt.Errorf("BuildSurface: no business days between %s and %s: %w", now.Format("2006-01-02"), snapshot.Expiration.Format("2006-01-02"), eventmodels.ErrDataUnavailable)
	}

	values, interpolated := fillSurface(levels, dates, surfaceInputs{
		strike:            snapshot.Strike,
		expiration:        snapshot.Expiration,
		rate:              snapshot.RiskFreeRate,
		sigma:             snapshot.ImpliedVolatility,
		optionType:        snapshot.OptionType,
		lastPrice:         snapshot.LastPrice,
		currentModelPrice: currentModelPrice,
		dayCountBasis:     basis,
	})

	span.SetAttributes(
		attribute.String("contract", contract.String()),
		attribute.Int("priceLevels", len(levels)),
		attribute.Int("dates", len(dates)),
	)

	logger.Debugf("BuildSurface: %s %d price levels x %d dates", contract, len(levels), len(dates))

	return &eventmodels.ProfitabilitySurface{
		Contract:          snapshot.Contract,
		PriceLevels:       levels,
		Dates:             dates,
		Values:            values,
		Interpolated:      interpolated,
		CurrentModelPrice: currentModelPrice,
		LastPrice:         snapshot.LastPrice,
		BaselineDiffRatio: (snapshot.LastPrice - currentModelPrice) / currentModelPrice,
	}, nil
}
