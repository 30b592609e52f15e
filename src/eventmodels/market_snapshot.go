package eventmodels

import (
	"fmt"
	"math"
	"time"
)

// MarketSnapshot holds everything needed to value one contract at one instant.
// It is built per evaluation and never mutated afterwards.
type MarketSnapshot struct {
	Contract          OptionSymbol
	Underlying        StockSymbol
	Spot              float64
	Strike            float64
	Expiration        time.Time
	DaysToExpiry      int
	TimeToMaturity    float64 // years
	RiskFreeRate      float64 // decimal, e.g. 0.05
	ImpliedVolatility float64 // fraction
	OptionType        OptionType
	LastPrice         float64
	FetchedAt         time.Time
}

func (s *MarketSnapshot) Validate() error {
	if err := s.OptionType.Validate(); err != nil {
		return fmt.Errorf("MarketSnapshot.Validate: %w", err)
	}

	for name, v := range map[string]float64{
		"spot":               s.Spot,
		"strike":             s.Strike,
		"risk free rate":     s.RiskFreeRate,
		"implied volatility": s.ImpliedVolatility,
		"last price":         s.LastPrice,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("MarketSnapshot.Validate: %s is not finite: %w", name, ErrDataUnavailable)
		}
	}

	if s.Spot <= 0 {
		return fmt.Errorf("MarketSnapshot.Validate: spot must be positive, got %v: %w", s.Spot, ErrDataUnavailable)
	}

	if s.Strike <= 0 {
		return fmt.Errorf("MarketSnapshot.Validate: strike must be positive, got %v: %w", s.Strike, ErrDataUnavailable)
	}

	return nil
}
