package eventmodels

import (
	"fmt"
	"math"
	"time"
)

type OptionChainRow struct {
	Symbol            OptionSymbol `json:"symbol"`
	Strike            float64      `json:"strike"`
	LastPrice         float64      `json:"last_price"`
	ImpliedVolatility float64      `json:"implied_volatility"`
	Volume            float64      `json:"volume"`
	OptionType        OptionType   `json:"option_type"`
	Expiration        time.Time    `json:"expiration"`
}

// OptionChain keeps the order in which the provider returned the rows.
type OptionChain []OptionChainRow

func (c OptionChain) Strikes() []float64 {
	out := make([]float64, len(c))
	for i, row := range c {
		out[i] = row.Strike
	}
	return out
}

func (c OptionChain) Volumes() []float64 {
	out := make([]float64, len(c))
	for i, row := range c {
		out[i] = row.Volume
	}
	return out
}

func (c OptionChain) ImpliedVolatilities() []float64 {
	out := make([]float64, len(c))
	for i, row := range c {
		out[i] = row.ImpliedVolatility
	}
	return out
}

// Filter returns the rows for which keep is true, preserving order.
func (c OptionChain) Filter(keep func(row OptionChainRow) bool) OptionChain {
	out := OptionChain{}
	for _, row := range c {
		if keep(row) {
			out = append(out, row)
		}
	}
	return out
}

// FilterByStrike keeps rows with lower <= strike <= upper.
func (c OptionChain) FilterByStrike(lower, upper float64) OptionChain {
	return c.Filter(func(row OptionChainRow) bool {
		return row.Strike >= lower && row.Strike <= upper
	})
}

// Validate reports ErrMalformedChain when a row cannot be used as chain data.
func (c OptionChain) Validate() error {
	for i, row := range c {
		if row.Symbol == "" {
			return fmt.Errorf("OptionChain.Validate: row %d has no symbol: %w", i, ErrMalformedChain)
		}

		for name, v := range map[string]float64{
			"strike":             row.Strike,
			"last price":         row.LastPrice,
			"implied volatility": row.ImpliedVolatility,
			"volume":             row.Volume,
		} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("OptionChain.Validate: row %d (%s) %s is not finite: %w", i, row.Symbol, name, ErrMalformedChain)
			}
		}
	}

	return nil
}
