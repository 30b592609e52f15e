package eventmodels

import "time"

// OptionQuote is the market view of a single contract.
type OptionQuote struct {
	Symbol            OptionSymbol
	Underlying        StockSymbol
	LastPrice         float64
	Bid               float64
	Ask               float64
	Volume            int
	ImpliedVolatility float64 // fraction, e.g. 0.20
	ExpirationDate    time.Time
}
