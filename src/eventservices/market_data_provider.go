package eventservices

import (
	"context"
	"time"

	"github.com/jiaming2012/options-analyzer/src/eventmodels"
)

type MarketDataProvider interface {
	FetchUnderlyingPrice(ctx context.Context, symbol eventmodels.StockSymbol) (float64, error)
	FetchOptionQuote(ctx context.Context, contract eventmodels.OptionSymbol) (*eventmodels.OptionQuote, error)
	FetchOptionChain(ctx context.Context, underlying eventmodels.StockSymbol, optionType eventmodels.OptionType, expiration time.Time) (eventmodels.OptionChain, error)
	FetchExpirations(ctx context.Context, underlying eventmodels.StockSymbol) ([]time.Time, error)
}

// RiskFreeRateProvider returns the annual risk-free rate in percent, e.g. 5.25.
type RiskFreeRateProvider interface {
	FetchRiskFreeRate(ctx context.Context) (float64, error)
}

// BusinessDayProvider lists trading days in [start, end], both ends included.
type BusinessDayProvider interface {
	BusinessDays(ctx context.Context, start, end time.Time) ([]time.Time, error)
}

type HistoricalPriceProvider interface {
	FetchDailyCloses(ctx context.Context, symbol eventmodels.StockSymbol, from, to time.Time) ([]float64, error)
}
