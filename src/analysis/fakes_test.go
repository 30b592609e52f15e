package analysis

import (
	"context"
	"time"

	"github.com/jiaming2012/options-analyzer/src/eventmodels"
)

type fakeProvider struct {
	spot        float64
	spotErr     error
	quote       *eventmodels.OptionQuote
	chains      map[string]eventmodels.OptionChain
	chainErr    error
	expirations []time.Time
}

func newFakeProvider(spot float64) *fakeProvider {
	return &fakeProvider{
		spot:   spot,
		chains: map[string]eventmodels.OptionChain{},
	}
}

func (f *fakeProvider) FetchUnderlyingPrice(ctx context.Context, symbol eventmodels.StockSymbol) (float64, error) {
	return f.spot, f.spotErr
}

func (f *fakeProvider) FetchOptionQuote(ctx context.Context, contract eventmodels.OptionSymbol) (*eventmodels.OptionQuote, error) {
	if f.quote == nil {
		return nil, eventmodels.ErrDataUnavailable
	}
	return f.quote, nil
}

func (f *fakeProvider) FetchOptionChain(ctx context.Context, underlying eventmodels.StockSymbol, optionType eventmodels.OptionType, expiration time.Time) (eventmodels.OptionChain, error) {
	if f.chainErr != nil {
		return nil, f.chainErr
	}
	return f.chains[expiration.Format("2006-01-02")], nil
}

func (f *fakeProvider) FetchExpirations(ctx context.Context, underlying eventmodels.StockSymbol) ([]time.Time, error) {
	return f.expirations, nil
}

type fakeRates struct {
	percent float64
	err     error
}

func (f fakeRates) FetchRiskFreeRate(ctx context.Context) (float64, error) {
	return f.percent, f.err
}

type fakeCalendar struct {
	days []time.Time
}

func (f fakeCalendar) BusinessDays(ctx context.Context, start, end time.Time) ([]time.Time, error) {
	return f.days, nil
}

type fakeHistory struct {
	closes []float64
}

func (f fakeHistory) FetchDailyCloses(ctx context.Context, symbol eventmodels.StockSymbol, from, to time.Time) ([]float64, error) {
	return f.closes, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func clock(t time.Time) AnalyzerOption {
	return WithClock(func() time.Time { return t })
}
