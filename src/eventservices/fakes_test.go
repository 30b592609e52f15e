package eventservices

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
	calls       map[string]int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		chains: map[string]eventmodels.OptionChain{},
		calls:  map[string]int{},
	}
}

func (f *fakeProvider) FetchUnderlyingPrice(ctx context.Context, symbol eventmodels.StockSymbol) (float64, error) {
	f.calls["price"]++
	return f.spot, f.spotErr
}

func (f *fakeProvider) FetchOptionQuote(ctx context.Context, contract eventmodels.OptionSymbol) (*eventmodels.OptionQuote, error) {
	f.calls["quote"]++
	if f.quote == nil {
		return nil, eventmodels.ErrDataUnavailable
	}
	return f.quote, nil
}

func (f *fakeProvider) FetchOptionChain(ctx context.Context, underlying eventmodels.StockSymbol, optionType eventmodels.OptionType, expiration time.Time) (eventmodels.OptionChain, error) {
	f.calls["chain"]++
	if f.chainErr != nil {
		return nil, f.chainErr
	}
	return f.chains[expiration.Format("2006-01-02")], nil
}

func (f *fakeProvider) FetchExpirations(ctx context.Context, underlying eventmodels.StockSymbol) ([]time.Time, error) {
	f.calls["expirations"]++
	return f.expirations, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
