package eventservices

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/jiaming2012/options-analyzer/src/eventmodels"
)

// CachedMarketDataProvider memoises successful answers from another provider for a TTL.
// Errors are never cached.
type CachedMarketDataProvider struct {
	inner MarketDataProvider
	cache *cache.Cache
}

func (p *CachedMarketDataProvider) FetchUnderlyingPrice(ctx context.Context, symbol eventmodels.StockSymbol) (float64, error) {
	key := "price:" + symbol.String()
	if v, found := p.cache.Get(key); found {
		return v.(float64), nil
	}

	price, err := p.inner.FetchUnderlyingPrice(ctx, symbol)
	if err != nil {
		return 0, err
	}

	p.cache.SetDefault(key, price)
	return price, nil
}

func (p *CachedMarketDataProvider) FetchOptionQuote(ctx context.Context, contract eventmodels.OptionSymbol) (*eventmodels.OptionQuote, error) {
	key := "quote:" + contract.String()
	if v, found := p.cache.Get(key); found {
		quote := *v.(*eventmodels.OptionQuote)
		return &quote, nil
	}

	quote, err := p.inner.FetchOptionQuote(ctx, contract)
	if err != nil {
		return nil, err
	}

	stored := *quote
	p.cache.SetDefault(key, &stored)
	return quote, nil
}

func (p *CachedMarketDataProvider) FetchOptionChain(ctx context.Context, underlying eventmodels.StockSymbol, optionType eventmodels.OptionType, expiration time.Time) (eventmodels.OptionChain, error) {
	key := fmt.Sprintf("chain:%s:%s:%s", underlying, optionType, expiration.Format("2006-01-02"))
	if v, found := p.cache.Get(key); found {
		return append(eventmodels.OptionChain{}, v.(eventmodels.OptionChain)...), nil
	}

	chain, err := p.inner.FetchOptionChain(ctx, underlying, optionType, expiration)
	if err != nil {
		return nil, err
	}

	p.cache.SetDefault(key, append(eventmodels.OptionChain{}, chain...))
	return chain, nil
}

func (p *CachedMarketDataProvider) FetchExpirations(ctx context.Context, underlying eventmodels.StockSymbol) ([]time.Time, error) {
	key := "expirations:" + underlying.String()
	if v, found := p.cache.Get(key); found {
		return append([]time.Time{}, v.([]time.Time)...), nil
	}

	expirations, err := p.inner.FetchExpirations(ctx, underlying)
	if err != nil {
		return nil, err
	}

	p.cache.SetDefault(key, append([]time.Time{}, expirations...))
	return expirations, nil
}

// NewCachedMarketDataProvider wraps inner. A non-positive ttl disables caching and
// returns inner unchanged.
func NewCachedMarketDataProvider(inner MarketDataProvider, ttl time.Duration) MarketDataProvider {
	if ttl <= 0 {
		return inner
	}

	return &CachedMarketDataProvider{
		inner: inner,
		cache: cache.New(ttl, 2*ttl),
	}
}
