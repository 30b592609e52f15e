package eventservices

import (
	"context"
	"fmt"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/options-analyzer/src/eventmodels"
)

// DailyClosesFetcher returns daily closing prices for ticker in [from, to], oldest first.
type DailyClosesFetcher func(ctx context.Context, ticker string, from, to time.Time) ([]float64, error)

func NewPolygonDailyClosesFetcher(apiKey string) DailyClosesFetcher {
	client := polygon.New(apiKey)

	return func(ctx context.Context, ticker string, from, to time.Time) ([]float64, error) {
		log.Debugf("fetching polygon daily aggregates for %s from %s to %s", ticker, from.Format("2006-01-02"), to.Format("2006-01-02"))

		params := models.ListAggsParams{
			Ticker:     ticker,
			Multiplier: 1,
			Timespan:   models.Day,
			From:       models.Millis(from),
			To:         models.Millis(to),
		}.WithOrder(models.Asc).WithAdjusted(true)

		iter := client.ListAggs(ctx, params)

		var closes []float64
		for iter.Next() {
			closes = append(closes, iter.Item().Close)
		}

		if err := iter.Err(); err != nil {
			return nil, fmt.Errorf("polygon ListAggs %s: %w", ticker, err)
		}

		return closes, nil
	}
}

// PolygonMarketData serves daily history and the risk-free rate from polygon aggregates.
// The rate comes from the last close of a treasury yield index such as I:IRX.
type PolygonMarketData struct {
	fetchCloses  DailyClosesFetcher
	rateTicker   string
	rateLookback time.Duration
	now          func() time.Time
}

func (p *PolygonMarketData) FetchDailyCloses(ctx context.Context, symbol eventmodels.StockSymbol, from, to time.Time) ([]float64, error) {
	closes, err := p.fetchCloses(ctx, symbol.String(), from, to)
	if err != nil {
		return nil, fmt.Errorf("PolygonMarketData.FetchDailyCloses: %w", err)
	}

	if len(closes) == 0 {
		return nil, fmt.Errorf("PolygonMarketData.FetchDailyCloses: no bars for %s: %w", symbol, eventmodels.ErrDataUnavailable)
	}

	return closes, nil
}

func (p *PolygonMarketData) FetchRiskFreeRate(ctx context.Context) (float64, error) {
	now := p.now()

	closes, err := p.fetchCloses(ctx, p.rateTicker, now.Add(-p.rateLookback), now)
	if err != nil {
		return 0, fmt.Errorf("PolygonMarketData.FetchRiskFreeRate: %w", err)
	}

	if len(closes) == 0 {
		return 0, fmt.Errorf("PolygonMarketData.FetchRiskFreeRate: no bars for %s: %w", p.rateTicker, eventmodels.ErrDataUnavailable)
	}

	return closes[len(closes)-1], nil
}

func NewPolygonMarketData(fetchCloses DailyClosesFetcher, rateTicker string, now func() time.Time) *PolygonMarketData {
	return &PolygonMarketData{
		fetchCloses:  fetchCloses,
		rateTicker:   rateTicker,
		rateLookback: 10 * 24 * time.Hour,
		now:          now,
	}
}

// StaticRiskFreeRate always answers with the configured percent.
type StaticRiskFreeRate struct {
	Percent float64
}

func (s StaticRiskFreeRate) FetchRiskFreeRate(ctx context.Context) (float64, error) {
	return s.Percent, nil
}
