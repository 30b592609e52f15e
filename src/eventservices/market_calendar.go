package eventservices

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/options-analyzer/src/eventmodels"
)

type marketCalendarFetcher interface {
	FetchMarketCalendar(ctx context.Context, year int, month time.Month) (*eventmodels.MarketCalendar, error)
}

// TradierMarketCalendar derives business days from the exchange calendar published by
// tradier, so early closes and ad hoc closures are honoured.
type TradierMarketCalendar struct {
	fetcher marketCalendarFetcher
}

func (c *TradierMarketCalendar) BusinessDays(ctx context.Context, start, end time.Time) ([]time.Time, error) {
	first := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)

	var days []time.Time
	for month := time.Date(first.Year(), first.Month(), 1, 0, 0, 0, 0, time.UTC); !month.After(last); month = month.AddDate(0, 1, 0) {
		log.Debugf("TradierMarketCalendar: fetching market calendar for %v", month.Format("2006-01"))

		calendar, err := c.fetcher.FetchMarketCalendar(ctx, month.Year(), month.Month())
		if err != nil {
			return nil, fmt.Errorf("TradierMarketCalendar.BusinessDays: %w", err)
		}

		openDays, err := calendar.OpenDays()
		if err != nil {
			return nil, fmt.Errorf("TradierMarketCalendar.BusinessDays: %w", err)
		}

		for _, d := range openDays {
			if !d.Before(first) && !d.After(last) {
				days = append(days, d)
			}
		}
	}

	return days, nil
}

func NewTradierMarketCalendar(client *TradierClient) *TradierMarketCalendar {
	return &TradierMarketCalendar{fetcher: client}
}
