package calendar

import (
	"context"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/aa"
	"github.com/rickar/cal/v2/us"
)

// marketHolidays are the full-day US equity market closures.
var marketHolidays = []*cal.Holiday{
	us.NewYear,
	us.MlkDay,
	us.PresidentsDay,
	aa.GoodFriday,
	us.MemorialDay,
	us.Juneteenth,
	us.IndependenceDay,
	us.LaborDay,
	us.ThanksgivingDay,
	us.ChristmasDay,
}

type USMarketCalendar struct {
	calendar *cal.BusinessCalendar
	extra    map[time.Time]struct{}
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (c *USMarketCalendar) IsBusinessDay(t time.Time) bool {
	date := truncateToDate(t)
	if _, found := c.extra[date]; found {
		return false
	}

	return c.calendar.IsWorkday(date)
}

// BusinessDays lists every business day in [start, end], both ends included.
func (c *USMarketCalendar) BusinessDays(ctx context.Context, start, end time.Time) ([]time.Time, error) {
	var days []time.Time
	last := truncateToDate(end)
	for d := truncateToDate(start); !d.After(last); d = d.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if c.IsBusinessDay(d) {
			days = append(days, d)
		}
	}

	return days, nil
}

func NewUSMarketCalendar(extraHolidays []time.Time) *USMarketCalendar {
	c := cal.NewBusinessCalendar()
	c.AddHoliday(marketHolidays...)

	extra := make(map[time.Time]struct{}, len(extraHolidays))
	for _, h := range extraHolidays {
		extra[truncateToDate(h)] = struct{}{}
	}

	return &USMarketCalendar{
		calendar: c,
		extra:    extra,
	}
}
