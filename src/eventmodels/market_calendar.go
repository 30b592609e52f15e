package eventmodels

import (
	"fmt"
	"time"
)

type MarketCalendarDayDTO struct {
	Date        string `json:"date"`
	Status      string `json:"status"`
	Description string `json:"description"`
	Open        struct {
		Start string `json:"start"`
		End   string `json:"end"`
	} `json:"open"`
}

type MarketCalendar struct {
	Calendar struct {
		Month int `json:"month"`
		Year  int `json:"year"`
		Days  struct {
			Day []MarketCalendarDayDTO `json:"day"`
		} `json:"days"`
	} `json:"calendar"`
}

// OpenDays returns the dates tradier marks as open, in calendar order.
func (c *MarketCalendar) OpenDays() ([]time.Time, error) {
	var out []time.Time
	for _, day := range c.Calendar.Days.Day {
		if day.Status != "open" {
			continue
		}

		dt, err := time.Parse("2006-01-02", day.Date)
		if err != nil {
			return nil, fmt.Errorf("MarketCalendar.OpenDays: failed to parse %q: %w", day.Date, err)
		}

		out = append(out, dt)
	}

	return out, nil
}
