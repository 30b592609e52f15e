package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestUSMarketCalendar(t *testing.T) {
	c := NewUSMarketCalendar(nil)
	ctx := context.Background()

	t.Run("weekends are skipped and both ends are included", func(t *testing.T) {
		days, err := c.BusinessDays(ctx, date(2024, time.June, 6), date(2024, time.June, 11))
		require.NoError(t, err)
		assert.Equal(t, []time.Time{
			date(2024, time.June, 6),
			date(2024, time.June, 7),
			date(2024, time.June, 10),
			date(2024, time.June, 11),
		}, days)
	})

	t.Run("market holidays are skipped", func(t *testing.T) {
		assert.False(t, c.IsBusinessDay(date(2024, time.July, 4)))
		assert.False(t, c.IsBusinessDay(date(2024, time.December, 25)))
		assert.False(t, c.IsBusinessDay(date(2024, time.March, 29)))
		assert.True(t, c.IsBusinessDay(date(2024, time.July, 5)))
	})

	t.Run("time of day is ignored", func(t *testing.T) {
		days, err := c.BusinessDays(ctx, date(2024, time.June, 7).Add(15*time.Hour), date(2024, time.June, 7))
		require.NoError(t, err)
		assert.Equal(t, []time.Time{date(2024, time.June, 7)}, days)
	})

	t.Run("end before start is empty", func(t *testing.T) {
		days, err := c.BusinessDays(ctx, date(2024, time.June, 11), date(2024, time.June, 6))
		require.NoError(t, err)
		assert.Len(t, days, 0)
	})

	t.Run("extra holidays", func(t *testing.T) {
		withExtra := NewUSMarketCalendar([]time.Time{date(2024, time.June, 10).Add(9 * time.Hour)})
		days, err := withExtra.BusinessDays(ctx, date(2024, time.June, 7), date(2024, time.June, 11))
		require.NoError(t, err)
		assert.Equal(t, []time.Time{date(2024, time.June, 7), date(2024, time.June, 11)}, days)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := c.BusinessDays(cancelled, date(2024, time.June, 6), date(2024, time.June, 11))
		assert.ErrorIs(t, err, context.Canceled)
	})
}
