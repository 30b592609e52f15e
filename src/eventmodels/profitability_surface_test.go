package eventmodels

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfitabilitySurface(t *testing.T) {
	d1 := time.Date(2024, time.June, 17, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, time.June, 18, 0, 0, 0, 0, time.UTC)

	surface := &ProfitabilitySurface{
		Contract:     "SPY240621C00450000",
		PriceLevels:  []float64{99.5, 100, 100.5},
		Dates:        []time.Time{d1, d2},
		Values:       [][]float64{{1, 0.8}, {1.5, 1.2}, {2, 1.6}},
		Interpolated: []bool{false, true, false},
		LastPrice:    2,
	}

	t.Run("value lookup ignores time of day", func(t *testing.T) {
		v, ok := surface.Value(100, d2.Add(10*time.Hour))
		assert.True(t, ok)
		assert.Equal(t, 1.2, v)

		_, ok = surface.Value(101, d1)
		assert.False(t, ok)
	})

	t.Run("change percent", func(t *testing.T) {
		pct, err := surface.ChangePercent(3)
		require.NoError(t, err)
		assert.InDelta(t, 50.0, pct, 1e-9)

		zero := &ProfitabilitySurface{}
		_, err = zero.ChangePercent(1)
		assert.True(t, errors.Is(err, ErrDegenerateInput))
	})

	t.Run("range", func(t *testing.T) {
		lo, hi := surface.Range()
		assert.Equal(t, 0.8, lo)
		assert.Equal(t, 2.0, hi)
	})

	t.Run("csv rows are date major", func(t *testing.T) {
		rows := surface.ToCSVRows()
		require.Len(t, rows, 6)
		assert.Equal(t, "2024-06-17", rows[0].Date)
		assert.Equal(t, 99.5, rows[0].Price)
		assert.True(t, rows[1].Interpolated)
		assert.Equal(t, "2024-06-18", rows[3].Date)
		assert.Equal(t, 1.6, rows[5].Value)
	})

	t.Run("dto", func(t *testing.T) {
		dto := surface.ToDTO()
		assert.Equal(t, []string{"2024-06-17", "2024-06-18"}, dto.Dates)
		assert.Equal(t, "SPY240621C00450000", dto.Contract)
	})
}
