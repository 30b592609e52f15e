package eventmodels

import (
	"fmt"
	"math"
	"time"
)

// ProfitabilitySurface maps (future underlying price, business date) to a projected option value.
// Values is indexed [price level][date]; every cell is populated.
type ProfitabilitySurface struct {
	Contract          OptionSymbol
	PriceLevels       []float64
	Dates             []time.Time
	Values            [][]float64
	Interpolated      []bool
	CurrentModelPrice float64
	LastPrice         float64
	BaselineDiffRatio float64
}

func (s *ProfitabilitySurface) priceIndex(price float64) (int, bool) {
	for i, p := range s.PriceLevels {
		if math.Abs(p-price) < 1e-9 {
			return i, true
		}
	}
	return -1, false
}

func (s *ProfitabilitySurface) dateIndex(date time.Time) (int, bool) {
	y, m, d := date.Date()
	for i, dt := range s.Dates {
		yy, mm, dd := dt.Date()
		if yy == y && mm == m && dd == d {
			return i, true
		}
	}
	return -1, false
}

// Value returns the projected value at the given cell.
func (s *ProfitabilitySurface) Value(price float64, date time.Time) (float64, bool) {
	i, ok := s.priceIndex(price)
	if !ok {
		return 0, false
	}

	j, ok := s.dateIndex(date)
	if !ok {
		return 0, false
	}

	return s.Values[i][j], true
}

// ChangePercent expresses a cell relative to the last traded price.
func (s *ProfitabilitySurface) ChangePercent(value float64) (float64, error) {
	if s.LastPrice == 0 || math.IsNaN(s.LastPrice) || math.IsInf(s.LastPrice, 0) {
		return 0, fmt.Errorf("ProfitabilitySurface.ChangePercent: last price %v: %w", s.LastPrice, ErrDegenerateInput)
	}

	return (value - s.LastPrice) / s.LastPrice * 100, nil
}

// Range returns the lowest and highest projected values.
func (s *ProfitabilitySurface) Range() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, row := range s.Values {
		for _, v := range row {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	return lo, hi
}

func (s *ProfitabilitySurface) ToCSVRows() []*ProfitabilitySurfaceCSVRow {
	rows := make([]*ProfitabilitySurfaceCSVRow, 0, len(s.PriceLevels)*len(s.Dates))
	for j, date := range s.Dates {
		for i, price := range s.PriceLevels {
			rows = append(rows, &ProfitabilitySurfaceCSVRow{
				Date:         date.Format("2006-01-02"),
				Price:        price,
				Value:        s.Values[i][j],
				Interpolated: s.Interpolated[i],
			})
		}
	}
	return rows
}

func (s *ProfitabilitySurface) ToDTO() *ProfitabilitySurfaceDTO {
	dates := make([]string, len(s.Dates))
	for i, d := range s.Dates {
		dates[i] = d.Format("2006-01-02")
	}

	return &ProfitabilitySurfaceDTO{
		Contract:          s.Contract.String(),
		PriceLevels:       s.PriceLevels,
		Dates:             dates,
		Values:            s.Values,
		Interpolated:      s.Interpolated,
		CurrentModelPrice: s.CurrentModelPrice,
		LastPrice:         s.LastPrice,
		BaselineDiffRatio: s.BaselineDiffRatio,
	}
}

type ProfitabilitySurfaceCSVRow struct {
	Date         string  `csv:"date"`
	Price        float64 `csv:"price"`
	Value        float64 `csv:"value"`
	Interpolated bool    `csv:"interpolated"`
}

type ProfitabilitySurfaceDTO struct {
	Contract          string      `json:"contract"`
	PriceLevels       []float64   `json:"price_levels"`
	Dates             []string    `json:"dates"`
	Values            [][]float64 `json:"values"`
	Interpolated      []bool      `json:"interpolated"`
	CurrentModelPrice float64     `json:"current_model_price"`
	LastPrice         float64     `json:"last_price"`
	BaselineDiffRatio float64     `json:"baseline_diff_ratio"`
}
