package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
)

// percentile returns the p-th percentile of values, interpolating linearly between the two
// closest ranks at position p/100*(n-1).
func percentile(values []float64, p float64) (float64, error) {
	if len(values) == 0 {
		return 0, fmt.Errorf("percentile: %w", stats.ErrEmptyInput)
	}

	if p < 0 || p > 100 {
		return 0, fmt.Errorf("percentile: %v: %w", p, stats.ErrBounds)
	}

	if p == 50 {
		return stats.Median(values)
	}

	sorted := make(stats.Float64Data, len(values))
	copy(sorted, values)
	sort.Sort(sorted)

	pos := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))

	return sorted[lo] + (pos-float64(lo))*(sorted[hi]-sorted[lo]), nil
}
