package forecast

import (
	"fmt"
	"time"

	"stocksmart/models"
)

// MinSeasonalMonths is the history length needed before seasonal factors are used.
const MinSeasonalMonths = 12

// SeasonalFactor returns the ratio of the average quantity per sale in the
// target calendar month to the average quantity per sale over the whole history.
// Histories shorter than MinSeasonalMonths, and targets never seen in history,
// are neutral (1.0).
func SeasonalFactor(months []models.MonthlyAggregate, target time.Month) (float64, error) {
	if len(months) < MinSeasonalMonths {
		return 1.0, nil
	}

	var sums [13]float64
	var counts [13]int
	var total float64
	var n int
	for _, m := range months {
		sums[m.Month.Month] += m.Sum
		counts[m.Month.Month] += m.Count
		total += m.Sum
		n += m.Count
	}
	if n == 0 {
		return 0, fmt.Errorf("%w: no sales in history", ErrDegenerate)
	}
	overall := total / float64(n)
	if overall == 0 {
		return 0, fmt.Errorf("%w: overall mean quantity is zero", ErrDegenerate)
	}
	if counts[target] == 0 {
		return 1.0, nil
	}
	return (sums[target] / float64(counts[target])) / overall, nil
}

// NextMonth is the calendar month after the one asOf falls in.
func NextMonth(asOf time.Time) models.MonthKey {
	return models.MonthOf(asOf).Next()
}
