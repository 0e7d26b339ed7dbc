package forecast

import "stocksmart/models"

// Trend is the least-squares slope of totals against their index 0..n-1.
// A single observation carries no trend and yields 0.
func Trend(totals []float64) float64 {
	n := len(totals)
	if n < 2 {
		return 0
	}
	xMean := float64(n-1) / 2
	yMean := mean(totals)

	var sxy, sxx float64
	for i, y := range totals {
		dx := float64(i) - xMean
		sxy += dx * (y - yMean)
		sxx += dx * dx
	}
	return sxy / sxx
}

// Label maps a slope to its trend label. Only an exact zero is Stable.
func Label(trend float64) models.TrendLabel {
	switch {
	case trend > 0:
		return models.TrendIncreasing
	case trend < 0:
		return models.TrendDecreasing
	default:
		return models.TrendStable
	}
}
