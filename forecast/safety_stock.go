package forecast

import "stocksmart/models"

const (
	// ServiceLevelZ is the one-sided z-score for a 95% service level.
	ServiceLevelZ = 1.645

	// ConfidenceZ is the two-sided z-score for a 95% confidence band.
	ConfidenceZ = 1.96
)

// MeanMonthlyStd averages the defined monthly standard deviations. Months with
// fewer than two sales are ignored; with none left the result is 0.
func MeanMonthlyStd(months []models.MonthlyAggregate) float64 {
	var stds []float64
	for _, m := range months {
		if m.StdDefined {
			stds = append(stds, m.StdDev)
		}
	}
	return mean(stds)
}

// SafetyStock sizes the buffer held on top of predicted demand.
func SafetyStock(months []models.MonthlyAggregate) float64 {
	return MeanMonthlyStd(months) * ServiceLevelZ
}
