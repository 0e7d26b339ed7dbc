// Package forecast turns sale line items into next-month stock predictions and
// demand tiers.
//
// The package is a pure batch computation over an immutable snapshot of
// models.SaleRecord values. It never reads the clock, configuration or any
// store: the as-of date is always passed in by the caller.
//
// Pipeline:
//
//	records -> Aggregate -> monthly series -> Trend / SeasonalFactor / SafetyStock -> Forecaster
//	records -> per-product totals -> Classify
//
// Per-product forecast failures are collected into ForecastResult.Skipped and
// never abort a run. Invalid input aborts both Forecast and Classify with an
// *InvalidInputError.
package forecast
