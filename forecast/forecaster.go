package forecast

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"stocksmart/models"
)

// DefaultWorkers is the number of products forecast concurrently.
const DefaultWorkers = 4

// maxStock is 2^63 on 64-bit platforms; stock counts at or above it do not fit an int.
const maxStock = float64(math.MaxInt)

// Forecaster predicts next-month demand per product.
type Forecaster struct {
	workers int
}

// Option configures a Forecaster.
type Option func(*Forecaster)

// WithWorkers bounds the number of products forecast in parallel.
func WithWorkers(n int) Option {
	return func(f *Forecaster) {
		if n > 0 {
			f.workers = n
		}
	}
}

// NewForecaster creates a Forecaster.
func NewForecaster(opts ...Option) *Forecaster {
	f := &Forecaster{workers: DefaultWorkers}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

type outcome struct {
	forecast models.Forecast
	err      error
}

// Forecast predicts demand for the calendar month following asOf. Invalid
// records fail the whole call; a product whose statistics are unusable is
// reported in Skipped. When no product can be forecast the result has
// InsufficientData set.
func (f *Forecaster) Forecast(records []models.SaleRecord, asOf time.Time) (*models.ForecastResult, error) {
	if err := ValidateRecords(records); err != nil {
		return nil, err
	}

	target := NextMonth(asOf)
	series := Aggregate(records)

	outcomes := make([]outcome, len(series))
	var g errgroup.Group
	g.SetLimit(f.workers)
	for i := range series {
		g.Go(func() error {
			outcomes[i] = forecastSafely(series[i], target.Month)
			return nil
		})
	}
	_ = g.Wait()

	result := &models.ForecastResult{
		Period: models.ForecastPeriod{
			StartDate: target.Start(),
			EndDate:   target.End(),
			Label:     target.String(),
		},
		Forecasts: make([]models.Forecast, 0, len(series)),
	}
	for i, o := range outcomes {
		if o.err != nil {
			log.Printf("[FORECAST] skipping product %q: %v", series[i].Product, o.err)
			result.Skipped = append(result.Skipped, models.SkippedProduct{
				ProductName: series[i].Product,
				Reason:      o.err.Error(),
			})
			continue
		}
		result.Forecasts = append(result.Forecasts, o.forecast)
	}

	result.InsufficientData = len(result.Forecasts) == 0
	result.Summary = summarize(result.Forecasts, target)
	return result, nil
}

func forecastSafely(s ProductSeries, target time.Month) (o outcome) {
	defer func() {
		if r := recover(); r != nil {
			o = outcome{err: &ProductError{Product: s.Product, Err: fmt.Errorf("panic: %v", r)}}
		}
	}()
	fc, err := ForecastProduct(s, target)
	return outcome{forecast: fc, err: err}
}

// ForecastProduct computes the forecast of a single product for the target
// calendar month.
func ForecastProduct(s ProductSeries, target time.Month) (models.Forecast, error) {
	n := len(s.Months)
	if n == 0 {
		return models.Forecast{}, &ProductError{Product: s.Product, Err: fmt.Errorf("%w: no monthly history", ErrDegenerate)}
	}

	totals := s.Totals()
	trend := Trend(totals)
	seasonal, err := SeasonalFactor(s.Months, target)
	if err != nil {
		return models.Forecast{}, &ProductError{Product: s.Product, Err: err}
	}

	base := mean(totals)
	raw := (base + trend*float64(n)) * seasonal
	sigma := MeanMonthlyStd(s.Months)
	safety := sigma * ServiceLevelZ
	if !finite(trend) || !finite(raw) || !finite(safety) {
		return models.Forecast{}, &ProductError{Product: s.Product, Err: fmt.Errorf("%w: non-finite prediction", ErrDegenerate)}
	}
	if raw+safety >= maxStock || raw+ConfidenceZ*sigma >= maxStock {
		return models.Forecast{}, &ProductError{Product: s.Product, Err: fmt.Errorf("%w: prediction exceeds the integer range", ErrDegenerate)}
	}

	recommended := int(math.Ceil(math.Max(1, raw+safety)))
	lower := int(math.Max(0, math.Floor(raw-ConfidenceZ*sigma)))
	upper := int(math.Max(0, math.Floor(raw+ConfidenceZ*sigma)))
	if upper < lower {
		upper = lower
	}

	fc := models.Forecast{
		ProductName:      s.Product,
		RecommendedStock: recommended,
		PredictedDemand:  int(math.Max(0, math.Floor(raw))),
		ConfidenceLower:  lower,
		ConfidenceUpper:  upper,
		ConfidenceRange:  fmt.Sprintf("%d-%d", lower, upper),
		Trend:            trend,
		TrendLabel:       Label(trend),
		SeasonalFactor:   seasonal,
		SafetyStock:      safety,
		MonthsOfHistory:  n,
	}
	if s.LastPrice > 0 {
		fc.ProjectedRevenue = decimal.NewNullDecimal(
			decimal.NewFromInt(int64(recommended)).Mul(decimal.NewFromFloat(s.LastPrice)).Round(2),
		)
	}
	return fc, nil
}

func summarize(forecasts []models.Forecast, target models.MonthKey) models.ForecastSummary {
	summary := models.ForecastSummary{ForecastPeriod: target.String()}
	for _, fc := range forecasts {
		summary.TotalRecommendedStock += fc.RecommendedStock
		if fc.TrendLabel == models.TrendIncreasing {
			summary.IncreasingProducts++
		}
	}
	return summary
}
