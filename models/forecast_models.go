package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthKey is a calendar month.
type MonthKey struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// MonthOf returns the calendar month a date falls in.
func MonthOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

// Before reports whether m is earlier than other.
func (m MonthKey) Before(other MonthKey) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}

// Next returns the following calendar month, rolling December into January.
func (m MonthKey) Next() MonthKey {
	if m.Month == time.December {
		return MonthKey{Year: m.Year + 1, Month: time.January}
	}
	return MonthKey{Year: m.Year, Month: m.Month + 1}
}

// Start is midnight UTC on the first day of the month.
func (m MonthKey) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End is the last day of the month.
func (m MonthKey) End() time.Time {
	return m.Next().Start().AddDate(0, 0, -1)
}

func (m MonthKey) String() string {
	return m.Start().Format("January 2006")
}

// MonthlyAggregate summarizes one product's quantities within one calendar month.
type MonthlyAggregate struct {
	Product    string   `json:"product"`
	Month      MonthKey `json:"month"`
	Sum        float64  `json:"sum"`
	Mean       float64  `json:"mean"`
	StdDev     float64  `json:"std"`
	Count      int      `json:"count"`
	StdDefined bool     `json:"std_defined"`
}

// TrendLabel describes the direction of a product's monthly totals.
type TrendLabel string

const (
	TrendIncreasing TrendLabel = "Increasing"
	TrendDecreasing TrendLabel = "Decreasing"
	TrendStable     TrendLabel = "Stable"
)

// DemandCategory is the demand tier of a product.
type DemandCategory string

const (
	DemandLow    DemandCategory = "Low"
	DemandMedium DemandCategory = "Medium"
	DemandHigh   DemandCategory = "High"
)

// Forecast is the next-month stock prediction for one product.
type Forecast struct {
	ProductName      string              `json:"product_name"`
	RecommendedStock int                 `json:"recommended_stock"`
	PredictedDemand  int                 `json:"predicted_demand"`
	ConfidenceLower  int                 `json:"confidence_lower"`
	ConfidenceUpper  int                 `json:"confidence_upper"`
	ConfidenceRange  string              `json:"confidence_range"`
	ProjectedRevenue decimal.NullDecimal `json:"projected_revenue"`
	Trend            float64             `json:"trend_slope"`
	TrendLabel       TrendLabel          `json:"trend"`
	SeasonalFactor   float64             `json:"seasonal_factor"`
	SafetyStock      float64             `json:"safety_stock"`
	MonthsOfHistory  int                 `json:"months_of_history"`
}

// ForecastPeriod is the calendar month being forecast.
type ForecastPeriod struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Label     string    `json:"label"`
}

// SkippedProduct records a product whose forecast could not be computed.
type SkippedProduct struct {
	ProductName string `json:"product_name"`
	Reason      string `json:"reason"`
}

// ForecastSummary holds the headline numbers shown next to the predictions table.
type ForecastSummary struct {
	TotalRecommendedStock int    `json:"total_recommended_stock"`
	IncreasingProducts    int    `json:"increasing_products"`
	ForecastPeriod        string `json:"forecast_period"`
}

// ForecastResult is the outcome of one forecasting run. When no product yields a
// forecast, InsufficientData is set and Forecasts is empty.
type ForecastResult struct {
	Period           ForecastPeriod   `json:"period"`
	Forecasts        []Forecast       `json:"forecasts"`
	Skipped          []SkippedProduct `json:"skipped,omitempty"`
	Summary          ForecastSummary  `json:"summary"`
	InsufficientData bool             `json:"insufficient_data"`
}

// DemandClassification holds the all-time demand metrics and tier of one product.
type DemandClassification struct {
	ProductName   string          `json:"product_name"`
	TotalQuantity float64         `json:"total_quantity"`
	AvgQuantity   float64         `json:"avg_quantity"`
	StdQuantity   float64         `json:"std_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalProfit   decimal.Decimal `json:"total_profit"`
	Category      DemandCategory  `json:"demand_category"`
}
