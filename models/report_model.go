package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TopProduct is a best-selling product with its revenue and profit.
type TopProduct struct {
	ProductName  string          `json:"product_name"`
	QuantitySold float64         `json:"quantity"`
	Revenue      decimal.Decimal `json:"total_amount"`
	Profit       decimal.Decimal `json:"product_profit"`
}

// SalesSummary holds the key metrics of the sales analysis.
type SalesSummary struct {
	TotalSales        decimal.Decimal `json:"total_sales"`
	TotalProfit       decimal.Decimal `json:"total_profit"`
	TotalProductsSold float64         `json:"total_products_sold"`
	AvgTransaction    decimal.Decimal `json:"avg_transaction"`
	Transactions      int             `json:"transactions"`
}

// SalesReportData holds aggregated sales for a specific period.
type SalesReportData struct {
	Period     time.Time       `json:"period"`
	TotalSales decimal.Decimal `json:"totalSales"`
}

// SalesAnalysis is the response of the sales analysis endpoint.
type SalesAnalysis struct {
	TopProducts  []TopProduct      `json:"top_products"`
	Summary      SalesSummary      `json:"summary"`
	DailySales   []SalesReportData `json:"daily_sales"`
	MonthlySales []SalesReportData `json:"monthly_sales"`
}

// DemandAnalysis is the response of the demand analysis endpoint.
type DemandAnalysis struct {
	Distribution map[DemandCategory]int `json:"distribution"`
	Products     []DemandClassification `json:"products"`
}
