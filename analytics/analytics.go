// Package analytics computes the descriptive sales metrics shown next to the
// forecasts: best sellers, headline totals and revenue time series.
package analytics

import (
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"stocksmart/models"
)

// TopProducts returns the n products with the highest total quantity sold.
// Ties are broken by product name.
func TopProducts(records []models.SaleRecord, n int) []models.TopProduct {
	byProduct := make(map[string]*models.TopProduct)
	for _, r := range records {
		p, ok := byProduct[r.ProductName]
		if !ok {
			p = &models.TopProduct{ProductName: r.ProductName}
			byProduct[r.ProductName] = p
		}
		p.QuantitySold += r.Quantity
		p.Revenue = p.Revenue.Add(r.Amount())
		p.Profit = p.Profit.Add(decimal.NewFromFloat(r.Profit))
	}

	products := make([]models.TopProduct, 0, len(byProduct))
	for _, p := range byProduct {
		p.Revenue = p.Revenue.Round(2)
		p.Profit = p.Profit.Round(2)
		products = append(products, *p)
	}
	sort.Slice(products, func(i, j int) bool {
		if products[i].QuantitySold != products[j].QuantitySold {
			return products[i].QuantitySold > products[j].QuantitySold
		}
		return products[i].ProductName < products[j].ProductName
	})
	if n >= 0 && n < len(products) {
		products = products[:n]
	}
	return products
}

// Summarize computes the key sales metrics. Records without a transaction ID
// each count as their own transaction.
func Summarize(records []models.SaleRecord) models.SalesSummary {
	var summary models.SalesSummary
	transactions := make(map[string]bool)
	for i, r := range records {
		summary.TotalSales = summary.TotalSales.Add(r.Amount())
		summary.TotalProfit = summary.TotalProfit.Add(decimal.NewFromFloat(r.Profit))
		summary.TotalProductsSold += r.Quantity

		id := r.TransactionID
		if id == "" {
			id = "#" + strconv.Itoa(i)
		}
		transactions[id] = true
	}

	summary.Transactions = len(transactions)
	if summary.Transactions > 0 {
		summary.AvgTransaction = summary.TotalSales.Div(decimal.NewFromInt(int64(summary.Transactions))).Round(2)
	}
	summary.TotalSales = summary.TotalSales.Round(2)
	summary.TotalProfit = summary.TotalProfit.Round(2)
	return summary
}

// DailySales sums revenue per calendar day, in date order.
func DailySales(records []models.SaleRecord) []models.SalesReportData {
	return salesBy(records, func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	})
}

// MonthlySales sums revenue per calendar month, in month order.
func MonthlySales(records []models.SaleRecord) []models.SalesReportData {
	return salesBy(records, func(t time.Time) time.Time {
		return models.MonthOf(t).Start()
	})
}

func salesBy(records []models.SaleRecord, period func(time.Time) time.Time) []models.SalesReportData {
	totals := make(map[time.Time]decimal.Decimal)
	for _, r := range records {
		key := period(r.Date)
		totals[key] = totals[key].Add(r.Amount())
	}

	out := make([]models.SalesReportData, 0, len(totals))
	for p, total := range totals {
		out = append(out, models.SalesReportData{Period: p, TotalSales: total.Round(2)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period.Before(out[j].Period) })
	return out
}

// DemandDistribution counts products per demand category. Every category is
// present in the result.
func DemandDistribution(rows []models.DemandClassification) map[models.DemandCategory]int {
	dist := map[models.DemandCategory]int{
		models.DemandLow:    0,
		models.DemandMedium: 0,
		models.DemandHigh:   0,
	}
	for _, row := range rows {
		dist[row.Category]++
	}
	return dist
}
