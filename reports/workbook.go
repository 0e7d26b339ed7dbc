// Package reports exports the analytics dashboard as an Excel workbook with one
// sheet per dashboard tab.
package reports

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"stocksmart/models"
	"stocksmart/utils"
)

// Sheet names, in workbook order.
const (
	SalesSheet       = "Sales Analysis"
	DemandSheet      = "Demand Analysis"
	PredictionsSheet = "Stock Predictions"
)

// Dashboard is everything rendered into the workbook.
type Dashboard struct {
	Sales       models.SalesAnalysis
	Demand      []models.DemandClassification
	Predictions *models.ForecastResult
}

// BuildWorkbook renders d into a new workbook.
func BuildWorkbook(d Dashboard) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SalesSheet); err != nil {
		return nil, err
	}
	for _, name := range []string{DemandSheet, PredictionsSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}

	if err := writeSales(f, d.Sales); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", SalesSheet, err)
	}
	if err := writeDemand(f, d.Demand); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", DemandSheet, err)
	}
	if err := writePredictions(f, d.Predictions); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", PredictionsSheet, err)
	}
	return f, nil
}

// WriteWorkbook renders d and writes the xlsx bytes to w.
func WriteWorkbook(w io.Writer, d Dashboard) error {
	f, err := BuildWorkbook(d)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
}

func (s *sheetWriter) write(values ...interface{}) error {
	s.row++
	cell, err := excelize.CoordinatesToCellName(1, s.row)
	if err != nil {
		return err
	}
	return s.f.SetSheetRow(s.sheet, cell, &values)
}

func (s *sheetWriter) skip() {
	s.row++
}

func writeSales(f *excelize.File, sales models.SalesAnalysis) error {
	w := &sheetWriter{f: f, sheet: SalesSheet}
	steps := []func() error{
		func() error { return w.write("Key Metrics") },
		func() error { return w.write("Total Sales", utils.FormatCurrency(sales.Summary.TotalSales)) },
		func() error { return w.write("Total Profit", utils.FormatCurrency(sales.Summary.TotalProfit)) },
		func() error { return w.write("Total Products Sold", sales.Summary.TotalProductsSold) },
		func() error { return w.write("Avg Transaction", utils.FormatCurrency(sales.Summary.AvgTransaction)) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	w.skip()
	if err := w.write("Top Selling Products", "Quantity", "Revenue", "Profit"); err != nil {
		return err
	}
	for _, p := range sales.TopProducts {
		if err := w.write(p.ProductName, p.QuantitySold, p.Revenue.InexactFloat64(), p.Profit.InexactFloat64()); err != nil {
			return err
		}
	}

	w.skip()
	if err := w.write("Month", "Sales"); err != nil {
		return err
	}
	for _, m := range sales.MonthlySales {
		if err := w.write(m.Period.Format("January 2006"), m.TotalSales.InexactFloat64()); err != nil {
			return err
		}
	}
	return nil
}

func writeDemand(f *excelize.File, rows []models.DemandClassification) error {
	w := &sheetWriter{f: f, sheet: DemandSheet}
	if err := w.write("Product", "Total Quantity", "Avg Quantity", "Std Quantity", "Total Revenue", "Total Profit", "Demand Category"); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.write(r.ProductName, r.TotalQuantity, r.AvgQuantity, r.StdQuantity,
			utils.FormatCurrency(r.TotalRevenue), utils.FormatCurrency(r.TotalProfit), string(r.Category)); err != nil {
			return err
		}
	}
	return nil
}

func writePredictions(f *excelize.File, result *models.ForecastResult) error {
	w := &sheetWriter{f: f, sheet: PredictionsSheet}
	if result == nil || result.InsufficientData {
		return w.write("Not enough data to make predictions")
	}

	if err := w.write("Stock Predictions for " + result.Period.Label); err != nil {
		return err
	}
	if err := w.write("Product Name", "Recommended Stock", "Predicted Demand", "Confidence Range", "Trend", "Projected Revenue"); err != nil {
		return err
	}
	for _, fc := range result.Forecasts {
		if err := w.write(fc.ProductName, fc.RecommendedStock, fc.PredictedDemand, fc.ConfidenceRange,
			string(fc.TrendLabel), utils.FormatRevenue(fc.ProjectedRevenue)); err != nil {
			return err
		}
	}

	w.skip()
	if err := w.write("Total Stock Needed", result.Summary.TotalRecommendedStock); err != nil {
		return err
	}
	if err := w.write("Products with Increasing Demand", result.Summary.IncreasingProducts); err != nil {
		return err
	}
	return w.write("Forecast Period", result.Summary.ForecastPeriod)
}
