package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"stocksmart/analytics"
	"stocksmart/forecast"
	"stocksmart/loader"
	"stocksmart/models"
	"stocksmart/reports"
	"stocksmart/utils"
)

// Config holds the command line options.
type Config struct {
	BillsFile string
	Format    string
	Out       string
	Top       int
	Workers   int
	AsOf      time.Time
}

type report struct {
	Sales       models.SalesAnalysis          `json:"sales"`
	Demand      []models.DemandClassification `json:"demand"`
	Predictions *models.ForecastResult        `json:"predictions"`
}

// Run loads the bills export and writes the dashboard in the requested format.
func Run(cfg Config, stdout io.Writer) error {
	if cfg.BillsFile == "" {
		return errors.New("-bills is required")
	}

	records, err := loader.LoadBillsFile(cfg.BillsFile)
	if err != nil {
		return err
	}

	result, err := forecast.NewForecaster(forecast.WithWorkers(cfg.Workers)).Forecast(records, cfg.AsOf)
	if err != nil {
		return fmt.Errorf("forecast: %w", err)
	}
	demand, err := forecast.Classify(records)
	if err != nil {
		return fmt.Errorf("classify: %w", err)
	}

	rep := report{
		Sales: models.SalesAnalysis{
			TopProducts:  analytics.TopProducts(records, cfg.Top),
			Summary:      analytics.Summarize(records),
			DailySales:   analytics.DailySales(records),
			MonthlySales: analytics.MonthlySales(records),
		},
		Demand:      demand,
		Predictions: result,
	}

	w := stdout
	if cfg.Out != "" {
		f, err := os.Create(cfg.Out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	switch cfg.Format {
	case "text":
		return writeText(w, rep)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case "xlsx":
		if cfg.Out == "" {
			return errors.New("-out is required for xlsx output")
		}
		return reports.WriteWorkbook(w, reports.Dashboard{Sales: rep.Sales, Demand: rep.Demand, Predictions: rep.Predictions})
	default:
		return fmt.Errorf("unsupported output format: %s", cfg.Format)
	}
}

func writeText(w io.Writer, rep report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	line := strings.Repeat("─", 64)

	s := rep.Sales.Summary
	fmt.Fprintf(tw, "SALES SUMMARY\n%s\n", line)
	fmt.Fprintf(tw, "Total sales:\t%s\n", utils.FormatCurrency(s.TotalSales))
	fmt.Fprintf(tw, "Total profit:\t%s\n", utils.FormatCurrency(s.TotalProfit))
	fmt.Fprintf(tw, "Products sold:\t%.0f\n", s.TotalProductsSold)
	fmt.Fprintf(tw, "Avg transaction:\t%s\n\n", utils.FormatCurrency(s.AvgTransaction))

	fmt.Fprintf(tw, "DEMAND ANALYSIS\n%s\n", line)
	fmt.Fprintln(tw, "Product\tTotal\tAvg\tRevenue\tCategory")
	for _, d := range rep.Demand {
		fmt.Fprintf(tw, "%s\t%.0f\t%.2f\t%s\t%s\n", d.ProductName, d.TotalQuantity, d.AvgQuantity, utils.FormatCurrency(d.TotalRevenue), d.Category)
	}
	fmt.Fprintln(tw)

	p := rep.Predictions
	fmt.Fprintf(tw, "STOCK PREDICTIONS FOR %s\n%s\n", strings.ToUpper(p.Period.Label), line)
	if p.InsufficientData {
		fmt.Fprintln(tw, "Not enough data to make predictions.")
		return tw.Flush()
	}
	fmt.Fprintln(tw, "Product\tStock\tRange\tTrend\tRevenue")
	for _, fc := range p.Forecasts {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", fc.ProductName, fc.RecommendedStock, fc.ConfidenceRange, fc.TrendLabel, utils.FormatRevenue(fc.ProjectedRevenue))
	}
	fmt.Fprintf(tw, "\nTotal recommended stock:\t%d\n", p.Summary.TotalRecommendedStock)
	fmt.Fprintf(tw, "Increasing products:\t%d\n", p.Summary.IncreasingProducts)
	for _, sk := range p.Skipped {
		fmt.Fprintf(tw, "skipped %s: %s\n", sk.ProductName, sk.Reason)
	}
	return tw.Flush()
}
