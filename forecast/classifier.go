package forecast

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"stocksmart/models"
)

// Percentiles splitting products into demand tiers.
const (
	LowerTierQuantile = 0.33
	UpperTierQuantile = 0.67
)

// Quantile returns the q-th quantile of sorted values, interpolating linearly
// between the closest ranks: with h = (n-1)q the result is
// x[floor(h)] + (h-floor(h)) * (x[floor(h)+1] - x[floor(h)]).
// It returns 0 for an empty slice.
func Quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 || q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[n-1]
	}
	h := float64(n-1) * q
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}

// Categorize assigns a demand tier. Both boundaries are exclusive upper bounds,
// so a total equal to p67 is High.
func Categorize(total, p33, p67 float64) models.DemandCategory {
	switch {
	case total < p33:
		return models.DemandLow
	case total < p67:
		return models.DemandMedium
	default:
		return models.DemandHigh
	}
}

// Classify computes all-time demand metrics per product and assigns each
// product a tier from the 33rd and 67th percentiles of total quantity over the
// whole population. Results are sorted by product name.
func Classify(records []models.SaleRecord) ([]models.DemandClassification, error) {
	if err := ValidateRecords(records); err != nil {
		return nil, err
	}

	rows := dedupeFirst(productTotals(records))
	if len(rows) == 0 {
		return []models.DemandClassification{}, nil
	}

	quantities := make([]float64, len(rows))
	for i, row := range rows {
		quantities[i] = row.TotalQuantity
	}
	sort.Float64s(quantities)
	p33 := Quantile(quantities, LowerTierQuantile)
	p67 := Quantile(quantities, UpperTierQuantile)

	for i := range rows {
		rows[i].Category = Categorize(rows[i].TotalQuantity, p33, p67)
	}
	return rows, nil
}

type productTotal struct {
	quantities []float64
	revenue    decimal.Decimal
	profit     decimal.Decimal
}

func productTotals(records []models.SaleRecord) []models.DemandClassification {
	byProduct := make(map[string]*productTotal)
	for _, r := range records {
		t, ok := byProduct[r.ProductName]
		if !ok {
			t = &productTotal{}
			byProduct[r.ProductName] = t
		}
		t.quantities = append(t.quantities, r.Quantity)
		t.revenue = t.revenue.Add(r.Amount())
		t.profit = t.profit.Add(decimal.NewFromFloat(r.Profit))
	}

	names := make([]string, 0, len(byProduct))
	for name := range byProduct {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]models.DemandClassification, 0, len(names))
	for _, name := range names {
		t := byProduct[name]
		var total float64
		for _, q := range t.quantities {
			total += q
		}
		std, _ := sampleStd(t.quantities)
		rows = append(rows, models.DemandClassification{
			ProductName:   name,
			TotalQuantity: round2(total),
			AvgQuantity:   round2(total / float64(len(t.quantities))),
			StdQuantity:   round2(std),
			TotalRevenue:  t.revenue.Round(2),
			TotalProfit:   t.profit.Round(2),
		})
	}
	return rows
}

// dedupeFirst collapses rows sharing a product name, keeping the first.
func dedupeFirst(rows []models.DemandClassification) []models.DemandClassification {
	seen := make(map[string]bool, len(rows))
	out := rows[:0:0]
	for _, row := range rows {
		if seen[row.ProductName] {
			continue
		}
		seen[row.ProductName] = true
		out = append(out, row)
	}
	return out
}
