package forecast

import (
	"sort"
	"time"

	"stocksmart/models"
)

// ProductSeries is one product's monthly history, ordered by month.
type ProductSeries struct {
	Product string
	Months  []models.MonthlyAggregate

	// LastPrice is the unit price of the product's most recent sale.
	LastPrice float64
}

// Totals returns the monthly quantity sums in month order.
func (s ProductSeries) Totals() []float64 {
	totals := make([]float64, len(s.Months))
	for i, m := range s.Months {
		totals[i] = m.Sum
	}
	return totals
}

type productAccumulator struct {
	byMonth   map[models.MonthKey][]float64
	first     models.MonthKey
	last      models.MonthKey
	lastDate  time.Time
	lastPrice float64
}

// Aggregate groups records by product and calendar month. Calendar months with
// no sales between a product's first and last month are included with a zero
// sum so that month indexes count elapsed months. Products are returned sorted
// by name.
func Aggregate(records []models.SaleRecord) []ProductSeries {
	acc := make(map[string]*productAccumulator)
	for _, r := range records {
		month := models.MonthOf(r.Date)
		a, ok := acc[r.ProductName]
		if !ok {
			a = &productAccumulator{
				byMonth: make(map[models.MonthKey][]float64),
				first:   month,
				last:    month,
			}
			acc[r.ProductName] = a
		}
		a.byMonth[month] = append(a.byMonth[month], r.Quantity)
		if month.Before(a.first) {
			a.first = month
		}
		if a.last.Before(month) {
			a.last = month
		}
		// Later input position wins when dates tie.
		if !r.Date.Before(a.lastDate) {
			a.lastDate = r.Date
			a.lastPrice = r.UnitPrice
		}
	}

	names := make([]string, 0, len(acc))
	for name := range acc {
		names = append(names, name)
	}
	sort.Strings(names)

	series := make([]ProductSeries, 0, len(names))
	for _, name := range names {
		a := acc[name]
		s := ProductSeries{Product: name, LastPrice: a.lastPrice}
		for m := a.first; !a.last.Before(m); m = m.Next() {
			s.Months = append(s.Months, monthlyAggregate(name, m, a.byMonth[m]))
		}
		if len(s.Months) > 0 {
			series = append(series, s)
		}
	}
	return series
}

func monthlyAggregate(product string, month models.MonthKey, quantities []float64) models.MonthlyAggregate {
	agg := models.MonthlyAggregate{
		Product: product,
		Month:   month,
		Count:   len(quantities),
	}
	for _, q := range quantities {
		agg.Sum += q
	}
	if agg.Count > 0 {
		agg.Mean = agg.Sum / float64(agg.Count)
	}
	agg.StdDev, agg.StdDefined = sampleStd(quantities)
	return agg
}
