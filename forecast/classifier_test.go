package forecast

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocksmart/models"
)

func TestQuantileLinearInterpolation(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	assert.InDelta(t, 3.97, Quantile(values, 0.33), 1e-9)
	assert.InDelta(t, 7.03, Quantile(values, 0.67), 1e-9)
	assert.Equal(t, 1.0, Quantile(values, 0))
	assert.Equal(t, 10.0, Quantile(values, 1))
	assert.InDelta(t, 5.5, Quantile(values, 0.5), 1e-9)
	assert.Equal(t, 4.0, Quantile([]float64{4}, 0.67))
	assert.Equal(t, 0.0, Quantile(nil, 0.33))
}

func TestCategorizeBoundaries(t *testing.T) {
	assert.Equal(t, models.DemandLow, Categorize(2.99, 3, 6))
	assert.Equal(t, models.DemandMedium, Categorize(3, 3, 6))
	assert.Equal(t, models.DemandMedium, Categorize(5.99, 3, 6))
	assert.Equal(t, models.DemandHigh, Categorize(6, 3, 6))
}

func TestClassifyTenProducts(t *testing.T) {
	var records []models.SaleRecord
	for i := 1; i <= 10; i++ {
		records = append(records, sale(fmt.Sprintf("P%02d", i), float64(i), 10, day(2026, time.January, i)))
	}

	rows, err := Classify(records)
	require.NoError(t, err)
	require.Len(t, rows, 10)

	want := map[string]models.DemandCategory{
		"P01": models.DemandLow, "P02": models.DemandLow, "P03": models.DemandLow,
		"P04": models.DemandMedium, "P05": models.DemandMedium, "P06": models.DemandMedium,
		"P07": models.DemandMedium,
		"P08": models.DemandHigh, "P09": models.DemandHigh, "P10": models.DemandHigh,
	}
	for _, row := range rows {
		assert.Equal(t, want[row.ProductName], row.Category, row.ProductName)
	}
}

func TestClassifyMetrics(t *testing.T) {
	records := []models.SaleRecord{
		{ProductName: "Tea", Quantity: 2, UnitPrice: 10.5, Profit: 3.333, Date: day(2026, time.January, 1)},
		{ProductName: "Tea", Quantity: 4, UnitPrice: 10, Profit: 1, Date: day(2026, time.February, 1)},
		{ProductName: "Salt", Quantity: 1, UnitPrice: 20, Profit: 2, Date: day(2026, time.February, 1)},
	}

	rows, err := Classify(records)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	salt, tea := rows[0], rows[1]
	assert.Equal(t, "Salt", salt.ProductName)
	assert.Equal(t, 0.0, salt.StdQuantity)

	assert.Equal(t, "Tea", tea.ProductName)
	assert.Equal(t, 6.0, tea.TotalQuantity)
	assert.Equal(t, 3.0, tea.AvgQuantity)
	assert.Equal(t, 1.41, tea.StdQuantity)
	assert.Equal(t, "61", tea.TotalRevenue.String())
	assert.Equal(t, "4.33", tea.TotalProfit.String())
	assert.Equal(t, models.DemandHigh, tea.Category)
	assert.Equal(t, models.DemandLow, salt.Category)
}

func TestClassifyEmpty(t *testing.T) {
	rows, err := Classify(nil)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestClassifyIsIdempotent(t *testing.T) {
	var records []models.SaleRecord
	for i := 0; i < 60; i++ {
		records = append(records, sale(fmt.Sprintf("P%d", i%13), float64(i%7+1), 5, day(2026, time.Month(1+i%6), 1+i%28)))
	}

	first, err := Classify(records)
	require.NoError(t, err)
	second, err := Classify(records)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	counts := map[models.DemandCategory]int{}
	for _, row := range first {
		counts[row.Category]++
	}
	assert.Equal(t, 13, counts[models.DemandLow]+counts[models.DemandMedium]+counts[models.DemandHigh])
}

func TestDedupeFirstKeepsFirstRow(t *testing.T) {
	rows := []models.DemandClassification{
		{ProductName: "A", TotalQuantity: 1},
		{ProductName: "B", TotalQuantity: 2},
		{ProductName: "A", TotalQuantity: 99},
	}

	out := dedupeFirst(rows)
	require.Len(t, out, 2)
	assert.Equal(t, 1.0, out[0].TotalQuantity)
	assert.Equal(t, "B", out[1].ProductName)
}
