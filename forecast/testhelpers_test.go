package forecast

import (
	"time"

	"stocksmart/models"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 10, 0, 0, 0, time.UTC)
}

func sale(product string, qty, price float64, date time.Time) models.SaleRecord {
	return models.SaleRecord{
		ProductName: product,
		Quantity:    qty,
		UnitPrice:   price,
		Profit:      qty * price * 0.2,
		Date:        date,
	}
}
