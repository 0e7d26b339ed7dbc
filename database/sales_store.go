package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"

	"stocksmart/models"
)

// Querier is the subset of *pgxpool.Pool used by the stores.
type Querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// SaleRecordSource loads a snapshot of sale line items.
type SaleRecordSource interface {
	LoadSaleRecords(ctx context.Context, scope models.SnapshotScope) ([]models.SaleRecord, error)
}

// SalesStore reads sale line items from the sales tables.
type SalesStore struct {
	db Querier
}

// NewSalesStore creates a SalesStore over db.
func NewSalesStore(db Querier) *SalesStore {
	return &SalesStore{db: db}
}

// Profit is the margin over the original price recorded at sale time; lines
// without an original price contribute no profit.
const saleRecordsQuery = `
	SELECT s.id, i.name, si.quantity_sold, si.selling_price_at_sale,
	       COALESCE((si.selling_price_at_sale - si.original_price_at_sale) * si.quantity_sold, 0) AS profit,
	       s.sale_date
	FROM sales s
	JOIN sale_items si ON s.id = si.sale_id
	JOIN inventory_items i ON si.inventory_item_id = i.id
	WHERE s.merchant_id = $1
`

// LoadSaleRecords returns every sale line of the merchant, optionally limited
// to one shop, in sale date order. Each call returns a new slice.
func (s *SalesStore) LoadSaleRecords(ctx context.Context, scope models.SnapshotScope) ([]models.SaleRecord, error) {
	query := saleRecordsQuery
	args := []interface{}{scope.MerchantID}
	if scope.ShopID != "" {
		query += " AND s.shop_id = $2"
		args = append(args, scope.ShopID)
	}
	query += " ORDER BY s.sale_date, si.id"

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sale records: %w", err)
	}
	defer rows.Close()

	records := make([]models.SaleRecord, 0)
	for rows.Next() {
		var (
			r        models.SaleRecord
			quantity int
			saleDate time.Time
		)
		if err := rows.Scan(&r.TransactionID, &r.ProductName, &quantity, &r.UnitPrice, &r.Profit, &saleDate); err != nil {
			return nil, fmt.Errorf("failed to scan sale record: %w", err)
		}
		r.Quantity = float64(quantity)
		r.Date = saleDate
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sale records: %w", err)
	}
	return records, nil
}
