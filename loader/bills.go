// Package loader reads sale records from the MongoDB JSON export of bills.
//
// A bill looks like
//
//	{"_id": {"$oid": "..."}, "date": {"$date": "2026-01-05T10:00:00Z"},
//	 "products": [{"product": "Tea", "quantity": 2, "price": 10, "profit": 3.5}]}
//
// Extended JSON wrappers ($oid, $date, $numberLong, $numberInt, $numberDouble,
// $numberDecimal) may appear around any value and are unwrapped.
package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"stocksmart/models"
	"stocksmart/utils"
)

// ErrMalformedBill is wrapped by every parse error of the bills export.
var ErrMalformedBill = errors.New("malformed bill")

// UnknownProduct names product lines exported without a product name.
const UnknownProduct = "Unknown"

var wrapperKeys = []string{"$date", "$numberLong", "$numberInt", "$numberDouble", "$numberDecimal", "$oid"}

// LoadBillsFile reads a bills export from disk.
func LoadBillsFile(path string) ([]models.SaleRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open bills file %s: %w", path, err)
	}
	defer f.Close()
	return ParseBills(f)
}

// ParseBills converts a bills export into one SaleRecord per product line, in
// export order. Lines with a missing product name are attributed to
// UnknownProduct and missing numbers read as zero; values of the wrong type
// are an error.
func ParseBills(r io.Reader) ([]models.SaleRecord, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var bills []map[string]interface{}
	if err := dec.Decode(&bills); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBill, err)
	}

	records := make([]models.SaleRecord, 0, len(bills))
	for i, bill := range bills {
		billRecords, err := parseBill(bill)
		if err != nil {
			return nil, fmt.Errorf("bill %d: %w", i, err)
		}
		records = append(records, billRecords...)
	}
	return records, nil
}

func parseBill(bill map[string]interface{}) ([]models.SaleRecord, error) {
	id, err := stringValue(bill["_id"])
	if err != nil {
		return nil, fmt.Errorf("%w: _id: %v", ErrMalformedBill, err)
	}
	date, err := dateValue(bill["date"])
	if err != nil {
		return nil, fmt.Errorf("%w: date: %v", ErrMalformedBill, err)
	}

	rawProducts, ok := unwrap(bill["products"]).([]interface{})
	if !ok {
		if bill["products"] == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: products is %T, not a list", ErrMalformedBill, bill["products"])
	}

	records := make([]models.SaleRecord, 0, len(rawProducts))
	for j, raw := range rawProducts {
		line, ok := raw.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: product %d is %T, not an object", ErrMalformedBill, j, raw)
		}
		rec := models.SaleRecord{TransactionID: id, Date: date}
		if rec.ProductName, err = stringValue(line["product"]); err != nil {
			return nil, fmt.Errorf("%w: product %d name: %v", ErrMalformedBill, j, err)
		}
		if strings.TrimSpace(rec.ProductName) == "" {
			rec.ProductName = UnknownProduct
		}
		if rec.Quantity, err = numberValue(line["quantity"]); err != nil {
			return nil, fmt.Errorf("%w: product %d quantity: %v", ErrMalformedBill, j, err)
		}
		if rec.UnitPrice, err = numberValue(line["price"]); err != nil {
			return nil, fmt.Errorf("%w: product %d price: %v", ErrMalformedBill, j, err)
		}
		if rec.Profit, err = numberValue(line["profit"]); err != nil {
			return nil, fmt.Errorf("%w: product %d profit: %v", ErrMalformedBill, j, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// unwrap strips extended JSON wrappers such as {"$numberLong": "12"}.
func unwrap(v interface{}) interface{} {
	for {
		m, ok := v.(map[string]interface{})
		if !ok || len(m) != 1 {
			return v
		}
		found := false
		for _, key := range wrapperKeys {
			if inner, ok := m[key]; ok {
				v, found = inner, true
				break
			}
		}
		if !found {
			return v
		}
	}
}

func stringValue(v interface{}) (string, error) {
	switch x := unwrap(v).(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case json.Number:
		return x.String(), nil
	default:
		return "", fmt.Errorf("unexpected %T", x)
	}
}

func numberValue(v interface{}) (float64, error) {
	switch x := unwrap(v).(type) {
	case nil:
		return 0, nil
	case json.Number:
		return x.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(x), 64)
	default:
		return 0, fmt.Errorf("unexpected %T", x)
	}
}

func dateValue(v interface{}) (time.Time, error) {
	switch x := unwrap(v).(type) {
	case string:
		if ms, err := strconv.ParseInt(x, 10, 64); err == nil {
			return time.UnixMilli(ms).UTC(), nil
		}
		return utils.ParseDate(x)
	case json.Number:
		// Canonical extended JSON stores dates as milliseconds since the epoch.
		ms, err := x.Int64()
		if err != nil {
			return time.Time{}, err
		}
		return time.UnixMilli(ms).UTC(), nil
	case nil:
		return time.Time{}, errors.New("missing")
	default:
		return time.Time{}, fmt.Errorf("unexpected %T", x)
	}
}
