package forecast

import (
	"errors"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"

	"stocksmart/models"
)

var validate = validator.New()

// ValidateRecords checks every record and returns an *InvalidInputError for the
// first one that is malformed.
func ValidateRecords(records []models.SaleRecord) error {
	for i, r := range records {
		if err := validate.Struct(r); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) && len(verrs) > 0 {
				return &InvalidInputError{Index: i, Product: r.ProductName, Field: verrs[0].Field(), Reason: "failed " + verrs[0].Tag()}
			}
			return &InvalidInputError{Index: i, Product: r.ProductName, Reason: err.Error()}
		}
		switch {
		case strings.TrimSpace(r.ProductName) == "":
			return &InvalidInputError{Index: i, Product: r.ProductName, Field: "ProductName", Reason: "blank"}
		case !finite(r.Quantity):
			return &InvalidInputError{Index: i, Product: r.ProductName, Field: "Quantity", Reason: "not finite"}
		case !finite(r.UnitPrice):
			return &InvalidInputError{Index: i, Product: r.ProductName, Field: "UnitPrice", Reason: "not finite"}
		case !finite(r.Profit):
			return &InvalidInputError{Index: i, Product: r.ProductName, Field: "Profit", Reason: "not finite"}
		case r.Date.IsZero():
			return &InvalidInputError{Index: i, Product: r.ProductName, Field: "Date", Reason: "missing"}
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
