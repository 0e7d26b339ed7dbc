package forecast

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is matched by every *InvalidInputError.
	ErrInvalidInput = errors.New("invalid sale record")

	// ErrDegenerate marks statistics that cannot produce a usable forecast.
	ErrDegenerate = errors.New("degenerate statistics")
)

// InvalidInputError reports the first sale record that failed validation.
type InvalidInputError struct {
	Index   int
	Product string
	Field   string
	Reason  string
}

func (e *InvalidInputError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("sale record %d (%q): %s", e.Index, e.Product, e.Reason)
	}
	return fmt.Sprintf("sale record %d (%q): field %s: %s", e.Index, e.Product, e.Field, e.Reason)
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

// ProductError is a failure confined to a single product's forecast.
type ProductError struct {
	Product string
	Err     error
}

func (e *ProductError) Error() string {
	return fmt.Sprintf("forecast for %q: %v", e.Product, e.Err)
}

func (e *ProductError) Unwrap() error {
	return e.Err
}
