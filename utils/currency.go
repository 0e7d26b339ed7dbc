package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	crore = decimal.NewFromInt(10_000_000)
	lakh  = decimal.NewFromInt(100_000)
)

// FormatCurrency formats a rupee amount, switching to lakhs (L) and crores (Cr)
// for large values. Example: 250000 -> "₹2.50 L".
func FormatCurrency(amount decimal.Decimal) string {
	switch {
	case amount.GreaterThanOrEqual(crore):
		return "₹" + amount.Div(crore).StringFixed(2) + " Cr"
	case amount.GreaterThanOrEqual(lakh):
		return "₹" + amount.Div(lakh).StringFixed(2) + " L"
	default:
		return "₹" + GroupThousands(amount.StringFixed(2))
	}
}

// FormatRevenue renders a projected revenue, or "N/A" when there is no positive price history.
func FormatRevenue(revenue decimal.NullDecimal) string {
	if !revenue.Valid || !revenue.Decimal.IsPositive() {
		return "N/A"
	}
	return "₹" + GroupThousands(revenue.Decimal.StringFixed(2))
}

// GroupThousands inserts commas every three digits of the integer part of a
// plain decimal string.
func GroupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return sign + b.String() + frac
}
