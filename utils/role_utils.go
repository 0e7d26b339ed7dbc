package utils

import (
	"strings"
)

// AnalyticsRoles are the roles allowed to read forecasts and demand reports.
var AnalyticsRoles = map[string]bool{
	"admin":    true,
	"merchant": true,
}

// ValidateAndNormalizeRole validates and normalizes a role string.
// Returns the normalized role (lowercase) and a boolean indicating if it's valid.
func ValidateAndNormalizeRole(role string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(role))
	return normalized, AnalyticsRoles[normalized]
}
