package util

import (
	"strings"

	"github.com/shopspring/decimal"
)

// StrNotSet will return true if the string value provided is empty
func StrNotSet(value string) bool {
	return len(value) == 0
}

// StrPtrOrNil returns nil for an empty string so optional text columns are stored as NULL.
func StrPtrOrNil(value string) *string {
	if StrNotSet(value) {
		return nil
	}
	return &value
}

// AmountToNumeric converts an extracted amount such as "10,000" into a decimal.
func AmountToNumeric(amount string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(amount, ",", ""))
}
