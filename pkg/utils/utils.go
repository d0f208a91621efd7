package utils

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// IsFinite reports whether value is neither NaN nor an infinity.
func IsFinite(value float64) bool {
	return !math.IsInf(value, 0) && !math.IsNaN(value)
}

// ToDecimal converts a JSON number to a decimal, rejecting NaN and infinities.
func ToDecimal(value float64) (decimal.Decimal, error) {
	if !IsFinite(value) {
		return decimal.Zero, fmt.Errorf("value is not a finite number")
	}
	return decimal.NewFromFloat(value), nil
}

// FormatLira renders an amount with dot thousands separators and a comma
// before the kuruş, e.g. 1.234.567,50 TL.
func FormatLira(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	fixed := amount.StringFixed(2)
	whole, frac := fixed[:len(fixed)-3], fixed[len(fixed)-2:]

	grouped := make([]byte, 0, len(whole)+len(whole)/3)
	for i := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped = append(grouped, '.')
		}
		grouped = append(grouped, whole[i])
	}

	return sign + string(grouped) + "," + frac + " TL"
}
