package utils

import "github.com/shopspring/decimal"

const (
	PriceMaxDigits     = 6
	PriceDecimalPlaces = 2
)

var maxPrice = decimal.New(1, PriceMaxDigits-PriceDecimalPlaces)

// ValidatePrice checks that price fits a decimal(6,2) column: at most two
// decimal places, at most four integer digits and not negative.
func ValidatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return ErrValidation("price must not be negative")
	}
	if !price.Equal(price.Round(PriceDecimalPlaces)) {
		return ErrValidation("price must have at most %d decimal places", PriceDecimalPlaces)
	}
	if price.GreaterThanOrEqual(maxPrice) {
		return ErrValidation("price must have at most %d digits in total", PriceMaxDigits)
	}
	return nil
}

// FormatPrice renders price with exactly two decimal places, e.g. "12.50".
func FormatPrice(price decimal.Decimal) string {
	return price.StringFixed(PriceDecimalPlaces)
}
