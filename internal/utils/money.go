package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money represents a monetary value in the smallest currency unit (cents).
// Generators do all balance and amount arithmetic in Money and only convert
// to float dollars at the model boundary.
type Money int64

// Currency represents a currency with its formatting rules
type Currency struct {
	Code          string // ISO 4217 code (e.g., "USD")
	Symbol        string // Display symbol (e.g., "$")
	SymbolFirst   bool   // True if symbol comes before amount
	DecimalPlaces int    // Usually 2
	ThousandsSep  string // Thousands separator
	DecimalSep    string // Decimal separator
}

// Currencies supported for display. Generated fixtures are always USD.
var Currencies = map[string]Currency{
	"USD": {Code: "USD", Symbol: "$", SymbolFirst: true, DecimalPlaces: 2, ThousandsSep: ",", DecimalSep: "."},
	"CAD": {Code: "CAD", Symbol: "$", SymbolFirst: true, DecimalPlaces: 2, ThousandsSep: ",", DecimalSep: "."},
	"EUR": {Code: "EUR", Symbol: "€", SymbolFirst: true, DecimalPlaces: 2, ThousandsSep: ".", DecimalSep: ","},
	"GBP": {Code: "GBP", Symbol: "£", SymbolFirst: true, DecimalPlaces: 2, ThousandsSep: ",", DecimalSep: "."},
}

// DefaultCurrency is used when a currency code is not found
var DefaultCurrency = Currencies["USD"]

// Cents creates a Money value from cents only
func Cents(cents int64) Money {
	return Money(cents)
}

// Dollars creates a Money value from whole dollars
func Dollars(dollars int64) Money {
	return Money(dollars * 100)
}

// FromFloat creates a Money value from a float64 dollar amount, rounding to
// the nearest cent. NaN and infinities collapse to zero.
func FromFloat(amount float64) Money {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0
	}
	if amount >= 0 {
		return Money(amount*100 + 0.5)
	}
	return Money(amount*100 - 0.5)
}

// ToCents returns the value in cents (the underlying representation)
func (m Money) ToCents() int64 {
	return int64(m)
}

// ToDollars returns the value as a float64 dollar amount
func (m Money) ToDollars() float64 {
	return float64(m) / 100
}

// Add returns the sum of two Money values
func (m Money) Add(other Money) Money {
	return m + other
}

// Sub returns the difference of two Money values
func (m Money) Sub(other Money) Money {
	return m - other
}

// MulFloat multiplies by a float and rounds to nearest cent
func (m Money) MulFloat(f float64) Money {
	result := float64(m) * f
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0
	}
	if result >= 0 {
		return Money(result + 0.5)
	}
	return Money(result - 0.5)
}

// Abs returns the absolute value
func (m Money) Abs() Money {
	if m < 0 {
		return -m
	}
	return m
}

// Neg returns the negated value
func (m Money) Neg() Money {
	return -m
}

// Max returns the larger of two Money values
func (m Money) Max(other Money) Money {
	if m > other {
		return m
	}
	return other
}

// String returns a simple string representation (e.g., "123.45")
func (m Money) String() string {
	negative := m < 0
	if negative {
		m = -m
	}
	result := fmt.Sprintf("%d.%02d", int64(m)/100, int64(m)%100)
	if negative {
		result = "-" + result
	}
	return result
}

// Format formats the money value with the given currency
func (m Money) Format(currencyCode string) string {
	currency := GetCurrency(currencyCode)

	negative := m < 0
	if negative {
		m = -m
	}

	multiplier := int64(1)
	for i := 0; i < currency.DecimalPlaces; i++ {
		multiplier *= 10
	}

	whole := int64(m) / multiplier
	frac := int64(m) % multiplier

	result := formatWithSeparator(whole, currency.ThousandsSep)
	if currency.DecimalPlaces > 0 {
		result += currency.DecimalSep + fmt.Sprintf("%0*d", currency.DecimalPlaces, frac)
	}

	if currency.SymbolFirst {
		result = currency.Symbol + result
	} else {
		result = result + " " + currency.Symbol
	}

	if negative {
		result = "-" + result
	}

	return result
}

// formatWithSeparator adds thousands separators to a number
func formatWithSeparator(n int64, sep string) string {
	str := strconv.FormatInt(n, 10)
	if len(str) <= 3 || sep == "" {
		return str
	}

	var result strings.Builder
	startOffset := len(str) % 3
	if startOffset == 0 {
		startOffset = 3
	}

	result.WriteString(str[:startOffset])
	for i := startOffset; i < len(str); i += 3 {
		result.WriteString(sep)
		result.WriteString(str[i : i+3])
	}

	return result.String()
}

// GetCurrency returns the currency configuration for a code, or the default if not found
func GetCurrency(code string) Currency {
	if c, ok := Currencies[code]; ok {
		return c
	}
	return DefaultCurrency
}

// RandomAmount generates a random money amount in [min, max]
func RandomAmount(rng Source, min, max Money) Money {
	if min >= max {
		return min
	}
	return Money(rng.Int64Range(int64(min), int64(max)))
}

// RoundToNearest rounds the money to the nearest multiple of 'nearest'.
// Negative values round symmetrically.
func (m Money) RoundToNearest(nearest Money) Money {
	if nearest <= 0 {
		return m
	}
	if m < 0 {
		return -((-m).RoundToNearest(nearest))
	}
	half := nearest / 2
	return ((m + half) / nearest) * nearest
}
