// Package currencyutils provides Brazilian Real amount parsing and
// formatting used throughout the application.
package currencyutils

import (
	"errors"
	"regexp"
	"strings"

	"hsouza/julius/internal/parsererror"

	"github.com/shopspring/decimal"
)

// brlAmountRe matches a well-formed Brazilian amount: optional sign,
// optional dot thousands groups, mandatory two comma decimals.
// "1.234,56", "45,90" and "-120,00" are valid; "1,234.56" is not.
var brlAmountRe = regexp.MustCompile(`^-?\d{1,3}(?:\.\d{3})*,\d{2}$|^-?\d+,\d{2}$`)

// ParseBRL parses a Brazilian-formatted amount string ("1.234,56") into a
// decimal value. The input must already be stripped of the "R$" symbol.
// Malformed strings are rejected rather than guessed at: statement parsing
// must never silently turn garbage into money.
func ParseBRL(amountStr string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(amountStr)
	if trimmed == "" {
		return decimal.Zero, amountParseError(amountStr, errors.New("empty amount string"))
	}
	if !brlAmountRe.MatchString(trimmed) {
		return decimal.Zero, amountParseError(amountStr, errors.New("malformed BRL amount"))
	}

	standardized := strings.ReplaceAll(trimmed, ".", "")
	standardized = strings.ReplaceAll(standardized, ",", ".")

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, amountParseError(amountStr, err)
	}
	return amount, nil
}

func amountParseError(value string, err error) error {
	return &parsererror.ParseError{Parser: "statement", Field: "amount", Value: value, Err: err}
}

// FormatBRL formats a decimal amount in the Brazilian convention with two
// decimal places and dot thousands separators ("1.234,56").
// FormatBRL and ParseBRL round-trip for any amount with two decimals.
func FormatBRL(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	parts := strings.SplitN(fixed, ".", 2)
	intPart, decPart := parts[0], parts[1]

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := strings.Join(groups, ".") + "," + decPart
	if negative {
		out = "-" + out
	}
	return out
}

// FormatBRLWithSymbol renders an amount as shown to end users ("R$ 1.234,56").
func FormatBRLWithSymbol(amount decimal.Decimal) string {
	return "R$ " + FormatBRL(amount)
}

// IsNegative checks if an amount is negative
func IsNegative(amount decimal.Decimal) bool {
	return amount.LessThan(decimal.Zero)
}

// IsPositive checks if an amount is positive
func IsPositive(amount decimal.Decimal) bool {
	return amount.GreaterThan(decimal.Zero)
}

// IsZero checks if an amount is zero
func IsZero(amount decimal.Decimal) bool {
	return amount.Equal(decimal.Zero)
}
