// Package format holds the display helpers shared by the views
package format

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
	"math"
	"strings"
	"unicode"
)

// CurrencySymbol is prefixed to every formatted amount
const CurrencySymbol = "₹"

// DefaultTruncateLength is the length used by Truncate when max is not positive
const DefaultTruncateLength = 100

// indian groups digits the en-IN way: the last three, then pairs
var indian = message.NewPrinter(language.MustParse("en-IN"))

// Currency formats amount as whole rupees with Indian digit grouping,
// e.g. 150000 -> "₹1,50,000". Fractions are rounded half away from zero.
func Currency(amount float64) string {
	rounded := decimal.NewFromFloat(amount).Round(0)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	return sign + CurrencySymbol + indian.Sprint(number.Decimal(rounded.Abs().IntPart()))
}

// DiscountPercent is the whole-number saving of price against originalPrice
func DiscountPercent(price, originalPrice float64) int {
	if originalPrice <= 0 {
		return 0
	}
	return int(math.Round((originalPrice - price) / originalPrice * 100))
}

// Truncate shortens text to max runes and appends "..."
func Truncate(text string, max int) string {
	if max <= 0 {
		max = DefaultTruncateLength
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return strings.TrimRightFunc(string(runes[:max]), unicode.IsSpace) + "..."
}
