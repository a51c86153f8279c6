// Package price formats Japanese yen prices for label rendering.
//
// A malformed upstream price must never crash label rendering, so
// unparsable input degrades to a zero-value price string. Rounding is
// always half-away-from-zero on the final yen amount; yen has no subunit
// and no fractional currency is ever displayed.
package price

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer renders digit grouping the way ja-JP locales do (¥1,100).
var printer = message.NewPrinter(language.Japanese)

// Yen formats a rounded yen amount with grouping and the currency glyph.
func Yen(amount float64) string {
	return printer.Sprintf("¥%d", int64(math.Round(amount)))
}

// parse converts a decimal price string from the product catalog.
// The boolean is false for unparsable input.
func parse(price string) (float64, bool) {
	v, err := strconv.ParseFloat(price, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Format renders a product price for a label. When showTaxIncluded is set
// the tax is added before rounding; taxRate is a percentage (10 or 8).
func Format(price string, showTaxIncluded bool, taxRate int) string {
	v, ok := parse(price)
	if !ok {
		return "¥0"
	}

	if showTaxIncluded {
		v = v * (1 + float64(taxRate)/100)
	}
	return Yen(v)
}

// Breakdown carries a price formatted three ways.
type Breakdown struct {
	TaxExcluded string
	TaxIncluded string
	TaxAmount   string
}

// FormatWithTax renders the tax breakdown of a price. The tax amount and
// the tax-included total are rounded independently (the stored price is
// assumed already rounded), which can differ by ±1 yen from rounding the
// product directly. Callers depend on this two-step rounding.
func FormatWithTax(price string, taxRate int) Breakdown {
	v, ok := parse(price)
	if !ok {
		return Breakdown{TaxExcluded: "¥0", TaxIncluded: "¥0", TaxAmount: "¥0"}
	}

	taxAmount := math.Round(v * float64(taxRate) / 100)
	taxIncluded := math.Round(v + taxAmount)

	return Breakdown{
		TaxExcluded: Yen(v),
		TaxIncluded: Yen(taxIncluded),
		TaxAmount:   Yen(taxAmount),
	}
}
