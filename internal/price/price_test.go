package price

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name            string
		price           string
		showTaxIncluded bool
		taxRate         int
		want            string
	}{
		{name: "standard rate tax included", price: "1000", showTaxIncluded: true, taxRate: 10, want: "¥1,100"},
		{name: "reduced rate tax included", price: "1000", showTaxIncluded: true, taxRate: 8, want: "¥1,080"},
		{name: "tax excluded", price: "1000", showTaxIncluded: false, taxRate: 10, want: "¥1,000"},
		{name: "grouping over one million", price: "1234567", showTaxIncluded: false, taxRate: 10, want: "¥1,234,567"},
		{name: "small price no grouping", price: "500", showTaxIncluded: true, taxRate: 10, want: "¥550"},
		{name: "fractional tax rounds half away from zero", price: "105", showTaxIncluded: true, taxRate: 10, want: "¥116"},
		{name: "unparsable price degrades to zero", price: "abc", showTaxIncluded: true, taxRate: 10, want: "¥0"},
		{name: "empty price degrades to zero", price: "", showTaxIncluded: false, taxRate: 10, want: "¥0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.price, tt.showTaxIncluded, tt.taxRate))
		})
	}
}

func TestFormatIsPure(t *testing.T) {
	first := Format("1980", true, 10)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Format("1980", true, 10))
	}
}

func TestFormatWithTax(t *testing.T) {
	t.Run("standard rate", func(t *testing.T) {
		got := FormatWithTax("1000", 10)
		assert.Equal(t, "¥1,000", got.TaxExcluded)
		assert.Equal(t, "¥1,100", got.TaxIncluded)
		assert.Equal(t, "¥100", got.TaxAmount)
	})

	t.Run("reduced rate", func(t *testing.T) {
		got := FormatWithTax("1005", 8)
		assert.Equal(t, "¥1,005", got.TaxExcluded)
		assert.Equal(t, "¥80", got.TaxAmount) // 80.4 rounds down
		assert.Equal(t, "¥1,085", got.TaxIncluded)
	})

	t.Run("two-step rounding differs from rounding the product", func(t *testing.T) {
		// 999.5 * 10% = 99.95 -> 100, then 999.5 + 100 -> 1100.
		// Rounding 999.5 * 1.1 = 1099.45 directly would give 1099.
		got := FormatWithTax("999.5", 10)
		assert.Equal(t, "¥100", got.TaxAmount)
		assert.Equal(t, "¥1,100", got.TaxIncluded)
	})

	t.Run("unparsable price degrades to zeros", func(t *testing.T) {
		got := FormatWithTax("?", 10)
		assert.Equal(t, Breakdown{TaxExcluded: "¥0", TaxIncluded: "¥0", TaxAmount: "¥0"}, got)
	})
}
