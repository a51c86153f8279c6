// Package domain contains core business types and interfaces.
//
// This file defines the per-batch label settings and the selected product
// records the layout and print pipelines iterate over.
package domain

// Standard Japanese consumption tax rates.
const (
	TaxRateStandard = 10 // 標準税率
	TaxRateReduced  = 8  // 軽減税率 (food, beverages)
)

// SelectedProduct is one chosen product variant, the unit the layout
// engine and print document generator iterate over. It is assembled from
// untrusted catalog data; the barcode string may be empty or malformed.
type SelectedProduct struct {
	ProductID    string
	VariantID    string
	Title        string
	VariantTitle string
	SKU          string
	Barcode      string
	Price        string // decimal string as supplied by the catalog
	Quantity     int
}

// variantTitleSentinel is the placeholder title catalogs assign to the
// single variant of a product without options. It is never shown on a label.
const variantTitleSentinel = "Default Title"

// HasVariantTitle returns true if the variant title carries information
// worth printing.
func (p *SelectedProduct) HasVariantTitle() bool {
	return p.VariantTitle != "" && p.VariantTitle != variantTitleSentinel
}

// LabelSettings controls what is drawn on every label in a batch. One
// instance applies uniformly to the whole batch and is threaded explicitly
// through every layout/print call.
type LabelSettings struct {
	ShowPrice       bool
	ShowTaxIncluded bool
	TaxRate         int // TaxRateStandard or TaxRateReduced
	ShowSKU         bool
	ShowProductName bool
	ShowVariantName bool
	ShowBarcode     bool
	BarcodeFormat   BarcodeFormat
	LabelSize       LabelSize
	CustomWidth     float64 // mm, used when LabelSize is LabelSizeCustom
	CustomHeight    float64 // mm
}

// DefaultLabelSettings returns the settings a new print batch starts with.
func DefaultLabelSettings() LabelSettings {
	return LabelSettings{
		ShowPrice:       true,
		ShowTaxIncluded: true,
		TaxRate:         TaxRateStandard,
		ShowSKU:         false,
		ShowProductName: true,
		ShowVariantName: false,
		ShowBarcode:     true,
		BarcodeFormat:   BarcodeFormatCODE128,
		LabelSize:       LabelSize40x28,
	}
}

// TaxNote returns the note printed next to a tax-inclusive price, or the
// empty string when no note applies. There is deliberately no 税抜 note:
// a tax-excluded price is printed bare.
func (s LabelSettings) TaxNote() string {
	if !s.ShowTaxIncluded {
		return ""
	}
	if s.TaxRate == TaxRateReduced {
		return "（税込・軽減税率）"
	}
	return "（税込）"
}
