// Package layout computes renderable label layouts from product records
// and display settings.
//
// This file holds the single settings-interpretation step shared by the
// on-screen preview layout and the print document generator. Both paths
// must consume BuildContent so preview and print never diverge on which
// sections a label shows.
package layout

import (
	"github.com/shokunin-apps/label-shokunin/internal/barcode"
	"github.com/shokunin-apps/label-shokunin/internal/domain"
	"github.com/shokunin-apps/label-shokunin/internal/price"
)

// BarcodeState classifies the barcode section of one label.
type BarcodeState string

const (
	// BarcodeHidden means the settings exclude the barcode section.
	BarcodeHidden BarcodeState = "hidden"
	// BarcodeOK means the value validated and can be drawn.
	BarcodeOK BarcodeState = "ok"
	// BarcodeMissing means the product has no barcode value. Rendered as
	// an explicit placeholder so operators spot the gap before printing.
	BarcodeMissing BarcodeState = "missing"
	// BarcodeInvalid means the value failed checksum/format validation.
	// Rendered as an explicit error state, never silently omitted.
	BarcodeInvalid BarcodeState = "invalid"
)

// Placeholder texts for non-drawable barcode sections.
const (
	barcodeMissingText = "バーコード未設定"
	barcodeInvalidText = "無効なバーコード"
)

// Content is the settings-resolved content of one label: which sections
// are visible and the exact strings they show.
type Content struct {
	Barcode        domain.BarcodePayload
	BarcodeState   BarcodeState
	BarcodeMessage string // placeholder/error text when not drawable

	ShowName bool
	Name     string

	ShowVariant bool
	Variant     string

	ShowSKU bool
	SKU     string // rendered as "SKU: <value>"

	ShowPrice bool
	Price     string // formatted yen string
	TaxNote   string // empty when no note applies
}

// BuildContent resolves settings and product data into label content.
func BuildContent(p domain.SelectedProduct, s domain.LabelSettings) Content {
	c := Content{
		Barcode:      barcode.Payload(p.Barcode, s.BarcodeFormat),
		BarcodeState: BarcodeHidden,
	}

	if s.ShowBarcode {
		switch {
		case p.Barcode == "":
			c.BarcodeState = BarcodeMissing
			c.BarcodeMessage = barcodeMissingText
		case !c.Barcode.Valid:
			c.BarcodeState = BarcodeInvalid
			c.BarcodeMessage = barcodeInvalidText + ": " + p.Barcode
		default:
			c.BarcodeState = BarcodeOK
		}
	}

	if s.ShowProductName {
		c.ShowName = true
		c.Name = p.Title
	}

	if s.ShowVariantName && p.HasVariantTitle() {
		c.ShowVariant = true
		c.Variant = p.VariantTitle
	}

	if s.ShowSKU && p.SKU != "" {
		c.ShowSKU = true
		c.SKU = "SKU: " + p.SKU
	}

	if s.ShowPrice {
		c.ShowPrice = true
		c.Price = price.Format(p.Price, s.ShowTaxIncluded, s.TaxRate)
		c.TaxNote = s.TaxNote()
	}

	return c
}
