// Package domain contains core business types and interfaces.
//
// This file defines barcode formats and the validated payload handed to
// the rendering surface.
package domain

// BarcodeFormat identifies the logical barcode symbology of a product.
//
// JAN and EAN are distinguished for business/display purposes only; the
// rendering layer collapses both onto the international symbology.
type BarcodeFormat string

const (
	BarcodeFormatJAN13   BarcodeFormat = "JAN13"   // Japanese Article Number (EAN-13 with 45/49 prefix)
	BarcodeFormatJAN8    BarcodeFormat = "JAN8"    // Short JAN
	BarcodeFormatEAN13   BarcodeFormat = "EAN13"   // European Article Number
	BarcodeFormatEAN8    BarcodeFormat = "EAN8"    // Short EAN
	BarcodeFormatCODE128 BarcodeFormat = "CODE128" // General purpose
	BarcodeFormatCODE39  BarcodeFormat = "CODE39"  // Alphanumeric
	BarcodeFormatQR      BarcodeFormat = "QR"      // QR code
)

// String returns the string representation of the format.
func (f BarcodeFormat) String() string {
	return string(f)
}

// IsValid returns true if the format is a recognized value.
func (f BarcodeFormat) IsValid() bool {
	switch f {
	case BarcodeFormatJAN13, BarcodeFormatJAN8, BarcodeFormatEAN13,
		BarcodeFormatEAN8, BarcodeFormatCODE128, BarcodeFormatCODE39,
		BarcodeFormatQR:
		return true
	}
	return false
}

// BarcodePayload is a barcode value paired with its format and validation
// outcome. It is derived fresh from the product's stored barcode string on
// every render and never persisted.
type BarcodePayload struct {
	Raw    string        // Original value as stored on the product, preserved for display
	Format BarcodeFormat // Declared or detected format
	Valid  bool          // Checksum/format validation outcome
}
