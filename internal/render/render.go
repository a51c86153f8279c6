// Package render defines the barcode rendering surface consumed by the
// label pipelines, and an implementation backed by an external symbology
// encoder.
//
// The core only decides what to render; drawing the symbol itself is
// delegated here. A Draw error is a per-label rendering failure that
// callers downgrade to an inline error marker.
package render

import "image"

// Instruction tells the surface what to draw for one label.
type Instruction struct {
	Target       string  // rendering-surface handle, unique within a batch
	Value        string  // barcode payload
	Format       string  // symbology identifier: EAN13, EAN8, CODE128, CODE39, QR
	WidthFactor  float64 // module width multiplier
	Height       float64 // bar height in surface units
	DisplayValue bool    // print the human-readable value under the bars
	FontSize     float64
	Margin       float64
}

// Surface draws barcode symbols. Implementations may fail per call; the
// caller must not let one failure abort a batch.
type Surface interface {
	Draw(inst Instruction) (image.Image, error)
}
