package render

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/code39"
	"github.com/boombuler/barcode/ean"
	"github.com/boombuler/barcode/qr"
)

// EncoderSurface renders symbols with the boombuler/barcode encoder.
// Stateless and safe for concurrent use.
type EncoderSurface struct{}

// NewEncoderSurface creates the default rendering surface.
func NewEncoderSurface() *EncoderSurface {
	return &EncoderSurface{}
}

// pixelsPerUnit converts the instruction's abstract units into pixels.
// The encoder works in whole pixels; 3px per unit keeps small labels crisp.
const pixelsPerUnit = 3

// Draw encodes and scales one symbol. Encode errors (bad checksum for
// EAN, characters outside the CODE39 alphabet) surface as rendering
// failures for the caller to downgrade.
func (s *EncoderSurface) Draw(inst Instruction) (image.Image, error) {
	var (
		bc  barcode.Barcode
		err error
	)

	switch inst.Format {
	case "EAN13", "EAN8":
		bc, err = ean.Encode(digitsOnly(inst.Value))
	case "CODE39":
		bc, err = code39.Encode(inst.Value, true, true)
	case "QR":
		bc, err = qr.Encode(inst.Value, qr.M, qr.Auto)
	default:
		// CODE128 doubles as the fallback symbology.
		bc, err = code128.Encode(inst.Value)
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s %q: %w", inst.Format, inst.Value, err)
	}

	module := int(math.Round(inst.WidthFactor * pixelsPerUnit))
	if module < 1 {
		module = 1
	}
	width := bc.Bounds().Dx() * module

	height := int(math.Round(inst.Height * pixelsPerUnit))
	if inst.Format == "QR" {
		// QR symbols scale square.
		if width < height {
			width = height
		}
		height = width
	}
	if height < bc.Bounds().Dy() {
		height = bc.Bounds().Dy()
	}

	scaled, err := barcode.Scale(bc, width, height)
	if err != nil {
		return nil, fmt.Errorf("scale %s %q: %w", inst.Format, inst.Value, err)
	}
	return scaled, nil
}

// digitsOnly strips formatting characters before handing the value to the
// EAN encoder, which accepts digits only.
func digitsOnly(v string) string {
	var b strings.Builder
	for _, r := range v {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
