// Package layout computes renderable label layouts from product records
// and display settings.
//
// This file implements the preview layout engine: given a template's
// physical dimensions and a display scale factor it produces pixel
// geometry and tiered font sizes for one label instance. The same layout
// description feeds both the interactive preview and, via the print
// document generator, the print output.
package layout

import (
	"github.com/shokunin-apps/label-shokunin/internal/barcode"
	"github.com/shokunin-apps/label-shokunin/internal/domain"
	"github.com/shokunin-apps/label-shokunin/internal/render"
)

// DefaultScale is the baseline display scale: at scale 3 every font tier
// sits exactly on its legibility floor.
const DefaultScale = 3.0

// FontSizes holds the four semantic font tiers in pixels.
type FontSizes struct {
	Small  float64
	Medium float64
	Large  float64
	Price  float64
}

// Layout is the renderable description of one label at a given scale.
type Layout struct {
	WidthPx  float64
	HeightPx float64
	Padding  float64

	Fonts           FontSizes
	BarcodeHeightPx float64

	Content Content

	// Barcode holds the draw instruction for the rendering surface.
	// Nil unless Content.BarcodeState is BarcodeOK.
	Barcode *render.Instruction
}

// tierSize computes one font tier: base scaled against the baseline with
// a floor so text stays legible at small scales.
func tierSize(base, scale float64) float64 {
	size := base * scale / DefaultScale
	if size < base {
		return base
	}
	return size
}

// Render computes the layout of one label.
//
// Geometry is proportional: container pixels are template millimeters
// times scale, padding is 2mm worth of pixels, and the barcode module
// height is max(20, 25*scale/3).
func Render(p domain.SelectedProduct, s domain.LabelSettings, t domain.LabelTemplate, scale float64) Layout {
	if scale <= 0 {
		scale = DefaultScale
	}

	l := Layout{
		WidthPx:  t.Width * scale,
		HeightPx: t.Height * scale,
		Padding:  2 * scale,
		Fonts: FontSizes{
			Small:  tierSize(6, scale),
			Medium: tierSize(8, scale),
			Large:  tierSize(10, scale),
			Price:  tierSize(12, scale),
		},
		Content: BuildContent(p, s),
	}

	l.BarcodeHeightPx = 25 * scale / DefaultScale
	if l.BarcodeHeightPx < 20 {
		l.BarcodeHeightPx = 20
	}

	if l.Content.BarcodeState == BarcodeOK {
		l.Barcode = &render.Instruction{
			Target:       "preview-" + SafeHandle(p.VariantID),
			Value:        p.Barcode,
			Format:       barcode.RendererFormat(s.BarcodeFormat),
			WidthFactor:  1.2,
			Height:       l.BarcodeHeightPx,
			DisplayValue: true,
			FontSize:     l.Fonts.Small,
			Margin:       1,
		}
	}

	return l
}

// SafeHandle derives a rendering-surface handle from a variant id.
// Catalog ids contain characters unsafe for such handles (slashes,
// colons), so every non-alphanumeric byte is substituted with an
// underscore. Deterministic: the same id always yields the same handle.
func SafeHandle(id string) string {
	b := []byte(id)
	for i, c := range b {
		isAlnum := c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
		if !isAlnum {
			b[i] = '_'
		}
	}
	return string(b)
}
