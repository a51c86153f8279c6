// Package printdoc builds complete print payloads for label batches.
//
// Given the selected products, the batch settings, and either a preset
// template or a label printer preset, the generator resolves page
// geometry for the physical output mode, renders every barcode through
// the rendering surface, and returns a self-contained document for the
// print-triggering surface. One bad barcode degrades to an inline error
// marker on its own label; it never aborts the batch.
package printdoc

import (
	"image"
	"log/slog"

	"github.com/google/uuid"

	"github.com/shokunin-apps/label-shokunin/internal/barcode"
	"github.com/shokunin-apps/label-shokunin/internal/domain"
	"github.com/shokunin-apps/label-shokunin/internal/layout"
	"github.com/shokunin-apps/label-shokunin/internal/render"
)

// Mode is the physical output mode of a print document.
type Mode string

const (
	// ModeSheet is general A4 browser printing, one label block per row
	// with dashed borders for on-screen distinguishability.
	ModeSheet Mode = "sheet"
	// ModeMultiUpSheet tiles labels onto a pre-perforated A4 sheet stock.
	ModeMultiUpSheet Mode = "multi_up_sheet"
	// ModeContinuousRoll sizes each page to exactly one label so output
	// aligns with the printer's feed and cut points.
	ModeContinuousRoll Mode = "continuous_roll"
)

// renderErrorText is the inline marker shown in place of a barcode the
// surface could not draw.
const renderErrorText = "バーコード生成エラー"

// PageSetup is the page-level geometry of the document.
type PageSetup struct {
	Mode         Mode
	A4           bool    // page is A4; otherwise PageWidth/HeightMm apply
	PageWidthMm  float64 // continuous roll: equals one label
	PageHeightMm float64
	MarginTopMm  float64
	MarginLeftMm float64
	GapMm        float64 // gap between labels on multi-up sheets
	ShowBorders  bool    // dashed borders on screen; always off on label media
	BreakPerUnit bool    // force a page boundary after every label
}

// FontSizesPt holds point-based font tiers derived from the label's
// physical width. Print output sizes in points where the preview sizes in
// pixels; the two tiering rules are deliberately separate contracts.
type FontSizesPt struct {
	Name    float64
	Variant float64
	SKU     float64
	Price   float64
	TaxNote float64
}

// Label is the print payload for one product.
type Label struct {
	Handle  string // rendering-surface handle derived from the variant id
	Product domain.SelectedProduct
	Content layout.Content

	// Barcode is the draw instruction handed to the surface. Nil when the
	// content's barcode section is not drawable.
	Barcode *render.Instruction
	// Symbol is the pre-rendered barcode image, nil when not drawable or
	// when rendering failed.
	Symbol image.Image
	// RenderError carries the inline error marker text when the surface
	// failed for this label.
	RenderError string
}

// Document is a complete standalone print payload.
type Document struct {
	ID            uuid.UUID
	Page          PageSetup
	LabelWidthMm  float64
	LabelHeightMm float64
	Fonts         FontSizesPt
	Labels        []Label
}

// Input selects what to print and on what stock. Exactly one of Template
// or Preset must be set.
type Input struct {
	Products []domain.SelectedProduct
	Settings domain.LabelSettings

	Template *domain.LabelTemplate      // A4 browser printing
	Preset   *domain.LabelPrinterPreset // dedicated label printer stock

	// Custom dimension overrides in mm. Height is required for continuous
	// roll presets; zero means "use the preset/template value".
	CustomWidthMm  float64
	CustomHeightMm float64
}

// Generator builds print documents. Stateless apart from its collaborators.
type Generator struct {
	surface render.Surface
	logger  *slog.Logger
}

// NewGenerator creates a Generator. The surface may be nil, in which case
// documents carry draw instructions but no pre-rendered symbols.
func NewGenerator(surface render.Surface, logger *slog.Logger) *Generator {
	return &Generator{surface: surface, logger: logger}
}

// defaultContinuousHeightMm is used when a continuous roll preset is
// selected without a user-supplied height.
const defaultContinuousHeightMm = 40

// Build produces the print document for a batch.
func (g *Generator) Build(in Input) (*Document, error) {
	const op = "printdoc.build"

	if len(in.Products) == 0 {
		return nil, domain.Invalid(op, "no products selected")
	}
	if in.Template == nil && in.Preset == nil {
		return nil, domain.Invalid(op, "a template or printer preset is required")
	}

	width, height := g.resolveDimensions(in)

	doc := &Document{
		ID:            uuid.New(),
		Page:          pageSetup(in.Preset, width, height),
		LabelWidthMm:  width,
		LabelHeightMm: height,
		Fonts: FontSizesPt{
			Name:    clamp(6, 10, width/6),
			Variant: clamp(5, 8, width/8),
			SKU:     clamp(5, 7, width/9),
			Price:   clamp(8, 14, width/4),
			TaxNote: clamp(4, 6, width/10),
		},
		Labels: make([]Label, 0, len(in.Products)),
	}

	for _, p := range in.Products {
		doc.Labels = append(doc.Labels, g.buildLabel(p, in.Settings, width, height))
	}

	return doc, nil
}

// resolveDimensions picks the label's physical size: custom overrides
// first, then the preset (continuous rolls need a supplied height), then
// the template.
func (g *Generator) resolveDimensions(in Input) (width, height float64) {
	if in.Preset != nil {
		width = in.Preset.Width
		height = in.Preset.Height
		if in.Preset.Continuous {
			height = defaultContinuousHeightMm
		}
	} else {
		width = in.Template.Width
		height = in.Template.Height
	}

	if in.CustomWidthMm > 0 {
		width = in.CustomWidthMm
	}
	if in.CustomHeightMm > 0 {
		height = in.CustomHeightMm
	}
	return width, height
}

// pageSetup derives the page geometry for the output mode.
func pageSetup(preset *domain.LabelPrinterPreset, labelWidth, labelHeight float64) PageSetup {
	switch {
	case preset == nil:
		// General A4 printing from the browser.
		return PageSetup{
			Mode:         ModeSheet,
			A4:           true,
			MarginTopMm:  10,
			MarginLeftMm: 10,
			GapMm:        4,
			ShowBorders:  true,
		}
	case preset.IsSheet():
		// Pre-perforated multi-up stock: flow layout bounded by the
		// sheet's own margins, no artificial page breaking.
		return PageSetup{
			Mode:         ModeMultiUpSheet,
			A4:           true,
			MarginTopMm:  preset.MarginTopMm,
			MarginLeftMm: preset.MarginLeftMm,
			GapMm:        preset.GapBetweenLabels,
		}
	default:
		// Roll stock: the page is one label, cut point per label.
		return PageSetup{
			Mode:         ModeContinuousRoll,
			PageWidthMm:  labelWidth,
			PageHeightMm: labelHeight,
			BreakPerUnit: true,
		}
	}
}

// buildLabel resolves one product into its print payload. Content
// interpretation is shared with the preview layout engine.
func (g *Generator) buildLabel(p domain.SelectedProduct, s domain.LabelSettings, width, height float64) Label {
	l := Label{
		Handle:  "barcode-" + layout.SafeHandle(p.VariantID),
		Product: p,
		Content: layout.BuildContent(p, s),
	}

	if l.Content.BarcodeState != layout.BarcodeOK {
		return l
	}

	l.Barcode = &render.Instruction{
		Target:       l.Handle,
		Value:        p.Barcode,
		Format:       barcode.RendererFormat(s.BarcodeFormat),
		WidthFactor:  clamp(0.8, 1.5, width/40),
		Height:       clamp(15, 30, height/2),
		DisplayValue: true,
		FontSize:     clamp(6, 10, width/7),
		Margin:       1,
	}

	if g.surface == nil {
		return l
	}

	img, err := g.surface.Draw(*l.Barcode)
	if err != nil {
		g.logger.Warn("barcode render failed",
			"variant_id", p.VariantID,
			"barcode", p.Barcode,
			"format", l.Barcode.Format,
			"error", err,
		)
		l.RenderError = renderErrorText
		return l
	}
	l.Symbol = img

	return l
}

// clamp bounds v to [min, max].
func clamp(min, max, v float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
