// Package domain contains core business types and interfaces.
//
// This file defines the read-only label template catalog. Templates are
// immutable configuration loaded once at process start; there is no
// runtime mutation path.
package domain

// LabelSize is a nominal size class for a label.
type LabelSize string

const (
	LabelSize40x28  LabelSize = "40x28"  // 40mm x 28mm (standard)
	LabelSize60x40  LabelSize = "60x40"  // 60mm x 40mm (medium)
	LabelSize80x50  LabelSize = "80x50"  // 80mm x 50mm (large)
	LabelSize100x50 LabelSize = "100x50" // 100mm x 50mm (shelf label)
	LabelSizeA4x24  LabelSize = "a4-24"  // A4 sheet, 24 labels (Avery compatible)
	LabelSizeA4x65  LabelSize = "a4-65"  // A4 sheet, 65 labels (Avery compatible)
	LabelSizeCustom LabelSize = "custom"
)

// Dimensions holds a physical label size in millimeters.
type Dimensions struct {
	Width  float64
	Height float64
}

// labelSizes maps nominal size classes to physical dimensions.
var labelSizes = map[LabelSize]Dimensions{
	LabelSize40x28:  {Width: 40, Height: 28},
	LabelSize60x40:  {Width: 60, Height: 40},
	LabelSize80x50:  {Width: 80, Height: 50},
	LabelSize100x50: {Width: 100, Height: 50},
	LabelSizeA4x24:  {Width: 70, Height: 37},
	LabelSizeA4x65:  {Width: 38.1, Height: 21.2},
}

// SizeDimensions returns the physical dimensions for a nominal size class.
// Unknown sizes fall back to the standard 40x28 label.
func SizeDimensions(size LabelSize) Dimensions {
	if d, ok := labelSizes[size]; ok {
		return d
	}
	return labelSizes[LabelSize40x28]
}

// ElementType identifies the kind of a template element descriptor.
type ElementType string

const (
	ElementBarcode ElementType = "barcode"
	ElementText    ElementType = "text"
	ElementPrice   ElementType = "price"
)

// LabelElement is a positioned element descriptor on a preset template.
// Coordinates and sizes are in millimeters from the label's top-left corner.
type LabelElement struct {
	Type     ElementType
	X        float64
	Y        float64
	Width    float64
	Height   float64
	Field    string // data field to display, for text elements
	FontSize float64
	Bold     bool
}

// LabelTemplate is a preset label arrangement. Dynamic, printer-driven
// templates carry an empty element list and rely on the layout engine's
// default arrangement.
type LabelTemplate struct {
	ID          string
	Name        string
	NameJa      string
	Description string
	Size        LabelSize
	Width       float64 // mm
	Height      float64 // mm
	Elements    []LabelElement
}

// labelTemplates is the static preset catalog.
var labelTemplates = []LabelTemplate{
	{
		ID:          "simple",
		Name:        "Simple",
		NameJa:      "シンプル",
		Description: "バーコードと価格のみの基本レイアウト",
		Size:        LabelSize40x28,
		Width:       40,
		Height:      28,
	},
	{
		ID:          "standard",
		Name:        "Standard",
		NameJa:      "スタンダード",
		Description: "商品名・バーコード・価格の標準レイアウト",
		Size:        LabelSize60x40,
		Width:       60,
		Height:      40,
	},
	{
		ID:          "detailed",
		Name:        "Detailed",
		NameJa:      "詳細",
		Description: "SKU・バリエーションを含む詳細レイアウト",
		Size:        LabelSize80x50,
		Width:       80,
		Height:      50,
	},
}

// Templates returns the preset template catalog.
func Templates() []LabelTemplate {
	return labelTemplates
}

// TemplateByID looks up a preset template. The second return value is
// false for unknown IDs.
func TemplateByID(id string) (LabelTemplate, bool) {
	for _, t := range labelTemplates {
		if t.ID == id {
			return t, true
		}
	}
	return LabelTemplate{}, false
}

// DynamicTemplate builds a printer-driven template with the given physical
// size and no preset elements.
func DynamicTemplate(width, height float64) LabelTemplate {
	return LabelTemplate{
		ID:     "dynamic",
		Name:   "Dynamic",
		NameJa: "ダイナミック",
		Size:   LabelSizeCustom,
		Width:  width,
		Height: height,
	}
}
