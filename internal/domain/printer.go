// Package domain contains core business types and interfaces.
//
// This file defines the label printer preset catalog: physical roll and
// sheet stocks for the printers commonly used by Japanese merchants.
// Read-only configuration, loaded once.
package domain

// PrinterBrand groups presets in the picker UI.
type PrinterBrand string

const (
	BrandBrother PrinterBrand = "brother"
	BrandZebra   PrinterBrand = "zebra"
	BrandSATO    PrinterBrand = "sato"
	BrandAone    PrinterBrand = "aone" // エーワン A4 sheet stocks
	BrandGeneric PrinterBrand = "generic"
)

// LabelPrinterPreset describes one physical label stock. Continuous rolls
// have a fixed width and a user-supplied height. Sheet stocks declare how
// labels tile on the page.
type LabelPrinterPreset struct {
	ID          string
	Name        string
	Brand       PrinterBrand
	Model       string // supported printer models, free text
	PaperCode   string // manufacturer paper/part code
	Description string
	Width       float64 // mm
	Height      float64 // mm; ignored when Continuous
	Continuous  bool    // roll stock; height chosen by the user

	// Sheet layout, for multi-up A4 stocks only.
	LabelsPerPage    int
	MarginTopMm      float64
	MarginLeftMm     float64
	GapBetweenLabels float64 // mm
}

// IsSheet returns true for pre-perforated multi-up sheet stocks.
func (p LabelPrinterPreset) IsSheet() bool {
	return p.LabelsPerPage > 1
}

// printerPresets is the static preset catalog.
var printerPresets = []LabelPrinterPreset{
	{
		ID: "brother-dk-1201", Name: "Brother DK-1201 (29×90mm)", Brand: BrandBrother,
		Model: "QL-700 / QL-800 / QL-820NWB", PaperCode: "DK-1201",
		Description: "宛名ラベル・ダイカット", Width: 29, Height: 90,
	},
	{
		ID: "brother-dk-22205", Name: "Brother DK-2205 (62mm 長尺)", Brand: BrandBrother,
		Model: "QL-700 / QL-800 / QL-820NWB", PaperCode: "DK-2205",
		Description: "長尺紙テープ・連続ロール", Width: 62, Continuous: true,
	},
	{
		ID: "brother-dk-1209", Name: "Brother DK-1209 (29×62mm)", Brand: BrandBrother,
		Model: "QL-700 / QL-800", PaperCode: "DK-1209",
		Description: "小型宛名ラベル・ダイカット", Width: 62, Height: 29,
	},
	{
		ID: "zebra-40x28", Name: "Zebra 40×28mm", Brand: BrandZebra,
		Model: "ZD230 / ZD420 / GK420d",
		Description: "感熱ラベルロール", Width: 40, Height: 28,
	},
	{
		ID: "zebra-50x30", Name: "Zebra 50×30mm", Brand: BrandZebra,
		Model: "ZD230 / ZD420 / GK420d",
		Description: "感熱ラベルロール", Width: 50, Height: 30,
	},
	{
		ID: "sato-p40x28", Name: "SATO 40×28mm", Brand: BrandSATO,
		Model: "レスプリ / バートロニクス",
		Description: "標準プライスラベル", Width: 40, Height: 28,
	},
	{
		ID: "sato-p60x40", Name: "SATO 60×40mm", Brand: BrandSATO,
		Model: "レスプリ / バートロニクス",
		Description: "中型プライスラベル", Width: 60, Height: 40,
	},
	{
		ID: "aone-a4-24", Name: "エーワン A4 24面 (70×37mm)", Brand: BrandAone,
		PaperCode:   "72224",
		Description: "A4シート 24面付け", Width: 70, Height: 37,
		LabelsPerPage: 24, MarginTopMm: 11, MarginLeftMm: 0, GapBetweenLabels: 0,
	},
	{
		ID: "aone-a4-65", Name: "エーワン A4 65面 (38.1×21.2mm)", Brand: BrandAone,
		PaperCode:   "72265",
		Description: "A4シート 65面付け", Width: 38.1, Height: 21.2,
		LabelsPerPage: 65, MarginTopMm: 10.9, MarginLeftMm: 4.75, GapBetweenLabels: 2.5,
	},
	{
		ID: "generic-40x28", Name: "汎用 40×28mm", Brand: BrandGeneric,
		Description: "一般的なプライスラベルサイズ", Width: 40, Height: 28,
	},
	{
		ID: "generic-60x40", Name: "汎用 60×40mm", Brand: BrandGeneric,
		Description: "中型ラベルサイズ", Width: 60, Height: 40,
	},
}

// PrinterPresets returns the printer preset catalog.
func PrinterPresets() []LabelPrinterPreset {
	return printerPresets
}

// PresetByID looks up a printer preset. The second return value is false
// for unknown IDs.
func PresetByID(id string) (LabelPrinterPreset, bool) {
	for _, p := range printerPresets {
		if p.ID == id {
			return p, true
		}
	}
	return LabelPrinterPreset{}, false
}
