package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shokunin-apps/label-shokunin/internal/domain"
)

func product() domain.SelectedProduct {
	return domain.SelectedProduct{
		ProductID:    "gid://catalog/Product/1",
		VariantID:    "gid://catalog/ProductVariant/11",
		Title:        "有機緑茶",
		VariantTitle: "100g",
		SKU:          "TEA-100",
		Barcode:      "4901234567894",
		Price:        "1000",
		Quantity:     1,
	}
}

func allOn() domain.LabelSettings {
	return domain.LabelSettings{
		ShowPrice:       true,
		ShowTaxIncluded: true,
		TaxRate:         domain.TaxRateStandard,
		ShowSKU:         true,
		ShowProductName: true,
		ShowVariantName: true,
		ShowBarcode:     true,
		BarcodeFormat:   domain.BarcodeFormatJAN13,
	}
}

func TestBuildContent_AllSectionsVisible(t *testing.T) {
	c := BuildContent(product(), allOn())

	assert.Equal(t, BarcodeOK, c.BarcodeState)
	assert.True(t, c.Barcode.Valid)

	assert.True(t, c.ShowName)
	assert.Equal(t, "有機緑茶", c.Name)

	assert.True(t, c.ShowVariant)
	assert.Equal(t, "100g", c.Variant)

	assert.True(t, c.ShowSKU)
	assert.Equal(t, "SKU: TEA-100", c.SKU)

	assert.True(t, c.ShowPrice)
	assert.Equal(t, "¥1,100", c.Price)
	assert.Equal(t, "（税込）", c.TaxNote)
}

func TestBuildContent_SettingsHideSections(t *testing.T) {
	s := allOn()
	s.ShowProductName = false
	s.ShowSKU = false
	s.ShowPrice = false
	s.ShowBarcode = false

	c := BuildContent(product(), s)

	assert.Equal(t, BarcodeHidden, c.BarcodeState)
	assert.False(t, c.ShowName)
	assert.Empty(t, c.Name)
	assert.False(t, c.ShowSKU)
	assert.False(t, c.ShowPrice)
	assert.Empty(t, c.Price)
	assert.Empty(t, c.TaxNote)
}

func TestBuildContent_EmptyBarcodeIsExplicitState(t *testing.T) {
	p := product()
	p.Barcode = ""

	c := BuildContent(p, allOn())

	// An empty barcode must surface as a visible placeholder, never as a
	// silently omitted section.
	assert.Equal(t, BarcodeMissing, c.BarcodeState)
	assert.Equal(t, "バーコード未設定", c.BarcodeMessage)
}

func TestBuildContent_InvalidBarcodeKeepsRawValue(t *testing.T) {
	p := product()
	p.Barcode = "4901234567890" // wrong check digit

	c := BuildContent(p, allOn())

	assert.Equal(t, BarcodeInvalid, c.BarcodeState)
	assert.Equal(t, "無効なバーコード: 4901234567890", c.BarcodeMessage)
	assert.Equal(t, "4901234567890", c.Barcode.Raw)
}

func TestBuildContent_DefaultVariantTitleSuppressed(t *testing.T) {
	p := product()
	p.VariantTitle = "Default Title"

	c := BuildContent(p, allOn())

	assert.False(t, c.ShowVariant)
	assert.Empty(t, c.Variant)
}

func TestBuildContent_EmptySKUHidesSection(t *testing.T) {
	p := product()
	p.SKU = ""

	c := BuildContent(p, allOn())

	assert.False(t, c.ShowSKU)
	assert.Empty(t, c.SKU)
}

func TestBuildContent_ReducedTaxRateNote(t *testing.T) {
	s := allOn()
	s.TaxRate = domain.TaxRateReduced

	c := BuildContent(product(), s)

	require.True(t, c.ShowPrice)
	assert.Equal(t, "¥1,080", c.Price)
	assert.Equal(t, "（税込・軽減税率）", c.TaxNote)
}

func TestBuildContent_TaxExcludedPriceIsBare(t *testing.T) {
	s := allOn()
	s.ShowTaxIncluded = false

	c := BuildContent(product(), s)

	assert.Equal(t, "¥1,000", c.Price)
	assert.Empty(t, c.TaxNote)
}
