package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeDimensions(t *testing.T) {
	tests := []struct {
		name       string
		size       LabelSize
		wantWidth  float64
		wantHeight float64
	}{
		{"standard", LabelSize40x28, 40, 28},
		{"medium", LabelSize60x40, 60, 40},
		{"large", LabelSize80x50, 80, 50},
		{"shelf", LabelSize100x50, 100, 50},
		{"a4 24-up", LabelSizeA4x24, 70, 37},
		{"a4 65-up", LabelSizeA4x65, 38.1, 21.2},
		{"unknown falls back to standard", LabelSize("999x999"), 40, 28},
		{"custom has no fixed size, falls back", LabelSizeCustom, 40, 28},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := SizeDimensions(tt.size)
			assert.Equal(t, tt.wantWidth, d.Width)
			assert.Equal(t, tt.wantHeight, d.Height)
		})
	}
}

func TestTemplateByID(t *testing.T) {
	tmpl, ok := TemplateByID("standard")
	require.True(t, ok)
	assert.Equal(t, LabelSize60x40, tmpl.Size)
	assert.Equal(t, 60.0, tmpl.Width)

	_, ok = TemplateByID("nonexistent")
	assert.False(t, ok)
}

func TestDynamicTemplate(t *testing.T) {
	tmpl := DynamicTemplate(62, 29)
	assert.Equal(t, LabelSizeCustom, tmpl.Size)
	assert.Equal(t, 62.0, tmpl.Width)
	assert.Equal(t, 29.0, tmpl.Height)
	assert.Empty(t, tmpl.Elements)
}

func TestPresetByID(t *testing.T) {
	p, ok := PresetByID("brother-dk-22205")
	require.True(t, ok)
	assert.True(t, p.Continuous)
	assert.Equal(t, 62.0, p.Width)

	_, ok = PresetByID("nonexistent")
	assert.False(t, ok)
}

func TestLabelPrinterPreset_IsSheet(t *testing.T) {
	sheet, ok := PresetByID("aone-a4-65")
	require.True(t, ok)
	assert.True(t, sheet.IsSheet())
	assert.Equal(t, 65, sheet.LabelsPerPage)

	roll, ok := PresetByID("zebra-40x28")
	require.True(t, ok)
	assert.False(t, roll.IsSheet())
}
