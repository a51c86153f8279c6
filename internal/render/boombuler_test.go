package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncoderSurface_DrawEAN13(t *testing.T) {
	s := NewEncoderSurface()

	img, err := s.Draw(Instruction{
		Value:       "4901234567894",
		Format:      "EAN13",
		WidthFactor: 1.0,
		Height:      15,
	})
	require.NoError(t, err)

	bounds := img.Bounds()
	// EAN-13 is 95 modules wide at 3px per module.
	assert.Equal(t, 95*3, bounds.Dx())
	assert.Equal(t, 45, bounds.Dy())
}

func TestEncoderSurface_DrawRejectsBadCheckDigit(t *testing.T) {
	s := NewEncoderSurface()

	_, err := s.Draw(Instruction{
		Value:       "4901234567890",
		Format:      "EAN13",
		WidthFactor: 1.0,
		Height:      15,
	})
	assert.Error(t, err)
}

func TestEncoderSurface_DrawStripsFormattingForEAN(t *testing.T) {
	s := NewEncoderSurface()

	// Hyphenated input still encodes; the encoder sees digits only.
	_, err := s.Draw(Instruction{
		Value:       "49-0123456-7894",
		Format:      "EAN13",
		WidthFactor: 1.0,
		Height:      15,
	})
	assert.NoError(t, err)
}

func TestEncoderSurface_DrawCODE128(t *testing.T) {
	s := NewEncoderSurface()

	img, err := s.Draw(Instruction{
		Value:       "ITEM-42",
		Format:      "CODE128",
		WidthFactor: 1.2,
		Height:      20,
	})
	require.NoError(t, err)
	assert.True(t, img.Bounds().Dx() > 0)
	assert.Equal(t, 60, img.Bounds().Dy())
}

func TestEncoderSurface_UnknownFormatFallsBackToCODE128(t *testing.T) {
	s := NewEncoderSurface()

	_, err := s.Draw(Instruction{
		Value:       "fallback-value",
		Format:      "",
		WidthFactor: 1.0,
		Height:      15,
	})
	assert.NoError(t, err)
}

func TestEncoderSurface_DrawQRIsSquare(t *testing.T) {
	s := NewEncoderSurface()

	img, err := s.Draw(Instruction{
		Value:       "https://example.com/p/42",
		Format:      "QR",
		WidthFactor: 1.0,
		Height:      20,
	})
	require.NoError(t, err)

	bounds := img.Bounds()
	assert.Equal(t, bounds.Dx(), bounds.Dy())
}

func TestEncoderSurface_MinimumModuleWidth(t *testing.T) {
	s := NewEncoderSurface()

	// A width factor rounding to zero still produces 1px modules.
	img, err := s.Draw(Instruction{
		Value:       "4901234567894",
		Format:      "EAN13",
		WidthFactor: 0.1,
		Height:      15,
	})
	require.NoError(t, err)
	assert.Equal(t, 95, img.Bounds().Dx())
}
