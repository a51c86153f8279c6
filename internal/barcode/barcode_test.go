package barcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shokunin-apps/label-shokunin/internal/domain"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want domain.BarcodeFormat
	}{
		{name: "empty defaults to CODE128", raw: "", want: domain.BarcodeFormatCODE128},
		{name: "13 digits with 49 prefix is JAN13", raw: "4901234567894", want: domain.BarcodeFormatJAN13},
		{name: "13 digits with 45 prefix is JAN13", raw: "4512345678906", want: domain.BarcodeFormatJAN13},
		{name: "13 digits without JP prefix is EAN13", raw: "1234567890128", want: domain.BarcodeFormatEAN13},
		{name: "8 digits is JAN8", raw: "49123456", want: domain.BarcodeFormatJAN8},
		{name: "12 digits defaults to CODE128", raw: "123456789012", want: domain.BarcodeFormatCODE128},
		{name: "alphanumeric defaults to CODE128", raw: "ABC-123", want: domain.BarcodeFormatCODE128},
		{name: "dashes are stripped before length check", raw: "49-0123-456789-4", want: domain.BarcodeFormatJAN13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.raw))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		format domain.BarcodeFormat
		want   bool
	}{
		{name: "valid JAN13", raw: "4901234567894", format: domain.BarcodeFormatJAN13, want: true},
		{name: "valid EAN13", raw: "1234567890128", format: domain.BarcodeFormatEAN13, want: true},
		{name: "JAN13 with wrong check digit", raw: "4901234567890", format: domain.BarcodeFormatJAN13, want: false},
		{name: "JAN13 with embedded dashes", raw: "49-0123-456789-4", format: domain.BarcodeFormatJAN13, want: true},
		{name: "8 digits declared as JAN13 fails, not reclassified", raw: "49123456", format: domain.BarcodeFormatJAN13, want: false},
		{name: "valid JAN8", raw: "49123456", format: domain.BarcodeFormatJAN8, want: true},
		{name: "JAN8 with wrong check digit", raw: "49123457", format: domain.BarcodeFormatJAN8, want: false},
		{name: "CODE128 accepts any non-empty value", raw: "ABC-123", format: domain.BarcodeFormatCODE128, want: true},
		{name: "CODE39 accepts any non-empty value", raw: "ITEM42", format: domain.BarcodeFormatCODE39, want: true},
		{name: "QR accepts any non-empty value", raw: "https://example.com", format: domain.BarcodeFormatQR, want: true},
		{name: "empty is invalid for CODE128", raw: "", format: domain.BarcodeFormatCODE128, want: false},
		{name: "empty is invalid for JAN13", raw: "", format: domain.BarcodeFormatJAN13, want: false},
		{name: "unknown format is invalid", raw: "4901234567894", format: domain.BarcodeFormat("ITF"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate(tt.raw, tt.format))
		})
	}
}

func TestCheckDigit13(t *testing.T) {
	t.Run("appends the correct check digit", func(t *testing.T) {
		got, err := CheckDigit13("490123456789")
		require.NoError(t, err)
		assert.Equal(t, "4901234567894", got)
	})

	t.Run("result always passes validation", func(t *testing.T) {
		inputs := []string{
			"490123456789",
			"451234567890",
			"123456789012",
			"000000000000",
			"999999999999",
		}
		for _, in := range inputs {
			got, err := CheckDigit13(in)
			require.NoError(t, err)
			assert.True(t, Validate(got, domain.BarcodeFormatJAN13), "input %s", in)
		}
	})

	t.Run("rejects wrong length", func(t *testing.T) {
		_, err := CheckDigit13("49012345678")
		require.Error(t, err)
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	})

	t.Run("rejects non-digit characters", func(t *testing.T) {
		_, err := CheckDigit13("49012345678X")
		require.Error(t, err)
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	})
}

func TestRendererFormat(t *testing.T) {
	tests := []struct {
		format domain.BarcodeFormat
		want   string
	}{
		{domain.BarcodeFormatJAN13, "EAN13"},
		{domain.BarcodeFormatEAN13, "EAN13"},
		{domain.BarcodeFormatJAN8, "EAN8"},
		{domain.BarcodeFormatEAN8, "EAN8"},
		{domain.BarcodeFormatCODE128, "CODE128"},
		{domain.BarcodeFormatCODE39, "CODE39"},
		{domain.BarcodeFormatQR, "QR"},
		{domain.BarcodeFormat("unknown"), "CODE128"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			assert.Equal(t, tt.want, RendererFormat(tt.format))
		})
	}
}

func TestPayload(t *testing.T) {
	p := Payload("49-0123-456789-4", domain.BarcodeFormatJAN13)
	assert.Equal(t, "49-0123-456789-4", p.Raw, "raw value preserved for display")
	assert.Equal(t, domain.BarcodeFormatJAN13, p.Format)
	assert.True(t, p.Valid)
}
