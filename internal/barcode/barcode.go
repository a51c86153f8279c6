// Package barcode implements format detection, checksum validation and
// check digit generation for the barcode symbologies used on Japanese
// retail labels.
//
// Detection and validation are separate steps: an 8-digit string declared
// as JAN13 fails validation rather than being silently reclassified.
package barcode

import (
	"strings"

	"github.com/shokunin-apps/label-shokunin/internal/domain"
)

// cleanDigits strips every non-digit character. Formatting dashes and
// spaces are removed before length/checksum checks, but callers keep the
// original raw string for display.
func cleanDigits(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isJAN reports whether a cleaned 13-digit string carries the Japanese
// country prefix (45 or 49).
func isJAN(digits string) bool {
	return strings.HasPrefix(digits, "45") || strings.HasPrefix(digits, "49")
}

// Detect infers the barcode format from the raw value. It is total:
// unrecognized lengths default to CODE128.
func Detect(raw string) domain.BarcodeFormat {
	if raw == "" {
		return domain.BarcodeFormatCODE128
	}

	digits := cleanDigits(raw)

	switch len(digits) {
	case 13:
		if isJAN(digits) {
			return domain.BarcodeFormatJAN13
		}
		return domain.BarcodeFormatEAN13
	case 8:
		return domain.BarcodeFormatJAN8
	}

	return domain.BarcodeFormatCODE128
}

// Validate checks a raw barcode value against an explicitly chosen format.
// Empty input is invalid regardless of format.
func Validate(raw string, format domain.BarcodeFormat) bool {
	if raw == "" {
		return false
	}

	digits := cleanDigits(raw)

	switch format {
	case domain.BarcodeFormatJAN13, domain.BarcodeFormatEAN13:
		return len(digits) == 13 && checkDigit13OK(digits)
	case domain.BarcodeFormatJAN8, domain.BarcodeFormatEAN8:
		return len(digits) == 8 && checkDigit8OK(digits)
	case domain.BarcodeFormatCODE128, domain.BarcodeFormatCODE39, domain.BarcodeFormatQR:
		return len(raw) > 0
	}

	return false
}

// Payload builds a validated payload for a raw value and format. The raw
// string is preserved as stored on the product.
func Payload(raw string, format domain.BarcodeFormat) domain.BarcodePayload {
	return domain.BarcodePayload{
		Raw:    raw,
		Format: format,
		Valid:  Validate(raw, format),
	}
}

// checkDigit13OK verifies the EAN-13/JAN-13 check digit. Weights alternate
// 1,3 starting at position 0; check digit = (10 - sum mod 10) mod 10.
func checkDigit13OK(digits string) bool {
	if len(digits) != 13 {
		return false
	}

	sum := 0
	for i := 0; i < 12; i++ {
		d := int(digits[i] - '0')
		if i%2 == 0 {
			sum += d
		} else {
			sum += d * 3
		}
	}

	check := (10 - sum%10) % 10
	return check == int(digits[12]-'0')
}

// checkDigit8OK verifies the EAN-8/JAN-8 check digit. Weights alternate
// 3,1 starting at position 0 over the first 7 digits.
func checkDigit8OK(digits string) bool {
	if len(digits) != 8 {
		return false
	}

	sum := 0
	for i := 0; i < 7; i++ {
		d := int(digits[i] - '0')
		if i%2 == 0 {
			sum += d * 3
		} else {
			sum += d
		}
	}

	check := (10 - sum%10) % 10
	return check == int(digits[7]-'0')
}

// CheckDigit13 appends the EAN-13/JAN-13 check digit to a 12-digit string.
// A wrong-length or non-digit input is a caller contract violation and
// returns an EINVALID error.
func CheckDigit13(digits12 string) (string, error) {
	const op = "barcode.check_digit_13"

	if len(digits12) != 12 {
		return "", domain.Invalid(op, "barcode must be 12 digits to calculate check digit")
	}

	sum := 0
	for i := 0; i < 12; i++ {
		c := digits12[i]
		if c < '0' || c > '9' {
			return "", domain.Invalid(op, "barcode must contain only digits")
		}
		d := int(c - '0')
		if i%2 == 0 {
			sum += d
		} else {
			sum += d * 3
		}
	}

	check := (10 - sum%10) % 10
	return digits12 + string(rune('0'+check)), nil
}

// RendererFormat maps a logical format to the symbology identifier the
// rendering surface understands. JAN collapses onto EAN; anything
// unrecognized falls back to CODE128.
func RendererFormat(format domain.BarcodeFormat) string {
	switch format {
	case domain.BarcodeFormatJAN13, domain.BarcodeFormatEAN13:
		return "EAN13"
	case domain.BarcodeFormatJAN8, domain.BarcodeFormatEAN8:
		return "EAN8"
	case domain.BarcodeFormatCODE128:
		return "CODE128"
	case domain.BarcodeFormatCODE39:
		return "CODE39"
	case domain.BarcodeFormatQR:
		return "QR"
	default:
		return "CODE128"
	}
}
