package errors

import (
	"strings"
	"unicode"

	"github.com/lucasb-eyer/go-colorful"
)

// MaxRasterSide bounds raster exports. The default export is 6000x4000, so
// anything past twice that is almost certainly a typo.
const MaxRasterSide = 12000

// ValidateCount checks an ellipse count: it must not be negative.
func ValidateCount(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidInput, "count must be non-negative, got %d", n)
	}
	return nil
}

// ValidateColor checks that s is a hex color token (#rgb or #rrggbb).
func ValidateColor(s string) error {
	if s == "" {
		return New(ErrCodeInvalidColor, "color cannot be empty")
	}
	if (len(s) != 4 && len(s) != 7) || s[0] != '#' || !isHex(s[1:]) {
		return New(ErrCodeInvalidColor, "invalid color %q (want #rgb or #rrggbb)", s)
	}
	if _, err := colorful.Hex(expandShortHex(s)); err != nil {
		return Wrap(ErrCodeInvalidColor, err, "invalid color %q", s)
	}
	return nil
}

// isHex reports whether s consists of hex digits only. colorful.Hex alone
// accepts tokens such as #5135FG.
func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case '0' <= c && c <= '9', 'a' <= c && c <= 'f', 'A' <= c && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// expandShortHex turns #abc into #aabbcc; other strings pass through.
func expandShortHex(s string) string {
	if len(s) != 4 || s[0] != '#' {
		return s
	}
	return string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
}

// ValidateSize checks raster dimensions.
func ValidateSize(w, h int) error {
	if w <= 0 || h <= 0 {
		return New(ErrCodeInvalidSize, "size must be positive, got %dx%d", w, h)
	}
	if w > MaxRasterSide || h > MaxRasterSide {
		return New(ErrCodeInvalidSize, "size %dx%d exceeds %d pixels per side", w, h, MaxRasterSide)
	}
	return nil
}

// ValidateJPEGQuality checks a JPEG quality setting, 1 to 100.
func ValidateJPEGQuality(q int) error {
	if q < 1 || q > 100 {
		return New(ErrCodeInvalidInput, "jpeg quality must be 1-100, got %d", q)
	}
	return nil
}

// ValidateFilename ensures name is a plain file name without path components.
//
// Validation rules:
//   - Name cannot be empty
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - No hidden files
func ValidateFilename(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "filename cannot be empty")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "filename contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidPath, "filename cannot contain path separators")
	}
	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidPath, "filename cannot contain path traversal sequences (..)")
	}
	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidPath, "filename cannot be a hidden file")
	}

	return nil
}

// ValidatePaletteName checks a palette name: short, printable, no spaces.
func ValidatePaletteName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPalette, "palette name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidPalette, "palette name too long (max 64 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidPalette, "palette name %q contains whitespace or control characters", name)
		}
	}
	return nil
}
