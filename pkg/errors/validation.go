package errors

import (
	"math"
	"strings"
	"unicode"
)

// maxFieldKeyLength bounds record field names accepted from user input.
const maxFieldKeyLength = 256

// ValidateFieldKey validates a record field selector such as an x_key or y_key.
//
// The validation rules are intentionally conservative:
//   - No empty keys
//   - No control characters
//   - No leading or trailing whitespace
//   - Maximum length of 256 characters
func ValidateFieldKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidField, "field key cannot be empty")
	}

	if len(key) > maxFieldKeyLength {
		return New(ErrCodeInvalidField, "field key too long (max %d characters)", maxFieldKeyLength)
	}

	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidField, "field key contains invalid control characters")
		}
	}

	if strings.TrimSpace(key) != key {
		return New(ErrCodeInvalidField, "field key %q has leading or trailing whitespace", key)
	}

	return nil
}

// MaxDimension bounds the width and height of a chart in pixels.
const MaxDimension = 16384

// ValidateDimensions checks that a container of width×height leaves a
// positive plot area after insetting margin on all four sides, and that
// neither side exceeds [MaxDimension].
func ValidateDimensions(width, height, margin float64) error {
	for _, v := range []float64{width, height, margin} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidDimensions, "dimensions must be finite numbers")
		}
	}
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidDimensions, "width and height must be positive (got %gx%g)", width, height)
	}
	if width > MaxDimension || height > MaxDimension {
		return New(ErrCodeInvalidDimensions, "chart %gx%g exceeds %dpx", width, height, MaxDimension)
	}
	if margin < 0 {
		return New(ErrCodeInvalidDimensions, "margin cannot be negative (got %g)", margin)
	}
	if width <= 2*margin || height <= 2*margin {
		return New(ErrCodeInvalidDimensions, "margin %g leaves no plot area in %gx%g", margin, width, height)
	}
	return nil
}

// ValidateKind checks that kind names one of the chart engines.
func ValidateKind(kind string) error {
	switch kind {
	case "line", "bar":
		return nil
	case "":
		return New(ErrCodeInvalidKind, "chart kind is required")
	default:
		return New(ErrCodeInvalidKind, "invalid chart kind: %q (must be 'line' or 'bar')", kind)
	}
}

// ValidatePath validates a file path for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	for _, seg := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		if seg == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	return nil
}
