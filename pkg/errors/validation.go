package errors

import (
	"strconv"
	"strings"
	"unicode"
)

// Polygon size limits accepted by the command line and the HTTP server.
// They mirror the limits of the enumerator.
const (
	MinSize = 3
	MaxSize = 12
)

// ParseSize parses a polygon size argument such as "7".
// It rejects anything that is not a decimal integer within [MinSize, MaxSize].
func ParseSize(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, New(ErrCodeInvalidSize, "polygon size cannot be empty")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, New(ErrCodeInvalidSize, "polygon size must be an integer, got %q", s)
	}
	if err := ValidateSize(n); err != nil {
		return 0, err
	}
	return n, nil
}

// ValidateSize checks that n is a supported polygon size.
func ValidateSize(n int) error {
	if n <= 0 {
		return New(ErrCodeInvalidSize, "polygon size must be positive, got %d", n)
	}
	if n < MinSize {
		return New(ErrCodeInvalidSize, "polygon size must be at least %d, got %d", MinSize, n)
	}
	if n > MaxSize {
		return New(ErrCodeInvalidSize, "polygon size must be at most %d, got %d", MaxSize, n)
	}
	return nil
}

// ValidateOutputPath validates an output file path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Must not name a directory (trailing separator)
func ValidateOutputPath(path string) error {
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

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "path must name a file, not a directory")
	}

	return nil
}
