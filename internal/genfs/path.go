package genfs

import (
	"fmt"
	"strings"
)

// NormalizePath strips leading slashes so "/src/a.ts" and "src/a.ts" name the
// same file. Nothing else is rewritten.
func NormalizePath(p string) (string, error) {
	p = strings.TrimLeft(p, "/")
	if p == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	return p, nil
}
