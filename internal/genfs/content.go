package genfs

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"mime"
	"path"

	"genfs/internal/model"
)

const (
	defaultTextMimeType   = "text/plain; charset=utf-8"
	defaultBinaryMimeType = "application/octet-stream"
)

// Content is the payload of a write: exactly one of Text or Bytes is set.
// Build it with TextContent or BinaryContent.
type Content struct {
	Text  *string
	Bytes []byte
}

// TextContent wraps s as text content.
func TextContent(s string) Content {
	return Content{Text: &s}
}

// BinaryContent wraps b as binary content. A nil slice is an empty file.
func BinaryContent(b []byte) Content {
	if b == nil {
		b = []byte{}
	}
	return Content{Bytes: b}
}

// contentOf rebuilds the Content stored in a version.
func contentOf(v *model.FileVersion) Content {
	if v.ContentText != nil {
		return TextContent(*v.ContentText)
	}
	return BinaryContent(v.ContentBytes)
}

// Validate returns ErrInvalidContent unless exactly one variant is set.
func (c Content) Validate() error {
	switch {
	case c.Text == nil && c.Bytes == nil:
		return fmt.Errorf("%w: neither text nor bytes set", ErrInvalidContent)
	case c.Text != nil && c.Bytes != nil:
		return fmt.Errorf("%w: both text and bytes set", ErrInvalidContent)
	}
	return nil
}

// IsBinary reports whether c holds raw bytes.
func (c Content) IsBinary() bool {
	return c.Text == nil
}

// Data returns the bytes that are stored and hashed. Text is UTF-8.
func (c Content) Data() []byte {
	if c.Text != nil {
		return []byte(*c.Text)
	}
	return c.Bytes
}

// ContentHash returns the lowercase hex SHA-256 of data.
func ContentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// resolveMimeType picks the explicit type, then one derived from the
// extension, then a default for the content kind.
func resolveMimeType(explicit, filePath string, binary bool) string {
	if explicit != "" {
		return explicit
	}
	if byExt := mime.TypeByExtension(path.Ext(filePath)); byExt != "" {
		return byExt
	}
	if binary {
		return defaultBinaryMimeType
	}
	return defaultTextMimeType
}
