package model

import "time"

// File is one logical path within an application. Its ID is stable across
// versions; the content fields and HeadVersionID change on every write.
type File struct {
	ID            string    `json:"id"`            // UUID
	AppID         string    `json:"appId"`         // Owning application
	Path          string    `json:"path"`          // Forward-slash relative path, unique within AppID
	IsBinary      bool      `json:"isBinary"`      // Whether the head content is raw bytes
	MimeType      string    `json:"mimeType"`      // MIME type of the head content
	SizeBytes     int64     `json:"sizeBytes"`     // Size of the head content
	ContentHash   string    `json:"contentHash"`   // SHA-256 hex of the head content
	HeadVersionID string    `json:"headVersionId"` // Foreign key to the current FileVersion; empty before the first commit
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// FileVersion is an immutable snapshot of a file's content. Versions of one
// file form a singly linked chain through ParentVersionID.
type FileVersion struct {
	ID              string    `json:"id"`                        // UUID
	FileID          string    `json:"fileId"`                    // Foreign key to File
	Version         int64     `json:"version"`                   // 1-based, contiguous per file
	ParentVersionID string    `json:"parentVersionId,omitempty"` // Previous head; empty for version 1
	ContentText     *string   `json:"contentText,omitempty"`     // Set for text content
	ContentBytes    []byte    `json:"contentBytes,omitempty"`    // Set for binary content
	CreatedBy       string    `json:"createdBy,omitempty"`       // Optional actor identity
	CreatedAt       time.Time `json:"createdAt"`
}

// IsBinary reports whether the version holds raw bytes rather than text.
func (v *FileVersion) IsBinary() bool {
	return v.ContentText == nil
}

// Bytes returns the stored content as bytes. Text is returned as its UTF-8
// encoding, which is also what the content hash is computed over.
func (v *FileVersion) Bytes() []byte {
	if v.ContentText != nil {
		return []byte(*v.ContentText)
	}
	return v.ContentBytes
}

// FileReference is a directed edge meaning "Src depends on Dest": when Dest
// changes, Src may need to change too.
type FileReference struct {
	AppID      string    `json:"appId"`
	SrcFileID  string    `json:"srcFileId"`
	DestFileID string    `json:"destFileId"`
	CreatedAt  time.Time `json:"createdAt"`
}
