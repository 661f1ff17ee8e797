package httpapi

import (
	"encoding/base64"
	"fmt"
	"time"

	"genfs/internal/genfs"
	"genfs/internal/model"
)

const (
	encodingText   = "text"
	encodingBase64 = "base64"
)

// WriteFileRequest is the body of PUT /files/*.
type WriteFileRequest struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding,omitempty"` // "text" (default) or "base64"
	MimeType string `json:"mimeType,omitempty"`
	Actor    string `json:"actor,omitempty"`
}

// BatchFile is one entry of a BatchWriteRequest.
type BatchFile struct {
	Path     string `json:"path"`
	Content  string `json:"content"`
	Encoding string `json:"encoding,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
}

// BatchWriteRequest is the body of POST /batch.
type BatchWriteRequest struct {
	Files []BatchFile `json:"files"`
	Actor string      `json:"actor,omitempty"`
}

// RenameRequest is the body of POST /rename.
type RenameRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ReferenceRequest is the body of POST and DELETE /references.
type ReferenceRequest struct {
	Src  string `json:"src"`
	Dest string `json:"dest"`
}

// VersionInfo is a version without its content.
type VersionInfo struct {
	ID              string    `json:"id"`
	Version         int64     `json:"version"`
	ParentVersionID string    `json:"parentVersionId,omitempty"`
	CreatedBy       string    `json:"createdBy,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// WriteResponse describes a committed version.
type WriteResponse struct {
	File            *model.File `json:"file"`
	Version         VersionInfo `json:"version"`
	ImpactedFileIDs []string    `json:"impactedFileIds"`
}

// BatchWriteResponse lists the committed entries. Error is set when the
// batch stopped early.
type BatchWriteResponse struct {
	Results []WriteResponse `json:"results"`
	Error   string          `json:"error,omitempty"`
}

// ReadFileResponse is the head content of a file.
type ReadFileResponse struct {
	File     *model.File `json:"file"`
	Version  VersionInfo `json:"version"`
	MimeType string      `json:"mimeType"`
	Encoding string      `json:"encoding"`
	Content  string      `json:"content"`
}

// VersionSummary is one entry of GET /versions/*.
type VersionSummary struct {
	Version     int64     `json:"version"`
	ContentHash string    `json:"contentHash"`
	Size        int64     `json:"size"`
	CreatedBy   string    `json:"createdBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	IsCurrent   bool      `json:"isCurrent"`
}

// ImpactResponse is the result of GET /impact/{fileID}.
type ImpactResponse struct {
	FileID          string   `json:"fileId"`
	ImpactedFileIDs []string `json:"impactedFileIds"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

func decodeContent(content, encoding string) (genfs.Content, error) {
	switch encoding {
	case "", encodingText:
		return genfs.TextContent(content), nil
	case encodingBase64:
		data, err := base64.StdEncoding.DecodeString(content)
		if err != nil {
			return genfs.Content{}, fmt.Errorf("%w: decoding base64: %v", genfs.ErrInvalidContent, err)
		}
		return genfs.BinaryContent(data), nil
	default:
		return genfs.Content{}, fmt.Errorf("%w: unknown encoding %q", genfs.ErrInvalidContent, encoding)
	}
}

func encodeContent(c genfs.Content) (content, encoding string) {
	if c.IsBinary() {
		return base64.StdEncoding.EncodeToString(c.Bytes), encodingBase64
	}
	return *c.Text, encodingText
}

func versionInfo(v *model.FileVersion) VersionInfo {
	if v == nil {
		return VersionInfo{}
	}
	return VersionInfo{
		ID:              v.ID,
		Version:         v.Version,
		ParentVersionID: v.ParentVersionID,
		CreatedBy:       v.CreatedBy,
		CreatedAt:       v.CreatedAt,
	}
}

func writeResponse(r *genfs.WriteResult) WriteResponse {
	impacted := r.ImpactedFileIDs
	if impacted == nil {
		impacted = []string{}
	}
	return WriteResponse{File: r.File, Version: versionInfo(r.Version), ImpactedFileIDs: impacted}
}
