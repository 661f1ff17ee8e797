// Package httpapi exposes the file store over HTTP.
package httpapi

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_file_service.go -package=mocks genfs/internal/httpapi FileService

import (
	"context"

	"genfs/internal/genfs"
	"genfs/internal/model"
)

// FileService is the part of *genfs.Service the handlers call.
type FileService interface {
	Write(ctx context.Context, req genfs.WriteRequest) (*genfs.WriteResult, error)
	BatchWrite(ctx context.Context, appID string, entries []genfs.BatchEntry, actor string) ([]*genfs.WriteResult, error)
	Read(ctx context.Context, appID, filePath string) (*genfs.ReadResult, error)
	Rename(ctx context.Context, appID, oldPath, newPath string) (*genfs.WriteResult, error)
	Delete(ctx context.Context, appID, filePath string) error
	List(ctx context.Context, appID string, limit int) ([]*genfs.TreeNode, error)
	GetVersionSummaries(ctx context.Context, appID, filePath string, limit int) ([]*genfs.VersionSummary, error)
	FindImpacted(ctx context.Context, appID, changedFileID string) ([]string, error)
	AddReference(ctx context.Context, appID, srcPath, destPath string) (*model.FileReference, error)
	RemoveReference(ctx context.Context, appID, srcPath, destPath string) error
}

var _ FileService = (*genfs.Service)(nil)
