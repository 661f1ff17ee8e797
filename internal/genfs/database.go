package genfs

import (
	"context"
	"time"

	"genfs/internal/model"
)

// Database is the version store. Lookups return (nil, nil) when the row does
// not exist; callers decide whether that is an error.
type Database interface {
	// FindFileByPath returns the file at path within appID.
	FindFileByPath(ctx context.Context, appID, path string) (*model.File, error)

	// FindFileByID returns a file by its id.
	FindFileByID(ctx context.Context, fileID string) (*model.File, error)

	// ListFiles returns up to limit files of appID ordered by path.
	// A limit <= 0 means no limit.
	ListFiles(ctx context.Context, appID string, limit int) ([]*model.File, error)

	// FindVersionByID returns a version by its id.
	FindVersionByID(ctx context.Context, versionID string) (*model.FileVersion, error)

	// FindVersionsForFile returns up to limit versions of a file, newest first.
	// A limit <= 0 means no limit.
	FindVersionsForFile(ctx context.Context, fileID string, limit int) ([]*model.FileVersion, error)

	// InTx runs fn inside a single write transaction. The transaction commits
	// when fn returns nil and rolls back otherwise.
	InTx(ctx context.Context, fn func(tx Tx) error) error

	// Close closes the database connection.
	Close() error
}

// Tx is the set of store operations available inside InTx.
type Tx interface {
	FindFileByPath(ctx context.Context, appID, path string) (*model.File, error)
	FindVersionByID(ctx context.Context, versionID string) (*model.FileVersion, error)

	// InsertFile creates a file row. HeadVersionID is expected to be empty.
	InsertFile(ctx context.Context, file *model.File) error

	// UpdateFileContent stores the content fields and UpdatedAt of file.
	UpdateFileContent(ctx context.Context, file *model.File) error

	// UpdateFileHead points the file at versionID.
	UpdateFileHead(ctx context.Context, fileID, versionID string, updatedAt time.Time) error

	// CountVersions returns the number of versions recorded for a file.
	CountVersions(ctx context.Context, fileID string) (int64, error)

	InsertVersion(ctx context.Context, version *model.FileVersion) error

	// DeleteFile removes a file together with its versions and edges.
	DeleteFile(ctx context.Context, fileID string) error
}

// ReferenceGraph stores directed "src depends on dest" edges between files.
// The service only reads it for impact analysis; AddReference and
// RemoveReference are hooks for whatever component extracts dependencies.
type ReferenceGraph interface {
	// FindReferencingFileIDs returns the distinct sources of edges ending at destFileID.
	FindReferencingFileIDs(ctx context.Context, appID, destFileID string) ([]string, error)

	AddReference(ctx context.Context, ref *model.FileReference) error

	// RemoveReference deletes every src->dest edge and reports how many were removed.
	RemoveReference(ctx context.Context, appID, srcFileID, destFileID string) (int64, error)
}
