package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"genfs/internal/database/migrations"
	"genfs/internal/database/sqlc"
	"genfs/internal/genfs"
	"genfs/internal/model"
)

const (
	MemoryPath         = ":memory:"
	DefaultBusyTimeout = 5 * time.Second
)

// SQLiteDatabase implements genfs.Database and genfs.ReferenceGraph on SQLite.
type SQLiteDatabase struct {
	db      *sql.DB
	queries *sqlc.Queries
	path    string
}

// NewSQLiteDatabase opens the database at path, creating it if needed, and
// applies any pending migrations. path can be a file path or ":memory:".
// A busyTimeout <= 0 selects DefaultBusyTimeout.
func NewSQLiteDatabase(path string, busyTimeout time.Duration) (*SQLiteDatabase, error) {
	db, err := OpenConnection(path, busyTimeout)
	if err != nil {
		return nil, err
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	return NewSQLiteDatabaseFromDB(db, path), nil
}

// NewSQLiteDatabaseFromDB wraps an existing, already migrated connection.
func NewSQLiteDatabaseFromDB(db *sql.DB, path string) *SQLiteDatabase {
	return &SQLiteDatabase{
		db:      db,
		queries: sqlc.New(db),
		path:    path,
	}
}

// OpenConnection opens and configures a SQLite connection. The pragmas are
// passed in the DSN so every pooled connection gets them. Write
// transactions begin IMMEDIATE so concurrent writers wait on busy_timeout
// instead of failing on lock upgrade.
func OpenConnection(path string, busyTimeout time.Duration) (*sql.DB, error) {
	if busyTimeout <= 0 {
		busyTimeout = DefaultBusyTimeout
	}

	params := url.Values{}
	params.Set("_foreign_keys", "1")
	params.Set("_busy_timeout", strconv.FormatInt(busyTimeout.Milliseconds(), 10))
	params.Set("_txlock", "immediate")
	if path != MemoryPath {
		params.Set("_journal_mode", "WAL")
	}

	db, err := sql.Open("sqlite3", path+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every pooled connection to :memory: would be a separate database.
	if path == MemoryPath {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// File operations

func (s *SQLiteDatabase) FindFileByPath(ctx context.Context, appID, path string) (*model.File, error) {
	return findFileByPath(ctx, s.queries, appID, path)
}

func (s *SQLiteDatabase) FindFileByID(ctx context.Context, fileID string) (*model.File, error) {
	file, err := s.queries.GetFileByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding file by id: %w", mapError(err))
	}
	return toFile(file), nil
}

func (s *SQLiteDatabase) ListFiles(ctx context.Context, appID string, limit int) ([]*model.File, error) {
	files, err := s.queries.GetFilesByApp(ctx, sqlc.GetFilesByAppParams{
		AppID: appID,
		Limit: sqlLimit(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", mapError(err))
	}

	result := make([]*model.File, len(files))
	for i := range files {
		result[i] = toFile(files[i])
	}
	return result, nil
}

// Version operations

func (s *SQLiteDatabase) FindVersionByID(ctx context.Context, versionID string) (*model.FileVersion, error) {
	return findVersionByID(ctx, s.queries, versionID)
}

func (s *SQLiteDatabase) FindVersionsForFile(ctx context.Context, fileID string, limit int) ([]*model.FileVersion, error) {
	versions, err := s.queries.GetFileVersionsByFileID(ctx, sqlc.GetFileVersionsByFileIDParams{
		FileID: fileID,
		Limit:  sqlLimit(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("finding file versions: %w", mapError(err))
	}

	result := make([]*model.FileVersion, len(versions))
	for i := range versions {
		result[i] = toFileVersion(versions[i])
	}
	return result, nil
}

// InTx runs fn in one write transaction. Busy and locked errors from SQLite
// are reported as genfs.ErrLockTimeout.
func (s *SQLiteDatabase) InTx(ctx context.Context, fn func(tx genfs.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", mapError(err))
	}
	defer tx.Rollback()

	if err := fn(&sqliteTx{queries: s.queries.WithTx(tx)}); err != nil {
		return mapError(err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", mapError(err))
	}
	return nil
}

// Reference operations

func (s *SQLiteDatabase) FindReferencingFileIDs(ctx context.Context, appID, destFileID string) ([]string, error) {
	ids, err := s.queries.GetReferencingFileIDs(ctx, sqlc.GetReferencingFileIDsParams{
		AppID:      appID,
		DestFileID: destFileID,
	})
	if err != nil {
		return nil, fmt.Errorf("finding referencing files: %w", mapError(err))
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (s *SQLiteDatabase) AddReference(ctx context.Context, ref *model.FileReference) error {
	err := s.queries.InsertFileReference(ctx, sqlc.InsertFileReferenceParams{
		AppID:      ref.AppID,
		SrcFileID:  ref.SrcFileID,
		DestFileID: ref.DestFileID,
		CreatedAt:  ref.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("inserting reference: %w", mapError(err))
	}
	return nil
}

func (s *SQLiteDatabase) RemoveReference(ctx context.Context, appID, srcFileID, destFileID string) (int64, error) {
	n, err := s.queries.DeleteFileReference(ctx, sqlc.DeleteFileReferenceParams{
		AppID:      appID,
		SrcFileID:  srcFileID,
		DestFileID: destFileID,
	})
	if err != nil {
		return 0, fmt.Errorf("deleting reference: %w", mapError(err))
	}
	return n, nil
}

// Path returns the database file path, or "" for a wrapped connection.
func (s *SQLiteDatabase) Path() string {
	return s.path
}

// CheckMigrations verifies that the schema is at the latest embedded version.
func (s *SQLiteDatabase) CheckMigrations() error {
	return migrations.CheckDBMigrationStatus(s.db)
}

// BackupTo creates a complete copy of the database at destPath using VACUUM INTO.
func (s *SQLiteDatabase) BackupTo(ctx context.Context, destPath string) error {
	if _, err := s.db.ExecContext(ctx, "VACUUM INTO ?", destPath); err != nil {
		return fmt.Errorf("backing up database: %w", mapError(err))
	}
	return nil
}

func (s *SQLiteDatabase) Close() error {
	return s.db.Close()
}

// sqliteTx implements genfs.Tx over transaction-bound queries.
type sqliteTx struct {
	queries *sqlc.Queries
}

func (t *sqliteTx) FindFileByPath(ctx context.Context, appID, path string) (*model.File, error) {
	return findFileByPath(ctx, t.queries, appID, path)
}

func (t *sqliteTx) FindVersionByID(ctx context.Context, versionID string) (*model.FileVersion, error) {
	return findVersionByID(ctx, t.queries, versionID)
}

func (t *sqliteTx) InsertFile(ctx context.Context, file *model.File) error {
	err := t.queries.InsertFile(ctx, sqlc.InsertFileParams{
		ID:            file.ID,
		AppID:         file.AppID,
		Path:          file.Path,
		IsBinary:      file.IsBinary,
		MimeType:      file.MimeType,
		SizeBytes:     file.SizeBytes,
		ContentHash:   file.ContentHash,
		HeadVersionID: nullString(file.HeadVersionID),
		CreatedAt:     file.CreatedAt,
		UpdatedAt:     file.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("inserting file: %w", err)
	}
	return nil
}

func (t *sqliteTx) UpdateFileContent(ctx context.Context, file *model.File) error {
	err := t.queries.UpdateFileContent(ctx, sqlc.UpdateFileContentParams{
		IsBinary:    file.IsBinary,
		MimeType:    file.MimeType,
		SizeBytes:   file.SizeBytes,
		ContentHash: file.ContentHash,
		UpdatedAt:   file.UpdatedAt,
		ID:          file.ID,
	})
	if err != nil {
		return fmt.Errorf("updating file content: %w", err)
	}
	return nil
}

func (t *sqliteTx) UpdateFileHead(ctx context.Context, fileID, versionID string, updatedAt time.Time) error {
	err := t.queries.UpdateFileHeadVersion(ctx, sqlc.UpdateFileHeadVersionParams{
		HeadVersionID: nullString(versionID),
		UpdatedAt:     updatedAt,
		ID:            fileID,
	})
	if err != nil {
		return fmt.Errorf("updating file head: %w", err)
	}
	return nil
}

func (t *sqliteTx) CountVersions(ctx context.Context, fileID string) (int64, error) {
	n, err := t.queries.CountFileVersions(ctx, fileID)
	if err != nil {
		return 0, fmt.Errorf("counting versions: %w", err)
	}
	return n, nil
}

func (t *sqliteTx) InsertVersion(ctx context.Context, v *model.FileVersion) error {
	params := sqlc.InsertFileVersionParams{
		ID:              v.ID,
		FileID:          v.FileID,
		Version:         v.Version,
		ParentVersionID: nullString(v.ParentVersionID),
		CreatedBy:       nullString(v.CreatedBy),
		CreatedAt:       v.CreatedAt,
	}
	if v.ContentText != nil {
		params.ContentText = sql.NullString{String: *v.ContentText, Valid: true}
	} else {
		params.ContentBytes = v.ContentBytes
	}

	if err := t.queries.InsertFileVersion(ctx, params); err != nil {
		return fmt.Errorf("inserting version: %w", err)
	}
	return nil
}

func (t *sqliteTx) DeleteFile(ctx context.Context, fileID string) error {
	if err := t.queries.DeleteFileByID(ctx, fileID); err != nil {
		return fmt.Errorf("deleting file: %w", err)
	}
	return nil
}

func findFileByPath(ctx context.Context, q *sqlc.Queries, appID, path string) (*model.File, error) {
	file, err := q.GetFileByAppAndPath(ctx, sqlc.GetFileByAppAndPathParams{
		AppID: appID,
		Path:  path,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding file by path: %w", mapError(err))
	}
	return toFile(file), nil
}

func findVersionByID(ctx context.Context, q *sqlc.Queries, versionID string) (*model.FileVersion, error) {
	version, err := q.GetFileVersionByID(ctx, versionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding version by id: %w", mapError(err))
	}
	return toFileVersion(version), nil
}

// mapError marks SQLite busy and locked errors with genfs.ErrLockTimeout so
// callers can retry. Already mapped errors pass through unchanged.
func mapError(err error) error {
	if err == nil || errors.Is(err, genfs.ErrLockTimeout) {
		return err
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked {
			return fmt.Errorf("%w: %w", genfs.ErrLockTimeout, err)
		}
	}
	// database/sql does not always preserve the driver error type.
	if msg := err.Error(); strings.Contains(msg, "database is locked") || strings.Contains(msg, "database table is locked") {
		return fmt.Errorf("%w: %w", genfs.ErrLockTimeout, err)
	}
	return err
}

// sqlLimit converts a non-positive limit to SQLite's "no limit".
func sqlLimit(limit int) int64 {
	if limit <= 0 {
		return -1
	}
	return int64(limit)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func toFile(f sqlc.File) *model.File {
	return &model.File{
		ID:            f.ID,
		AppID:         f.AppID,
		Path:          f.Path,
		IsBinary:      f.IsBinary,
		MimeType:      f.MimeType,
		SizeBytes:     f.SizeBytes,
		ContentHash:   f.ContentHash,
		HeadVersionID: f.HeadVersionID.String,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}

func toFileVersion(v sqlc.FileVersion) *model.FileVersion {
	version := &model.FileVersion{
		ID:              v.ID,
		FileID:          v.FileID,
		Version:         v.Version,
		ParentVersionID: v.ParentVersionID.String,
		CreatedBy:       v.CreatedBy.String,
		CreatedAt:       v.CreatedAt,
	}
	if v.ContentText.Valid {
		text := v.ContentText.String
		version.ContentText = &text
	} else {
		version.ContentBytes = v.ContentBytes
		if version.ContentBytes == nil {
			version.ContentBytes = []byte{}
		}
	}
	return version
}
