package genfs

import (
	"context"
	"fmt"

	"genfs/internal/model"
)

// ReadResult is the head content of a file.
type ReadResult struct {
	File     *model.File
	Version  *model.FileVersion
	Content  Content
	MimeType string
}

// Read returns the head version of the file at filePath. Reads take no lock.
func (s *Service) Read(ctx context.Context, appID, filePath string) (*ReadResult, error) {
	file, err := s.Stat(ctx, appID, filePath)
	if err != nil {
		return nil, err
	}

	version, err := s.headVersion(ctx, file)
	if err != nil {
		return nil, err
	}

	return &ReadResult{
		File:     file,
		Version:  version,
		Content:  contentOf(version),
		MimeType: file.MimeType,
	}, nil
}

// Stat returns the file record at filePath without loading content.
func (s *Service) Stat(ctx context.Context, appID, filePath string) (*model.File, error) {
	filePath, err := NormalizePath(filePath)
	if err != nil {
		return nil, err
	}

	file, err := s.database.FindFileByPath(ctx, appID, filePath)
	if err != nil {
		return nil, fmt.Errorf("finding file: %w", err)
	}
	if file == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, filePath)
	}
	return file, nil
}

// FileByID returns the file record with the given id.
func (s *Service) FileByID(ctx context.Context, fileID string) (*model.File, error) {
	file, err := s.database.FindFileByID(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("finding file: %w", err)
	}
	if file == nil {
		return nil, fmt.Errorf("%w: id %s", ErrNotFound, fileID)
	}
	return file, nil
}

// Rename moves the head content of oldPath to newPath and removes oldPath,
// in one transaction holding both path locks. When newPath already exists
// the content becomes its next version. Edges of the old file are dropped
// with it. Renaming a path onto itself returns the current head unchanged.
func (s *Service) Rename(ctx context.Context, appID, oldPath, newPath string) (*WriteResult, error) {
	oldPath, err := NormalizePath(oldPath)
	if err != nil {
		return nil, err
	}
	newPath, err = NormalizePath(newPath)
	if err != nil {
		return nil, err
	}

	if oldPath == newPath {
		read, err := s.Read(ctx, appID, oldPath)
		if err != nil {
			return nil, err
		}
		return &WriteResult{File: read.File, Version: read.Version, ImpactedFileIDs: []string{}}, nil
	}

	unlock, err := s.lockPaths(ctx, appID, oldPath, newPath)
	if err != nil {
		return nil, err
	}

	var file *model.File
	var version *model.FileVersion
	err = s.database.InTx(ctx, func(tx Tx) error {
		old, err := tx.FindFileByPath(ctx, appID, oldPath)
		if err != nil {
			return fmt.Errorf("finding file: %w", err)
		}
		if old == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, oldPath)
		}
		if old.HeadVersionID == "" {
			return fmt.Errorf("%w: %s", ErrNoVersion, oldPath)
		}

		head, err := tx.FindVersionByID(ctx, old.HeadVersionID)
		if err != nil {
			return fmt.Errorf("loading head version: %w", err)
		}
		if head == nil || head.FileID != old.ID {
			return fmt.Errorf("%w: %s", ErrNoVersion, oldPath)
		}

		file, version, err = s.commit(ctx, tx, appID, newPath, contentOf(head), old.MimeType, head.CreatedBy)
		if err != nil {
			return err
		}

		if err := tx.DeleteFile(ctx, old.ID); err != nil {
			return fmt.Errorf("deleting old file: %w", err)
		}
		return nil
	})
	unlock()
	if err != nil {
		return nil, fmt.Errorf("renaming %s to %s: %w", oldPath, newPath, err)
	}

	s.logger.Info("file renamed", "app", appID, "from", oldPath, "to", newPath, "version", version.Version)

	return &WriteResult{
		File:            file,
		Version:         version,
		ImpactedFileIDs: s.impactedAfterCommit(ctx, appID, file.ID),
	}, nil
}

// Delete removes the file at filePath with all of its versions and edges.
func (s *Service) Delete(ctx context.Context, appID, filePath string) error {
	filePath, err := NormalizePath(filePath)
	if err != nil {
		return err
	}

	unlock, err := s.lockPaths(ctx, appID, filePath)
	if err != nil {
		return err
	}
	defer unlock()

	err = s.database.InTx(ctx, func(tx Tx) error {
		file, err := tx.FindFileByPath(ctx, appID, filePath)
		if err != nil {
			return fmt.Errorf("finding file: %w", err)
		}
		if file == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, filePath)
		}
		return tx.DeleteFile(ctx, file.ID)
	})
	if err != nil {
		return fmt.Errorf("deleting %s: %w", filePath, err)
	}

	s.logger.Info("file deleted", "app", appID, "path", filePath)
	return nil
}
