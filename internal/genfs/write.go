package genfs

import (
	"context"
	"fmt"

	"genfs/internal/model"
)

// WriteRequest is one call to Write.
type WriteRequest struct {
	AppID    string
	Path     string
	Content  Content
	MimeType string // optional; derived from the path and content kind when empty
	Actor    string // optional; recorded as the version's CreatedBy
}

// WriteResult describes a committed version.
type WriteResult struct {
	File            *model.File
	Version         *model.FileVersion
	ImpactedFileIDs []string
}

// BatchEntry is one file of a BatchWrite.
type BatchEntry struct {
	Path     string
	Content  Content
	MimeType string
}

// Write stores content as the next version of the file at req.Path, creating
// the file when it does not exist yet. The file row update, the version
// insert and the head move commit together or not at all.
//
// Writers of the same (app, path) are serialized; writers of different paths
// never wait on each other's lock. The impacted set is computed after the
// lock is released and is best-effort: a failure there is logged, not
// returned, because the version is already committed.
func (s *Service) Write(ctx context.Context, req WriteRequest) (*WriteResult, error) {
	if err := req.Content.Validate(); err != nil {
		return nil, err
	}
	filePath, err := NormalizePath(req.Path)
	if err != nil {
		return nil, err
	}

	unlock, err := s.lockPaths(ctx, req.AppID, filePath)
	if err != nil {
		return nil, err
	}

	var file *model.File
	var version *model.FileVersion
	err = s.database.InTx(ctx, func(tx Tx) error {
		var err error
		file, version, err = s.commit(ctx, tx, req.AppID, filePath, req.Content, req.MimeType, req.Actor)
		return err
	})
	unlock()
	if err != nil {
		return nil, fmt.Errorf("writing %s: %w", filePath, err)
	}

	s.logger.Info("file version committed",
		"app", req.AppID,
		"path", filePath,
		"version", version.Version,
		"hash", file.ContentHash,
		"size", file.SizeBytes,
	)

	return &WriteResult{
		File:            file,
		Version:         version,
		ImpactedFileIDs: s.impactedAfterCommit(ctx, req.AppID, file.ID),
	}, nil
}

// BatchWrite writes entries in order and stops at the first failure. Entries
// committed before the failure stay committed; the returned slice holds
// exactly those, and the error is returned unchanged.
func (s *Service) BatchWrite(ctx context.Context, appID string, entries []BatchEntry, actor string) ([]*WriteResult, error) {
	results := make([]*WriteResult, 0, len(entries))
	for _, e := range entries {
		res, err := s.Write(ctx, WriteRequest{
			AppID:    appID,
			Path:     e.Path,
			Content:  e.Content,
			MimeType: e.MimeType,
			Actor:    actor,
		})
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// commit appends a version at filePath inside tx. The caller holds the path lock.
func (s *Service) commit(ctx context.Context, tx Tx, appID, filePath string, content Content, mimeType, actor string) (*model.File, *model.FileVersion, error) {
	data := content.Data()
	hash := ContentHash(data)
	binary := content.IsBinary()
	mimeType = resolveMimeType(mimeType, filePath, binary)
	now := s.clock.Now()

	file, err := tx.FindFileByPath(ctx, appID, filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("finding file: %w", err)
	}

	if file == nil {
		file = &model.File{
			ID:          s.idgen.New(),
			AppID:       appID,
			Path:        filePath,
			IsBinary:    binary,
			MimeType:    mimeType,
			SizeBytes:   int64(len(data)),
			ContentHash: hash,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.InsertFile(ctx, file); err != nil {
			return nil, nil, fmt.Errorf("creating file: %w", err)
		}
	} else {
		file.IsBinary = binary
		file.MimeType = mimeType
		file.SizeBytes = int64(len(data))
		file.ContentHash = hash
		file.UpdatedAt = now
		if err := tx.UpdateFileContent(ctx, file); err != nil {
			return nil, nil, fmt.Errorf("updating file content: %w", err)
		}
	}

	count, err := tx.CountVersions(ctx, file.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("counting versions: %w", err)
	}

	version := &model.FileVersion{
		ID:              s.idgen.New(),
		FileID:          file.ID,
		Version:         count + 1,
		ParentVersionID: file.HeadVersionID,
		CreatedBy:       actor,
		CreatedAt:       now,
	}
	if binary {
		version.ContentBytes = data
	} else {
		text := *content.Text
		version.ContentText = &text
	}

	if err := tx.InsertVersion(ctx, version); err != nil {
		return nil, nil, fmt.Errorf("inserting version: %w", err)
	}
	if err := tx.UpdateFileHead(ctx, file.ID, version.ID, now); err != nil {
		return nil, nil, fmt.Errorf("updating head version: %w", err)
	}
	file.HeadVersionID = version.ID

	return file, version, nil
}

func (s *Service) impactedAfterCommit(ctx context.Context, appID, fileID string) []string {
	impacted, err := s.FindImpacted(ctx, appID, fileID)
	if err != nil {
		s.logger.Warn("impact analysis failed", "app", appID, "file", fileID, "error", err)
		return []string{}
	}
	return impacted
}
