package genfs

import (
	"context"
	"fmt"
	"time"

	"genfs/internal/model"
)

// GetHeadVersion returns the version the file currently points at.
func (s *Service) GetHeadVersion(ctx context.Context, fileID string) (*model.FileVersion, error) {
	file, err := s.FileByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	return s.headVersion(ctx, file)
}

// GetVersionHistory returns up to limit versions of a file, newest first.
// A limit <= 0 returns every version.
func (s *Service) GetVersionHistory(ctx context.Context, fileID string, limit int) ([]*model.FileVersion, error) {
	if _, err := s.FileByID(ctx, fileID); err != nil {
		return nil, err
	}
	return s.versionsFor(ctx, fileID, limit)
}

// GetVersions is GetVersionHistory addressed by path.
func (s *Service) GetVersions(ctx context.Context, appID, filePath string, limit int) ([]*model.FileVersion, error) {
	file, err := s.Stat(ctx, appID, filePath)
	if err != nil {
		return nil, err
	}
	return s.versionsFor(ctx, file.ID, limit)
}

// VersionSummary is one line of a file's history.
type VersionSummary struct {
	Version     int64
	ContentHash string
	Size        int64
	CreatedBy   string
	CreatedAt   time.Time
	IsCurrent   bool
}

// GetVersionSummaries returns the history of the file at filePath without
// content, newest first, marking the head.
func (s *Service) GetVersionSummaries(ctx context.Context, appID, filePath string, limit int) ([]*VersionSummary, error) {
	file, err := s.Stat(ctx, appID, filePath)
	if err != nil {
		return nil, err
	}
	versions, err := s.versionsFor(ctx, file.ID, limit)
	if err != nil {
		return nil, err
	}

	summaries := make([]*VersionSummary, len(versions))
	for i, v := range versions {
		data := v.Bytes()
		summaries[i] = &VersionSummary{
			Version:     v.Version,
			ContentHash: ContentHash(data),
			Size:        int64(len(data)),
			CreatedBy:   v.CreatedBy,
			CreatedAt:   v.CreatedAt,
			IsCurrent:   v.ID == file.HeadVersionID,
		}
	}
	return summaries, nil
}

func (s *Service) versionsFor(ctx context.Context, fileID string, limit int) ([]*model.FileVersion, error) {
	versions, err := s.database.FindVersionsForFile(ctx, fileID, limit)
	if err != nil {
		return nil, fmt.Errorf("finding versions: %w", err)
	}
	return versions, nil
}

func (s *Service) headVersion(ctx context.Context, file *model.File) (*model.FileVersion, error) {
	if file.HeadVersionID == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoVersion, file.Path)
	}

	version, err := s.database.FindVersionByID(ctx, file.HeadVersionID)
	if err != nil {
		return nil, fmt.Errorf("loading head version: %w", err)
	}
	if version == nil || version.FileID != file.ID {
		return nil, fmt.Errorf("%w: %s", ErrNoVersion, file.Path)
	}
	return version, nil
}
