package genfs

import (
	"context"
	"errors"
	"fmt"

	"genfs/internal/model"
)

var errNoReferenceGraph = errors.New("no reference graph configured")

// AddReference records that the file at srcPath depends on the file at destPath.
func (s *Service) AddReference(ctx context.Context, appID, srcPath, destPath string) (*model.FileReference, error) {
	if s.refs == nil {
		return nil, errNoReferenceGraph
	}
	src, dest, err := s.resolveEdge(ctx, appID, srcPath, destPath)
	if err != nil {
		return nil, err
	}

	ref := &model.FileReference{
		AppID:      appID,
		SrcFileID:  src.ID,
		DestFileID: dest.ID,
		CreatedAt:  s.clock.Now(),
	}
	if err := s.refs.AddReference(ctx, ref); err != nil {
		return nil, fmt.Errorf("adding reference: %w", err)
	}

	s.logger.Debug("reference added", "app", appID, "src", src.Path, "dest", dest.Path)
	return ref, nil
}

// RemoveReference deletes the srcPath -> destPath edges. It returns
// ErrNotFound when no such edge exists.
func (s *Service) RemoveReference(ctx context.Context, appID, srcPath, destPath string) error {
	if s.refs == nil {
		return errNoReferenceGraph
	}
	src, dest, err := s.resolveEdge(ctx, appID, srcPath, destPath)
	if err != nil {
		return err
	}

	n, err := s.refs.RemoveReference(ctx, appID, src.ID, dest.ID)
	if err != nil {
		return fmt.Errorf("removing reference: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: no reference from %s to %s", ErrNotFound, src.Path, dest.Path)
	}

	s.logger.Debug("reference removed", "app", appID, "src", src.Path, "dest", dest.Path)
	return nil
}

func (s *Service) resolveEdge(ctx context.Context, appID, srcPath, destPath string) (*model.File, *model.File, error) {
	src, err := s.Stat(ctx, appID, srcPath)
	if err != nil {
		return nil, nil, err
	}
	dest, err := s.Stat(ctx, appID, destPath)
	if err != nil {
		return nil, nil, err
	}
	return src, dest, nil
}
