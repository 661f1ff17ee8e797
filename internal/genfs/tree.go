package genfs

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"genfs/internal/model"
)

const (
	NodeTypeFile      = "file"
	NodeTypeDirectory = "directory"
)

// TreeNode is one entry of a materialized file tree. Size and MimeType are
// set for files only; Children for directories only.
type TreeNode struct {
	Name     string      `json:"name"`
	Path     string      `json:"path"`
	Type     string      `json:"type"`
	Size     *int64      `json:"size,omitempty"`
	MimeType *string     `json:"mimeType,omitempty"`
	Children []*TreeNode `json:"children,omitempty"`
}

// List returns up to limit files of appID as a tree.
func (s *Service) List(ctx context.Context, appID string, limit int) ([]*TreeNode, error) {
	files, err := s.database.ListFiles(ctx, appID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}
	return Materialize(files), nil
}

// Materialize builds a directory tree from flat file records. At every level
// directories come before files and names sort lexicographically. Leading
// slashes and empty segments are ignored. The result is never nil.
func Materialize(files []*model.File) []*TreeNode {
	root := &TreeNode{Children: []*TreeNode{}}
	dirs := map[string]*TreeNode{"": root}

	for _, f := range files {
		segments := splitPath(f.Path)
		if len(segments) == 0 {
			continue
		}

		parent := root
		for i, name := range segments[:len(segments)-1] {
			dirPath := strings.Join(segments[:i+1], "/")
			dir, ok := dirs[dirPath]
			if !ok {
				dir = &TreeNode{Name: name, Path: dirPath, Type: NodeTypeDirectory, Children: []*TreeNode{}}
				dirs[dirPath] = dir
				parent.Children = append(parent.Children, dir)
			}
			parent = dir
		}

		size := f.SizeBytes
		mimeType := f.MimeType
		parent.Children = append(parent.Children, &TreeNode{
			Name:     segments[len(segments)-1],
			Path:     strings.Join(segments, "/"),
			Type:     NodeTypeFile,
			Size:     &size,
			MimeType: &mimeType,
		})
	}

	sortTree(root.Children)
	return root.Children
}

func splitPath(p string) []string {
	var segments []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

func sortTree(nodes []*TreeNode) {
	slices.SortFunc(nodes, func(a, b *TreeNode) int {
		if a.Type != b.Type {
			if a.Type == NodeTypeDirectory {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.Name, b.Name)
	})
	for _, n := range nodes {
		if n.Type == NodeTypeDirectory {
			sortTree(n.Children)
		}
	}
}
