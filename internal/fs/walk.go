// Package fs reads a directory tree from disk for import into the store.
package fs

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"
)

// DefaultMaxFileSize bounds the size of a single imported file.
const DefaultMaxFileSize = 32 << 20

// File is one regular file found under the import root.
type File struct {
	Path   string // slash separated, relative to the root
	Data   []byte
	Binary bool // content is not valid UTF-8
}

// Text returns the content as a string. Only meaningful when !Binary.
func (f *File) Text() string {
	return string(f.Data)
}

// WalkOptions tunes Collect.
type WalkOptions struct {
	// Ignore patterns applied in addition to the root's .genfsignore.
	Ignore []string
	// MaxFileSize rejects larger files; 0 means DefaultMaxFileSize.
	MaxFileSize int64
}

// Collect reads every regular file under root in lexical path order.
// Ignored directories are pruned, symlinks and special files are skipped,
// and the ignore file itself is never imported.
func Collect(root string, opts WalkOptions) ([]*File, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat import root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("import root is not a directory: %s", root)
	}

	fromFile, err := ParseIgnoreFile(filepath.Join(root, IgnoreFileName))
	if err != nil {
		return nil, err
	}
	patterns := append([]string{IgnoreFileName}, opts.Ignore...)
	matcher := NewIgnoreMatcher(append(patterns, fromFile...))

	maxSize := opts.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	var files []*File
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == root {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if matcher.Match(rel, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			return fmt.Errorf("stat %s: %w", rel, err)
		}
		if fi.Size() > maxSize {
			return fmt.Errorf("%s is %d bytes, larger than the %d byte limit", rel, fi.Size(), maxSize)
		}

		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("reading %s: %w", rel, err)
		}
		files = append(files, &File{Path: rel, Data: data, Binary: !utf8.Valid(data)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}
