package fs

import (
	"bufio"
	"fmt"
	"os"
	"path"
	"strings"
)

// IgnoreFileName is read from the root of an imported directory.
const IgnoreFileName = ".genfsignore"

// rule is one parsed ignore line.
type rule struct {
	glob     string
	anchored bool // contains '/': matched against the whole relative path
	dirOnly  bool // trailing '/': only matches directories
}

// IgnoreMatcher decides which entries of an imported tree are skipped.
// A pattern without '/' matches any path segment's basename, one with '/'
// matches the slash-separated path relative to the import root, and a
// trailing '/' restricts the pattern to directories.
type IgnoreMatcher struct {
	rules []rule
}

// NewIgnoreMatcher parses raw pattern lines. Blank lines and lines starting
// with '#' are skipped, as are patterns path.Match rejects.
func NewIgnoreMatcher(rawPatterns []string) *IgnoreMatcher {
	m := &IgnoreMatcher{}
	for _, raw := range rawPatterns {
		raw = strings.TrimSpace(raw)
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		r := rule{}
		if strings.HasSuffix(raw, "/") {
			r.dirOnly = true
			raw = strings.TrimRight(raw, "/")
		}
		raw = strings.TrimPrefix(raw, "/")
		r.anchored = strings.Contains(raw, "/")
		r.glob = raw
		if _, err := path.Match(r.glob, ""); err != nil {
			continue
		}
		m.rules = append(m.rules, r)
	}
	return m
}

// Match reports whether relPath (slash separated, relative to the import
// root) is ignored. isDir tells whether the entry is a directory.
func (m *IgnoreMatcher) Match(relPath string, isDir bool) bool {
	if relPath == "" {
		return false
	}
	base := path.Base(relPath)
	for _, r := range m.rules {
		if r.dirOnly && !isDir {
			continue
		}
		target := base
		if r.anchored {
			target = relPath
		}
		if ok, _ := path.Match(r.glob, target); ok {
			return true
		}
	}
	return false
}

// ParseIgnoreFile returns the raw lines of an ignore file, or nil when it
// does not exist.
func ParseIgnoreFile(filePath string) ([]string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening ignore file: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ignore file: %w", err)
	}
	return lines, nil
}
