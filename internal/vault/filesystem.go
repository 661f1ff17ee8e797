package vault

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"genfs/internal/snapshot"
)

// FileSystemVault stores snapshots as files under a root directory:
//
//	<root>/
//	  snapshots/
//	    <storeID>.db       (latest snapshot)
//	    <storeID>.version  (its version)
type FileSystemVault struct {
	name        string
	root        string
	snapshotDir string
}

var _ snapshot.Vault = (*FileSystemVault)(nil)

// NewFileSystemVault creates a new filesystem vault rooted at the given path.
func NewFileSystemVault(name, root string) (*FileSystemVault, error) {
	snapshotDir := filepath.Join(root, "snapshots")
	if err := os.MkdirAll(snapshotDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	return &FileSystemVault{
		name:        name,
		root:        root,
		snapshotDir: snapshotDir,
	}, nil
}

// PutSnapshot writes the snapshot before its version marker.
func (v *FileSystemVault) PutSnapshot(_ context.Context, storeID string, r io.Reader, size int64, version int64) error {
	if err := v.writeFile(v.snapshotPath(storeID), r, size); err != nil {
		return err
	}

	versionData := strconv.FormatInt(version, 10)
	return v.writeFile(v.versionPath(storeID), strings.NewReader(versionData), int64(len(versionData)))
}

func (v *FileSystemVault) GetSnapshot(_ context.Context, storeID string, w io.Writer) error {
	f, err := os.Open(v.snapshotPath(storeID))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("snapshot not found for store: %s", storeID)
		}
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}
	return nil
}

// GetSnapshotVersion returns 0 if no version file exists.
func (v *FileSystemVault) GetSnapshotVersion(_ context.Context, storeID string) (int64, error) {
	data, err := os.ReadFile(v.versionPath(storeID))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading version file: %w", err)
	}

	version, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing version: %w", err)
	}
	return version, nil
}

// ValidateSetup verifies that the snapshot directory is accessible and writable.
func (v *FileSystemVault) ValidateSetup(context.Context) error {
	info, err := os.Stat(v.snapshotDir)
	if err != nil {
		return fmt.Errorf("vault directory not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("vault path is not a directory: %s", v.snapshotDir)
	}

	check, err := os.CreateTemp(v.snapshotDir, ".check-*")
	if err != nil {
		return fmt.Errorf("vault directory not writable: %w", err)
	}
	check.Close()
	return os.Remove(check.Name())
}

func (v *FileSystemVault) snapshotPath(storeID string) string {
	return filepath.Join(v.snapshotDir, storeID+".db")
}

func (v *FileSystemVault) versionPath(storeID string) string {
	return filepath.Join(v.snapshotDir, storeID+".version")
}

// writeFile writes data from r to destPath via a temp file and rename.
func (v *FileSystemVault) writeFile(destPath string, r io.Reader, expectedSize int64) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	written, err := io.Copy(tmpFile, r)
	if err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write data: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if written != expectedSize {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", expectedSize, written)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}
