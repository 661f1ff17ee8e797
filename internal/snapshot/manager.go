package snapshot

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"genfs/internal/genfs"
)

// Manager pushes and pulls snapshots of one store.
type Manager struct {
	storeID   string
	source    Source
	vault     Vault
	encryptor Encryptor // nil stores snapshots in plaintext
	clock     genfs.Clock
	logger    genfs.Logger
}

// NewManager creates a Manager. encryptor may be nil.
func NewManager(storeID string, source Source, vault Vault, encryptor Encryptor, clock genfs.Clock, logger genfs.Logger) *Manager {
	if clock == nil {
		clock = genfs.RealClock{}
	}
	if logger == nil {
		logger = genfs.NewNopLogger()
	}
	return &Manager{
		storeID:   storeID,
		source:    source,
		vault:     vault,
		encryptor: encryptor,
		clock:     clock,
		logger:    logger,
	}
}

// Encrypted reports whether snapshots are encrypted.
func (m *Manager) Encrypted() bool {
	return m.encryptor != nil
}

// Push uploads a snapshot of the store and returns its version. Versions are
// the push time in Unix seconds, bumped past the remote version when the
// clock would not move forward.
func (m *Manager) Push(ctx context.Context) (int64, error) {
	tmpDir, err := os.MkdirTemp("", "genfs-snapshot-*")
	if err != nil {
		return 0, fmt.Errorf("creating temp directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	dbPath := filepath.Join(tmpDir, "store.db")
	if err := m.source.BackupTo(ctx, dbPath); err != nil {
		return 0, fmt.Errorf("copying store: %w", err)
	}

	uploadPath := dbPath
	if m.encryptor != nil {
		uploadPath = filepath.Join(tmpDir, "store.db.age")
		if err := m.encryptFile(dbPath, uploadPath); err != nil {
			return 0, err
		}
	}

	remote, err := m.vault.GetSnapshotVersion(ctx, m.storeID)
	if err != nil {
		return 0, fmt.Errorf("reading remote snapshot version: %w", err)
	}
	version := max(m.clock.Now().Unix(), remote+1)

	f, err := os.Open(uploadPath)
	if err != nil {
		return 0, fmt.Errorf("opening snapshot for upload: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat snapshot: %w", err)
	}

	if err := m.vault.PutSnapshot(ctx, m.storeID, f, info.Size(), version); err != nil {
		return 0, fmt.Errorf("uploading snapshot: %w", err)
	}

	m.logger.Info("snapshot pushed", "store", m.storeID, "version", version, "size", info.Size(), "encrypted", m.Encrypted())
	return version, nil
}

// Pull downloads the latest snapshot to destPath and returns its version.
// passphrase unlocks the private key when snapshots are encrypted. destPath
// must not exist yet.
func (m *Manager) Pull(ctx context.Context, passphrase, destPath string) (int64, error) {
	if _, err := os.Stat(destPath); err == nil {
		return 0, fmt.Errorf("destination already exists: %s", destPath)
	}

	version, err := m.vault.GetSnapshotVersion(ctx, m.storeID)
	if err != nil {
		return 0, fmt.Errorf("reading remote snapshot version: %w", err)
	}
	if version == 0 {
		return 0, fmt.Errorf("%w: store %s", ErrNoSnapshot, m.storeID)
	}

	var dec DecryptionContext
	if m.encryptor != nil {
		dec, err = m.encryptor.Unlock(passphrase)
		if err != nil {
			return 0, fmt.Errorf("unlocking private key: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return 0, fmt.Errorf("creating destination directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(destPath), ".genfs-pull-*")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	err = m.download(ctx, dec, tmp)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return 0, err
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return 0, fmt.Errorf("moving snapshot into place: %w", err)
	}

	m.logger.Info("snapshot pulled", "store", m.storeID, "version", version, "dest", destPath)
	return version, nil
}

func (m *Manager) download(ctx context.Context, dec DecryptionContext, w io.Writer) error {
	if dec == nil {
		if err := m.vault.GetSnapshot(ctx, m.storeID, w); err != nil {
			return fmt.Errorf("downloading snapshot: %w", err)
		}
		return nil
	}

	pr, pw := io.Pipe()
	go func() {
		pw.CloseWithError(m.vault.GetSnapshot(ctx, m.storeID, pw))
	}()

	if err := dec.Decrypt(pr, w); err != nil {
		pr.CloseWithError(err)
		return fmt.Errorf("decrypting snapshot: %w", err)
	}
	return nil
}

func (m *Manager) encryptFile(srcPath, destPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("opening store copy: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("creating encrypted snapshot: %w", err)
	}

	if err := m.encryptor.Encrypt(src, dst); err != nil {
		dst.Close()
		return fmt.Errorf("encrypting snapshot: %w", err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("closing encrypted snapshot: %w", err)
	}
	return nil
}
