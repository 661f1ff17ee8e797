// Package snapshot copies the whole version store to a vault and back. A
// snapshot is a consistent SQLite copy taken with VACUUM INTO, optionally
// encrypted, stored under the store id with a monotonically increasing
// version.
package snapshot

import (
	"context"
	"errors"
	"io"
)

// ErrNoSnapshot is returned by Pull when the vault holds no snapshot for the store.
var ErrNoSnapshot = errors.New("no snapshot in vault")

// Vault stores versioned snapshots. All operations stream through
// io.Reader/io.Writer so large stores are never held in memory.
type Vault interface {
	// PutSnapshot stores size bytes read from r as the snapshot of storeID,
	// replacing any previous one, and records version alongside it.
	PutSnapshot(ctx context.Context, storeID string, r io.Reader, size int64, version int64) error

	// GetSnapshot writes the latest snapshot of storeID to w.
	GetSnapshot(ctx context.Context, storeID string, w io.Writer) error

	// GetSnapshotVersion returns the version of the stored snapshot, or 0
	// if none exists.
	GetSnapshotVersion(ctx context.Context, storeID string) (int64, error)

	// ValidateSetup verifies that the vault is accessible and properly configured.
	ValidateSetup(ctx context.Context) error
}

// Encryptor encrypts snapshots with a public key and unlocks the private
// key with a passphrase for decryption.
type Encryptor interface {
	// Setup performs one-time key generation, storing the public key in
	// plaintext and the private key encrypted with passphrase.
	Setup(passphrase string) error

	// Encrypt encrypts data read from r and writes ciphertext to w.
	Encrypt(r io.Reader, w io.Writer) error

	// Unlock decrypts the private key using the passphrase.
	Unlock(passphrase string) (DecryptionContext, error)

	// IsConfigured returns true if the keys exist.
	IsConfigured() bool
}

// DecryptionContext holds an unlocked private key in memory for one pull.
type DecryptionContext interface {
	Decrypt(r io.Reader, w io.Writer) error
}

// Source produces a consistent copy of the store at destPath.
type Source interface {
	BackupTo(ctx context.Context, destPath string) error
}
