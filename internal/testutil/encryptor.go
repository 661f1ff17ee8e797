package testutil

import (
	"genfs/internal/encryption"
	"genfs/internal/snapshot"
)

// NewTestEncryptor creates a header-only encryptor that accepts any passphrase.
func NewTestEncryptor() snapshot.Encryptor {
	return encryption.NewTestEncryptor()
}
