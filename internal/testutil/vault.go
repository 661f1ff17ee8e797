package testutil

import (
	"genfs/internal/snapshot"
	"genfs/internal/vault"
)

// NewTestVault creates a new in-memory vault for testing.
func NewTestVault() snapshot.Vault {
	return vault.NewMemoryVault("test-vault")
}
