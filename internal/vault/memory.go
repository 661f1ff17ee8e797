package vault

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"genfs/internal/snapshot"
)

// MemoryVault keeps snapshots in memory, making it useful for testing.
// This implementation is safe for concurrent use.
type MemoryVault struct {
	name     string
	mu       sync.RWMutex
	data     map[string][]byte // storeID -> snapshot bytes
	versions map[string]int64  // storeID -> version
}

var _ snapshot.Vault = (*MemoryVault)(nil)

// NewMemoryVault creates a new in-memory vault with the given name.
func NewMemoryVault(name string) *MemoryVault {
	return &MemoryVault{
		name:     name,
		data:     make(map[string][]byte),
		versions: make(map[string]int64),
	}
}

func (m *MemoryVault) PutSnapshot(_ context.Context, storeID string, r io.Reader, size int64, version int64) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}
	if int64(len(data)) != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, len(data))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[storeID] = data
	m.versions[storeID] = version
	return nil
}

func (m *MemoryVault) GetSnapshot(_ context.Context, storeID string, w io.Writer) error {
	m.mu.RLock()
	data, ok := m.data[storeID]
	m.mu.RUnlock()

	if !ok {
		return fmt.Errorf("snapshot not found for store: %s", storeID)
	}
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

func (m *MemoryVault) GetSnapshotVersion(_ context.Context, storeID string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.versions[storeID], nil
}

// ValidateSetup always succeeds for in-memory vault.
func (m *MemoryVault) ValidateSetup(context.Context) error {
	return nil
}
