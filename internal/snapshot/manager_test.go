package snapshot_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"genfs/internal/database"
	"genfs/internal/encryption"
	"genfs/internal/genfs"
	"genfs/internal/snapshot"
	"genfs/internal/testutil"
	"genfs/internal/vault"
)

func seededService(t *testing.T) (*genfs.Service, *database.SQLiteDatabase) {
	t.Helper()
	svc, db := testutil.NewTestService(t, genfs.Options{})
	ctx := context.Background()
	if _, err := svc.Write(ctx, genfs.WriteRequest{AppID: "app", Path: "src/main.go", Content: genfs.TextContent("package main")}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if _, err := svc.Write(ctx, genfs.WriteRequest{AppID: "app", Path: "src/main.go", Content: genfs.TextContent("package main\n")}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	return svc, db
}

// openPulled opens a pulled snapshot and returns the version numbers of
// src/main.go, newest first.
func openPulled(t *testing.T, path string) []int64 {
	t.Helper()
	db, err := database.NewSQLiteDatabase(path, 0)
	if err != nil {
		t.Fatalf("opening pulled snapshot: %v", err)
	}
	defer db.Close()

	svc := genfs.NewService(db, db, nil, nil, nil, genfs.Options{})
	versions, err := svc.GetVersions(context.Background(), "app", "src/main.go", 0)
	if err != nil {
		t.Fatalf("GetVersions() on pulled snapshot error = %v", err)
	}
	out := make([]int64, len(versions))
	for i, v := range versions {
		out[i] = v.Version
	}
	return out
}

func TestManager_PushPull(t *testing.T) {
	tests := []struct {
		name      string
		encryptor snapshot.Encryptor
	}{
		{name: "plaintext"},
		{name: "encrypted", encryptor: testutil.NewTestEncryptor()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			_, db := seededService(t)
			v := testutil.NewTestVault()
			clock := testutil.NewStubClock(time.Unix(1_700_000_000, 0))

			m := snapshot.NewManager("store-1", db, v, tt.encryptor, clock, nil)
			if m.Encrypted() != (tt.encryptor != nil) {
				t.Errorf("Encrypted() = %v", m.Encrypted())
			}

			version, err := m.Push(ctx)
			if err != nil {
				t.Fatalf("Push() error = %v", err)
			}
			if version != 1_700_000_000 {
				t.Errorf("Push() version = %d, want clock time", version)
			}

			var raw bytes.Buffer
			if err := v.GetSnapshot(ctx, "store-1", &raw); err != nil {
				t.Fatalf("GetSnapshot() error = %v", err)
			}
			isPlainSQLite := bytes.HasPrefix(raw.Bytes(), []byte("SQLite format 3"))
			if isPlainSQLite == m.Encrypted() {
				t.Errorf("stored snapshot plaintext = %v, encrypted = %v", isPlainSQLite, m.Encrypted())
			}

			dest := filepath.Join(t.TempDir(), "restore", "store.db")
			pulled, err := m.Pull(ctx, "pw", dest)
			if err != nil {
				t.Fatalf("Pull() error = %v", err)
			}
			if pulled != version {
				t.Errorf("Pull() version = %d, want %d", pulled, version)
			}

			got := openPulled(t, dest)
			if len(got) != 2 || got[0] != 2 || got[1] != 1 {
				t.Errorf("pulled versions = %v, want [2 1]", got)
			}
		})
	}
}

func TestManager_PushVersionIsMonotonic(t *testing.T) {
	ctx := context.Background()
	_, db := seededService(t)
	clock := testutil.NewStubClock(time.Unix(500, 0))
	m := snapshot.NewManager("store-1", db, testutil.NewTestVault(), nil, clock, nil)

	first, err := m.Push(ctx)
	if err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	second, err := m.Push(ctx)
	if err != nil {
		t.Fatalf("second Push() error = %v", err)
	}
	if second != first+1 {
		t.Errorf("second version = %d, want %d", second, first+1)
	}
}

func TestManager_Pull(t *testing.T) {
	ctx := context.Background()

	t.Run("no snapshot", func(t *testing.T) {
		db := testutil.NewTestDatabase(t)
		m := snapshot.NewManager("store-1", db, testutil.NewTestVault(), nil, nil, nil)

		_, err := m.Pull(ctx, "", filepath.Join(t.TempDir(), "store.db"))
		if !errors.Is(err, snapshot.ErrNoSnapshot) {
			t.Errorf("Pull() error = %v, want ErrNoSnapshot", err)
		}
	})

	t.Run("destination exists", func(t *testing.T) {
		_, db := seededService(t)
		m := snapshot.NewManager("store-1", db, testutil.NewTestVault(), nil, nil, nil)
		if _, err := m.Push(ctx); err != nil {
			t.Fatalf("Push() error = %v", err)
		}

		dest := filepath.Join(t.TempDir(), "store.db")
		if err := os.WriteFile(dest, []byte("keep me"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := m.Pull(ctx, "", dest); err == nil {
			t.Fatal("Pull() expected error for existing destination")
		}
		data, _ := os.ReadFile(dest)
		if string(data) != "keep me" {
			t.Error("existing destination was overwritten")
		}
	})

	t.Run("wrong passphrase leaves no file", func(t *testing.T) {
		_, db := seededService(t)
		enc := encryption.NewTestEncryptor()
		if err := enc.Setup("right"); err != nil {
			t.Fatal(err)
		}
		m := snapshot.NewManager("store-1", db, vault.NewMemoryVault("v"), enc, nil, nil)
		if _, err := m.Push(ctx); err != nil {
			t.Fatalf("Push() error = %v", err)
		}

		dest := filepath.Join(t.TempDir(), "store.db")
		if _, err := m.Pull(ctx, "wrong", dest); !errors.Is(err, encryption.ErrWrongPassphrase) {
			t.Fatalf("Pull() error = %v, want ErrWrongPassphrase", err)
		}
		if _, err := os.Stat(dest); !os.IsNotExist(err) {
			t.Error("destination created despite failed pull")
		}
	})
}
