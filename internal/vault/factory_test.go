package vault

import (
	"context"
	"path/filepath"
	"testing"

	"genfs/internal/config"
)

func TestNewVaultFromConfig(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		cfg     config.VaultConfig
		wantErr bool
	}{
		{name: "memory", cfg: config.VaultConfig{Type: "memory", Name: "m"}},
		{name: "filesystem", cfg: config.VaultConfig{Type: "filesystem", Name: "fs", FSVaultRoot: filepath.Join(t.TempDir(), "v")}},
		{name: "filesystem without root", cfg: config.VaultConfig{Type: "filesystem", Name: "fs"}, wantErr: true},
		{name: "s3 without bucket", cfg: config.VaultConfig{Type: "s3", Name: "s3"}, wantErr: true},
		{name: "unknown type", cfg: config.VaultConfig{Type: "ftp", Name: "x"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := NewVaultFromConfig(ctx, tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Error("NewVaultFromConfig() expected error")
				}
				if v != nil {
					t.Errorf("NewVaultFromConfig() returned vault %T alongside error", v)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewVaultFromConfig() error = %v", err)
			}
			if v == nil {
				t.Fatal("NewVaultFromConfig() returned nil vault")
			}
		})
	}
}
