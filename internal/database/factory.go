package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"genfs/internal/config"
)

// NewDatabaseFromConfig creates the version store selected by the database config type.
func NewDatabaseFromConfig(cfg config.DatabaseConfig) (*SQLiteDatabase, error) {
	busyTimeout := time.Duration(cfg.BusyTimeoutMS) * time.Millisecond

	switch cfg.Type {
	case "sqlite":
		if cfg.Path == "" {
			return nil, fmt.Errorf("path required for sqlite database")
		}
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
		return NewSQLiteDatabase(cfg.Path, busyTimeout)
	case "memory":
		return NewSQLiteDatabase(MemoryPath, busyTimeout)
	default:
		return nil, fmt.Errorf("unknown database type: %s", cfg.Type)
	}
}
