package migrations

import (
	"database/sql"
	"errors"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func TestMigrateUp_FreshDatabase(t *testing.T) {
	db := openTestDB(t)

	if err := MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() failed: %v", err)
	}

	tables := []string{"files", "file_versions", "file_references", "schema_migrations"}
	for _, table := range tables {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s was not created: %v", table, err)
		}
	}
}

func TestCheckDBMigrationStatus(t *testing.T) {
	t.Run("fresh database needs migration", func(t *testing.T) {
		db := openTestDB(t)

		err := CheckDBMigrationStatus(db)
		if !errors.Is(err, ErrNoSchema) {
			t.Errorf("CheckDBMigrationStatus() error = %v, want ErrNoSchema", err)
		}
	})

	t.Run("migrated database is current", func(t *testing.T) {
		db := openTestDB(t)
		if err := MigrateUp(db); err != nil {
			t.Fatalf("MigrateUp() failed: %v", err)
		}

		if err := CheckDBMigrationStatus(db); err != nil {
			t.Errorf("CheckDBMigrationStatus() after migration returned error: %v", err)
		}
	})
}

func TestMigrateUp_Idempotent(t *testing.T) {
	db := openTestDB(t)

	if err := MigrateUp(db); err != nil {
		t.Fatalf("first MigrateUp() failed: %v", err)
	}
	if err := MigrateUp(db); err != nil {
		t.Errorf("second MigrateUp() failed: %v (should be idempotent)", err)
	}
}

func TestLatestVersion(t *testing.T) {
	got, err := LatestVersion()
	if err != nil {
		t.Fatalf("LatestVersion() error = %v", err)
	}
	if got != 2 {
		t.Errorf("LatestVersion() = %d, want 2", got)
	}
}

func TestSchema_AppPathUnique(t *testing.T) {
	db := migratedDB(t)

	insert := `INSERT INTO files (id, app_id, path, mime_type, size_bytes, content_hash, created_at, updated_at)
		VALUES (?, ?, ?, 'text/plain', 0, '', datetime('now'), datetime('now'))`

	if _, err := db.Exec(insert, "file-1", "app-1", "src/main.go"); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	if _, err := db.Exec(insert, "file-2", "app-2", "src/main.go"); err != nil {
		t.Errorf("same path in another app should be allowed: %v", err)
	}
	if _, err := db.Exec(insert, "file-3", "app-1", "src/main.go"); err == nil {
		t.Error("expected unique constraint violation for duplicate (app_id, path)")
	}
}

func TestSchema_FileVersions(t *testing.T) {
	db := migratedDB(t)

	if _, err := db.Exec(`INSERT INTO files (id, app_id, path, mime_type, size_bytes, content_hash, created_at, updated_at)
		VALUES ('file-1', 'app-1', 'a.txt', 'text/plain', 0, '', datetime('now'), datetime('now'))`); err != nil {
		t.Fatalf("inserting file: %v", err)
	}

	t.Run("rejects both text and bytes", func(t *testing.T) {
		_, err := db.Exec(`INSERT INTO file_versions (id, file_id, version, content_text, content_bytes, created_at)
			VALUES ('v-both', 'file-1', 1, 'x', X'00', datetime('now'))`)
		if err == nil {
			t.Error("expected check constraint violation")
		}
	})

	t.Run("rejects duplicate version number", func(t *testing.T) {
		if _, err := db.Exec(`INSERT INTO file_versions (id, file_id, version, content_text, created_at)
			VALUES ('v-1', 'file-1', 1, 'x', datetime('now'))`); err != nil {
			t.Fatalf("first version insert failed: %v", err)
		}
		_, err := db.Exec(`INSERT INTO file_versions (id, file_id, version, content_text, created_at)
			VALUES ('v-1b', 'file-1', 1, 'y', datetime('now'))`)
		if err == nil {
			t.Error("expected unique constraint violation on (file_id, version)")
		}
	})

	t.Run("rejects unknown file", func(t *testing.T) {
		_, err := db.Exec(`INSERT INTO file_versions (id, file_id, version, content_text, created_at)
			VALUES ('v-x', 'missing', 1, 'x', datetime('now'))`)
		if err == nil {
			t.Error("expected foreign key constraint violation")
		}
	})

	t.Run("cascades on file delete", func(t *testing.T) {
		if _, err := db.Exec(`DELETE FROM files WHERE id = 'file-1'`); err != nil {
			t.Fatalf("deleting file: %v", err)
		}
		var n int
		if err := db.QueryRow(`SELECT COUNT(*) FROM file_versions WHERE file_id = 'file-1'`).Scan(&n); err != nil {
			t.Fatalf("counting versions: %v", err)
		}
		if n != 0 {
			t.Errorf("versions left after delete = %d, want 0", n)
		}
	})
}

// openTestDB opens a single-connection in-memory SQLite database.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	// Every pooled connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func migratedDB(t *testing.T) *sql.DB {
	t.Helper()
	db := openTestDB(t)
	if err := MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() failed: %v", err)
	}
	return db
}
