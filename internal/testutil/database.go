package testutil

import (
	"testing"

	"genfs/internal/database"
	"genfs/internal/genfs"
)

// NewTestDatabase creates a new in-memory SQLite database with migrations applied.
// The database is automatically closed when the test completes.
func NewTestDatabase(t *testing.T) *database.SQLiteDatabase {
	t.Helper()

	db, err := database.NewSQLiteDatabase(database.MemoryPath, 0)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// NewTestService returns a Service over a fresh in-memory database that also
// serves as the reference graph, with a fixed clock and sequential ids.
func NewTestService(t *testing.T, opts genfs.Options) (*genfs.Service, *database.SQLiteDatabase) {
	t.Helper()

	db := NewTestDatabase(t)
	svc := genfs.NewService(db, db, genfs.NewNopLogger(), FixedClock(), NewStubIDGenerator(), opts)
	return svc, db
}
