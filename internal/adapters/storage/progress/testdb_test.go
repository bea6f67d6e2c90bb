package progress

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"coursereport/internal/adapters/storage"
)

// openTestDB creates an in-memory SQLite database with the course schema.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	return db
}
