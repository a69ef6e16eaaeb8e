package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/dentplan/internal/db"
)

// NewTestDB returns a migrated in-memory plan database that is closed when
// the test ends.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return openTestDB(t, db.MemoryPath)
}

// NewFileTestDB is NewTestDB backed by a file in the test's temp dir, for
// code paths that depend on a connection pool.
func NewFileTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return openTestDB(t, filepath.Join(t.TempDir(), "dentplan.db"))
}

func openTestDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(path)
	if err != nil {
		t.Fatalf("opening test database %s: %v", path, err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

// CountLineItems reports how many line item rows are stored for planID.
func CountLineItems(t *testing.T, database *sql.DB, planID string) int {
	t.Helper()
	var n int
	if err := database.QueryRow(`SELECT COUNT(*) FROM plan_line_items WHERE plan_id = ?`, planID).Scan(&n); err != nil {
		t.Fatalf("counting line items of %s: %v", planID, err)
	}
	return n
}
