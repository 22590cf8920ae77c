package db

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func TestOpen_CreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "rfref.db")

	database, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer database.Close()

	var count int
	err = database.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='issued_references'").Scan(&count)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected issued_references table, found %d", count)
	}

	version, err := SchemaVersion(database)
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if version != len(migrations) {
		t.Errorf("expected schema version %d, got %d", len(migrations), version)
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rfref.db")

	first, err := Open(path)
	if err != nil {
		t.Fatalf("first Open failed: %v", err)
	}
	if _, err := first.Exec("INSERT INTO issued_references (id, reference, body, invoice_id) VALUES ('REF-001', 'RF45ABC', 'ABC', 'INV-1')"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	first.Close()

	second, err := Open(path)
	if err != nil {
		t.Fatalf("second Open failed: %v", err)
	}
	defer second.Close()

	var count int
	if err := second.QueryRow("SELECT COUNT(*) FROM issued_references").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected data to survive reopen, got %d rows", count)
	}

	var versions int
	if err := second.QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&versions); err != nil {
		t.Fatalf("count versions: %v", err)
	}
	if versions != len(migrations) {
		t.Errorf("expected %d recorded migrations, got %d", len(migrations), versions)
	}
}

func TestSchema_StatusConstraint(t *testing.T) {
	database, err := Open(filepath.Join(t.TempDir(), "rfref.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer database.Close()

	_, err = database.Exec("INSERT INTO issued_references (id, reference, body, invoice_id, status) VALUES ('REF-001', 'RF45ABC', 'ABC', 'INV-1', 'void')")
	if err == nil {
		t.Fatal("expected CHECK constraint to reject unknown status")
	}
}

func TestInitSchema_MigratesVersionOne(t *testing.T) {
	database, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "v1.db"))
	if err != nil {
		t.Fatalf("sql.Open failed: %v", err)
	}
	defer database.Close()

	// Database as left by a release that only had the issued_references table
	setup := []string{
		"CREATE TABLE schema_version (version INTEGER PRIMARY KEY, applied_at DATETIME DEFAULT CURRENT_TIMESTAMP)",
		issuedReferencesSQL,
		"INSERT INTO schema_version (version) VALUES (1)",
	}
	for _, stmt := range setup {
		if _, err := database.Exec(stmt); err != nil {
			t.Fatalf("setup %q: %v", stmt, err)
		}
	}

	if err := InitSchema(database); err != nil {
		t.Fatalf("InitSchema failed: %v", err)
	}

	var count int
	err = database.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='ledger_logs'").Scan(&count)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if count != 1 {
		t.Fatal("expected ledger_logs table after migration")
	}

	version, err := SchemaVersion(database)
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if version != 2 {
		t.Errorf("expected schema version 2, got %d", version)
	}
}
