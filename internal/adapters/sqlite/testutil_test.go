// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup goes through setupTestDB(), which uses db.GetSchemaSQL() so
// tests run against the authoritative schema.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/rfref/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// Each pooled connection to :memory: is a separate database.
	testDB.SetMaxOpenConns(1)

	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedIssuedReference inserts a ledger row and returns its ID.
func seedIssuedReference(t *testing.T, db *sql.DB, id, reference, body, invoiceID, status string) string {
	t.Helper()
	if status == "" {
		status = "open"
	}
	_, err := db.Exec(
		"INSERT INTO issued_references (id, reference, body, invoice_id, status) VALUES (?, ?, ?, ?, ?)",
		id, reference, body, invoiceID, status,
	)
	if err != nil {
		t.Fatalf("failed to seed issued reference: %v", err)
	}
	return id
}
