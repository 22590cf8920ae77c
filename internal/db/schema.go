package db

import (
	"database/sql"
	"fmt"
)

// SchemaSQL is the complete schema for the reference ledger.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. Repository
// tests load it through GetSchemaSQL() so a column referenced by the
// adapters but missing here fails at test time with "no such column".
//
// When adding columns or tables, append a migration below and update
// SchemaSQL so fresh and migrated databases stay identical.
const SchemaSQL = issuedReferencesSQL + ledgerLogsSQL

const issuedReferencesSQL = `
-- Issued references (one per invoice)
CREATE TABLE IF NOT EXISTS issued_references (
	id TEXT PRIMARY KEY,
	reference TEXT NOT NULL UNIQUE,
	body TEXT NOT NULL,
	invoice_id TEXT NOT NULL UNIQUE,
	description TEXT,
	status TEXT NOT NULL CHECK(status IN ('open', 'settled')) DEFAULT 'open',
	issued_by TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	settled_at DATETIME
);

CREATE INDEX IF NOT EXISTS idx_issued_references_status ON issued_references(status);
`

const ledgerLogsSQL = `
-- Ledger audit trail (append-only, prunable)
CREATE TABLE IF NOT EXISTS ledger_logs (
	id TEXT PRIMARY KEY,
	timestamp DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	actor_id TEXT,
	entity_id TEXT NOT NULL,
	action TEXT NOT NULL CHECK(action IN ('create', 'update')),
	field_name TEXT,
	old_value TEXT,
	new_value TEXT
);

CREATE INDEX IF NOT EXISTS idx_ledger_logs_entity ON ledger_logs(entity_id);
CREATE INDEX IF NOT EXISTS idx_ledger_logs_timestamp ON ledger_logs(timestamp);
`

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_issued_references",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(issuedReferencesSQL)
			return err
		},
	},
	{
		Version: 2,
		Name:    "create_ledger_logs",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(ledgerLogsSQL)
			return err
		},
	},
}

// InitSchema creates the schema_version table and runs pending migrations.
// It is safe to call on every open.
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	return RunMigrations(db)
}

// RunMigrations executes all pending migrations, each in its own transaction.
func RunMigrations(db *sql.DB) error {
	var currentVersion int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Name, err)
		}

		_, err = tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// SchemaVersion returns the highest applied migration version.
func SchemaVersion(db *sql.DB) (int, error) {
	var v int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&v)
	return v, err
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
