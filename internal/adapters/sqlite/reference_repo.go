// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/rfref/internal/ports/secondary"
)

const referenceColumns = "id, reference, body, invoice_id, description, status, issued_by, created_at, settled_at"

// ReferenceRepository implements secondary.ReferenceRepository with SQLite.
type ReferenceRepository struct {
	db        *sql.DB
	logWriter secondary.LogWriter
}

// NewReferenceRepository creates a new SQLite reference ledger repository.
// logWriter is optional (can be nil) for audit logging.
func NewReferenceRepository(db *sql.DB, logWriter secondary.LogWriter) *ReferenceRepository {
	return &ReferenceRepository{db: db, logWriter: logWriter}
}

// Create persists a new issued reference.
func (r *ReferenceRepository) Create(ctx context.Context, record *secondary.IssuedReferenceRecord) error {
	status := record.Status
	if status == "" {
		status = "open"
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO issued_references (id, reference, body, invoice_id, description, status, issued_by) VALUES (?, ?, ?, ?, ?, ?, ?)",
		record.ID, record.Reference, record.Body, record.InvoiceID,
		nullString(record.Description), status, nullString(record.IssuedBy),
	)
	if err != nil {
		return fmt.Errorf("failed to create issued reference: %w", err)
	}

	// Log create operation
	if r.logWriter != nil {
		_ = r.logWriter.LogCreate(ctx, record.ID)
	}

	return nil
}

// GetByID retrieves an issued reference by its ID.
func (r *ReferenceRepository) GetByID(ctx context.Context, id string) (*secondary.IssuedReferenceRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+referenceColumns+" FROM issued_references WHERE id = ?", id)

	record, err := scanReference(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("issued reference %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get issued reference: %w", err)
	}
	return record, nil
}

// GetByReference retrieves the entry for an electronic reference (nil if none).
func (r *ReferenceRepository) GetByReference(ctx context.Context, reference string) (*secondary.IssuedReferenceRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+referenceColumns+" FROM issued_references WHERE reference = ?", reference)

	record, err := scanReference(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get issued reference: %w", err)
	}
	return record, nil
}

// GetByInvoice retrieves the entry for an invoice (nil if none).
func (r *ReferenceRepository) GetByInvoice(ctx context.Context, invoiceID string) (*secondary.IssuedReferenceRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+referenceColumns+" FROM issued_references WHERE invoice_id = ?", invoiceID)

	record, err := scanReference(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get issued reference: %w", err)
	}
	return record, nil
}

// List retrieves issued references matching the filters, oldest first.
func (r *ReferenceRepository) List(ctx context.Context, filters secondary.ReferenceFilters) ([]*secondary.IssuedReferenceRecord, error) {
	query := "SELECT " + referenceColumns + " FROM issued_references"
	var args []any
	if filters.Status != "" {
		query += " WHERE status = ?"
		args = append(args, filters.Status)
	}
	query += " ORDER BY created_at ASC, id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list issued references: %w", err)
	}
	defer rows.Close()

	var records []*secondary.IssuedReferenceRecord
	for rows.Next() {
		record, err := scanReference(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan issued reference: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list issued references: %w", err)
	}

	return records, nil
}

// MarkSettled sets the status to settled and stamps settled_at.
func (r *ReferenceRepository) MarkSettled(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE issued_references SET status = 'settled', settled_at = CURRENT_TIMESTAMP WHERE id = ?",
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to settle issued reference: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("issued reference %s not found", id)
	}

	// Log status change
	if r.logWriter != nil {
		_ = r.logWriter.LogUpdate(ctx, id, "status", "open", "settled")
	}

	return nil
}

// GetNextSequence returns the next ledger sequence number.
func (r *ReferenceRepository) GetNextSequence(ctx context.Context) (int, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM issued_references",
	).Scan(&maxID)
	if err != nil {
		return 0, fmt.Errorf("failed to get next ledger sequence: %w", err)
	}

	return maxID + 1, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReference(s scanner) (*secondary.IssuedReferenceRecord, error) {
	var (
		desc      sql.NullString
		issuedBy  sql.NullString
		createdAt time.Time
		settledAt sql.NullTime
	)

	record := &secondary.IssuedReferenceRecord{}
	err := s.Scan(&record.ID, &record.Reference, &record.Body, &record.InvoiceID,
		&desc, &record.Status, &issuedBy, &createdAt, &settledAt)
	if err != nil {
		return nil, err
	}

	record.Description = desc.String
	record.IssuedBy = issuedBy.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	if settledAt.Valid {
		record.SettledAt = settledAt.Time.Format(time.RFC3339)
	}

	return record, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// Ensure ReferenceRepository implements the interface.
var _ secondary.ReferenceRepository = (*ReferenceRepository)(nil)
