package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/rfref/internal/ports/secondary"
)

// LedgerLogRepository implements secondary.LedgerLogRepository with SQLite.
type LedgerLogRepository struct {
	db *sql.DB
}

// NewLedgerLogRepository creates a new SQLite ledger log repository.
func NewLedgerLogRepository(db *sql.DB) *LedgerLogRepository {
	return &LedgerLogRepository{db: db}
}

// Create persists a new log entry.
func (r *LedgerLogRepository) Create(ctx context.Context, log *secondary.LedgerLogRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO ledger_logs (id, actor_id, entity_id, action, field_name, old_value, new_value) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		log.ID,
		nullString(log.ActorID),
		log.EntityID,
		log.Action,
		nullString(log.FieldName),
		nullString(log.OldValue),
		nullString(log.NewValue),
	)
	if err != nil {
		return fmt.Errorf("failed to create ledger log: %w", err)
	}
	return nil
}

// List retrieves log entries matching the given filters, newest first.
func (r *LedgerLogRepository) List(ctx context.Context, filters secondary.LedgerLogFilters) ([]*secondary.LedgerLogRecord, error) {
	query := `SELECT id, timestamp, actor_id, entity_id, action, field_name, old_value, new_value FROM ledger_logs WHERE 1=1`
	args := []any{}

	if filters.EntityID != "" {
		query += " AND entity_id = ?"
		args = append(args, filters.EntityID)
	}

	if filters.ActorID != "" {
		query += " AND actor_id = ?"
		args = append(args, filters.ActorID)
	}

	if filters.Action != "" {
		query += " AND action = ?"
		args = append(args, filters.Action)
	}

	// IDs are allocated in order, so they break ties within one second.
	query += " ORDER BY timestamp DESC, id DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger logs: %w", err)
	}
	defer rows.Close()

	var logs []*secondary.LedgerLogRecord
	for rows.Next() {
		var (
			actorID   sql.NullString
			fieldName sql.NullString
			oldValue  sql.NullString
			newValue  sql.NullString
			timestamp time.Time
		)

		record := &secondary.LedgerLogRecord{}
		err := rows.Scan(&record.ID,
			&timestamp,
			&actorID,
			&record.EntityID,
			&record.Action,
			&fieldName,
			&oldValue,
			&newValue)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger log: %w", err)
		}
		record.Timestamp = timestamp.Format(time.RFC3339)
		record.ActorID = actorID.String
		record.FieldName = fieldName.String
		record.OldValue = oldValue.String
		record.NewValue = newValue.String

		logs = append(logs, record)
	}

	return logs, rows.Err()
}

// GetNextID returns the next available log ID.
func (r *LedgerLogRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	prefixLen := len("LOG-") + 1
	err := r.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT COALESCE(MAX(CAST(SUBSTR(id, %d) AS INTEGER)), 0) FROM ledger_logs", prefixLen),
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next ledger log ID: %w", err)
	}

	return fmt.Sprintf("LOG-%04d", maxID+1), nil
}

// PruneOlderThan deletes log entries older than the given number of days.
func (r *LedgerLogRepository) PruneOlderThan(ctx context.Context, days int) (int, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM ledger_logs WHERE timestamp < datetime('now', ?)",
		fmt.Sprintf("-%d days", days),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune ledger logs: %w", err)
	}

	count, _ := result.RowsAffected()
	return int(count), nil
}

// Ensure LedgerLogRepository implements the interface
var _ secondary.LedgerLogRepository = (*LedgerLogRepository)(nil)
