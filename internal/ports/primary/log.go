package primary

import "context"

// LogService defines the primary port for the ledger audit trail.
type LogService interface {
	// ListLogs retrieves log entries matching the given filters, newest first.
	ListLogs(ctx context.Context, filters LogFilters) ([]*LogEntry, error)

	// PruneLogs deletes log entries older than the specified number of days.
	PruneLogs(ctx context.Context, olderThanDays int) (int, error)
}

// LogEntry represents a ledger audit entry at the port boundary.
type LogEntry struct {
	ID        string
	Timestamp string
	ActorID   string
	EntityID  string
	Action    string // 'create', 'update'
	FieldName string // For updates only
	OldValue  string
	NewValue  string
}

// LogFilters contains filter options for querying logs.
// Reference may be an issued reference ID (REF-001) or a creditor reference
// in any accepted form; the service resolves the latter.
type LogFilters struct {
	Reference string
	ActorID   string
	Limit     int
}
