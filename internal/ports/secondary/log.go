package secondary

import "context"

// LogWriter defines the interface for writing ledger audit entries.
// Implementations extract the actor from context.
type LogWriter interface {
	// LogCreate logs that an entity was created.
	LogCreate(ctx context.Context, entityID string) error

	// LogUpdate logs an update to an entity field.
	// fieldName, oldValue, newValue describe what changed.
	LogUpdate(ctx context.Context, entityID, fieldName, oldValue, newValue string) error
}

// LedgerLogRepository defines the secondary port for the ledger audit trail.
// Entries are immutable - no Update operations, but old entries can be pruned.
type LedgerLogRepository interface {
	// Create persists a new log entry.
	Create(ctx context.Context, log *LedgerLogRecord) error

	// List retrieves log entries matching the given filters, newest first.
	List(ctx context.Context, filters LedgerLogFilters) ([]*LedgerLogRecord, error)

	// GetNextID returns the next available log ID.
	GetNextID(ctx context.Context) (string, error)

	// PruneOlderThan deletes log entries older than the given number of days.
	// Returns the number of deleted entries.
	PruneOlderThan(ctx context.Context, days int) (int, error)
}

// LedgerLogRecord represents an audit entry as stored in persistence.
type LedgerLogRecord struct {
	ID        string
	Timestamp string
	ActorID   string // Empty string means null
	EntityID  string // issued reference ID, e.g. REF-001
	Action    string // 'create', 'update'
	FieldName string // Empty string means null - for updates only
	OldValue  string // Empty string means null
	NewValue  string // Empty string means null
}

// LedgerLogFilters contains filter options for querying logs.
type LedgerLogFilters struct {
	EntityID string
	ActorID  string
	Action   string
	Limit    int
}
