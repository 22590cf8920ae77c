package sqlite

import (
	"context"

	"github.com/example/rfref/internal/ctxutil"
	"github.com/example/rfref/internal/ports/secondary"
)

// LogWriterAdapter implements secondary.LogWriter using LedgerLogRepository.
type LogWriterAdapter struct {
	logRepo secondary.LedgerLogRepository
}

// NewLogWriterAdapter creates a new LogWriterAdapter.
func NewLogWriterAdapter(logRepo secondary.LedgerLogRepository) *LogWriterAdapter {
	return &LogWriterAdapter{logRepo: logRepo}
}

// LogCreate logs that an entity was created.
func (w *LogWriterAdapter) LogCreate(ctx context.Context, entityID string) error {
	return w.writeLog(ctx, entityID, "create", "", "", "")
}

// LogUpdate logs an update to an entity field.
func (w *LogWriterAdapter) LogUpdate(ctx context.Context, entityID, fieldName, oldValue, newValue string) error {
	return w.writeLog(ctx, entityID, "update", fieldName, oldValue, newValue)
}

func (w *LogWriterAdapter) writeLog(ctx context.Context, entityID, action, fieldName, oldValue, newValue string) error {
	id, err := w.logRepo.GetNextID(ctx)
	if err != nil {
		return err
	}

	return w.logRepo.Create(ctx, &secondary.LedgerLogRecord{
		ID:        id,
		ActorID:   ctxutil.ActorFromContext(ctx),
		EntityID:  entityID,
		Action:    action,
		FieldName: fieldName,
		OldValue:  oldValue,
		NewValue:  newValue,
	})
}

// Ensure LogWriterAdapter implements the interface
var _ secondary.LogWriter = (*LogWriterAdapter)(nil)
