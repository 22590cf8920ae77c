package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/rfref/internal/core/creditorref"
	"github.com/example/rfref/internal/ports/primary"
	"github.com/example/rfref/internal/ports/secondary"
)

// LogServiceImpl implements the LogService interface.
type LogServiceImpl struct {
	logRepo secondary.LedgerLogRepository
	refRepo secondary.ReferenceRepository
}

// NewLogService creates a new LogService with injected dependencies.
func NewLogService(logRepo secondary.LedgerLogRepository, refRepo secondary.ReferenceRepository) *LogServiceImpl {
	return &LogServiceImpl{
		logRepo: logRepo,
		refRepo: refRepo,
	}
}

// ListLogs retrieves log entries matching the given filters.
func (s *LogServiceImpl) ListLogs(ctx context.Context, filters primary.LogFilters) ([]*primary.LogEntry, error) {
	entityID, err := s.resolveEntity(ctx, filters.Reference)
	if err != nil {
		return nil, err
	}

	records, err := s.logRepo.List(ctx, secondary.LedgerLogFilters{
		EntityID: entityID,
		ActorID:  filters.ActorID,
		Limit:    filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}

	entries := make([]*primary.LogEntry, len(records))
	for i, r := range records {
		entries[i] = s.recordToLogEntry(r)
	}
	return entries, nil
}

// PruneLogs deletes log entries older than the specified number of days.
func (s *LogServiceImpl) PruneLogs(ctx context.Context, olderThanDays int) (int, error) {
	if olderThanDays <= 0 {
		return 0, fmt.Errorf("days must be positive, got %d", olderThanDays)
	}
	return s.logRepo.PruneOlderThan(ctx, olderThanDays)
}

// resolveEntity maps a creditor reference to its ledger ID. Ledger IDs are
// matched in any case and returned uppercase; "" passes through.
func (s *LogServiceImpl) resolveEntity(ctx context.Context, reference string) (string, error) {
	if reference == "" {
		return "", nil
	}
	if id := strings.ToUpper(strings.TrimSpace(reference)); strings.HasPrefix(id, "REF-") {
		return id, nil
	}

	ref, err := creditorref.Parse(reference)
	if err != nil {
		return "", err
	}
	record, err := s.refRepo.GetByReference(ctx, ref.String())
	if err != nil {
		return "", fmt.Errorf("failed to look up reference: %w", err)
	}
	if record == nil {
		return "", fmt.Errorf("reference %s was not issued", ref)
	}
	return record.ID, nil
}

// Helper methods

func (s *LogServiceImpl) recordToLogEntry(r *secondary.LedgerLogRecord) *primary.LogEntry {
	return &primary.LogEntry{
		ID:        r.ID,
		Timestamp: r.Timestamp,
		ActorID:   r.ActorID,
		EntityID:  r.EntityID,
		Action:    r.Action,
		FieldName: r.FieldName,
		OldValue:  r.OldValue,
		NewValue:  r.NewValue,
	}
}

// Ensure LogServiceImpl implements the interface
var _ primary.LogService = (*LogServiceImpl)(nil)
