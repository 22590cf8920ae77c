package app

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/example/rfref/internal/ports/primary"
	"github.com/example/rfref/internal/ports/secondary"
)

// mockLedgerLogRepository implements secondary.LedgerLogRepository for testing.
type mockLedgerLogRepository struct {
	logs      []*secondary.LedgerLogRecord
	nextID    int
	listErr   error
	lastPrune int
}

func newMockLedgerLogRepository() *mockLedgerLogRepository {
	return &mockLedgerLogRepository{nextID: 1}
}

func (m *mockLedgerLogRepository) Create(ctx context.Context, log *secondary.LedgerLogRecord) error {
	m.logs = append(m.logs, log)
	return nil
}

func (m *mockLedgerLogRepository) List(ctx context.Context, filters secondary.LedgerLogFilters) ([]*secondary.LedgerLogRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.LedgerLogRecord
	for i := len(m.logs) - 1; i >= 0; i-- {
		l := m.logs[i]
		if filters.EntityID != "" && l.EntityID != filters.EntityID {
			continue
		}
		if filters.ActorID != "" && l.ActorID != filters.ActorID {
			continue
		}
		if filters.Action != "" && l.Action != filters.Action {
			continue
		}
		result = append(result, l)
	}

	// Apply limit
	if filters.Limit > 0 && len(result) > filters.Limit {
		result = result[:filters.Limit]
	}

	return result, nil
}

func (m *mockLedgerLogRepository) GetNextID(ctx context.Context) (string, error) {
	id := m.nextID
	m.nextID++
	return fmt.Sprintf("LOG-%04d", id), nil
}

func (m *mockLedgerLogRepository) PruneOlderThan(ctx context.Context, days int) (int, error) {
	m.lastPrune = days
	return 2, nil
}

func newTestLogService() (*LogServiceImpl, *mockLedgerLogRepository, *mockReferenceRepository) {
	logRepo := newMockLedgerLogRepository()
	refRepo := newMockReferenceRepository()
	return NewLogService(logRepo, refRepo), logRepo, refRepo
}

func TestListLogs(t *testing.T) {
	service, logRepo, refRepo := newTestLogService()
	ctx := context.Background()

	refRepo.records["REF-001"] = &secondary.IssuedReferenceRecord{ID: "REF-001", Reference: "RF18539007547034", Status: "open"}
	logRepo.logs = []*secondary.LedgerLogRecord{
		{ID: "LOG-0001", ActorID: "alice", EntityID: "REF-001", Action: "create"},
		{ID: "LOG-0002", ActorID: "bob", EntityID: "REF-002", Action: "create"},
		{ID: "LOG-0003", ActorID: "alice", EntityID: "REF-001", Action: "update", FieldName: "status", OldValue: "open", NewValue: "settled"},
	}

	tests := []struct {
		name    string
		filters primary.LogFilters
		wantIDs []string
	}{
		{name: "all entries", filters: primary.LogFilters{}, wantIDs: []string{"LOG-0003", "LOG-0002", "LOG-0001"}},
		{name: "by ledger ID", filters: primary.LogFilters{Reference: "REF-002"}, wantIDs: []string{"LOG-0002"}},
		{name: "by lowercase ledger ID", filters: primary.LogFilters{Reference: "ref-002"}, wantIDs: []string{"LOG-0002"}},
		{name: "by creditor reference", filters: primary.LogFilters{Reference: "rf18 5390 0754 7034"}, wantIDs: []string{"LOG-0003", "LOG-0001"}},
		{name: "by actor", filters: primary.LogFilters{ActorID: "bob"}, wantIDs: []string{"LOG-0002"}},
		{name: "with limit", filters: primary.LogFilters{Limit: 1}, wantIDs: []string{"LOG-0003"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := service.ListLogs(ctx, tt.filters)
			if err != nil {
				t.Fatalf("ListLogs failed: %v", err)
			}
			if len(entries) != len(tt.wantIDs) {
				t.Fatalf("expected %d entries, got %d", len(tt.wantIDs), len(entries))
			}
			for i, id := range tt.wantIDs {
				if entries[i].ID != id {
					t.Errorf("entries[%d].ID = %q, want %q", i, entries[i].ID, id)
				}
			}
		})
	}
}

func TestListLogs_UnissuedReference(t *testing.T) {
	service, _, _ := newTestLogService()

	_, err := service.ListLogs(context.Background(), primary.LogFilters{Reference: "RF45ABC"})
	if err == nil {
		t.Fatal("expected error for reference that was never issued")
	}
	if err.Error() != "reference RF45ABC was not issued" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestListLogs_MalformedReference(t *testing.T) {
	service, _, _ := newTestLogService()

	_, err := service.ListLogs(context.Background(), primary.LogFilters{Reference: "XX12ABC"})
	if err == nil {
		t.Fatal("expected error for malformed reference")
	}
}

func TestListLogs_RepositoryError(t *testing.T) {
	service, logRepo, _ := newTestLogService()
	logRepo.listErr = errors.New("database error")

	_, err := service.ListLogs(context.Background(), primary.LogFilters{})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestPruneLogs(t *testing.T) {
	service, logRepo, _ := newTestLogService()

	count, err := service.PruneLogs(context.Background(), 90)
	if err != nil {
		t.Fatalf("PruneLogs failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 pruned, got %d", count)
	}
	if logRepo.lastPrune != 90 {
		t.Errorf("expected prune of 90 days, got %d", logRepo.lastPrune)
	}

	if _, err := service.PruneLogs(context.Background(), 0); err == nil {
		t.Error("expected error for non-positive days")
	}
}
