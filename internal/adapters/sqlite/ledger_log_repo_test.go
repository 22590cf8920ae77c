package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/rfref/internal/adapters/sqlite"
	"github.com/example/rfref/internal/ctxutil"
	"github.com/example/rfref/internal/ports/secondary"
)

func TestLedgerLogRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewLedgerLogRepository(db)
	ctx := context.Background()

	t.Run("creates log with all fields", func(t *testing.T) {
		record := &secondary.LedgerLogRecord{
			ID:        "LOG-0001",
			ActorID:   "ar-clerk",
			EntityID:  "REF-001",
			Action:    "update",
			FieldName: "status",
			OldValue:  "open",
			NewValue:  "settled",
		}

		if err := repo.Create(ctx, record); err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		logs, err := repo.List(ctx, secondary.LedgerLogFilters{EntityID: "REF-001"})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(logs) != 1 {
			t.Fatalf("expected 1 log, got %d", len(logs))
		}

		got := logs[0]
		if got.ActorID != "ar-clerk" {
			t.Errorf("ActorID = %q, want %q", got.ActorID, "ar-clerk")
		}
		if got.Action != "update" {
			t.Errorf("Action = %q, want %q", got.Action, "update")
		}
		if got.FieldName != "status" || got.OldValue != "open" || got.NewValue != "settled" {
			t.Errorf("unexpected change: %s %q -> %q", got.FieldName, got.OldValue, got.NewValue)
		}
		if got.Timestamp == "" {
			t.Error("expected Timestamp to be set")
		}
	})

	t.Run("creates log with nullable fields empty", func(t *testing.T) {
		record := &secondary.LedgerLogRecord{
			ID:       "LOG-0002",
			EntityID: "REF-002",
			Action:   "create",
		}

		if err := repo.Create(ctx, record); err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		logs, err := repo.List(ctx, secondary.LedgerLogFilters{EntityID: "REF-002"})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(logs) != 1 {
			t.Fatalf("expected 1 log, got %d", len(logs))
		}
		if logs[0].ActorID != "" || logs[0].FieldName != "" {
			t.Errorf("expected empty nullable fields, got %+v", logs[0])
		}
	})

	t.Run("rejects unknown action", func(t *testing.T) {
		err := repo.Create(ctx, &secondary.LedgerLogRecord{ID: "LOG-0003", EntityID: "REF-003", Action: "delete"})
		if err == nil {
			t.Error("expected CHECK constraint to reject delete action")
		}
	})
}

func TestLedgerLogRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewLedgerLogRepository(db)
	ctx := context.Background()

	fixtures := []*secondary.LedgerLogRecord{
		{ID: "LOG-0001", ActorID: "alice", EntityID: "REF-001", Action: "create"},
		{ID: "LOG-0002", ActorID: "bob", EntityID: "REF-002", Action: "create"},
		{ID: "LOG-0003", ActorID: "alice", EntityID: "REF-001", Action: "update", FieldName: "status", OldValue: "open", NewValue: "settled"},
	}
	for _, f := range fixtures {
		if err := repo.Create(ctx, f); err != nil {
			t.Fatalf("Create %s failed: %v", f.ID, err)
		}
	}

	tests := []struct {
		name    string
		filters secondary.LedgerLogFilters
		wantIDs []string
	}{
		{name: "all newest first", filters: secondary.LedgerLogFilters{}, wantIDs: []string{"LOG-0003", "LOG-0002", "LOG-0001"}},
		{name: "by entity", filters: secondary.LedgerLogFilters{EntityID: "REF-001"}, wantIDs: []string{"LOG-0003", "LOG-0001"}},
		{name: "by actor", filters: secondary.LedgerLogFilters{ActorID: "bob"}, wantIDs: []string{"LOG-0002"}},
		{name: "by action", filters: secondary.LedgerLogFilters{Action: "update"}, wantIDs: []string{"LOG-0003"}},
		{name: "with limit", filters: secondary.LedgerLogFilters{Limit: 2}, wantIDs: []string{"LOG-0003", "LOG-0002"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs, err := repo.List(ctx, tt.filters)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(logs) != len(tt.wantIDs) {
				t.Fatalf("expected %d logs, got %d", len(tt.wantIDs), len(logs))
			}
			for i, id := range tt.wantIDs {
				if logs[i].ID != id {
					t.Errorf("logs[%d].ID = %q, want %q", i, logs[i].ID, id)
				}
			}
		})
	}
}

func TestLedgerLogRepository_GetNextID(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewLedgerLogRepository(db)
	ctx := context.Background()

	id, err := repo.GetNextID(ctx)
	if err != nil {
		t.Fatalf("GetNextID failed: %v", err)
	}
	if id != "LOG-0001" {
		t.Errorf("expected LOG-0001, got %s", id)
	}

	repo.Create(ctx, &secondary.LedgerLogRecord{ID: "LOG-0001", EntityID: "REF-001", Action: "create"})

	id, err = repo.GetNextID(ctx)
	if err != nil {
		t.Fatalf("GetNextID failed: %v", err)
	}
	if id != "LOG-0002" {
		t.Errorf("expected LOG-0002, got %s", id)
	}
}

func TestLedgerLogRepository_PruneOlderThan(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewLedgerLogRepository(db)
	ctx := context.Background()

	db.ExecContext(ctx, "INSERT INTO ledger_logs (id, timestamp, entity_id, action) VALUES ('LOG-0001', datetime('now', '-60 days'), 'REF-001', 'create')")
	db.ExecContext(ctx, "INSERT INTO ledger_logs (id, entity_id, action) VALUES ('LOG-0002', 'REF-002', 'create')")

	count, err := repo.PruneOlderThan(ctx, 30)
	if err != nil {
		t.Fatalf("PruneOlderThan failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 pruned entry, got %d", count)
	}

	logs, _ := repo.List(ctx, secondary.LedgerLogFilters{})
	if len(logs) != 1 || logs[0].ID != "LOG-0002" {
		t.Errorf("expected only the recent entry to remain, got %+v", logs)
	}
}

func TestLogWriterAdapter(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewLedgerLogRepository(db)
	writer := sqlite.NewLogWriterAdapter(repo)
	ctx := ctxutil.WithActorID(context.Background(), "ar-clerk")

	if err := writer.LogCreate(ctx, "REF-001"); err != nil {
		t.Fatalf("LogCreate failed: %v", err)
	}
	if err := writer.LogUpdate(ctx, "REF-001", "status", "open", "settled"); err != nil {
		t.Fatalf("LogUpdate failed: %v", err)
	}

	logs, err := repo.List(ctx, secondary.LedgerLogFilters{EntityID: "REF-001"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 logs, got %d", len(logs))
	}
	if logs[0].ID != "LOG-0002" || logs[0].Action != "update" {
		t.Errorf("expected update as newest entry, got %+v", logs[0])
	}
	if logs[1].ID != "LOG-0001" || logs[1].Action != "create" {
		t.Errorf("expected create as oldest entry, got %+v", logs[1])
	}
	for _, l := range logs {
		if l.ActorID != "ar-clerk" {
			t.Errorf("ActorID = %q, want ar-clerk", l.ActorID)
		}
	}
}
