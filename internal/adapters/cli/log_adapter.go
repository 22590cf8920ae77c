package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/example/rfref/internal/ports/primary"
)

// LogAdapter renders the ledger audit trail.
type LogAdapter struct {
	service primary.LogService
	out     io.Writer
}

// NewLogAdapter creates a new LogAdapter with the given service.
func NewLogAdapter(service primary.LogService, out io.Writer) *LogAdapter {
	return &LogAdapter{
		service: service,
		out:     out,
	}
}

// Show prints matching entries, oldest first.
func (a *LogAdapter) Show(ctx context.Context, filters primary.LogFilters) ([]*primary.LogEntry, error) {
	entries, err := a.service.ListLogs(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch logs: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No log entries found.")
		return entries, nil
	}

	fmt.Fprintf(a.out, "Found %d log entries:\n\n", len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		a.printEntry(entries[i])
	}
	return entries, nil
}

// Prune deletes entries older than days.
func (a *LogAdapter) Prune(ctx context.Context, days int) (int, error) {
	count, err := a.service.PruneLogs(ctx, days)
	if err != nil {
		return 0, fmt.Errorf("failed to prune logs: %w", err)
	}

	if count == 0 {
		fmt.Fprintf(a.out, "No log entries older than %d days found.\n", days)
	} else {
		fmt.Fprintf(a.out, "Pruned %d log entries older than %d days.\n", count, days)
	}
	return count, nil
}

// Format: timestamp | actor | action | entity | field change
func (a *LogAdapter) printEntry(entry *primary.LogEntry) {
	actor := entry.ActorID
	if actor == "" {
		actor = "-"
	}

	fmt.Fprintf(a.out, "%s | %-12s | %s %-6s | %s",
		formatTimestamp(entry.Timestamp),
		actor,
		actionIcon(entry.Action),
		entry.Action,
		idColor.Sprint(entry.EntityID),
	)
	if entry.Action == "update" && entry.FieldName != "" {
		fmt.Fprintf(a.out, " | %s: %s -> %s", entry.FieldName, entry.OldValue, entry.NewValue)
	}
	fmt.Fprintln(a.out)
}

func actionIcon(action string) string {
	switch action {
	case "create":
		return "+"
	case "update":
		return "~"
	default:
		return "?"
	}
}

func formatTimestamp(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}
