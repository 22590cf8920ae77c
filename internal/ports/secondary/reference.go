// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// IssuedReferenceRecord represents an issued reference as stored in persistence.
type IssuedReferenceRecord struct {
	ID          string
	Reference   string // electronic form
	Body        string
	InvoiceID   string
	Description string // Empty string means null
	Status      string
	IssuedBy    string // Empty string means null
	CreatedAt   string
	SettledAt   string // Empty string means null
}

// ReferenceFilters contains filter options for listing issued references.
type ReferenceFilters struct {
	Status string
}

// ReferenceRepository defines the secondary port for the issued-reference ledger.
type ReferenceRepository interface {
	// Create persists a new issued reference.
	Create(ctx context.Context, record *IssuedReferenceRecord) error

	// GetByID retrieves an issued reference by its ID.
	GetByID(ctx context.Context, id string) (*IssuedReferenceRecord, error)

	// GetByReference retrieves the entry for an electronic reference (nil if none).
	GetByReference(ctx context.Context, reference string) (*IssuedReferenceRecord, error)

	// GetByInvoice retrieves the entry for an invoice (nil if none).
	GetByInvoice(ctx context.Context, invoiceID string) (*IssuedReferenceRecord, error)

	// List retrieves issued references matching the filters, oldest first.
	List(ctx context.Context, filters ReferenceFilters) ([]*IssuedReferenceRecord, error)

	// MarkSettled sets the status to settled and stamps settled_at.
	MarkSettled(ctx context.Context, id string) error

	// GetNextSequence returns the next ledger sequence number.
	GetNextSequence(ctx context.Context) (int, error)
}
