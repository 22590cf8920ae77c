// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces through which the outside world drives the application.
package primary

import "context"

// ReferenceService defines the primary port for creditor reference operations.
type ReferenceService interface {
	// Generate builds the creditor reference for a raw body.
	Generate(ctx context.Context, req GenerateRequest) (*Reference, error)

	// Validate checks a single reference. Malformed input is returned as an
	// error; a well-formed reference with wrong check digits is a Verdict
	// with Valid=false.
	Validate(ctx context.Context, reference string) (*Verdict, error)

	// ValidateBatch checks many references concurrently. Results keep the
	// input order and carry per-item errors in Verdict.Err.
	ValidateBatch(ctx context.Context, references []string) ([]*Verdict, error)

	// Issue records a reference against an invoice in the ledger.
	Issue(ctx context.Context, req IssueRequest) (*IssueResponse, error)

	// Match validates a reference taken from a remittance and looks up the
	// invoice it was issued for.
	Match(ctx context.Context, reference string) (*MatchResult, error)

	// Settle marks an open issued reference as paid.
	Settle(ctx context.Context, reference string) (*IssuedReference, error)

	// ListIssued lists issued references.
	ListIssued(ctx context.Context, filters IssuedFilters) ([]*IssuedReference, error)
}

// GenerateRequest contains parameters for generating a reference.
type GenerateRequest struct {
	Body     string
	Template bool // Body may carry an "RF" prefix and placeholder check digits
}

// Reference represents a creditor reference at the port boundary.
type Reference struct {
	Electronic  string // "RF18539007547034"
	Print       string // "RF18 5390 0754 7034"
	CheckDigits string
	Body        string
}

// Verdict is the outcome of validating one input.
type Verdict struct {
	Input     string
	Valid     bool
	Reference *Reference // nil when the input is malformed
	Err       error      // structural error; nil for well-formed input
}

// IssueRequest contains parameters for issuing a reference.
// An empty Body lets the ledger assign the next sequence number.
type IssueRequest struct {
	InvoiceID   string
	Body        string
	Description string
}

// IssueResponse contains the result of issuing a reference.
type IssueResponse struct {
	ID     string
	Issued *IssuedReference
}

// MatchResult contains the result of matching a remittance reference.
type MatchResult struct {
	Verdict *Verdict
	Issued  *IssuedReference // nil when the reference was never issued
}

// IssuedFilters contains filter options for listing issued references.
type IssuedFilters struct {
	Status string
}

// IssuedReference represents a ledger entry at the port boundary.
type IssuedReference struct {
	ID          string
	Reference   *Reference
	InvoiceID   string
	Description string
	Status      string
	IssuedBy    string
	CreatedAt   string
	SettledAt   string
}
