// Package ledger contains the pure business rules for the issued-reference ledger.
// Guards are pure functions that evaluate preconditions without side effects.
package ledger

import (
	"fmt"
	"strings"
)

// Status values for an issued reference.
const (
	StatusOpen    = "open"
	StatusSettled = "settled"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// IssueContext provides context for issuing a reference to an invoice.
type IssueContext struct {
	InvoiceID           string
	Reference           string
	InvoiceHasReference bool
	ReferenceIssued     bool
}

// SettleContext provides context for settling an issued reference.
type SettleContext struct {
	Reference     string
	Issued        bool
	CurrentStatus string
}

// CanIssue evaluates whether a reference can be issued for an invoice.
// Rules:
// - InvoiceID must not be empty
// - Invoice must not already carry a reference (1:1)
// - Reference must not already be issued to another invoice
func CanIssue(ctx IssueContext) GuardResult {
	if strings.TrimSpace(ctx.InvoiceID) == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "invoice ID cannot be empty",
		}
	}

	if ctx.InvoiceHasReference {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("invoice %s already has a reference", ctx.InvoiceID),
		}
	}

	if ctx.ReferenceIssued {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("reference %s is already issued", ctx.Reference),
		}
	}

	return GuardResult{Allowed: true}
}

// CanSettle evaluates whether an issued reference can be settled.
// Rules:
// - Reference must have been issued
// - Reference must be open
func CanSettle(ctx SettleContext) GuardResult {
	if !ctx.Issued {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("reference %s was not issued", ctx.Reference),
		}
	}

	if ctx.CurrentStatus != StatusOpen {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("can only settle open references (current status: %s)", ctx.CurrentStatus),
		}
	}

	return GuardResult{Allowed: true}
}

// SequenceBody renders a ledger sequence number as a reference body.
// Nine digits keep the printed reference to three groups of four.
func SequenceBody(seq int) string {
	return fmt.Sprintf("%09d", seq)
}
