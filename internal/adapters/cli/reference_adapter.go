// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting but delegate
// reference rules to services.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/rfref/internal/core/creditorref"
	"github.com/example/rfref/internal/ports/primary"
)

// ErrInvalidReferences is returned when at least one input failed validation.
// The command layer maps it to exit status 1 without repeating the details.
var ErrInvalidReferences = errors.New("one or more references are invalid")

var (
	okColor   = color.New(color.FgGreen)
	failColor = color.New(color.FgRed)
	idColor   = color.New(color.FgHiMagenta)
)

func okMark() string   { return okColor.Sprint("✓") }
func failMark() string { return failColor.Sprint("✗") }

// ReferenceAdapter is a thin adapter that translates CLI operations to ReferenceService calls.
// It depends only on the ReferenceService interface, enabling easy testing with mocks.
type ReferenceAdapter struct {
	service primary.ReferenceService
	out     io.Writer
}

// NewReferenceAdapter creates a new ReferenceAdapter with the given service.
func NewReferenceAdapter(service primary.ReferenceService, out io.Writer) *ReferenceAdapter {
	return &ReferenceAdapter{
		service: service,
		out:     out,
	}
}

// Generate prints one reference per body, in electronic or print form.
// With template set, bodies such as "RF00ABC" get their check digits filled in.
func (a *ReferenceAdapter) Generate(ctx context.Context, bodies []string, printForm, template bool) error {
	failed := 0
	for _, body := range bodies {
		ref, err := a.service.Generate(ctx, primary.GenerateRequest{Body: body, Template: template})
		if err != nil {
			failed++
			fmt.Fprintf(a.out, "%s %s\n", failMark(), describe(err))
			continue
		}
		if printForm {
			fmt.Fprintln(a.out, ref.Print)
		} else {
			fmt.Fprintln(a.out, ref.Electronic)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d bodies rejected: %w", failed, len(bodies), ErrInvalidReferences)
	}
	return nil
}

// Validate checks every input and prints one verdict line each.
// Returns ErrInvalidReferences when any input is malformed or mismatched.
func (a *ReferenceAdapter) Validate(ctx context.Context, inputs []string, quiet bool) error {
	verdicts, err := a.service.ValidateBatch(ctx, inputs)
	if err != nil {
		return fmt.Errorf("failed to validate references: %w", err)
	}

	invalid := 0
	for _, v := range verdicts {
		switch {
		case v.Err != nil:
			invalid++
			if !quiet {
				fmt.Fprintf(a.out, "%s %q: %s\n", failMark(), v.Input, describe(v.Err))
			}
		case !v.Valid:
			invalid++
			if !quiet {
				fmt.Fprintf(a.out, "%s %s: check digits %s do not match\n", failMark(), v.Reference.Electronic, v.Reference.CheckDigits)
			}
		default:
			if !quiet {
				fmt.Fprintf(a.out, "%s %s\n", okMark(), v.Reference.Electronic)
			}
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d: %w", invalid, len(verdicts), ErrInvalidReferences)
	}
	return nil
}

// Format shows the electronic and print forms of a valid reference.
func (a *ReferenceAdapter) Format(ctx context.Context, input string) (*primary.Reference, error) {
	verdict, err := a.service.Validate(ctx, input)
	if err != nil {
		return nil, errors.New(describe(err))
	}
	if !verdict.Valid {
		return nil, fmt.Errorf("%s: check digits %s do not match: %w", verdict.Reference.Electronic, verdict.Reference.CheckDigits, ErrInvalidReferences)
	}

	ref := verdict.Reference
	fmt.Fprintf(a.out, "Electronic: %s\n", ref.Electronic)
	fmt.Fprintf(a.out, "Print:      %s\n", ref.Print)
	fmt.Fprintf(a.out, "Check:      %s\n", ref.CheckDigits)
	fmt.Fprintf(a.out, "Body:       %s\n", ref.Body)
	return ref, nil
}

// Issue records a reference for an invoice.
func (a *ReferenceAdapter) Issue(ctx context.Context, invoiceID, body, description string) (*primary.IssuedReference, error) {
	resp, err := a.service.Issue(ctx, primary.IssueRequest{
		InvoiceID:   invoiceID,
		Body:        body,
		Description: description,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to issue reference: %s", describe(err))
	}

	issued := resp.Issued
	fmt.Fprintf(a.out, "%s Issued %s for invoice %s (%s)\n", okMark(), issued.Reference.Electronic, issued.InvoiceID, idColor.Sprint(issued.ID))
	fmt.Fprintf(a.out, "  Print form: %s\n", issued.Reference.Print)
	return issued, nil
}

// Match looks up the invoice for a remittance reference.
func (a *ReferenceAdapter) Match(ctx context.Context, input string) (*primary.MatchResult, error) {
	result, err := a.service.Match(ctx, input)
	if err != nil {
		return nil, errors.New(describe(err))
	}

	ref := result.Verdict.Reference
	switch {
	case !result.Verdict.Valid:
		fmt.Fprintf(a.out, "%s %s: check digits %s do not match\n", failMark(), ref.Electronic, ref.CheckDigits)
		return result, ErrInvalidReferences
	case result.Issued == nil:
		fmt.Fprintf(a.out, "%s %s is valid but was not issued from this ledger\n", okMark(), ref.Electronic)
	default:
		issued := result.Issued
		fmt.Fprintf(a.out, "%s %s → invoice %s [%s]\n", okMark(), ref.Electronic, issued.InvoiceID, issued.Status)
		if issued.Description != "" {
			fmt.Fprintf(a.out, "  Description: %s\n", issued.Description)
		}
		fmt.Fprintf(a.out, "  Issued: %s (%s)\n", issued.CreatedAt, idColor.Sprint(issued.ID))
	}
	return result, nil
}

// Settle marks an issued reference as paid.
func (a *ReferenceAdapter) Settle(ctx context.Context, input string) (*primary.IssuedReference, error) {
	issued, err := a.service.Settle(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to settle reference: %s", describe(err))
	}

	fmt.Fprintf(a.out, "%s Settled %s (invoice %s)\n", okMark(), issued.Reference.Electronic, issued.InvoiceID)
	return issued, nil
}

// List lists issued references with an optional status filter.
func (a *ReferenceAdapter) List(ctx context.Context, status string) ([]*primary.IssuedReference, error) {
	issued, err := a.service.ListIssued(ctx, primary.IssuedFilters{Status: status})
	if err != nil {
		return nil, fmt.Errorf("failed to list issued references: %w", err)
	}

	if len(issued) == 0 {
		fmt.Fprintln(a.out, "No issued references found.")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Issue your first reference:")
		fmt.Fprintln(a.out, "  rfref issue INV-2026-001")
		return issued, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tREFERENCE\tINVOICE\tSTATUS\tISSUED")
	fmt.Fprintln(w, "--\t---------\t-------\t------\t------")

	for _, r := range issued {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.ID,
			r.Reference.Print,
			r.InvoiceID,
			r.Status,
			r.CreatedAt,
		)
	}

	w.Flush()
	return issued, nil
}

// describe renders a reference error for people: structured parse errors get
// their kind spelled out, everything else passes through.
func describe(err error) string {
	var e *creditorref.Error
	if !errors.As(err, &e) {
		return err.Error()
	}

	switch e.Kind {
	case creditorref.KindInvalidCharacter:
		return fmt.Sprintf("invalid character at position %d in %q (allowed: 0-9, A-Z)", e.Position, e.Input)
	case creditorref.KindInvalidLength:
		return fmt.Sprintf("invalid length %q (body must be 1-%d characters)", e.Input, creditorref.MaxBodyLength)
	case creditorref.KindMissingPrefix:
		return fmt.Sprintf("%q does not start with %s", e.Input, creditorref.Prefix)
	case creditorref.KindInvalidCheckDigits:
		return fmt.Sprintf("%q: characters 3-4 must be check digits", e.Input)
	case creditorref.KindChecksumMismatch:
		return fmt.Sprintf("%q: check digits do not match", e.Input)
	}
	return err.Error()
}
