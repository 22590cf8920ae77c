// Package app contains the application services that orchestrate business logic.
package app

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/example/rfref/internal/core/creditorref"
	"github.com/example/rfref/internal/core/ledger"
	"github.com/example/rfref/internal/ctxutil"
	"github.com/example/rfref/internal/ports/primary"
	"github.com/example/rfref/internal/ports/secondary"
)

// ReferenceServiceImpl implements the ReferenceService interface.
type ReferenceServiceImpl struct {
	refRepo secondary.ReferenceRepository
	parser  creditorref.Parser
	workers int
}

// NewReferenceService creates a new ReferenceService with injected dependencies.
// refRepo may be nil when only Generate/Validate are needed.
func NewReferenceService(refRepo secondary.ReferenceRepository, parser creditorref.Parser) *ReferenceServiceImpl {
	return &ReferenceServiceImpl{
		refRepo: refRepo,
		parser:  parser,
		workers: runtime.GOMAXPROCS(0),
	}
}

// Generate builds the creditor reference for a raw body.
func (s *ReferenceServiceImpl) Generate(ctx context.Context, req primary.GenerateRequest) (*primary.Reference, error) {
	newRef := s.parser.New
	if req.Template {
		newRef = s.parser.NewFromTemplate
	}
	ref, err := newRef(req.Body)
	if err != nil {
		return nil, fmt.Errorf("cannot generate reference for %q: %w", req.Body, err)
	}
	return toReference(ref), nil
}

// Validate checks a single reference.
func (s *ReferenceServiceImpl) Validate(ctx context.Context, reference string) (*primary.Verdict, error) {
	verdict := s.verdict(reference)
	if verdict.Err != nil {
		return nil, verdict.Err
	}
	return verdict, nil
}

// ValidateBatch checks references concurrently, keeping input order.
func (s *ReferenceServiceImpl) ValidateBatch(ctx context.Context, references []string) ([]*primary.Verdict, error) {
	verdicts := make([]*primary.Verdict, len(references))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, reference := range references {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			verdicts[i] = s.verdict(reference)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return verdicts, nil
}

func (s *ReferenceServiceImpl) verdict(input string) *primary.Verdict {
	ref, err := s.parser.Parse(input)
	if err != nil {
		return &primary.Verdict{Input: input, Err: err}
	}
	return &primary.Verdict{
		Input:     input,
		Valid:     ref.Valid(),
		Reference: toReference(ref),
	}
}

// Issue records a reference against an invoice.
func (s *ReferenceServiceImpl) Issue(ctx context.Context, req primary.IssueRequest) (*primary.IssueResponse, error) {
	seq, err := s.refRepo.GetNextSequence(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate ledger sequence: %w", err)
	}

	var ref creditorref.Reference
	var byReference *secondary.IssuedReferenceRecord
	if req.Body == "" {
		ref, err = s.nextSequenceReference(ctx, seq)
		if err != nil {
			return nil, err
		}
	} else {
		ref, err = s.parser.New(req.Body)
		if err != nil {
			return nil, fmt.Errorf("cannot generate reference for %q: %w", req.Body, err)
		}
		byReference, err = s.refRepo.GetByReference(ctx, ref.String())
		if err != nil {
			return nil, fmt.Errorf("failed to check reference: %w", err)
		}
	}

	byInvoice, err := s.refRepo.GetByInvoice(ctx, req.InvoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to check invoice: %w", err)
	}

	result := ledger.CanIssue(ledger.IssueContext{
		InvoiceID:           req.InvoiceID,
		Reference:           ref.String(),
		InvoiceHasReference: byInvoice != nil,
		ReferenceIssued:     byReference != nil,
	})
	if !result.Allowed {
		return nil, result.Error()
	}

	id := fmt.Sprintf("REF-%03d", seq)
	record := &secondary.IssuedReferenceRecord{
		ID:          id,
		Reference:   ref.String(),
		Body:        string(ref.Body),
		InvoiceID:   req.InvoiceID,
		Description: req.Description,
		Status:      ledger.StatusOpen,
		IssuedBy:    ctxutil.ActorFromContext(ctx),
	}
	if err := s.refRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to issue reference: %w", err)
	}

	created, err := s.refRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch issued reference: %w", err)
	}

	return &primary.IssueResponse{
		ID:     created.ID,
		Issued: s.recordToIssued(created),
	}, nil
}

// nextSequenceReference returns the first sequence reference from seq on that
// is not already in the ledger. Explicit bodies may have taken a sequence
// value before the sequence reached it.
func (s *ReferenceServiceImpl) nextSequenceReference(ctx context.Context, seq int) (creditorref.Reference, error) {
	for n := seq; ; n++ {
		ref, err := s.parser.New(ledger.SequenceBody(n))
		if err != nil {
			return creditorref.Reference{}, fmt.Errorf("cannot generate sequence reference %d: %w", n, err)
		}
		existing, err := s.refRepo.GetByReference(ctx, ref.String())
		if err != nil {
			return creditorref.Reference{}, fmt.Errorf("failed to check reference: %w", err)
		}
		if existing == nil {
			return ref, nil
		}
	}
}

// Match validates a remittance reference and looks up its invoice.
func (s *ReferenceServiceImpl) Match(ctx context.Context, reference string) (*primary.MatchResult, error) {
	verdict, err := s.Validate(ctx, reference)
	if err != nil {
		return nil, err
	}
	if !verdict.Valid {
		return &primary.MatchResult{Verdict: verdict}, nil
	}

	record, err := s.refRepo.GetByReference(ctx, verdict.Reference.Electronic)
	if err != nil {
		return nil, fmt.Errorf("failed to look up reference: %w", err)
	}

	result := &primary.MatchResult{Verdict: verdict}
	if record != nil {
		result.Issued = s.recordToIssued(record)
	}
	return result, nil
}

// Settle marks an open issued reference as paid.
func (s *ReferenceServiceImpl) Settle(ctx context.Context, reference string) (*primary.IssuedReference, error) {
	ref, err := s.parser.Check(reference)
	if err != nil {
		return nil, err
	}

	record, err := s.refRepo.GetByReference(ctx, ref.String())
	if err != nil {
		return nil, fmt.Errorf("failed to look up reference: %w", err)
	}

	guardCtx := ledger.SettleContext{
		Reference: ref.String(),
		Issued:    record != nil,
	}
	if record != nil {
		guardCtx.CurrentStatus = record.Status
	}
	if result := ledger.CanSettle(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	if err := s.refRepo.MarkSettled(ctx, record.ID); err != nil {
		return nil, fmt.Errorf("failed to settle reference: %w", err)
	}

	updated, err := s.refRepo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch settled reference: %w", err)
	}
	return s.recordToIssued(updated), nil
}

// ListIssued lists issued references.
func (s *ReferenceServiceImpl) ListIssued(ctx context.Context, filters primary.IssuedFilters) ([]*primary.IssuedReference, error) {
	records, err := s.refRepo.List(ctx, secondary.ReferenceFilters{Status: filters.Status})
	if err != nil {
		return nil, fmt.Errorf("failed to list issued references: %w", err)
	}

	issued := make([]*primary.IssuedReference, len(records))
	for i, r := range records {
		issued[i] = s.recordToIssued(r)
	}
	return issued, nil
}

// recordToIssued converts a ledger record to the port type. Stored references
// were verified when issued, so a parse failure here means a corrupt row;
// the raw value is still shown.
func (s *ReferenceServiceImpl) recordToIssued(r *secondary.IssuedReferenceRecord) *primary.IssuedReference {
	ref := &primary.Reference{Electronic: r.Reference, Print: r.Reference, Body: r.Body}
	if parsed, err := creditorref.Parse(r.Reference); err == nil {
		ref = toReference(parsed)
	}
	return &primary.IssuedReference{
		ID:          r.ID,
		Reference:   ref,
		InvoiceID:   r.InvoiceID,
		Description: r.Description,
		Status:      r.Status,
		IssuedBy:    r.IssuedBy,
		CreatedAt:   r.CreatedAt,
		SettledAt:   r.SettledAt,
	}
}

func toReference(ref creditorref.Reference) *primary.Reference {
	return &primary.Reference{
		Electronic:  ref.String(),
		Print:       ref.Print(),
		CheckDigits: string(ref.Check),
		Body:        string(ref.Body),
	}
}

// Ensure ReferenceServiceImpl implements the interface.
var _ primary.ReferenceService = (*ReferenceServiceImpl)(nil)
