package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/andy/smartbill/internal/domain"
	"github.com/andy/smartbill/internal/pdf"
	"github.com/andy/smartbill/internal/repository"
)

var (
	// ErrEmptyDraft blocks finalizing or printing a draft with no items
	ErrEmptyDraft = errors.New("draft has no items: add some items first")

	// ErrBillNotFound reports a lookup that matched nothing
	ErrBillNotFound = errors.New("bill not found")
)

// PDFError wraps a PDF failure that happened after the bill was already
// persisted. The bill stays recorded; only the artifact is missing.
type PDFError struct {
	Bill *domain.Bill
	Err  error
}

func (e *PDFError) Error() string {
	return fmt.Sprintf("bill %d was recorded but the PDF could not be written: %v", e.Bill.BillNumber, e.Err)
}

func (e *PDFError) Unwrap() error { return e.Err }

// BillingService manages the bill lifecycle: finalizing drafts, rendering
// documents, and deleting past bills.
type BillingService interface {
	// Generate finalizes the draft: snapshots it into a new bill, appends
	// the bill to the persisted collection, writes the PDF, and clears the
	// draft. The two effects are not transactional: if the PDF write fails
	// after the collection write succeeded, the bill stays recorded and a
	// *PDFError is returned alongside it.
	Generate(ctx context.Context, draft *domain.Draft, customerName string) (*domain.Bill, string, error)

	// Print renders the current draft to a PDF without recording anything
	Print(ctx context.Context, draft *domain.Draft, customerName string) (string, error)

	// ListBills returns the full collection in insertion order
	ListBills(ctx context.Context) ([]domain.Bill, error)

	// FindBill resolves a bill by internal ID or 6-digit display number
	FindBill(ctx context.Context, ref string) (*domain.Bill, error)

	// DeleteBill removes a bill after the confirm callback approves it.
	// Declining is a no-op, not an error. Reports whether a bill was removed.
	DeleteBill(ctx context.Context, id int64, confirm func(bill domain.Bill) bool) (bool, error)

	// RegeneratePDF renders a past bill again, named with timestamp fragments
	RegeneratePDF(ctx context.Context, id int64) (string, error)
}

type billingService struct {
	billRepo     repository.BillRepository
	settingsRepo repository.SettingsRepository
	renderer     *pdf.Renderer
}

// NewBillingService creates a new billing service
func NewBillingService(
	billRepo repository.BillRepository,
	settingsRepo repository.SettingsRepository,
	renderer *pdf.Renderer,
) BillingService {
	return &billingService{
		billRepo:     billRepo,
		settingsRepo: settingsRepo,
		renderer:     renderer,
	}
}

// renderOptions derives the cosmetic PDF options from the current settings.
// Settings that fail to load fall back to the stock document.
func (s *billingService) renderOptions(ctx context.Context) pdf.Options {
	settings, err := s.settingsRepo.Load(ctx)
	if err != nil {
		return pdf.Options{}
	}
	return pdf.Options{
		HeaderTitle:   settings.CompanyName,
		InvoicePrefix: settings.InvoicePrefix,
	}
}

func (s *billingService) Generate(ctx context.Context, draft *domain.Draft, customerName string) (*domain.Bill, string, error) {
	if draft.IsEmpty() {
		return nil, "", ErrEmptyDraft
	}

	bill := domain.NewBill(draft.Items, customerName)
	if err := s.billRepo.Append(ctx, bill); err != nil {
		return nil, "", fmt.Errorf("failed to record bill: %w", err)
	}

	// The bill is recorded from here on, so the draft is spent even if the
	// PDF write fails below.
	draft.Clear()

	path, err := s.renderer.Save(bill, s.renderOptions(ctx))
	if err != nil {
		return bill, "", &PDFError{Bill: bill, Err: err}
	}

	return bill, path, nil
}

func (s *billingService) Print(ctx context.Context, draft *domain.Draft, customerName string) (string, error) {
	if draft.IsEmpty() {
		return "", ErrEmptyDraft
	}

	// Transient snapshot, never persisted
	bill := domain.NewBill(draft.Items, customerName)
	path, err := s.renderer.Save(bill, s.renderOptions(ctx))
	if err != nil {
		return "", err
	}
	return path, nil
}

func (s *billingService) ListBills(ctx context.Context) ([]domain.Bill, error) {
	return s.billRepo.LoadAll(ctx)
}

func (s *billingService) FindBill(ctx context.Context, ref string) (*domain.Bill, error) {
	n, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid bill reference %q: %w", ref, err)
	}

	bills, err := s.billRepo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	// 6-digit references are display numbers, anything else is an ID
	for i := range bills {
		if bills[i].ID == n || int64(bills[i].BillNumber) == n {
			return &bills[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrBillNotFound, ref)
}

func (s *billingService) DeleteBill(ctx context.Context, id int64, confirm func(bill domain.Bill) bool) (bool, error) {
	bills, err := s.billRepo.LoadAll(ctx)
	if err != nil {
		return false, err
	}

	var target *domain.Bill
	for i := range bills {
		if bills[i].ID == id {
			target = &bills[i]
			break
		}
	}
	if target == nil {
		return false, fmt.Errorf("%w: %d", ErrBillNotFound, id)
	}

	if confirm != nil && !confirm(*target) {
		return false, nil
	}

	return s.billRepo.Delete(ctx, id)
}

func (s *billingService) RegeneratePDF(ctx context.Context, id int64) (string, error) {
	bills, err := s.billRepo.LoadAll(ctx)
	if err != nil {
		return "", err
	}

	for i := range bills {
		if bills[i].ID == id {
			return s.renderer.SaveCopy(&bills[i], time.Now(), s.renderOptions(ctx))
		}
	}
	return "", fmt.Errorf("%w: %d", ErrBillNotFound, id)
}
