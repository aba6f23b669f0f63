package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/andy/smartbill/internal/domain"
	"github.com/andy/smartbill/internal/pdf"
)

// mock implementations
type mockBillRepo struct {
	bills    []domain.Bill
	appended []*domain.Bill
	loadErr  error
}

func (m *mockBillRepo) LoadAll(ctx context.Context) ([]domain.Bill, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make([]domain.Bill, len(m.bills))
	copy(out, m.bills)
	return out, nil
}

func (m *mockBillRepo) SaveAll(ctx context.Context, bills []domain.Bill) error {
	m.bills = bills
	return nil
}

func (m *mockBillRepo) Append(ctx context.Context, bill *domain.Bill) error {
	m.bills = append(m.bills, *bill)
	m.appended = append(m.appended, bill)
	return nil
}

func (m *mockBillRepo) Delete(ctx context.Context, id int64) (bool, error) {
	for i, b := range m.bills {
		if b.ID == id {
			m.bills = append(m.bills[:i], m.bills[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *mockBillRepo) Clear(ctx context.Context) error {
	m.bills = nil
	return nil
}

type mockSettingsRepo struct {
	settings *domain.Settings
	saved    []domain.Settings
}

func (m *mockSettingsRepo) Load(ctx context.Context) (*domain.Settings, error) {
	if m.settings == nil {
		return domain.DefaultSettings(), nil
	}
	copied := *m.settings
	return &copied, nil
}

func (m *mockSettingsRepo) Save(ctx context.Context, settings *domain.Settings) error {
	m.saved = append(m.saved, *settings)
	copied := *settings
	m.settings = &copied
	return nil
}

func newTestBillingService(t *testing.T, billRepo *mockBillRepo) *billingService {
	t.Helper()
	return &billingService{
		billRepo:     billRepo,
		settingsRepo: &mockSettingsRepo{},
		renderer:     pdf.New(t.TempDir()),
	}
}

func TestGenerate_Success(t *testing.T) {
	ctx := context.Background()
	repo := &mockBillRepo{}
	svc := newTestBillingService(t, repo)

	draft := domain.NewDraft()
	draft.AddItem("Widget", 3, 7.50)
	draft.AddItem("Gadget", 1, 10)

	bill, path, err := svc.Generate(ctx, draft, "ACME")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bill.TotalAmount != 32.50 {
		t.Fatalf("expected total 32.50, got %v", bill.TotalAmount)
	}
	if bill.BillNumber < 100000 || bill.BillNumber > 999999 {
		t.Fatalf("expected 6-digit bill number, got %d", bill.BillNumber)
	}
	if bill.CustomerName != "ACME" {
		t.Fatalf("expected customer ACME, got %q", bill.CustomerName)
	}

	if len(repo.bills) != 1 {
		t.Fatalf("expected bill persisted, got %d", len(repo.bills))
	}
	if !draft.IsEmpty() {
		t.Fatalf("expected draft cleared after generation")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected PDF file at %s: %v", path, err)
	}
	if len(data) < 4 || string(data[:4]) != "%PDF" {
		t.Fatalf("expected PDF content, got %q", data[:min(len(data), 8)])
	}
}

func TestGenerate_EmptyDraft(t *testing.T) {
	svc := newTestBillingService(t, &mockBillRepo{})

	_, _, err := svc.Generate(context.Background(), domain.NewDraft(), "")
	if !errors.Is(err, ErrEmptyDraft) {
		t.Fatalf("expected ErrEmptyDraft, got %v", err)
	}
}

func TestGenerate_PDFFailureKeepsBill(t *testing.T) {
	ctx := context.Background()
	repo := &mockBillRepo{}

	// A regular file in place of the output directory makes the write fail
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	svc := &billingService{
		billRepo:     repo,
		settingsRepo: &mockSettingsRepo{},
		renderer:     pdf.New(blocker),
	}

	draft := domain.NewDraft()
	draft.AddItem("Widget", 1, 10)

	bill, _, err := svc.Generate(ctx, draft, "")
	if err == nil {
		t.Fatalf("expected PDF error")
	}

	var pdfErr *PDFError
	if !errors.As(err, &pdfErr) {
		t.Fatalf("expected *PDFError, got %T: %v", err, err)
	}
	if bill == nil || pdfErr.Bill != bill {
		t.Fatalf("expected the recorded bill alongside the error")
	}
	if len(repo.bills) != 1 {
		t.Fatalf("expected bill to stay recorded, got %d", len(repo.bills))
	}
	if !draft.IsEmpty() {
		t.Fatalf("expected draft cleared once the bill is recorded")
	}
}

func TestPrint_DoesNotPersist(t *testing.T) {
	ctx := context.Background()
	repo := &mockBillRepo{}
	svc := newTestBillingService(t, repo)

	draft := domain.NewDraft()
	draft.AddItem("Widget", 2, 5)

	path, err := svc.Print(ctx, draft, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected PDF at %s: %v", path, err)
	}

	if len(repo.bills) != 0 {
		t.Fatalf("expected nothing persisted, got %d bills", len(repo.bills))
	}
	if draft.IsEmpty() {
		t.Fatalf("expected draft intact after printing")
	}
}

func TestPrint_EmptyDraft(t *testing.T) {
	svc := newTestBillingService(t, &mockBillRepo{})

	_, err := svc.Print(context.Background(), domain.NewDraft(), "")
	if !errors.Is(err, ErrEmptyDraft) {
		t.Fatalf("expected ErrEmptyDraft, got %v", err)
	}
}

func TestFindBill(t *testing.T) {
	ctx := context.Background()
	repo := &mockBillRepo{bills: []domain.Bill{
		{ID: 1717000000000, BillNumber: 123456, Date: time.Now(), Items: []domain.LineItem{{Total: 10}}},
		{ID: 1717000000001, BillNumber: 654321, Date: time.Now(), Items: []domain.LineItem{{Total: 20}}},
	}}
	svc := newTestBillingService(t, repo)

	byNumber, err := svc.FindBill(ctx, "654321")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if byNumber.ID != 1717000000001 {
		t.Fatalf("expected lookup by display number, got %+v", byNumber)
	}

	byID, err := svc.FindBill(ctx, "1717000000000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if byID.BillNumber != 123456 {
		t.Fatalf("expected lookup by ID, got %+v", byID)
	}

	if _, err := svc.FindBill(ctx, "999999"); !errors.Is(err, ErrBillNotFound) {
		t.Fatalf("expected ErrBillNotFound, got %v", err)
	}
	if _, err := svc.FindBill(ctx, "not-a-number"); err == nil {
		t.Fatalf("expected error for malformed reference")
	}
}

func TestDeleteBill_ConfirmDeclined(t *testing.T) {
	ctx := context.Background()
	repo := &mockBillRepo{bills: []domain.Bill{
		{ID: 1, BillNumber: 123456, Date: time.Now()},
	}}
	svc := newTestBillingService(t, repo)

	removed, err := svc.DeleteBill(ctx, 1, func(bill domain.Bill) bool { return false })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed {
		t.Fatalf("expected declined deletion to remove nothing")
	}
	if len(repo.bills) != 1 {
		t.Fatalf("expected collection untouched, got %d bills", len(repo.bills))
	}
}

func TestDeleteBill_Confirmed(t *testing.T) {
	ctx := context.Background()
	repo := &mockBillRepo{bills: []domain.Bill{
		{ID: 1, BillNumber: 123456, Date: time.Now()},
		{ID: 2, BillNumber: 654321, Date: time.Now()},
	}}
	svc := newTestBillingService(t, repo)

	var asked *domain.Bill
	removed, err := svc.DeleteBill(ctx, 2, func(bill domain.Bill) bool {
		asked = &bill
		return true
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !removed {
		t.Fatalf("expected deletion to report removal")
	}
	if asked == nil || asked.BillNumber != 654321 {
		t.Fatalf("expected confirm callback to see the target bill")
	}
	if len(repo.bills) != 1 || repo.bills[0].ID != 1 {
		t.Fatalf("expected only bill 1 to remain, got %v", repo.bills)
	}
}

func TestDeleteBill_NotFound(t *testing.T) {
	svc := newTestBillingService(t, &mockBillRepo{})

	_, err := svc.DeleteBill(context.Background(), 42, nil)
	if !errors.Is(err, ErrBillNotFound) {
		t.Fatalf("expected ErrBillNotFound, got %v", err)
	}
}

func TestRegeneratePDF(t *testing.T) {
	ctx := context.Background()
	repo := &mockBillRepo{bills: []domain.Bill{
		{ID: 1, BillNumber: 123456, Date: time.Now(), Items: []domain.LineItem{{ItemName: "Widget", Quantity: 1, Price: 10, Total: 10}}, TotalAmount: 10},
	}}
	svc := newTestBillingService(t, repo)

	path, err := svc.RegeneratePDF(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected PDF at %s: %v", path, err)
	}

	if _, err := svc.RegeneratePDF(ctx, 42); !errors.Is(err, ErrBillNotFound) {
		t.Fatalf("expected ErrBillNotFound, got %v", err)
	}
}
