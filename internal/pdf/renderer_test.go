package pdf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/andy/smartbill/internal/domain"
)

func testBill() *domain.Bill {
	return &domain.Bill{
		ID:         1717000000000,
		BillNumber: 123456,
		Date:       time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC),
		Items: []domain.LineItem{
			{ID: 1, ItemName: "Widget", Quantity: 3, Price: 7.50, Total: 22.50},
			{ID: 2, ItemName: "Gadget", Quantity: 1, Price: 10, Total: 10},
		},
		TotalAmount:  32.50,
		CustomerName: "ACME Corp",
	}
}

func TestBytes_ProducesPDF(t *testing.T) {
	r := New(t.TempDir())

	data, err := r.Bytes(testBill(), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) < 4 || string(data[:4]) != "%PDF" {
		t.Fatalf("expected PDF magic bytes, got %q", data[:min(len(data), 8)])
	}
}

func TestSave_FileName(t *testing.T) {
	dir := t.TempDir()
	r := New(dir)

	path, err := r.Save(testBill(), Options{HeaderTitle: "ACME Corp", InvoicePrefix: "INV-"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(path) != "bill-123456.pdf" {
		t.Fatalf("expected bill-123456.pdf, got %s", filepath.Base(path))
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file at %s: %v", path, err)
	}
}

func TestSaveCopy_TimestampedName(t *testing.T) {
	dir := t.TempDir()
	r := New(dir)

	now := time.Date(2024, 6, 15, 14, 5, 9, 0, time.UTC)
	path, err := r.SaveCopy(testBill(), now, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(path) != "bill-123456-2024-06-15-14-05-09.pdf" {
		t.Fatalf("unexpected file name %s", filepath.Base(path))
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file at %s: %v", path, err)
	}
}

func TestSave_CreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "bills")
	r := New(dir)

	path, err := r.Save(testBill(), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file at %s: %v", path, err)
	}
}
