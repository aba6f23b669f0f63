package pdf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/andy/smartbill/internal/domain"
)

// pageWidth is the A4 portrait width in millimeters
const pageWidth = 210

// Options control the cosmetic parts of the rendered document. The
// renderer trusts the caller's numbers and validates nothing.
type Options struct {
	// HeaderTitle is drawn in the banner. Empty means "Smart Bill".
	HeaderTitle string

	// InvoicePrefix is prepended to the bill number in the metadata line
	InvoicePrefix string
}

// Renderer lays out bills as PDF documents: banner, metadata, banded item
// rows and a total footer.
type Renderer struct {
	OutputDir string
}

// New creates a renderer writing into outputDir
func New(outputDir string) *Renderer {
	return &Renderer{OutputDir: outputDir}
}

// Render draws the bill into a new document
func (r *Renderer) Render(bill *domain.Bill, opts Options) *gofpdf.Fpdf {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	// Banner
	title := opts.HeaderTitle
	if title == "" {
		title = "Smart Bill"
	}
	doc.SetFillColor(52, 144, 220)
	doc.Rect(0, 0, pageWidth, 40, "F")
	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Arial", "B", 28)
	doc.Text((pageWidth-doc.GetStringWidth(title))/2, 25, title)

	// Bill metadata
	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Arial", "", 12)
	doc.Text(20, 50, fmt.Sprintf("Invoice #: %s%d", opts.InvoicePrefix, bill.BillNumber))
	doc.Text(20, 60, "Date: "+bill.Date.Format("01/02/2006"))
	if bill.CustomerName != "" {
		doc.Text(20, 70, "Customer: "+bill.CustomerName)
	}

	doc.SetDrawColor(52, 144, 220)
	doc.SetLineWidth(0.5)
	doc.Line(20, 74, 190, 74)

	// Table header
	doc.SetFillColor(240, 240, 240)
	doc.Rect(20, 80, 170, 10, "F")
	doc.SetFont("Arial", "B", 12)
	doc.Text(25, 87, "Item")
	doc.Text(85, 87, "Qty")
	doc.Text(125, 87, "Price")
	doc.Text(165, 87, "Total")
	doc.SetFont("Arial", "", 12)

	// Item rows with alternating banding (cosmetic only)
	y := 100.0
	for i, item := range bill.Items {
		if i%2 == 0 {
			doc.SetFillColor(252, 252, 252)
			doc.Rect(20, y-5, 170, 10, "F")
		}
		doc.Text(25, y, item.ItemName)
		doc.Text(85, y, fmt.Sprintf("%d", item.Quantity))
		doc.Text(125, y, fmt.Sprintf("$%.2f", item.Price))
		doc.Text(165, y, fmt.Sprintf("$%.2f", item.Total))
		y += 10
	}

	// Total footer
	doc.Line(20, y+10, 190, y+10)
	doc.SetFont("Arial", "B", 14)
	doc.Text(130, y+25, "Total Amount:")
	doc.Text(165, y+25, fmt.Sprintf("$%.2f", bill.TotalAmount))

	doc.SetFont("Arial", "", 10)
	doc.SetTextColor(128, 128, 128)
	thanks := "Thank you for your business!"
	doc.Text((pageWidth-doc.GetStringWidth(thanks))/2, y+40, thanks)

	return doc
}

// Bytes renders the bill and returns the document bytes
func (r *Renderer) Bytes(bill *domain.Bill, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(bill, opts).Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Save renders the bill into the output directory as bill-<number>.pdf
// and returns the file path.
func (r *Renderer) Save(bill *domain.Bill, opts Options) (string, error) {
	path := filepath.Join(r.OutputDir, fmt.Sprintf("bill-%d.pdf", bill.BillNumber))
	return path, r.save(bill, opts, path)
}

// SaveCopy renders a past bill as bill-<number>-<date>-<time>.pdf. Rapid
// regenerations within the same second reuse the same name; the later
// write wins, matching the download behavior this mirrors.
func (r *Renderer) SaveCopy(bill *domain.Bill, now time.Time, opts Options) (string, error) {
	path := filepath.Join(r.OutputDir, fmt.Sprintf("bill-%d-%s-%s.pdf",
		bill.BillNumber, now.Format("2006-01-02"), now.Format("15-04-05")))
	return path, r.save(bill, opts, path)
}

func (r *Renderer) save(bill *domain.Bill, opts Options, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := r.Render(bill, opts).OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}
