package domain

import (
	"errors"
	"math/rand"
	"time"
)

// LineItem is one row of a bill: name, quantity, unit price and the
// computed row total. Items are immutable once added; a draft can only
// remove them.
type LineItem struct {
	ID       int64   `json:"id"`
	ItemName string  `json:"itemName"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Total    float64 `json:"total"`
}

// Bill is a finalized, persisted record of a completed transaction.
// Immutable after creation except for whole-record deletion.
type Bill struct {
	ID           int64      `json:"id"`
	BillNumber   int        `json:"billNumber"`
	Date         time.Time  `json:"date"`
	Items        []LineItem `json:"items"`
	TotalAmount  float64    `json:"totalAmount"`
	CustomerName string     `json:"customerName"`
}

// NewBill snapshots the given items into a finalized bill. The bill number
// is a display-facing random 6-digit number, distinct from the internal ID;
// collisions are possible and accepted for a local single-user tool.
func NewBill(items []LineItem, customerName string) *Bill {
	snapshot := make([]LineItem, len(items))
	copy(snapshot, items)

	return &Bill{
		ID:           time.Now().UnixMilli(),
		BillNumber:   100000 + rand.Intn(900000),
		Date:         time.Now(),
		Items:        snapshot,
		TotalAmount:  SumItems(snapshot),
		CustomerName: customerName,
	}
}

// SumItems returns the arithmetic sum of the line totals. Empty input
// sums to zero.
func SumItems(items []LineItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Total
	}
	return total
}

// Validate returns an error if the bill is invalid
func (b *Bill) Validate() error {
	if b.ID == 0 {
		return errors.New("bill ID is required")
	}
	if b.BillNumber < 100000 || b.BillNumber > 999999 {
		return errors.New("bill number must be a 6-digit number")
	}
	if b.Date.IsZero() {
		return errors.New("bill date is required")
	}
	if len(b.Items) == 0 {
		return errors.New("bill must have at least one item")
	}
	return nil
}
