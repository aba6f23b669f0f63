package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/andy/smartbill/internal/db"
	"github.com/andy/smartbill/internal/domain"
)

// BillRepo stores the bill collection as one JSON array in the "bills"
// slot, mirroring the wire format of the records it holds.
type BillRepo struct {
	db *db.DB
}

// NewBillRepo creates a new BillRepo
func NewBillRepo(database *db.DB) *BillRepo {
	return &BillRepo{db: database}
}

// LoadAll reads and decodes the whole collection. A missing slot yields an
// empty collection; a slot that fails to decode is an error, not a silent
// reset, so a corrupt store never masquerades as an empty one.
func (r *BillRepo) LoadAll(ctx context.Context) ([]domain.Bill, error) {
	raw, ok, err := getSlot(ctx, r.db, billsSlot)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.Bill{}, nil
	}

	var bills []domain.Bill
	if err := json.Unmarshal([]byte(raw), &bills); err != nil {
		return nil, fmt.Errorf("bill collection is corrupt: %w", err)
	}
	return bills, nil
}

// SaveAll encodes and rewrites the whole collection
func (r *BillRepo) SaveAll(ctx context.Context, bills []domain.Bill) error {
	if bills == nil {
		bills = []domain.Bill{}
	}
	raw, err := json.Marshal(bills)
	if err != nil {
		return fmt.Errorf("failed to encode bill collection: %w", err)
	}
	return putSlot(ctx, r.db, billsSlot, string(raw))
}

// Append adds a bill to the end of the collection
func (r *BillRepo) Append(ctx context.Context, bill *domain.Bill) error {
	if err := bill.Validate(); err != nil {
		return fmt.Errorf("invalid bill: %w", err)
	}

	bills, err := r.LoadAll(ctx)
	if err != nil {
		return err
	}
	bills = append(bills, *bill)
	return r.SaveAll(ctx, bills)
}

// Delete removes the bill with the given ID and reports whether a bill
// was removed. An unknown ID leaves the collection untouched.
func (r *BillRepo) Delete(ctx context.Context, id int64) (bool, error) {
	bills, err := r.LoadAll(ctx)
	if err != nil {
		return false, err
	}

	kept := bills[:0]
	for _, b := range bills {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(bills) {
		return false, nil
	}

	if err := r.SaveAll(ctx, kept); err != nil {
		return false, err
	}
	return true, nil
}

// Clear drops the whole collection slot
func (r *BillRepo) Clear(ctx context.Context) error {
	return deleteSlot(ctx, r.db, billsSlot)
}
