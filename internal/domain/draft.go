package domain

import "time"

// Draft holds the in-progress list of line items before a bill is
// generated. It lives only in memory; nothing is persisted until the
// draft is finalized.
type Draft struct {
	Items []LineItem

	// lastID is the highest item ID handed out so far. Item IDs are wall
	// clock milliseconds; rapid adds within the same millisecond bump past
	// the previous ID so removal by ID stays unambiguous.
	lastID int64
}

// NewDraft creates an empty draft
func NewDraft() *Draft {
	return &Draft{Items: make([]LineItem, 0)}
}

// AddItem validates and appends a line item. An empty name or a zero (or
// negative) quantity or price is treated as missing input and rejected
// silently: the draft is left unchanged and false is returned.
func (d *Draft) AddItem(name string, quantity int, price float64) bool {
	if name == "" || quantity <= 0 || price <= 0 {
		return false
	}

	id := time.Now().UnixMilli()
	if id <= d.lastID {
		id = d.lastID + 1
	}
	d.lastID = id

	d.Items = append(d.Items, LineItem{
		ID:       id,
		ItemName: name,
		Quantity: quantity,
		Price:    price,
		Total:    float64(quantity) * price,
	})
	return true
}

// RemoveItem removes the item with the given ID. Unknown IDs are a no-op.
func (d *Draft) RemoveItem(id int64) {
	for i, item := range d.Items {
		if item.ID == id {
			d.Items = append(d.Items[:i], d.Items[i+1:]...)
			return
		}
	}
}

// Total sums the line totals of the draft. An empty draft totals zero.
func (d *Draft) Total() float64 {
	return SumItems(d.Items)
}

// Clear discards all draft items
func (d *Draft) Clear() {
	d.Items = d.Items[:0]
}

// IsEmpty reports whether the draft has no items
func (d *Draft) IsEmpty() bool {
	return len(d.Items) == 0
}
