package domain

import "testing"

func TestDraftAddItem_ComputesRowTotal(t *testing.T) {
	d := NewDraft()

	if !d.AddItem("Widget", 3, 7.50) {
		t.Fatalf("expected valid item to be accepted")
	}

	if len(d.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(d.Items))
	}
	item := d.Items[0]
	if item.Total != 22.50 {
		t.Fatalf("expected row total 22.50, got %v", item.Total)
	}
	if item.ID == 0 {
		t.Fatalf("expected item to receive an ID")
	}
	if d.Total() != 22.50 {
		t.Fatalf("expected draft total 22.50, got %v", d.Total())
	}
}

func TestDraftAddItem_RejectsIncompleteInput(t *testing.T) {
	cases := []struct {
		name     string
		itemName string
		quantity int
		price    float64
	}{
		{"empty name", "", 1, 5},
		{"zero quantity", "Widget", 0, 5},
		{"negative quantity", "Widget", -2, 5},
		{"zero price", "Widget", 1, 0},
		{"negative price", "Widget", 1, -0.01},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := NewDraft()
			if d.AddItem(tc.itemName, tc.quantity, tc.price) {
				t.Fatalf("expected item to be rejected")
			}
			if len(d.Items) != 0 {
				t.Fatalf("expected draft unchanged, got %d items", len(d.Items))
			}
		})
	}
}

func TestDraftAddItem_UniqueIDs(t *testing.T) {
	d := NewDraft()

	// Rapid adds land in the same millisecond; IDs must still be distinct
	// so removal by ID targets exactly one item.
	for i := 0; i < 5; i++ {
		if !d.AddItem("Widget", 1, 1) {
			t.Fatalf("expected item %d to be accepted", i)
		}
	}

	seen := make(map[int64]bool)
	for _, item := range d.Items {
		if seen[item.ID] {
			t.Fatalf("duplicate item ID %d", item.ID)
		}
		seen[item.ID] = true
	}

	d.RemoveItem(d.Items[2].ID)
	if len(d.Items) != 4 {
		t.Fatalf("expected exactly one item removed, got %d left", len(d.Items))
	}
}

func TestDraftRemoveItem(t *testing.T) {
	d := &Draft{Items: []LineItem{
		{ID: 1, ItemName: "Widget", Quantity: 1, Price: 10, Total: 10},
		{ID: 2, ItemName: "Gadget", Quantity: 2, Price: 5, Total: 10},
		{ID: 3, ItemName: "Gizmo", Quantity: 1, Price: 2.50, Total: 2.50},
	}}

	d.RemoveItem(2)

	if len(d.Items) != 2 {
		t.Fatalf("expected 2 items after removal, got %d", len(d.Items))
	}
	if d.Items[0].ItemName != "Widget" || d.Items[1].ItemName != "Gizmo" {
		t.Fatalf("expected remaining order Widget, Gizmo; got %v", d.Items)
	}
	if d.Total() != 12.50 {
		t.Fatalf("expected total 12.50 after removal, got %v", d.Total())
	}

	// Unknown ID is a no-op
	d.RemoveItem(999)
	if len(d.Items) != 2 {
		t.Fatalf("expected unknown ID removal to be a no-op")
	}
}

func TestDraftClear(t *testing.T) {
	d := NewDraft()
	d.AddItem("Widget", 2, 3)

	d.Clear()

	if !d.IsEmpty() {
		t.Fatalf("expected draft to be empty after Clear")
	}
	if d.Total() != 0 {
		t.Fatalf("expected empty draft total 0, got %v", d.Total())
	}
}
