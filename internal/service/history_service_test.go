package service

import (
	"testing"
	"time"

	"github.com/andy/smartbill/internal/domain"
)

func historyFixture() ([]domain.Bill, time.Time) {
	now := time.Date(2024, 6, 15, 14, 0, 0, 0, time.UTC)
	bills := []domain.Bill{
		{
			ID: 1, BillNumber: 111111,
			Date:         now.Add(-2 * time.Hour), // today
			Items:        []domain.LineItem{{ItemName: "Widget", Total: 20}},
			TotalAmount:  20,
			CustomerName: "ACME",
		},
		{
			ID: 2, BillNumber: 222222,
			Date:        now.AddDate(0, 0, -3), // this week
			Items:       []domain.LineItem{{ItemName: "Gadget", Total: 50}, {ItemName: "Gizmo", Total: 25}},
			TotalAmount: 75,
		},
		{
			ID: 3, BillNumber: 333333,
			Date:         now.AddDate(0, 0, -20), // this month only
			Items:        []domain.LineItem{{ItemName: "Sprocket", Total: 75}},
			TotalAmount:  75,
			CustomerName: "Widgets Inc",
		},
		{
			ID: 4, BillNumber: 444444,
			Date:        now.AddDate(0, -2, 0), // older than a month
			Items:       []domain.LineItem{{ItemName: "Cog", Total: 5}},
			TotalAmount: 5,
		},
	}
	return bills, now
}

func billIDs(bills []domain.Bill) []int64 {
	ids := make([]int64, len(bills))
	for i, b := range bills {
		ids[i] = b.ID
	}
	return ids
}

func assertOrder(t *testing.T, got []domain.Bill, want ...int64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d bills, got %d (%v)", len(want), len(got), billIDs(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("expected order %v, got %v", want, billIDs(got))
		}
	}
}

func TestFilterBills_DateRanges(t *testing.T) {
	bills, now := historyFixture()

	all := FilterBills(bills, HistoryFilter{DateRange: RangeAll, SortBy: SortByDate, Order: SortDesc}, now)
	assertOrder(t, all, 1, 2, 3, 4)

	today := FilterBills(bills, HistoryFilter{DateRange: RangeToday, SortBy: SortByDate, Order: SortDesc}, now)
	assertOrder(t, today, 1)

	week := FilterBills(bills, HistoryFilter{DateRange: RangeWeek, SortBy: SortByDate, Order: SortDesc}, now)
	assertOrder(t, week, 1, 2)

	month := FilterBills(bills, HistoryFilter{DateRange: RangeMonth, SortBy: SortByDate, Order: SortDesc}, now)
	assertOrder(t, month, 1, 2, 3)
}

func TestFilterBills_Search(t *testing.T) {
	bills, now := historyFixture()

	// Case-insensitive item name match plus customer name match
	got := FilterBills(bills, HistoryFilter{SearchTerm: "WiD", DateRange: RangeAll, SortBy: SortByDate, Order: SortDesc}, now)
	assertOrder(t, got, 1, 3)

	// Bill number substring match
	got = FilterBills(bills, HistoryFilter{SearchTerm: "2222", DateRange: RangeAll, SortBy: SortByDate, Order: SortDesc}, now)
	assertOrder(t, got, 2)

	// Customer name match
	got = FilterBills(bills, HistoryFilter{SearchTerm: "acme", DateRange: RangeAll, SortBy: SortByDate, Order: SortDesc}, now)
	assertOrder(t, got, 1)

	// No match
	got = FilterBills(bills, HistoryFilter{SearchTerm: "nothing", DateRange: RangeAll, SortBy: SortByDate, Order: SortDesc}, now)
	if len(got) != 0 {
		t.Fatalf("expected no matches, got %v", billIDs(got))
	}
}

func TestFilterBills_Sort(t *testing.T) {
	bills, now := historyFixture()

	byAmountDesc := FilterBills(bills, HistoryFilter{DateRange: RangeAll, SortBy: SortByAmount, Order: SortDesc}, now)
	// Bills 2 and 3 tie at 75; insertion order breaks the tie
	assertOrder(t, byAmountDesc, 2, 3, 1, 4)

	byAmountAsc := FilterBills(bills, HistoryFilter{DateRange: RangeAll, SortBy: SortByAmount, Order: SortAsc}, now)
	// Stable ascending keeps the tie in insertion order too
	assertOrder(t, byAmountAsc, 4, 1, 2, 3)

	byItemsDesc := FilterBills(bills, HistoryFilter{DateRange: RangeAll, SortBy: SortByItems, Order: SortDesc}, now)
	assertOrder(t, byItemsDesc, 2, 1, 3, 4)

	byDateAsc := FilterBills(bills, HistoryFilter{DateRange: RangeAll, SortBy: SortByDate, Order: SortAsc}, now)
	assertOrder(t, byDateAsc, 4, 3, 2, 1)
}

func TestFilterBills_Idempotent(t *testing.T) {
	bills, now := historyFixture()
	filter := HistoryFilter{DateRange: RangeAll, SortBy: SortByAmount, Order: SortDesc}

	first := FilterBills(bills, filter, now)
	second := FilterBills(first, filter, now)
	assertOrder(t, second, billIDs(first)...)
}

func TestFilterBills_DoesNotMutateInput(t *testing.T) {
	bills, now := historyFixture()

	FilterBills(bills, HistoryFilter{DateRange: RangeAll, SortBy: SortByAmount, Order: SortAsc}, now)

	assertOrder(t, bills, 1, 2, 3, 4)
}

func TestHistoryFilterToggle(t *testing.T) {
	f := DefaultHistoryFilter()
	if f.SortBy != SortByDate || f.Order != SortDesc {
		t.Fatalf("expected default sort date desc, got %s %s", f.SortBy, f.Order)
	}

	// Same key flips direction
	f.Toggle(SortByDate)
	if f.Order != SortAsc {
		t.Fatalf("expected asc after toggling active key, got %s", f.Order)
	}
	f.Toggle(SortByDate)
	if f.Order != SortDesc {
		t.Fatalf("expected desc after second toggle, got %s", f.Order)
	}

	// New key resets to descending
	f.Toggle(SortByDate)
	f.Toggle(SortByAmount)
	if f.SortBy != SortByAmount || f.Order != SortDesc {
		t.Fatalf("expected amount desc after switching key, got %s %s", f.SortBy, f.Order)
	}
}
