package service

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/andy/smartbill/internal/domain"
	"github.com/andy/smartbill/internal/repository"
)

// SortKey selects the bill attribute to sort by
type SortKey string

const (
	SortByDate   SortKey = "date"
	SortByAmount SortKey = "amount"
	SortByItems  SortKey = "items"
)

// SortOrder is the sort direction. Descending is the default for every key.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// DateRange buckets bills by age relative to a fixed "now" snapshot
type DateRange string

const (
	RangeAll   DateRange = "all"
	RangeToday DateRange = "today"
	RangeWeek  DateRange = "week"
	RangeMonth DateRange = "month"
)

// HistoryFilter is one filter/sort request over the bill collection
type HistoryFilter struct {
	SearchTerm string
	DateRange  DateRange
	SortBy     SortKey
	Order      SortOrder
}

// DefaultHistoryFilter matches everything, newest first
func DefaultHistoryFilter() HistoryFilter {
	return HistoryFilter{
		DateRange: RangeAll,
		SortBy:    SortByDate,
		Order:     SortDesc,
	}
}

// Toggle updates the filter for a sort request on the given key: sorting
// by the already-active key flips the direction, a new key resets to
// descending.
func (f *HistoryFilter) Toggle(key SortKey) {
	if f.SortBy == key {
		if f.Order == SortAsc {
			f.Order = SortDesc
		} else {
			f.Order = SortAsc
		}
		return
	}
	f.SortBy = key
	f.Order = SortDesc
}

// HistoryService produces filtered, sorted views of the bill collection
type HistoryService interface {
	// List loads the full collection and applies the filter
	List(ctx context.Context, filter HistoryFilter) ([]domain.Bill, error)
}

type historyService struct {
	billRepo repository.BillRepository
}

// NewHistoryService creates a new history service
func NewHistoryService(billRepo repository.BillRepository) HistoryService {
	return &historyService{billRepo: billRepo}
}

func (s *historyService) List(ctx context.Context, filter HistoryFilter) ([]domain.Bill, error) {
	bills, err := s.billRepo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return FilterBills(bills, filter, time.Now()), nil
}

// FilterBills applies the date bucket, the search term and the sort to a
// copy of the collection. The input is never mutated, and the same filter
// applied twice yields the same order: ties keep their insertion order
// (stable sort). The "now" snapshot is taken once per invocation, not
// re-evaluated per bill.
func FilterBills(bills []domain.Bill, filter HistoryFilter, now time.Time) []domain.Bill {
	out := make([]domain.Bill, 0, len(bills))

	var cutoff time.Time
	switch filter.DateRange {
	case RangeWeek:
		cutoff = now.AddDate(0, 0, -7)
	case RangeMonth:
		cutoff = now.AddDate(0, -1, 0)
	}

	term := strings.ToLower(filter.SearchTerm)

	for _, bill := range bills {
		switch filter.DateRange {
		case RangeToday:
			if !sameDay(bill.Date, now) {
				continue
			}
		case RangeWeek, RangeMonth:
			if bill.Date.Before(cutoff) {
				continue
			}
		}

		if term != "" && !matchesSearch(bill, term) {
			continue
		}

		out = append(out, bill)
	}

	sortBills(out, filter.SortBy, filter.Order)
	return out
}

// matchesSearch reports whether any item name, the bill number's decimal
// string, or the customer name contains the lowercased term.
func matchesSearch(bill domain.Bill, term string) bool {
	for _, item := range bill.Items {
		if strings.Contains(strings.ToLower(item.ItemName), term) {
			return true
		}
	}
	if strings.Contains(strconv.Itoa(bill.BillNumber), term) {
		return true
	}
	if bill.CustomerName != "" && strings.Contains(strings.ToLower(bill.CustomerName), term) {
		return true
	}
	return false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func sortBills(bills []domain.Bill, key SortKey, order SortOrder) {
	slices.SortStableFunc(bills, func(a, b domain.Bill) int {
		c := compareDesc(a, b, key)
		if order == SortAsc {
			c = -c
		}
		return c
	})
}

// compareDesc orders a before b (negative result) when a ranks higher in
// the key's natural descending order.
func compareDesc(a, b domain.Bill, key SortKey) int {
	switch key {
	case SortByAmount:
		switch {
		case a.TotalAmount > b.TotalAmount:
			return -1
		case a.TotalAmount < b.TotalAmount:
			return 1
		}
	case SortByItems:
		switch {
		case len(a.Items) > len(b.Items):
			return -1
		case len(a.Items) < len(b.Items):
			return 1
		}
	default: // SortByDate
		switch {
		case a.Date.After(b.Date):
			return -1
		case a.Date.Before(b.Date):
			return 1
		}
	}
	return 0
}
