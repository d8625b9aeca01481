package summary

import (
	"time"

	"github.com/metal-toolbox/fleetdash/internal/model"
)

const (
	// WarrantyExpiringWindow is how far ahead a warranty expiration counts as expiring soon.
	WarrantyExpiringWindow = 90 * 24 * time.Hour
	// RecentlyAddedWindow is how far back an item creation counts as recently added.
	RecentlyAddedWindow = 30 * 24 * time.Hour
)

// SummarizeLoaners counts the loaner pool by status, overdue loans are counted as of now.
func SummarizeLoaners(loaners []*model.Loaner, now time.Time) model.LoanerSummary {
	s := model.LoanerSummary{TotalLoaners: len(loaners)}

	for _, l := range loaners {
		switch l.Status {
		case model.LoanerAvailable:
			s.Available++
		case model.LoanerCheckedOut:
			s.CheckedOut++
		case model.LoanerMaintenance:
			s.InMaintenance++
		case model.LoanerRetired:
			s.Retired++
		}

		if l.Overdue(now) {
			s.OverdueCount++
		}
	}

	return s
}

// SummarizeInventory aggregates the inventory as of now.
//
// The total value sums the purchase prices of all items that have one, retired items included.
func SummarizeInventory(items []*model.InventoryItem, now time.Time) model.InventorySummary {
	s := model.InventorySummary{
		TotalItems: len(items),
		ByCategory: map[model.InventoryCategory]int{},
		ByStatus:   map[model.InventoryStatus]int{},
	}

	for _, c := range model.InventoryCategories() {
		s.ByCategory[c] = 0
	}

	for _, st := range model.InventoryStatuses() {
		s.ByStatus[st] = 0
	}

	for _, item := range items {
		s.ByCategory[item.Category]++
		s.ByStatus[item.Status]++

		if item.PurchasePrice != nil {
			s.TotalValue += *item.PurchasePrice
		}

		if exp := item.WarrantyExpiration; exp != nil && !exp.Before(now) && !exp.After(now.Add(WarrantyExpiringWindow)) {
			s.WarrantyExpiringSoon++
		}

		if !item.CreatedAt.IsZero() && !item.CreatedAt.After(now) && !item.CreatedAt.Before(now.Add(-RecentlyAddedWindow)) {
			s.RecentlyAdded++
		}
	}

	return s
}
