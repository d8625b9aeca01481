package summary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/metal-toolbox/fleetdash/internal/fixtures"
	"github.com/metal-toolbox/fleetdash/internal/model"
)

func TestSummarizeLoaners(t *testing.T) {
	got := SummarizeLoaners(fixtures.NewLoaners(), fixtures.Now)

	assert.Equal(t, model.LoanerSummary{
		TotalLoaners:  5,
		Available:     1,
		CheckedOut:    2,
		InMaintenance: 1,
		Retired:       1,
		OverdueCount:  1,
	}, got)

	// a week later both loans are overdue
	got = SummarizeLoaners(fixtures.NewLoaners(), fixtures.Now.Add(7*24*time.Hour))
	assert.Equal(t, 2, got.OverdueCount)

	assert.Equal(t, model.LoanerSummary{}, SummarizeLoaners(nil, fixtures.Now))
}

func TestSummarizeInventory(t *testing.T) {
	got := SummarizeInventory(fixtures.NewInventoryItems(), fixtures.Now)

	assert.Equal(t, 5, got.TotalItems)
	assert.InDelta(t, 1527.99, got.TotalValue, 0.001)
	assert.Equal(t, 2, got.WarrantyExpiringSoon)
	assert.Equal(t, 2, got.RecentlyAdded)

	assert.Equal(t, map[model.InventoryCategory]int{
		model.CategoryComputer:    0,
		model.CategoryMonitor:     2,
		model.CategoryPrinter:     1,
		model.CategoryNetworking:  1,
		model.CategoryAudioVisual: 0,
		model.CategoryPeripheral:  0,
		model.CategorySoftware:    1,
		model.CategoryFurniture:   0,
		model.CategoryOther:       0,
	}, got.ByCategory)

	assert.Equal(t, map[model.InventoryStatus]int{
		model.InventoryActive:      3,
		model.InventoryInStorage:   0,
		model.InventoryNeedsRepair: 1,
		model.InventoryRetired:     1,
		model.InventoryOnOrder:     0,
	}, got.ByStatus)
}

func TestSummarizeInventoryEmpty(t *testing.T) {
	got := SummarizeInventory(nil, fixtures.Now)

	assert.Zero(t, got.TotalItems)
	assert.Zero(t, got.TotalValue)
	assert.Len(t, got.ByCategory, len(model.InventoryCategories()))
	assert.Len(t, got.ByStatus, len(model.InventoryStatuses()))
}
