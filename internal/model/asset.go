package model

import (
	"strings"
	"time"
)

// LoanerStatus is the lending state of a loaner laptop.
type LoanerStatus string

const (
	LoanerAvailable   LoanerStatus = "available"
	LoanerCheckedOut  LoanerStatus = "checked-out"
	LoanerMaintenance LoanerStatus = "maintenance"
	LoanerRetired     LoanerStatus = "retired"
)

// LoanerStatuses returns the loaner states.
func LoanerStatuses() []LoanerStatus {
	return []LoanerStatus{LoanerAvailable, LoanerCheckedOut, LoanerMaintenance, LoanerRetired}
}

// ParseLoanerStatus returns the LoanerStatus for s, matched case-insensitively.
func ParseLoanerStatus(s string) (LoanerStatus, bool) {
	for _, status := range LoanerStatuses() {
		if strings.EqualFold(string(status), strings.TrimSpace(s)) {
			return status, true
		}
	}

	return "", false
}

// Loaner is a laptop lent out to borrowers for a limited time.
//
// The borrower and loan dates are set only while the loaner is checked out.
//
// nolint:govet // fieldalignment - struct is better readable grouped by concern.
type Loaner struct {
	ID           string       `json:"id"`
	AssetTag     string       `json:"assetTag"`
	Name         string       `json:"name"`
	Manufacturer string       `json:"manufacturer,omitempty"`
	Model        string       `json:"model,omitempty"`
	SerialNumber string       `json:"serialNumber,omitempty"`
	Status       LoanerStatus `json:"status"`

	BorrowerName       string     `json:"borrowerName,omitempty"`
	BorrowerEmail      string     `json:"borrowerEmail,omitempty"`
	BorrowerDepartment string     `json:"borrowerDepartment,omitempty"`
	CheckoutDate       *time.Time `json:"checkoutDate,omitempty"`
	ExpectedReturnDate *time.Time `json:"expectedReturnDate,omitempty"`
	ActualReturnDate   *time.Time `json:"actualReturnDate,omitempty"`

	Specs     string `json:"specs,omitempty"`
	Condition string `json:"condition,omitempty"`
	Notes     string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Overdue returns true when the loaner is checked out past its expected return date.
func (l *Loaner) Overdue(now time.Time) bool {
	return l.Status == LoanerCheckedOut && l.ExpectedReturnDate != nil && l.ExpectedReturnDate.Before(now)
}

// LoanHistory is a single loan of a loaner laptop, open until ActualReturnDate is set.
type LoanHistory struct {
	ID                 string     `json:"id"`
	LoanerID           string     `json:"loanerId"`
	BorrowerName       string     `json:"borrowerName"`
	BorrowerEmail      string     `json:"borrowerEmail,omitempty"`
	BorrowerDepartment string     `json:"borrowerDepartment,omitempty"`
	CheckoutDate       time.Time  `json:"checkoutDate"`
	ExpectedReturnDate *time.Time `json:"expectedReturnDate,omitempty"`
	ActualReturnDate   *time.Time `json:"actualReturnDate,omitempty"`
	Notes              string     `json:"notes,omitempty"`
}

// Overdue returns true when the loan ran past its expected return date, open loans are compared against now.
func (h *LoanHistory) Overdue(now time.Time) bool {
	if h.ExpectedReturnDate == nil {
		return false
	}

	returned := now
	if h.ActualReturnDate != nil {
		returned = *h.ActualReturnDate
	}

	return returned.After(*h.ExpectedReturnDate)
}

// LoanerSummary counts the loaner pool by status.
type LoanerSummary struct {
	TotalLoaners  int `json:"totalLoaners"`
	Available     int `json:"available"`
	CheckedOut    int `json:"checkedOut"`
	InMaintenance int `json:"inMaintenance"`
	Retired       int `json:"retired"`
	OverdueCount  int `json:"overdueCount"`
}

type InventoryCategory string

const (
	CategoryComputer    InventoryCategory = "computer"
	CategoryMonitor     InventoryCategory = "monitor"
	CategoryPrinter     InventoryCategory = "printer"
	CategoryNetworking  InventoryCategory = "networking"
	CategoryAudioVisual InventoryCategory = "audio-visual"
	CategoryPeripheral  InventoryCategory = "peripheral"
	CategorySoftware    InventoryCategory = "software"
	CategoryFurniture   InventoryCategory = "furniture"
	CategoryOther       InventoryCategory = "other"
)

// InventoryCategories returns the inventory item categories.
func InventoryCategories() []InventoryCategory {
	return []InventoryCategory{
		CategoryComputer,
		CategoryMonitor,
		CategoryPrinter,
		CategoryNetworking,
		CategoryAudioVisual,
		CategoryPeripheral,
		CategorySoftware,
		CategoryFurniture,
		CategoryOther,
	}
}

func ParseInventoryCategory(s string) (InventoryCategory, bool) {
	for _, c := range InventoryCategories() {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, true
		}
	}

	return "", false
}

type InventoryStatus string

const (
	InventoryActive      InventoryStatus = "active"
	InventoryInStorage   InventoryStatus = "in-storage"
	InventoryNeedsRepair InventoryStatus = "needs-repair"
	InventoryRetired     InventoryStatus = "retired"
	InventoryOnOrder     InventoryStatus = "on-order"
)

// InventoryStatuses returns the inventory item states.
func InventoryStatuses() []InventoryStatus {
	return []InventoryStatus{InventoryActive, InventoryInStorage, InventoryNeedsRepair, InventoryRetired, InventoryOnOrder}
}

func ParseInventoryStatus(s string) (InventoryStatus, bool) {
	for _, status := range InventoryStatuses() {
		if strings.EqualFold(string(status), strings.TrimSpace(s)) {
			return status, true
		}
	}

	return "", false
}

// InventoryItem is a non fleet IT asset tracked by hand, monitors, printers, licenses and the like.
//
// nolint:govet // fieldalignment - struct is better readable grouped by concern.
type InventoryItem struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Category     InventoryCategory `json:"category"`
	Manufacturer string            `json:"manufacturer,omitempty"`
	Model        string            `json:"model,omitempty"`
	SerialNumber string            `json:"serialNumber,omitempty"`
	AssetTag     string            `json:"assetTag,omitempty"`

	PurchaseDate       *time.Time `json:"purchaseDate,omitempty"`
	PurchasePrice      *float64   `json:"purchasePrice,omitempty"`
	WarrantyExpiration *time.Time `json:"warrantyExpiration,omitempty"`

	AssignedTo string          `json:"assignedTo,omitempty"`
	Location   string          `json:"location,omitempty"`
	Department string          `json:"department,omitempty"`
	Status     InventoryStatus `json:"status"`
	Notes      string          `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// InventorySummary is the inventory aggregate, every category and status is present in the breakdowns.
type InventorySummary struct {
	TotalItems           int                       `json:"totalItems"`
	TotalValue           float64                   `json:"totalValue"`
	ByCategory           map[InventoryCategory]int `json:"byCategory"`
	ByStatus             map[InventoryStatus]int   `json:"byStatus"`
	WarrantyExpiringSoon int                       `json:"warrantyExpiringSoon"`
	RecentlyAdded        int                       `json:"recentlyAdded"`
}
