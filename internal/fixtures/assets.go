package fixtures

import (
	"github.com/metal-toolbox/fleetdash/internal/model"
)

func floatPtr(f float64) *float64 { return &f }

// NewLoaners returns a loaner pool with a loaner in every status,
// loaner-2 is checked out past its expected return and loaner-3 within it.
func NewLoaners() []*model.Loaner {
	return []*model.Loaner{
		{
			ID: "loaner-1", AssetTag: "LN-001", Name: "Loaner MacBook Air", Manufacturer: "Apple",
			Model: "Mac14,2", SerialNumber: "C02LOAN001", Status: model.LoanerAvailable,
			CreatedAt: daysAgo(200), UpdatedAt: daysAgo(200),
		},
		{
			ID: "loaner-2", AssetTag: "LN-002", Name: "Loaner ThinkPad", Manufacturer: "Lenovo",
			Model: "21HK003MUS", SerialNumber: "PFLOAN002", Status: model.LoanerCheckedOut,
			BorrowerName: "Dana Reyes", BorrowerEmail: "dana.reyes@example.edu", BorrowerDepartment: "Chemistry",
			CheckoutDate: timePtr(daysAgo(10)), ExpectedReturnDate: timePtr(daysAgo(3)),
			CreatedAt: daysAgo(190), UpdatedAt: daysAgo(10),
		},
		{
			ID: "loaner-3", AssetTag: "LN-003", Name: "Loaner MacBook Pro", Manufacturer: "Apple",
			Model: "Mac15,3", SerialNumber: "C02LOAN003", Status: model.LoanerCheckedOut,
			BorrowerName: "Eli Park", BorrowerEmail: "eli.park@example.edu",
			CheckoutDate: timePtr(daysAgo(2)), ExpectedReturnDate: timePtr(daysAgo(-5)),
			CreatedAt: daysAgo(180), UpdatedAt: daysAgo(2),
		},
		{
			ID: "loaner-4", AssetTag: "LN-004", Name: "Loaner Latitude", Manufacturer: "Dell",
			SerialNumber: "DLLOAN004", Status: model.LoanerMaintenance, Condition: "cracked hinge",
			CreatedAt: daysAgo(170), UpdatedAt: daysAgo(20),
		},
		{
			ID: "loaner-5", AssetTag: "LN-005", Name: "Old loaner", Manufacturer: "Apple",
			SerialNumber: "C02LOAN005", Status: model.LoanerRetired,
			CreatedAt: daysAgo(900), UpdatedAt: daysAgo(100),
		},
	}
}

// NewLoans returns the loan history of the NewLoaners pool,
// loaner-2 has a closed late loan and the open overdue one.
func NewLoans() []*model.LoanHistory {
	return []*model.LoanHistory{
		{
			ID: "loan-1", LoanerID: "loaner-2", BorrowerName: "Dana Reyes", BorrowerEmail: "dana.reyes@example.edu",
			BorrowerDepartment: "Chemistry", CheckoutDate: daysAgo(10), ExpectedReturnDate: timePtr(daysAgo(3)),
		},
		{
			ID: "loan-2", LoanerID: "loaner-2", BorrowerName: "Sam Ortiz", CheckoutDate: daysAgo(60),
			ExpectedReturnDate: timePtr(daysAgo(53)), ActualReturnDate: timePtr(daysAgo(50)), Notes: "charger missing",
		},
		{
			ID: "loan-3", LoanerID: "loaner-3", BorrowerName: "Eli Park", BorrowerEmail: "eli.park@example.edu",
			CheckoutDate: daysAgo(2), ExpectedReturnDate: timePtr(daysAgo(-5)),
		},
	}
}

// NewInventoryItems returns an inventory where item-1 and item-4 have warranties expiring soon
// and item-2 and item-4 were recently added, item-4 on both window edges.
func NewInventoryItems() []*model.InventoryItem {
	return []*model.InventoryItem{
		{
			ID: "item-1", Name: "Dell U2723QE", Category: model.CategoryMonitor, Manufacturer: "Dell",
			SerialNumber: "CN0U2723", AssetTag: "IT-1001", Status: model.InventoryActive,
			PurchasePrice: floatPtr(579.99), WarrantyExpiration: timePtr(daysAgo(-30)),
			AssignedTo: "Ada Lovelace", Location: "Room 204",
			CreatedAt: daysAgo(400), UpdatedAt: daysAgo(400),
		},
		{
			ID: "item-2", Name: "HP LaserJet M507", Category: model.CategoryPrinter, Manufacturer: "HP",
			Status: model.InventoryActive, PurchasePrice: floatPtr(449), WarrantyExpiration: timePtr(daysAgo(10)),
			Location: "Main office", CreatedAt: daysAgo(10), UpdatedAt: daysAgo(10),
		},
		{
			ID: "item-3", Name: "UniFi Switch 24", Category: model.CategoryNetworking, Manufacturer: "Ubiquiti",
			Status: model.InventoryNeedsRepair, PurchasePrice: floatPtr(379),
			CreatedAt: daysAgo(31), UpdatedAt: daysAgo(5),
		},
		{
			ID: "item-4", Name: "Office 365 seats", Category: model.CategorySoftware,
			Status: model.InventoryActive, WarrantyExpiration: timePtr(daysAgo(-90)),
			CreatedAt: daysAgo(30), UpdatedAt: daysAgo(30),
		},
		{
			ID: "item-5", Name: "Dell P2214H", Category: model.CategoryMonitor, Manufacturer: "Dell",
			Status: model.InventoryRetired, PurchasePrice: floatPtr(120), WarrantyExpiration: timePtr(daysAgo(-120)),
			CreatedAt: daysAgo(900), UpdatedAt: daysAgo(60),
		},
	}
}
