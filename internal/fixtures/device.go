package fixtures

import (
	"time"

	"github.com/metal-toolbox/fleetdash/internal/model"
)

// Now is the reference time the fixture devices were classified at.
var Now = time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)

func intPtr(i int) *int { return &i }

func timePtr(t time.Time) *time.Time { return &t }

func daysAgo(n int) time.Time { return Now.Add(-time.Duration(n) * 24 * time.Hour) }

// NewDevices returns a classified fleet covering every status, both sources and a retired device.
//
// Every call returns fresh records that tests may modify.
func NewDevices() []model.Device {
	return []model.Device{
		{
			ID:              "C02GOOD001",
			Name:            "FBS-abc1d-MBA-2025",
			SerialNumber:    "C02GOOD001",
			Source:          model.SourceJamf,
			Model:           "Mac15,13",
			FriendlyModel:   `MacBook Air 15" (M3, 2024)`,
			Manufacturer:    "Apple",
			OSType:          model.OSTypeMacOS,
			OSVersion:       "15.2",
			Owner:           "Ada Byron",
			OwnerEmail:      "abc1d@example.edu",
			Department:      "Research",
			PurchaseDate:    timePtr(daysAgo(183)),
			LastSeen:        daysAgo(2),
			DaysSinceUpdate: intPtr(2),
			AgeInYears:      0.5,
			AgeSource:       model.AgeFromPurchaseDate,
			OSCurrency:      model.OSCurrent,
			Status:          model.StatusGood,
			StatusReasons:   []string{"Device is under 2 years old"},
			ActivityStatus:  model.ActivityActive,
			Value:           &model.Value{MSRP: 1299, CurrentValue: 1182, DepreciationPercent: 9, AgeInYears: 0.5},
			Security: &model.Security{
				QualysAgentID:      "qa-1",
				TruRiskScore:       intPtr(350),
				VulnerabilityCount: 7,
				CriticalVulnCount:  2,
				CriticalVulnCount5: 1,
				HighVulnCount:      1,
				TopCVEs:            []string{"CVE-2025-0001", "CVE-2025-0002"},
			},
		},
		{
			ID:                     "C02CRIT002",
			Name:                   "FBS-abc1d-MBP-2022",
			SerialNumber:           "C02CRIT002",
			Source:                 model.SourceJamf,
			Model:                  "MacBookPro18,3",
			FriendlyModel:          `MacBook Pro 14" (M1 Pro, 2021)`,
			Manufacturer:           "Apple",
			OSType:                 model.OSTypeMacOS,
			OSVersion:              "13.6",
			Owner:                  "Ada Byron",
			OwnerEmail:             "abc1d@example.edu",
			Department:             "Research",
			PurchaseDate:           timePtr(daysAgo(1461)),
			LastSeen:               daysAgo(5),
			DaysSinceUpdate:        intPtr(5),
			AgeInYears:             4,
			AgeSource:              model.AgeFromPurchaseDate,
			OSCurrency:             model.OSUnsupported,
			Status:                 model.StatusCritical,
			StatusReasons:          []string{"Device is 3+ years old", "Running unsupported OS"},
			ActivityStatus:         model.ActivityActive,
			ReplacementRecommended: true,
			ReplacementReason:      "Device is 4.0 years old, within the 3-5 year replacement cycle",
			Value:                  &model.Value{MSRP: 1999, CurrentValue: 560, DepreciationPercent: 72, AgeInYears: 4},
			Security: &model.Security{
				QualysAgentID:      "qa-2",
				TruRiskScore:       intPtr(850),
				VulnerabilityCount: 25,
				CriticalVulnCount:  10,
				CriticalVulnCount5: 4,
				HighVulnCount:      6,
				TopCVEs:            []string{"CVE-2024-1111"},
			},
		},
		{
			ID:              "PF4WARN03",
			Name:            "FBS-xy9z-T14-2023",
			SerialNumber:    "PF4WARN03",
			Source:          model.SourceIntune,
			Model:           "21KS003MUS",
			FriendlyModel:   "ThinkPad P16s Gen 3",
			Manufacturer:    "Lenovo",
			OSType:          model.OSTypeWindows,
			OSVersion:       "10.0.22631.3447",
			Owner:           "Xavier Yu",
			OwnerEmail:      "xavier.yu@example.edu",
			Department:      "Finance",
			EnrolledDate:    timePtr(daysAgo(913)),
			LastSeen:        daysAgo(10),
			DaysSinceUpdate: intPtr(10),
			AgeInYears:      2,
			AgeSource:       model.AgeFromModel,
			OSCurrency:      model.OSAging,
			Status:          model.StatusWarning,
			StatusReasons:   []string{"Device is 2+ years old", "Running aging OS, update available"},
			ActivityStatus:  model.ActivityActive,
			Value:           &model.Value{MSRP: 1499, CurrentValue: 959, DepreciationPercent: 36, AgeInYears: 2},
		},
		{
			ID:              "DL7INAC04",
			Name:            "LAB-KIOSK-04",
			SerialNumber:    "DL7INAC04",
			Source:          model.SourceIntune,
			Model:           "Latitude 7440",
			FriendlyModel:   "Dell Latitude 7440",
			Manufacturer:    "Dell",
			OSType:          model.OSTypeWindows,
			OSVersion:       "10.0.26100.2033",
			Owner:           model.Unassigned,
			PurchaseDate:    timePtr(daysAgo(365)),
			LastSeen:        daysAgo(45),
			DaysSinceUpdate: intPtr(45),
			AgeInYears:      1,
			AgeSource:       model.AgeFromPurchaseDate,
			OSCurrency:      model.OSCurrent,
			Status:          model.StatusInactive,
			StatusReasons:   []string{"Not checked in for 30+ days.", "Device is under 2 years old"},
			ActivityStatus:  model.ActivityInactive,
			Value:           &model.Value{MSRP: 1199, CurrentValue: 983, DepreciationPercent: 18, AgeInYears: 1},
		},
		{
			ID:              "VMUNKN005",
			Name:            "FBS-LOANER-05",
			SerialNumber:    "VMUNKN005",
			Source:          model.SourceJamf,
			Model:           "VMware7,1",
			FriendlyModel:   "VMware7,1",
			Manufacturer:    "Unknown",
			OSType:          model.OSTypeMacOS,
			OSVersion:       "15.1",
			Owner:           "IT Admin",
			LastSeen:        daysAgo(1),
			DaysSinceUpdate: intPtr(1),
			AgeSource:       model.AgeUnknown,
			OSCurrency:      model.OSCurrent,
			Status:          model.StatusUnknown,
			StatusReasons:   []string{"Unable to determine device age: no purchase date and unrecognized model"},
			ActivityStatus:  model.ActivityActive,
			Value:           &model.Value{MSRP: 1000, CurrentValue: 1000},
			IsRetired:       true,
		},
		{
			ID:              "PF2OLD006",
			Name:            "FBS-xy9z-X1-2020",
			SerialNumber:    "PF2OLD006",
			Source:          model.SourceIntune,
			Model:           "20XW00ABUS",
			FriendlyModel:   "ThinkPad X1 Carbon Gen 9",
			Manufacturer:    "Lenovo",
			OSType:          model.OSTypeWindows,
			OSVersion:       "10.0.19045.4291",
			Owner:           "Xavier Yu",
			OwnerEmail:      "xavier.yu@example.edu",
			Department:      "Finance",
			PurchaseDate:    timePtr(daysAgo(2192)),
			LastSeen:        daysAgo(20),
			DaysSinceUpdate: intPtr(20),
			AgeInYears:      6,
			AgeSource:       model.AgeFromPurchaseDate,
			OSCurrency:      model.OSUnsupported,
			Status:          model.StatusCritical,
			StatusReasons:   []string{"Device is 3+ years old", "Running unsupported OS"},
			ActivityStatus:  model.ActivityActive,
			Value:           &model.Value{MSRP: 1299, CurrentValue: 130, DepreciationPercent: 90, AgeInYears: 6},
			Security: &model.Security{
				QualysAgentID: "qa-3",
			},
		},
	}
}
