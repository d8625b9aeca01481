package fixtures

import (
	"github.com/metal-toolbox/fleetdash/internal/model"
	"github.com/metal-toolbox/fleetdash/types"
)

// CSV exports as uploaded from the management platforms, the directory and the scanner,
// timestamps are relative to Now.
//
// Merged with RetiredIDs and Provisioners they yield six devices:
//   - FBS-abc1d-MBA-2025 (jamf) good, joined with three findings
//   - FBS-abc1d-MBP-2022 (jamf) critical, joined by scanner hostname, TruRisk clamped
//   - FBS-xyz9q-T14 (intune) warning by model release year, owner matched by email from CoreView
//   - LAB-KIOSK-04 (intune) inactive, unassigned, scanned clean
//   - SHARED-MAC-07 in both platforms, the intune record wins
//   - VM-TEST-05 (jamf) unknown, enrolled by the provisioning account and retired
const (
	JamfCSV = "\uFEFFComputer Name,Serial Number,Model Identifier,Model,Operating System Version,Last Check-in,Last Inventory Update,PO Date,Username,Full Name,Email Address,Department,Processor Type,Total RAM MB,Drive Capacity MB,IP Address,Jamf Pro Computer ID\n" +
		`FBS-abc1d-MBA-2025,C02GOOD001,"Mac15,13",MacBook Air,15.2,2026-05-30 09:00:00,2026-05-30 09:00:00,2025-11-30,abc1d,Ada Byron,abc1d@example.edu,Research,Apple M3,16384,512000,10.0.0.5,101` + "\n" +
		`FBS-abc1d-MBP-2022,C02CRIT002,"MacBookPro18,3",MacBook Pro,13.6,2026-05-27 08:00:00,,2022-06-01,abc1d,Ada Byron,abc1d@example.edu,Research,Apple M1 Pro,16384,1024000,,102` + "\n" +
		`SHARED-MAC-07,C02DUPE007,"Mac14,2",MacBook Air,15.1,2026-04-01 10:00:00,,,pdq3r,Pat Quinn,pdq3r@example.edu,Facilities,Apple M2,8192,256000,,103` + "\n" +
		`,,"Mac14,2",MacBook Air,15.1,2026-05-01 10:00:00,,,,,,,,,,,104` + "\n" +
		`VM-TEST-05,VMUNKN005,"VMware7,1",VMware Virtual Platform,,2026-05-31 12:00:00,,,itprovision,,,,,,,,105` + "\n"

	IntuneCSV = "Device name,Serial number,Model,Manufacturer,OS,OS version,Last check-in,Enrollment date,Primary user UPN,Primary user display name,Primary user email address,Total storage,Physical memory,Device ID\n" +
		"FBS-xyz9q-T14,PF4WARN03,21KS003MUS,LENOVO,Windows,10.0.22631.3447,2026-05-22T10:00:00Z,2023-12-01T00:00:00Z,xavier.yu@example.edu,Xavier Yu,xavier.yu@example.edu,476940,34359738368,dev-3\n" +
		"LAB-KIOSK-04,DL7INAC04,Latitude 7440,Dell Inc.,Windows,10.0.26100.1,2026-03-01T00:00:00Z,,,,,,,dev-4\n" +
		`SHARED-MAC-07,c02dupe007,"Mac14,2",Apple,macOS,15.1,2026-05-31T08:00:00Z,,abc1d@example.edu,Ada Byron,abc1d@example.edu,,,dev-7` + "\n"

	UsersCSV = "Computing ID,Name,Email,Department\n" +
		"abc1d,Ada Byron,abc1d@example.edu,Research\n" +
		"pdq3r,Pat Quinn,pdq3r@example.edu,Facilities\n" +
		",Nobody,,\n"

	CoreViewCSV = "UserPrincipalName,DisplayName,Department\n" +
		"xavier.yu@example.edu,Xavier Yu,Finance\n" +
		"abc1d@example.edu,Ada B.,\n"

	QualysCSV = "Agent ID,Hostname,Serial Number,IP Address,TruRisk Score,QID Title,CVE ID,Severity,Category,Last Scanned\n" +
		"qa-1,FBS-abc1d-MBA-2025,C02GOOD001,10.0.0.5,350,OpenSSL buffer overflow,CVE-2025-0001,5,Local,2026-05-30\n" +
		`qa-1,FBS-abc1d-MBA-2025,C02GOOD001,,350,Safari memory corruption,"CVE-2025-0002, CVE-2025-0003",4,Local,2026-05-31` + "\n" +
		"qa-1,FBS-abc1d-MBA-2025,C02GOOD001,,340,TLS information disclosure,,3,Local,2026-05-29\n" +
		"qa-2,fbs-abc1d-mbp-2022.example.edu,,10.0.0.9,1200,Kernel privilege escalation,CVE-2024-1111,5,OS,2026-05-28\n" +
		"qa-9,unknown-host,,,100,Weak cipher,,2,Network,2026-05-28\n" +
		"qa-3,LAB-KIOSK-04,,,,,,,,2026-05-20\n"
)

var (
	// RetiredIDs are the retired device IDs stored next to the exports.
	RetiredIDs = []string{"VMUNKN005", "NOTINFLEET1"}

	// Provisioners are the enrollment accounts owned by IT.
	Provisioners = []string{"itprovision"}
)

// NewSources returns the CSV exports as stored values, in merge order.
func NewSources() []*types.SourceValue {
	exports := []struct {
		kind model.SourceKind
		data string
	}{
		{model.SourceKindJamf, JamfCSV},
		{model.SourceKindIntune, IntuneCSV},
		{model.SourceKindUsers, UsersCSV},
		{model.SourceKindCoreView, CoreViewCSV},
		{model.SourceKindQualys, QualysCSV},
	}

	sources := make([]*types.SourceValue, 0, len(exports))
	for _, e := range exports {
		sources = append(sources, &types.SourceValue{
			UpdatedAt:  Now,
			Kind:       string(e.kind),
			Origin:     "upload",
			Data:       []byte(e.data),
			MsgVersion: types.Version,
		})
	}

	return sources
}
