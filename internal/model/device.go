package model

import (
	"time"
)

// Source is the management platform a device record was exported from.
type Source string

const (
	SourceJamf   Source = "jamf"
	SourceIntune Source = "intune"
)

type OSType string

const (
	OSTypeMacOS   OSType = "macOS"
	OSTypeWindows OSType = "Windows"
)

// Status is the lifecycle health of a device.
//
// Exactly one status holds for a device, it is recomputed on every merge.
type Status string

const (
	StatusCritical Status = "critical"
	StatusWarning  Status = "warning"
	StatusGood     Status = "good"
	StatusInactive Status = "inactive"
	StatusUnknown  Status = "unknown"
)

// Statuses returns all device statuses ordered by severity.
func Statuses() []Status {
	return []Status{StatusCritical, StatusWarning, StatusGood, StatusInactive, StatusUnknown}
}

type Activity string

const (
	ActivityActive   Activity = "active"
	ActivityInactive Activity = "inactive"
)

// OSCurrency is the support tier of a device's operating system version.
type OSCurrency string

const (
	OSCurrent     OSCurrency = "current"
	OSAging       OSCurrency = "aging"
	OSUnsupported OSCurrency = "unsupported"
	OSUnknown     OSCurrency = "unknown"
)

// AgeSource records how AgeInYears was derived.
type AgeSource string

const (
	AgeFromPurchaseDate AgeSource = "purchase"
	AgeFromModel        AgeSource = "model"
	AgeUnknown          AgeSource = "unknown"
)

// Device is the unified per-device record merged from the management platform,
// directory and vulnerability scanner exports.
//
// Optional string attributes are absent when empty, optional numeric and time
// attributes are nil pointers when absent.
//
// nolint:govet // fieldalignment - struct is better readable grouped by concern.
type Device struct {
	// Identity
	ID           string `json:"id"`
	Name         string `json:"name"`
	SerialNumber string `json:"serialNumber,omitempty"`
	Source       Source `json:"source"`

	// Hardware
	Model         string `json:"model"`
	FriendlyModel string `json:"friendlyModel"`
	Manufacturer  string `json:"manufacturer,omitempty"`
	Processor     string `json:"processor,omitempty"`
	RAM           string `json:"ram,omitempty"`
	Storage       string `json:"storage,omitempty"`
	OSType        OSType `json:"osType"`
	OSVersion     string `json:"osVersion,omitempty"`

	// Ownership
	Owner           string `json:"owner"`
	OwnerEmail      string `json:"ownerEmail,omitempty"`
	AdditionalOwner string `json:"additionalOwner,omitempty"`
	// ExportUser is the platform reported user when no directory owner matched.
	ExportUser string `json:"exportUser,omitempty"`
	Department string `json:"department,omitempty"`

	// Lifecycle timestamps
	PurchaseDate    *time.Time `json:"purchaseDate,omitempty"`
	EnrolledDate    *time.Time `json:"enrolledDate,omitempty"`
	LastSeen        time.Time  `json:"lastSeen"`
	LastUpdateDate  *time.Time `json:"lastUpdateDate,omitempty"`
	DaysSinceUpdate *int       `json:"daysSinceUpdate,omitempty"`

	AgeInYears float64   `json:"ageInYears"`
	AgeSource  AgeSource `json:"ageSource"`

	// Classification outputs
	OSCurrency             OSCurrency `json:"osCurrency"`
	Status                 Status     `json:"status"`
	StatusReasons          []string   `json:"statusReasons"`
	ActivityStatus         Activity   `json:"activityStatus"`
	ReplacementRecommended bool       `json:"replacementRecommended"`
	ReplacementReason      string     `json:"replacementReason,omitempty"`

	Value *Value `json:"value,omitempty"`

	// Security attributes, present when joined with a vulnerability scan export.
	*Security

	IsRetired bool   `json:"isRetired"`
	Notes     string `json:"notes,omitempty"`
}

// Security holds the vulnerability scanner attributes of a device.
type Security struct {
	QualysAgentID      string          `json:"qualysAgentId"`
	TruRiskScore       *int            `json:"truRiskScore,omitempty"`
	VulnerabilityCount int             `json:"vulnerabilityCount"`
	CriticalVulnCount  int             `json:"criticalVulnCount"`
	CriticalVulnCount5 int             `json:"criticalVulnCount5"`
	HighVulnCount      int             `json:"highVulnCount"`
	TopCVEs            []string        `json:"topCVEs,omitempty"`
	Vulnerabilities    []Vulnerability `json:"vulnerabilities,omitempty"`
	LastVulnScan       *time.Time      `json:"lastVulnScan,omitempty"`
	IPAddress          string          `json:"ipAddress,omitempty"`
}

// Vulnerability is a single scanner finding, owned by its Device.
type Vulnerability struct {
	Title    string `json:"title"`
	CVEID    string `json:"cveId,omitempty"`
	Severity int    `json:"severity"`
	Category string `json:"category,omitempty"`
}

// Value is the estimated worth of a device by straight-line depreciation.
type Value struct {
	MSRP                float64 `json:"msrp"`
	CurrentValue        float64 `json:"currentValue"`
	DepreciationPercent int     `json:"depreciationPercent"`
	AgeInYears          float64 `json:"ageInYears"`
}

// HasQualysData returns true when the device was joined with a vulnerability scan.
func (d *Device) HasQualysData() bool {
	return d.Security != nil && d.Security.QualysAgentID != ""
}

// AgeKnown returns true when the device age was derived from a purchase date or a known model.
func (d *Device) AgeKnown() bool {
	return d.AgeSource == AgeFromPurchaseDate || d.AgeSource == AgeFromModel
}

// OSOutOfDate returns true when the device OS is past its current support tier.
func (d *Device) OSOutOfDate() bool {
	return d.OSCurrency == OSAging || d.OSCurrency == OSUnsupported
}
