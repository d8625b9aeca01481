package model

// Summary is the fleet aggregate rendered by the dashboard metric cards.
//
// The security attributes are nil unless at least one device carries vulnerability scan data.
type Summary struct {
	TotalDevices              int     `json:"totalDevices"`
	CriticalCount             int     `json:"criticalCount"`
	WarningCount              int     `json:"warningCount"`
	GoodCount                 int     `json:"goodCount"`
	InactiveCount             int     `json:"inactiveCount"`
	UnknownCount              int     `json:"unknownCount"`
	ActiveDevices             int     `json:"activeDevices"`
	DevicesNeedingReplacement int     `json:"devicesNeedingReplacement"`
	OutOfDateDevices          int     `json:"outOfDateDevices"`
	RetiredCount              int     `json:"retiredCount"`
	AverageAge                float64 `json:"averageAge"`
	TotalEstimatedValue       float64 `json:"totalEstimatedValue"`
	ReplacementBudget         float64 `json:"replacementBudget"`

	DevicesWithQualysData   *int `json:"devicesWithQualysData,omitempty"`
	TotalVulnerabilities    *int `json:"totalVulnerabilities,omitempty"`
	CriticalVulnerabilities *int `json:"criticalVulnerabilities,omitempty"`
	AverageTruRiskScore     *int `json:"averageTruRiskScore,omitempty"`
}

// ChartDataPoint is a single labelled value of a dashboard chart series.
type ChartDataPoint struct {
	Name       string   `json:"name"`
	Value      int      `json:"value"`
	Percentage *float64 `json:"percentage,omitempty"`
	Fill       string   `json:"fill,omitempty"`
}

// CostProjection is a replacement budget line item.
type CostProjection struct {
	Name    string  `json:"name"`
	Cost    float64 `json:"cost"`
	Devices int     `json:"devices"`
}

// VulnerableDevice is a row of the top vulnerable devices chart.
type VulnerableDevice struct {
	Name            string `json:"name"`
	Vulnerabilities int    `json:"vulnerabilities"`
	Critical        int    `json:"critical"`
	TruRisk         int    `json:"truRisk"`
}
