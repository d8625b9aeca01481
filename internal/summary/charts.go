package summary

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/metal-toolbox/fleetdash/internal/classify"
	"github.com/metal-toolbox/fleetdash/internal/model"
)

var ErrUnknownChart = errors.New("unknown chart")

// Chart names served by the API.
const (
	ChartOSType                = "os-type"
	ChartSource                = "source"
	ChartAge                   = "age"
	ChartTopModels             = "models"
	ChartOSVersions            = "os-versions"
	ChartStatus                = "status"
	ChartActivity              = "activity"
	ChartReplacementTimeline   = "replacement-timeline"
	ChartDepartments           = "departments"
	ChartMultiDeviceOwners     = "multi-device-owners"
	ChartUpdateCompliance      = "update-compliance"
	ChartCostProjection        = "cost-projection"
	ChartVulnerabilitySeverity = "vulnerability-severity"
	ChartTruRisk               = "trurisk"
	ChartTopVulnerable         = "top-vulnerable"
	ChartQualysCoverage        = "qualys-coverage"
	ChartVulnerabilityCount    = "vulnerability-count"
)

const (
	navy    = "#232D4B"
	orange  = "#E57200"
	blue    = "#0078D4"
	green   = "#22c55e"
	lime    = "#84cc16"
	yellow  = "#eab308"
	amber   = "#f59e0b"
	salmon  = "#f97316"
	red     = "#ef4444"
	crimson = "#dc2626"
	slate   = "#6b7280"
	gray    = "#9ca3af"

	topModelsLimit      = 10
	topOSVersionsLimit  = 15
	topDepartmentsLimit = 10
	topOwnersLimit      = 15
	topVulnerableLimit  = 10
)

// Charts computes the dashboard chart series.
type Charts struct {
	// Now anchors the fiscal year labels.
	Now time.Time
	// ReplacementUnitCost is the per device replacement budget, zero selects the default.
	ReplacementUnitCost float64
}

// ChartNames returns the names accepted by Chart.
func ChartNames() []string {
	return []string{
		ChartOSType,
		ChartSource,
		ChartAge,
		ChartTopModels,
		ChartOSVersions,
		ChartStatus,
		ChartActivity,
		ChartReplacementTimeline,
		ChartDepartments,
		ChartMultiDeviceOwners,
		ChartUpdateCompliance,
		ChartCostProjection,
		ChartVulnerabilitySeverity,
		ChartTruRisk,
		ChartTopVulnerable,
		ChartQualysCoverage,
		ChartVulnerabilityCount,
	}
}

// Chart returns the named chart series.
func (c Charts) Chart(name string, devices []model.Device) (any, error) {
	switch name {
	case ChartOSType:
		return OSTypeDistribution(devices), nil
	case ChartSource:
		return SourceDistribution(devices), nil
	case ChartAge:
		return AgeDistribution(devices), nil
	case ChartTopModels:
		return TopModels(devices, topModelsLimit), nil
	case ChartOSVersions:
		return OSVersionDistribution(devices), nil
	case ChartStatus:
		return StatusDistribution(devices), nil
	case ChartActivity:
		return ActivityTimeline(devices), nil
	case ChartReplacementTimeline:
		return c.ReplacementTimeline(devices), nil
	case ChartDepartments:
		return DepartmentDistribution(devices), nil
	case ChartMultiDeviceOwners:
		return MultiDeviceOwners(devices), nil
	case ChartUpdateCompliance:
		return UpdateCompliance(devices), nil
	case ChartCostProjection:
		return c.ReplacementCostProjection(devices), nil
	case ChartVulnerabilitySeverity:
		return VulnerabilitySeverityDistribution(devices), nil
	case ChartTruRisk:
		return TruRiskDistribution(devices), nil
	case ChartTopVulnerable:
		return TopVulnerableDevices(devices, topVulnerableLimit), nil
	case ChartQualysCoverage:
		return QualysCoverage(devices), nil
	case ChartVulnerabilityCount:
		return VulnerabilityCountDistribution(devices), nil
	default:
		return nil, errors.Wrap(ErrUnknownChart, name)
	}
}

func percentage(value, total int) *float64 {
	p := 0.0
	if total > 0 {
		p = float64(value) / float64(total) * 100
	}

	return &p
}

func count(devices []model.Device, match func(d *model.Device) bool) int {
	var n int

	for i := range devices {
		if match(&devices[i]) {
			n++
		}
	}

	return n
}

func nonZero(points []model.ChartDataPoint) []model.ChartDataPoint {
	out := make([]model.ChartDataPoint, 0, len(points))

	for _, p := range points {
		if p.Value > 0 {
			out = append(out, p)
		}
	}

	return out
}

// bucket is a labelled range of a histogram chart.
type bucket struct {
	name string
	fill string
}

func histogram(buckets []bucket, devices []model.Device, index func(d *model.Device) int) []model.ChartDataPoint {
	counts := make([]int, len(buckets))

	for i := range devices {
		if idx := index(&devices[i]); idx >= 0 && idx < len(buckets) {
			counts[idx]++
		}
	}

	points := make([]model.ChartDataPoint, 0, len(buckets))
	for i, b := range buckets {
		points = append(points, model.ChartDataPoint{Name: b.name, Value: counts[i], Fill: b.fill})
	}

	return points
}

// ranked counts devices by key and returns the largest groups, ties ordered by name.
func ranked(devices []model.Device, limit int, key func(d *model.Device) (string, bool)) []model.ChartDataPoint {
	counts := map[string]int{}

	for i := range devices {
		if k, ok := key(&devices[i]); ok {
			counts[k]++
		}
	}

	names := maps.Keys(counts)
	slices.SortFunc(names, func(a, b string) int {
		if counts[a] != counts[b] {
			return counts[b] - counts[a]
		}

		return strings.Compare(a, b)
	})

	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}

	points := make([]model.ChartDataPoint, 0, len(names))
	for _, name := range names {
		points = append(points, model.ChartDataPoint{Name: name, Value: counts[name], Fill: navy})
	}

	return points
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Unknown"
	}

	return s
}

// OSTypeDistribution splits the fleet into macOS and Windows.
func OSTypeDistribution(devices []model.Device) []model.ChartDataPoint {
	mac := count(devices, func(d *model.Device) bool { return d.OSType == model.OSTypeMacOS })
	windows := count(devices, func(d *model.Device) bool { return d.OSType == model.OSTypeWindows })

	return []model.ChartDataPoint{
		{Name: "macOS", Value: mac, Percentage: percentage(mac, len(devices)), Fill: navy},
		{Name: "Windows", Value: windows, Percentage: percentage(windows, len(devices)), Fill: orange},
	}
}

// SourceDistribution splits the fleet by management platform.
func SourceDistribution(devices []model.Device) []model.ChartDataPoint {
	jamf := count(devices, func(d *model.Device) bool { return d.Source == model.SourceJamf })
	intune := count(devices, func(d *model.Device) bool { return d.Source == model.SourceIntune })

	return []model.ChartDataPoint{
		{Name: "Jamf", Value: jamf, Percentage: percentage(jamf, len(devices)), Fill: navy},
		{Name: "Intune", Value: intune, Percentage: percentage(intune, len(devices)), Fill: blue},
	}
}

// AgeDistribution buckets devices by age, devices of unknown age are reported in a trailing bucket when present.
func AgeDistribution(devices []model.Device) []model.ChartDataPoint {
	buckets := []bucket{
		{"0-1 years", green},
		{"1-2 years", lime},
		{"2-3 years", yellow},
		{"3-4 years", salmon},
		{"4+ years", red},
		{"Unknown", gray},
	}

	points := histogram(buckets, devices, func(d *model.Device) int {
		if !d.AgeKnown() {
			return 5
		}

		switch age := d.AgeInYears; {
		case age < 1:
			return 0
		case age < 2:
			return 1
		case age < 3:
			return 2
		case age < 4:
			return 3
		default:
			return 4
		}
	})

	if points[5].Value == 0 {
		points = points[:5]
	}

	return points
}

// TopModels returns the most common models by friendly name.
func TopModels(devices []model.Device, limit int) []model.ChartDataPoint {
	return ranked(devices, limit, func(d *model.Device) (string, bool) {
		if d.FriendlyModel != "" {
			return d.FriendlyModel, true
		}

		return orUnknown(d.Model), true
	})
}

// OSVersionDistribution returns the most common OS versions.
func OSVersionDistribution(devices []model.Device) []model.ChartDataPoint {
	return ranked(devices, topOSVersionsLimit, func(d *model.Device) (string, bool) {
		return orUnknown(d.OSVersion), true
	})
}

// StatusDistribution counts devices per status, empty statuses are omitted.
func StatusDistribution(devices []model.Device) []model.ChartDataPoint {
	series := map[model.Status]bucket{
		model.StatusCritical: {"Critical", red},
		model.StatusWarning:  {"Warning", amber},
		model.StatusGood:     {"Good", green},
		model.StatusInactive: {"Inactive", slate},
		model.StatusUnknown:  {"Unknown", gray},
	}

	points := make([]model.ChartDataPoint, 0, len(series))

	for _, status := range model.Statuses() {
		status := status
		n := count(devices, func(d *model.Device) bool { return statusOf(d) == status })

		points = append(points, model.ChartDataPoint{
			Name:       series[status].name,
			Value:      n,
			Percentage: percentage(n, len(devices)),
			Fill:       series[status].fill,
		})
	}

	return nonZero(points)
}

func statusOf(d *model.Device) model.Status {
	switch d.Status {
	case model.StatusCritical, model.StatusWarning, model.StatusGood, model.StatusInactive:
		return d.Status
	default:
		return model.StatusUnknown
	}
}

// daysSince returns the days since the last check-in, devices that never checked in are the stalest.
func daysSince(d *model.Device) int {
	if d.DaysSinceUpdate == nil {
		return math.MaxInt
	}

	return *d.DaysSinceUpdate
}

// ActivityTimeline buckets devices by days since their last check-in.
func ActivityTimeline(devices []model.Device) []model.ChartDataPoint {
	buckets := []bucket{
		{"0-7 days", green},
		{"8-14 days", lime},
		{"15-30 days", yellow},
		{"31-60 days", salmon},
		{"60+ days", red},
	}

	return histogram(buckets, devices, func(d *model.Device) int {
		switch days := daysSince(d); {
		case days <= 7:
			return 0
		case days <= 14:
			return 1
		case days <= 30:
			return 2
		case days <= 60:
			return 3
		default:
			return 4
		}
	})
}

// UpdateCompliance buckets devices by staleness of their last inventory update.
func UpdateCompliance(devices []model.Device) []model.ChartDataPoint {
	buckets := []bucket{
		{"Updated (0-7 days)", green},
		{"Recent (7-30 days)", lime},
		{"Aging (30-60 days)", yellow},
		{"Stale (60-90 days)", salmon},
		{"Critical (90+ days)", red},
	}

	return histogram(buckets, devices, func(d *model.Device) int {
		switch days := daysSince(d); {
		case days <= 7:
			return 0
		case days <= 30:
			return 1
		case days <= 60:
			return 2
		case days <= 90:
			return 3
		default:
			return 4
		}
	})
}

// FiscalYear returns the fiscal year t falls in, fiscal years start on July 1st.
func FiscalYear(t time.Time) int {
	if t.Month() >= time.July {
		return t.Year() + 1
	}

	return t.Year()
}

// ReplacementTimeline schedules critical devices this fiscal year, warning devices
// the next and good devices after that.
func (c Charts) ReplacementTimeline(devices []model.Device) []model.ChartDataPoint {
	fy := FiscalYear(c.Now)

	return []model.ChartDataPoint{
		{
			Name:  fmt.Sprintf("FY %d (Immediate)", fy),
			Value: count(devices, func(d *model.Device) bool { return d.Status == model.StatusCritical }),
			Fill:  red,
		},
		{
			Name:  fmt.Sprintf("FY %d (Next Year)", fy+1),
			Value: count(devices, func(d *model.Device) bool { return d.Status == model.StatusWarning }),
			Fill:  amber,
		},
		{
			Name:  fmt.Sprintf("FY %d+ (Future)", fy+2),
			Value: count(devices, func(d *model.Device) bool { return d.Status == model.StatusGood }),
			Fill:  green,
		},
	}
}

// ReplacementCostProjection prices the replacement timeline and the flagged devices.
func (c Charts) ReplacementCostProjection(devices []model.Device) []model.CostProjection {
	unit := Options{ReplacementUnitCost: c.ReplacementUnitCost}.unitCost()
	fy := FiscalYear(c.Now)

	critical := count(devices, func(d *model.Device) bool { return d.Status == model.StatusCritical })
	warning := count(devices, func(d *model.Device) bool { return d.Status == model.StatusWarning })
	flagged := count(devices, func(d *model.Device) bool { return d.ReplacementRecommended })

	return []model.CostProjection{
		{Name: fmt.Sprintf("FY %d (Critical)", fy), Cost: float64(critical) * unit, Devices: critical},
		{Name: fmt.Sprintf("FY %d (Warning)", fy+1), Cost: float64(warning) * unit, Devices: warning},
		{Name: "Total Flagged", Cost: float64(flagged) * unit, Devices: flagged},
	}
}

// DepartmentDistribution returns the departments with the most devices.
func DepartmentDistribution(devices []model.Device) []model.ChartDataPoint {
	return ranked(devices, topDepartmentsLimit, func(d *model.Device) (string, bool) {
		if strings.TrimSpace(d.Department) == "" {
			return model.Unassigned, true
		}

		return d.Department, true
	})
}

// MultiDeviceOwners returns the people owning more than one device.
func MultiDeviceOwners(devices []model.Device) []model.ChartDataPoint {
	points := ranked(devices, 0, func(d *model.Device) (string, bool) {
		switch d.Owner {
		case "", model.Unassigned, classify.ITAdmin, "System":
			return "", false
		default:
			return d.Owner, true
		}
	})

	out := make([]model.ChartDataPoint, 0, len(points))

	for _, p := range points {
		if p.Value > 1 {
			out = append(out, p)
		}
	}

	if len(out) > topOwnersLimit {
		out = out[:topOwnersLimit]
	}

	return out
}

// VulnerabilitySeverityDistribution sums findings by severity over scanned devices.
func VulnerabilitySeverityDistribution(devices []model.Device) []model.ChartDataPoint {
	var sev5, sev4, other int

	for i := range devices {
		d := &devices[i]
		if !d.HasQualysData() {
			continue
		}

		sev5 += d.CriticalVulnCount5
		sev4 += d.HighVulnCount
		other += d.VulnerabilityCount - d.CriticalVulnCount
	}

	return nonZero([]model.ChartDataPoint{
		{Name: "Critical (Severity 5)", Value: sev5, Fill: crimson},
		{Name: "High (Severity 4)", Value: sev4, Fill: salmon},
		{Name: "Medium/Low (1-3)", Value: other, Fill: yellow},
	})
}

// TruRiskDistribution buckets scored devices by TruRisk score.
func TruRiskDistribution(devices []model.Device) []model.ChartDataPoint {
	buckets := []bucket{
		{"Very High (800+)", crimson},
		{"High (600-799)", salmon},
		{"Medium (400-599)", yellow},
		{"Low (200-399)", lime},
		{"Very Low (0-199)", green},
	}

	return nonZero(histogram(buckets, devices, func(d *model.Device) int {
		if d.Security == nil || d.TruRiskScore == nil {
			return -1
		}

		switch score := *d.TruRiskScore; {
		case score >= 800:
			return 0
		case score >= 600:
			return 1
		case score >= 400:
			return 2
		case score >= 200:
			return 3
		default:
			return 4
		}
	}))
}

// TopVulnerableDevices returns the devices with the most findings.
func TopVulnerableDevices(devices []model.Device, limit int) []model.VulnerableDevice {
	out := []model.VulnerableDevice{}

	for i := range devices {
		d := &devices[i]
		if d.Security == nil || d.VulnerabilityCount <= 0 {
			continue
		}

		v := model.VulnerableDevice{
			Name:            d.Name,
			Vulnerabilities: d.VulnerabilityCount,
			Critical:        d.CriticalVulnCount,
		}

		if d.TruRiskScore != nil {
			v.TruRisk = *d.TruRiskScore
		}

		out = append(out, v)
	}

	slices.SortStableFunc(out, func(a, b model.VulnerableDevice) int {
		return b.Vulnerabilities - a.Vulnerabilities
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out
}

// QualysCoverage splits the fleet by presence of vulnerability scan data.
func QualysCoverage(devices []model.Device) []model.ChartDataPoint {
	with := count(devices, func(d *model.Device) bool { return d.HasQualysData() })
	without := len(devices) - with

	return nonZero([]model.ChartDataPoint{
		{Name: "With Qualys Data", Value: with, Percentage: percentage(with, len(devices)), Fill: green},
		{Name: "Without Qualys Data", Value: without, Percentage: percentage(without, len(devices)), Fill: gray},
	})
}

// VulnerabilityCountDistribution buckets devices by their number of findings.
func VulnerabilityCountDistribution(devices []model.Device) []model.ChartDataPoint {
	buckets := []bucket{
		{"No Vulnerabilities", green},
		{"1-5 Vulnerabilities", lime},
		{"6-10 Vulnerabilities", yellow},
		{"11-20 Vulnerabilities", salmon},
		{"21+ Vulnerabilities", crimson},
	}

	return nonZero(histogram(buckets, devices, func(d *model.Device) int {
		n := 0
		if d.Security != nil {
			n = d.VulnerabilityCount
		}

		switch {
		case n == 0:
			return 0
		case n <= 5:
			return 1
		case n <= 10:
			return 2
		case n <= 20:
			return 3
		default:
			return 4
		}
	}))
}
