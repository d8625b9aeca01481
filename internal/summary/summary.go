// Package summary reduces a classified device set into the dashboard aggregates, chart series and views.
package summary

import (
	"math"

	"github.com/metal-toolbox/fleetdash/internal/model"
)

// DefaultReplacementUnitCost is the budgeted cost of replacing a single device.
const DefaultReplacementUnitCost = 1500.0

// Options tune the aggregation.
type Options struct {
	// ExcludeRetired drops retired devices before aggregating, RetiredCount is still reported.
	ExcludeRetired bool
	// ReplacementUnitCost is the per device replacement budget, zero selects the default.
	ReplacementUnitCost float64
}

func (o Options) unitCost() float64 {
	if o.ReplacementUnitCost <= 0 {
		return DefaultReplacementUnitCost
	}

	return o.ReplacementUnitCost
}

// Summarize returns the fleet aggregate over devices.
//
// Every device is counted under exactly one status, so the status counts always add up to TotalDevices.
func Summarize(devices []model.Device, opts Options) model.Summary {
	var (
		s                            model.Summary
		ageTotal                     float64
		agesKnown                    int
		qualys, vulns, criticalVulns int
		truRiskTotal, truRiskScored  int
	)

	for i := range devices {
		d := &devices[i]

		if d.IsRetired {
			s.RetiredCount++

			if opts.ExcludeRetired {
				continue
			}
		}

		s.TotalDevices++

		switch d.Status {
		case model.StatusCritical:
			s.CriticalCount++
		case model.StatusWarning:
			s.WarningCount++
		case model.StatusGood:
			s.GoodCount++
		case model.StatusInactive:
			s.InactiveCount++
		default:
			s.UnknownCount++
		}

		if d.ActivityStatus == model.ActivityActive {
			s.ActiveDevices++
		}

		if d.ReplacementRecommended {
			s.DevicesNeedingReplacement++
		}

		if d.OSOutOfDate() {
			s.OutOfDateDevices++
		}

		if d.AgeKnown() {
			ageTotal += d.AgeInYears
			agesKnown++
		}

		if d.Value != nil {
			s.TotalEstimatedValue += d.Value.CurrentValue
		}

		if d.HasQualysData() {
			qualys++
			vulns += d.VulnerabilityCount
			criticalVulns += d.CriticalVulnCount

			if d.TruRiskScore != nil {
				truRiskTotal += *d.TruRiskScore
				truRiskScored++
			}
		}
	}

	if agesKnown > 0 {
		s.AverageAge = math.Round(ageTotal/float64(agesKnown)*10) / 10
	}

	s.ReplacementBudget = float64(s.DevicesNeedingReplacement) * opts.unitCost()

	if qualys > 0 {
		s.DevicesWithQualysData = &qualys
		s.TotalVulnerabilities = &vulns
		s.CriticalVulnerabilities = &criticalVulns

		if truRiskScored > 0 {
			avg := int(math.Round(float64(truRiskTotal) / float64(truRiskScored)))
			s.AverageTruRiskScore = &avg
		}
	}

	return s
}
