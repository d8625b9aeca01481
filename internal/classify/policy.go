package classify

import (
	"fmt"

	"github.com/metal-toolbox/fleetdash/internal/model"
)

const (
	DefaultInactiveAfterDays = 30
	DefaultCriticalAge       = 3.0
	DefaultWarningAge        = 2.0
	DefaultReplacementMinAge = 3.0
	DefaultReplacementMaxAge = 5.0
)

// Policy holds the classification thresholds.
//
// Zero valued fields fall back to their defaults.
type Policy struct {
	// InactiveAfterDays is the number of days without a check-in after which a device is inactive.
	InactiveAfterDays int `mapstructure:"inactive_after_days"`
	// CriticalAge is the age in years from which a device is critical.
	CriticalAge float64 `mapstructure:"critical_age"`
	// WarningAge is the age in years from which a device is in warning.
	WarningAge float64 `mapstructure:"warning_age"`
	// ReplacementMinAge and ReplacementMaxAge bound the replacement cycle window, both inclusive.
	//
	// Devices older than ReplacementMaxAge are retained legacy hardware and are not flagged.
	ReplacementMinAge float64 `mapstructure:"replacement_min_age"`
	ReplacementMaxAge float64 `mapstructure:"replacement_max_age"`
	// OSRules is the per OS family support policy.
	OSRules []OSRule `mapstructure:"os_policies"`
}

// DefaultPolicy returns the classification policy shipped with fleetdash.
func DefaultPolicy() Policy {
	return Policy{
		InactiveAfterDays: DefaultInactiveAfterDays,
		CriticalAge:       DefaultCriticalAge,
		WarningAge:        DefaultWarningAge,
		ReplacementMinAge: DefaultReplacementMinAge,
		ReplacementMaxAge: DefaultReplacementMaxAge,
		OSRules:           DefaultOSRules(),
	}
}

// WithDefaults returns the policy with zero valued fields set to their defaults.
func (p Policy) WithDefaults() Policy {
	d := DefaultPolicy()

	if p.InactiveAfterDays <= 0 {
		p.InactiveAfterDays = d.InactiveAfterDays
	}

	if p.CriticalAge <= 0 {
		p.CriticalAge = d.CriticalAge
	}

	if p.WarningAge <= 0 {
		p.WarningAge = d.WarningAge
	}

	if p.ReplacementMinAge <= 0 {
		p.ReplacementMinAge = d.ReplacementMinAge
	}

	if p.ReplacementMaxAge <= 0 {
		p.ReplacementMaxAge = d.ReplacementMaxAge
	}

	if len(p.OSRules) == 0 {
		p.OSRules = d.OSRules
	}

	return p
}

// Input is everything the status decision depends on.
type Input struct {
	AgeInYears float64
	AgeKnown   bool
	// DaysSinceUpdate is nil when the device never checked in.
	DaysSinceUpdate *int
	OSCurrency      model.OSCurrency
}

// Result is the outcome of evaluating a Policy against an Input.
type Result struct {
	Status                 model.Status
	Reasons                []string
	Activity               model.Activity
	ReplacementRecommended bool
	ReplacementReason      string
}

// Rule is a single entry of the ordered status policy table.
type Rule struct {
	Name   string
	Status model.Status
	Match  func(p Policy, in Input) bool
	Reason func(p Policy, in Input) string
}

// Rules returns the status policy table in evaluation order.
//
// The first matching rule decides the status, every matching rule contributes its reason.
func (p Policy) Rules() []Rule {
	return []Rule{
		{
			Name:   "not checked in",
			Status: model.StatusInactive,
			Match:  func(p Policy, in Input) bool { return !p.active(in) },
			Reason: func(p Policy, in Input) string {
				if in.DaysSinceUpdate == nil {
					return "No check-in recorded."
				}

				return fmt.Sprintf("Not checked in for %d+ days.", p.InactiveAfterDays)
			},
		},
		{
			Name:   "age past critical",
			Status: model.StatusCritical,
			Match:  func(p Policy, in Input) bool { return in.AgeKnown && in.AgeInYears >= p.CriticalAge },
			Reason: func(p Policy, _ Input) string { return fmt.Sprintf("Device is %g+ years old", p.CriticalAge) },
		},
		{
			Name:   "unsupported os",
			Status: model.StatusCritical,
			Match:  func(_ Policy, in Input) bool { return in.OSCurrency == model.OSUnsupported },
			Reason: func(Policy, Input) string { return "Running unsupported OS" },
		},
		{
			Name:   "age past warning",
			Status: model.StatusWarning,
			Match: func(p Policy, in Input) bool {
				return in.AgeKnown && in.AgeInYears >= p.WarningAge && in.AgeInYears < p.CriticalAge
			},
			Reason: func(p Policy, _ Input) string { return fmt.Sprintf("Device is %g+ years old", p.WarningAge) },
		},
		{
			Name:   "aging os",
			Status: model.StatusWarning,
			Match:  func(_ Policy, in Input) bool { return in.OSCurrency == model.OSAging },
			Reason: func(Policy, Input) string { return "Running aging OS, update available" },
		},
		{
			Name:   "recent device",
			Status: model.StatusGood,
			Match: func(p Policy, in Input) bool {
				return in.AgeKnown && in.AgeInYears < p.WarningAge &&
					in.OSCurrency != model.OSAging && in.OSCurrency != model.OSUnsupported
			},
			Reason: func(p Policy, _ Input) string { return fmt.Sprintf("Device is under %g years old", p.WarningAge) },
		},
	}
}

func (p Policy) active(in Input) bool {
	return in.DaysSinceUpdate != nil && *in.DaysSinceUpdate <= p.InactiveAfterDays
}

// Evaluate applies the policy table and the replacement policy to in.
//
// Evaluate is pure, it never fails: when no status rule matches the device is unknown.
func (p Policy) Evaluate(in Input) Result {
	p = p.WithDefaults()

	result := Result{
		Activity: model.ActivityInactive,
		Reasons:  []string{},
	}

	if p.active(in) {
		result.Activity = model.ActivityActive
	}

	for _, rule := range p.Rules() {
		if !rule.Match(p, in) {
			continue
		}

		if result.Status == "" {
			result.Status = rule.Status
		}

		result.Reasons = append(result.Reasons, rule.Reason(p, in))
	}

	if result.Status == "" {
		result.Status = model.StatusUnknown
		result.Reasons = append(result.Reasons, unknownReason(in))
	}

	result.ReplacementRecommended, result.ReplacementReason = p.replacement(in)

	return result
}

func unknownReason(in Input) string {
	if !in.AgeKnown {
		return "Unable to determine device age: no purchase date and unrecognized model"
	}

	return "Insufficient data to classify device"
}

// replacement flags devices inside the replacement cycle window.
func (p Policy) replacement(in Input) (bool, string) {
	if !in.AgeKnown {
		return false, ""
	}

	if in.AgeInYears < p.ReplacementMinAge || in.AgeInYears > p.ReplacementMaxAge {
		return false, ""
	}

	return true, fmt.Sprintf(
		"Device is %.1f years old, within the %g-%g year replacement cycle",
		in.AgeInYears,
		p.ReplacementMinAge,
		p.ReplacementMaxAge,
	)
}
