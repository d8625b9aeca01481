package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/metal-toolbox/fleetdash/internal/model"
)

func days(n int) *int { return &n }

func TestEvaluate(t *testing.T) {
	testCases := []struct {
		name               string
		input              Input
		expectedStatus     model.Status
		expectedActivity   model.Activity
		expectedReasons    []string
		expectedReplace    bool
		expectedReplaceMsg string
	}{
		{
			name:             "recent active device is good",
			input:            Input{AgeInYears: 0.5, AgeKnown: true, DaysSinceUpdate: days(2), OSCurrency: model.OSCurrent},
			expectedStatus:   model.StatusGood,
			expectedActivity: model.ActivityActive,
			expectedReasons:  []string{"Device is under 2 years old"},
		},
		{
			name:             "inactivity dominates age",
			input:            Input{AgeInYears: 0.5, AgeKnown: true, DaysSinceUpdate: days(45), OSCurrency: model.OSCurrent},
			expectedStatus:   model.StatusInactive,
			expectedActivity: model.ActivityInactive,
			expectedReasons:  []string{"Not checked in for 30+ days.", "Device is under 2 years old"},
		},
		{
			name:             "inactive device accumulates every matching reason",
			input:            Input{AgeInYears: 4, AgeKnown: true, DaysSinceUpdate: days(90), OSCurrency: model.OSUnsupported},
			expectedStatus:   model.StatusInactive,
			expectedActivity: model.ActivityInactive,
			expectedReasons: []string{
				"Not checked in for 30+ days.",
				"Device is 3+ years old",
				"Running unsupported OS",
			},
			expectedReplace:    true,
			expectedReplaceMsg: "Device is 4.0 years old, within the 3-5 year replacement cycle",
		},
		{
			name:             "no check-in recorded",
			input:            Input{AgeInYears: 1, AgeKnown: true, OSCurrency: model.OSCurrent},
			expectedStatus:   model.StatusInactive,
			expectedActivity: model.ActivityInactive,
			expectedReasons:  []string{"No check-in recorded.", "Device is under 2 years old"},
		},
		{
			name:             "30 days is still active",
			input:            Input{AgeInYears: 1, AgeKnown: true, DaysSinceUpdate: days(30), OSCurrency: model.OSCurrent},
			expectedStatus:   model.StatusGood,
			expectedActivity: model.ActivityActive,
			expectedReasons:  []string{"Device is under 2 years old"},
		},
		{
			name:               "old device is critical and due for replacement",
			input:              Input{AgeInYears: 4, AgeKnown: true, DaysSinceUpdate: days(1), OSCurrency: model.OSCurrent},
			expectedStatus:     model.StatusCritical,
			expectedActivity:   model.ActivityActive,
			expectedReasons:    []string{"Device is 3+ years old"},
			expectedReplace:    true,
			expectedReplaceMsg: "Device is 4.0 years old, within the 3-5 year replacement cycle",
		},
		{
			name:               "critical age boundary",
			input:              Input{AgeInYears: 3, AgeKnown: true, DaysSinceUpdate: days(1), OSCurrency: model.OSUnknown},
			expectedStatus:     model.StatusCritical,
			expectedActivity:   model.ActivityActive,
			expectedReasons:    []string{"Device is 3+ years old"},
			expectedReplace:    true,
			expectedReplaceMsg: "Device is 3.0 years old, within the 3-5 year replacement cycle",
		},
		{
			name:               "replacement window upper bound is inclusive",
			input:              Input{AgeInYears: 5, AgeKnown: true, DaysSinceUpdate: days(1), OSCurrency: model.OSCurrent},
			expectedStatus:     model.StatusCritical,
			expectedActivity:   model.ActivityActive,
			expectedReasons:    []string{"Device is 3+ years old"},
			expectedReplace:    true,
			expectedReplaceMsg: "Device is 5.0 years old, within the 3-5 year replacement cycle",
		},
		{
			name:             "legacy hardware is not flagged for replacement",
			input:            Input{AgeInYears: 6, AgeKnown: true, DaysSinceUpdate: days(1), OSCurrency: model.OSCurrent},
			expectedStatus:   model.StatusCritical,
			expectedActivity: model.ActivityActive,
			expectedReasons:  []string{"Device is 3+ years old"},
		},
		{
			name:             "unsupported os on a new device",
			input:            Input{AgeInYears: 1, AgeKnown: true, DaysSinceUpdate: days(3), OSCurrency: model.OSUnsupported},
			expectedStatus:   model.StatusCritical,
			expectedActivity: model.ActivityActive,
			expectedReasons:  []string{"Running unsupported OS"},
		},
		{
			name:             "warning age with aging os",
			input:            Input{AgeInYears: 2.5, AgeKnown: true, DaysSinceUpdate: days(3), OSCurrency: model.OSAging},
			expectedStatus:   model.StatusWarning,
			expectedActivity: model.ActivityActive,
			expectedReasons:  []string{"Device is 2+ years old", "Running aging OS, update available"},
		},
		{
			name:             "aging os on a new device",
			input:            Input{AgeInYears: 1, AgeKnown: true, DaysSinceUpdate: days(3), OSCurrency: model.OSAging},
			expectedStatus:   model.StatusWarning,
			expectedActivity: model.ActivityActive,
			expectedReasons:  []string{"Running aging OS, update available"},
		},
		{
			name:             "unknown age with current os",
			input:            Input{DaysSinceUpdate: days(3), OSCurrency: model.OSCurrent},
			expectedStatus:   model.StatusUnknown,
			expectedActivity: model.ActivityActive,
			expectedReasons:  []string{"Unable to determine device age: no purchase date and unrecognized model"},
		},
		{
			name:             "unknown age with unsupported os is still critical",
			input:            Input{DaysSinceUpdate: days(3), OSCurrency: model.OSUnsupported},
			expectedStatus:   model.StatusCritical,
			expectedActivity: model.ActivityActive,
			expectedReasons:  []string{"Running unsupported OS"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := DefaultPolicy().Evaluate(tc.input)

			assert.Equal(t, tc.expectedStatus, got.Status)
			assert.Equal(t, tc.expectedActivity, got.Activity)
			assert.Equal(t, tc.expectedReasons, got.Reasons)
			assert.Equal(t, tc.expectedReplace, got.ReplacementRecommended)
			assert.Equal(t, tc.expectedReplaceMsg, got.ReplacementReason)
		})
	}
}

func TestEvaluateExactlyOneStatus(t *testing.T) {
	policy := DefaultPolicy()
	currencies := []model.OSCurrency{model.OSCurrent, model.OSAging, model.OSUnsupported, model.OSUnknown}
	checkins := []*int{nil, days(0), days(30), days(31), days(400)}

	for _, known := range []bool{true, false} {
		for age := 0.0; age <= 8; age += 0.25 {
			for _, currency := range currencies {
				for _, checkin := range checkins {
					in := Input{AgeInYears: age, AgeKnown: known, DaysSinceUpdate: checkin, OSCurrency: currency}

					first := policy.Evaluate(in)
					second := policy.Evaluate(in)

					assert.Contains(t, model.Statuses(), first.Status, "%+v", in)
					assert.NotEmpty(t, first.Reasons, "%+v", in)
					assert.Equal(t, first, second, "%+v", in)

					if first.Activity == model.ActivityInactive {
						assert.Equal(t, model.StatusInactive, first.Status, "%+v", in)
					}

					if first.Status == model.StatusUnknown {
						assert.False(t, known, "%+v", in)
					}
				}
			}
		}
	}
}

func TestPolicyNormalized(t *testing.T) {
	assert.Equal(t, DefaultPolicy(), Policy{}.WithDefaults())

	custom := Policy{InactiveAfterDays: 14, CriticalAge: 4}.WithDefaults()
	assert.Equal(t, 14, custom.InactiveAfterDays)
	assert.Equal(t, 4.0, custom.CriticalAge)
	assert.Equal(t, DefaultWarningAge, custom.WarningAge)
	assert.Equal(t, DefaultOSRules(), custom.OSRules)

	got := Policy{InactiveAfterDays: 14}.Evaluate(Input{AgeInYears: 1, AgeKnown: true, DaysSinceUpdate: days(20)})
	assert.Equal(t, model.StatusInactive, got.Status)
	assert.Equal(t, []string{"Not checked in for 14+ days.", "Device is under 2 years old"}, got.Reasons)
}

func TestRulesOrder(t *testing.T) {
	rules := DefaultPolicy().Rules()

	statuses := make([]model.Status, 0, len(rules))
	for _, r := range rules {
		assert.NotEmpty(t, r.Name)
		statuses = append(statuses, r.Status)
	}

	assert.Equal(t, []model.Status{
		model.StatusInactive,
		model.StatusCritical,
		model.StatusCritical,
		model.StatusWarning,
		model.StatusWarning,
		model.StatusGood,
	}, statuses)
}
