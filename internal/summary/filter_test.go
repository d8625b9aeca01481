package summary

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/metal-toolbox/fleetdash/internal/fixtures"
	"github.com/metal-toolbox/fleetdash/internal/model"
)

func ids(devices []model.Device) []string {
	out := make([]string, 0, len(devices))
	for i := range devices {
		out = append(out, devices[i].ID)
	}

	return out
}

func TestFilterApply(t *testing.T) {
	testCases := []struct {
		name     string
		filter   Filter
		expected []string
	}{
		{
			name:     "default view needs attention",
			filter:   Filter{},
			expected: []string{"C02CRIT002", "PF4WARN03", "DL7INAC04", "PF2OLD006"},
		},
		{
			name:     "all",
			filter:   Filter{View: ViewAll},
			expected: []string{"C02GOOD001", "C02CRIT002", "PF4WARN03", "DL7INAC04", "VMUNKN005", "PF2OLD006"},
		},
		{
			name:     "all without retired",
			filter:   Filter{View: ViewAll, ExcludeRetired: true},
			expected: []string{"C02GOOD001", "C02CRIT002", "PF4WARN03", "DL7INAC04", "PF2OLD006"},
		},
		{
			name:     "critical",
			filter:   Filter{View: ViewCritical},
			expected: []string{"C02CRIT002", "PF2OLD006"},
		},
		{
			name:     "good",
			filter:   Filter{View: ViewGood},
			expected: []string{"C02GOOD001"},
		},
		{
			name:     "active",
			filter:   Filter{View: ViewActive, ExcludeRetired: true},
			expected: []string{"C02GOOD001", "C02CRIT002", "PF4WARN03", "PF2OLD006"},
		},
		{
			name:     "intune",
			filter:   Filter{View: ViewIntune},
			expected: []string{"PF4WARN03", "DL7INAC04", "PF2OLD006"},
		},
		{
			name:     "replacement",
			filter:   Filter{View: ViewReplacement},
			expected: []string{"C02CRIT002"},
		},
		{
			name:     "retired ignores exclude retired",
			filter:   Filter{View: ViewRetired, ExcludeRetired: true},
			expected: []string{"VMUNKN005"},
		},
		{
			name:     "search by department",
			filter:   Filter{View: ViewAll, Search: "finance"},
			expected: []string{"PF4WARN03", "PF2OLD006"},
		},
		{
			name:     "search by friendly model",
			filter:   Filter{View: ViewAll, Search: "thinkpad x1"},
			expected: []string{"PF2OLD006"},
		},
		{
			name:     "owner lookup by email",
			filter:   Filter{View: ViewAll, Owner: "ABC1D@"},
			expected: []string{"C02GOOD001", "C02CRIT002"},
		},
		{
			name:     "limit",
			filter:   Filter{View: ViewAll, Limit: 2},
			expected: []string{"C02GOOD001", "C02CRIT002"},
		},
		{
			name:     "no match",
			filter:   Filter{View: ViewAll, Search: "nothing-like-this"},
			expected: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ids(tc.filter.Apply(fixtures.NewDevices())))
		})
	}
}

func TestParseView(t *testing.T) {
	v, err := ParseView("")
	assert.Nil(t, err)
	assert.Equal(t, ViewAttention, v)

	v, err = ParseView(" Replacement ")
	assert.Nil(t, err)
	assert.Equal(t, ViewReplacement, v)

	_, err = ParseView("bogus")
	assert.True(t, errors.Is(err, ErrUnknownView))
}

func TestFind(t *testing.T) {
	devices := fixtures.NewDevices()

	d, ok := Find(devices, "PF4WARN03")
	assert.True(t, ok)
	assert.Equal(t, "FBS-xy9z-T14-2023", d.Name)

	d, ok = Find(devices, "c02good001")
	assert.True(t, ok)
	assert.Equal(t, "C02GOOD001", d.ID)

	_, ok = Find(devices, "missing")
	assert.False(t, ok)
}
