package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/metal-toolbox/fleetdash/internal/model"
)

func TestOSCurrency(t *testing.T) {
	testCases := []struct {
		osType   model.OSType
		version  string
		expected model.OSCurrency
	}{
		{model.OSTypeMacOS, "13.6.7", model.OSUnsupported},
		{model.OSTypeMacOS, "14", model.OSAging},
		{model.OSTypeMacOS, "14.4.1", model.OSAging},
		{model.OSTypeMacOS, "15.0", model.OSCurrent},
		{model.OSTypeMacOS, "macOS 26.0.1", model.OSCurrent},
		{"macos", "15.1", model.OSCurrent},
		{model.OSTypeWindows, "10.0.19045.4291", model.OSUnsupported},
		{model.OSTypeWindows, "10.0.22621", model.OSAging},
		{model.OSTypeWindows, "10.0.22631.3447", model.OSAging},
		{model.OSTypeWindows, "10.0.26100.2033", model.OSCurrent},
		{model.OSTypeMacOS, "", model.OSUnknown},
		{model.OSTypeMacOS, "Unknown", model.OSUnknown},
		{"Linux", "6.1", model.OSUnknown},
	}

	for _, tc := range testCases {
		t.Run(string(tc.osType)+" "+tc.version, func(t *testing.T) {
			assert.Equal(t, tc.expected, OSCurrency(DefaultOSRules(), tc.osType, tc.version))
		})
	}
}

func TestOSCurrencyCustomRules(t *testing.T) {
	rules := []OSRule{{OSType: model.OSTypeMacOS, UnsupportedBelow: "13"}}

	assert.Equal(t, model.OSUnsupported, OSCurrency(rules, model.OSTypeMacOS, "12.7"))
	assert.Equal(t, model.OSCurrent, OSCurrency(rules, model.OSTypeMacOS, "13.0"))
	assert.Equal(t, model.OSUnknown, OSCurrency(rules, model.OSTypeWindows, "10.0.22631"))
	assert.Equal(t, model.OSUnknown, OSCurrency(nil, model.OSTypeMacOS, "15.0"))
}

func TestCompareVersions(t *testing.T) {
	v := func(s string) []int {
		parsed, ok := parseVersion(s)
		assert.True(t, ok, s)

		return parsed
	}

	assert.Equal(t, 0, compareVersions(v("14"), v("14.0.0")))
	assert.Equal(t, -1, compareVersions(v("10.0.9"), v("10.0.10")))
	assert.Equal(t, 1, compareVersions(v("15.0.1"), v("15")))

	_, ok := parseVersion("n/a")
	assert.False(t, ok)
}
