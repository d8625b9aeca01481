package classify

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/metal-toolbox/fleetdash/internal/model"
)

var versionPattern = regexp.MustCompile(`\d+(?:\.\d+)*`)

// OSRule is the support policy of an operating system family.
//
// A version below UnsupportedBelow is unsupported, below AgingBelow it is aging,
// anything else is current.
type OSRule struct {
	OSType           model.OSType `mapstructure:"os_type"`
	UnsupportedBelow string       `mapstructure:"unsupported_below"`
	AgingBelow       string       `mapstructure:"aging_below"`
}

// DefaultOSRules returns the support policy shipped with fleetdash.
func DefaultOSRules() []OSRule {
	return []OSRule{
		{OSType: model.OSTypeMacOS, UnsupportedBelow: "14", AgingBelow: "15"},
		{OSType: model.OSTypeWindows, UnsupportedBelow: "10.0.22621", AgingBelow: "10.0.26100"},
	}
}

// OSCurrency returns the support tier of osVersion for the given OS family.
//
// Versions that do not parse, or OS families without a rule, are unknown.
func OSCurrency(rules []OSRule, osType model.OSType, osVersion string) model.OSCurrency {
	version, ok := parseVersion(osVersion)
	if !ok {
		return model.OSUnknown
	}

	for _, rule := range rules {
		if !strings.EqualFold(string(rule.OSType), string(osType)) {
			continue
		}

		if unsupported, ok := parseVersion(rule.UnsupportedBelow); ok && compareVersions(version, unsupported) < 0 {
			return model.OSUnsupported
		}

		if aging, ok := parseVersion(rule.AgingBelow); ok && compareVersions(version, aging) < 0 {
			return model.OSAging
		}

		return model.OSCurrent
	}

	return model.OSUnknown
}

// parseVersion extracts the first dotted numeric version in s,
// "macOS 14.4.1" and "10.0.22631.3447" both parse.
func parseVersion(s string) ([]int, bool) {
	match := versionPattern.FindString(s)
	if match == "" {
		return nil, false
	}

	parts := strings.Split(match, ".")
	version := make([]int, 0, len(parts))

	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, false
		}

		version = append(version, n)
	}

	return version, true
}

// compareVersions compares dotted versions component wise, missing components are 0.
func compareVersions(a, b []int) int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}

	for i := 0; i < n; i++ {
		var x, y int
		if i < len(a) {
			x = a[i]
		}

		if i < len(b) {
			y = b[i]
		}

		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
	}

	return 0
}
