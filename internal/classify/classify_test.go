package classify

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metal-toolbox/fleetdash/internal/model"
)

var now = time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)

func ago(d time.Duration) time.Time {
	return now.Add(-d)
}

func agoPtr(d time.Duration) *time.Time {
	t := ago(d)
	return &t
}

const day = 24 * time.Hour

func TestClassify(t *testing.T) {
	testCases := []struct {
		name              string
		device            model.Device
		expectedStatus    model.Status
		expectedAge       float64
		expectedAgeSource model.AgeSource
		expectedDays      *int
		expectedCurrency  model.OSCurrency
		expectedReplace   bool
	}{
		{
			name: "inactive half year old device",
			device: model.Device{
				Name:         "FBS-abc1d-MBA-2025",
				Model:        "Mac15,13",
				OSType:       model.OSTypeMacOS,
				OSVersion:    "15.2",
				PurchaseDate: agoPtr(183 * day),
				LastSeen:     ago(45 * day),
			},
			expectedStatus:    model.StatusInactive,
			expectedAge:       0.5,
			expectedAgeSource: model.AgeFromPurchaseDate,
			expectedDays:      days(45),
			expectedCurrency:  model.OSCurrent,
		},
		{
			name: "age inferred from model release year",
			device: model.Device{
				Model:     "Mac15,13",
				OSType:    model.OSTypeMacOS,
				OSVersion: "14.5",
				LastSeen:  ago(2 * day),
			},
			expectedStatus:    model.StatusWarning,
			expectedAge:       2.0,
			expectedAgeSource: model.AgeFromModel,
			expectedDays:      days(2),
			expectedCurrency:  model.OSAging,
		},
		{
			name: "last update date takes precedence over last seen",
			device: model.Device{
				Model:          "21HK003MUS",
				OSType:         model.OSTypeWindows,
				OSVersion:      "10.0.26100.2033",
				PurchaseDate:   agoPtr(1461 * day),
				LastSeen:       ago(1 * day),
				LastUpdateDate: agoPtr(40 * day),
			},
			expectedStatus:    model.StatusInactive,
			expectedAge:       4.0,
			expectedAgeSource: model.AgeFromPurchaseDate,
			expectedDays:      days(40),
			expectedCurrency:  model.OSCurrent,
			expectedReplace:   true,
		},
		{
			name: "six year old device is not flagged for replacement",
			device: model.Device{
				Model:        "20XW00ABUS",
				OSType:       model.OSTypeWindows,
				OSVersion:    "10.0.19045",
				PurchaseDate: agoPtr(2192 * day),
				LastSeen:     ago(3 * day),
			},
			expectedStatus:    model.StatusCritical,
			expectedAge:       6.0,
			expectedAgeSource: model.AgeFromPurchaseDate,
			expectedDays:      days(3),
			expectedCurrency:  model.OSUnsupported,
		},
		{
			name: "unrecognized model without purchase date",
			device: model.Device{
				Model:     "VMware7,1",
				OSType:    model.OSTypeMacOS,
				OSVersion: "15.1",
				LastSeen:  ago(1 * day),
			},
			expectedStatus:    model.StatusUnknown,
			expectedAgeSource: model.AgeUnknown,
			expectedDays:      days(1),
			expectedCurrency:  model.OSCurrent,
		},
		{
			name: "never checked in",
			device: model.Device{
				Model:     "Mac15,13",
				OSType:    model.OSTypeMacOS,
				OSVersion: "garbage",
			},
			expectedStatus:    model.StatusInactive,
			expectedAge:       2.0,
			expectedAgeSource: model.AgeFromModel,
			expectedCurrency:  model.OSUnknown,
		},
		{
			name: "check-in in the future is clamped",
			device: model.Device{
				Model:        "Mac15,13",
				OSType:       model.OSTypeMacOS,
				OSVersion:    "15.3",
				PurchaseDate: agoPtr(-10 * day),
				LastSeen:     ago(-2 * day),
			},
			expectedStatus:    model.StatusGood,
			expectedAge:       0,
			expectedAgeSource: model.AgeFromPurchaseDate,
			expectedDays:      days(0),
			expectedCurrency:  model.OSCurrent,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.device, DefaultPolicy(), now)

			assert.Equal(t, tc.expectedStatus, got.Status)
			assert.Equal(t, tc.expectedAge, got.AgeInYears)
			assert.Equal(t, tc.expectedAgeSource, got.AgeSource)
			assert.Equal(t, tc.expectedDays, got.DaysSinceUpdate)
			assert.Equal(t, tc.expectedCurrency, got.OSCurrency)
			assert.Equal(t, tc.expectedReplace, got.ReplacementRecommended)
			assert.NotEmpty(t, got.StatusReasons)
			assert.GreaterOrEqual(t, got.AgeInYears, 0.0)
		})
	}
}

func TestClassifyIsIdempotent(t *testing.T) {
	raw := model.Device{
		ID:           "C02XYZ",
		Name:         "FBS-abc1d-MBP-2022",
		Model:        "MacBookPro18,3",
		OSType:       model.OSTypeMacOS,
		OSVersion:    "13.6",
		PurchaseDate: agoPtr(1500 * day),
		LastSeen:     ago(5 * day),
	}

	once := Classify(raw, DefaultPolicy(), now)
	twice := Classify(once, DefaultPolicy(), now)
	again := Classify(raw, DefaultPolicy(), now)

	first, err := json.Marshal(once)
	require.NoError(t, err)

	second, err := json.Marshal(twice)
	require.NoError(t, err)

	third, err := json.Marshal(again)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.Equal(t, string(first), string(third))

	// the input record is left untouched
	assert.Empty(t, raw.Status)
	assert.Nil(t, raw.StatusReasons)
}

func TestClassifyIgnoresStaleClassification(t *testing.T) {
	stale := model.Device{
		Model:                  "Mac15,13",
		OSType:                 model.OSTypeMacOS,
		OSVersion:              "15.2",
		LastSeen:               ago(1 * day),
		PurchaseDate:           agoPtr(100 * day),
		Status:                 model.StatusCritical,
		StatusReasons:          []string{"stale"},
		ReplacementRecommended: true,
		ReplacementReason:      "stale",
	}

	got := Classify(stale, DefaultPolicy(), now)

	assert.Equal(t, model.StatusGood, got.Status)
	assert.Equal(t, []string{"Device is under 2 years old"}, got.StatusReasons)
	assert.False(t, got.ReplacementRecommended)
	assert.Empty(t, got.ReplacementReason)
}
