package valuation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDepreciatedValue(t *testing.T) {
	testCases := []struct {
		name     string
		msrp     float64
		age      float64
		expected float64
	}{
		{"new device keeps msrp", 1500, 0, 1500},
		{"end of useful life is residual", 1500, 5, 150},
		{"beyond useful life is floored at residual", 1500, 10, 150},
		{"half way", 1000, 2.5, 550},
		{"rounds to whole dollars", 1299, 1, 1065},
		{"zero msrp", 0, 2, 0},
		{"negative msrp", -100, 2, 0},
		{"negative age", 1500, -1, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, DepreciatedValue(tc.msrp, tc.age))
		})
	}
}

func TestDepreciatedValueBoundsAndMonotonic(t *testing.T) {
	for _, msrp := range []float64{599, 999, 1299, 1500, 6999} {
		residual := msrp * DefaultResidualPercent / 100
		previous := msrp

		for age := 0.0; age <= 12; age += 0.1 {
			got := DepreciatedValue(msrp, age)

			assert.GreaterOrEqual(t, got, residual, "msrp %v age %v", msrp, age)
			assert.LessOrEqual(t, got, msrp, "msrp %v age %v", msrp, age)
			assert.LessOrEqual(t, got, previous, "msrp %v age %v", msrp, age)

			previous = got
		}
	}
}

func TestScheduleNormalizesInvalidParameters(t *testing.T) {
	s := Schedule{UsefulLife: 0, ResidualPercent: 150}
	assert.Equal(t, DepreciatedValue(1500, 2), s.DepreciatedValue(1500, 2))

	s = Schedule{UsefulLife: 4, ResidualPercent: 0}
	assert.Equal(t, float64(0), s.DepreciatedValue(1200, 4))
	assert.Equal(t, float64(600), s.DepreciatedValue(1200, 2))
}

func TestEstimatedMSRP(t *testing.T) {
	testCases := []struct {
		name     string
		code     string
		friendly string
		expected float64
	}{
		{"catalog msrp", "Mac15,13", "", 1299},
		{"catalog msrp wins over friendly name", "21HK003MUS", "MacBook Pro", 1399},
		{"family from catalog name", "MacBookPro99,9", "", 1999},
		{"family from friendly name", "unknown-code", "Dell Latitude 7440", 1199},
		{"family keyword order", "x", "Mac Studio", 1999},
		{"surface family", "Surface Laptop Studio", "", 999},
		{"default", "VMware7,1", "", DefaultMSRP},
		{"empty", "", "", DefaultMSRP},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, EstimatedMSRP(tc.code, tc.friendly))
		})
	}
}

func TestAgeFromModel(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 2.0, AgeFromModel("Mac15,13", now))
	assert.Equal(t, 4.0, AgeFromModel("Mac14,2", now))
	assert.Equal(t, 0.0, AgeFromModel("VMware7,1", now))
	assert.Equal(t, 0.0, AgeFromModel("", now))

	// release date in the future of now
	early := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0.0, AgeFromModel("Mac15,13", early))

	december := time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2.5, AgeFromModel("Mac15,13", december))
}

func TestDeviceValue(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	got := DeviceValue("Mac15,13", "", now)
	assert.Equal(t, 1299.0, got.MSRP)
	assert.Equal(t, 2.0, got.AgeInYears)
	// 1299 - (1169.1 / 5 * 2) = 831.36
	assert.Equal(t, 831.0, got.CurrentValue)
	assert.Equal(t, 36, got.DepreciationPercent)

	unknown := DeviceValue("VMware7,1", "", now)
	assert.Equal(t, DefaultMSRP, unknown.MSRP)
	assert.Equal(t, DefaultMSRP, unknown.CurrentValue)
	assert.Equal(t, 0, unknown.DepreciationPercent)
}
