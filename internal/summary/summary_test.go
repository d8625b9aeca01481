package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metal-toolbox/fleetdash/internal/fixtures"
	"github.com/metal-toolbox/fleetdash/internal/model"
)

func TestSummarize(t *testing.T) {
	got := Summarize(fixtures.NewDevices(), Options{})

	assert.Equal(t, 6, got.TotalDevices)
	assert.Equal(t, 2, got.CriticalCount)
	assert.Equal(t, 1, got.WarningCount)
	assert.Equal(t, 1, got.GoodCount)
	assert.Equal(t, 1, got.InactiveCount)
	assert.Equal(t, 1, got.UnknownCount)
	assert.Equal(t, 5, got.ActiveDevices)
	assert.Equal(t, 1, got.DevicesNeedingReplacement)
	assert.Equal(t, 3, got.OutOfDateDevices)
	assert.Equal(t, 1, got.RetiredCount)
	assert.Equal(t, 2.7, got.AverageAge)
	assert.Equal(t, 4814.0, got.TotalEstimatedValue)
	assert.Equal(t, DefaultReplacementUnitCost, got.ReplacementBudget)

	require.NotNil(t, got.DevicesWithQualysData)
	assert.Equal(t, 3, *got.DevicesWithQualysData)
	require.NotNil(t, got.TotalVulnerabilities)
	assert.Equal(t, 32, *got.TotalVulnerabilities)
	require.NotNil(t, got.CriticalVulnerabilities)
	assert.Equal(t, 12, *got.CriticalVulnerabilities)
	require.NotNil(t, got.AverageTruRiskScore)
	assert.Equal(t, 600, *got.AverageTruRiskScore)
}

func TestSummarizeExcludeRetired(t *testing.T) {
	got := Summarize(fixtures.NewDevices(), Options{ExcludeRetired: true, ReplacementUnitCost: 2000})

	assert.Equal(t, 5, got.TotalDevices)
	assert.Equal(t, 0, got.UnknownCount)
	assert.Equal(t, 4, got.ActiveDevices)
	assert.Equal(t, 1, got.RetiredCount)
	assert.Equal(t, 3814.0, got.TotalEstimatedValue)
	assert.Equal(t, 2000.0, got.ReplacementBudget)
}

func TestSummarizeWithoutQualysData(t *testing.T) {
	devices := fixtures.NewDevices()
	for i := range devices {
		devices[i].Security = nil
	}

	got := Summarize(devices, Options{})

	assert.Nil(t, got.DevicesWithQualysData)
	assert.Nil(t, got.TotalVulnerabilities)
	assert.Nil(t, got.CriticalVulnerabilities)
	assert.Nil(t, got.AverageTruRiskScore)
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, model.Summary{}, Summarize(nil, Options{}))
}

func TestSummarizeStatusCountsAddUp(t *testing.T) {
	devices := fixtures.NewDevices()

	// records with an unset or unexpected status are counted as unknown
	devices = append(devices, model.Device{ID: "blank"}, model.Device{ID: "odd", Status: "bogus"})

	for _, opts := range []Options{{}, {ExcludeRetired: true}} {
		got := Summarize(devices, opts)

		assert.Equal(t,
			got.TotalDevices,
			got.CriticalCount+got.WarningCount+got.GoodCount+got.InactiveCount+got.UnknownCount,
		)
	}
}
