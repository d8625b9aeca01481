package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metal-toolbox/fleetdash/internal/fixtures"
	"github.com/metal-toolbox/fleetdash/internal/model"
)

func TestParseQualys(t *testing.T) {
	hosts, warnings, err := parseQualys([]byte(fixtures.QualysCSV))
	require.NoError(t, err)
	assert.Nil(t, warnings)
	require.Len(t, hosts, 4)

	assert.Equal(t, []string{"qa-1", "qa-2", "qa-9", "qa-3"}, []string{
		hosts[0].AgentID, hosts[1].AgentID, hosts[2].AgentID, hosts[3].AgentID,
	})

	good := hosts[0].security()
	assert.Equal(t, "qa-1", good.QualysAgentID)
	assert.Equal(t, 3, good.VulnerabilityCount)
	assert.Equal(t, 2, good.CriticalVulnCount)
	assert.Equal(t, 1, good.CriticalVulnCount5)
	assert.Equal(t, 1, good.HighVulnCount)
	assert.Equal(t, []string{"CVE-2025-0001", "CVE-2025-0002", "CVE-2025-0003"}, good.TopCVEs)
	require.NotNil(t, good.TruRiskScore)
	assert.Equal(t, 350, *good.TruRiskScore)
	assert.Equal(t, "10.0.0.5", good.IPAddress)
	require.NotNil(t, good.LastVulnScan)
	assert.True(t, good.LastVulnScan.Equal(time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC)))

	clamped := hosts[1].security()
	require.NotNil(t, clamped.TruRiskScore)
	assert.Equal(t, maxTruRisk, *clamped.TruRiskScore)
	assert.Equal(t, "fbs-abc1d-mbp-2022.example.edu", hosts[1].Hostname)

	clean := hosts[3].security()
	assert.Equal(t, 0, clean.VulnerabilityCount)
	assert.Nil(t, clean.TruRiskScore)
	assert.Nil(t, clean.Vulnerabilities)
	assert.Nil(t, clean.TopCVEs)
}

func TestParseQualysGrouping(t *testing.T) {
	data := "Hostname,Serial Number,QID Title,Severity\n" +
		"mac-1,c02x,Finding A,3\n" +
		"mac-1-renamed,C02X,Finding B,4\n" +
		"kiosk,,Finding C,5\n" +
		"KIOSK,,Finding D,1\n" +
		",,Orphan,5\n"

	hosts, warnings, err := parseQualys([]byte(data))
	require.NoError(t, err)
	require.NotNil(t, warnings)
	assert.Len(t, warnings.Errors, 1)
	require.Len(t, hosts, 2)

	assert.Equal(t, "C02X", hosts[0].SerialNumber)
	assert.Equal(t, "mac-1", hosts[0].Hostname)
	assert.Len(t, hosts[0].vulns, 2)

	// no agent ID, the hostname identifies the host
	assert.Equal(t, "kiosk", hosts[1].security().QualysAgentID)
	assert.Len(t, hosts[1].vulns, 2)
}

func TestParseQualysMissingColumns(t *testing.T) {
	_, _, err := parseQualys([]byte("QID Title,Severity\nFinding,5\n"))
	assert.ErrorIs(t, err, ErrCSVHeader)
}

func TestClampTruRisk(t *testing.T) {
	assert.Equal(t, 0, clampTruRisk(-10))
	assert.Equal(t, 500, clampTruRisk(500))
	assert.Equal(t, 1000, clampTruRisk(1000))
	assert.Equal(t, 1000, clampTruRisk(4200))
}

func TestTopCVEs(t *testing.T) {
	testcases := []struct {
		name  string
		vulns []model.Vulnerability
		want  []string
	}{
		{
			"none",
			[]model.Vulnerability{{Title: "Weak cipher", Severity: 2}},
			nil,
		},
		{
			"most severe first, distinct, uppercased",
			[]model.Vulnerability{
				{CVEID: "cve-2024-0001", Severity: 2},
				{CVEID: "CVE-2024-0002; CVE-2024-0001", Severity: 5},
				{CVEID: "CVE-2024-0003", Severity: 4},
			},
			[]string{"CVE-2024-0002", "CVE-2024-0001", "CVE-2024-0003"},
		},
		{
			"limited to five",
			[]model.Vulnerability{
				{CVEID: "CVE-2024-0001, CVE-2024-0002, CVE-2024-0003", Severity: 3},
				{CVEID: "CVE-2024-0004 CVE-2024-0005 CVE-2024-0006", Severity: 3},
			},
			[]string{"CVE-2024-0001", "CVE-2024-0002", "CVE-2024-0003", "CVE-2024-0004", "CVE-2024-0005"},
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, topCVEs(tc.vulns))
		})
	}
}

func TestScanHostMerge(t *testing.T) {
	low, high := 100, 700
	older := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)

	h := &scanHost{Hostname: "mac-1", truRisk: &low, lastScan: &older, vulns: []model.Vulnerability{{Title: "a"}}}
	h.merge(&scanHost{AgentID: "qa-7", IPAddress: "10.1.1.1", truRisk: &high, lastScan: &newer, vulns: []model.Vulnerability{{Title: "b"}}})

	assert.Equal(t, "qa-7", h.AgentID)
	assert.Equal(t, "10.1.1.1", h.IPAddress)
	assert.Equal(t, high, *h.truRisk)
	assert.True(t, h.lastScan.Equal(newer))
	assert.Len(t, h.vulns, 2)
}
