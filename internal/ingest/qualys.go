package ingest

import (
	"regexp"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/exp/slices"

	"github.com/metal-toolbox/fleetdash/internal/model"
)

const (
	maxTruRisk  = 1000
	maxTopCVEs  = 5
	severityMax = 5
	severityHi  = 4
)

var cvePattern = regexp.MustCompile(`(?i)CVE-\d{4}-\d+`)

// scanHost aggregates the vulnerability rows of one scanned host.
type scanHost struct {
	AgentID      string
	Hostname     string
	SerialNumber string
	IPAddress    string
	truRisk      *int
	vulns        []model.Vulnerability
	lastScan     *time.Time
}

// parseQualys returns the scanned hosts of a Qualys export, one row per finding.
//
// A row with a host identifier and no finding records a host scanned clean.
func parseQualys(data []byte) ([]*scanHost, *multierror.Error, error) {
	t, err := parseTable(data)
	if err != nil {
		return nil, nil, err
	}

	agentColumns := []string{"Agent ID", "Asset ID", "Host ID"}
	hostColumns := []string{"Hostname", "DNS Name", "NetBIOS Name", "DNS"}
	serialColumns := []string{"Serial Number", "Serial"}

	if err := t.require(append(append(append([]string{}, agentColumns...), hostColumns...), serialColumns...)); err != nil {
		return nil, nil, err
	}

	var warnings *multierror.Error

	hosts := []*scanHost{}
	byKey := map[string]*scanHost{}

	for _, r := range t.rows {
		agentID := r.get(agentColumns...)
		hostname := r.get(hostColumns...)
		serial := strings.ToUpper(r.get(serialColumns...))

		key := agentID
		if key == "" {
			key = "serial:" + serial
		}

		if agentID == "" && serial == "" {
			key = "host:" + strings.ToLower(hostname)
		}

		if agentID == "" && serial == "" && hostname == "" {
			warnings = multierror.Append(warnings, r.skip("no agent ID, hostname or serial number"))
			continue
		}

		h, exists := byKey[key]
		if !exists {
			h = &scanHost{AgentID: agentID}
			byKey[key] = h
			hosts = append(hosts, h)
		}

		h.add(r, hostname, serial)
	}

	return hosts, warnings, nil
}

func (h *scanHost) add(r row, hostname, serial string) {
	if h.Hostname == "" {
		h.Hostname = hostname
	}

	if h.SerialNumber == "" {
		h.SerialNumber = serial
	}

	if h.IPAddress == "" {
		h.IPAddress = r.get("IP Address", "IP")
	}

	if score, ok := parseInt(r.get("TruRisk Score", "TruRisk", "Asset Risk Score")); ok {
		score = clampTruRisk(score)
		if h.truRisk == nil || score > *h.truRisk {
			h.truRisk = &score
		}
	}

	if scanned := parseDatePtr(r.get("Last Scanned", "Last Detected", "Last Scan Date")); scanned != nil {
		if h.lastScan == nil || scanned.After(*h.lastScan) {
			h.lastScan = scanned
		}
	}

	title := r.get("Title", "QID Title", "Vulnerability")
	cve := r.get("CVE ID", "CVE", "CVE IDs")

	if title == "" && cve == "" {
		return
	}

	severity, _ := parseInt(r.get("Severity", "Sev"))

	h.vulns = append(h.vulns, model.Vulnerability{
		Title:    title,
		CVEID:    cve,
		Severity: severity,
		Category: r.get("Category", "Type"),
	})
}

// merge folds other into h, used when several scanned hosts resolve to the same device.
func (h *scanHost) merge(other *scanHost) {
	if h.AgentID == "" {
		h.AgentID = other.AgentID
	}

	if h.IPAddress == "" {
		h.IPAddress = other.IPAddress
	}

	if other.truRisk != nil && (h.truRisk == nil || *other.truRisk > *h.truRisk) {
		h.truRisk = other.truRisk
	}

	if other.lastScan != nil && (h.lastScan == nil || other.lastScan.After(*h.lastScan)) {
		h.lastScan = other.lastScan
	}

	h.vulns = append(h.vulns, other.vulns...)
}

func clampTruRisk(score int) int {
	switch {
	case score < 0:
		return 0
	case score > maxTruRisk:
		return maxTruRisk
	default:
		return score
	}
}

// security returns the device security attributes aggregated over the host findings.
func (h *scanHost) security() *model.Security {
	s := &model.Security{
		QualysAgentID:      h.AgentID,
		TruRiskScore:       h.truRisk,
		VulnerabilityCount: len(h.vulns),
		LastVulnScan:       h.lastScan,
		IPAddress:          h.IPAddress,
	}

	if s.QualysAgentID == "" {
		s.QualysAgentID = h.Hostname
	}

	if len(h.vulns) > 0 {
		s.Vulnerabilities = slices.Clone(h.vulns)
	}

	for _, v := range h.vulns {
		switch {
		case v.Severity >= severityMax:
			s.CriticalVulnCount++
			s.CriticalVulnCount5++
		case v.Severity == severityHi:
			s.CriticalVulnCount++
			s.HighVulnCount++
		}
	}

	s.TopCVEs = topCVEs(h.vulns)

	return s
}

// topCVEs returns up to five distinct CVE IDs, most severe findings first.
func topCVEs(vulns []model.Vulnerability) []string {
	sorted := slices.Clone(vulns)
	slices.SortStableFunc(sorted, func(a, b model.Vulnerability) int { return b.Severity - a.Severity })

	cves := []string{}

	for _, v := range sorted {
		for _, cve := range cvePattern.FindAllString(v.CVEID, -1) {
			cve = strings.ToUpper(cve)
			if slices.Contains(cves, cve) {
				continue
			}

			cves = append(cves, cve)

			if len(cves) == maxTopCVEs {
				return cves
			}
		}
	}

	if len(cves) == 0 {
		return nil
	}

	return cves
}
