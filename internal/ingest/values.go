package ingest

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	mbPerGB    = 1024
	bytesPerGB = 1 << 30
)

// dateLayouts are the timestamp formats seen across the platform exports, tried in order.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
	"1/2/2006",
	"Jan 2, 2006 15:04",
	"Jan 2, 2006",
	"2 Jan 2006",
}

var leadingNumber = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// parseDate returns the UTC timestamp for s, false when s is empty or in no known layout.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}

	return time.Time{}, false
}

func parseDatePtr(s string) *time.Time {
	t, ok := parseDate(s)
	if !ok {
		return nil
	}

	return &t
}

// parseNumber returns the first number in s, "1,024 MB" parses as 1024.
func parseNumber(s string) (float64, bool) {
	match := leadingNumber.FindString(strings.ReplaceAll(s, ",", ""))
	if match == "" {
		return 0, false
	}

	f, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}

	return f, true
}

func parseInt(s string) (int, bool) {
	f, ok := parseNumber(s)
	if !ok {
		return 0, false
	}

	return int(math.Round(f)), true
}

// gigabytes formats a capacity as whole gigabytes, values with a unit are returned as is.
func gigabytes(s string, perGB float64) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	if strings.ContainsAny(s, "GgTt") {
		return s
	}

	f, ok := parseNumber(s)
	if !ok || f <= 0 {
		return ""
	}

	return fmt.Sprintf("%d GB", int(math.Round(f/perGB)))
}
