package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	testcases := []struct {
		in     string
		want   time.Time
		wantOk bool
	}{
		{"2026-05-22T10:00:00Z", time.Date(2026, 5, 22, 10, 0, 0, 0, time.UTC), true},
		{"2026-05-22T12:00:00+02:00", time.Date(2026, 5, 22, 10, 0, 0, 0, time.UTC), true},
		{"2026-05-30 09:00:00", time.Date(2026, 5, 30, 9, 0, 0, 0, time.UTC), true},
		{"2025-11-30", time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC), true},
		{"5/3/2024 1:30 PM", time.Date(2024, 5, 3, 13, 30, 0, 0, time.UTC), true},
		{"Jan 2, 2024", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), true},
		{"  ", time.Time{}, false},
		{"never", time.Time{}, false},
	}

	for _, tc := range testcases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := parseDate(tc.in)
			assert.Equal(t, tc.wantOk, ok)
			assert.True(t, tc.want.Equal(got), got.String())
		})
	}

	assert.Nil(t, parseDatePtr(""))
	assert.NotNil(t, parseDatePtr("2024-01-02"))
}

func TestParseInt(t *testing.T) {
	testcases := []struct {
		in     string
		want   int
		wantOk bool
	}{
		{"350", 350, true},
		{"1,024 MB", 1024, true},
		{"4.6", 5, true},
		{"-3", -3, true},
		{"", 0, false},
		{"n/a", 0, false},
	}

	for _, tc := range testcases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := parseInt(tc.in)
			assert.Equal(t, tc.wantOk, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGigabytes(t *testing.T) {
	testcases := []struct {
		name  string
		in    string
		perGB float64
		want  string
	}{
		{"megabytes", "16384", mbPerGB, "16 GB"},
		{"megabytes rounded", "476940", mbPerGB, "466 GB"},
		{"bytes", "34359738368", bytesPerGB, "32 GB"},
		{"unit kept", "512 GB", mbPerGB, "512 GB"},
		{"terabytes kept", "1 TB", mbPerGB, "1 TB"},
		{"empty", "", mbPerGB, ""},
		{"zero", "0", mbPerGB, ""},
		{"garbage", "unknown", mbPerGB, ""},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, gigabytes(tc.in, tc.perGB))
		})
	}
}
