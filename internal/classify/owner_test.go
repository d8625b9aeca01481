package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/metal-toolbox/fleetdash/internal/model"
)

func testDirectory() *Directory {
	d := NewDirectory(
		User{ComputingID: "abc1d", Name: "Ada Byron", Email: "abc1d@example.edu", Department: "Research"},
		User{ComputingID: "xy9z", Name: "Xavier Yu", Email: "xavier.yu@example.edu"},
	)

	d.AddProvisioner("fbs-provisioner@example.edu")

	return d
}

func TestMatchDeviceName(t *testing.T) {
	d := testDirectory()

	testCases := []struct {
		name     string
		device   string
		expected string
		found    bool
	}{
		{"middle token", "FBS-abc1d-MBA-2023", "abc1d", true},
		{"case insensitive", "fbs-ABC1D-laptop", "abc1d", true},
		{"second inner token", "FBS-LAB-xy9z-01", "xy9z", true},
		{"outer tokens are not ids", "abc1d-MBA", "", false},
		{"unknown id", "FBS-zzz9q-MBA-2023", "", false},
		{"no separators", "abc1d", "", false},
		{"empty", "", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			u, found := d.MatchDeviceName(tc.device)
			assert.Equal(t, tc.found, found)
			assert.Equal(t, tc.expected, u.ComputingID)
		})
	}
}

func TestResolveOwner(t *testing.T) {
	d := testDirectory()

	testCases := []struct {
		name     string
		device   string
		hint     Hint
		expected Owner
	}{
		{
			name:     "device name wins over export user",
			device:   "FBS-abc1d-MBA-2023",
			hint:     Hint{Username: "xy9z"},
			expected: Owner{Name: "Ada Byron", Email: "abc1d@example.edu", Department: "Research", Matched: true},
		},
		{
			name:     "export email",
			device:   "LAPTOP-01",
			hint:     Hint{Email: "Xavier.Yu@example.edu"},
			expected: Owner{Name: "Xavier Yu", Email: "xavier.yu@example.edu", Matched: true},
		},
		{
			name:     "export upn local part",
			device:   "LAPTOP-01",
			hint:     Hint{Username: "abc1d@example.edu"},
			expected: Owner{Name: "Ada Byron", Email: "abc1d@example.edu", Department: "Research", Matched: true},
		},
		{
			name:     "provisioning account",
			device:   "FBS-LOANER-07",
			hint:     Hint{Username: "FBS-Provisioner@example.edu"},
			expected: Owner{Name: ITAdmin},
		},
		{
			name:     "unmatched export user is unassigned",
			device:   "LAPTOP-01",
			hint:     Hint{Username: "guest", Name: "Guest User", Email: "guest@example.org"},
			expected: Owner{Name: model.Unassigned, ExportUser: "Guest User <guest@example.org>"},
		},
		{
			name:     "unmatched upn only",
			device:   "FBS-zzz9q-MBA-2023",
			hint:     Hint{Username: "zzz9q@example.edu"},
			expected: Owner{Name: model.Unassigned, ExportUser: "zzz9q@example.edu"},
		},
		{
			name:     "unmatched email only",
			device:   "LAPTOP-01",
			hint:     Hint{Email: "visitor@example.org"},
			expected: Owner{Name: model.Unassigned, ExportUser: "visitor@example.org"},
		},
		{
			name:     "unassigned",
			device:   "LAPTOP-01",
			expected: Owner{Name: model.Unassigned},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, d.ResolveOwner(tc.device, tc.hint))
		})
	}
}

func TestDirectoryAddMerges(t *testing.T) {
	d := NewDirectory(User{ComputingID: "abc1d", Name: "Ada Byron"})

	// enrichment keyed by email only, the computing ID is the local part
	d.Add(User{Email: "abc1d@example.edu", Department: "Research"})
	d.Add(User{})

	assert.Equal(t, 1, d.Len())

	u, ok := d.ByComputingID("ABC1D")
	assert.True(t, ok)
	assert.Equal(t, User{ComputingID: "abc1d", Name: "Ada Byron", Email: "abc1d@example.edu", Department: "Research"}, u)

	u, ok = d.ByEmail("abc1d@example.edu")
	assert.True(t, ok)
	assert.Equal(t, "Research", u.Department)
}
