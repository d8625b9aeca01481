package summary

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/metal-toolbox/fleetdash/internal/model"
)

var ErrUnknownView = errors.New("unknown view")

// View is a named dashboard device table filter.
type View string

const (
	ViewAttention   View = "attention"
	ViewAll         View = "all"
	ViewCritical    View = "critical"
	ViewWarning     View = "warning"
	ViewGood        View = "good"
	ViewInactive    View = "inactive"
	ViewActive      View = "active"
	ViewJamf        View = "jamf"
	ViewIntune      View = "intune"
	ViewReplacement View = "replacement"
	ViewRetired     View = "retired"
)

// Views returns the supported views, the first is the default.
func Views() []View {
	return []View{
		ViewAttention,
		ViewAll,
		ViewCritical,
		ViewWarning,
		ViewGood,
		ViewInactive,
		ViewActive,
		ViewJamf,
		ViewIntune,
		ViewReplacement,
		ViewRetired,
	}
}

// ParseView returns the View named s, an empty s selects the attention view.
func ParseView(s string) (View, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ViewAttention, nil
	}

	for _, v := range Views() {
		if string(v) == s {
			return v, nil
		}
	}

	return "", errors.Wrap(ErrUnknownView, s)
}

// Match returns true when d belongs to the view.
func (v View) Match(d *model.Device) bool {
	switch v {
	case ViewAll:
		return true
	case ViewCritical:
		return d.Status == model.StatusCritical
	case ViewWarning:
		return d.Status == model.StatusWarning
	case ViewGood:
		return d.Status == model.StatusGood
	case ViewInactive:
		return d.Status == model.StatusInactive
	case ViewActive:
		return d.ActivityStatus == model.ActivityActive
	case ViewJamf:
		return d.Source == model.SourceJamf
	case ViewIntune:
		return d.Source == model.SourceIntune
	case ViewReplacement:
		return d.ReplacementRecommended
	case ViewRetired:
		return d.IsRetired
	default:
		return d.Status == model.StatusCritical || d.Status == model.StatusWarning || d.Status == model.StatusInactive
	}
}

// Filter selects devices for the device table.
type Filter struct {
	View View
	// Search matches case-insensitively against name, owner, owner email,
	// additional owner, serial number, department and model.
	Search string
	// Owner matches case-insensitively against owner, owner email, additional owner and export user.
	Owner string
	// ExcludeRetired drops retired devices, it has no effect on the retired view.
	ExcludeRetired bool
	// Limit caps the number of devices returned, zero or less returns all.
	Limit int
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}

func matchAny(needle string, fields ...string) bool {
	for _, f := range fields {
		if containsFold(f, needle) {
			return true
		}
	}

	return false
}

// Apply returns the devices selected by the filter in their original order.
func (f Filter) Apply(devices []model.Device) []model.Device {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	owner := strings.ToLower(strings.TrimSpace(f.Owner))

	out := []model.Device{}

	for i := range devices {
		d := &devices[i]

		if f.ExcludeRetired && f.View != ViewRetired && d.IsRetired {
			continue
		}

		if !f.View.Match(d) {
			continue
		}

		if search != "" && !matchAny(search,
			d.Name, d.Owner, d.OwnerEmail, d.AdditionalOwner, d.ExportUser, d.SerialNumber, d.Department, d.Model, d.FriendlyModel,
		) {
			continue
		}

		if owner != "" && !matchAny(owner, d.Owner, d.OwnerEmail, d.AdditionalOwner, d.ExportUser) {
			continue
		}

		out = append(out, *d)

		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}

	return out
}

// Find returns the device with the given ID or serial number.
func Find(devices []model.Device, id string) (model.Device, bool) {
	id = strings.TrimSpace(id)

	for i := range devices {
		if devices[i].ID == id || (devices[i].SerialNumber != "" && strings.EqualFold(devices[i].SerialNumber, id)) {
			return devices[i], true
		}
	}

	return model.Device{}, false
}
