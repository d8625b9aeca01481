// Package classify assigns lifecycle status, activity and replacement recommendations to merged device records.
package classify

import (
	"math"
	"time"

	"github.com/metal-toolbox/fleetdash/internal/catalog"
	"github.com/metal-toolbox/fleetdash/internal/model"
	"github.com/metal-toolbox/fleetdash/internal/valuation"
)

// Classify returns a copy of d with its derived age, OS currency and
// classification fields recomputed for the given time.
//
// Any previously computed classification on d is ignored, classifying the
// result again with the same policy and time returns an identical record.
func Classify(d model.Device, p Policy, now time.Time) model.Device {
	p = p.WithDefaults()

	d.DaysSinceUpdate = DaysSinceUpdate(d, now)
	d.AgeInYears, d.AgeSource = Age(d, now)
	d.OSCurrency = OSCurrency(p.OSRules, d.OSType, d.OSVersion)

	result := p.Evaluate(Input{
		AgeInYears:      d.AgeInYears,
		AgeKnown:        d.AgeKnown(),
		DaysSinceUpdate: d.DaysSinceUpdate,
		OSCurrency:      d.OSCurrency,
	})

	d.Status = result.Status
	d.StatusReasons = result.Reasons
	d.ActivityStatus = result.Activity
	d.ReplacementRecommended = result.ReplacementRecommended
	d.ReplacementReason = result.ReplacementReason

	return d
}

// DaysSinceUpdate returns the whole days elapsed since the last inventory update,
// or the last check-in when no update was recorded.
//
// nil is returned when neither timestamp is set.
func DaysSinceUpdate(d model.Device, now time.Time) *int {
	var from time.Time

	switch {
	case d.LastUpdateDate != nil && !d.LastUpdateDate.IsZero():
		from = *d.LastUpdateDate
	case !d.LastSeen.IsZero():
		from = d.LastSeen
	default:
		return nil
	}

	days := int(math.Floor(now.Sub(from).Hours() / 24))
	if days < 0 {
		days = 0
	}

	return &days
}

// Age returns the device age in years from its purchase date, falling back to the
// catalog release year of its model.
func Age(d model.Device, now time.Time) (float64, model.AgeSource) {
	if d.PurchaseDate != nil && !d.PurchaseDate.IsZero() {
		return valuation.YearsBetween(*d.PurchaseDate, now), model.AgeFromPurchaseDate
	}

	if catalog.ModelReleaseYear(d.Model) != 0 {
		return valuation.AgeFromModel(d.Model, now), model.AgeFromModel
	}

	return 0, model.AgeUnknown
}
