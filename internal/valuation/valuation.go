// Package valuation estimates the current market value of a device by straight-line depreciation.
package valuation

import (
	"math"
	"strings"
	"time"

	"github.com/metal-toolbox/fleetdash/internal/catalog"
	"github.com/metal-toolbox/fleetdash/internal/model"
)

const (
	DefaultUsefulLife      = 5.0
	DefaultResidualPercent = 10.0
	DefaultMSRP            = 1000.0

	daysPerYear = 365.25
)

// categoryMSRP is the retail price estimate for a model family, matched by
// substring against the friendly name in this order.
var categoryMSRP = []struct {
	keyword string
	msrp    float64
}{
	{"MacBook Air", 1199},
	{"MacBook Pro", 1999},
	{"iMac", 1299},
	{"Mac mini", 699},
	{"Mac Studio", 1999},
	{"Mac Pro", 6999},
	{"ThinkPad", 1299},
	{"Latitude", 1199},
	{"OptiPlex", 899},
	{"Surface", 999},
}

// Schedule defines the depreciation parameters.
type Schedule struct {
	// UsefulLife is the number of years over which a device depreciates.
	UsefulLife float64 `mapstructure:"useful_life"`
	// ResidualPercent is the share of the MSRP a device is never valued below.
	ResidualPercent float64 `mapstructure:"residual_percent"`
	// DefaultMSRP is used when neither the model nor its family has a known price.
	DefaultMSRP float64 `mapstructure:"default_msrp"`
}

// DefaultSchedule returns a 5 year useful life with a 10% residual value.
func DefaultSchedule() Schedule {
	return Schedule{
		UsefulLife:      DefaultUsefulLife,
		ResidualPercent: DefaultResidualPercent,
		DefaultMSRP:     DefaultMSRP,
	}
}

func (s Schedule) normalized() Schedule {
	if s.UsefulLife <= 0 {
		s.UsefulLife = DefaultUsefulLife
	}

	if s.ResidualPercent < 0 || s.ResidualPercent > 100 {
		s.ResidualPercent = DefaultResidualPercent
	}

	if s.DefaultMSRP <= 0 {
		s.DefaultMSRP = DefaultMSRP
	}

	return s
}

// DepreciatedValue returns the current value of a device bought at msrp that is ageInYears old.
//
// The result never falls below the residual value and never exceeds msrp,
// a non positive msrp or a negative age yields 0.
func (s Schedule) DepreciatedValue(msrp, ageInYears float64) float64 {
	if msrp <= 0 || ageInYears < 0 || math.IsNaN(ageInYears) {
		return 0
	}

	s = s.normalized()

	residual := msrp * s.ResidualPercent / 100
	annual := (msrp - residual) / s.UsefulLife
	depreciation := annual * math.Min(ageInYears, s.UsefulLife)

	return math.Max(residual, math.Round(msrp-depreciation))
}

// EstimatedMSRP returns the catalog MSRP for the model, falling back to the
// model family estimate matched against friendlyName and then the default MSRP.
//
// When friendlyName is empty the catalog name for the model is used.
func (s Schedule) EstimatedMSRP(modelCode, friendlyName string) float64 {
	if msrp, ok := catalog.ModelMSRP(modelCode); ok {
		return float64(msrp)
	}

	name := friendlyName
	if name == "" {
		name = catalog.LookupModelName(modelCode)
	}

	for _, category := range categoryMSRP {
		if strings.Contains(name, category.keyword) {
			return category.msrp
		}
	}

	return s.normalized().DefaultMSRP
}

// Value composes the MSRP estimate and depreciation for a device of the given age.
func (s Schedule) Value(modelCode, friendlyName string, ageInYears float64) model.Value {
	msrp := s.EstimatedMSRP(modelCode, friendlyName)
	current := s.DepreciatedValue(msrp, ageInYears)

	depreciationPercent := 0
	if msrp > 0 {
		depreciationPercent = int(math.Round((msrp - current) / msrp * 100))
	}

	return model.Value{
		MSRP:                msrp,
		CurrentValue:        current,
		DepreciationPercent: depreciationPercent,
		AgeInYears:          ageInYears,
	}
}

// DeviceValue returns the value of a model at its catalog age on the given date.
func (s Schedule) DeviceValue(modelCode, friendlyName string, now time.Time) model.Value {
	return s.Value(modelCode, friendlyName, AgeFromModel(modelCode, now))
}

// DepreciatedValue applies the default schedule.
func DepreciatedValue(msrp, ageInYears float64) float64 {
	return DefaultSchedule().DepreciatedValue(msrp, ageInYears)
}

// EstimatedMSRP applies the default schedule.
func EstimatedMSRP(modelCode, friendlyName string) float64 {
	return DefaultSchedule().EstimatedMSRP(modelCode, friendlyName)
}

// DeviceValue applies the default schedule.
func DeviceValue(modelCode, friendlyName string, now time.Time) model.Value {
	return DefaultSchedule().DeviceValue(modelCode, friendlyName, now)
}

// AgeFromModel returns the age in years of a model on the given date assuming
// a June 1st release in its catalog release year.
//
// The age is rounded to one decimal and 0 when the release year is unknown.
func AgeFromModel(modelCode string, now time.Time) float64 {
	year := catalog.ModelReleaseYear(modelCode)
	if year == 0 {
		return 0
	}

	released := time.Date(year, time.June, 1, 0, 0, 0, 0, now.Location())

	return YearsBetween(released, now)
}

// YearsBetween returns the years elapsed from since to now rounded to one decimal, floored at 0.
func YearsBetween(since, now time.Time) float64 {
	years := now.Sub(since).Hours() / 24 / daysPerYear
	if years <= 0 {
		return 0
	}

	return math.Round(years*10) / 10
}
