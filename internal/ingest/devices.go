package ingest

import (
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/metal-toolbox/fleetdash/internal/classify"
	"github.com/metal-toolbox/fleetdash/internal/model"
)

// deviceRecord is a management platform row, its exported fields are copied onto
// model.Device by name.
//
// nolint:govet // fieldalignment - struct is better readable grouped by concern.
type deviceRecord struct {
	ID           string
	Name         string
	SerialNumber string
	Source       model.Source

	Model        string
	Manufacturer string
	Processor    string
	RAM          string
	Storage      string
	OSType       model.OSType
	OSVersion    string

	Department string

	PurchaseDate   *time.Time
	EnrolledDate   *time.Time
	LastSeen       time.Time
	LastUpdateDate *time.Time

	Notes string

	ipAddress string
	hint      classify.Hint
}

// columns of a management platform export, each one lists its header aliases.
type deviceColumns struct {
	name, serial, platformID        []string
	model, modelName, manufacturer  []string
	osType, osVersion               []string
	lastSeen, lastUpdate, purchase  []string
	enrolled                        []string
	username, fullName, email, dept []string
	processor, ram, storage         []string
	ramPerGB, storagePerGB          float64
	ipAddress, notes                []string
	defaultOSType                   model.OSType
}

var jamfColumns = deviceColumns{
	name:          []string{"Computer Name", "Name"},
	serial:        []string{"Serial Number", "Serial"},
	platformID:    []string{"Jamf Pro Computer ID", "Computer ID", "ID"},
	model:         []string{"Model Identifier"},
	modelName:     []string{"Model"},
	osVersion:     []string{"Operating System Version", "OS Version"},
	lastSeen:      []string{"Last Check-in", "Last Contact Time"},
	lastUpdate:    []string{"Last Inventory Update"},
	purchase:      []string{"PO Date", "Purchase Date", "Purchased Date"},
	enrolled:      []string{"Last Enrollment", "Enrollment Date"},
	username:      []string{"Username", "User Name"},
	fullName:      []string{"Full Name", "Real Name"},
	email:         []string{"Email Address", "Email"},
	dept:          []string{"Department"},
	processor:     []string{"Processor Type", "Processor"},
	ram:           []string{"Total RAM MB", "Total RAM"},
	storage:       []string{"Drive Capacity MB", "Boot Drive Capacity MB"},
	ramPerGB:      mbPerGB,
	storagePerGB:  mbPerGB,
	ipAddress:     []string{"IP Address", "Last Reported IP Address"},
	notes:         []string{"Notes"},
	defaultOSType: model.OSTypeMacOS,
}

var intuneColumns = deviceColumns{
	name:          []string{"Device name", "Device"},
	serial:        []string{"Serial number", "Serial"},
	platformID:    []string{"Device ID", "Intune Device ID"},
	model:         []string{"Model"},
	manufacturer:  []string{"Manufacturer"},
	osType:        []string{"OS", "Operating system"},
	osVersion:     []string{"OS version"},
	lastSeen:      []string{"Last check-in", "Last sync date time"},
	enrolled:      []string{"Enrollment date", "Enrolled date time"},
	username:      []string{"Primary user UPN", "User principal name"},
	fullName:      []string{"Primary user display name"},
	email:         []string{"Primary user email address", "Email address"},
	processor:     []string{"Processor"},
	ram:           []string{"Physical memory", "Physical memory in Bytes"},
	storage:       []string{"Total storage", "Total storage space in MB"},
	ramPerGB:      bytesPerGB,
	storagePerGB:  mbPerGB,
	ipAddress:     []string{"IP Address", "Wi-Fi IPv4 address"},
	notes:         []string{"Notes"},
	defaultOSType: model.OSTypeWindows,
}

// parseDevices returns the device records of a Jamf or Intune export.
//
// Rows with neither a name nor a serial number are skipped and reported in the returned warnings,
// an export without either column is rejected.
func parseDevices(source model.Source, data []byte) ([]deviceRecord, *multierror.Error, error) {
	cols := jamfColumns
	if source == model.SourceIntune {
		cols = intuneColumns
	}

	t, err := parseTable(data)
	if err != nil {
		return nil, nil, err
	}

	if err := t.require(append(append([]string{}, cols.name...), cols.serial...)); err != nil {
		return nil, nil, err
	}

	var warnings *multierror.Error

	records := make([]deviceRecord, 0, len(t.rows))

	for _, r := range t.rows {
		rec := cols.record(source, r)
		if rec.Name == "" && rec.SerialNumber == "" {
			warnings = multierror.Append(warnings, r.skip("no device name or serial number"))
			continue
		}

		records = append(records, rec)
	}

	return records, warnings, nil
}

func (c *deviceColumns) record(source model.Source, r row) deviceRecord {
	rec := deviceRecord{
		Name:         r.get(c.name...),
		SerialNumber: strings.ToUpper(r.get(c.serial...)),
		Source:       source,
		Model:        r.get(c.model...),
		Manufacturer: r.get(c.manufacturer...),
		Processor:    r.get(c.processor...),
		RAM:          gigabytes(r.get(c.ram...), c.ramPerGB),
		Storage:      gigabytes(r.get(c.storage...), c.storagePerGB),
		OSType:       osType(r.get(c.osType...), c.defaultOSType),
		OSVersion:    r.get(c.osVersion...),
		Department:   r.get(c.dept...),
		PurchaseDate: parseDatePtr(r.get(c.purchase...)),
		EnrolledDate: parseDatePtr(r.get(c.enrolled...)),
		Notes:        r.get(c.notes...),
		ipAddress:    r.get(c.ipAddress...),
		hint: classify.Hint{
			Username: r.get(c.username...),
			Name:     r.get(c.fullName...),
			Email:    r.get(c.email...),
		},
	}

	// the model identifier is preferred, the marketing name is kept when no identifier is exported
	if rec.Model == "" {
		rec.Model = r.get(c.modelName...)
	}

	if lastSeen, ok := parseDate(r.get(c.lastSeen...)); ok {
		rec.LastSeen = lastSeen
	}

	rec.LastUpdateDate = parseDatePtr(r.get(c.lastUpdate...))

	rec.ID = rec.SerialNumber
	if rec.ID == "" {
		if platformID := r.get(c.platformID...); platformID != "" {
			rec.ID = string(source) + "-" + platformID
		} else {
			rec.ID = rec.Name
		}
	}

	return rec
}

func osType(s string, fallback model.OSType) model.OSType {
	lower := strings.ToLower(s)

	switch {
	case strings.Contains(lower, "mac"):
		return model.OSTypeMacOS
	case strings.Contains(lower, "windows"):
		return model.OSTypeWindows
	case s != "":
		return model.OSType(s)
	default:
		return fallback
	}
}
