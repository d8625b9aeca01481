package model

import (
	"strings"
)

type (
	AppKind   string
	StoreKind string
)

const (
	AppName = "fleetdash"

	AppKindServer AppKind = "server"
	AppKindClient AppKind = "client"

	StoreKindMemory    StoreKind = "memory"
	StoreKindDirectory StoreKind = "directory"
	StoreKindNATS      StoreKind = "nats"

	LogLevelInfo  = 0
	LogLevelDebug = 1
	LogLevelTrace = 2

	// Unassigned is the owner recorded for devices that could not be matched to a directory user.
	Unassigned = "Unassigned"
)

// AppKinds returns the supported fleetdash app kinds
func AppKinds() []AppKind { return []AppKind{AppKindServer, AppKindClient} }

// StoreKinds returns the supported persisted state backends
func StoreKinds() []StoreKind {
	return []StoreKind{StoreKindMemory, StoreKindDirectory, StoreKindNATS}
}

// SourceKind identifies an uploaded CSV export.
type SourceKind string

const (
	SourceKindJamf     SourceKind = "jamf"
	SourceKindIntune   SourceKind = "intune"
	SourceKindUsers    SourceKind = "users"
	SourceKindCoreView SourceKind = "coreview"
	SourceKindQualys   SourceKind = "qualys"
)

// SourceKinds returns the CSV export kinds in the order they are merged.
func SourceKinds() []SourceKind {
	return []SourceKind{
		SourceKindJamf,
		SourceKindIntune,
		SourceKindUsers,
		SourceKindCoreView,
		SourceKindQualys,
	}
}

// ParseSourceKind returns the SourceKind for s, matched case-insensitively.
func ParseSourceKind(s string) (SourceKind, bool) {
	for _, k := range SourceKinds() {
		if strings.EqualFold(string(k), strings.TrimSpace(s)) {
			return k, true
		}
	}

	return "", false
}

// DeviceSource returns the device provenance for a management platform export.
func (k SourceKind) DeviceSource() (Source, bool) {
	switch k {
	case SourceKindJamf:
		return SourceJamf, true
	case SourceKindIntune:
		return SourceIntune, true
	default:
		return "", false
	}
}
