package types

import (
	"encoding/json"
	"time"
)

const (
	Version int32 = 1
)

// SourceValue is the canonical structure for a stored CSV export.
type SourceValue struct {
	UpdatedAt  time.Time `json:"updated"`
	Kind       string    `json:"kind"`
	Checksum   string    `json:"checksum,omitempty"`
	Origin     string    `json:"origin,omitempty"`
	Data       []byte    `json:"data"`
	MsgVersion int32     `json:"msgVersion"`
}

// MustBytes sets the version field of the SourceValue so any callers don't have
// to deal with it. It will panic if we cannot serialize to JSON for some reason.
func (v *SourceValue) MustBytes() []byte {
	v.MsgVersion = Version
	byt, err := json.Marshal(v)
	if err != nil {
		panic("unable to serialize source value: " + err.Error())
	}
	return byt
}

// RetiredValue records a device flagged as retired.
type RetiredValue struct {
	RetiredAt  time.Time `json:"retired"`
	DeviceID   string    `json:"device"`
	MsgVersion int32     `json:"msgVersion"`
}

// MustBytes sets the version field of the RetiredValue, it panics when serialization fails.
func (v *RetiredValue) MustBytes() []byte {
	v.MsgVersion = Version
	byt, err := json.Marshal(v)
	if err != nil {
		panic("unable to serialize retired value: " + err.Error())
	}
	return byt
}
