package domain

import "time"

// DateLayout is the calendar-day format used for the date column.
const DateLayout = "2006-01-02"

// UnknownKeyName is stored when a scan code has no symbolic name.
const UnknownKeyName = "UNKNOWN"

// KeystrokeRecord is a single key press waiting to be aggregated.
// Each record contributes a count of exactly one.
type KeystrokeRecord struct {
	KeyCode uint32 `json:"key_code"`
	KeyName string `json:"key_name"`
	Date    string `json:"date"`
}

// NewKeystrokeRecord stamps a record with the local calendar day of at.
func NewKeystrokeRecord(code uint32, name string, at time.Time) KeystrokeRecord {
	if name == "" {
		name = UnknownKeyName
	}
	return KeystrokeRecord{
		KeyCode: code,
		KeyName: name,
		Date:    at.Local().Format(DateLayout),
	}
}
