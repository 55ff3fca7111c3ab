package domain

// KeyCount is one durable aggregate row, unique per (ScanCode, Date).
type KeyCount struct {
	ScanCode uint32 `json:"scan_code" yaml:"scan_code"`
	KeyName  string `json:"key_name" yaml:"key_name"`
	Date     string `json:"date" yaml:"date"`
	Count    int64  `json:"count" yaml:"count"`
}

// KeyTotal is the summed count of one scan code over some window.
type KeyTotal struct {
	ScanCode uint32 `json:"scan_code" yaml:"scan_code"`
	KeyName  string `json:"key_name" yaml:"key_name"`
	Total    int64  `json:"total" yaml:"total"`
}

// DailyTotal is the summed count of all keys on one day.
type DailyTotal struct {
	Date  string `json:"date" yaml:"date"`
	Total int64  `json:"total" yaml:"total"`
}
