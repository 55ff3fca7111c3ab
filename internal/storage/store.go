package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nilszeilon/keystats/internal/domain"
)

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// Store is the aggregate store: the capture pipeline writes through Commit and
// everything else only reads.
type Store interface {
	// Commit upserts every record in one all-or-nothing unit.
	Commit(records []domain.KeystrokeRecord) error
	// TotalsByKey sums counts per scan code, ascending by scan code.
	TotalsByKey() ([]domain.KeyTotal, error)
	// DailyTotals sums counts per day over the last days days, newest first.
	DailyTotals(days int) ([]domain.DailyTotal, error)
	// TopKeys returns the limit most pressed keys over the last days days.
	TopKeys(days, limit int) ([]domain.KeyTotal, error)
	// TotalCount sums every count, or only those of date when it is not empty.
	TotalCount(date string) (int64, error)
	// KeyCounts returns the raw rows of one day ordered by count, or all rows when date is empty.
	KeyCounts(date string) ([]domain.KeyCount, error)
	// Clear deletes every row.
	Clear() error
	Close() error
}

// Open creates the store selected by backend at path.
func Open(backend, path string, logger zerolog.Logger, clock func() time.Time) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendSQLite:
		return NewSQLiteStore(path, logger, clock)
	case BackendFile:
		return NewFileStore(path, logger, clock)
	default:
		return nil, domain.EnvironmentError(nil, "unsupported store backend %q", backend)
	}
}

// window returns the inclusive date range covering the last days calendar days, today included.
func window(clock func() time.Time, days int) (from, to string, err error) {
	if days <= 0 {
		return "", "", fmt.Errorf("window must cover at least one day, got %d", days)
	}
	today := clock().Local()
	return today.AddDate(0, 0, -(days - 1)).Format(domain.DateLayout), today.Format(domain.DateLayout), nil
}
