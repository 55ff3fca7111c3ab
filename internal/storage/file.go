package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/nilszeilon/keystats/internal/domain"
)

type rowKey struct {
	code uint32
	date string
}

// FileStore keeps the aggregate rows in a JSON file. Each commit rewrites the file
// through a temporary file and a rename, so a failed commit leaves the previous
// contents in place.
type FileStore struct {
	filepath string
	mu       sync.RWMutex
	rows     map[rowKey]domain.KeyCount
	clock    func() time.Time
	logger   zerolog.Logger
}

// NewFileStore loads existing rows from path if the file exists.
func NewFileStore(path string, logger zerolog.Logger, clock func() time.Time) (*FileStore, error) {
	if clock == nil {
		clock = time.Now
	}
	fs := &FileStore{
		filepath: path,
		rows:     make(map[rowKey]domain.KeyCount),
		clock:    clock,
		logger:   logger.With().Str("component", "file_store").Logger(),
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, domain.SystemError(err, "create store directory %s", dir)
		}
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fs, nil
	}
	if err != nil {
		return nil, domain.DatabaseError(err, "read store %q", path)
	}
	if len(data) == 0 {
		return fs, nil
	}

	var rows []domain.KeyCount
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, domain.DatabaseError(err, "decode store %q", path)
	}
	for _, r := range rows {
		fs.rows[rowKey{r.ScanCode, r.Date}] = r
	}
	return fs, nil
}

// Commit applies every record to a copy of the rows and swaps it in once the file is written.
func (fs *FileStore) Commit(records []domain.KeystrokeRecord) error {
	if len(records) == 0 {
		return nil
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	next := make(map[rowKey]domain.KeyCount, len(fs.rows)+len(records))
	for k, v := range fs.rows {
		next[k] = v
	}
	for _, rec := range records {
		k := rowKey{rec.KeyCode, rec.Date}
		row := next[k]
		row.ScanCode = rec.KeyCode
		row.Date = rec.Date
		row.KeyName = rec.KeyName
		row.Count++
		next[k] = row
	}

	if err := fs.persist(next); err != nil {
		return domain.DatabaseError(err, "write to store")
	}
	fs.rows = next
	fs.logger.Debug().Int("records", len(records)).Str("path", fs.filepath).Msg("inserted keystrokes")
	return nil
}

func (fs *FileStore) persist(rows map[rowKey]domain.KeyCount) error {
	list := make([]domain.KeyCount, 0, len(rows))
	for _, r := range rows {
		list = append(list, r)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].ScanCode != list[j].ScanCode {
			return list[i].ScanCode < list[j].ScanCode
		}
		return list[i].Date < list[j].Date
	})

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(fs.filepath), filepath.Base(fs.filepath)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), fs.filepath)
}

// snapshot copies the rows under the read lock.
func (fs *FileStore) snapshot() []domain.KeyCount {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	rows := make([]domain.KeyCount, 0, len(fs.rows))
	for _, r := range fs.rows {
		rows = append(rows, r)
	}
	return rows
}

// TotalsByKey sums counts per scan code, ascending by scan code.
func (fs *FileStore) TotalsByKey() ([]domain.KeyTotal, error) {
	totals := sumByKey(fs.snapshot(), "", "")
	sort.Slice(totals, func(i, j int) bool { return totals[i].ScanCode < totals[j].ScanCode })
	return totals, nil
}

// DailyTotals sums counts per day over the last days days, newest first.
func (fs *FileStore) DailyTotals(days int) ([]domain.DailyTotal, error) {
	from, to, err := window(fs.clock, days)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]int64)
	for _, r := range fs.snapshot() {
		if r.Date >= from && r.Date <= to {
			byDate[r.Date] += r.Count
		}
	}

	results := make([]domain.DailyTotal, 0, len(byDate))
	for date, total := range byDate {
		results = append(results, domain.DailyTotal{Date: date, Total: total})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Date > results[j].Date })
	return results, nil
}

// TopKeys returns the limit most pressed keys over the last days days.
func (fs *FileStore) TopKeys(days, limit int) ([]domain.KeyTotal, error) {
	from, to, err := window(fs.clock, days)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	totals := sumByKey(fs.snapshot(), from, to)
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Total != totals[j].Total {
			return totals[i].Total > totals[j].Total
		}
		return totals[i].ScanCode < totals[j].ScanCode
	})
	if len(totals) > limit {
		totals = totals[:limit]
	}
	return totals, nil
}

// sumByKey totals rows per scan code, restricted to [from, to] when from is set.
// The name is taken from the most recent row of each code.
func sumByKey(rows []domain.KeyCount, from, to string) []domain.KeyTotal {
	type acc struct {
		total    int64
		name     string
		nameDate string
	}
	byCode := make(map[uint32]*acc)
	for _, r := range rows {
		if from != "" && (r.Date < from || r.Date > to) {
			continue
		}
		a := byCode[r.ScanCode]
		if a == nil {
			a = &acc{}
			byCode[r.ScanCode] = a
		}
		a.total += r.Count
		if r.Date >= a.nameDate {
			a.name, a.nameDate = r.KeyName, r.Date
		}
	}

	totals := make([]domain.KeyTotal, 0, len(byCode))
	for code, a := range byCode {
		totals = append(totals, domain.KeyTotal{ScanCode: code, KeyName: a.name, Total: a.total})
	}
	return totals
}

// TotalCount sums every count, or only those of date when it is not empty.
func (fs *FileStore) TotalCount(date string) (int64, error) {
	var total int64
	for _, r := range fs.snapshot() {
		if date == "" || r.Date == date {
			total += r.Count
		}
	}
	return total, nil
}

// KeyCounts returns the rows of one day, or every row when date is empty, highest count first.
func (fs *FileStore) KeyCounts(date string) ([]domain.KeyCount, error) {
	var results []domain.KeyCount
	for _, r := range fs.snapshot() {
		if date == "" || r.Date == date {
			results = append(results, r)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.ScanCode != b.ScanCode {
			return a.ScanCode < b.ScanCode
		}
		return a.Date < b.Date
	})
	return results, nil
}

// Clear deletes every row.
func (fs *FileStore) Clear() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	empty := make(map[rowKey]domain.KeyCount)
	if err := fs.persist(empty); err != nil {
		return domain.DatabaseError(err, "clear store")
	}
	fs.rows = empty
	return nil
}

func (fs *FileStore) Close() error {
	return nil
}
