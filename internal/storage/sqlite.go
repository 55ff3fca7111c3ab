package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/nilszeilon/keystats/internal/domain"
)

// SQLiteStore keeps the aggregate rows in a SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	path   string
	clock  func() time.Time
	logger zerolog.Logger
}

// NewSQLiteStore opens (creating if needed) the database at dbPath and its table.
func NewSQLiteStore(dbPath string, logger zerolog.Logger, clock func() time.Time) (*SQLiteStore, error) {
	if clock == nil {
		clock = time.Now
	}
	logger = logger.With().Str("component", "sqlite_store").Logger()
	logger.Info().Str("path", dbPath).Msg("initializing database")

	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, domain.SystemError(err, "create database directory %s", dir)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, domain.DatabaseError(err, "open database %q", dbPath)
	}
	// one connection keeps the per-connection pragmas in effect and serialises writers
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{
		db:     db,
		path:   dbPath,
		clock:  clock,
		logger: logger,
	}

	if err := store.initTable(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info().Msg("database tables created")
	return store, nil
}

func (s *SQLiteStore) initTable() error {
	for _, pragma := range pragmas {
		if _, err := s.db.Exec(pragma); err != nil {
			return domain.DatabaseError(err, "open database %q: %s", s.path, pragma)
		}
	}
	if _, err := s.db.Exec(createKeystrokesTable); err != nil {
		return domain.DatabaseError(err, "create tables")
	}
	return nil
}

// Path returns the database file location.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Commit upserts every record inside one transaction.
func (s *SQLiteStore) Commit(records []domain.KeystrokeRecord) (err error) {
	if len(records) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return domain.DatabaseError(err, "begin transaction")
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("rollback failed")
			}
		}
	}()

	stmt, err := tx.Prepare(upsertKeystroke)
	if err != nil {
		return domain.DatabaseError(err, "prepare upsert")
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err = stmt.Exec(rec.KeyCode, rec.KeyName, rec.Date); err != nil {
			return domain.DatabaseError(err, "write to database")
		}
	}

	if err = tx.Commit(); err != nil {
		return domain.DatabaseError(err, "commit transaction")
	}

	s.logger.Debug().Int("records", len(records)).Str("path", s.path).Msg("inserted keystrokes")
	return nil
}

// TotalsByKey sums counts per scan code, ascending by scan code.
func (s *SQLiteStore) TotalsByKey() ([]domain.KeyTotal, error) {
	return s.queryTotals(selectTotalsByKey)
}

// DailyTotals sums counts per day over the last days days, newest first.
func (s *SQLiteStore) DailyTotals(days int) ([]domain.DailyTotal, error) {
	from, to, err := window(s.clock, days)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(selectDailyTotals, from, to)
	if err != nil {
		return nil, domain.DatabaseError(err, "query daily totals")
	}
	defer rows.Close()

	var results []domain.DailyTotal
	for rows.Next() {
		var d domain.DailyTotal
		if err := rows.Scan(&d.Date, &d.Total); err != nil {
			return nil, domain.DatabaseError(err, "scan daily totals")
		}
		d.Date = normalizeDate(d.Date)
		results = append(results, d)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.DatabaseError(err, "query daily totals")
	}
	return results, nil
}

// TopKeys returns the limit most pressed keys over the last days days.
// Equal totals are ordered by ascending scan code.
func (s *SQLiteStore) TopKeys(days, limit int) ([]domain.KeyTotal, error) {
	from, to, err := window(s.clock, days)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}
	return s.queryTotals(selectTopKeys, from, to, from, to, limit)
}

func (s *SQLiteStore) queryTotals(query string, args ...any) ([]domain.KeyTotal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, domain.DatabaseError(err, "query key totals")
	}
	defer rows.Close()

	var results []domain.KeyTotal
	for rows.Next() {
		var t domain.KeyTotal
		if err := rows.Scan(&t.ScanCode, &t.KeyName, &t.Total); err != nil {
			return nil, domain.DatabaseError(err, "scan key totals")
		}
		results = append(results, t)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.DatabaseError(err, "query key totals")
	}
	return results, nil
}

// TotalCount sums every count, or only those of date when it is not empty.
func (s *SQLiteStore) TotalCount(date string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var row *sql.Row
	if date == "" {
		row = s.db.QueryRow(selectTotalCount)
	} else {
		row = s.db.QueryRow(selectTotalCountForDate, date)
	}

	var total int64
	if err := row.Scan(&total); err != nil {
		return 0, domain.DatabaseError(err, "query total count")
	}
	return total, nil
}

// KeyCounts returns the stored rows of one day, or every row when date is empty,
// highest count first.
func (s *SQLiteStore) KeyCounts(date string) ([]domain.KeyCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		rows *sql.Rows
		err  error
	)
	if date == "" {
		rows, err = s.db.Query(selectKeyCounts)
	} else {
		rows, err = s.db.Query(selectKeyCountsForDate, date)
	}
	if err != nil {
		return nil, domain.DatabaseError(err, "query key counts")
	}
	defer rows.Close()

	var results []domain.KeyCount
	for rows.Next() {
		var c domain.KeyCount
		if err := rows.Scan(&c.ScanCode, &c.KeyName, &c.Date, &c.Count); err != nil {
			return nil, domain.DatabaseError(err, "scan key counts")
		}
		c.Date = normalizeDate(c.Date)
		results = append(results, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.DatabaseError(err, "query key counts")
	}
	return results, nil
}

// Clear deletes every row.
func (s *SQLiteStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(clearKeystrokes); err != nil {
		return domain.DatabaseError(err, "clear keystrokes")
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// normalizeDate trims a driver-formatted timestamp back to YYYY-MM-DD.
func normalizeDate(raw string) string {
	if len(raw) > len(domain.DateLayout) {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t.Format(domain.DateLayout)
		}
		return raw[:len(domain.DateLayout)]
	}
	return raw
}
