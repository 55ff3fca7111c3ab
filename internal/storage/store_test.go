package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilszeilon/keystats/internal/domain"
)

var testNow = time.Date(2025, 1, 10, 12, 0, 0, 0, time.Local)

func fixedClock() time.Time { return testNow }

func record(code uint32, name, date string) domain.KeystrokeRecord {
	return domain.KeystrokeRecord{KeyCode: code, KeyName: name, Date: date}
}

func repeat(rec domain.KeystrokeRecord, n int) []domain.KeystrokeRecord {
	out := make([]domain.KeystrokeRecord, n)
	for i := range out {
		out[i] = rec
	}
	return out
}

// backends runs fn once per store implementation, each in a fresh temp dir.
func backends(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Helper()
	for _, backend := range []string{BackendSQLite, BackendFile} {
		t.Run(backend, func(t *testing.T) {
			s, err := Open(backend, filepath.Join(t.TempDir(), "keystats.db"), zerolog.Nop(), fixedClock)
			require.NoError(t, err)
			t.Cleanup(func() { s.Close() })
			fn(t, s)
		})
	}
}

func TestOpenRejectsUnknownBackend(t *testing.T) {
	_, err := Open("postgres", filepath.Join(t.TempDir(), "x"), zerolog.Nop(), nil)
	require.Error(t, err)
	assert.Equal(t, domain.KindEnvironment, domain.KindOf(err))
}

func TestWindow(t *testing.T) {
	from, to, err := window(fixedClock, 7)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-04", from)
	assert.Equal(t, "2025-01-10", to)

	from, to, err = window(fixedClock, 1)
	require.NoError(t, err)
	assert.Equal(t, to, from)

	_, _, err = window(fixedClock, 0)
	assert.Error(t, err)
}

func TestCommitAccumulatesCounts(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		require.NoError(t, s.Commit(repeat(record(30, "A", "2025-01-01"), 20)))
		require.NoError(t, s.Commit(repeat(record(30, "A", "2025-01-01"), 30)))

		rows, err := s.KeyCounts("")
		require.NoError(t, err)
		require.Len(t, rows, 1, "one row per key and date")
		assert.Equal(t, domain.KeyCount{ScanCode: 30, KeyName: "A", Date: "2025-01-01", Count: 50}, rows[0])
	})
}

func TestCommitEmptyIsNoop(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		require.NoError(t, s.Commit(nil))
		total, err := s.TotalCount("")
		require.NoError(t, err)
		assert.Zero(t, total)
	})
}

func TestTotalsByKey(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		records := append(repeat(record(57, "Space", "2025-01-09"), 3), repeat(record(30, "A", "2025-01-10"), 2)...)
		records = append(records, record(30, "A", "2025-01-08"))
		require.NoError(t, s.Commit(records))

		totals, err := s.TotalsByKey()
		require.NoError(t, err)
		assert.Equal(t, []domain.KeyTotal{
			{ScanCode: 30, KeyName: "A", Total: 3},
			{ScanCode: 57, KeyName: "Space", Total: 3},
		}, totals)
	})
}

func TestDailyTotalsWindow(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		records := repeat(record(30, "A", "2025-01-10"), 4)
		records = append(records, repeat(record(57, "Space", "2025-01-04"), 2)...)
		records = append(records, record(57, "Space", "2025-01-03"))
		require.NoError(t, s.Commit(records))

		daily, err := s.DailyTotals(7)
		require.NoError(t, err)
		assert.Equal(t, []domain.DailyTotal{
			{Date: "2025-01-10", Total: 4},
			{Date: "2025-01-04", Total: 2},
		}, daily)

		_, err = s.DailyTotals(0)
		assert.Error(t, err)
	})
}

func TestTopKeysOrderingAndTies(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		records := repeat(record(57, "Space", "2025-01-10"), 5)
		records = append(records, repeat(record(48, "B", "2025-01-09"), 2)...)
		records = append(records, repeat(record(30, "A", "2025-01-09"), 2)...)
		records = append(records, repeat(record(28, "Enter", "2024-12-01"), 9)...)
		require.NoError(t, s.Commit(records))

		top, err := s.TopKeys(7, 2)
		require.NoError(t, err)
		assert.Equal(t, []domain.KeyTotal{
			{ScanCode: 57, KeyName: "Space", Total: 5},
			{ScanCode: 30, KeyName: "A", Total: 2},
		}, top)

		top, err = s.TopKeys(7, 10)
		require.NoError(t, err)
		assert.Len(t, top, 3, "keys outside the window are excluded")

		_, err = s.TopKeys(7, 0)
		assert.Error(t, err)
	})
}

func TestTopKeysNameComesFromWindow(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		require.NoError(t, s.Commit([]domain.KeystrokeRecord{
			record(30, "Old", "2025-01-09"),
			record(30, "New", "2025-01-20"),
		}))

		top, err := s.TopKeys(3, 5)
		require.NoError(t, err)
		assert.Equal(t, []domain.KeyTotal{{ScanCode: 30, KeyName: "Old", Total: 1}}, top)

		totals, err := s.TotalsByKey()
		require.NoError(t, err)
		assert.Equal(t, []domain.KeyTotal{{ScanCode: 30, KeyName: "New", Total: 2}}, totals)
	})
}

func TestTotalCountAndKeyCountsByDate(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		records := repeat(record(30, "A", "2025-01-10"), 2)
		records = append(records, repeat(record(57, "Space", "2025-01-10"), 3)...)
		records = append(records, record(30, "A", "2025-01-09"))
		require.NoError(t, s.Commit(records))

		total, err := s.TotalCount("2025-01-10")
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)

		total, err = s.TotalCount("")
		require.NoError(t, err)
		assert.Equal(t, int64(6), total)

		rows, err := s.KeyCounts("2025-01-10")
		require.NoError(t, err)
		assert.Equal(t, []domain.KeyCount{
			{ScanCode: 57, KeyName: "Space", Date: "2025-01-10", Count: 3},
			{ScanCode: 30, KeyName: "A", Date: "2025-01-10", Count: 2},
		}, rows)
	})
}

func TestClear(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		require.NoError(t, s.Commit(repeat(record(30, "A", "2025-01-10"), 3)))
		require.NoError(t, s.Clear())

		rows, err := s.KeyCounts("")
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestStoresPersistAcrossReopen(t *testing.T) {
	for _, backend := range []string{BackendSQLite, BackendFile} {
		t.Run(backend, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "keystats.db")
			s, err := Open(backend, path, zerolog.Nop(), fixedClock)
			require.NoError(t, err)
			require.NoError(t, s.Commit(repeat(record(30, "A", "2025-01-10"), 7)))
			require.NoError(t, s.Close())

			s, err = Open(backend, path, zerolog.Nop(), fixedClock)
			require.NoError(t, err)
			defer s.Close()

			total, err := s.TotalCount("2025-01-10")
			require.NoError(t, err)
			assert.Equal(t, int64(7), total)
		})
	}
}
