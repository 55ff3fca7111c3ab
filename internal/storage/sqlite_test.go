package storage

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilszeilon/keystats/internal/domain"
)

func TestSQLiteCommitOnClosedDatabase(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "keystats.db"), zerolog.Nop(), fixedClock)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	err = s.Commit([]domain.KeystrokeRecord{record(30, "A", "2025-01-10")})
	require.Error(t, err)
	assert.Equal(t, domain.KindDatabase, domain.KindOf(err))
}

func TestSQLiteCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "keystats.db")
	s, err := NewSQLiteStore(path, zerolog.Nop(), nil)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, path, s.Path())
	assert.FileExists(t, path)
}

func TestNormalizeDate(t *testing.T) {
	assert.Equal(t, "2025-01-01", normalizeDate("2025-01-01"))
	assert.Equal(t, "2025-01-01", normalizeDate("2025-01-01T00:00:00Z"))
	assert.Equal(t, "2025-01-01", normalizeDate("2025-01-01 00:00:00+00:00"))
}
