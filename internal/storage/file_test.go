package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilszeilon/keystats/internal/domain"
)

func TestFileStoreFailedCommitKeepsPreviousState(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keystats.json")
	s, err := NewFileStore(path, zerolog.Nop(), fixedClock)
	require.NoError(t, err)
	require.NoError(t, s.Commit(repeat(record(30, "A", "2025-01-10"), 2)))

	// with the directory read-only the temporary file cannot be created
	require.NoError(t, os.Chmod(dir, 0o500))
	t.Cleanup(func() { os.Chmod(dir, 0o700) })
	if f, err := os.CreateTemp(dir, "probe"); err == nil {
		f.Close()
		os.Remove(f.Name())
		t.Skip("directory permissions are not enforced for this user")
	}

	err = s.Commit(repeat(record(30, "A", "2025-01-10"), 5))
	require.Error(t, err)
	assert.Equal(t, domain.KindDatabase, domain.KindOf(err))

	total, err := s.TotalCount("")
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestFileStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keystats.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := NewFileStore(path, zerolog.Nop(), nil)
	require.Error(t, err)
	assert.Equal(t, domain.KindDatabase, domain.KindOf(err))
}

func TestFileStoreEmptyFileLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keystats.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	s, err := NewFileStore(path, zerolog.Nop(), nil)
	require.NoError(t, err)
	rows, err := s.KeyCounts("")
	require.NoError(t, err)
	assert.Empty(t, rows)
}
