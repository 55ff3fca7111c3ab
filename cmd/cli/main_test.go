package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilszeilon/keystats/internal/domain"
	"github.com/nilszeilon/keystats/internal/report"
	"github.com/nilszeilon/keystats/internal/storage"
)

// seedStore points the configuration at a temp data dir holding n presses of A today.
func seedStore(t *testing.T, n int) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("KEYSTATS_DATA_DIR", dir)
	t.Setenv("KEYSTATS_DB_FILE", "keystats.db")
	t.Setenv("KEYSTATS_STORE_BACKEND", "sqlite")
	t.Setenv("KEYSTATS_LOG_FORMAT", "json")

	store, err := storage.NewSQLiteStore(filepath.Join(dir, "keystats.db"), zerolog.Nop(), nil)
	require.NoError(t, err)
	defer store.Close()

	rec := domain.NewKeystrokeRecord(30, "A", time.Now())
	records := make([]domain.KeystrokeRecord, n)
	for i := range records {
		records[i] = rec
	}
	require.NoError(t, store.Commit(records))
	return dir
}

func execute(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestStatsJSON(t *testing.T) {
	seedStore(t, 50)

	out, _, err := execute("stats", "--days", "3", "--format", "json")
	require.NoError(t, err)

	var rep report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, int64(50), rep.Today)
	assert.Equal(t, 3, rep.Days)
	require.Len(t, rep.TopKeys, 1)
	assert.Equal(t, domain.KeyTotal{ScanCode: 30, KeyName: "A", Total: 50}, rep.TopKeys[0])
}

func TestStatsRejectsZeroDays(t *testing.T) {
	seedStore(t, 1)

	_, _, err := execute("stats", "--days", "0")
	assert.Error(t, err)
}

func TestClear(t *testing.T) {
	seedStore(t, 5)

	_, _, err := execute("clear")
	require.NoError(t, err)

	out, _, err := execute("stats", "--format", "json")
	require.NoError(t, err)
	var rep report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Zero(t, rep.AllTime)
}

func TestUnknownFlagPrintsUsage(t *testing.T) {
	out, _, err := execute("--bogus")
	require.Error(t, err)
	assert.Contains(t, out, "Usage:")
}

func TestVersionFlag(t *testing.T) {
	out, _, err := execute("-v")
	require.NoError(t, err)
	assert.Contains(t, out, "keystats version")
}

func TestVersionFromLinker(t *testing.T) {
	t.Cleanup(func() { version = "" })

	assert.NotEmpty(t, versionString())

	version = "v1.2.0"
	out, _, err := execute("--version")
	require.NoError(t, err)
	assert.Contains(t, out, "v1.2.0")
}

func TestMissingHomeIsEnvironmentError(t *testing.T) {
	t.Setenv("HOME", "")

	_, _, err := execute("stats")
	require.Error(t, err)
	assert.Equal(t, domain.KindEnvironment, domain.KindOf(err))
}
