//go:build linux

package device

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/nilszeilon/keystats/internal/domain"
	"github.com/nilszeilon/keystats/internal/evdev"
)

// pipeSession builds a session whose single "keyboard" is the read end of a pipe.
func pipeSession(t *testing.T) (*Session, int) {
	t.Helper()
	input, err := OpenInput()
	require.NoError(t, err)

	var fds [2]int
	require.NoError(t, unix.Pipe2(fds[:], unix.O_NONBLOCK|unix.O_CLOEXEC))
	require.NoError(t, input.Add(evdev.WrapFd("/dev/input/event0", fds[0])))

	s := newSession(nil, input, zerolog.Nop())
	t.Cleanup(func() { s.Close() })
	return s, fds[1]
}

func TestSessionWaitTimesOutWithoutActivity(t *testing.T) {
	s, w := pipeSession(t)
	defer unix.Close(w)

	start := time.Now()
	ready, err := s.Wait(30 * time.Millisecond)
	require.NoError(t, err)
	assert.False(t, ready)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestSessionDrainsAllQueuedEvents(t *testing.T) {
	s, w := pipeSession(t)
	defer unix.Close(w)

	var batch []evdev.Event
	for i := 0; i < 100; i++ {
		batch = append(batch, evdev.Event{Type: evdev.EvKey, Code: 30, Value: evdev.KeyPressed})
	}
	_, err := unix.Write(w, evdev.Encode(batch...))
	require.NoError(t, err)

	ready, err := s.Wait(time.Second)
	require.NoError(t, err)
	require.True(t, ready)

	count := 0
	require.NoError(t, s.Drain(func(evdev.Event) { count++ }))
	assert.Equal(t, 100, count)
}

func TestSessionDetachesVanishedDevice(t *testing.T) {
	s, w := pipeSession(t)
	require.Equal(t, 1, s.Devices())
	require.NoError(t, unix.Close(w))

	ready, err := s.Wait(time.Second)
	require.NoError(t, err)
	require.True(t, ready)
	require.NoError(t, s.Drain(func(evdev.Event) {}))
	assert.Zero(t, s.Devices())
}

func TestSessionAddDeviceSkipsNonKeyboard(t *testing.T) {
	input, err := OpenInput()
	require.NoError(t, err)
	s := newSession(nil, input, zerolog.Nop())
	defer s.Close()

	path := filepath.Join(t.TempDir(), "event1")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	added, err := s.AddDevice(path)
	assert.Error(t, err)
	assert.False(t, added)
	assert.Zero(t, s.Devices())
}

func TestOpenSessionWithoutKeyboardsFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "event0"), nil, 0o600))

	s, err := OpenSession(dir, "", zerolog.Nop())
	assert.Nil(t, s)
	require.Error(t, err)
	assert.Equal(t, domain.KindSystem, domain.KindOf(err))
	assert.Contains(t, err.Error(), "no accessible keyboard")
}

func TestOpenSessionMissingDirFails(t *testing.T) {
	_, err := OpenSession(filepath.Join(t.TempDir(), "nope"), "", zerolog.Nop())
	assert.Equal(t, domain.KindSystem, domain.KindOf(err))
}
