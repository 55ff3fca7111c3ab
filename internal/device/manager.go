package device

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const eventNodePrefix = "event"

// ChangeOp says whether a device node appeared or went away.
type ChangeOp int

const (
	DeviceAdded ChangeOp = iota + 1
	DeviceRemoved
)

func (op ChangeOp) String() string {
	switch op {
	case DeviceAdded:
		return "added"
	case DeviceRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Change is a hotplug notification for one event node.
type Change struct {
	Path string
	Op   ChangeOp
}

// Manager enumerates evdev nodes and watches the input directory for hotplug.
type Manager struct {
	inputDir string
	sysfsDir string
	watcher  *fsnotify.Watcher
	logger   zerolog.Logger
}

// OpenManager starts watching inputDir. The caller owns the returned Manager and must Close it.
func OpenManager(inputDir, sysfsDir string, logger zerolog.Logger) (*Manager, error) {
	info, err := os.Stat(inputDir)
	if err != nil {
		return nil, fmt.Errorf("stat input directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input path %s is not a directory", inputDir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create hotplug watcher: %w", err)
	}
	if err := watcher.Add(inputDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", inputDir, err)
	}

	return &Manager{
		inputDir: inputDir,
		sysfsDir: sysfsDir,
		watcher:  watcher,
		logger:   logger.With().Str("component", "device_manager").Logger(),
	}, nil
}

// Enumerate lists the event nodes currently present, sorted by path.
func (m *Manager) Enumerate() ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(m.inputDir, eventNodePrefix+"*"))
	if err != nil {
		return nil, fmt.Errorf("enumerate %s: %w", m.inputDir, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// DeviceName returns the kernel-reported name of an event node from sysfs, or "".
func (m *Manager) DeviceName(path string) string {
	if m.sysfsDir == "" {
		return ""
	}
	data, err := os.ReadFile(filepath.Join(m.sysfsDir, filepath.Base(path), "device", "name"))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Changes drains pending hotplug notifications without blocking.
func (m *Manager) Changes() []Change {
	if m.watcher == nil {
		return nil
	}
	var changes []Change
	for {
		select {
		case event, ok := <-m.watcher.Events:
			if !ok {
				return changes
			}
			if !strings.HasPrefix(filepath.Base(event.Name), eventNodePrefix) {
				continue
			}

			switch {
			case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
				changes = append(changes, Change{Path: event.Name, Op: DeviceRemoved})
			case event.Has(fsnotify.Create), event.Has(fsnotify.Chmod):
				// udev creates the node first and fixes its group afterwards
				changes = append(changes, Change{Path: event.Name, Op: DeviceAdded})
			}

		case err, ok := <-m.watcher.Errors:
			if !ok {
				return changes
			}
			m.logger.Warn().Err(err).Msg("hotplug watcher error")

		default:
			return changes
		}
	}
}

// Close stops the hotplug watcher.
func (m *Manager) Close() error {
	if m.watcher == nil {
		return nil
	}
	err := m.watcher.Close()
	m.watcher = nil
	if errors.Is(err, fsnotify.ErrClosed) {
		return nil
	}
	return err
}
