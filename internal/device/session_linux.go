//go:build linux

package device

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/nilszeilon/keystats/internal/domain"
	"github.com/nilszeilon/keystats/internal/evdev"
)

// Session owns the device manager and the input multiplexer for the life of the process.
// It is not safe for concurrent use.
type Session struct {
	manager *Manager
	input   *Input
	logger  zerolog.Logger
	ready   []*evdev.Device

	open func(path string) (*evdev.Device, error)
}

// OpenSession acquires both handles and registers every keyboard present in inputDir.
// Anything acquired is released again if the session cannot be established.
func OpenSession(inputDir, sysfsDir string, logger zerolog.Logger) (_ *Session, err error) {
	manager, err := OpenManager(inputDir, sysfsDir, logger)
	if err != nil {
		return nil, domain.SystemError(err, "initialize device manager")
	}
	input, err := OpenInput()
	if err != nil {
		manager.Close()
		return nil, domain.SystemError(err, "initialize input subsystem")
	}

	s := newSession(manager, input, logger)
	defer func() {
		if err != nil {
			s.Close()
		}
	}()

	paths, err := manager.Enumerate()
	if err != nil {
		return nil, domain.SystemError(err, "enumerate input devices")
	}
	for _, path := range paths {
		if _, addErr := s.AddDevice(path); addErr != nil {
			s.logger.Debug().Err(addErr).Str("path", path).Msg("skipping input device")
		}
	}
	if input.Len() == 0 {
		return nil, domain.SystemError(nil, "no accessible keyboard found in %s", inputDir)
	}

	s.logger.Info().Int("keyboards", input.Len()).Msg("input devices are accessible")
	return s, nil
}

func newSession(manager *Manager, input *Input, logger zerolog.Logger) *Session {
	return &Session{
		manager: manager,
		input:   input,
		logger:  logger.With().Str("component", "input_session").Logger(),
		open:    evdev.Open,
	}
}

// AddDevice opens path and registers it if it is a keyboard. It reports whether the
// device was registered; non-keyboards are closed again without error.
func (s *Session) AddDevice(path string) (bool, error) {
	if s.input.Has(path) {
		return false, nil
	}
	dev, err := s.open(path)
	if err != nil {
		return false, err
	}
	ok, err := dev.IsKeyboard()
	if err != nil || !ok {
		dev.Close()
		return false, err
	}
	if err := s.input.Add(dev); err != nil {
		dev.Close()
		return false, err
	}

	name := dev.Name
	if name == "" && s.manager != nil {
		name = s.manager.DeviceName(path)
	}
	s.logger.Info().Str("path", path).Str("name", name).Msg("keyboard attached")
	return true, nil
}

// Devices returns the number of keyboards currently attached.
func (s *Session) Devices() int {
	return s.input.Len()
}

// Wait applies pending hotplug changes, then waits up to timeout for key activity.
func (s *Session) Wait(timeout time.Duration) (bool, error) {
	s.dispatchHotplug()

	ready, err := s.input.Wait(timeout)
	if err != nil {
		return false, err
	}
	s.ready = ready
	return len(ready) > 0, nil
}

// Drain reads every queued event from the devices reported ready by the last Wait.
// A device that has gone away is detached; other read failures are returned joined
// after all devices have been drained.
func (s *Session) Drain(emit func(evdev.Event)) error {
	ready := s.ready
	s.ready = nil

	var errs []error
	for _, dev := range ready {
		_, err := dev.Read(emit)
		switch {
		case err == nil:
		case errors.Is(err, evdev.ErrDeviceGone):
			s.logger.Info().Str("path", dev.Path).Msg("keyboard detached")
			if rmErr := s.input.Remove(dev.Path); rmErr != nil {
				errs = append(errs, rmErr)
			}
		default:
			errs = append(errs, fmt.Errorf("drain %s: %w", dev.Path, err))
		}
	}
	return errors.Join(errs...)
}

func (s *Session) dispatchHotplug() {
	if s.manager == nil {
		return
	}
	for _, change := range s.manager.Changes() {
		switch change.Op {
		case DeviceAdded:
			if _, err := s.AddDevice(change.Path); err != nil {
				s.logger.Debug().Err(err).Str("path", change.Path).Msg("ignoring hotplugged device")
			}
		case DeviceRemoved:
			if s.input.Has(change.Path) {
				s.logger.Info().Str("path", change.Path).Msg("keyboard detached")
			}
			if err := s.input.Remove(change.Path); err != nil {
				s.logger.Warn().Err(err).Str("path", change.Path).Msg("release removed device")
			}
		}
	}
}

// Close releases the input multiplexer, every device and the hotplug watcher.
func (s *Session) Close() error {
	var errs []error
	if s.input != nil {
		errs = append(errs, s.input.Close())
	}
	if s.manager != nil {
		errs = append(errs, s.manager.Close())
	}
	return errors.Join(errs...)
}
