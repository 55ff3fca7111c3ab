//go:build linux

package device

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/sys/unix"

	"github.com/nilszeilon/keystats/internal/evdev"
)

const maxEpollEvents = 32

// Input multiplexes every open keyboard behind a single epoll descriptor.
type Input struct {
	epfd    int
	byFd    map[int]*evdev.Device
	byPath  map[string]*evdev.Device
	pending []unix.EpollEvent
}

// OpenInput creates the epoll instance. The caller must Close it.
func OpenInput() (*Input, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("epoll create: %w", err)
	}
	return &Input{
		epfd:    epfd,
		byFd:    make(map[int]*evdev.Device),
		byPath:  make(map[string]*evdev.Device),
		pending: make([]unix.EpollEvent, maxEpollEvents),
	}, nil
}

// Fd is the descriptor that becomes readable when any device has events.
func (in *Input) Fd() int {
	return in.epfd
}

// Add registers dev. Ownership of dev passes to Input.
func (in *Input) Add(dev *evdev.Device) error {
	ev := unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(dev.Fd())}
	if err := unix.EpollCtl(in.epfd, unix.EPOLL_CTL_ADD, dev.Fd(), &ev); err != nil {
		return fmt.Errorf("register %s: %w", dev.Path, err)
	}
	in.byFd[dev.Fd()] = dev
	in.byPath[dev.Path] = dev
	return nil
}

// Has reports whether a device node is already registered.
func (in *Input) Has(path string) bool {
	_, ok := in.byPath[path]
	return ok
}

// Len returns the number of registered devices.
func (in *Input) Len() int {
	return len(in.byPath)
}

// Remove unregisters and closes the device at path.
func (in *Input) Remove(path string) error {
	dev, ok := in.byPath[path]
	if !ok {
		return nil
	}
	delete(in.byPath, path)
	delete(in.byFd, dev.Fd())

	_ = unix.EpollCtl(in.epfd, unix.EPOLL_CTL_DEL, dev.Fd(), nil)
	return dev.Close()
}

// Wait blocks for at most timeout and returns the devices with queued events.
// An interrupted wait is reported as no activity.
func (in *Input) Wait(timeout time.Duration) ([]*evdev.Device, error) {
	n, err := unix.EpollWait(in.epfd, in.pending, int(timeout.Milliseconds()))
	if errors.Is(err, unix.EINTR) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("epoll wait: %w", err)
	}

	ready := make([]*evdev.Device, 0, n)
	for _, ev := range in.pending[:n] {
		if dev, ok := in.byFd[int(ev.Fd)]; ok {
			ready = append(ready, dev)
		}
	}
	return ready, nil
}

// Close closes every device and the epoll descriptor.
func (in *Input) Close() error {
	var errs []error
	for path := range in.byPath {
		if err := in.Remove(path); err != nil {
			errs = append(errs, err)
		}
	}
	if in.epfd >= 0 {
		if err := unix.Close(in.epfd); err != nil {
			errs = append(errs, fmt.Errorf("close epoll: %w", err))
		}
		in.epfd = -1
	}
	return errors.Join(errs...)
}
