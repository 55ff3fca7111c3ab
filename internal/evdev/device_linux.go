//go:build linux

package evdev

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	iocRead = 2

	evdevIocType = 'E'
	nameLen      = 256
	readBatch    = 64
)

func ioc(dir, typ, nr, size uintptr) uintptr {
	return dir<<30 | size<<16 | typ<<8 | nr
}

func eviocgbit(ev uint16, size int) uintptr {
	return ioc(iocRead, evdevIocType, 0x20+uintptr(ev), uintptr(size))
}

func eviocgname(size int) uintptr {
	return ioc(iocRead, evdevIocType, 0x06, uintptr(size))
}

func ioctlBytes(fd int, req uintptr, buf []byte) (int, error) {
	n, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(unsafe.Pointer(&buf[0])))
	if errno != 0 {
		return 0, errno
	}
	return int(n), nil
}

// ErrDeviceGone is returned by Read once the device node has been unplugged.
var ErrDeviceGone = errors.New("input device removed")

// Device is an open, non-blocking evdev node.
type Device struct {
	Path string
	Name string
	fd   int
	buf  []byte
}

// Open opens path read-only and non-blocking and queries its name.
func Open(path string) (*Device, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	d := &Device{Path: path, fd: fd, buf: make([]byte, EventSize*readBatch)}

	name := make([]byte, nameLen)
	if n, err := ioctlBytes(fd, eviocgname(nameLen), name); err == nil && n > 0 {
		d.Name = strings.TrimRight(string(name[:n]), "\x00")
	}
	return d, nil
}

// Fd returns the underlying descriptor for registration with a poller.
func (d *Device) Fd() int {
	return d.fd
}

// IsKeyboard reports whether the device advertises EV_KEY with the letter A and the space bar.
// Power buttons, mice and lid switches also emit EV_KEY but lack these keys.
func (d *Device) IsKeyboard() (bool, error) {
	types := make([]byte, int(EvMax)/8+1)
	if _, err := ioctlBytes(d.fd, eviocgbit(0, len(types)), types); err != nil {
		return false, fmt.Errorf("query event types of %s: %w", d.Path, err)
	}
	if !testBit(types, uint(EvKey)) {
		return false, nil
	}

	keys := make([]byte, int(KeyMax)/8+1)
	if _, err := ioctlBytes(d.fd, eviocgbit(EvKey, len(keys)), keys); err != nil {
		return false, fmt.Errorf("query keys of %s: %w", d.Path, err)
	}
	return testBit(keys, 30) && testBit(keys, 57), nil
}

// Read decodes every event currently queued on the device, calling emit for each,
// and stops when the kernel reports no more data.
func (d *Device) Read(emit func(Event)) (int, error) {
	total := 0
	for {
		n, err := unix.Read(d.fd, d.buf)
		switch {
		case errors.Is(err, unix.EINTR):
			continue
		case errors.Is(err, unix.EAGAIN):
			return total, nil
		case errors.Is(err, unix.ENODEV):
			return total, ErrDeviceGone
		case err != nil:
			return total, fmt.Errorf("read %s: %w", d.Path, err)
		case n == 0:
			return total, ErrDeviceGone
		}

		events, err := Decode(d.buf[:n])
		for _, ev := range events {
			emit(ev)
		}
		total += len(events)
		if err != nil {
			return total, err
		}
	}
}

// Close releases the descriptor. It is safe to call more than once.
func (d *Device) Close() error {
	if d.fd < 0 {
		return nil
	}
	err := unix.Close(d.fd)
	d.fd = -1
	return err
}

// WrapFd adopts an already open descriptor, such as the read end of a pipe in tests.
func WrapFd(path string, fd int) *Device {
	return &Device{Path: path, fd: fd, buf: make([]byte, EventSize*readBatch)}
}

func testBit(bits []byte, bit uint) bool {
	idx := bit / 8
	if int(idx) >= len(bits) {
		return false
	}
	return bits[idx]&(1<<(bit%8)) != 0
}
