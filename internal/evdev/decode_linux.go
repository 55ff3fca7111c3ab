//go:build linux

package evdev

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// inputEvent mirrors struct input_event for the running architecture.
type inputEvent struct {
	Time  unix.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

// EventSize is the size in bytes of one input_event on this platform.
var EventSize = int(unsafe.Sizeof(inputEvent{}))

// Decode splits buf into events. The kernel only hands out whole events,
// so a length that is not a multiple of EventSize is reported as malformed.
func Decode(buf []byte) ([]Event, error) {
	if len(buf)%EventSize != 0 {
		return nil, fmt.Errorf("malformed read of %d bytes (event size %d)", len(buf), EventSize)
	}
	events := make([]Event, 0, len(buf)/EventSize)
	r := bytes.NewReader(buf)
	for r.Len() > 0 {
		var raw inputEvent
		if err := binary.Read(r, binary.NativeEndian, &raw); err != nil {
			return events, fmt.Errorf("decode input event: %w", err)
		}
		events = append(events, Event{
			Time:  time.Unix(int64(raw.Time.Sec), int64(raw.Time.Usec)*int64(time.Microsecond)),
			Type:  raw.Type,
			Code:  raw.Code,
			Value: raw.Value,
		})
	}
	return events, nil
}

// Encode is the inverse of Decode. It is used to feed synthetic events through pipes.
func Encode(events ...Event) []byte {
	var buf bytes.Buffer
	for _, ev := range events {
		raw := inputEvent{
			Time:  unix.NsecToTimeval(ev.Time.UnixNano()),
			Type:  ev.Type,
			Code:  ev.Code,
			Value: ev.Value,
		}
		_ = binary.Write(&buf, binary.NativeEndian, &raw)
	}
	return buf.Bytes()
}
