// Package evdev reads raw key events from Linux input device nodes.
package evdev

import "time"

// Event types from linux/input-event-codes.h.
const (
	EvSyn uint16 = 0x00
	EvKey uint16 = 0x01
	EvRel uint16 = 0x02
	EvAbs uint16 = 0x03
	EvMsc uint16 = 0x04
	EvMax uint16 = 0x1f
)

// Values carried by EV_KEY events.
const (
	KeyReleased int32 = 0
	KeyPressed  int32 = 1
	KeyRepeated int32 = 2
)

// Code ranges used to tell keyboard keys from pointer and joystick buttons.
const (
	BtnMisc         uint16 = 0x100
	KeyOk           uint16 = 0x160
	BtnDpadUp       uint16 = 0x220
	BtnDpadRight    uint16 = 0x223
	BtnTriggerHappy uint16 = 0x2c0
	KeyMax          uint16 = 0x2ff
)

// Event is one decoded input_event.
type Event struct {
	Time  time.Time
	Type  uint16
	Code  uint16
	Value int32
}

// IsKeyboard reports whether e is an EV_KEY event for a keyboard key rather than a button.
func (e Event) IsKeyboard() bool {
	if e.Type != EvKey || e.Code > KeyMax {
		return false
	}
	return !isButton(e.Code)
}

// IsPress reports whether e is a key-down transition. Auto-repeat is not a press.
func (e Event) IsPress() bool {
	return e.Type == EvKey && e.Value == KeyPressed
}

func isButton(code uint16) bool {
	switch {
	case code >= BtnMisc && code < KeyOk:
		return true
	case code >= BtnDpadUp && code <= BtnDpadRight:
		return true
	case code >= BtnTriggerHappy:
		return true
	}
	return false
}
