package evdev

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventClassification(t *testing.T) {
	tests := []struct {
		name     string
		ev       Event
		keyboard bool
		press    bool
	}{
		{"key a press", Event{Type: EvKey, Code: 30, Value: KeyPressed}, true, true},
		{"key a release", Event{Type: EvKey, Code: 30, Value: KeyReleased}, true, false},
		{"key a repeat", Event{Type: EvKey, Code: 30, Value: KeyRepeated}, true, false},
		{"mouse left button", Event{Type: EvKey, Code: 0x110, Value: KeyPressed}, false, true},
		{"dpad", Event{Type: EvKey, Code: 0x221, Value: KeyPressed}, false, true},
		{"trigger happy", Event{Type: EvKey, Code: 0x2c1, Value: KeyPressed}, false, true},
		{"key ok", Event{Type: EvKey, Code: KeyOk, Value: KeyPressed}, true, true},
		{"sync", Event{Type: EvSyn}, false, false},
		{"msc scan", Event{Type: EvMsc, Code: 4, Value: 0x70004}, false, false},
		{"relative motion", Event{Type: EvRel, Code: 0, Value: 1}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.keyboard, tt.ev.IsKeyboard())
			assert.Equal(t, tt.press, tt.ev.IsPress())
		})
	}
}
