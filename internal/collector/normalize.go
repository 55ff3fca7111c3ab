package collector

import (
	"time"

	"github.com/nilszeilon/keystats/internal/domain"
	"github.com/nilszeilon/keystats/internal/evdev"
)

// Normalizer turns raw input events into keystroke records.
type Normalizer struct {
	clock func() time.Time
}

// NewNormalizer uses clock to date records; nil means time.Now.
func NewNormalizer(clock func() time.Time) *Normalizer {
	if clock == nil {
		clock = time.Now
	}
	return &Normalizer{clock: clock}
}

// Normalize returns a record for keyboard key presses only. Releases, auto-repeats
// and every non-keyboard event yield false.
func (n *Normalizer) Normalize(ev evdev.Event) (domain.KeystrokeRecord, bool) {
	if !ev.IsKeyboard() || !ev.IsPress() {
		return domain.KeystrokeRecord{}, false
	}
	code := uint32(ev.Code)
	return domain.NewKeystrokeRecord(code, KeyName(code), n.clock()), true
}
