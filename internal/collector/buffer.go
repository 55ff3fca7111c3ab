package collector

import (
	"time"

	"github.com/nilszeilon/keystats/internal/domain"
)

// FlushTrigger names the reason a buffer was flushed.
type FlushTrigger string

const (
	TriggerSize     FlushTrigger = "size"
	TriggerInterval FlushTrigger = "interval"
	TriggerShutdown FlushTrigger = "shutdown"
)

const (
	DefaultBufferSize    = 50
	DefaultFlushInterval = 100 * time.Second
)

// Buffer holds pending records in arrival order until a flush drains them.
type Buffer struct {
	records   []domain.KeystrokeRecord
	size      int
	interval  time.Duration
	lastFlush time.Time
}

// NewBuffer creates an empty buffer whose interval is measured from now.
func NewBuffer(size int, interval time.Duration, now time.Time) *Buffer {
	if size <= 0 {
		size = DefaultBufferSize
	}
	if interval <= 0 {
		interval = DefaultFlushInterval
	}
	return &Buffer{
		records:   make([]domain.KeystrokeRecord, 0, size),
		size:      size,
		interval:  interval,
		lastFlush: now,
	}
}

// Append adds r at the end. The buffer is not capped; Due reports when it should be drained.
func (b *Buffer) Append(r domain.KeystrokeRecord) {
	b.records = append(b.records, r)
}

// Len returns the number of pending records.
func (b *Buffer) Len() int {
	return len(b.records)
}

// Cap returns the size threshold.
func (b *Buffer) Cap() int {
	return b.size
}

// Full reports whether the size threshold has been reached.
func (b *Buffer) Full() bool {
	return len(b.records) >= b.size
}

// LastFlush returns the time of the most recent flush attempt.
func (b *Buffer) LastFlush() time.Time {
	return b.lastFlush
}

// Due applies the flush policy: size first, then elapsed time for a non-empty buffer.
func (b *Buffer) Due(now time.Time) (FlushTrigger, bool) {
	if b.Full() {
		return TriggerSize, true
	}
	if len(b.records) > 0 && now.Sub(b.lastFlush) >= b.interval {
		return TriggerInterval, true
	}
	return "", false
}

// Drain hands over the pending records, empties the buffer and restarts the interval at now.
func (b *Buffer) Drain(now time.Time) []domain.KeystrokeRecord {
	records := b.records
	b.records = make([]domain.KeystrokeRecord, 0, b.size)
	b.lastFlush = now
	return records
}
