package collector

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/nilszeilon/keystats/internal/domain"
	"github.com/nilszeilon/keystats/internal/evdev"
)

// DefaultPollTimeout bounds each wait on the input source.
const DefaultPollTimeout = 100 * time.Millisecond

// Source is the input side of the pump: a bounded wait followed by a drain of
// everything that is queued.
type Source interface {
	Wait(timeout time.Duration) (bool, error)
	Drain(emit func(evdev.Event)) error
}

// Sink durably stores a batch of keystroke records, all or nothing.
type Sink interface {
	Commit(records []domain.KeystrokeRecord) error
}

// Options configures a KeypressCollector.
type Options struct {
	Source        Source
	Sink          Sink
	Logger        zerolog.Logger
	BufferSize    int
	FlushInterval time.Duration
	PollTimeout   time.Duration
	Clock         func() time.Time
	Metrics       *Metrics
	MetricsFile   string
}

// KeypressCollector pumps key presses from a Source into a Sink through a Buffer.
// All of its state is owned by the goroutine calling PollOnce or Run.
type KeypressCollector struct {
	source      Source
	sink        Sink
	logger      zerolog.Logger
	normalizer  *Normalizer
	buffer      *Buffer
	pollTimeout time.Duration
	clock       func() time.Time
	metrics     *Metrics
	metricsFile string
}

// NewKeypressCollector validates opts and returns a collector with an empty buffer.
func NewKeypressCollector(opts Options) (*KeypressCollector, error) {
	if opts.Source == nil {
		return nil, errors.New("input source must not be nil")
	}
	if opts.Sink == nil {
		return nil, errors.New("sink must not be nil")
	}
	if opts.BufferSize < 0 || opts.FlushInterval < 0 || opts.PollTimeout < 0 {
		return nil, errors.New("buffer size, flush interval and poll timeout must not be negative")
	}

	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	pollTimeout := opts.PollTimeout
	if pollTimeout == 0 {
		pollTimeout = DefaultPollTimeout
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = NewMetrics(prometheus.NewRegistry())
	}

	return &KeypressCollector{
		source:      opts.Source,
		sink:        opts.Sink,
		logger:      opts.Logger.With().Str("component", "collector").Logger(),
		normalizer:  NewNormalizer(clock),
		buffer:      NewBuffer(opts.BufferSize, opts.FlushInterval, clock()),
		pollTimeout: pollTimeout,
		clock:       clock,
		metrics:     metrics,
		metricsFile: opts.MetricsFile,
	}, nil
}

// Pending returns the number of buffered records.
func (kc *KeypressCollector) Pending() int {
	return kc.buffer.Len()
}

// PollOnce runs one pump cycle: wait, drain, then apply the flush policy.
// Failures are logged and end the cycle early; they never stop the pump.
func (kc *KeypressCollector) PollOnce() {
	ready, err := kc.source.Wait(kc.pollTimeout)
	if err != nil {
		kc.metrics.PollErrors.Inc()
		kc.logger.Error().Err(err).Msg("poll failed")
		return
	}

	if ready {
		if err := kc.source.Drain(kc.handle); err != nil {
			kc.metrics.PollErrors.Inc()
			kc.logger.Warn().Err(err).Msg("dispatch failed")
		}
	}

	if trigger, due := kc.buffer.Due(kc.clock()); due {
		kc.Flush(trigger)
	}
}

func (kc *KeypressCollector) handle(ev evdev.Event) {
	record, ok := kc.normalizer.Normalize(ev)
	if !ok {
		kc.metrics.EventsDiscarded.Inc()
		return
	}

	kc.buffer.Append(record)
	kc.metrics.KeystrokesBuffered.Inc()
	kc.metrics.BufferLength.Set(float64(kc.buffer.Len()))
	kc.logger.Debug().
		Int("pending", kc.buffer.Len()).
		Int("size", kc.buffer.Cap()).
		Str("key", record.KeyName).
		Uint32("code", record.KeyCode).
		Msg("keystroke buffered")

	// a burst larger than the threshold must not grow the buffer past it
	if kc.buffer.Full() {
		kc.Flush(TriggerSize)
	}
}

// Flush commits the buffer to the sink. The buffer is emptied whether or not the
// commit succeeds, so records of a failed commit are lost.
func (kc *KeypressCollector) Flush(trigger FlushTrigger) error {
	now := kc.clock()
	elapsed := now.Sub(kc.buffer.LastFlush())
	records := kc.buffer.Drain(now)
	if len(records) == 0 {
		return nil
	}

	start := time.Now()
	err := kc.sink.Commit(records)
	kc.metrics.RecordFlush(trigger, len(records), time.Since(start).Seconds(), err)

	if err != nil {
		kc.logger.Error().Err(err).
			Str("trigger", string(trigger)).
			Int("records", len(records)).
			Msg("flush failed, buffered keystrokes dropped")
	} else {
		kc.logger.Debug().
			Str("trigger", string(trigger)).
			Int("records", len(records)).
			Float64("since_last_flush_s", elapsed.Seconds()).
			Msg("buffer flushed")
	}

	if kc.metricsFile != "" {
		if werr := kc.metrics.WriteTextfile(kc.metricsFile); werr != nil {
			kc.logger.Warn().Err(werr).Str("path", kc.metricsFile).Msg("metrics not written")
		}
	}
	return err
}

// Run calls PollOnce until ctx is cancelled and then flushes what is left.
func (kc *KeypressCollector) Run(ctx context.Context) error {
	kc.logger.Info().
		Int("buffer_size", kc.buffer.Cap()).
		Dur("poll_timeout", kc.pollTimeout).
		Msg("keystroke tracing started")

	for {
		select {
		case <-ctx.Done():
			if err := kc.Flush(TriggerShutdown); err != nil {
				return err
			}
			kc.logger.Info().Msg("keystroke tracing stopped")
			return nil
		default:
		}
		kc.PollOnce()
	}
}
