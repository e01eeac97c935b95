// Package audio plays the looping ambient track and recovers the output
// device when it fails.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"go.uber.org/zap"

	"github.com/Faultbox/campfire/internal/logger"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// RetryInterval is the minimum time between device reset attempts.
const RetryInterval = time.Second

// ErrNotStarted is returned when controlling a player with no track.
var ErrNotStarted = errors.New("ambient track not started")

// Output is the audio device. speakerOutput drives the real one.
type Output interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Clear()
	Close()
	Suspend() error
	Resume() error
}

type speakerOutput struct{}

func (speakerOutput) Init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}
func (speakerOutput) Play(s beep.Streamer) { speaker.Play(s) }
func (speakerOutput) Clear()               { speaker.Clear() }
func (speakerOutput) Close()               { speaker.Close() }
func (speakerOutput) Suspend() error       { return speaker.Suspend() }
func (speakerOutput) Resume() error        { return speaker.Resume() }

// Ambient loops one WAV track. A device or stream failure marks the player
// for retry; Update then resets the device and restarts the track, at most
// once per RetryInterval.
type Ambient struct {
	mu  sync.Mutex
	out Output
	log *zap.Logger
	now func() time.Time

	sampleRate beep.SampleRate
	data       []byte
	volume     float64
	muted      bool

	loop *loopStreamer
	ctrl *beep.Ctrl
	vol  *effects.Volume

	ready     bool
	retry     bool
	retryAt   time.Time
	suspended bool
}

// New creates a player on the system speaker.
func New() *Ambient {
	return NewWithOutput(speakerOutput{})
}

// NewWithOutput creates a player on out.
func NewWithOutput(out Output) *Ambient {
	return &Ambient{
		out:        out,
		log:        logger.Named("audio"),
		now:        time.Now,
		sampleRate: DefaultSampleRate,
		volume:     0.7,
	}
}

// Start opens the device and loops data, a WAV file, at volume. If the
// device cannot be opened the error is returned and Update keeps retrying.
func (a *Ambient) Start(data []byte, volume float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.data = data
	a.volume = clamp(volume, 0, 1)

	if err := a.open(); err != nil {
		a.scheduleRetry()
		return err
	}
	return nil
}

// open initializes the device and starts the loop. Caller holds mu.
func (a *Ambient) open() error {
	if len(a.data) == 0 {
		return ErrNotStarted
	}

	// The reader must stay seekable for the loop to rewind.
	streamer, format, err := wav.Decode(bytes.NewReader(a.data))
	if err != nil {
		return fmt.Errorf("decode wav: %w", err)
	}

	if !a.ready {
		if err := a.out.Init(a.sampleRate, a.sampleRate.N(time.Second/30)); err != nil {
			streamer.Close()
			return fmt.Errorf("init speaker: %w", err)
		}
		a.ready = true
	}

	var resampled beep.Streamer = streamer
	if format.SampleRate != a.sampleRate {
		resampled = beep.Resample(4, format.SampleRate, a.sampleRate, streamer)
	}

	a.loop = &loopStreamer{streamer: streamer, resampled: resampled}
	a.ctrl = &beep.Ctrl{Streamer: a.loop}
	a.vol = &effects.Volume{Streamer: a.ctrl, Base: 10}
	a.applyVolume()

	a.out.Play(a.vol)
	a.log.Info("ambient loop started",
		zap.Int("sample_rate", int(format.SampleRate)),
		zap.Float64("volume_db", volumeToDb(a.volume)),
	)
	return nil
}

func (a *Ambient) scheduleRetry() {
	a.retry = true
	a.retryAt = a.now().Add(RetryInterval)
}

// Update runs once per frame. It detects a failed stream and performs a
// pending device reset.
func (a *Ambient) Update() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.suspended || len(a.data) == 0 {
		return
	}

	if a.retry {
		if a.now().Before(a.retryAt) {
			return
		}
		a.retry = false
		a.reset()
		return
	}

	if a.loop != nil && a.loop.Err() != nil {
		a.log.Warn("ambient stream failed, resetting device", zap.Error(a.loop.Err()))
		a.retry = true
		a.retryAt = a.now()
	}
}

// reset closes the device and starts over. Caller holds mu.
func (a *Ambient) reset() {
	a.stop()
	if a.ready {
		a.out.Close()
		a.ready = false
	}
	if err := a.open(); err != nil {
		a.log.Warn("audio device reset failed", zap.Error(err))
		a.scheduleRetry()
		return
	}
	a.log.Info("audio device reset")
}

func (a *Ambient) stop() {
	if a.ctrl != nil {
		a.ctrl.Paused = true
	}
	if a.ready {
		a.out.Clear()
	}
	if a.loop != nil {
		a.loop.streamer.Close()
	}
	a.loop, a.ctrl, a.vol = nil, nil, nil
}

// Retrying reports whether a device reset is pending.
func (a *Ambient) Retrying() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.retry
}

// Playing reports whether the loop is running and not paused.
func (a *Ambient) Playing() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ctrl != nil && !a.ctrl.Paused && !a.suspended
}

// Suspend pauses the device while the application is minimized.
func (a *Ambient) Suspend() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.suspended || !a.ready {
		a.suspended = true
		return
	}
	a.suspended = true
	if err := a.out.Suspend(); err != nil {
		a.log.Warn("suspend audio", zap.Error(err))
	}
}

// Resume restarts the device after Suspend.
func (a *Ambient) Resume() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.suspended {
		return
	}
	a.suspended = false
	if !a.ready {
		return
	}
	if err := a.out.Resume(); err != nil {
		a.log.Warn("resume audio, resetting device", zap.Error(err))
		a.retry = true
		a.retryAt = a.now()
	}
}

// SetVolume sets the loop volume (0.0 to 1.0).
func (a *Ambient) SetVolume(v float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.volume = clamp(v, 0, 1)
	a.applyVolume()
}

// Volume returns the loop volume.
func (a *Ambient) Volume() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.volume
}

// SetMuted silences the loop without stopping it.
func (a *Ambient) SetMuted(muted bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.muted = muted
	a.applyVolume()
}

func (a *Ambient) applyVolume() {
	if a.vol == nil {
		return
	}
	if a.muted || a.volume <= 0 {
		a.vol.Silent = true
		return
	}
	a.vol.Silent = false
	// Base 10 makes Volume the amplitude's log10, so 0.5 is about -6 dB.
	a.vol.Volume = math.Log10(a.volume)
}

// Close stops playback and releases the device.
func (a *Ambient) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stop()
	if a.ready {
		a.out.Close()
		a.ready = false
	}
	a.retry = false
}

// volumeToDb converts a 0-1 volume to decibels.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100 // Effectively silent
	}
	return 20 * math.Log10(vol)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// loopStreamer restarts its source at the end.
type loopStreamer struct {
	streamer  beep.StreamSeekCloser
	resampled beep.Streamer
}

func (l *loopStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	filled := 0
	for filled < len(samples) {
		n, ok := l.resampled.Stream(samples[filled:])
		filled += n
		if !ok {
			if l.streamer.Err() != nil {
				return filled, false
			}
			if err := l.streamer.Seek(0); err != nil {
				return filled, false
			}
			if n == 0 && l.streamer.Len() == 0 {
				// Empty track: nothing to loop.
				return filled, false
			}
		}
	}
	return filled, true
}

func (l *loopStreamer) Err() error {
	return l.streamer.Err()
}
