package game

import "time"

// maxDelta caps one tick so a debugger pause or a dragged window does not
// trigger a burst of catch-up updates.
const maxDelta = 100 * time.Millisecond

// fixedSnap is how close a tick must be to the target step to be treated
// as exactly one step, absorbing vsync jitter.
const fixedSnap = time.Second / 4000

// StepTimer drives the update callback in variable or fixed steps and
// tracks elapsed and total time for it.
type StepTimer struct {
	now  func() time.Time
	last time.Time

	fixed    bool
	target   time.Duration
	leftover time.Duration

	elapsed    time.Duration
	total      time.Duration
	frameCount uint64

	fps           int
	framesThisSec int
	secondCounter time.Duration
}

// NewStepTimer creates a variable-step timer on the wall clock.
func NewStepTimer() *StepTimer {
	return newStepTimer(time.Now)
}

func newStepTimer(now func() time.Time) *StepTimer {
	return &StepTimer{
		now:    now,
		last:   now(),
		target: time.Second / 60,
	}
}

// SetFixedRate switches to fixed steps of 1/hz seconds. Zero or negative
// switches back to variable steps.
func (t *StepTimer) SetFixedRate(hz int) {
	if hz <= 0 {
		t.fixed = false
		return
	}
	t.fixed = true
	t.target = time.Second / time.Duration(hz)
}

// ResetElapsed drops time accumulated since the last tick, e.g. after the
// window was suspended.
func (t *StepTimer) ResetElapsed() {
	t.last = t.now()
	t.leftover = 0
	t.fps = 0
	t.framesThisSec = 0
	t.secondCounter = 0
}

// Tick advances the clock and calls update zero or more times: once in
// variable mode, once per whole step accumulated in fixed mode.
func (t *StepTimer) Tick(update func(elapsed, total float64)) {
	now := t.now()
	delta := now.Sub(t.last)
	t.last = now

	if delta > maxDelta {
		delta = maxDelta
	}
	if delta < 0 {
		delta = 0
	}

	t.secondCounter += delta
	lastCount := t.frameCount

	if t.fixed {
		if d := delta - t.target; d < fixedSnap && d > -fixedSnap {
			delta = t.target
		}
		t.leftover += delta
		for t.leftover >= t.target {
			t.elapsed = t.target
			t.total += t.target
			t.leftover -= t.target
			t.frameCount++
			update(t.ElapsedSeconds(), t.TotalSeconds())
		}
	} else {
		t.elapsed = delta
		t.total += delta
		t.leftover = 0
		t.frameCount++
		update(t.ElapsedSeconds(), t.TotalSeconds())
	}

	if t.frameCount != lastCount {
		t.framesThisSec++
	}
	if t.secondCounter >= time.Second {
		t.fps = t.framesThisSec
		t.framesThisSec = 0
		t.secondCounter %= time.Second
	}
}

// ElapsedSeconds returns the duration of the last update step.
func (t *StepTimer) ElapsedSeconds() float64 { return t.elapsed.Seconds() }

// TotalSeconds returns the time covered by all update steps.
func (t *StepTimer) TotalSeconds() float64 { return t.total.Seconds() }

// FrameCount returns the number of update steps so far.
func (t *StepTimer) FrameCount() uint64 { return t.frameCount }

// FPS returns the ticks with at least one update during the last second.
func (t *StepTimer) FPS() int { return t.fps }
