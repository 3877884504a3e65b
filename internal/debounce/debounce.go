package debounce

import (
	"sync"
	"time"
)

// Debouncer collapses bursts of Trigger calls into one action that runs once
// the window has passed without another Trigger.
type Debouncer struct {
	clock  Clock
	window time.Duration
	action func()

	mu    sync.Mutex
	timer Timer
	gen   uint64
}

// New returns a Debouncer that runs action on clock after window of quiet.
// A nil clock uses SystemClock.
func New(clock Clock, window time.Duration, action func()) *Debouncer {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Debouncer{clock: clock, window: window, action: action}
}

// Trigger restarts the quiet window. Any pending run is cancelled.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = d.clock.AfterFunc(d.window, func() { d.fire(gen) })
}

// Cancel drops a pending run. It reports whether one was pending.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer == nil {
		return false
	}
	d.timer.Stop()
	d.timer = nil
	d.gen++
	return true
}

// Pending reports whether a run is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	// A Stop that lost the race against the clock leaves a stale callback.
	if gen != d.gen || d.timer == nil {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()
	d.action()
}
