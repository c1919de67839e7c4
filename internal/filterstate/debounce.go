package filterstate

import (
	"sync"
	"time"
)

// DefaultDebounce coalesces rapid search keystrokes into one query.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer delays a callback until input has been quiet for the configured
// interval. Each Trigger resets the timer; only the last callback in a burst
// runs. Safe for concurrent use.
type Debouncer struct {
	mu       sync.Mutex
	interval time.Duration
	timer    *time.Timer
}

func NewDebouncer(interval time.Duration) *Debouncer {
	if interval <= 0 {
		interval = DefaultDebounce
	}
	return &Debouncer{interval: interval}
}

// Trigger schedules fn to run after the quiet interval, cancelling any
// previously scheduled call.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, fn)
}

// Stop cancels any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
