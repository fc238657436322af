package debounce

import (
	"sync"
	"time"
)

// DefaultInterval is the quiet period used when none is configured.
const DefaultInterval = 200 * time.Millisecond

// Controller collapses bursts of input into a single call to fire with the
// latest value. An interval of zero disables debouncing: every input fires
// synchronously.
type Controller struct {
	interval  time.Duration
	scheduler Scheduler
	fire      func(string)

	mu      sync.Mutex
	latest  string
	token   uint64
	pending Timer
	closed  bool

	// token and mode of the pass currently inside fire
	runTok      uint64
	runDeferred bool

	runMu sync.Mutex // serializes passes
}

// New returns a Controller. A nil scheduler uses RealScheduler.
func New(interval time.Duration, scheduler Scheduler, fire func(string)) *Controller {
	if interval < 0 {
		interval = 0
	}
	if scheduler == nil {
		scheduler = RealScheduler{}
	}
	return &Controller{interval: interval, scheduler: scheduler, fire: fire}
}

// Interval returns the configured quiet period.
func (c *Controller) Interval() time.Duration {
	return c.interval
}

// OnInputChanged records value as the latest input and schedules a pass for
// it, cancelling any pass still waiting.
func (c *Controller) OnInputChanged(value string) {
	c.input(value, c.interval == 0)
}

// Fire records value as the latest input and runs its pass synchronously,
// whatever the interval. A waiting pass is cancelled and a running deferred
// pass stops being Current.
func (c *Controller) Fire(value string) {
	c.input(value, true)
}

func (c *Controller) input(value string, sync bool) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.latest = value
	c.token++
	tok := c.token
	c.stopLocked()

	if sync {
		c.mu.Unlock()
		c.run(tok, value, false)
		return
	}

	c.pending = c.scheduler.AfterFunc(c.interval, func() {
		c.run(tok, value, true)
	})
	c.mu.Unlock()
}

// run executes a pass. Deferred passes are dropped when newer input arrived
// after they were scheduled.
func (c *Controller) run(tok uint64, value string, deferred bool) {
	c.runMu.Lock()
	defer c.runMu.Unlock()

	c.mu.Lock()
	if deferred {
		if c.closed || tok != c.token {
			c.mu.Unlock()
			return
		}
		c.pending = nil
	}
	c.runTok, c.runDeferred = tok, deferred
	c.mu.Unlock()

	if c.fire != nil {
		c.fire(value)
	}
}

// Current reports whether the pass now inside the fire callback may still
// deliver its results. A deferred pass stops being current as soon as newer
// input, Cancel or Close is recorded; synchronous passes always are.
func (c *Controller) Current() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.runDeferred {
		return true
	}
	return !c.closed && c.runTok == c.token
}

// Latest returns the most recent input value.
func (c *Controller) Latest() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.latest
}

// Pending reports whether a pass is scheduled.
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != nil
}

// Cancel drops the scheduled pass, if any, without firing it.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token++
	c.stopLocked()
}

// Close cancels the scheduled pass and ignores further input.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.token++
	c.stopLocked()
}

func (c *Controller) stopLocked() {
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}
