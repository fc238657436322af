package debounce

import (
	"sort"
	"sync"
	"time"
)

// Timer is a handle to a scheduled callback.
type Timer interface {
	// Stop cancels the callback. It reports false if the callback already ran
	// or was already stopped.
	Stop() bool
}

// Scheduler runs callbacks after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// RealScheduler schedules on the runtime timer wheel.
type RealScheduler struct{}

// AfterFunc implements Scheduler.
func (RealScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// ManualScheduler is a deterministic Scheduler driven by Advance. Callbacks
// run on the goroutine that advances the clock.
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	queue []*manualTimer
}

type manualTimer struct {
	s     *ManualScheduler
	due   time.Duration
	seq   int
	f     func()
	state int // 0 pending, 1 fired, 2 stopped
}

// NewManualScheduler returns a scheduler whose clock starts at zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// AfterFunc implements Scheduler.
func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d < 0 {
		d = 0
	}
	s.seq++
	t := &manualTimer{s: s, due: s.now + d, seq: s.seq, f: f}
	s.queue = append(s.queue, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if t.state != 0 {
		return false
	}
	t.state = 2
	t.s.removeLocked(t)
	return true
}

func (s *ManualScheduler) removeLocked(t *manualTimer) {
	for i, q := range s.queue {
		if q == t {
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			return
		}
	}
}

// Advance moves the clock forward by d and runs every callback that falls
// due, in deadline order.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		t := s.popDue(target)
		if t == nil {
			break
		}
		t.f()
	}

	s.mu.Lock()
	if s.now < target {
		s.now = target
	}
	s.mu.Unlock()
}

// RunAll runs pending callbacks, including ones scheduled while running,
// until none remain.
func (s *ManualScheduler) RunAll() {
	for {
		t := s.popDue(-1)
		if t == nil {
			return
		}
		t.f()
	}
}

// Pending reports the number of scheduled callbacks that have not run.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Now returns the elapsed virtual time.
func (s *ManualScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// popDue removes the earliest callback due at or before target. A negative
// target accepts any deadline.
func (s *ManualScheduler) popDue(target time.Duration) *manualTimer {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) == 0 {
		return nil
	}
	sort.SliceStable(s.queue, func(i, j int) bool {
		if s.queue[i].due != s.queue[j].due {
			return s.queue[i].due < s.queue[j].due
		}
		return s.queue[i].seq < s.queue[j].seq
	})
	t := s.queue[0]
	if target >= 0 && t.due > target {
		return nil
	}
	s.queue = s.queue[1:]
	t.state = 1
	if t.due > s.now {
		s.now = t.due
	}
	return t
}
