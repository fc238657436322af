// Package debounce turns a stream of input values into filtering passes.
//
// # Overview
//
// A Controller receives every keystroke's current value. It records the value
// immediately, cancels any pass still waiting, and schedules a new pass after
// a quiet period. Only the pass for the last value of a burst runs; earlier
// passes are dropped silently.
//
//	keystrokes:  a   ab   abc ........ (200ms quiet) ........
//	timers:      x    x    ────────────────────────────────> fire("abc")
//
// An interval of zero is a bypass mode: each value fires synchronously on
// the caller's goroutine and nothing is scheduled.
//
// # Scheduling
//
// Timers come from a Scheduler. RealScheduler uses time.AfterFunc, so passes
// run on runtime timer goroutines. ManualScheduler advances a virtual clock
// on demand and is used by tests and by headless callers that want
// deterministic delivery.
//
// # Ordering
//
// Stopping a time.Timer can race with its expiry. Each input bumps a token
// and a deferred pass only runs if its token is still current when it
// acquires the controller lock, so a pass for an outdated value never starts
// after newer input was recorded. Input can also arrive while a pass is
// already filtering; the fire callback checks Current before delivering
// results and drops them when it reports false. Passes are serialized; the
// fire callback must not feed input back into the same Controller
// synchronously.
package debounce
