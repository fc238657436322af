// Package state provides thread-safe state management for the search box.
//
// # Overview
//
// This package implements a small store shared by the input side (keystrokes,
// focus and selection gestures) and the filtering side (debounced passes that
// complete on timer goroutines). The UI renders from snapshots of it.
//
// # Architecture
//
//	Input (UI goroutine):          Passes (timer goroutines):
//	┌──────────────────┐          ┌──────────────────────┐
//	│ SetQuery()       │          │ pipeline.Filter()    │
//	│ SetFocused()     │          │        ↓             │
//	│ SetSelected()    │─────────→│ store.Update()       │
//	│        ↓         │ (mutex)  │                      │
//	│ store.Snapshot() │←─────────│                      │
//	└──────────────────┘          └──────────────────────┘
//
// # Update Semantics
//
//	// Successful pass: replace results
//	store.Update("dead", results, nil)
//	→ snapshot.ResultQuery = "dead"
//	→ snapshot.Results = results (cloned)
//
//	// Failed pass: keep previous results, record error
//	store.Update("dead", nil, err)
//	→ snapshot.Results = <unchanged>
//	→ snapshot.LastError = err
//
// Query is recorded on every keystroke, before any pass runs, so the input
// can reflect it without delay. Snapshot.Stale reports whether the results
// lag behind the input.
//
// # Copying
//
// Update and Snapshot clone the result slice and Snapshot copies the error
// value. Items themselves are host-owned and shared.
//
// The zero Store is ready to use.
package state
