// Package ui provides the terminal presentation layer for a search box.
//
// # Architecture Overview
//
// The UI is a single Bubble Tea model over a search.Box. The model owns the
// text input and the hover highlight; the box owns the query, the results
// and every host callback.
//
//	keystroke ──> textinput ──> Box.Input ──(debounce)──> pass on timer goroutine
//	                                                          │
//	                             Events channel <─────────────┘ (Host.OnSearch)
//	                                   │
//	              Model.Update <───────┘ searchedMsg ──> View reads Box.Snapshot
//
// Passes complete on timer goroutines, so results reach the model through
// Events, which a blocking tea.Cmd listens on.
//
// # Package Structure
//
//   - app.go: Model, key and mouse handling, rendering, Run
//   - events.go: channel bridge from host callbacks to Bubble Tea messages
//   - keys.go: key bindings
//   - help.go: help overlay and footer hints
//   - theme.go: Lipgloss palettes (Nightfox, Kanagawa, Slate)
//
// # Rendering
//
// The dropdown is drawn directly below the input with one line per result
// and at most Options.MaxDisplayed lines. When a pass yields no results no
// dropdown is drawn at all.
//
// # Keys
//
// Printable keys always go to the input. Commands use special keys:
// up/down move the highlight, enter selects it, esc clears, tab toggles
// focus, ctrl+t cycles the theme, f1 shows help and ctrl+c quits. The mouse
// wheel moves the highlight, hovering a row highlights it and a left click
// selects it.
package ui
