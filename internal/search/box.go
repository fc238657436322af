package search

import (
	"fmt"
	"log"

	"github.com/five82/searchbox/internal/catalog"
	"github.com/five82/searchbox/internal/debounce"
	"github.com/five82/searchbox/internal/match"
	"github.com/five82/searchbox/internal/sessionstore"
	"github.com/five82/searchbox/internal/state"
)

// Host receives the search box's events. Every callback is optional.
type Host struct {
	OnSearch SearchFunc
	OnSelect func(item catalog.Item)
	OnFocus  func()
	// OnError receives configuration errors raised by a filtering pass.
	// When nil they are logged.
	OnError func(query string, err error)
}

// Deps are the collaborators a Box is built from. Zero values select
// RealScheduler, an in-memory session store and match.Fuzzy.
type Deps struct {
	Scheduler debounce.Scheduler
	Store     sessionstore.Store
	Matcher   match.Matcher
}

// Box is a search box without a presentation layer: it owns the current
// query, debounces filtering passes and records their results.
type Box struct {
	opts     Options
	host     Host
	pipeline *Pipeline
	ctrl     *debounce.Controller
	state    state.Store
}

// NewBox wires a controller, pipeline and state store for opts.
func NewBox(opts Options, host Host, deps Deps) (*Box, error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, err
	}

	b := &Box{opts: opts, host: host}
	b.pipeline, err = NewPipeline(opts, deps.Matcher, deps.Store, b.searched)
	if err != nil {
		return nil, err
	}
	b.ctrl = debounce.New(opts.Debounce(), deps.Scheduler, b.run)
	return b, nil
}

// Options returns the normalized configuration.
func (b *Box) Options() Options {
	return b.opts
}

// Mount applies AutoFocus.
func (b *Box) Mount() {
	if b.opts.AutoFocus {
		b.Focus()
	}
}

// Input records value as the current query and schedules a filtering pass.
func (b *Box) Input(value string) {
	b.state.SetQuery(value)
	b.ctrl.OnInputChanged(value)
}

func (b *Box) run(query string) {
	if _, err := b.pipeline.FilterCurrent(query, b.ctrl.Current); err != nil {
		if !b.ctrl.Current() {
			return
		}
		b.state.Update(query, nil, err)
		b.fail(query, err)
	}
}

func (b *Box) searched(query string, reserved []any, results catalog.ResultList) {
	b.state.Update(query, results, nil)
	if b.host.OnSearch != nil {
		b.host.OnSearch(query, reserved, results)
	}
}

func (b *Box) fail(query string, err error) {
	if b.host.OnError != nil {
		b.host.OnError(query, err)
		return
	}
	log.Printf("search %q: %v", query, err)
}

// Focus marks the input focused and notifies the host.
func (b *Box) Focus() {
	b.state.SetFocused(true)
	if b.host.OnFocus != nil {
		b.host.OnFocus()
	}
}

// Blur marks the input unfocused.
func (b *Box) Blur() {
	b.state.SetFocused(false)
}

// Select commits item: the query becomes the item's display string, the
// result list closes and the host is notified once.
func (b *Box) Select(item catalog.Item) {
	b.ctrl.Cancel()
	b.state.SetQuery(b.DisplayString(item))
	b.state.ClearResults()
	b.state.SetSelected(item)
	if b.host.OnSelect != nil {
		b.host.OnSelect(item)
	}
}

// Clear empties the query and the results, drops any pending pass and sends
// the empty-query notification.
func (b *Box) Clear() {
	b.state.SetQuery("")
	b.ctrl.Fire("")
}

// Displayed returns the results to render, at most MaxDisplayed of them.
func (b *Box) Displayed() catalog.ResultList {
	results := b.state.Snapshot().Results
	if len(results) > b.opts.MaxDisplayed {
		results = results[:b.opts.MaxDisplayed]
	}
	return results
}

// DisplayString returns the text shown for item.
func (b *Box) DisplayString(item catalog.Item) string {
	s, ok, err := item.String(b.opts.ResultStringKeyName)
	if ok {
		return s
	}
	if err != nil {
		if v, found := item.Lookup(b.opts.ResultStringKeyName); found {
			return fmt.Sprint(v)
		}
	}
	return ""
}

// Snapshot returns the current state.
func (b *Box) Snapshot() state.Snapshot {
	return b.state.Snapshot()
}

// SetItems replaces the item list, clears the cache and reruns the current
// query against the new items.
func (b *Box) SetItems(items []catalog.Item) error {
	if err := b.pipeline.SetItems(items); err != nil {
		return err
	}
	if q := b.state.Snapshot().Query; q != "" {
		b.ctrl.OnInputChanged(q)
	}
	return nil
}

// SetMatch replaces the matcher options and clears the cache.
func (b *Box) SetMatch(opts match.Options) error {
	if err := b.pipeline.SetMatch(opts); err != nil {
		return err
	}
	b.opts.Match = opts.Normalize()
	return nil
}

// Pipeline exposes the filter pipeline.
func (b *Box) Pipeline() *Pipeline {
	return b.pipeline
}

// Pending reports whether a filtering pass is scheduled.
func (b *Box) Pending() bool {
	return b.ctrl.Pending()
}

// Close cancels any pending pass and ignores further input.
func (b *Box) Close() {
	b.ctrl.Close()
}
