package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/searchbox/internal/catalog"
	"github.com/five82/searchbox/internal/search"
)

// Messages delivered from the search box to the model.

type searchedMsg struct {
	query string
	count int
}

type searchErrorMsg struct {
	query string
	err   error
}

type itemsMsg struct {
	count int
}

// Events carries search box callbacks, which fire on timer goroutines, to
// the Bubble Tea program.
type Events struct {
	ch   chan tea.Msg
	done chan struct{}
	once sync.Once
}

// NewEvents returns an open event channel.
func NewEvents() *Events {
	return &Events{
		ch:   make(chan tea.Msg, 64),
		done: make(chan struct{}),
	}
}

// Wrap returns host with its search and error callbacks also reported to
// the UI.
func (e *Events) Wrap(host search.Host) search.Host {
	onSearch := host.OnSearch
	host.OnSearch = func(query string, reserved []any, results catalog.ResultList) {
		if onSearch != nil {
			onSearch(query, reserved, results)
		}
		e.send(searchedMsg{query: query, count: len(results)})
	}
	onError := host.OnError
	host.OnError = func(query string, err error) {
		if onError != nil {
			onError(query, err)
		}
		e.send(searchErrorMsg{query: query, err: err})
	}
	return host
}

// ItemsReloaded reports a new item list.
func (e *Events) ItemsReloaded(count int) {
	e.send(itemsMsg{count: count})
}

// Close unblocks pending senders and the listening command.
func (e *Events) Close() {
	e.once.Do(func() { close(e.done) })
}

func (e *Events) send(msg tea.Msg) {
	select {
	case e.ch <- msg:
	case <-e.done:
	}
}

// wait returns a command that blocks until the next event.
func (e *Events) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-e.ch:
			return msg
		case <-e.done:
			return nil
		}
	}
}
