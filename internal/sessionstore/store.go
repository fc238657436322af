// Package sessionstore provides key-value stores whose contents live for one
// session: a store is created when a search box mounts and its entries are
// discarded when the store is closed.
package sessionstore

import (
	"errors"
	"sync"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("session store closed")

// Store is a session-scoped key-value store.
type Store interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
	Clear() error
	Close() error
}

// Ensure implementations satisfy Store at compile time.
var (
	_ Store = (*Memory)(nil)
	_ Store = (*SQLite)(nil)
	_ Store = (*Recorder)(nil)
)

// Memory is an in-process Store.
type Memory struct {
	mu      sync.RWMutex
	entries map[string][]byte
	closed  bool
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string][]byte)}
}

// Get implements Store.
func (m *Memory) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, false, ErrClosed
	}
	v, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	return cloneBytes(v), true, nil
}

// Put implements Store.
func (m *Memory) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	m.entries[key] = cloneBytes(value)
	return nil
}

// Clear implements Store.
func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	m.entries = make(map[string][]byte)
	return nil
}

// Close implements Store. Entries are discarded.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = nil
	m.closed = true
	return nil
}

// Len reports the number of entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	dup := make([]byte, len(b))
	copy(dup, b)
	return dup
}

// Recorder wraps a Store and counts calls to it.
type Recorder struct {
	Store Store

	mu     sync.Mutex
	gets   int
	puts   int
	clears int
}

// NewRecorder wraps s.
func NewRecorder(s Store) *Recorder {
	return &Recorder{Store: s}
}

// Get implements Store.
func (r *Recorder) Get(key string) ([]byte, bool, error) {
	r.mu.Lock()
	r.gets++
	r.mu.Unlock()
	return r.Store.Get(key)
}

// Put implements Store.
func (r *Recorder) Put(key string, value []byte) error {
	r.mu.Lock()
	r.puts++
	r.mu.Unlock()
	return r.Store.Put(key, value)
}

// Clear implements Store.
func (r *Recorder) Clear() error {
	r.mu.Lock()
	r.clears++
	r.mu.Unlock()
	return r.Store.Clear()
}

// Close implements Store.
func (r *Recorder) Close() error {
	return r.Store.Close()
}

// Counts returns the number of Get, Put and Clear calls so far.
func (r *Recorder) Counts() (gets, puts, clears int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gets, r.puts, r.clears
}
