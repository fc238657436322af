package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/five82/searchbox/internal/catalog"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_LongIntervals(t *testing.T) {
	tests := []struct {
		base     time.Duration
		failures int
		want     time.Duration
	}{
		{30 * time.Second, 0, 30 * time.Second},
		{30 * time.Second, 1, 60 * time.Second},
		{30 * time.Second, 2, 120 * time.Second},
		{30 * time.Second, 5, 120 * time.Second},
		{60 * time.Second, 1, 120 * time.Second},
		{60 * time.Second, 10, 240 * time.Second},
		{10 * time.Second, 1, 20 * time.Second},
		{10 * time.Second, 3, 40 * time.Second},
	}
	for _, tt := range tests {
		got := calculateBackoff(tt.failures, tt.base)
		if got != tt.want {
			t.Fatalf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, tt.base, got, tt.want)
		}
	}
}

func TestCalculateBackoff_NeverShorterThanInterval(t *testing.T) {
	for _, base := range []time.Duration{time.Second, 30 * time.Second, time.Minute, time.Hour} {
		for failures := 0; failures <= 20; failures++ {
			if got := calculateBackoff(failures, base); got < base {
				t.Fatalf("calculateBackoff(%d, %v) = %v, shorter than the interval", failures, base, got)
			}
		}
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	// Verify that backoff never exceeds maxBackoff regardless of input
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 20; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

type fakeFetcher struct {
	mu    sync.Mutex
	calls int
	fail  int
	items []catalog.Item
}

func (f *fakeFetcher) Fetch(context.Context) ([]catalog.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.fail {
		return nil, errors.New("unavailable")
	}
	return f.items, nil
}

type itemSink struct {
	mu    sync.Mutex
	items []catalog.Item
}

func (s *itemSink) SetItems(items []catalog.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	return nil
}

func TestStartPoller_RecoversAfterFailures(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fetcher := &fakeFetcher{
		fail:  2,
		items: []catalog.Item{{"id": "a", "name": "alpha"}, {"id": "b", "name": "beta"}},
	}
	sink := &itemSink{}
	reloaded := make(chan int, 1)

	StartPoller(ctx, sink, fetcher, time.Millisecond, func(n int) {
		select {
		case reloaded <- n:
		default:
		}
	})

	select {
	case n := <-reloaded:
		if n != 2 {
			t.Fatalf("reloaded count = %d, want 2", n)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("poller never reloaded")
	}

	fetcher.mu.Lock()
	calls := fetcher.calls
	fetcher.mu.Unlock()
	if calls < 3 {
		t.Fatalf("fetch calls = %d, want at least 3", calls)
	}
	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.items) != 2 {
		t.Fatalf("sink items = %d, want 2", len(sink.items))
	}
}

func TestStartPoller_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	fetcher := &fakeFetcher{}
	cancel()
	StartPoller(ctx, &itemSink{}, fetcher, time.Millisecond, nil)
	time.Sleep(20 * time.Millisecond)

	fetcher.mu.Lock()
	defer fetcher.mu.Unlock()
	if fetcher.calls != 0 {
		t.Fatalf("fetch calls after cancel = %d, want 0", fetcher.calls)
	}
}
