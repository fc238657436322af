package app

import (
	"context"
	"log"
	"time"

	"github.com/five82/searchbox/internal/catalog"
	"github.com/five82/searchbox/internal/source"
)

const (
	defaultPollInterval = 30 * time.Second
	maxBackoff          = 30 * time.Second
	// maxBackoffFactor bounds backoff for intervals near or above maxBackoff.
	maxBackoffFactor = 4
)

// ItemSetter receives refreshed item lists.
type ItemSetter interface {
	SetItems(items []catalog.Item) error
}

// StartPoller launches a background goroutine that re-fetches items and
// hands them to target. It returns immediately. Failures back off
// exponentially (see calculateBackoff); onReload, if set, receives the new item
// count after each successful reload.
func StartPoller(ctx context.Context, target ItemSetter, fetcher source.Fetcher, interval time.Duration, onReload func(int)) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		failures := 0
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			if ctx.Err() != nil {
				return
			}
			if err := reload(ctx, target, fetcher, onReload); err != nil {
				if ctx.Err() != nil {
					return
				}
				failures++
				log.Printf("item refresh failed (attempt %d): %v", failures, err)
			} else {
				failures = 0
			}
			timer.Reset(calculateBackoff(failures, interval))
		}
	}()
}

func reload(ctx context.Context, target ItemSetter, fetcher source.Fetcher, onReload func(int)) error {
	items, err := fetcher.Fetch(ctx)
	if err != nil {
		return err
	}
	if err := target.SetItems(items); err != nil {
		return err
	}
	if onReload != nil {
		onReload(len(items))
	}
	return nil
}

// calculateBackoff doubles base for every consecutive failure. The delay
// never exceeds backoffCeiling(base) and never drops below base.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	ceiling := backoffCeiling(base)
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= ceiling {
			return ceiling
		}
	}
	return d
}

// backoffCeiling is maxBackoff, or maxBackoffFactor intervals when that is
// longer.
func backoffCeiling(base time.Duration) time.Duration {
	return max(maxBackoff, base*maxBackoffFactor)
}
