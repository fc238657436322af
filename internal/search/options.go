package search

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/five82/searchbox/internal/catalog"
	"github.com/five82/searchbox/internal/debounce"
	"github.com/five82/searchbox/internal/match"
)

const (
	// DefaultResultStringKey is the item field shown as display text.
	DefaultResultStringKey = "name"
	// DefaultMaxDisplayed caps the rows shown in the dropdown.
	DefaultMaxDisplayed = 10
)

// ErrNegativeDebounce reports a negative input debounce interval.
var ErrNegativeDebounce = errors.New("input debounce must not be negative")

// Options configure a search box. The zero value searches the "name" field
// of no items with caching on and the default debounce interval.
type Options struct {
	Items []catalog.Item
	IDKey string
	Match match.Options

	ResultStringKeyName string

	// UseCaching gates every read and write of the result cache. Nil means
	// enabled.
	UseCaching *bool
	// InputDebounce is the quiet period before a filtering pass. Nil means
	// debounce.DefaultInterval; zero disables debouncing.
	InputDebounce *time.Duration

	AutoFocus    bool
	MaxDisplayed int
	Placeholder  string
}

// Ptr returns a pointer to v, for the optional fields of Options.
func Ptr[T any](v T) *T {
	return &v
}

// Normalize fills defaults and validates the configuration.
func (o Options) Normalize() (Options, error) {
	o.IDKey = strings.TrimSpace(o.IDKey)
	if o.IDKey == "" {
		o.IDKey = catalog.DefaultIDKey
	}

	o.ResultStringKeyName = strings.TrimSpace(o.ResultStringKeyName)
	if o.ResultStringKeyName == "" {
		o.ResultStringKeyName = DefaultResultStringKey
	}

	o.Match = o.Match.Normalize()
	if err := o.Match.Validate(); err != nil {
		return o, fmt.Errorf("match options: %w", err)
	}

	if o.UseCaching == nil {
		o.UseCaching = Ptr(true)
	}

	if o.InputDebounce == nil {
		o.InputDebounce = Ptr(debounce.DefaultInterval)
	} else if *o.InputDebounce < 0 {
		return o, fmt.Errorf("%w: %s", ErrNegativeDebounce, *o.InputDebounce)
	}

	if o.MaxDisplayed <= 0 {
		o.MaxDisplayed = DefaultMaxDisplayed
	}
	return o, nil
}

// CachingEnabled reports whether the result cache is consulted.
func (o Options) CachingEnabled() bool {
	return o.UseCaching == nil || *o.UseCaching
}

// Debounce returns the effective quiet period.
func (o Options) Debounce() time.Duration {
	if o.InputDebounce == nil {
		return debounce.DefaultInterval
	}
	return *o.InputDebounce
}
