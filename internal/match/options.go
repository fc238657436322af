package match

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultKey is the field searched when no keys are configured.
const DefaultKey = "name"

// ErrInvalidKey reports a malformed searchable field path.
var ErrInvalidKey = errors.New("invalid search key")

// Options control how a Matcher scores and trims candidates.
type Options struct {
	// Keys lists the item fields to search, as dotted paths.
	Keys []string
	// CaseSensitive requires query runes to match case exactly.
	CaseSensitive bool
	// Limit caps the number of results. Zero means unbounded.
	Limit int
	// Threshold in [0,1] enables typo tolerance: a word within
	// floor(Threshold*len(query)) edits of the query matches. Zero disables it.
	Threshold float64
	// MinMatchCharLength makes shorter queries match nothing.
	MinMatchCharLength int
	// PreserveOrder returns matches in item order instead of by relevance.
	PreserveOrder bool
}

// DefaultOptions returns the options used when the host supplies none.
func DefaultOptions() Options {
	return Options{Keys: []string{DefaultKey}}
}

// Normalize returns a copy with blank and duplicate keys removed and numeric
// fields clamped to their valid ranges.
func (o Options) Normalize() Options {
	keys := make([]string, 0, len(o.Keys))
	seen := make(map[string]bool, len(o.Keys))
	for _, k := range o.Keys {
		k = strings.TrimSpace(k)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		keys = []string{DefaultKey}
	}
	o.Keys = keys

	if o.Limit < 0 {
		o.Limit = 0
	}
	if o.MinMatchCharLength < 0 {
		o.MinMatchCharLength = 0
	}
	switch {
	case o.Threshold < 0:
		o.Threshold = 0
	case o.Threshold > 1:
		o.Threshold = 1
	}
	return o
}

// Validate rejects keys with empty path segments such as "a..b".
func (o Options) Validate() error {
	for _, k := range o.Keys {
		for _, part := range strings.Split(k, ".") {
			if strings.TrimSpace(part) == "" {
				return fmt.Errorf("%w %q", ErrInvalidKey, k)
			}
		}
	}
	return nil
}

// Equal reports whether two normalized option sets are identical.
func (o Options) Equal(other Options) bool {
	if len(o.Keys) != len(other.Keys) {
		return false
	}
	for i := range o.Keys {
		if o.Keys[i] != other.Keys[i] {
			return false
		}
	}
	return o.CaseSensitive == other.CaseSensitive &&
		o.Limit == other.Limit &&
		o.Threshold == other.Threshold &&
		o.MinMatchCharLength == other.MinMatchCharLength &&
		o.PreserveOrder == other.PreserveOrder
}
