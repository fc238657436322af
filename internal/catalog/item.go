package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNonStringField is returned when a searchable or display field holds a
// value that is not a string.
var ErrNonStringField = errors.New("field value is not a string")

// Item is a host-defined record. Keys are field names; nested records are
// map[string]any and can be addressed with dotted paths.
type Item map[string]any

// ResultList is an ordered sequence of items, best match first.
type ResultList []Item

// Lookup returns the value at a dotted path such as "author.name".
func (it Item) Lookup(path string) (any, bool) {
	if it == nil {
		return nil, false
	}
	var cur any = map[string]any(it)
	for _, part := range strings.Split(path, ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// String returns the string at path. Missing and nil values report ok=false
// without error.
func (it Item) String(path string) (string, bool, error) {
	v, ok := it.Lookup(path)
	if !ok || v == nil {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", false, fmt.Errorf("%s: %w (got %T)", path, ErrNonStringField, v)
	}
	return s, true, nil
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Item:
		return m, true
	}
	return nil, false
}

// Clone returns a copy of the list. Items themselves are shared.
func (r ResultList) Clone() ResultList {
	if r == nil {
		return nil
	}
	dup := make(ResultList, len(r))
	copy(dup, r)
	return dup
}
