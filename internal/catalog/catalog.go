package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// DefaultIDKey is the identifier field used when the host does not name one.
const DefaultIDKey = "id"

var (
	// ErrMissingID is returned when an item has no identifier value.
	ErrMissingID = errors.New("item has no id")
	// ErrDuplicateID is returned when two items share an identifier.
	ErrDuplicateID = errors.New("duplicate item id")
)

// Catalog is a validated, immutable item list. Each Catalog is a distinct
// configuration even when built from the same slice.
type Catalog struct {
	items      []Item
	idKey      string
	byID       map[string]int
	generation string
}

// New validates items and indexes them by id.
func New(items []Item, idKey string) (*Catalog, error) {
	idKey = strings.TrimSpace(idKey)
	if idKey == "" {
		idKey = DefaultIDKey
	}

	c := &Catalog{
		items:      make([]Item, len(items)),
		idKey:      idKey,
		byID:       make(map[string]int, len(items)),
		generation: uuid.NewString(),
	}
	copy(c.items, items)

	for i, it := range c.items {
		v, ok := it.Lookup(idKey)
		if !ok || v == nil {
			return nil, fmt.Errorf("item %d: %w (key %q)", i, ErrMissingID, idKey)
		}
		key := IDKey(v)
		if prev, dup := c.byID[key]; dup {
			return nil, fmt.Errorf("items %d and %d: %w %s", prev, i, ErrDuplicateID, key)
		}
		c.byID[key] = i
	}
	return c, nil
}

// IDKey canonicalizes an identifier value. Numbers decoded as json.Number and
// native Go numbers with the same value produce the same key.
func IDKey(v any) string {
	return fmt.Sprint(v)
}

// Items returns the catalog's items. Callers must not modify the slice.
func (c *Catalog) Items() []Item {
	if c == nil {
		return nil
	}
	return c.items
}

// Len reports the number of items.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// IDField returns the identifier field name.
func (c *Catalog) IDField() string {
	return c.idKey
}

// Generation identifies this configuration.
func (c *Catalog) Generation() string {
	if c == nil {
		return ""
	}
	return c.generation
}

// IDOf returns the canonical id of it, or "" when it has none.
func (c *Catalog) IDOf(it Item) string {
	v, ok := it.Lookup(c.idKey)
	if !ok || v == nil {
		return ""
	}
	return IDKey(v)
}

// ByID returns the live item with the given canonical id.
func (c *Catalog) ByID(key string) (Item, bool) {
	if c == nil {
		return nil, false
	}
	i, ok := c.byID[key]
	if !ok {
		return nil, false
	}
	return c.items[i], true
}
