// Package cache memoizes search results per query for one item catalog.
package cache

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/five82/searchbox/internal/catalog"
	"github.com/five82/searchbox/internal/sessionstore"
)

// Cache maps query strings to result lists. Entries are persisted to a
// session store as JSON arrays of items, keyed by the literal query within
// the catalog's generation, so entries written for another catalog are never
// read back.
type Cache struct {
	mu      sync.Mutex
	store   sessionstore.Store
	catalog *catalog.Catalog
}

// New returns a cache over store for the items of c.
func New(store sessionstore.Store, c *catalog.Catalog) *Cache {
	return &Cache{store: store, catalog: c}
}

// Get returns the cached results for query. A stored entry that names an item
// the catalog no longer holds is reported as a miss.
func (c *Cache) Get(query string) (catalog.ResultList, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, ok, err := c.store.Get(c.key(query))
	if err != nil {
		return nil, false, fmt.Errorf("cache get %q: %w", query, err)
	}
	if !ok {
		return nil, false, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var stored []catalog.Item
	if err := dec.Decode(&stored); err != nil {
		return nil, false, fmt.Errorf("decode cache entry %q: %w", query, err)
	}

	results := make(catalog.ResultList, 0, len(stored))
	for _, it := range stored {
		live, ok := c.catalog.ByID(c.catalog.IDOf(it))
		if !ok {
			return nil, false, nil
		}
		results = append(results, live)
	}
	return results, true, nil
}

// Put stores results under query. Items that cannot be encoded as JSON are a
// configuration error and are returned as such.
func (c *Cache) Put(query string, results catalog.ResultList) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if results == nil {
		results = catalog.ResultList{}
	}
	raw, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("encode results for %q: %w", query, err)
	}
	if err := c.store.Put(c.key(query), raw); err != nil {
		return fmt.Errorf("cache put %q: %w", query, err)
	}
	return nil
}

// Clear drops every entry.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clearLocked()
}

// Reset clears the cache and binds it to a new catalog.
func (c *Cache) Reset(next *catalog.Catalog) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.catalog = next
	return c.clearLocked()
}

func (c *Cache) key(query string) string {
	return c.catalog.Generation() + "/" + query
}

func (c *Cache) clearLocked() error {
	if err := c.store.Clear(); err != nil {
		return fmt.Errorf("cache clear: %w", err)
	}
	return nil
}
