package search

import (
	"fmt"
	"sync"

	"github.com/five82/searchbox/internal/cache"
	"github.com/five82/searchbox/internal/catalog"
	"github.com/five82/searchbox/internal/match"
	"github.com/five82/searchbox/internal/sessionstore"
)

// SearchFunc receives the outcome of every filtering pass. The reserved
// argument is always an empty, non-nil slice.
type SearchFunc func(query string, reserved []any, results catalog.ResultList)

// Pipeline turns a query into results: empty-query short circuit, cache
// lookup, matcher, cache store, then notification.
type Pipeline struct {
	mu       sync.Mutex
	matcher  match.Matcher
	match    match.Options
	catalog  *catalog.Catalog
	cache    *cache.Cache // nil when caching is disabled
	onSearch SearchFunc
}

// NewPipeline builds a pipeline over the normalized opts. A nil matcher uses
// match.Fuzzy. With caching enabled and a nil store, results are kept in
// memory; with caching disabled store is never touched.
func NewPipeline(opts Options, matcher match.Matcher, store sessionstore.Store, onSearch SearchFunc) (*Pipeline, error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, err
	}
	cat, err := catalog.New(opts.Items, opts.IDKey)
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	if matcher == nil {
		matcher = match.Fuzzy{}
	}

	p := &Pipeline{
		matcher:  matcher,
		match:    opts.Match,
		catalog:  cat,
		onSearch: onSearch,
	}
	if opts.CachingEnabled() {
		if store == nil {
			store = sessionstore.NewMemory()
		}
		p.cache = cache.New(store, cat)
	}
	return p, nil
}

// Filter runs one pass for query and notifies the pass's listener. Matcher
// and cache errors are configuration errors: they are returned and no
// notification is sent.
func (p *Pipeline) Filter(query string) (catalog.ResultList, error) {
	return p.FilterCurrent(query, nil)
}

// FilterCurrent is Filter with a delivery check: when current is non-nil and
// reports false once filtering is done, the pass was overtaken by newer input
// and no notification is sent. The results are still returned and cached.
func (p *Pipeline) FilterCurrent(query string, current func() bool) (catalog.ResultList, error) {
	results, err := p.filter(query)
	if err != nil {
		return nil, err
	}
	if current != nil && !current() {
		return results, nil
	}
	if p.onSearch != nil {
		p.onSearch(query, []any{}, results.Clone())
	}
	return results, nil
}

func (p *Pipeline) filter(query string) (catalog.ResultList, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if query == "" {
		return catalog.ResultList{}, nil
	}

	if p.cache != nil {
		results, ok, err := p.cache.Get(query)
		if err != nil {
			return nil, err
		}
		if ok {
			return results, nil
		}
	}

	results, err := p.matcher.Match(query, p.catalog.Items(), p.match)
	if err != nil {
		return nil, fmt.Errorf("match %q: %w", query, err)
	}
	if results == nil {
		results = catalog.ResultList{}
	}

	if p.cache != nil {
		if err := p.cache.Put(query, results); err != nil {
			return nil, err
		}
	}
	return results, nil
}

// SetItems replaces the item list and clears the cache.
func (p *Pipeline) SetItems(items []catalog.Item) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	cat, err := catalog.New(items, p.catalog.IDField())
	if err != nil {
		return fmt.Errorf("load items: %w", err)
	}
	p.catalog = cat
	if p.cache != nil {
		return p.cache.Reset(cat)
	}
	return nil
}

// SetMatch replaces the matcher options and clears the cache.
func (p *Pipeline) SetMatch(opts match.Options) error {
	opts = opts.Normalize()
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("match options: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if opts.Equal(p.match) {
		return nil
	}
	p.match = opts
	if p.cache != nil {
		return p.cache.Clear()
	}
	return nil
}

// Matcher returns the matcher in use.
func (p *Pipeline) Matcher() match.Matcher {
	return p.matcher
}

// Catalog returns the current item catalog.
func (p *Pipeline) Catalog() *catalog.Catalog {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.catalog
}

// Caching reports whether the result cache is in use.
func (p *Pipeline) Caching() bool {
	return p.cache != nil
}
