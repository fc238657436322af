// Package search is the core of the search box: it filters a host-supplied
// item list as the user types and reports what happened through Host
// callbacks.
//
// # Flow
//
//	Box.Input → debounce.Controller → (quiet period) → Pipeline.Filter
//	                                                      │
//	                        cache.Get ─ hit ─────────────┤
//	                            │ miss                    │
//	                        match.Matcher → cache.Put ────┤
//	                                                      ↓
//	                              state.Store.Update → Host.OnSearch
//
// An empty query skips the cache and the matcher but still notifies the host
// with an empty result list. OnSearch is called after every pass as
// OnSearch(query, []any{}, results); the middle argument is reserved and
// always empty.
//
// # Caching
//
// With caching disabled the session store is never read or written. With it
// enabled, results are stored under the literal query and the cache is
// cleared whenever the items or the matcher options change.
//
// # Threading
//
// Debounced passes run on timer goroutines. Host callbacks must not call
// Box.Input synchronously; hand the results to the UI goroutine instead.
//
// Selection and focus are never debounced or cached.
package search
