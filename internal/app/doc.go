// Package app wires configuration, item loading, the search box and the UI
// into the searchbox program. It is the composition root.
//
// # Startup
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> LoadConfig()        config file plus command-line overrides
//	       ├─────> prefs.Load()        theme and recent selections
//	       ├─────> source.Fetch()      initial item list (file or URL)
//	       ├─────> openStore()         session store when caching is on
//	       ├─────> search.NewBox()     debounce, cache and matcher
//	       ├─────> StartPoller()       remote sources with refresh_seconds set
//	       └─────> ui.Run()            TUI (blocks)
//
// Query runs the same pipeline once without a terminal. It always bypasses
// the debounce and never opens the SQLite store, so repeated invocations
// do not share cached results.
//
// # Refreshing
//
// For URL sources the poller re-fetches the item list every refresh
// interval and hands it to Box.SetItems, which drops cached results. Failed
// fetches are logged and retried with exponential backoff, capped at 30
// seconds or four refresh intervals, whichever is longer. A successful fetch
// resets the backoff.
//
// # Errors
//
// Fatal (returned from Run): bad config, unreadable or malformed items,
// session store open failure, and invalid search options.
//
// Recoverable (logged): failed refreshes, failed filtering passes and
// preference writes.
package app
