// Package config loads searchbox's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/searchbox/config.toml (default)
//  3. If the config file doesn't exist, fall back to Defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # TOML Format
//
//	items_path = "~/movies.json"        # or items_url = "localhost:8080/movies.json"
//	items_json_path = "data.movies"     # gjson path; empty = document root
//	id_key = "id"
//	keys = ["title", "description"]
//	result_string_key_name = "title"
//	use_caching = true
//	input_debounce_ms = 200             # 0 disables debouncing
//	case_sensitive = false
//	limit = 0
//	threshold = 0.0
//	min_match_char_length = 0
//	preserve_order = false
//	auto_focus = true
//	max_displayed = 10
//	placeholder = "Search"
//	cache_backend = "memory"            # or "sqlite"
//	cache_path = "~/.local/share/searchbox/session.db"
//	refresh_seconds = 0                 # reload items_url periodically
//	log_file = ""
//
// Tilde expansion is performed for items_path, cache_path and log_file.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML parse errors and unknown cache backends. Missing
// config files are not an error.
package config
