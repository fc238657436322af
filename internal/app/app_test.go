package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/five82/searchbox/internal/catalog"
	"github.com/five82/searchbox/internal/config"
	"github.com/five82/searchbox/internal/search"
	"github.com/five82/searchbox/internal/source"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const valueItemsJSON = `[
	{"id": 0, "name": "value0"},
	{"id": 1, "name": "value1"},
	{"id": 2, "name": "value2"},
	{"id": 3, "name": "value3"}
]`

func TestLoadConfig_Overrides(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.toml", `
items_url = "http://example.invalid/items.json"
input_debounce_ms = 500
use_caching = true
cache_backend = "sqlite"
`)
	items := writeFile(t, dir, "items.json", valueItemsJSON)

	cfg, err := LoadConfig(Options{
		ConfigPath:    cfgPath,
		ItemsPath:     items,
		Keys:          []string{"title"},
		InputDebounce: search.Ptr(time.Duration(0)),
		UseCaching:    search.Ptr(false),
		CacheBackend:  "Memory",
	})
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ItemsPath != items || cfg.ItemsURL != "" {
		t.Fatalf("items path/url = %q/%q, want %q/empty", cfg.ItemsPath, cfg.ItemsURL, items)
	}
	if len(cfg.Keys) != 1 || cfg.Keys[0] != "title" {
		t.Fatalf("Keys = %v, want [title]", cfg.Keys)
	}
	if cfg.InputDebounce != 0 {
		t.Fatalf("InputDebounce = %v, want 0", cfg.InputDebounce)
	}
	if cfg.UseCaching {
		t.Fatalf("UseCaching = true, want false")
	}
	if cfg.CacheBackend != config.BackendMemory {
		t.Fatalf("CacheBackend = %q, want memory", cfg.CacheBackend)
	}
}

func TestLoadConfig_RejectsUnknownBackend(t *testing.T) {
	_, err := LoadConfig(Options{
		ConfigPath:   filepath.Join(t.TempDir(), "missing.toml"),
		CacheBackend: "redis",
	})
	if !errors.Is(err, config.ErrInvalidBackend) {
		t.Fatalf("LoadConfig error = %v, want ErrInvalidBackend", err)
	}
}

func TestLoadConfig_RejectsNegativeDebounce(t *testing.T) {
	_, err := LoadConfig(Options{
		ConfigPath:    filepath.Join(t.TempDir(), "missing.toml"),
		InputDebounce: search.Ptr(-5 * time.Millisecond),
	})
	if !errors.Is(err, search.ErrNegativeDebounce) {
		t.Fatalf("LoadConfig error = %v, want ErrNegativeDebounce", err)
	}
}

func TestQuery(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		ConfigPath: filepath.Join(dir, "missing.toml"),
		ItemsPath:  writeFile(t, dir, "items.json", valueItemsJSON),
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"value", []string{"value0", "value1", "value2", "value3"}},
		{"value2", []string{"value2"}},
		{"despair", []string{}},
		{"", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			res, err := Query(context.Background(), opts, tt.query)
			if err != nil {
				t.Fatalf("Query(%q): %v", tt.query, err)
			}
			if res.Query != tt.query {
				t.Fatalf("Query = %q, want %q", res.Query, tt.query)
			}
			if len(res.Items) != len(tt.want) || len(res.Display) != len(tt.want) {
				t.Fatalf("results = %v, want %v", res.Display, tt.want)
			}
			for i, want := range tt.want {
				if res.Display[i] != want {
					t.Fatalf("Display[%d] = %q, want %q", i, res.Display[i], want)
				}
			}
		})
	}
}

func TestQuery_NoSource(t *testing.T) {
	_, err := Query(context.Background(), Options{
		ConfigPath: filepath.Join(t.TempDir(), "missing.toml"),
	}, "value")
	if !errors.Is(err, source.ErrNoSource) {
		t.Fatalf("Query error = %v, want ErrNoSource", err)
	}
}

func TestQuery_ConfigurationError(t *testing.T) {
	dir := t.TempDir()
	_, err := Query(context.Background(), Options{
		ConfigPath: filepath.Join(dir, "missing.toml"),
		ItemsPath:  writeFile(t, dir, "items.json", `[{"id": 1, "name": 7}]`),
	}, "value")
	if !errors.Is(err, catalog.ErrNonStringField) {
		t.Fatalf("Query error = %v, want ErrNonStringField", err)
	}
}
