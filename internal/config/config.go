package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/searchbox/internal/catalog"
	"github.com/five82/searchbox/internal/debounce"
	"github.com/five82/searchbox/internal/match"
	"github.com/five82/searchbox/internal/search"
	"github.com/five82/searchbox/internal/source"
)

// Cache backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// ErrInvalidBackend reports an unknown cache_backend value.
var ErrInvalidBackend = errors.New("unknown cache backend")

// Config captures everything searchbox reads from its config file.
type Config struct {
	ItemsPath     string
	ItemsURL      string
	ItemsJSONPath string

	IDKey               string
	Keys                []string
	ResultStringKeyName string
	UseCaching          bool
	InputDebounce       time.Duration
	CaseSensitive       bool
	Limit               int
	Threshold           float64
	MinMatchCharLength  int
	PreserveOrder       bool
	AutoFocus           bool
	MaxDisplayed        int
	Placeholder         string

	CacheBackend    string
	CachePath       string
	RefreshInterval time.Duration
	LogFile         string
}

const (
	defaultConfigPath  = "~/.config/searchbox/config.toml"
	defaultCachePath   = "~/.local/share/searchbox/session.db"
	defaultPlaceholder = "Search"
)

// Defaults returns the configuration used when no file exists.
func Defaults() Config {
	return Config{
		IDKey:               catalog.DefaultIDKey,
		Keys:                []string{match.DefaultKey},
		ResultStringKeyName: search.DefaultResultStringKey,
		UseCaching:          true,
		InputDebounce:       debounce.DefaultInterval,
		AutoFocus:           true,
		MaxDisplayed:        search.DefaultMaxDisplayed,
		Placeholder:         defaultPlaceholder,
		CacheBackend:        BackendMemory,
		CachePath:           mustExpand(defaultCachePath),
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		ItemsPath           string   `toml:"items_path"`
		ItemsURL            string   `toml:"items_url"`
		ItemsJSONPath       string   `toml:"items_json_path"`
		IDKey               string   `toml:"id_key"`
		Keys                []string `toml:"keys"`
		ResultStringKeyName string   `toml:"result_string_key_name"`
		UseCaching          *bool    `toml:"use_caching"`
		InputDebounceMS     *int     `toml:"input_debounce_ms"`
		CaseSensitive       bool     `toml:"case_sensitive"`
		Limit               int      `toml:"limit"`
		Threshold           float64  `toml:"threshold"`
		MinMatchCharLength  int      `toml:"min_match_char_length"`
		PreserveOrder       bool     `toml:"preserve_order"`
		AutoFocus           *bool    `toml:"auto_focus"`
		MaxDisplayed        int      `toml:"max_displayed"`
		Placeholder         string   `toml:"placeholder"`
		CacheBackend        string   `toml:"cache_backend"`
		CachePath           string   `toml:"cache_path"`
		RefreshSeconds      int      `toml:"refresh_seconds"`
		LogFile             string   `toml:"log_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if p := strings.TrimSpace(raw.ItemsPath); p != "" {
		cfg.ItemsPath = mustExpand(p)
	}
	cfg.ItemsURL = strings.TrimSpace(raw.ItemsURL)
	cfg.ItemsJSONPath = strings.TrimSpace(raw.ItemsJSONPath)

	if v := strings.TrimSpace(raw.IDKey); v != "" {
		cfg.IDKey = v
	}
	if len(raw.Keys) > 0 {
		cfg.Keys = raw.Keys
	}
	if v := strings.TrimSpace(raw.ResultStringKeyName); v != "" {
		cfg.ResultStringKeyName = v
	}
	if raw.UseCaching != nil {
		cfg.UseCaching = *raw.UseCaching
	}
	if raw.InputDebounceMS != nil {
		if *raw.InputDebounceMS < 0 {
			return Config{}, fmt.Errorf("input_debounce_ms: %w", search.ErrNegativeDebounce)
		}
		cfg.InputDebounce = time.Duration(*raw.InputDebounceMS) * time.Millisecond
	}
	cfg.CaseSensitive = raw.CaseSensitive
	cfg.Limit = raw.Limit
	cfg.Threshold = raw.Threshold
	cfg.MinMatchCharLength = raw.MinMatchCharLength
	cfg.PreserveOrder = raw.PreserveOrder
	if raw.AutoFocus != nil {
		cfg.AutoFocus = *raw.AutoFocus
	}
	if raw.MaxDisplayed > 0 {
		cfg.MaxDisplayed = raw.MaxDisplayed
	}
	if v := strings.TrimSpace(raw.Placeholder); v != "" {
		cfg.Placeholder = v
	}

	switch backend := strings.ToLower(strings.TrimSpace(raw.CacheBackend)); backend {
	case "":
	case BackendMemory, BackendSQLite:
		cfg.CacheBackend = backend
	default:
		return Config{}, fmt.Errorf("%w %q", ErrInvalidBackend, raw.CacheBackend)
	}
	if p := strings.TrimSpace(raw.CachePath); p != "" {
		cfg.CachePath = mustExpand(p)
	}
	if raw.RefreshSeconds > 0 {
		cfg.RefreshInterval = time.Duration(raw.RefreshSeconds) * time.Second
	}
	if p := strings.TrimSpace(raw.LogFile); p != "" {
		cfg.LogFile = mustExpand(p)
	}

	return cfg, nil
}

// Source returns where items are loaded from.
func (c Config) Source() source.Spec {
	return source.Spec{Path: c.ItemsPath, URL: c.ItemsURL, JSONPath: c.ItemsJSONPath}
}

// SearchOptions maps the config onto search box options for items.
func (c Config) SearchOptions(items []catalog.Item) search.Options {
	return search.Options{
		Items: items,
		IDKey: c.IDKey,
		Match: match.Options{
			Keys:               append([]string(nil), c.Keys...),
			CaseSensitive:      c.CaseSensitive,
			Limit:              c.Limit,
			Threshold:          c.Threshold,
			MinMatchCharLength: c.MinMatchCharLength,
			PreserveOrder:      c.PreserveOrder,
		},
		ResultStringKeyName: c.ResultStringKeyName,
		UseCaching:          search.Ptr(c.UseCaching),
		InputDebounce:       search.Ptr(c.InputDebounce),
		AutoFocus:           c.AutoFocus,
		MaxDisplayed:        c.MaxDisplayed,
		Placeholder:         c.Placeholder,
	}
}

// ExpandPath resolves a leading tilde and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
