package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/searchbox/internal/catalog"
	"github.com/five82/searchbox/internal/config"
	"github.com/five82/searchbox/internal/prefs"
	"github.com/five82/searchbox/internal/search"
	"github.com/five82/searchbox/internal/sessionstore"
	"github.com/five82/searchbox/internal/source"
	"github.com/five82/searchbox/internal/ui"
)

// Options configure the searchbox application. Non-zero fields override the
// config file.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/searchbox/prefs.toml

	ItemsPath     string
	ItemsURL      string
	ItemsJSONPath string
	Keys          []string
	InputDebounce *time.Duration
	UseCaching    *bool
	CacheBackend  string
	LogFile       string
}

// Result is the outcome of a headless query.
type Result struct {
	Query   string
	Items   catalog.ResultList
	Display []string
}

// LoadConfig reads the config file and applies the overrides in opts.
func LoadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}

	if p := strings.TrimSpace(opts.ItemsPath); p != "" {
		expanded, err := config.ExpandPath(p)
		if err != nil {
			return config.Config{}, fmt.Errorf("items path: %w", err)
		}
		cfg.ItemsPath = expanded
		cfg.ItemsURL = ""
	}
	if u := strings.TrimSpace(opts.ItemsURL); u != "" {
		cfg.ItemsURL = u
		cfg.ItemsPath = ""
	}
	if p := strings.TrimSpace(opts.ItemsJSONPath); p != "" {
		cfg.ItemsJSONPath = p
	}
	if len(opts.Keys) > 0 {
		cfg.Keys = opts.Keys
	}
	if opts.InputDebounce != nil {
		if *opts.InputDebounce < 0 {
			return config.Config{}, fmt.Errorf("%w: %v", search.ErrNegativeDebounce, *opts.InputDebounce)
		}
		cfg.InputDebounce = *opts.InputDebounce
	}
	if opts.UseCaching != nil {
		cfg.UseCaching = *opts.UseCaching
	}
	switch backend := strings.ToLower(strings.TrimSpace(opts.CacheBackend)); backend {
	case "":
	case config.BackendMemory, config.BackendSQLite:
		cfg.CacheBackend = backend
	default:
		return config.Config{}, fmt.Errorf("%w %q", config.ErrInvalidBackend, opts.CacheBackend)
	}
	if p := strings.TrimSpace(opts.LogFile); p != "" {
		cfg.LogFile = p
	}
	return cfg, nil
}

// Run boots the searchbox TUI until the user quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}

	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "searchbox")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	src, err := source.New(cfg.Source())
	if err != nil {
		return err
	}
	items, err := src.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("load items: %w", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	if store != nil {
		defer func() {
			if err := store.Close(); err != nil {
				log.Printf("close session store: %v", err)
			}
		}()
	}

	events := ui.NewEvents()
	defer events.Close()

	host := events.Wrap(search.Host{
		OnSearch: func(query string, _ []any, results catalog.ResultList) {
			log.Printf("search %q: %d results", query, len(results))
		},
		OnSelect: func(item catalog.Item) {
			rememberSelection(opts.PrefsPath, item, cfg.ResultStringKeyName)
		},
		OnError: func(query string, err error) {
			log.Printf("search %q failed: %v", query, err)
		},
	})

	box, err := search.NewBox(cfg.SearchOptions(items), host, search.Deps{Store: store})
	if err != nil {
		return fmt.Errorf("init search box: %w", err)
	}
	defer box.Close()

	if src.Spec().Remote() && cfg.RefreshInterval > 0 {
		StartPoller(ctx, box, src, cfg.RefreshInterval, events.ItemsReloaded)
	}

	return ui.Run(ui.Options{
		Context:   ctx,
		Box:       box,
		Events:    events,
		ItemCount: len(items),
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
	})
}

// Query runs a single filtering pass without a terminal. Debouncing and
// persistent caching are bypassed.
func Query(ctx context.Context, opts Options, query string) (Result, error) {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return Result{}, err
	}
	items, err := source.Load(ctx, cfg.Source())
	if err != nil {
		return Result{}, fmt.Errorf("load items: %w", err)
	}

	searchOpts := cfg.SearchOptions(items)
	searchOpts.InputDebounce = search.Ptr(time.Duration(0))

	var (
		res     = Result{Query: query}
		passErr error
	)
	box, err := search.NewBox(searchOpts, search.Host{
		OnSearch: func(_ string, _ []any, results catalog.ResultList) {
			res.Items = results
		},
		OnError: func(_ string, err error) {
			passErr = err
		},
	}, search.Deps{})
	if err != nil {
		return Result{}, fmt.Errorf("init search box: %w", err)
	}
	defer box.Close()

	box.Input(query)
	if passErr != nil {
		return Result{}, passErr
	}
	if res.Items == nil {
		res.Items = catalog.ResultList{}
	}
	res.Display = make([]string, len(res.Items))
	for i, it := range res.Items {
		res.Display[i] = box.DisplayString(it)
	}
	return res, nil
}

func openStore(cfg config.Config) (sessionstore.Store, error) {
	if !cfg.UseCaching {
		return nil, nil
	}
	if cfg.CacheBackend == config.BackendSQLite {
		store, err := sessionstore.OpenSQLite(cfg.CachePath)
		if err != nil {
			return nil, fmt.Errorf("open session store: %w", err)
		}
		return store, nil
	}
	return sessionstore.NewMemory(), nil
}

func rememberSelection(prefsPath string, item catalog.Item, displayKey string) {
	display, ok, err := item.String(displayKey)
	if err != nil || !ok {
		return
	}
	p, _ := prefs.Load(prefsPath)
	p.Remember(display)
	if err := prefs.Save(prefsPath, p); err != nil {
		log.Printf("save recent selection: %v", err)
	}
}
