package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/five82/searchbox/internal/app"
)

var errNoTerminal = errors.New("interactive mode needs a terminal; use \"searchbox query\"")

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "searchbox: %v\n", err)
		return 1
	}
	return 0
}

// flags holds the command-line values shared by every subcommand.
type flags struct {
	configPath   string
	prefsPath    string
	itemsPath    string
	itemsURL     string
	jsonPath     string
	keys         string
	debounceMS   int
	noCache      bool
	cacheBackend string
	logFile      string
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:   "searchbox",
		Short: "Fuzzy search box over a JSON item list",
		Long: `searchbox loads a JSON array of items from a file or URL and filters it
as you type. Results are cached per query for the session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal() {
				return errNoTerminal
			}
			return app.Run(cmd.Context(), f.options(cmd))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "config file path (default ~/.config/searchbox/config.toml)")
	pf.StringVar(&f.prefsPath, "prefs", "", "preferences file path (default ~/.config/searchbox/prefs.toml)")
	pf.StringVar(&f.itemsPath, "items", "", "JSON file holding the items")
	pf.StringVar(&f.itemsURL, "url", "", "URL serving the items as JSON")
	pf.StringVar(&f.jsonPath, "json-path", "", "gjson path selecting the item array")
	pf.StringVar(&f.keys, "keys", "", "comma-separated fields to search")
	pf.IntVar(&f.debounceMS, "debounce", 0, "input debounce in milliseconds")
	pf.BoolVar(&f.noCache, "no-cache", false, "disable result caching")
	pf.StringVar(&f.cacheBackend, "cache-backend", "", "session store: memory or sqlite")
	pf.StringVar(&f.logFile, "log-file", "", "write debug logs to this file")

	root.AddCommand(newQueryCmd(f))
	return root
}

func (f *flags) options(cmd *cobra.Command) app.Options {
	opts := app.Options{
		ConfigPath:    f.configPath,
		PrefsPath:     f.prefsPath,
		ItemsPath:     f.itemsPath,
		ItemsURL:      f.itemsURL,
		ItemsJSONPath: f.jsonPath,
		CacheBackend:  f.cacheBackend,
		LogFile:       f.logFile,
	}
	for _, k := range strings.Split(f.keys, ",") {
		if k = strings.TrimSpace(k); k != "" {
			opts.Keys = append(opts.Keys, k)
		}
	}
	if cmd.Flags().Changed("debounce") {
		d := time.Duration(f.debounceMS) * time.Millisecond
		opts.InputDebounce = &d
	}
	if f.noCache {
		off := false
		opts.UseCaching = &off
	}
	return opts
}

func isTerminal() bool {
	in, out := os.Stdin.Fd(), os.Stdout.Fd()
	return (isatty.IsTerminal(in) || isatty.IsCygwinTerminal(in)) &&
		(isatty.IsTerminal(out) || isatty.IsCygwinTerminal(out))
}
