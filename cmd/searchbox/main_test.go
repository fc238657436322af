package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/searchbox/internal/search"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeItems(t *testing.T) (dir, items string) {
	t.Helper()
	dir = t.TempDir()
	items = filepath.Join(dir, "items.json")
	data := `[{"id": 0, "name": "value0"}, {"id": 1, "name": "value1"}]`
	if err := os.WriteFile(items, []byte(data), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return dir, items
}

func TestQueryCommand_PrintsDisplayStrings(t *testing.T) {
	dir, items := writeItems(t)
	out, err := runCmd(t, "query", "--config", filepath.Join(dir, "missing.toml"), "--items", items, "value1")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if got := strings.TrimSpace(out); got != "value1" {
		t.Fatalf("output = %q, want value1", got)
	}
}

func TestQueryCommand_NegativeDebounceFails(t *testing.T) {
	dir, items := writeItems(t)
	_, err := runCmd(t, "query", "--config", filepath.Join(dir, "missing.toml"), "--items", items, "--debounce=-5", "value")
	if !errors.Is(err, search.ErrNegativeDebounce) {
		t.Fatalf("query error = %v, want ErrNegativeDebounce", err)
	}
}

func TestQueryCommand_ZeroDebounceIsAccepted(t *testing.T) {
	dir, items := writeItems(t)
	if _, err := runCmd(t, "query", "--config", filepath.Join(dir, "missing.toml"), "--items", items, "--debounce", "0", "value"); err != nil {
		t.Fatalf("query with --debounce 0: %v", err)
	}
}
