package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/five82/searchbox/internal/catalog"
)

var (
	// ErrNoSource is returned when neither a path nor a URL is configured.
	ErrNoSource = errors.New("no item source configured")
	// ErrInvalidJSON is returned for documents that are not valid JSON.
	ErrInvalidJSON = errors.New("invalid JSON document")
	// ErrNotArray is returned when the selected value is not an array of objects.
	ErrNotArray = errors.New("selection is not an array of objects")
)

// Spec names where items come from. Path wins over URL when both are set.
// JSONPath is a gjson path selecting the item array; empty selects the
// document root.
type Spec struct {
	Path     string
	URL      string
	JSONPath string
}

// Remote reports whether items are fetched over HTTP.
func (s Spec) Remote() bool {
	return strings.TrimSpace(s.Path) == "" && strings.TrimSpace(s.URL) != ""
}

// Fetcher loads an item list. Implemented by *Source.
type Fetcher interface {
	Fetch(ctx context.Context) ([]catalog.Item, error)
}

var _ Fetcher = (*Source)(nil)

// Source loads items for one Spec.
type Source struct {
	spec   Spec
	client *Client
}

// New returns a Source for spec.
func New(spec Spec) (*Source, error) {
	if strings.TrimSpace(spec.Path) == "" && strings.TrimSpace(spec.URL) == "" {
		return nil, ErrNoSource
	}
	return &Source{spec: spec, client: NewClient()}, nil
}

// Load is a convenience for New followed by Fetch.
func Load(ctx context.Context, spec Spec) ([]catalog.Item, error) {
	s, err := New(spec)
	if err != nil {
		return nil, err
	}
	return s.Fetch(ctx)
}

// Spec returns the source's configuration.
func (s *Source) Spec() Spec {
	return s.spec
}

// Fetch reads the document and decodes the selected item array.
func (s *Source) Fetch(ctx context.Context) ([]catalog.Item, error) {
	var (
		data []byte
		err  error
	)
	if path := strings.TrimSpace(s.spec.Path); path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read items: %w", err)
		}
	} else {
		data, err = s.client.Get(ctx, s.spec.URL)
		if err != nil {
			return nil, err
		}
	}
	return Decode(data, s.spec.JSONPath)
}

// Decode selects the item array at jsonPath and decodes each element.
// Numbers are kept as json.Number so large ids survive unchanged.
func Decode(data []byte, jsonPath string) ([]catalog.Item, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}

	var sel gjson.Result
	if p := strings.TrimSpace(jsonPath); p == "" {
		sel = gjson.ParseBytes(data)
	} else {
		sel = gjson.GetBytes(data, p)
		if !sel.Exists() {
			return nil, fmt.Errorf("%w: nothing at %q", ErrNotArray, p)
		}
	}
	if !sel.IsArray() {
		return nil, fmt.Errorf("%w: got %s", ErrNotArray, sel.Type)
	}

	elems := sel.Array()
	items := make([]catalog.Item, 0, len(elems))
	for i, el := range elems {
		if !el.IsObject() {
			return nil, fmt.Errorf("%w: element %d is %s", ErrNotArray, i, el.Type)
		}
		dec := json.NewDecoder(bytes.NewReader([]byte(el.Raw)))
		dec.UseNumber()
		var it catalog.Item
		if err := dec.Decode(&it); err != nil {
			return nil, fmt.Errorf("decode item %d: %w", i, err)
		}
		items = append(items, it)
	}
	return items, nil
}
