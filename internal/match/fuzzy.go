package match

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"

	"github.com/five82/searchbox/internal/catalog"
)

// Matcher returns the items relevant to query, best match first.
type Matcher interface {
	Match(query string, items []catalog.Item, opts Options) (catalog.ResultList, error)
}

// Ensure Fuzzy implements Matcher at compile time.
var _ Matcher = Fuzzy{}

// Fuzzy ranks items by subsequence score across the configured keys.
type Fuzzy struct{}

type candidate struct {
	index    int
	score    int
	typo     bool
	distance int
}

// fieldSource adapts one key's values to fuzzy.Source.
type fieldSource []string

func (f fieldSource) String(i int) string { return f[i] }
func (f fieldSource) Len() int            { return len(f) }

// Match implements Matcher.
func (Fuzzy) Match(query string, items []catalog.Item, opts Options) (catalog.ResultList, error) {
	opts = opts.Normalize()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	results := catalog.ResultList{}
	if query == "" || len(items) == 0 {
		return results, nil
	}
	if utf8.RuneCountInString(query) < opts.MinMatchCharLength {
		return results, nil
	}

	fields, err := extractFields(items, opts.Keys)
	if err != nil {
		return nil, err
	}

	pattern := query
	if !opts.CaseSensitive {
		pattern = strings.ToLower(query)
	}

	best := make(map[int]int)
	for k := range opts.Keys {
		haystack := fields[k]
		if !opts.CaseSensitive {
			haystack = lowerAll(haystack)
		}
		for _, m := range fuzzy.FindFromNoSort(pattern, fieldSource(haystack)) {
			if opts.CaseSensitive && !lfuzzy.Match(query, fields[k][m.Index]) {
				continue
			}
			if cur, ok := best[m.Index]; !ok || m.Score > cur {
				best[m.Index] = m.Score
			}
		}
	}

	candidates := make([]candidate, 0, len(best))
	for i := range items {
		if score, ok := best[i]; ok {
			candidates = append(candidates, candidate{index: i, score: score})
		}
	}

	if maxEdits := int(math.Floor(opts.Threshold * float64(utf8.RuneCountInString(query)))); maxEdits > 0 {
		for i := range items {
			if _, ok := best[i]; ok {
				continue
			}
			if d, ok := closestWord(pattern, fields, i, opts.CaseSensitive); ok && d <= maxEdits {
				candidates = append(candidates, candidate{index: i, typo: true, distance: d})
			}
		}
	}

	if opts.PreserveOrder {
		sort.SliceStable(candidates, func(a, b int) bool {
			return candidates[a].index < candidates[b].index
		})
	} else {
		sort.SliceStable(candidates, func(a, b int) bool {
			return ranksBefore(candidates[a], candidates[b])
		})
	}

	if opts.Limit > 0 && len(candidates) > opts.Limit {
		candidates = candidates[:opts.Limit]
	}
	for _, c := range candidates {
		results = append(results, items[c.index])
	}
	return results, nil
}

// ranksBefore orders subsequence matches by score, then typo matches by edit
// distance, breaking ties by item position.
func ranksBefore(a, b candidate) bool {
	if a.typo != b.typo {
		return !a.typo
	}
	if a.typo {
		if a.distance != b.distance {
			return a.distance < b.distance
		}
	} else if a.score != b.score {
		return a.score > b.score
	}
	return a.index < b.index
}

// extractFields returns fields[key][item] with missing values as "".
func extractFields(items []catalog.Item, keys []string) ([][]string, error) {
	fields := make([][]string, len(keys))
	for k, key := range keys {
		col := make([]string, len(items))
		for i, it := range items {
			s, _, err := it.String(key)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			col[i] = s
		}
		fields[k] = col
	}
	return fields, nil
}

func closestWord(pattern string, fields [][]string, item int, caseSensitive bool) (int, bool) {
	best, found := 0, false
	for k := range fields {
		value := fields[k][item]
		if !caseSensitive {
			value = strings.ToLower(value)
		}
		for _, word := range strings.Fields(value) {
			d := lfuzzy.LevenshteinDistance(pattern, word)
			if !found || d < best {
				best, found = d, true
			}
		}
	}
	return best, found
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}

// Counting wraps a Matcher and records how often it is invoked.
type Counting struct {
	Matcher Matcher

	mu    sync.Mutex
	calls int
}

// Match implements Matcher.
func (c *Counting) Match(query string, items []catalog.Item, opts Options) (catalog.ResultList, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()

	m := c.Matcher
	if m == nil {
		m = Fuzzy{}
	}
	return m.Match(query, items, opts)
}

// Calls returns the number of Match invocations so far.
func (c *Counting) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}
