package expr

import (
	"strings"

	"github.com/chsjkfqwjk/pixel-image-generator/scanner"
)

type cacheEntry struct {
	val Value
	err error
}

// Cache memoizes strict evaluation results keyed by the expression text
// plus an order-independent snapshot of every visible variable binding. A
// hit requires the snapshots to be exactly equal, so results are soundly
// reusable across loop iterations and recursive calls. Entries are never
// evicted mid-run; Clear drops everything.
type Cache struct {
	entries map[string]cacheEntry
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

// Evaluate is Evaluate with memoization. Failures are cached too, so a
// repeated bad expression costs one parse.
func (c *Cache) Evaluate(text string, vars map[string]Value) (Value, error) {
	key := text + "\x00" + snapshotKey(vars)
	if e, ok := c.entries[key]; ok {
		return e.val, e.err
	}
	v, err := Evaluate(text, vars)
	c.entries[key] = cacheEntry{val: v, err: err}
	return v, err
}

// Clear drops all cached results.
func (c *Cache) Clear() {
	c.entries = make(map[string]cacheEntry)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int { return len(c.entries) }

// SubstituteBraces replaces every top-level {expr} span in param with the
// text of the cached evaluation result. Spans that fail to evaluate are
// left untouched, braces included.
func (c *Cache) SubstituteBraces(param string, vars map[string]Value) string {
	spans := scanner.Spans(param)
	if len(spans) == 0 {
		return param
	}
	var b strings.Builder
	last := 0
	for _, span := range spans {
		b.WriteString(param[last:span[0]])
		inner := param[span[0]+1 : span[1]-1]
		if v, err := c.Evaluate(inner, vars); err == nil {
			b.WriteString(v.Text())
		} else {
			b.WriteString(param[span[0]:span[1]])
		}
		last = span[1]
	}
	b.WriteString(param[last:])
	return b.String()
}
