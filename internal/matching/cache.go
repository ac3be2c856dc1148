package matching

import (
	"container/list"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// resultCache memoizes ranked results per (pantry, filters) key with
// least-recently-used eviction. It is purely a performance layer: a hit
// returns exactly what a fresh computation against the same corpus
// snapshot would, and it is correct only while the corpus and weight
// table are stable — the weight-rebuild path calls purge.
type resultCache struct {
	mu       sync.Mutex
	capacity int
	ll       *list.List
	items    map[string]*list.Element

	hits      int64
	misses    int64
	evictions int64
}

type cacheEntry struct {
	key     string
	results []Result
}

func newResultCache(capacity int) *resultCache {
	return &resultCache{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[string]*list.Element, capacity),
	}
}

// cacheKey renders the pantry token set order-independently and the
// filters canonically, then hashes the whole thing. Two queries that
// differ only in pantry order or dietary-tag order share a key.
func cacheKey(pantry []string, f Filters) string {
	tokens := append([]string(nil), pantry...)
	sort.Strings(tokens)

	dietary := make([]string, len(f.Dietary))
	for i, d := range f.Dietary {
		dietary[i] = strings.ToLower(d)
	}
	sort.Strings(dietary)

	raw := fmt.Sprintf("%s|%s|%d|%s|%g",
		strings.Join(tokens, ","),
		strings.Join(dietary, ","),
		f.MaxTime,
		strings.ToLower(f.Difficulty),
		f.MinRating,
	)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func (c *resultCache) get(key string) ([]Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		c.misses++
		return nil, false
	}
	c.ll.MoveToFront(el)
	c.hits++
	return el.Value.(*cacheEntry).results, true
}

func (c *resultCache) put(key string, results []Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.ll.MoveToFront(el)
		el.Value.(*cacheEntry).results = results
		return
	}

	c.items[key] = c.ll.PushFront(&cacheEntry{key: key, results: results})
	for c.ll.Len() > c.capacity {
		oldest := c.ll.Back()
		c.ll.Remove(oldest)
		delete(c.items, oldest.Value.(*cacheEntry).key)
		c.evictions++
	}
}

// purge drops every entry. Called when the weight table or corpus view
// changes so stale rankings are never served.
func (c *resultCache) purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ll.Init()
	c.items = make(map[string]*list.Element, c.capacity)
}

func (c *resultCache) stats() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return map[string]any{
		"size":      c.ll.Len(),
		"capacity":  c.capacity,
		"hits":      c.hits,
		"misses":    c.misses,
		"evictions": c.evictions,
	}
}
