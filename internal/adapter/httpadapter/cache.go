package httpadapter

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"

	"github.com/couchcryptid/storm-data-charts/internal/chart"
	"github.com/couchcryptid/storm-data-charts/internal/domain"
)

// bundleCache keeps encoded chart bundles for recently rendered requests.
// A cache with no capacity stores nothing.
type bundleCache struct {
	capacity int
	mu       sync.Mutex
	entries  map[string]*cacheEntry
	newest   *cacheEntry
	oldest   *cacheEntry
}

type cacheEntry struct {
	key          string
	body         []byte
	newer, older *cacheEntry
}

func newBundleCache(capacity int) *bundleCache {
	return &bundleCache{
		capacity: max(capacity, 0),
		entries:  make(map[string]*cacheEntry),
	}
}

// bundleKey identifies a render by everything that affects its output.
func bundleKey(metric domain.MetricValue, layout chart.Layout, forecast domain.RawForecast) (string, error) {
	loc := ""
	if layout.Location != nil {
		loc = layout.Location.String()
	}
	data, err := json.Marshal(struct {
		Units    domain.MetricValue `json:"u"`
		Layout   chart.Layout       `json:"l"`
		Location string             `json:"z"`
		Forecast domain.RawForecast `json:"f"`
	}{metric, layout, loc, forecast})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func (c *bundleCache) get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.touch(e)
	return e.body, true
}

func (c *bundleCache) put(key string, body []byte) {
	if c.capacity == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.body = body
		c.touch(e)
		return
	}

	e := &cacheEntry{key: key, body: body}
	c.entries[key] = e
	c.pushNewest(e)

	for len(c.entries) > c.capacity {
		victim := c.oldest
		c.unlink(victim)
		delete(c.entries, victim.key)
	}
}

func (c *bundleCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *bundleCache) touch(e *cacheEntry) {
	if e == c.newest {
		return
	}
	c.unlink(e)
	c.pushNewest(e)
}

func (c *bundleCache) pushNewest(e *cacheEntry) {
	e.older = c.newest
	e.newer = nil
	if c.newest != nil {
		c.newest.newer = e
	}
	c.newest = e
	if c.oldest == nil {
		c.oldest = e
	}
}

func (c *bundleCache) unlink(e *cacheEntry) {
	if e.newer != nil {
		e.newer.older = e.older
	} else {
		c.newest = e.older
	}
	if e.older != nil {
		e.older.newer = e.newer
	} else {
		c.oldest = e.newer
	}
	e.newer, e.older = nil, nil
}
