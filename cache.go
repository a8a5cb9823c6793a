package folio

import (
	"sync"
	"time"

	"github.com/alexchen-dev/folio/content"
)

// DocCache holds rendered XML documents (feed, sitemap). An entry is stale
// after ttl or once the catalog has installed newer content.
type DocCache struct {
	mu      sync.RWMutex
	entries map[string]docEntry
	ttl     time.Duration
	catalog *content.Catalog
}

type docEntry struct {
	body    []byte
	fetched time.Time
	version time.Time
}

// NewDocCache creates a DocCache keyed to the given catalog.
func NewDocCache(c *content.Catalog, ttl time.Duration) *DocCache {
	return &DocCache{entries: make(map[string]docEntry), ttl: ttl, catalog: c}
}

func (c *DocCache) valid(e docEntry, ok bool) bool {
	return ok && time.Since(e.fetched) < c.ttl && e.version.Equal(c.catalog.LoadedAt())
}

// Get returns the cached document for key, calling build to produce it when
// missing or stale. It tries a read lock first and only takes the write
// lock when a rebuild is needed.
func (c *DocCache) Get(key string, build func(*content.Site) ([]byte, error)) ([]byte, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	if c.valid(e, ok) {
		c.mu.RUnlock()
		return e.body, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; c.valid(e, ok) {
		return e.body, nil
	}
	version := c.catalog.LoadedAt()
	body, err := build(c.catalog.Get())
	if err != nil {
		return nil, err
	}
	c.entries[key] = docEntry{body: body, fetched: time.Now(), version: version}
	return body, nil
}

// Invalidate clears the cache so the next read triggers a rebuild.
func (c *DocCache) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[string]docEntry)
	c.mu.Unlock()
}
