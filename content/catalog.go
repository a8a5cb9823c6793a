package content

import (
	"sync"
	"time"
)

// Catalog holds the current site content and swaps it atomically on reload.
type Catalog struct {
	mu     sync.RWMutex
	site   *Site
	path   string
	loaded time.Time
}

// NewCatalog returns a catalog serving site. path is the file Reload reads;
// empty means the catalog is fixed.
func NewCatalog(site *Site, path string) *Catalog {
	return &Catalog{site: site, path: path, loaded: time.Now()}
}

// OpenCatalog loads path, or the built-in sample site when path is empty.
func OpenCatalog(path string) (*Catalog, error) {
	if path == "" {
		return NewCatalog(Default(), ""), nil
	}
	site, err := Load(path)
	if err != nil {
		return nil, err
	}
	return NewCatalog(site, path), nil
}

// Get returns the current site. Callers must not modify it.
func (c *Catalog) Get() *Site {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.site
}

// Path returns the backing file, if any.
func (c *Catalog) Path() string { return c.path }

// LoadedAt returns when the current content was installed.
func (c *Catalog) LoadedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Replace installs site as the current content.
func (c *Catalog) Replace(site *Site) {
	c.mu.Lock()
	c.site = site
	c.loaded = time.Now()
	c.mu.Unlock()
}

// Reload re-reads the backing file. On error the previous content is kept.
func (c *Catalog) Reload() error {
	if c.path == "" {
		return nil
	}
	site, err := Load(c.path)
	if err != nil {
		return err
	}
	c.Replace(site)
	return nil
}
