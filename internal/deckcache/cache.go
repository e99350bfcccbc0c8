// Package deckcache keeps parsed presentations in memory so a sample deck
// graded against many submissions is only parsed once.
package deckcache

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/tsawler/slidegrade/deck"
	"github.com/tsawler/slidegrade/pptx"
)

// Loader parses the presentation at path.
type Loader func(path string) (*deck.Presentation, error)

// Cache maps a file version to its parsed presentation. Entries are keyed on
// the absolute path, size and modification time, so a rewritten file is
// parsed again. It is safe for concurrent use.
type Cache struct {
	items  *cache.Cache
	load   Loader
	logger *zap.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

// Option configures a Cache.
type Option func(*Cache)

// WithLoader replaces the PPTX loader.
func WithLoader(l Loader) Option {
	return func(c *Cache) { c.load = l }
}

// WithLogger sets the logger used for cache misses.
func WithLogger(l *zap.Logger) Option {
	return func(c *Cache) { c.logger = l }
}

// New returns a cache whose entries live for ttl. A cleanup interval of 0
// disables the background janitor; expired entries are then dropped on
// access only.
func New(ttl, cleanup time.Duration, opts ...Option) *Cache {
	c := &Cache{
		items:  cache.New(ttl, cleanup),
		load:   pptx.Load,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load returns the presentation at path, parsing it on a miss.
func (c *Cache) Load(path string) (*deck.Presentation, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	st, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("%s|%d|%d", abs, st.Size(), st.ModTime().UnixNano())

	if v, ok := c.items.Get(key); ok {
		c.hits.Add(1)
		return v.(*deck.Presentation), nil
	}

	c.misses.Add(1)
	start := time.Now()
	p, err := c.load(abs)
	if err != nil {
		return nil, err
	}
	c.items.Set(key, p, cache.DefaultExpiration)
	c.logger.Debug("presentation parsed",
		zap.String("path", abs),
		zap.Int("slides", p.SlideCount()),
		zap.Duration("elapsed", time.Since(start)))
	return p, nil
}

// Len returns the number of cached entries, including expired ones not yet
// cleaned up.
func (c *Cache) Len() int {
	return c.items.ItemCount()
}

// Stats returns the hit and miss counts.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Flush drops every entry.
func (c *Cache) Flush() {
	c.items.Flush()
}
