package store

import (
	"sync"

	"github.com/golang/groupcache/lru"
	"github.com/loosegit/loosegit/ident"
	"github.com/loosegit/loosegit/object"
)

// objectCache is a fixed-size, concurrency-safe LRU of decoded
// objects keyed by identifier. Unlike a generic interface{}-keyed
// cache, values are stored and returned as *object.Object directly,
// so callers never need a type assertion.
type objectCache struct {
	cache *lru.Cache
	mu    sync.Mutex
}

func newObjectCache(maxEntries int) *objectCache {
	return &objectCache{cache: lru.New(maxEntries)}
}

func (c *objectCache) get(id ident.Identifier) (*object.Object, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.cache.Get(id)
	if !ok {
		return nil, false
	}
	return v.(*object.Object), true
}

func (c *objectCache) add(id ident.Identifier, o *object.Object) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Add(id, o)
}
