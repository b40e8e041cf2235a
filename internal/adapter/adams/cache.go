package adams

import (
	"context"
	"fmt"
	"sync"

	"github.com/reactorwatch/plant-dashboard/internal/domain"
	"github.com/reactorwatch/plant-dashboard/internal/observability"
)

// CachedSearcher wraps a DocumentSearcher with an in-memory LRU cache keyed
// by (docket, result count), so re-running a refresh within one process does
// not re-query dockets already fetched.
type CachedSearcher struct {
	inner   domain.DocumentSearcher
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedSearcher creates a cache decorator around a searcher.
func NewCachedSearcher(inner domain.DocumentSearcher, maxEntries int, metrics *observability.Metrics) *CachedSearcher {
	return &CachedSearcher{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedSearcher) SearchDocket(ctx context.Context, docket string, maxResults int) ([]domain.RegulatoryDocument, error) {
	key := fmt.Sprintf("%s|%d", docket, maxResults)
	if docs, ok := c.cache.get(key); ok {
		c.metrics.DocketCache.WithLabelValues("hit").Inc()
		return docs, nil
	}
	c.metrics.DocketCache.WithLabelValues("miss").Inc()
	docs, err := c.inner.SearchDocket(ctx, docket, maxResults)
	if err != nil {
		return nil, err
	}
	// Only cache non-empty results so a transiently empty answer can be retried.
	if len(docs) > 0 {
		c.cache.put(key, docs)
	}
	return docs, nil
}

// lruCache is a simple thread-safe LRU cache for docket search results.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value []domain.RegulatoryDocument
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) ([]domain.RegulatoryDocument, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value []domain.RegulatoryDocument) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
