// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texture

import (
	"sync"

	"github.com/gogpu/blit"
)

// DefaultCacheCapacity is the eviction threshold used when a Cache is
// created with a non-positive capacity.
const DefaultCacheCapacity = 256

// Cache is a thread-safe LRU cache of textures keyed by name. Evicted
// and cleared root textures are disposed, so the cache doubles as an
// ownership boundary: textures obtained from it must not be disposed by
// callers, and must not be used after being dropped from the cache.
//
// Views inserted into the cache are not disposed on eviction (a view
// owns nothing); cache atlas roots, not their regions, if GPU memory
// should be reclaimed.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]*cacheEntry
	lru      *cacheList
	capacity int
}

type cacheEntry struct {
	tex  Texture
	node *cacheNode
}

// NewCache creates a texture cache holding at most capacity entries.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &Cache{
		entries:  make(map[string]*cacheEntry),
		lru:      &cacheList{},
		capacity: capacity,
	}
}

// Get retrieves a cached texture and marks it most recently used.
func (c *Cache) Get(name string) (Texture, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[name]
	if !ok {
		return nil, false
	}
	c.lru.moveToFront(e.node)
	return e.tex, true
}

// Set stores a texture under name, taking ownership of it. Replacing an
// existing entry disposes the old texture; exceeding capacity evicts and
// disposes the least recently used entries.
func (c *Cache) Set(name string, tex Texture) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[name]; ok {
		c.disposeEvicted(name, e.tex)
		e.tex = tex
		c.lru.moveToFront(e.node)
		return
	}
	c.evictOver(c.capacity - 1)
	node := c.lru.pushFront(name)
	c.entries[name] = &cacheEntry{tex: tex, node: node}
}

// GetOrCreate returns the cached texture for name, building and caching
// it via create on a miss. create runs with the cache locked, so
// concurrent lookups of the same name build at most once.
func (c *Cache) GetOrCreate(name string, create func() (Texture, error)) (Texture, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[name]; ok {
		c.lru.moveToFront(e.node)
		return e.tex, nil
	}
	tex, err := create()
	if err != nil {
		return nil, err
	}
	c.evictOver(c.capacity - 1)
	node := c.lru.pushFront(name)
	c.entries[name] = &cacheEntry{tex: tex, node: node}
	return tex, nil
}

// Remove drops an entry without disposing it, returning the texture to
// the caller's ownership.
func (c *Cache) Remove(name string) (Texture, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[name]
	if !ok {
		return nil, false
	}
	c.lru.remove(e.node)
	delete(c.entries, name)
	return e.tex, true
}

// Delete drops an entry and disposes it. Returns false when absent.
func (c *Cache) Delete(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[name]
	if !ok {
		return false
	}
	c.lru.remove(e.node)
	delete(c.entries, name)
	c.disposeEvicted(name, e.tex)
	return true
}

// Clear disposes and drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evictOver(0)
}

// Len returns the number of cached textures.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Capacity returns the eviction threshold.
func (c *Cache) Capacity() int { return c.capacity }

// evictOver disposes least recently used entries until at most n remain.
// Caller holds the lock.
func (c *Cache) evictOver(n int) {
	for c.lru.len > n {
		name, ok := c.lru.removeOldest()
		if !ok {
			return
		}
		e := c.entries[name]
		delete(c.entries, name)
		c.disposeEvicted(name, e.tex)
	}
}

// disposeEvicted releases an evicted texture's device resources. Views
// dispose as no-ops; an already-disposed root is worth a warning since it
// means ownership rules were violated somewhere.
func (c *Cache) disposeEvicted(name string, tex Texture) {
	if err := tex.Dispose(); err != nil {
		blit.Logger().Warn("cached texture already disposed", "name", name, "err", err)
	}
}

// cacheNode is a node in the doubly-linked recency list. It stores its
// key for O(1) deletion from the entry map.
type cacheNode struct {
	name string
	prev *cacheNode
	next *cacheNode
}

// cacheList is a doubly-linked recency list: head is most recently used,
// tail is next to evict. Not thread-safe; the Cache lock covers it.
type cacheList struct {
	head *cacheNode
	tail *cacheNode
	len  int
}

func (l *cacheList) pushFront(name string) *cacheNode {
	node := &cacheNode{name: name}
	if l.head == nil {
		l.head = node
		l.tail = node
	} else {
		node.next = l.head
		l.head.prev = node
		l.head = node
	}
	l.len++
	return node
}

func (l *cacheList) moveToFront(node *cacheNode) {
	if node == nil || node == l.head {
		return
	}
	l.unlink(node)
	node.next = l.head
	if l.head != nil {
		l.head.prev = node
	}
	l.head = node
	if l.tail == nil {
		l.tail = node
	}
	l.len++
}

func (l *cacheList) remove(node *cacheNode) {
	if node == nil {
		return
	}
	l.unlink(node)
}

func (l *cacheList) removeOldest() (string, bool) {
	if l.tail == nil {
		return "", false
	}
	node := l.tail
	l.unlink(node)
	return node.name, true
}

func (l *cacheList) unlink(node *cacheNode) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		l.head = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.tail = node.prev
	}
	node.prev = nil
	node.next = nil
	l.len--
}
