package lru

import (
	"fmt"
	"iter"
	"slices"

	"github.com/venkatsvpr/arenalru/simplelru"
)

// summarizer is implemented by every simplelru cache.
type summarizer interface {
	Summary(limit int) string
}

// Cache is a thread-safe fixed size LRU cache.
type Cache[K comparable, V any] struct {
	lru     simplelru.LRUCache[K, V]
	evicted *evictBuffer[K, V]
	lock    RWLocker
}

var _ simplelru.LRUCache[int, int] = (*Cache[int, int])(nil)

// New creates an LRU of the given size.
func New[K comparable, V any](size int) (*Cache[K, V], error) {
	return NewWithOpts[K, V](size)
}

// NewWithEvict constructs a fixed size cache with the given eviction
// callback.
func NewWithEvict[K comparable, V any](size int, onEvicted func(key K, value V)) (*Cache[K, V], error) {
	return NewWithOpts(size, WithCallback(onEvicted))
}

// NewWithOpts constructs a fixed size cache customized by opts. Expiry
// options are rejected, use NewExpiring for those.
func NewWithOpts[K comparable, V any](size int, opts ...Option[K, V]) (*Cache[K, V], error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	if len(cfg.expiry) > 0 {
		return nil, ErrExpiryOption
	}
	c := &Cache[K, V]{
		evicted: newEvictBuffer(cfg.onEvicted),
		lock:    cfg.locker,
	}
	c.lru, err = simplelru.NewLRU[K, V](size, c.evicted.callback())
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Purge is used to completely clear the cache.
func (c *Cache[K, V]) Purge() {
	c.update(c.lru.Purge)
}

// update runs fn under the write lock, then invokes the callback for every
// entry fn displaced. The lock is released and the callbacks run even if fn
// panics.
func (c *Cache[K, V]) update(fn func()) {
	fire := func() {}
	// invoke callback outside critical section
	defer func() { fire() }()
	c.lock.Lock()
	defer c.lock.Unlock()
	defer func() { fire = c.evicted.drain() }()
	fn()
}

// Add adds a value to the cache. Returns true if an eviction occurred.
func (c *Cache[K, V]) Add(key K, value V) (evicted bool) {
	c.update(func() { evicted = c.lru.Add(key, value) })
	return
}

// AddPop adds a value to the cache and returns the entry it overwrote or
// evicted. ok is false when nothing was displaced.
func (c *Cache[K, V]) AddPop(key K, value V) (popped simplelru.Popped[K, V], ok bool) {
	c.update(func() { popped, ok = c.lru.AddPop(key, value) })
	return
}

// Get looks up a key's value from the cache.
func (c *Cache[K, V]) Get(key K) (value V, ok bool) {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.lru.Get(key)
}

// Contains checks if a key is in the cache, without updating the
// recent-ness or deleting it for being stale.
func (c *Cache[K, V]) Contains(key K) bool {
	c.lock.RLock()
	containKey := c.lru.Contains(key)
	c.lock.RUnlock()
	return containKey
}

// Peek returns the key value (or undefined if not found) without updating
// the "recently used"-ness of the key.
func (c *Cache[K, V]) Peek(key K) (value V, ok bool) {
	c.lock.RLock()
	value, ok = c.lru.Peek(key)
	c.lock.RUnlock()
	return value, ok
}

// ContainsOrAdd checks if a key is in the cache without updating the
// recent-ness or deleting it for being stale, and if not, adds the value.
// Returns whether found and whether an eviction occurred.
func (c *Cache[K, V]) ContainsOrAdd(key K, value V) (ok, evicted bool) {
	c.update(func() {
		if ok = c.lru.Contains(key); !ok {
			evicted = c.lru.Add(key, value)
		}
	})
	return ok, evicted
}

// PeekOrAdd checks if a key is in the cache without updating the
// recent-ness or deleting it for being stale, and if not, adds the value.
// Returns whether found and whether an eviction occurred.
func (c *Cache[K, V]) PeekOrAdd(key K, value V) (previous V, ok, evicted bool) {
	c.update(func() {
		if previous, ok = c.lru.Peek(key); !ok {
			evicted = c.lru.Add(key, value)
		}
	})
	return previous, ok, evicted
}

// Remove removes the provided key from the cache.
func (c *Cache[K, V]) Remove(key K) (present bool) {
	c.update(func() { present = c.lru.Remove(key) })
	return
}

// RemoveOldest removes the oldest item from the cache.
func (c *Cache[K, V]) RemoveOldest() (key K, value V, ok bool) {
	c.update(func() { key, value, ok = c.lru.RemoveOldest() })
	return
}

// GetOldest returns the oldest entry
func (c *Cache[K, V]) GetOldest() (key K, value V, ok bool) {
	c.lock.RLock()
	key, value, ok = c.lru.GetOldest()
	c.lock.RUnlock()
	return
}

// Keys returns the keys in the cache, from newest to oldest. Each iteration
// works on a snapshot taken when it starts.
func (c *Cache[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		c.lock.RLock()
		keys := slices.Collect(c.lru.Keys())
		c.lock.RUnlock()
		for _, k := range keys {
			if !yield(k) {
				return
			}
		}
	}
}

// Values returns the values in the cache, from newest to oldest. Each
// iteration works on a snapshot taken when it starts.
func (c *Cache[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		c.lock.RLock()
		values := slices.Collect(c.lru.Values())
		c.lock.RUnlock()
		for _, v := range values {
			if !yield(v) {
				return
			}
		}
	}
}

// All returns the key/value pairs in the cache, from newest to oldest. Each
// iteration works on a snapshot taken when it starts.
func (c *Cache[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		c.lock.RLock()
		entries := make([]simplelru.Entry[K, V], 0, c.lru.Len())
		for k, v := range c.lru.All() {
			entries = append(entries, simplelru.Entry[K, V]{Key: k, Value: v})
		}
		c.lock.RUnlock()
		for _, e := range entries {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Len returns the number of items in the cache.
func (c *Cache[K, V]) Len() int {
	c.lock.RLock()
	length := c.lru.Len()
	c.lock.RUnlock()
	return length
}

// Cap returns the capacity of the cache.
func (c *Cache[K, V]) Cap() int {
	return c.lru.Cap()
}

// String returns a short description such as "LRU[3/128]".
func (c *Cache[K, V]) String() string {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return fmt.Sprint(c.lru)
}

// Summary returns a human readable dump of at most limit entries, newest
// first. It is meant for debugging and its format may change.
func (c *Cache[K, V]) Summary(limit int) string {
	c.lock.RLock()
	defer c.lock.RUnlock()
	if s, ok := c.lru.(summarizer); ok {
		return s.Summary(limit)
	}
	return fmt.Sprint(c.lru)
}
