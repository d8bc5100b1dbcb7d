// Package simplelru provides a non-thread-safe LRU cache whose entries live
// in a fixed-size arena addressed by integer indices, and an expiring
// variant that reclaims entries older than a time-to-keep.
package simplelru

import "iter"

// LRUCache is the interface for simple LRU cache.
type LRUCache[K comparable, V any] interface {
	// Adds a value to the cache, returns true if an eviction occurred and
	// updates the "recently used"-ness of the key.
	Add(key K, value V) bool

	// Adds a value to the cache and reports the entry it overwrote or
	// evicted, if any.
	AddPop(key K, value V) (popped Popped[K, V], ok bool)

	// Returns key's value from the cache and
	// updates the "recently used"-ness of the key. #value, isFound
	Get(key K) (value V, ok bool)

	// Checks if a key exists in cache without updating the recent-ness.
	Contains(key K) (ok bool)

	// Returns key's value without updating the "recently used"-ness of the key.
	Peek(key K) (value V, ok bool)

	// Removes a key from the cache.
	Remove(key K) bool

	// Removes the oldest entry from cache.
	RemoveOldest() (K, V, bool)

	// Returns the oldest entry from the cache. #key, value, isFound
	GetOldest() (K, V, bool)

	// Returns the keys in the cache, from newest to oldest.
	Keys() iter.Seq[K]

	// Returns the values in the cache, from newest to oldest.
	Values() iter.Seq[V]

	// Returns the key/value pairs in the cache, from newest to oldest.
	All() iter.Seq2[K, V]

	// Returns the number of items in the cache.
	Len() int

	// Returns the fixed capacity of the cache.
	Cap() int

	// Clears all cache entries.
	Purge()
}
