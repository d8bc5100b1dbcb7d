package simplelru

import (
	"iter"
	"maps"
)

// Entry is a key/value pair used to seed a cache.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// From builds an LRU of the given size and adds every pair of the sequence
// in order. A sequence has no known length, so size must be positive.
func From[K comparable, V any](pairs iter.Seq2[K, V], size int, onEvict EvictCallback[K, V]) (*LRU[K, V], error) {
	if size <= 0 {
		return nil, ErrCapacityUnknown
	}
	c, err := NewLRU(size, onEvict)
	if err != nil {
		return nil, err
	}
	for k, v := range pairs {
		c.Add(k, v)
	}
	return c, nil
}

// FromSlice builds an LRU holding entries, added in slice order so the last
// entry ends up most recently used. A non-positive size is inferred from the
// number of entries.
func FromSlice[K comparable, V any](entries []Entry[K, V], size int, onEvict EvictCallback[K, V]) (*LRU[K, V], error) {
	if size <= 0 {
		size = len(entries)
	}
	return From(entrySeq(entries), size, onEvict)
}

// FromMap builds an LRU holding the contents of m. Recency order follows map
// iteration order. A non-positive size is inferred from len(m).
func FromMap[K comparable, V any](m map[K]V, size int, onEvict EvictCallback[K, V]) (*LRU[K, V], error) {
	if size <= 0 {
		size = len(m)
	}
	return From(maps.All(m), size, onEvict)
}

func entrySeq[K comparable, V any](entries []Entry[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, e := range entries {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}
