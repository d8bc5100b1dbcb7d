// Package lru provides thread-safe LRU caches backed by the fixed-size
// arena of package simplelru.
//
// Cache is a simple LRU cache. Its capacity is fixed at construction and
// memory is allocated once: adding beyond capacity evicts the least
// recently used entry, slots freed by Remove are reused first.
//
// ExpiringCache additionally records, for every write, a coarse age bucket
// and drops entries older than a time-to-keep when Expire runs. Reads never
// check ages, so the cost over Cache is a single store per write. Expire can
// be scheduled with Monitor.
//
// All caches in this package take locks while operating, and are therefore
// thread-safe for consumers. Eviction callbacks run after the lock is
// released.
package lru
