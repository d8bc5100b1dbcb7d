package lru

import (
	"sync"
	"time"

	"github.com/venkatsvpr/arenalru/simplelru"
)

// Option customizes a Cache or an ExpiringCache.
type Option[K comparable, V any] func(cfg *config[K, V]) error

type config[K comparable, V any] struct {
	onEvicted func(key K, value V)
	locker    RWLocker
	expiry    []simplelru.ExpiryOption
}

func newConfig[K comparable, V any](opts []Option[K, V]) (*config[K, V], error) {
	cfg := &config[K, V]{locker: &sync.RWMutex{}}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithCallback registers a callback receiving every evicted, removed or
// expired entry. It is invoked after the cache lock is released, on the
// goroutine that displaced the entry: for a monitored sweep, the monitor's
// own. Such a callback must not call Monitor or StopMonitor synchronously,
// as both wait for the sweep it is part of.
func WithCallback[K comparable, V any](onEvicted func(key K, value V)) Option[K, V] {
	return func(cfg *config[K, V]) error {
		cfg.onEvicted = onEvicted
		return nil
	}
}

// WithLocker replaces the default sync.RWMutex guarding the cache.
func WithLocker[K comparable, V any](locker RWLocker) Option[K, V] {
	return func(cfg *config[K, V]) error {
		if locker == nil {
			locker = NoOpRWLocker{}
		}
		cfg.locker = locker
		return nil
	}
}

// WithClock sets the function used to return current time, for test setup.
func WithClock[K comparable, V any](now func() time.Time) Option[K, V] {
	return withExpiry[K, V](simplelru.Clock(now))
}

// WithTTK sets the time-to-keep: written entries survive at least this long.
func WithTTK[K comparable, V any](ttk time.Duration) Option[K, V] {
	return withExpiry[K, V](simplelru.TTK(ttk))
}

// WithAgeBins sets the number of buckets write times are folded into.
func WithAgeBins[K comparable, V any](n int) Option[K, V] {
	return withExpiry[K, V](simplelru.AgeBins(n))
}

// WithHorizon sets the number of age buckets spanning one time-to-keep.
func WithHorizon[K comparable, V any](n int) Option[K, V] {
	return withExpiry[K, V](simplelru.Horizon(n))
}

// WithTTL is rejected when the cache is built: entries are kept for a
// time-to-keep, not read for at most a time-to-live. Use WithTTK.
func WithTTL[K comparable, V any](ttl time.Duration) Option[K, V] {
	return withExpiry[K, V](simplelru.TTL(ttl))
}

func withExpiry[K comparable, V any](opt simplelru.ExpiryOption) Option[K, V] {
	return func(cfg *config[K, V]) error {
		cfg.expiry = append(cfg.expiry, opt)
		return nil
	}
}
