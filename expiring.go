package lru

import (
	"context"
	"sync"
	"time"

	"github.com/venkatsvpr/arenalru/simplelru"
)

// ExpiringCache is a thread-safe LRU cache that also drops entries older
// than a time-to-keep (TTK) whenever Expire runs, either called directly or
// on a schedule through Monitor.
//
// Reads never check ages: an entry may be returned for up to the TTK plus
// the delay between two sweeps. Sweeps must run at least once per TTK, and
// a gap longer than the ledger's aliasing window makes stale entries look
// fresh again.
type ExpiringCache[K comparable, V any] struct {
	*Cache[K, V]
	ledger *simplelru.ExpiringLRU[K, V]

	monitorLock sync.Mutex
	monitor     *Monitor
}

// NewExpiring creates an expiring cache of the given size. Expiry is
// configured with WithTTK, WithAgeBins, WithHorizon and WithClock.
func NewExpiring[K comparable, V any](size int, opts ...Option[K, V]) (*ExpiringCache[K, V], error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	c := &ExpiringCache[K, V]{
		Cache: &Cache[K, V]{
			evicted: newEvictBuffer(cfg.onEvicted),
			lock:    cfg.locker,
		},
	}
	c.ledger, err = simplelru.NewExpiringLRU[K, V](size, c.evicted.callback(), cfg.expiry...)
	if err != nil {
		return nil, err
	}
	c.lru = c.ledger
	return c, nil
}

// Expire deletes every entry written at least one TTK ago and returns how
// many were deleted.
func (c *ExpiringCache[K, V]) Expire() (expired int) {
	c.update(func() { expired = c.ledger.Expire() })
	return expired
}

// TTK returns the configured time-to-keep.
func (c *ExpiringCache[K, V]) TTK() time.Duration {
	return c.ledger.TTK()
}

// Monitor starts calling Expire every interval, replacing any monitor
// started earlier on this cache. A non-positive interval defaults to one
// age bucket. Panics raised by a sweep are reported to onError, which may be
// nil, and do not stop the schedule. It waits for the replaced monitor's
// sweep, so it must not be called from onError or from an eviction callback
// run by that sweep.
func (c *ExpiringCache[K, V]) Monitor(interval time.Duration, onError ErrorHandler) *Monitor {
	return c.MonitorContext(context.Background(), interval, onError)
}

// MonitorContext is like Monitor but also stops when ctx is done.
func (c *ExpiringCache[K, V]) MonitorContext(ctx context.Context, interval time.Duration, onError ErrorHandler) *Monitor {
	if interval <= 0 {
		interval = c.ledger.BinWidth()
	}
	c.monitorLock.Lock()
	defer c.monitorLock.Unlock()
	if c.monitor != nil {
		c.monitor.Stop()
	}
	c.monitor = startMonitor(ctx, interval, func() {
		if n := c.Expire(); n > 0 {
			Logger().Debug("lru: expired entries", "count", n, "len", c.Len())
		}
	}, onError)
	return c.monitor
}

// StopMonitor stops the running monitor, if any. A sweep in progress is
// allowed to finish before StopMonitor returns, so it must not be called
// from onError or from an eviction callback run by the sweep; use
// go c.StopMonitor() there.
func (c *ExpiringCache[K, V]) StopMonitor() {
	c.monitorLock.Lock()
	m := c.monitor
	c.monitor = nil
	c.monitorLock.Unlock()
	if m != nil {
		m.Stop()
	}
}
