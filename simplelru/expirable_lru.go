package simplelru

import (
	"fmt"
	"iter"
	"time"

	"github.com/venkatsvpr/arenalru/internal/pointers"
)

const (
	// DefaultTTK is the time-to-keep used when none is configured.
	DefaultTTK = 15 * time.Minute
	// DefaultAgeBins is the number of age buckets used when none is configured.
	DefaultAgeBins = 256
	// DefaultHorizon is the number of buckets spanning one TTK.
	DefaultHorizon = 32
)

// ExpiryConfig holds the settings of an ExpiringLRU.
type ExpiryConfig struct {
	// Clock returns the current time. It must never go backwards.
	Clock func() time.Time
	// TTK is the minimum time a written entry is kept.
	TTK time.Duration
	// AgeBins is the number of buckets write times are folded into.
	AgeBins int
	// Horizon is the number of buckets spanning one TTK.
	Horizon int
}

// ExpiryOption customizes an ExpiringLRU.
type ExpiryOption func(cfg *ExpiryConfig) error

// Clock sets the function used to return current time, for test setup or
// to drive expiry from a logical clock.
func Clock(now func() time.Time) ExpiryOption {
	return func(cfg *ExpiryConfig) error {
		if now == nil {
			return fmt.Errorf("%w: nil clock", ErrInvalidExpiry)
		}
		cfg.Clock = now
		return nil
	}
}

// TTK sets the time-to-keep.
func TTK(d time.Duration) ExpiryOption {
	return func(cfg *ExpiryConfig) error {
		cfg.TTK = d
		return nil
	}
}

// AgeBins sets the number of age buckets.
func AgeBins(n int) ExpiryOption {
	return func(cfg *ExpiryConfig) error {
		cfg.AgeBins = n
		return nil
	}
}

// Horizon sets the number of age buckets spanning one TTK.
func Horizon(n int) ExpiryOption {
	return func(cfg *ExpiryConfig) error {
		cfg.Horizon = n
		return nil
	}
}

// TTL always fails: an ExpiringLRU does not bound how long an entry may be
// read, it only guarantees how long it is kept. Use TTK.
func TTL(time.Duration) ExpiryOption {
	return func(*ExpiryConfig) error {
		return ErrTTLNotSupported
	}
}

func (cfg *ExpiryConfig) validate() error {
	switch {
	case cfg.TTK <= 0:
		return fmt.Errorf("%w: ttk must be positive, got %v", ErrInvalidExpiry, cfg.TTK)
	case cfg.AgeBins < 2:
		return fmt.Errorf("%w: need at least 2 age bins, got %d", ErrInvalidExpiry, cfg.AgeBins)
	case cfg.Horizon < 1 || cfg.Horizon >= cfg.AgeBins:
		return fmt.Errorf("%w: horizon must be in [1, %d), got %d", ErrInvalidExpiry, cfg.AgeBins, cfg.Horizon)
	case cfg.TTK/time.Duration(cfg.Horizon) <= 0:
		return fmt.Errorf("%w: ttk %v too short for horizon %d", ErrInvalidExpiry, cfg.TTK, cfg.Horizon)
	}
	return nil
}

var _ LRUCache[int, int] = (*ExpiringLRU[int, int])(nil)

// ExpiringLRU is an LRU that also records, per slot, the bucket of its last
// write, and deletes entries older than the time-to-keep when Expire runs.
//
// Reads never look at ages, so an entry can be returned for up to
// TTK plus the delay between two Expire calls. Expire must be called at
// least once per TTK for that bound to hold. Ages wrap around after
// AgeBins buckets: if Expire is not called for longer than AliasingWindow,
// stale entries become indistinguishable from fresh ones and survive.
//
// Expire scans the whole arena. Repeated calls are harmless. Like LRU, this
// type is not safe for concurrent use.
type ExpiringLRU[K comparable, V any] struct {
	*LRU[K, V]

	ages    pointers.Array
	clock   beatClock
	ttk     time.Duration
	horizon int
}

// NewExpiringLRU constructs an expiring LRU of the given size.
func NewExpiringLRU[K comparable, V any](size int, onEvict EvictCallback[K, V], opts ...ExpiryOption) (*ExpiringLRU[K, V], error) {
	cfg := ExpiryConfig{
		Clock:   time.Now,
		TTK:     DefaultTTK,
		AgeBins: DefaultAgeBins,
		Horizon: DefaultHorizon,
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	lru, err := NewLRU(size, onEvict)
	if err != nil {
		return nil, err
	}
	c := &ExpiringLRU[K, V]{
		LRU:     lru,
		ages:    pointers.New(size, cfg.AgeBins-1),
		clock:   newBeatClock(cfg.Clock, cfg.TTK/time.Duration(cfg.Horizon), cfg.AgeBins),
		ttk:     cfg.TTK,
		horizon: cfg.Horizon,
	}
	return c, nil
}

// FromExpiring builds an ExpiringLRU of the given size and adds every pair
// of the sequence in order, stamping each with the current beat.
func FromExpiring[K comparable, V any](pairs iter.Seq2[K, V], size int, onEvict EvictCallback[K, V], opts ...ExpiryOption) (*ExpiringLRU[K, V], error) {
	if size <= 0 {
		return nil, ErrCapacityUnknown
	}
	c, err := NewExpiringLRU(size, onEvict, opts...)
	if err != nil {
		return nil, err
	}
	for k, v := range pairs {
		c.Add(k, v)
	}
	return c, nil
}

// Add adds a value to the cache and records the write time. Returns true if
// an eviction occurred.
func (c *ExpiringLRU[K, V]) Add(key K, value V) (evicted bool) {
	beat := c.clock.beat()
	p, popped, ok := c.LRU.set(key, value)
	c.ages.Set(p, beat)
	return ok && popped.Evicted
}

// AddPop adds a value to the cache, records the write time and returns the
// entry it overwrote or evicted.
func (c *ExpiringLRU[K, V]) AddPop(key K, value V) (popped Popped[K, V], ok bool) {
	beat := c.clock.beat()
	var p int
	p, popped, ok = c.LRU.set(key, value)
	c.ages.Set(p, beat)
	return popped, ok
}

// Expire deletes every entry last written at or before the curfew and
// returns how many were deleted.
func (c *ExpiringLRU[K, V]) Expire() (expired int) {
	current := c.clock.beat()
	for p := 0; p < c.capacity; p++ {
		if !c.stale(c.ages.Get(p), current) {
			continue
		}
		// free slots keep a zero key that may belong to another live slot
		if q, ok := c.items[c.keys[p]]; ok && q == p {
			c.removeSlot(p)
			expired++
		}
	}
	return expired
}

// stale reports whether a slot written at age is at least one TTK old.
func (c *ExpiringLRU[K, V]) stale(age, current int) bool {
	return c.clock.since(age, current) >= c.horizon
}

// Beat returns the current age bucket.
func (c *ExpiringLRU[K, V]) Beat() int {
	return c.clock.beat()
}

// Curfew returns the bucket at or before which entries are due for expiry.
func (c *ExpiringLRU[K, V]) Curfew() int {
	return c.clock.add(c.clock.beat(), -c.horizon)
}

// TTK returns the configured time-to-keep.
func (c *ExpiringLRU[K, V]) TTK() time.Duration {
	return c.ttk
}

// BinWidth returns the duration covered by one age bucket.
func (c *ExpiringLRU[K, V]) BinWidth() time.Duration {
	return c.clock.width
}

// AliasingWindow returns the longest gap between Expire calls after which
// fresh and stale entries can no longer be told apart.
func (c *ExpiringLRU[K, V]) AliasingWindow() time.Duration {
	return time.Duration(c.clock.bins-c.horizon) * c.clock.width
}

// String returns a short description such as "ExpiringLRU[3/128]".
func (c *ExpiringLRU[K, V]) String() string {
	return fmt.Sprintf("ExpiringLRU[%d/%d]", c.size, c.capacity)
}
