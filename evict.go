package lru

const (
	// DefaultEvictedBufferSize defines the default buffer size to store evicted key/val
	DefaultEvictedBufferSize = 16
)

// evictBuffer collects entries evicted while the cache lock is held so the
// user callback can run after it is released.
type evictBuffer[K comparable, V any] struct {
	onEvicted func(key K, value V)
	keys      []K
	vals      []V
}

func newEvictBuffer[K comparable, V any](onEvicted func(key K, value V)) *evictBuffer[K, V] {
	if onEvicted == nil {
		return nil
	}
	b := &evictBuffer[K, V]{onEvicted: onEvicted}
	b.init()
	return b
}

func (b *evictBuffer[K, V]) init() {
	b.keys = make([]K, 0, DefaultEvictedBufferSize)
	b.vals = make([]V, 0, DefaultEvictedBufferSize)
}

// callback returns the function to hand to simplelru, nil when no user
// callback is registered.
func (b *evictBuffer[K, V]) callback() func(key K, value V) {
	if b == nil {
		return nil
	}
	return b.record
}

func (b *evictBuffer[K, V]) record(k K, v V) {
	b.keys = append(b.keys, k)
	b.vals = append(b.vals, v)
}

// drain empties the buffer and returns a function invoking the callback for
// every buffered entry. Has to be called with lock, the result without.
func (b *evictBuffer[K, V]) drain() func() {
	if b == nil || len(b.keys) == 0 {
		return func() {}
	}
	if len(b.keys) == 1 {
		k, v := b.keys[0], b.vals[0]
		clear(b.keys)
		clear(b.vals)
		b.keys, b.vals = b.keys[:0], b.vals[:0]
		return func() { b.onEvicted(k, v) }
	}
	ks, vs := b.keys, b.vals
	b.init()
	return func() {
		for i := 0; i < len(ks); i++ {
			b.onEvicted(ks[i], vs[i])
		}
	}
}
