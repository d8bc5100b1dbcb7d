package simplelru

import (
	"fmt"
	"iter"

	"github.com/venkatsvpr/arenalru/internal/pointers"
)

// EvictCallback is used to get a callback when a cache entry is evicted
type EvictCallback[K comparable, V any] func(key K, value V)

// Popped describes an entry displaced by AddPop. Evicted is false when the
// entry was overwritten in place and true when it was evicted for capacity.
type Popped[K comparable, V any] struct {
	Key     K
	Value   V
	Evicted bool
}

// LRU implements a non-thread safe fixed size LRU cache.
//
// Entries are stored in parallel arrays indexed by slot pointer. The recency
// list is threaded through the forward/backward link arrays, head is the
// most recently used slot and tail the least. Slots freed by Remove are kept
// on a stack and reused before the cache evicts anything.
type LRU[K comparable, V any] struct {
	capacity int
	size     int
	head     int
	tail     int

	// hwm is the next pointer that has never been handed out.
	hwm int

	keys     []K
	values   []V
	forward  pointers.Array
	backward pointers.Array

	freed     pointers.Array
	freeCount int

	items   map[K]int
	onEvict EvictCallback[K, V]
}

var _ LRUCache[int, int] = (*LRU[int, int])(nil)

// NewLRU constructs an LRU of the given size
func NewLRU[K comparable, V any](size int, onEvict EvictCallback[K, V]) (*LRU[K, V], error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	c := &LRU[K, V]{
		capacity: size,
		keys:     make([]K, size),
		values:   make([]V, size),
		forward:  pointers.New(size, size-1),
		backward: pointers.New(size, size-1),
		freed:    pointers.New(size, size-1),
		items:    make(map[K]int, size),
		onEvict:  onEvict,
	}
	return c, nil
}

// Purge is used to completely clear the cache.
func (c *LRU[K, V]) Purge() {
	if c.onEvict != nil {
		for k, p := range c.items {
			c.onEvict(k, c.values[p])
		}
	}
	clear(c.items)
	clear(c.keys)
	clear(c.values)
	c.size, c.head, c.tail = 0, 0, 0
	c.hwm, c.freeCount = 0, 0
}

// Add adds a value to the cache.  Returns true if an eviction occurred.
func (c *LRU[K, V]) Add(key K, value V) (evicted bool) {
	_, popped, ok := c.set(key, value)
	return ok && popped.Evicted
}

// AddPop adds a value to the cache and returns the entry it displaced: the
// previous value of key when it was already present, or the evicted least
// recently used entry when the cache was full. ok is false when the key was
// inserted into unused capacity.
func (c *LRU[K, V]) AddPop(key K, value V) (popped Popped[K, V], ok bool) {
	_, popped, ok = c.set(key, value)
	return popped, ok
}

// set writes key into its slot and returns the slot pointer.
func (c *LRU[K, V]) set(key K, value V) (p int, popped Popped[K, V], ok bool) {
	// Check for existing item
	if p, found := c.items[key]; found {
		popped = Popped[K, V]{Key: key, Value: c.values[p]}
		c.values[p] = value
		c.moveToFront(p)
		return p, popped, true
	}

	p, popped, ok = c.allocate()
	c.keys[p] = key
	c.values[p] = value
	c.pushFront(p)
	c.items[key] = p
	c.size++

	if ok && c.onEvict != nil {
		c.onEvict(popped.Key, popped.Value)
	}
	return p, popped, ok
}

// allocate returns a free pointer, evicting the tail when the arena is full.
func (c *LRU[K, V]) allocate() (p int, popped Popped[K, V], evicted bool) {
	switch {
	case c.freeCount > 0:
		c.freeCount--
		return c.freed.Get(c.freeCount), popped, false
	case c.hwm < c.capacity:
		p = c.hwm
		c.hwm++
		return p, popped, false
	}
	p = c.tail
	popped = Popped[K, V]{Key: c.keys[p], Value: c.values[p], Evicted: true}
	delete(c.items, popped.Key)
	c.detach(p)
	c.size--
	return p, popped, true
}

// Get looks up a key's value from the cache.
func (c *LRU[K, V]) Get(key K) (value V, ok bool) {
	p, ok := c.items[key]
	if !ok {
		return value, false
	}
	c.moveToFront(p)
	return c.values[p], true
}

// Contains checks if a key is in the cache, without updating the recent-ness
// or deleting it for being stale.
func (c *LRU[K, V]) Contains(key K) (ok bool) {
	_, ok = c.items[key]
	return ok
}

// Peek returns the key value (or undefined if not found) without updating
// the "recently used"-ness of the key.
func (c *LRU[K, V]) Peek(key K) (value V, ok bool) {
	p, ok := c.items[key]
	if !ok {
		return value, false
	}
	return c.values[p], true
}

// Remove removes the provided key from the cache, returning if the
// key was contained.
func (c *LRU[K, V]) Remove(key K) (present bool) {
	p, ok := c.items[key]
	if !ok {
		return false
	}
	c.removeSlot(p)
	return true
}

// RemoveOldest removes the oldest item from the cache.
func (c *LRU[K, V]) RemoveOldest() (key K, value V, ok bool) {
	if c.size == 0 {
		return key, value, false
	}
	key, value = c.keys[c.tail], c.values[c.tail]
	c.removeSlot(c.tail)
	return key, value, true
}

// GetOldest returns the oldest entry
func (c *LRU[K, V]) GetOldest() (key K, value V, ok bool) {
	if c.size == 0 {
		return key, value, false
	}
	return c.keys[c.tail], c.values[c.tail], true
}

// Keys returns the keys in the cache, from newest to oldest.
func (c *LRU[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for p := range c.walk {
			if !yield(c.keys[p]) {
				return
			}
		}
	}
}

// Values returns the values in the cache, from newest to oldest.
func (c *LRU[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for p := range c.walk {
			if !yield(c.values[p]) {
				return
			}
		}
	}
}

// All returns the key/value pairs in the cache, from newest to oldest.
// The cache must not be modified while the sequence is being consumed.
func (c *LRU[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for p := range c.walk {
			if !yield(c.keys[p], c.values[p]) {
				return
			}
		}
	}
}

// Len returns the number of items in the cache.
func (c *LRU[K, V]) Len() int {
	return c.size
}

// Cap returns the capacity of the cache.
func (c *LRU[K, V]) Cap() int {
	return c.capacity
}

// String returns a short description such as "LRU[3/128]".
func (c *LRU[K, V]) String() string {
	return fmt.Sprintf("LRU[%d/%d]", c.size, c.capacity)
}

// walk yields the live pointers from head to tail.
func (c *LRU[K, V]) walk(yield func(int) bool) {
	p := c.head
	for i := 0; i < c.size; i++ {
		if !yield(p) {
			return
		}
		p = c.forward.Get(p)
	}
}

// removeSlot unlinks a live slot, drops its key and puts the pointer on the
// free stack.
func (c *LRU[K, V]) removeSlot(p int) {
	key, value := c.keys[p], c.values[p]
	c.detach(p)
	delete(c.items, key)
	c.size--

	var zeroK K
	var zeroV V
	c.keys[p], c.values[p] = zeroK, zeroV
	c.freed.Set(c.freeCount, p)
	c.freeCount++

	if c.onEvict != nil {
		c.onEvict(key, value)
	}
}

// moveToFront makes a live slot the head of the recency list.
func (c *LRU[K, V]) moveToFront(p int) {
	if p == c.head {
		return
	}
	prev := c.backward.Get(p)
	if p == c.tail {
		c.tail = prev
	} else {
		next := c.forward.Get(p)
		c.forward.Set(prev, next)
		c.backward.Set(next, prev)
	}
	c.backward.Set(c.head, p)
	c.forward.Set(p, c.head)
	c.head = p
}

// pushFront links an unlinked slot in as the new head. size is not changed.
func (c *LRU[K, V]) pushFront(p int) {
	if c.size == 0 {
		c.head, c.tail = p, p
		return
	}
	c.backward.Set(c.head, p)
	c.forward.Set(p, c.head)
	c.head = p
}

// detach unlinks a live slot. Must be called before size is decremented.
func (c *LRU[K, V]) detach(p int) {
	switch {
	case c.size == 1:
	case p == c.head:
		c.head = c.forward.Get(p)
	case p == c.tail:
		c.tail = c.backward.Get(p)
	default:
		prev, next := c.backward.Get(p), c.forward.Get(p)
		c.forward.Set(prev, next)
		c.backward.Set(next, prev)
	}
}
