// Package testutils holds conformance checks shared by every LRUCache
// implementation in this module.
package testutils

import (
	"slices"
	"testing"

	"github.com/venkatsvpr/arenalru/simplelru"
)

func BasicTest(t *testing.T, l simplelru.LRUCache[int, int], capacity int, evictCounter *int) {
	// add twice as much the capacity to check if eviction occurs
	for i := 0; i < 2*capacity; i++ {
		l.Add(i, i)
	}

	if l.Len() != capacity {
		t.Fatalf("bad len: %v", l.Len())
	}
	if l.Cap() != capacity {
		t.Fatalf("bad cap: %v", l.Cap())
	}

	// half of them should be evicted to make room for the incoming ones
	if *evictCounter != capacity {
		t.Fatalf("bad evict count: %v", *evictCounter)
	}

	// cache should contain only the keys from capacity..2*capacity, newest
	// first, anything before that should have been evicted
	for i, k := range slices.Collect(l.Keys()) {
		if v, ok := l.Peek(k); !ok || v != k || v != 2*capacity-1-i {
			t.Fatalf("bad key: %v", k)
		}
	}

	for i := 0; i < capacity; i++ {
		_, ok := l.Get(i)
		if ok {
			t.Fatalf("should be evicted")
		}
	}

	for i := capacity; i < 2*capacity; i++ {
		_, ok := l.Get(i)
		if !ok {
			t.Fatalf("should not be evicted")
		}
	}

	// delete half the items from cache
	lastIndex := (capacity + capacity/2)
	for i := capacity; i < lastIndex; i++ {
		ok := l.Remove(i)
		if !ok {
			t.Fatalf("should be contained")
		}
		ok = l.Remove(i)
		if ok {
			t.Fatalf("should not be contained")
		}
		_, ok = l.Get(i)
		if ok {
			t.Fatalf("should be deleted")
		}
	}

	// this makes this item the most recently accessed; moved to the front
	l.Get(lastIndex)

	// make sure the cache has only half the capacity as we deleted half of them.
	cacheLen := l.Len()
	if capacity/2 != cacheLen {
		t.Fatalf("invalid len. expected %v, got %v", capacity/2, cacheLen)
	}

	// Keys - returns items from newest to oldest.
	for i, k := range slices.Collect(l.Keys()) {
		// first item should be `lastIndex` and the others in descending order
		if (i == 0 && k != lastIndex) || (i > 0 && k != 2*capacity-i) {
			t.Fatalf("out of order key: %v %v %v", i, k, cacheLen-1)
		}
	}

	// the freed slots are reused without evicting anything
	*evictCounter = 0
	for i := 0; i < capacity/2; i++ {
		if l.Add(-1-i, -1-i) {
			t.Fatalf("freed slot should have been reused")
		}
	}
	if *evictCounter != 0 || l.Len() != capacity {
		t.Fatalf("bad evict count %v or len %v", *evictCounter, l.Len())
	}

	l.Purge()
	if l.Len() != 0 {
		t.Fatalf("bad len: %v", l.Len())
	}

	// try to get the random item
	if _, ok := l.Get(200); ok {
		t.Fatalf("should contain nothing")
	}
}

func GetOldestRemoveOldestTest(t *testing.T, l simplelru.LRUCache[int, int], capacity int) {
	// add twice as much the capacity
	for i := 0; i < 2*capacity; i++ {
		l.Add(i, i)
	}

	k, _, ok := l.GetOldest()
	if !ok {
		t.Fatalf("missing")
	}
	if k != capacity {
		t.Fatalf("bad: %v", k)
	}

	k, _, ok = l.RemoveOldest()
	if !ok {
		t.Fatalf("missing")
	}
	if k != capacity {
		t.Fatalf("bad: %v", k)
	}

	k, _, ok = l.RemoveOldest()
	if !ok {
		t.Fatalf("missing")
	}
	if k != capacity+1 {
		t.Fatalf("bad: %v", k)
	}
}

func AddTest(t *testing.T, l simplelru.LRUCache[int, int], capacity int, evictCounter *int) {
	for i := 0; i < capacity; i++ {
		if l.Add(i, i) == true || *evictCounter != 0 {
			t.Errorf("should not have an eviction")
		}
	}
	if l.Add(capacity, capacity) == false || *evictCounter != 1 {
		t.Errorf("should have an eviction")
	}
}

func AddPopTest(t *testing.T, l simplelru.LRUCache[int, int], capacity int) {
	for i := 0; i < capacity; i++ {
		if p, ok := l.AddPop(i, i); ok {
			t.Errorf("unexpected pop %+v", p)
		}
	}
	if p, ok := l.AddPop(0, 100); !ok || p.Evicted || p.Key != 0 || p.Value != 0 {
		t.Errorf("overwrite should pop the old value: %+v %v", p, ok)
	}
	// 0 is now the newest, 1 the oldest
	if p, ok := l.AddPop(capacity, capacity); !ok || !p.Evicted || p.Key != 1 {
		t.Errorf("overflow should evict 1: %+v %v", p, ok)
	}
}

func ContainsTest(t *testing.T, l simplelru.LRUCache[int, int], capacity int) {
	for i := 0; i < capacity; i++ {
		l.Add(i, i)
	}

	// contains should not update the recent-ness so this item will remain the oldest
	if !l.Contains(0) {
		t.Errorf("0 should be contained")
	}

	// oldest (0) should have been evicted
	l.Add(capacity, capacity)
	if l.Contains(0) {
		t.Errorf("Contains should not have updated recent-ness of 0")
	}
}

func PeekTest(t *testing.T, l simplelru.LRUCache[int, int], capacity int) {
	for i := 0; i < capacity; i++ {
		l.Add(i, i)
	}

	if v, ok := l.Peek(1); !ok || v != 1 {
		t.Errorf("1 should be set to 1: %v, %v", v, ok)
	}

	l.Add(capacity, capacity)
	if l.Contains(0) {
		t.Errorf("should have been removed to make room for the new item")
	}
}

func IterationTest(t *testing.T, l simplelru.LRUCache[int, int], capacity int) {
	for i := 0; i < capacity; i++ {
		l.Add(i, i*2)
	}
	l.Get(0)

	want := []int{0}
	for i := capacity - 1; i > 0; i-- {
		want = append(want, i)
	}
	if got := slices.Collect(l.Keys()); !slices.Equal(got, want) {
		t.Fatalf("bad keys: %v, want %v", got, want)
	}
	for i, v := range slices.Collect(l.Values()) {
		if v != want[i]*2 {
			t.Fatalf("bad value at %d: %v", i, v)
		}
	}
	i := 0
	for k, v := range l.All() {
		if k != want[i] || v != k*2 {
			t.Fatalf("bad entry at %d: %v=%v", i, k, v)
		}
		i++
	}
}
