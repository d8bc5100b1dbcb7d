package lru

import (
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/venkatsvpr/arenalru/simplelru"
	"github.com/venkatsvpr/arenalru/testutils"
)

// testTimer used to simulate time-elapse for expiration tests
type testTimer struct {
	mu sync.Mutex
	t  time.Time
}

func newTestTimer() *testTimer { return &testTimer{t: time.Now()} }

func (tt *testTimer) Now() time.Time {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	return tt.t
}

func (tt *testTimer) Advance(d time.Duration) {
	tt.mu.Lock()
	tt.t = tt.t.Add(d)
	tt.mu.Unlock()
}

func BenchmarkExpiringLRU_Rand(b *testing.B) {
	l, err := NewExpiring[int64, int64](8192)
	if err != nil {
		b.Fatalf("err: %v", err)
	}

	trace := make([]int64, b.N*2)
	for i := 0; i < b.N*2; i++ {
		trace[i] = getRand(b) % 32768
	}

	b.ResetTimer()

	var hit, miss int
	for i := 0; i < 2*b.N; i++ {
		if i%2 == 0 {
			l.Add(trace[i], trace[i])
		} else {
			if _, ok := l.Get(trace[i]); ok {
				hit++
			} else {
				miss++
			}
		}
	}
	b.Logf("hit: %d miss: %d ratio: %f", hit, miss, float64(hit)/float64(hit+miss))
}

func TestExpiringLRU_Conformance(t *testing.T) {
	evictCounter := 0
	onEvicted := func(k int, v int) {
		if k != v {
			t.Fatalf("Evict values not equal (%v!=%v)", k, v)
		}
		evictCounter++
	}
	l, err := NewExpiring(128, WithCallback(onEvicted))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	testutils.BasicTest(t, l, 128, &evictCounter)

	l, err = NewExpiring[int, int](4)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	testutils.AddPopTest(t, l, 4)
}

func TestExpiringLRU_Options(t *testing.T) {
	if _, err := NewExpiring(4, WithTTL[int, int](time.Minute)); !errors.Is(err, simplelru.ErrTTLNotSupported) {
		t.Fatalf("expected ErrTTLNotSupported, got %v", err)
	}
	if _, err := NewExpiring(4, WithTTK[int, int](-time.Second)); !errors.Is(err, simplelru.ErrInvalidExpiry) {
		t.Fatalf("expected ErrInvalidExpiry, got %v", err)
	}
	if _, err := NewExpiring(4, WithAgeBins[int, int](8), WithHorizon[int, int](8)); !errors.Is(err, simplelru.ErrInvalidExpiry) {
		t.Fatalf("expected ErrInvalidExpiry, got %v", err)
	}
	if _, err := NewExpiring(4, WithClock[int, int](nil)); !errors.Is(err, simplelru.ErrInvalidExpiry) {
		t.Fatalf("expected ErrInvalidExpiry, got %v", err)
	}
	if _, err := NewExpiring[int, int](0); !errors.Is(err, simplelru.ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize, got %v", err)
	}

	l, err := NewExpiring(4, WithTTK[int, int](time.Hour))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if l.TTK() != time.Hour {
		t.Fatalf("bad ttk: %v", l.TTK())
	}
}

// ttk spanning 10 beats over 100 age bins: an entry written at beat 0 is
// gone after Expire at beat 11.
func TestExpiringLRU_ExpireAfterTTK(t *testing.T) {
	tt := newTestTimer()
	l, err := NewExpiring(8,
		WithClock[int, int](tt.Now),
		WithTTK[int, int](10*time.Minute),
		WithHorizon[int, int](10),
		WithAgeBins[int, int](100),
	)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	l.Add(1, 1)

	tt.Advance(9 * time.Minute)
	if n := l.Expire(); n != 0 || !l.Contains(1) {
		t.Fatalf("1 should survive beat 9, expired %d", n)
	}

	tt.Advance(2 * time.Minute)
	if n := l.Expire(); n != 1 {
		t.Fatalf("expected 1 expired, got %d", n)
	}
	if l.Contains(1) || l.Len() != 0 {
		t.Fatalf("1 should be expired, len %d", l.Len())
	}
}

// Test that reads do not refresh an entry while writes do
func TestExpiringLRU_ExpireAfterWrite(t *testing.T) {
	var expired []int
	tt := newTestTimer()
	l, err := NewExpiring(3,
		WithClock[int, int](tt.Now),
		WithTTK[int, int](30*time.Second),
		WithHorizon[int, int](30),
		WithCallback(func(k, v int) {
			if k != v {
				t.Fatalf("Evict values not equal (%v!=%v)", k, v)
			}
			expired = append(expired, k)
		}),
	)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	for i := 0; i < 3; i++ {
		l.Add(i, i)
	}
	tt.Advance(20 * time.Second)
	// reading 0 moves it to the front but keeps its write time
	l.Get(0)
	// rewriting 1 refreshes it
	l.Add(1, 1)

	tt.Advance(15 * time.Second)
	if n := l.Expire(); n != 2 {
		t.Fatalf("expected 2 expired, got %d", n)
	}
	slices.Sort(expired)
	if want := []int{0, 2}; !slices.Equal(expired, want) {
		t.Fatalf("bad expired keys: %v, want %v", expired, want)
	}
	l.wantKeys(t, []int{1})

	// freed slots are reused before anything is evicted
	l.Add(3, 3)
	l.Add(4, 4)
	if len(expired) != 2 {
		t.Fatalf("unexpected eviction: %v", expired)
	}
	l.wantKeys(t, []int{4, 3, 1})
}

func TestExpiringLRU_ExpireIdempotent(t *testing.T) {
	tt := newTestTimer()
	l, err := NewExpiring(16, WithClock[int, int](tt.Now), WithTTK[int, int](time.Minute))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	for i := 0; i < 10; i++ {
		l.Add(i, i)
	}
	if n := l.Expire(); n != 0 {
		t.Fatalf("nothing should expire yet, got %d", n)
	}
	tt.Advance(2 * time.Minute)
	if n := l.Expire(); n != 10 {
		t.Fatalf("expected 10 expired, got %d", n)
	}
	if n := l.Expire(); n != 0 {
		t.Fatalf("second expire should be a no-op, got %d", n)
	}
	if l.Len() != 0 {
		t.Fatalf("bad len: %v", l.Len())
	}
}

func TestExpiringLRU_String(t *testing.T) {
	l, err := NewExpiring[string, int](4)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	l.Add("a", 1)
	if s := l.String(); s != "ExpiringLRU[1/4]" {
		t.Fatalf("bad string: %q", s)
	}
	if s := l.Summary(4); s != "ExpiringLRU size=1 capacity=4 [a:1]" {
		t.Fatalf("bad summary: %q", s)
	}
}
