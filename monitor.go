package lru

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

// ErrorHandler receives the errors of a monitored sweep.
type ErrorHandler func(err error)

// Monitor is a background task calling a sweep on a fixed interval.
type Monitor struct {
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
	fired    atomic.Uint64
}

func startMonitor(ctx context.Context, interval time.Duration, sweep func(), onError ErrorHandler) *Monitor {
	ctx, cancel := context.WithCancel(ctx)
	m := &Monitor{
		interval: interval,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	go m.run(ctx, sweep, onError)
	return m
}

func (m *Monitor) run(ctx context.Context, sweep func(), onError ErrorHandler) {
	defer close(m.done)
	Logger().Debug("lru: monitor started", "interval", m.interval)
	defer func() { Logger().Debug("lru: monitor stopped", "fired", m.fired.Load()) }()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// a tick racing with Stop must not fire
			if ctx.Err() != nil {
				return
			}
			m.fire(sweep, onError)
		}
	}
}

func (m *Monitor) fire(sweep func(), onError ErrorHandler) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		Logger().Warn("lru: expire panicked", "panic", r)
		if onError != nil {
			onError(fmt.Errorf("%w: %v", ErrExpirePanicked, r))
		}
	}()
	m.fired.Add(1)
	sweep()
}

// Stop cancels the monitor and waits for a sweep in progress to return.
// It is safe to call more than once but must not be called from the sweep
// itself: neither from the ErrorHandler nor from an eviction callback the
// sweep triggers.
func (m *Monitor) Stop() {
	m.cancel()
	<-m.done
}

// Done is closed once the monitor has stopped.
func (m *Monitor) Done() <-chan struct{} {
	return m.done
}

// Fired returns how many sweeps have been started.
func (m *Monitor) Fired() uint64 {
	return m.fired.Load()
}

// Interval returns the time between two sweeps.
func (m *Monitor) Interval() time.Duration {
	return m.interval
}
