package lru

import "sync"

// RWLocker define base interface of sync.RWMutex
type RWLocker interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

var (
	_ RWLocker = (*sync.RWMutex)(nil)
	_ RWLocker = NoOpRWLocker{}
)

// NoOpRWLocker is a dummy noop implementation of RWLocker interface. Use it
// through WithLocker when a cache is owned by a single goroutine and no
// Monitor is started.
type NoOpRWLocker struct{}

// Lock perform noop Lock() operation
func (nop NoOpRWLocker) Lock() {}

// Unlock perform noop Unlock() operation
func (nop NoOpRWLocker) Unlock() {}

// RLock perform noop RLock() operation
func (nop NoOpRWLocker) RLock() {}

// RUnlock perform noop RUnlock() operation
func (nop NoOpRWLocker) RUnlock() {}
