package lru

import "errors"

var (
	// ErrExpiryOption is returned when an expiry option is given to a cache
	// that does not expire entries.
	ErrExpiryOption = errors.New("expiry options require NewExpiring")

	// ErrExpirePanicked wraps a panic recovered from a monitored Expire.
	ErrExpirePanicked = errors.New("expire panicked")
)
