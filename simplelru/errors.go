package simplelru

import "errors"

var (
	// ErrInvalidSize is returned when a cache is built with a non-positive size.
	ErrInvalidSize = errors.New("must provide a positive size")

	// ErrCapacityUnknown is returned by the From constructors when no size
	// was given and none can be inferred from the input.
	ErrCapacityUnknown = errors.New("could not infer capacity from input, provide a size")

	// ErrTTLNotSupported is returned when a time-to-live is configured on an
	// expiring cache. Entries are kept for at least a time-to-keep instead.
	ErrTTLNotSupported = errors.New("ttl is not supported, configure TTK (time-to-keep) and understand the difference")

	// ErrInvalidExpiry is returned for an out-of-range expiry option.
	ErrInvalidExpiry = errors.New("invalid expiry configuration")
)
