package simplelru

import "time"

// beatClock folds wall time into a ring of age buckets ("beats").
type beatClock struct {
	now   func() time.Time
	start time.Time
	width time.Duration
	bins  int
}

func newBeatClock(now func() time.Time, width time.Duration, bins int) beatClock {
	return beatClock{now: now, start: now(), width: width, bins: bins}
}

// beat returns the bucket the current time falls in.
func (b beatClock) beat() int {
	elapsed := b.now().Sub(b.start)
	if elapsed < 0 {
		return 0
	}
	return int((elapsed / b.width) % time.Duration(b.bins))
}

// since returns how many beats separate from and to on the ring.
func (b beatClock) since(from, to int) int {
	return b.add(to, -from)
}

func (b beatClock) add(beat, n int) int {
	return ((beat+n)%b.bins + b.bins) % b.bins
}
