package engine

import "time"

// track buffers a burst of deltas behind a restartable deadline. Each
// player carries two of these: one for the transient badge, one for the
// change log. A new delta always restarts the window from the latest
// delta, never accumulates it, so a burst commits exactly once, at least
// one full window after its last delta.
type track struct {
	sum      int
	deadline time.Time
}

func (t *track) add(amount int, deadline time.Time) {
	t.sum += amount
	t.deadline = deadline
}

func (t *track) armed() bool {
	return !t.deadline.IsZero()
}

func (t *track) expired(now time.Time) bool {
	return t.armed() && !now.Before(t.deadline)
}

func (t *track) clear() {
	t.sum = 0
	t.deadline = time.Time{}
}
