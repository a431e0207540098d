// Package tick provides a single-goroutine callback queue that lets a frame loop act
// as the timer for animations: callbacks are scheduled with a delay and run by the
// loop once their time has come.
package tick

import (
	"slices"
	"time"
)

// Queue is a delay queue of callbacks. It is not safe for concurrent use; the frame
// loop that calls RunDue must also be the only caller of After.
type Queue struct {
	// Now returns the current time. Nil means time.Now.
	Now func() time.Time

	items []item
}

type item struct {
	due time.Time
	fn  func()
}

func (q *Queue) now() time.Time {
	if q.Now != nil {
		return q.Now()
	}
	return time.Now()
}

// After schedules fn to run once delay has elapsed. Callbacks with the same due time
// run in the order they were scheduled.
func (q *Queue) After(delay time.Duration, fn func()) {
	due := q.now().Add(delay)
	i, _ := slices.BinarySearchFunc(q.items, due, func(it item, t time.Time) int {
		if it.due.After(t) {
			return 1
		}
		return -1
	})
	q.items = slices.Insert(q.items, i, item{due: due, fn: fn})
}

// Len returns the number of pending callbacks.
func (q *Queue) Len() int {
	return len(q.items)
}

// Clear drops every pending callback.
func (q *Queue) Clear() {
	q.items = q.items[:0]
}

// RunDue runs, in due order, the callbacks whose time is at or before now and returns
// how many ran. Callbacks scheduled while running wait for a later call, so a
// zero-delay callback cannot starve the frame loop.
func (q *Queue) RunDue(now time.Time) int {
	n := 0
	for n < len(q.items) && !q.items[n].due.After(now) {
		n++
	}
	if n == 0 {
		return 0
	}
	due := slices.Clone(q.items[:n])
	q.items = slices.Delete(q.items, 0, n)
	for _, it := range due {
		it.fn()
	}
	return n
}

// Step runs the earliest pending callback regardless of its due time. It reports
// whether a callback ran.
func (q *Queue) Step() bool {
	if len(q.items) == 0 {
		return false
	}
	it := q.items[0]
	q.items = slices.Delete(q.items, 0, 1)
	it.fn()
	return true
}

// Drain runs callbacks, including ones they schedule, until the queue is empty, and
// returns how many ran. Headless renders use it to finish animations instantly.
func (q *Queue) Drain() int {
	n := 0
	for q.Step() {
		n++
	}
	return n
}
