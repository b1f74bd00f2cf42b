package rogue

import (
	"sort"
	"time"
)

// TimerID identifies a scheduled callback.
type TimerID int

type timer struct {
	id       TimerID
	deadline time.Duration
	fn       func()
}

// Scheduler runs deferred callbacks on the run clock. Due timers fire in
// deadline order, ties in scheduling order. Nothing fires while the run
// is paused because the run simply stops advancing it.
type Scheduler struct {
	now    time.Duration
	nextID TimerID
	queue  []timer
}

// NewScheduler creates an empty scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the scheduler clock.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run once d has elapsed.
func (s *Scheduler) After(d time.Duration, fn func()) TimerID {
	s.nextID++
	t := timer{id: s.nextID, deadline: s.now + max(d, 0), fn: fn}

	// Keep the queue sorted; equal deadlines stay in insertion order.
	i := sort.Search(len(s.queue), func(i int) bool {
		return s.queue[i].deadline > t.deadline
	})
	s.queue = append(s.queue, timer{})
	copy(s.queue[i+1:], s.queue[i:])
	s.queue[i] = t
	return t.id
}

// Cancel removes a pending timer. It reports whether the timer was pending.
func (s *Scheduler) Cancel(id TimerID) bool {
	for i, t := range s.queue {
		if t.id == id {
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			return true
		}
	}
	return false
}

// Pending returns the number of timers waiting to fire.
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// Advance moves the clock forward by dt and fires every due timer.
// Callbacks may schedule new timers; those fire in the same call when
// their deadline has also passed.
func (s *Scheduler) Advance(dt time.Duration) {
	target := s.now + max(dt, 0)
	for len(s.queue) > 0 && s.queue[0].deadline <= target {
		t := s.queue[0]
		s.queue = s.queue[1:]
		s.now = t.deadline
		t.fn()
	}
	s.now = target
}

// Reset drops every pending timer and rewinds the clock.
func (s *Scheduler) Reset() {
	s.now = 0
	s.queue = s.queue[:0]
}
