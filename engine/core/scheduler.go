package core

import "sort"

// TimerID identifies a timer started with Scheduler.After
type TimerID uint64

type timer struct {
	id     TimerID
	remain float64
	fn     func()
	dead   bool
}

// Scheduler runs the frame-deferred continuations of the interaction layer:
// one-tick deferrals and cancellable timers. It is driven once per rendered
// frame from the same goroutine as everything else, so it needs no locking.
type Scheduler struct {
	deferred []func()
	timers   []*timer
	firing   []*timer
	nextID   TimerID
	Frame    uint64
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Defer runs fn at the start of the next Tick. Callbacks run in the order
// they were deferred; a callback deferred while the queue drains waits for
// the tick after.
func (s *Scheduler) Defer(fn func()) {
	s.deferred = append(s.deferred, fn)
}

// After runs fn once the given number of seconds of Tick time has passed
func (s *Scheduler) After(seconds float64, fn func()) TimerID {
	s.nextID++
	s.timers = append(s.timers, &timer{id: s.nextID, remain: seconds, fn: fn})
	return s.nextID
}

// Cancel stops a pending timer. Cancelling a fired or unknown timer is a no-op.
func (s *Scheduler) Cancel(id TimerID) bool {
	for i, t := range s.timers {
		if t.id == id {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return true
		}
	}
	// due in this tick but not fired yet
	for _, t := range s.firing {
		if t.id == id && !t.dead {
			t.dead = true
			return true
		}
	}
	return false
}

// Pending reports whether a timer is still waiting to fire
func (s *Scheduler) Pending(id TimerID) bool {
	for _, t := range s.timers {
		if t.id == id {
			return true
		}
	}
	return false
}

// Tick drains the deferred queue, then advances timers by dt and fires the
// expired ones in deadline order (ties by start order).
func (s *Scheduler) Tick(dt float64) {
	s.Frame++

	queue := s.deferred
	s.deferred = nil
	for _, fn := range queue {
		fn()
	}

	var due []*timer
	kept := s.timers[:0]
	for _, t := range s.timers {
		t.remain -= dt
		if t.remain <= 0 {
			due = append(due, t)
		} else {
			kept = append(kept, t)
		}
	}
	s.timers = kept
	sort.SliceStable(due, func(i, j int) bool { return due[i].remain < due[j].remain })
	s.firing = due
	for _, t := range due {
		if t.dead {
			continue
		}
		t.dead = true
		t.fn()
	}
	s.firing = nil
}
