// Package timer provides scheduled, cancellable callbacks for a single event
// loop. Callbacks never run on their own goroutine: the owner of the loop
// decides when time passes (Advance) or when a specific timer is due (Fire).
package timer

import (
	"sort"
	"time"
)

// Scheduler schedules a callback to run after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a handle to a scheduled callback.
type Timer interface {
	// Stop cancels the callback. It reports whether the timer was still
	// pending. Stopping an already fired or stopped timer is a no-op.
	Stop() bool
}

// Pending describes a timer scheduled since the last call to Take.
type Pending struct {
	ID    uint64
	Delay time.Duration
}

// Manual is a Scheduler whose clock only moves when told to.
//
// Tests drive it with Advance. The terminal UI drains newly scheduled timers
// with Take, turns each into a tick command, and calls Fire when the tick
// arrives. Manual is not safe for concurrent use.
type Manual struct {
	now    time.Duration
	nextID uint64
	timers map[uint64]*manualTimer
	fresh  []Pending
}

type manualTimer struct {
	id    uint64
	due   time.Duration
	fn    func()
	owner *Manual
}

var _ Scheduler = (*Manual)(nil)

// NewManual creates a Manual scheduler at virtual time zero.
func NewManual() *Manual {
	return &Manual{timers: make(map[uint64]*manualTimer)}
}

// AfterFunc schedules fn to run once the clock has moved by d.
func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	m.nextID++
	t := &manualTimer{id: m.nextID, due: m.now + d, fn: fn, owner: m}
	m.timers[t.id] = t
	m.fresh = append(m.fresh, Pending{ID: t.id, Delay: d})
	return t
}

func (t *manualTimer) Stop() bool {
	if _, ok := t.owner.timers[t.id]; !ok {
		return false
	}
	delete(t.owner.timers, t.id)
	return true
}

// Now returns the virtual time elapsed since the scheduler was created.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Len returns the number of pending timers.
func (m *Manual) Len() int {
	return len(m.timers)
}

// Advance moves the clock forward by d and runs every timer that becomes due,
// in due order. Timers scheduled by callbacks run too if they fall inside the
// window. Returns the number of callbacks run.
func (m *Manual) Advance(d time.Duration) int {
	target := m.now + d
	fired := 0
	for {
		t := m.earliest()
		if t == nil || t.due > target {
			break
		}
		delete(m.timers, t.id)
		m.now = t.due
		t.fn()
		fired++
	}
	m.now = target
	return fired
}

// Take returns the timers scheduled since the previous call that are still
// pending, and clears the list.
func (m *Manual) Take() []Pending {
	out := make([]Pending, 0, len(m.fresh))
	for _, p := range m.fresh {
		if _, ok := m.timers[p.ID]; ok {
			out = append(out, p)
		}
	}
	m.fresh = m.fresh[:0]
	return out
}

// Fire runs the timer with the given id immediately, moving the clock to its
// due time if that is later. Returns false if the timer was stopped or
// already ran.
func (m *Manual) Fire(id uint64) bool {
	t, ok := m.timers[id]
	if !ok {
		return false
	}
	delete(m.timers, id)
	if t.due > m.now {
		m.now = t.due
	}
	t.fn()
	return true
}

func (m *Manual) earliest() *manualTimer {
	if len(m.timers) == 0 {
		return nil
	}
	ids := make([]uint64, 0, len(m.timers))
	for id := range m.timers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := m.timers[ids[i]], m.timers[ids[j]]
		if a.due != b.due {
			return a.due < b.due
		}
		return a.id < b.id
	})
	return m.timers[ids[0]]
}
