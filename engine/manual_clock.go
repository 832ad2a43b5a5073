package engine

import (
	"sort"
	"sync"
	"time"
)

// ManualClock is a controllable Clock for deterministic tests
// Continuations run synchronously on the goroutine calling Advance, in deadline order
type ManualClock struct {
	mu      sync.Mutex
	now     time.Time
	seq     uint64
	pending []*manualTimer
}

type manualTimer struct {
	clock    *ManualClock
	deadline time.Time
	seq      uint64
	fn       func()
	done     bool
}

// NewManualClock creates a clock frozen at start
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current mocked time
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AfterFunc schedules fn at Now()+d; d <= 0 runs on the next Advance
func (c *ManualClock) AfterFunc(d time.Duration, fn func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	if d < 0 {
		d = 0
	}
	c.seq++
	t := &manualTimer{clock: c, deadline: c.now.Add(d), seq: c.seq, fn: fn}
	c.pending = append(c.pending, t)
	return t
}

// Stop implements Timer
func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if t.done {
		return false
	}
	t.done = true
	return true
}

// Advance moves time forward by d, running every continuation due on the way
// Continuations scheduled while advancing also run if they fall inside the window
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		t := c.popDue(target)
		if t == nil {
			break
		}
		t.fn()
	}

	c.mu.Lock()
	c.now = target
	c.mu.Unlock()
}

// Flush runs every pending continuation regardless of deadline
func (c *ManualClock) Flush() {
	for {
		c.mu.Lock()
		if len(c.livePending()) == 0 {
			c.mu.Unlock()
			return
		}
		last := c.now
		for _, t := range c.pending {
			if !t.done && t.deadline.After(last) {
				last = t.deadline
			}
		}
		c.mu.Unlock()
		c.Advance(last.Sub(c.Now()))
	}
}

// Pending returns the number of continuations not yet run or stopped
func (c *ManualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.livePending())
}

// popDue removes the earliest continuation due at or before target and moves time to it
func (c *ManualClock) popDue(target time.Time) *manualTimer {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending = c.livePending()
	if len(c.pending) == 0 {
		return nil
	}

	sort.SliceStable(c.pending, func(i, j int) bool {
		a, b := c.pending[i], c.pending[j]
		if !a.deadline.Equal(b.deadline) {
			return a.deadline.Before(b.deadline)
		}
		return a.seq < b.seq
	})

	t := c.pending[0]
	if t.deadline.After(target) {
		return nil
	}

	c.pending = c.pending[1:]
	t.done = true
	if t.deadline.After(c.now) {
		c.now = t.deadline
	}
	return t
}

func (c *ManualClock) livePending() []*manualTimer {
	live := make([]*manualTimer, 0, len(c.pending))
	for _, t := range c.pending {
		if !t.done {
			live = append(live, t)
		}
	}
	return live
}
