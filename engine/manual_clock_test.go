package engine

import (
	"testing"
	"time"
)

func TestManualClockRunsInDeadlineOrder(t *testing.T) {
	c := NewManualClock(testEpoch)
	var order []string

	c.AfterFunc(300*time.Millisecond, func() { order = append(order, "c") })
	c.AfterFunc(100*time.Millisecond, func() { order = append(order, "a") })
	c.AfterFunc(100*time.Millisecond, func() { order = append(order, "b") })

	c.Advance(250 * time.Millisecond)
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Errorf("Order after 250ms = %v, want [a b]", order)
	}
	if got := c.Now().Sub(testEpoch); got != 250*time.Millisecond {
		t.Errorf("Now after Advance = %v, want 250ms", got)
	}

	c.Advance(50 * time.Millisecond)
	if len(order) != 3 {
		t.Errorf("Timer at exact deadline did not run: %v", order)
	}
}

func TestManualClockNestedScheduling(t *testing.T) {
	c := NewManualClock(testEpoch)
	var at []time.Duration

	c.AfterFunc(100*time.Millisecond, func() {
		at = append(at, c.Now().Sub(testEpoch))
		c.AfterFunc(100*time.Millisecond, func() {
			at = append(at, c.Now().Sub(testEpoch))
		})
	})

	c.Advance(time.Second)
	if len(at) != 2 || at[0] != 100*time.Millisecond || at[1] != 200*time.Millisecond {
		t.Errorf("Nested timers ran at %v, want [100ms 200ms]", at)
	}
}

func TestManualClockStop(t *testing.T) {
	c := NewManualClock(testEpoch)
	ran := false
	timer := c.AfterFunc(time.Second, func() { ran = true })

	if !timer.Stop() {
		t.Error("First Stop should report true")
	}
	if timer.Stop() {
		t.Error("Second Stop should report false")
	}
	c.Advance(2 * time.Second)
	if ran {
		t.Error("Stopped timer ran")
	}
	if c.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", c.Pending())
	}
}

func TestManualClockFlush(t *testing.T) {
	c := NewManualClock(testEpoch)
	count := 0
	var chain func()
	chain = func() {
		count++
		if count < 5 {
			c.AfterFunc(time.Minute, chain)
		}
	}
	c.AfterFunc(time.Minute, chain)

	c.Flush()
	if count != 5 {
		t.Errorf("Flush ran %d continuations, want 5", count)
	}
	if c.Pending() != 0 {
		t.Errorf("Pending after Flush = %d", c.Pending())
	}
}
