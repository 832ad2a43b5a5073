package engine

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestLoopRunsTasksInOrder(t *testing.T) {
	l := NewLoop(8)
	l.Start()
	defer l.Stop()

	var got []int
	for i := range 5 {
		l.Post(func() { got = append(got, i) })
	}
	if !l.Do(func() {}) {
		t.Fatal("Do returned false on a running loop")
	}

	for i, v := range got {
		if v != i {
			t.Errorf("Task order = %v", got)
			break
		}
	}
	if len(got) != 5 {
		t.Errorf("Ran %d tasks, want 5", len(got))
	}
	if l.Executed() != 6 {
		t.Errorf("Executed = %d, want 6", l.Executed())
	}
}

func TestLoopAfterFuncRunsOnLoop(t *testing.T) {
	l := NewLoop(8)
	l.Start()
	defer l.Stop()

	var owner atomic.Int64
	done := make(chan struct{})
	l.Do(func() { owner.Store(1) })

	l.AfterFunc(10*time.Millisecond, func() {
		owner.Add(1)
		close(done)
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("AfterFunc continuation never ran")
	}
	if owner.Load() != 2 {
		t.Errorf("owner = %d, want 2", owner.Load())
	}
}

func TestLoopPostAfterStop(t *testing.T) {
	l := NewLoop(1)
	l.Start()
	l.Stop()
	l.Stop()

	if l.Post(func() {}) {
		t.Error("Post after Stop should return false")
	}
	if l.Do(func() {}) {
		t.Error("Do after Stop should return false")
	}
}

func TestLoopStopWithoutStart(t *testing.T) {
	l := NewLoop(0)
	done := make(chan struct{})
	go func() {
		l.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked on a loop that never started")
	}
}
