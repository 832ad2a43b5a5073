package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/simon/core"
)

// Loop is the single goroutine that owns game state
// UI events are posted with Post; timers re-enter through AfterFunc
type Loop struct {
	tasks chan func()

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	// Tasks executed, for diagnostics
	executed atomic.Uint64
}

// NewLoop creates a loop with a bounded task queue
func NewLoop(queueSize int) *Loop {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Loop{
		tasks:    make(chan func(), queueSize),
		stopChan: make(chan struct{}),
	}
}

// Start launches the loop goroutine
func (l *Loop) Start() {
	if l.running.CompareAndSwap(false, true) {
		l.wg.Add(1)
		// Use core.Go for safe execution with centralized crash handling
		core.Go(l.run)
	}
}

// Stop halts the loop; queued tasks that have not run are dropped
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopChan)
		if l.running.Load() {
			l.wg.Wait()
		}
	})
}

// Post queues fn to run on the loop, returns false once the loop is stopped
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.stopChan:
		return false
	default:
	}

	select {
	case l.tasks <- fn:
		return true
	case <-l.stopChan:
		return false
	}
}

// Do runs fn on the loop and waits for it to finish
// Returns false if the loop stopped before fn ran
func (l *Loop) Do(fn func()) bool {
	done := make(chan struct{})
	if !l.Post(func() {
		defer close(done)
		fn()
	}) {
		return false
	}

	select {
	case <-done:
		return true
	case <-l.stopChan:
		return false
	}
}

// Now implements Clock
func (l *Loop) Now() time.Time {
	return time.Now()
}

// AfterFunc implements Clock, fn is posted to the loop when d elapses
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, func() {
		l.Post(fn)
	})
}

// Executed returns how many tasks ran
func (l *Loop) Executed() uint64 {
	return l.executed.Load()
}

func (l *Loop) run() {
	defer l.wg.Done()

	for {
		select {
		case <-l.stopChan:
			return
		case fn := <-l.tasks:
			fn()
			l.executed.Add(1)
		}
	}
}
