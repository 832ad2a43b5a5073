package engine

import "time"

// Timer is a pending continuation
type Timer interface {
	// Stop cancels the continuation, returns false if it already ran or was stopped
	Stop() bool
}

// Clock schedules continuations on the game's single thread of control
// Every fn passed to AfterFunc runs on the same goroutine that owns the game state
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}
