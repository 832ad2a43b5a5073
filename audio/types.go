package audio

import (
	"errors"
)

// StopFunc ramps a playing tone down to silence and releases it
// Safe to call more than once and from any goroutine
type StopFunc = func()

// Sentinel errors
var (
	ErrNoAudioDevice  = errors.New("audio output device unavailable")
	ErrInvalidConfig  = errors.New("invalid audio config")
	ErrServiceStopped = errors.New("audio service stopped")
)
