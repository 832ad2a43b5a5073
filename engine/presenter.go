package engine

import "github.com/lixenwraith/simon/core"

// Presenter is what the game needs from the board
// Calls arrive on the game loop goroutine
type Presenter interface {
	SetHighlight(s core.Signal, active bool)
	SetRoundDisplay(round string)
	SetControlsVisibility(started bool)
}

// ToneEmitter produces tones until their stop func is called
type ToneEmitter interface {
	Play(frequency float64) func()
	Teardown()
}

// EmitterFactory acquires a fresh ToneEmitter, failure is fatal to the session
type EmitterFactory func() (ToneEmitter, error)

type nopPresenter struct{}

func (nopPresenter) SetHighlight(core.Signal, bool) {}
func (nopPresenter) SetRoundDisplay(string)         {}
func (nopPresenter) SetControlsVisibility(bool)     {}

type nopEmitter struct{}

func (nopEmitter) Play(float64) func() { return func() {} }
func (nopEmitter) Teardown()           {}
