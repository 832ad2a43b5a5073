package engine

import (
	"fmt"
	"time"

	"github.com/lixenwraith/simon/constant"
	"github.com/lixenwraith/simon/core"
)

// GamePhase is the coarse state of the game machine
type GamePhase int

const (
	PhaseIdle             GamePhase = iota // Not started, Start control shown
	PhaseAwaitingPlayback                  // About to reveal the next signal
	PhasePlaying                           // Revealing the sequence
	PhasePlayerTurn                        // Accepting input
	PhaseFailure                           // Failure tone sounding, idle follows
)

func (p GamePhase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseAwaitingPlayback:
		return "AwaitingPlayback"
	case PhasePlaying:
		return "Playing"
	case PhasePlayerTurn:
		return "PlayerTurn"
	case PhaseFailure:
		return "Failure"
	default:
		return fmt.Sprintf("GamePhase(%d)", int(p))
	}
}

// validTransitions is the phase graph; reset enters AwaitingPlayback from any started phase
var validTransitions = map[GamePhase][]GamePhase{
	PhaseIdle:             {PhaseAwaitingPlayback},
	PhaseAwaitingPlayback: {PhasePlaying, PhaseAwaitingPlayback},
	PhasePlaying:          {PhasePlayerTurn, PhaseAwaitingPlayback},
	PhasePlayerTurn:       {PhaseAwaitingPlayback, PhaseFailure},
	PhaseFailure:          {PhaseIdle, PhaseAwaitingPlayback},
}

// CanTransition checks if a phase transition is valid
func CanTransition(from, to GamePhase) bool {
	for _, valid := range validTransitions[from] {
		if valid == to {
			return true
		}
	}
	return false
}

// Pace is the per-signal hold multiplier, stored in tenths of a second
type Pace int

// StartPace is the pace of round one (1.0)
const StartPace Pace = constant.PaceStartTenths

// Next returns the pace after one more successful playback, floored at 0.2
func (p Pace) Next() Pace {
	next := p - constant.PaceStepTenths
	if next < constant.PaceFloorTenths {
		return constant.PaceFloorTenths
	}
	return next
}

// Hold returns how long each signal is held during playback (pace * 1000 ms)
func (p Pace) Hold() time.Duration {
	return time.Duration(p) * constant.PaceUnit
}

// Seconds returns the multiplier as a real number
func (p Pace) Seconds() float64 {
	return float64(p) / 10
}

// PlaybackToken identifies one in-flight playback run
// Epoch is bumped on every start, reset, failure and teardown
type PlaybackToken struct {
	Round int
	Epoch uint64
}

// Stale reports whether a run of length signals started under t is superseded by live
func (t PlaybackToken) Stale(live PlaybackToken, length int) bool {
	return live.Round < length || live.Round != t.Round || live.Epoch != t.Epoch
}

// GameState is a consistent snapshot of the machine
type GameState struct {
	Phase       GamePhase
	Round       int
	Sequence    core.Sequence
	PlayerIndex int
	Started     bool
	PlayerTurn  bool
	Pace        float64
}

// FormatRound renders a round number for display, zero padded to two digits
func FormatRound(round int) string {
	return fmt.Sprintf("%02d", round)
}
