package constant

import "time"

// Playback pacing
// Pace is kept in tenths of a second so per-round decrements stay exact
const (
	// PaceStartTenths is the hold multiplier of the first round (1.0)
	PaceStartTenths = 10

	// PaceStepTenths is subtracted after every successful playback (0.1)
	PaceStepTenths = 1

	// PaceFloorTenths is the fastest pace playback can reach (0.2)
	PaceFloorTenths = 2

	// PaceUnit is the hold time of one pace tenth
	PaceUnit = 100 * time.Millisecond
)

// Playback and input timing
const (
	// PlaybackGap is the silence between two revealed signals
	PlaybackGap = 200 * time.Millisecond

	// InputDebounce delays validation of a released signal
	InputDebounce = 500 * time.Millisecond

	// FailureResetDelay is how long the failure tone sounds before the game returns to idle
	FailureResetDelay = 1500 * time.Millisecond

	// KeyTapHold is the synthetic hold time for keyboard presses, terminals report no key release
	KeyTapHold = 180 * time.Millisecond
)

// Game loop
const (
	// LoopQueueSize bounds pending continuations posted to the game loop
	LoopQueueSize = 256
)
