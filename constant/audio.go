package constant

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100
	AudioChannels   = 2

	// AudioBufferDuration determines output latency of the speaker buffer
	AudioBufferDuration = 50 * time.Millisecond
)

// Tone voice shaping
const (
	// ToneAmplitude is the fixed gain of every voice while held
	ToneAmplitude = 0.25

	// ToneFadeFloor is the gain an exponential fade-out ramps down to before the voice is dropped
	ToneFadeFloor = 0.0001

	// ToneFadeDuration is the fade-out window applied by a stop handle
	ToneFadeDuration = 40 * time.Millisecond
)

// Signal frequencies in Hz, one per signal
const (
	FrequencyRed    = 329.628 // E4
	FrequencyGreen  = 391.995 // G4
	FrequencyBlue   = 195.998 // G3
	FrequencyYellow = 261.626 // C4

	// FrequencyFailure is the buzz played when the player enters a wrong signal
	FrequencyFailure = 176.0
)

// Master volume defaults
const (
	DefaultMasterVolume = 0.8
)
