package core

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/simon/constant"
)

// Signal is one of the four colored, audible game symbols
type Signal int

const (
	SignalRed Signal = iota
	SignalGreen
	SignalBlue
	SignalYellow
	SignalCount
)

// Signals lists the alphabet in its fixed order
var Signals = [SignalCount]Signal{SignalRed, SignalGreen, SignalBlue, SignalYellow}

var signalFrequencies = [SignalCount]float64{
	SignalRed:    constant.FrequencyRed,
	SignalGreen:  constant.FrequencyGreen,
	SignalBlue:   constant.FrequencyBlue,
	SignalYellow: constant.FrequencyYellow,
}

var signalCodes = [SignalCount]string{"R", "G", "B", "Y"}

var signalNames = [SignalCount]string{"red", "green", "blue", "yellow"}

// Valid reports whether s belongs to the alphabet
func (s Signal) Valid() bool {
	return s >= 0 && s < SignalCount
}

// Frequency returns the tone frequency in Hz
// Panics on a signal outside the alphabet, which is a caller bug
func (s Signal) Frequency() float64 {
	if !s.Valid() {
		panic(fmt.Sprintf("core: frequency of invalid signal %d", int(s)))
	}
	return signalFrequencies[s]
}

// String returns the single letter code
func (s Signal) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Signal(%d)", int(s))
	}
	return signalCodes[s]
}

// Name returns the lowercase color name
func (s Signal) Name() string {
	if !s.Valid() {
		return ""
	}
	return signalNames[s]
}

// ParseSignal accepts a letter code or a color name, case-insensitive
func ParseSignal(text string) (Signal, error) {
	t := strings.ToLower(strings.TrimSpace(text))
	for _, s := range Signals {
		if t == strings.ToLower(signalCodes[s]) || t == signalNames[s] {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown signal %q", text)
}

// Sequence is the ordered list of signals the player must reproduce
type Sequence []Signal

// Clone returns an independent copy with room for one more signal
func (q Sequence) Clone() Sequence {
	out := make(Sequence, len(q), len(q)+1)
	copy(out, q)
	return out
}

// String renders the sequence as letter codes, e.g. "RGBY"
func (q Sequence) String() string {
	var b strings.Builder
	for _, s := range q {
		b.WriteString(s.String())
	}
	return b.String()
}
