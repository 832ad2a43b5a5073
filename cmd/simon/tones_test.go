package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/simon/audio"
	"github.com/lixenwraith/simon/constant"
)

type countingEmitter struct {
	freqs []float64
	stops int
}

func (e *countingEmitter) Play(freq float64) audio.StopFunc {
	e.freqs = append(e.freqs, freq)
	return func() { e.stops++ }
}

func TestToneTable(t *testing.T) {
	var out bytes.Buffer
	printToneTable(&out)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("Tone table has %d lines, want 5:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[4], "failure") || !strings.Contains(lines[4], "176.000") {
		t.Errorf("Last line = %q, want the failure tone", lines[4])
	}
}

func TestPlayToneTable(t *testing.T) {
	var out bytes.Buffer
	var slept time.Duration
	em := &countingEmitter{}

	playToneTable(&out, em, func(d time.Duration) { slept += d })

	if len(em.freqs) != 5 || em.stops != 5 {
		t.Errorf("Played %d stopped %d, want 5 and 5", len(em.freqs), em.stops)
	}
	if em.freqs[4] != constant.FrequencyFailure {
		t.Errorf("Last tone = %v, want failure tone", em.freqs[4])
	}
	want := 5 * (toneCheckHold + toneCheckGap + constant.ToneFadeDuration)
	if slept != want {
		t.Errorf("Slept %v, want %v", slept, want)
	}
}
