package audio

import (
	"fmt"
	"log"
	"math"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// ToneEmitter plays sine tones until their stop handle is called
// Each Play allocates an independent voice; voices share one mixer on the output
type ToneEmitter struct {
	config  AudioConfig
	backend Backend
	rate    beep.SampleRate

	mixer  *beep.Mixer
	master *effects.Volume

	closed atomic.Bool
	voices atomic.Int64
}

// NewToneEmitter acquires the audio output
// Failure is returned wrapped in ErrNoAudioDevice and is fatal to the session
func NewToneEmitter(cfg *AudioConfig, backend Backend) (*ToneEmitter, error) {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if backend == nil {
		backend = SpeakerBackend()
	}

	rate := beep.SampleRate(cfg.SampleRate)
	if err := backend.Init(rate, rate.N(cfg.BufferDuration())); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoAudioDevice, err)
	}

	te := &ToneEmitter{
		config:  *cfg,
		backend: backend,
		rate:    rate,
		mixer:   &beep.Mixer{},
	}
	te.master = &effects.Volume{Streamer: te.mixer, Base: 2}
	setVolume(te.master, te.config.MasterVolume, !te.config.Enabled)

	backend.Play(te.master)
	return te, nil
}

// Play starts a continuous tone at frequency Hz, amplitude 0.25, immediately
func (te *ToneEmitter) Play(frequency float64) StopFunc {
	if te.closed.Load() {
		log.Printf("Tone %.1f Hz requested after teardown, ignored", frequency)
		return func() {}
	}

	v, err := newToneVoice(te.rate, frequency, func() { te.voices.Add(-1) })
	if err != nil {
		log.Printf("Tone %.1f Hz rejected: %v", frequency, err)
		return func() {}
	}

	te.voices.Add(1)
	te.backend.Lock()
	te.mixer.Add(v)
	te.backend.Unlock()

	return v.Stop
}

// Teardown detaches the emitter from the output; later Play calls are no-ops
// The device itself stays open for the next emitter
func (te *ToneEmitter) Teardown() {
	if !te.closed.CompareAndSwap(false, true) {
		return
	}

	te.backend.Lock()
	te.mixer.Clear()
	te.backend.Unlock()

	te.backend.Clear()
	te.voices.Store(0)
}

// Closed reports whether Teardown ran
func (te *ToneEmitter) Closed() bool {
	return te.closed.Load()
}

// ActiveVoices returns voices not yet faded out
func (te *ToneEmitter) ActiveVoices() int {
	return int(te.voices.Load())
}

// SetVolume updates master volume (0.0-1.0)
func (te *ToneEmitter) SetVolume(vol float64) {
	if vol < 0 {
		vol = 0
	} else if vol > 1 {
		vol = 1
	}

	te.backend.Lock()
	te.config.MasterVolume = vol
	setVolume(te.master, vol, !te.config.Enabled)
	te.backend.Unlock()
}

// SetMuted silences output without releasing it
func (te *ToneEmitter) SetMuted(muted bool) {
	te.backend.Lock()
	te.config.Enabled = !muted
	setVolume(te.master, te.config.MasterVolume, muted)
	te.backend.Unlock()
}

// setVolume maps a linear volume onto effects.Volume
// math.Log2(0) is -Inf, so zero volume is expressed as Silent
func setVolume(v *effects.Volume, vol float64, muted bool) {
	if muted || vol <= 0 {
		v.Volume = 0
		v.Silent = true
		return
	}
	v.Volume = math.Log2(vol)
	v.Silent = false
}
