package audio

import (
	"fmt"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Backend is the audio output a ToneEmitter attaches to on construction and detaches from on teardown
// Lock/Unlock guard streamer mutation against the output goroutine
// Clear detaches every streamer and leaves the device open; Close releases the device
type Backend interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Lock()
	Unlock()
	Clear()
	Close()
}

// speakerDevice is the raw beep/speaker output; Init succeeds once per process
type speakerDevice struct{}

func (speakerDevice) Init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}

func (speakerDevice) Play(s beep.Streamer) { speaker.Play(s) }
func (speakerDevice) Lock()                { speaker.Lock() }
func (speakerDevice) Unlock()              { speaker.Unlock() }
func (speakerDevice) Clear()               { speaker.Clear() }
func (speakerDevice) Close()               { speaker.Close() }

var speakerOutput = &SharedBackend{device: speakerDevice{}}

// SpeakerBackend returns the process-wide system audio output
func SpeakerBackend() *SharedBackend {
	return speakerOutput
}

// SharedBackend opens its device on the first Init and reuses it for every later emitter
// Later Init calls must ask for the same sample rate; after Close the device cannot be reopened
type SharedBackend struct {
	mu     sync.Mutex
	device Backend
	opened bool
	closed bool
	rate   beep.SampleRate
}

// Share wraps a device so repeated emitter acquisitions initialize it only once
func Share(device Backend) *SharedBackend {
	if sb, ok := device.(*SharedBackend); ok {
		return sb
	}
	return &SharedBackend{device: device}
}

func (b *SharedBackend) Init(rate beep.SampleRate, bufferSize int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrServiceStopped
	}
	if b.opened {
		if rate != b.rate {
			return fmt.Errorf("output already open at %d Hz, requested %d Hz", b.rate, rate)
		}
		return nil
	}

	if err := b.device.Init(rate, bufferSize); err != nil {
		return err
	}
	b.opened = true
	b.rate = rate
	return nil
}

func (b *SharedBackend) Play(s beep.Streamer) { b.device.Play(s) }
func (b *SharedBackend) Lock()                { b.device.Lock() }
func (b *SharedBackend) Unlock()              { b.device.Unlock() }

// Clear detaches all streamers; the device keeps running
func (b *SharedBackend) Clear() {
	b.mu.Lock()
	opened := b.opened && !b.closed
	b.mu.Unlock()
	if opened {
		b.device.Clear()
	}
}

// Close releases the device for the rest of the process
func (b *SharedBackend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	if b.opened {
		b.device.Clear()
		b.device.Close()
	}
}

// Opened reports whether the device has been initialized
func (b *SharedBackend) Opened() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.opened
}

// NullBackend accepts streamers and never plays them, used when audio is disabled
type NullBackend struct{}

func (NullBackend) Init(beep.SampleRate, int) error { return nil }
func (NullBackend) Play(beep.Streamer)              {}
func (NullBackend) Lock()                           {}
func (NullBackend) Unlock()                         {}
func (NullBackend) Clear()                          {}
func (NullBackend) Close()                          {}
