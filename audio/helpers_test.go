package audio

import (
	"errors"
	"sync"

	"github.com/gopxl/beep"
)

// fakeBackend records the played streamer and lets tests pull samples synchronously
type fakeBackend struct {
	mu       sync.Mutex
	initErr  error
	initOnce bool
	inits    int
	clears   int
	closes   int
	rate     beep.SampleRate
	streamer beep.Streamer
}

func (b *fakeBackend) Init(rate beep.SampleRate, bufferSize int) error {
	b.inits++
	if b.initErr != nil {
		return b.initErr
	}
	if b.initOnce && b.inits > 1 {
		return errInitTwice
	}
	b.rate = rate
	return nil
}

func (b *fakeBackend) Play(s beep.Streamer) { b.streamer = s }
func (b *fakeBackend) Lock()                { b.mu.Lock() }
func (b *fakeBackend) Unlock()              { b.mu.Unlock() }
func (b *fakeBackend) Clear()               { b.clears++ }
func (b *fakeBackend) Close()               { b.closes++ }

// pull streams n stereo frames from the output as the speaker goroutine would
func (b *fakeBackend) pull(n int) [][2]float64 {
	buf := make([][2]float64, n)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.streamer != nil {
		b.streamer.Stream(buf)
	}
	return buf
}

var (
	errNoDevice  = errors.New("no device")
	errInitTwice = errors.New("speaker cannot be initialized more than once")
)

func peak(samples [][2]float64) float64 {
	p := 0.0
	for _, s := range samples {
		if s[0] > p {
			p = s[0]
		}
		if -s[0] > p {
			p = -s[0]
		}
	}
	return p
}
