package audio

import (
	"math"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/simon/constant"
)

// toneVoice is one held tone: its own sine source behind its own gain stage
// Stream runs on the output goroutine; stop may be requested from anywhere
type toneVoice struct {
	source beep.Streamer
	gain   float64

	// Exponential fade-out, started on the first Stream call after stop
	fading  bool
	fadeLen int
	fadePos int
	ratio   float64

	stopReq atomic.Bool
	done    bool
	onDone  func()
}

func newToneVoice(rate beep.SampleRate, frequency float64, onDone func()) (*toneVoice, error) {
	src, err := generators.SineTone(rate, frequency)
	if err != nil {
		return nil, err
	}

	fadeLen := rate.N(constant.ToneFadeDuration)
	if fadeLen < 1 {
		fadeLen = 1
	}

	return &toneVoice{
		source:  src,
		gain:    constant.ToneAmplitude,
		fadeLen: fadeLen,
		onDone:  onDone,
	}, nil
}

// Stop requests the fade-out
func (v *toneVoice) Stop() {
	v.stopReq.Store(true)
}

func (v *toneVoice) Stream(samples [][2]float64) (n int, ok bool) {
	if v.done {
		return 0, false
	}

	n, ok = v.source.Stream(samples)
	if !ok {
		v.finish()
		return n, false
	}

	if !v.fading && v.stopReq.Load() {
		v.fading = true
		// Per-sample multiplier reaching the floor after fadeLen samples
		v.ratio = math.Pow(constant.ToneFadeFloor/v.gain, 1/float64(v.fadeLen))
	}

	for i := 0; i < n; i++ {
		if v.fading {
			if v.fadePos >= v.fadeLen {
				v.finish()
				return i, false
			}
			v.gain *= v.ratio
			v.fadePos++
		}
		samples[i][0] *= v.gain
		samples[i][1] *= v.gain
	}
	return n, true
}

func (v *toneVoice) Err() error {
	return v.source.Err()
}

func (v *toneVoice) finish() {
	if v.done {
		return
	}
	v.done = true
	if v.onDone != nil {
		v.onDone()
	}
}
