package engine

import (
	"errors"
	"time"

	"github.com/lixenwraith/simon/core"
)

var testEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

var errNoAudio = errors.New("no audio device")

// fakeEmitter records every tone and which voices are still sounding
type fakeEmitter struct {
	plays    []float64
	active   []bool
	stops    int
	torndown bool
}

func (e *fakeEmitter) Play(freq float64) func() {
	idx := len(e.plays)
	e.plays = append(e.plays, freq)
	e.active = append(e.active, true)
	return func() {
		if e.active[idx] {
			e.active[idx] = false
			e.stops++
		}
	}
}

func (e *fakeEmitter) Teardown() {
	e.torndown = true
}

func (e *fakeEmitter) sounding() int {
	n := 0
	for _, a := range e.active {
		if a {
			n++
		}
	}
	return n
}

// emitterFactory hands out fakeEmitters; fails once made reaches failAt (0 never fails)
type emitterFactory struct {
	made   []*fakeEmitter
	failAt int
}

func (f *emitterFactory) New() (ToneEmitter, error) {
	if f.failAt > 0 && len(f.made)+1 >= f.failAt {
		return nil, errNoAudio
	}
	e := &fakeEmitter{}
	f.made = append(f.made, e)
	return e, nil
}

func (f *emitterFactory) current() *fakeEmitter {
	return f.made[len(f.made)-1]
}

type highlightEvent struct {
	signal core.Signal
	active bool
	at     time.Duration
}

// recordingPresenter keeps every call with its offset on the manual clock
type recordingPresenter struct {
	clock      *ManualClock
	highlights []highlightEvent
	lit        [core.SignalCount]bool
	round      string
	started    bool
	rounds     []string
}

func (p *recordingPresenter) SetHighlight(s core.Signal, active bool) {
	p.highlights = append(p.highlights, highlightEvent{signal: s, active: active, at: p.clock.Now().Sub(testEpoch)})
	p.lit[s] = active
}

func (p *recordingPresenter) SetRoundDisplay(round string) {
	p.round = round
	p.rounds = append(p.rounds, round)
}

func (p *recordingPresenter) SetControlsVisibility(started bool) {
	p.started = started
}

func (p *recordingPresenter) anyLit() bool {
	for _, l := range p.lit {
		if l {
			return true
		}
	}
	return false
}

type gameHarness struct {
	game      *Game
	clock     *ManualClock
	presenter *recordingPresenter
	factory   *emitterFactory
}

func newGameHarness(seed uint64) (*gameHarness, error) {
	clock := NewManualClock(testEpoch)
	h := &gameHarness{
		clock:     clock,
		presenter: &recordingPresenter{clock: clock},
		factory:   &emitterFactory{},
	}
	g, err := NewGame(GameConfig{
		Clock:      clock,
		Presenter:  h.presenter,
		NewEmitter: h.factory.New,
		Generator:  NewSequenceGenerator(seed),
		SessionID:  "test",
	})
	if err != nil {
		return nil, err
	}
	h.game = g
	return h, nil
}

// playbackDuration is how long revealing n signals takes at pace
func playbackDuration(n int, pace Pace) time.Duration {
	return time.Duration(n) * (pace.Hold() + 200*time.Millisecond)
}

// finishPlayback advances the clock until the current reveal completes
func (h *gameHarness) finishPlayback() {
	st := h.game.Snapshot()
	h.clock.Advance(playbackDuration(st.Round, h.game.pace))
}

// tap presses and releases s, then waits out the debounce
func (h *gameHarness) tap(s core.Signal) {
	h.game.SignalPressed(s)
	h.game.SignalReleased(s)
	h.clock.Advance(500 * time.Millisecond)
}

// echo reproduces the whole revealed sequence
func (h *gameHarness) echo() {
	for _, s := range h.game.Snapshot().Sequence {
		h.tap(s)
	}
}

// wrong returns a signal different from the one expected next
func (h *gameHarness) wrong() core.Signal {
	st := h.game.Snapshot()
	return (st.Sequence[st.PlayerIndex] + 1) % core.SignalCount
}
