package engine

import (
	"errors"
	"fmt"
	"log"
	"sync/atomic"

	"github.com/lixenwraith/simon/constant"
	"github.com/lixenwraith/simon/core"
	"github.com/lixenwraith/simon/status"
)

// ErrGameClosed is returned by operations after Teardown
var ErrGameClosed = errors.New("game torn down")

// GameConfig wires a Game to its collaborators
type GameConfig struct {
	Clock      Clock
	Presenter  Presenter
	NewEmitter EmitterFactory
	Generator  *SequenceGenerator
	Registry   *status.Registry
	SessionID  string

	// OnFatal receives errors raised inside continuations, i.e. audio reacquire after a failure
	OnFatal func(error)
}

// Game is the sequence state machine
// All methods must be called from the clock's thread (the Loop goroutine in production)
type Game struct {
	clock      Clock
	presenter  Presenter
	newEmitter EmitterFactory
	emitter    ToneEmitter
	generator  *SequenceGenerator
	playback   *PlaybackController
	sessionID  string
	onFatal    func(error)

	phase       GamePhase
	round       int
	sequence    core.Sequence
	playerIndex int
	started     bool
	playerTurn  bool
	pace        Pace

	// epoch invalidates continuations scheduled before a start, reset, failure or teardown
	epoch  uint64
	closed bool

	// Stop funcs of signals currently pressed by the player, keyed by signal
	held [core.SignalCount]func()

	statRound    *atomic.Int64
	statBest     *atomic.Int64
	statGames    *atomic.Int64
	statFailures *atomic.Int64
	statPace     *status.AtomicFloat
	statPhase    *status.AtomicString
}

// NewGame acquires the first emitter and returns an idle game
func NewGame(cfg GameConfig) (*Game, error) {
	if cfg.Clock == nil {
		return nil, fmt.Errorf("new game: clock is required")
	}
	if cfg.NewEmitter == nil {
		return nil, fmt.Errorf("new game: emitter factory is required")
	}

	emitter, err := cfg.NewEmitter()
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}

	reg := cfg.Registry
	if reg == nil {
		reg = status.NewRegistry()
	}
	presenter := cfg.Presenter
	if presenter == nil {
		presenter = nopPresenter{}
	}
	gen := cfg.Generator
	if gen == nil {
		gen = NewSequenceGenerator(0)
	}

	g := &Game{
		clock:        cfg.Clock,
		presenter:    presenter,
		newEmitter:   cfg.NewEmitter,
		emitter:      emitter,
		generator:    gen,
		sessionID:    cfg.SessionID,
		onFatal:      cfg.OnFatal,
		phase:        PhaseIdle,
		pace:         StartPace,
		statRound:    reg.Ints.Get("game.round"),
		statBest:     reg.Ints.Get("game.best_round"),
		statGames:    reg.Ints.Get("game.games"),
		statFailures: reg.Ints.Get("game.failures"),
		statPace:     reg.Floats.Get("game.pace"),
		statPhase:    reg.Strings.Get("game.phase"),
	}
	g.playback = NewPlaybackController(cfg.Clock, g.currentEmitter, presenter.SetHighlight, g.token, reg)

	g.publish()
	return g, nil
}

// Start begins a game from Idle; ignored once started
func (g *Game) Start() {
	if g.closed {
		return
	}
	if g.started {
		log.Printf("Session %s: start ignored, game already running in %s", g.sessionID, g.phase)
		return
	}
	g.begin()
}

// Reset reacquires the audio output and starts over at round one, from any state
func (g *Game) Reset() error {
	if g.closed {
		return ErrGameClosed
	}
	if err := g.reacquireEmitter(); err != nil {
		return err
	}
	g.begin()
	return nil
}

// Teardown releases the audio output; the game is unusable afterwards
func (g *Game) Teardown() {
	if g.closed {
		return
	}
	g.closed = true
	g.epoch++
	g.releaseHeld()
	g.emitter.Teardown()
	g.emitter = nopEmitter{}
}

// InputSignal validates one player signal against the sequence
// Only meaningful during PlayerTurn, ignored otherwise
func (g *Game) InputSignal(s core.Signal) {
	if g.closed || g.phase != PhasePlayerTurn {
		return
	}

	if g.sequence[g.playerIndex] != s {
		g.fail(s)
		return
	}

	if g.playerIndex < len(g.sequence)-1 {
		g.playerIndex++
		return
	}

	// Last element matched; pads still held belong to the finished round
	g.releaseHeld()
	g.round++
	g.playerIndex = 0
	g.playerTurn = false
	if int64(len(g.sequence)) > g.statBest.Load() {
		g.statBest.Store(int64(len(g.sequence)))
	}
	g.transition(PhaseAwaitingPlayback)
	g.publish()
	g.awaitPlayback()
}

// SignalPressed gives immediate feedback for a pressed signal during PlayerTurn
func (g *Game) SignalPressed(s core.Signal) {
	if g.closed || g.phase != PhasePlayerTurn || !s.Valid() {
		return
	}
	if g.held[s] != nil {
		return
	}

	g.presenter.SetHighlight(s, true)
	g.held[s] = g.emitter.Play(s.Frequency())
}

// SignalReleased ends feedback and validates the signal after the debounce delay
// Dropped if the round or epoch moved on meanwhile
func (g *Game) SignalReleased(s core.Signal) {
	if g.closed || !s.Valid() {
		return
	}
	stop := g.held[s]
	if stop == nil {
		return
	}
	g.held[s] = nil

	stop()
	g.presenter.SetHighlight(s, false)

	epoch, round := g.epoch, g.round
	g.clock.AfterFunc(constant.InputDebounce, func() {
		if g.closed || g.epoch != epoch || g.round != round {
			return
		}
		g.InputSignal(s)
	})
}

// Snapshot returns a copy of the current state
func (g *Game) Snapshot() GameState {
	return GameState{
		Phase:       g.phase,
		Round:       g.round,
		Sequence:    append(core.Sequence(nil), g.sequence...),
		PlayerIndex: g.playerIndex,
		Started:     g.started,
		PlayerTurn:  g.playerTurn,
		Pace:        g.pace.Seconds(),
	}
}

// Phase returns the current phase
func (g *Game) Phase() GamePhase {
	return g.phase
}

// Closed reports whether Teardown ran
func (g *Game) Closed() bool {
	return g.closed
}

// begin enters round one; shared by Start and Reset
func (g *Game) begin() {
	g.epoch++
	g.releaseHeld()

	g.round = 1
	g.sequence = nil
	g.playerIndex = 0
	g.playerTurn = false
	g.started = true
	g.pace = StartPace

	g.statGames.Add(1)
	g.transition(PhaseAwaitingPlayback)
	g.publish()
	log.Printf("Session %s: game %d started", g.sessionID, g.statGames.Load())

	g.awaitPlayback()
}

// awaitPlayback draws the next signal and reveals the extended sequence
// The draw is committed only when playback succeeds under the same token
func (g *Game) awaitPlayback() {
	if !g.started || g.playerTurn {
		return
	}

	next := g.generator.Next()
	signals := append(g.sequence.Clone(), next)
	token := g.token()

	g.transition(PhasePlaying)
	g.playback.Play(signals, g.pace, token, func(res PlaybackResult) {
		if res == PlaybackAborted {
			return
		}
		if g.closed || token.Stale(g.token(), len(signals)) {
			return
		}

		g.sequence = signals
		g.playerTurn = true
		g.pace = g.pace.Next()
		g.transition(PhasePlayerTurn)
		g.publish()
	})
}

// fail plays the failure tone and returns to Idle after the failure delay
func (g *Game) fail(got core.Signal) {
	log.Printf("Session %s: round %d lost, expected %s got %s", g.sessionID, g.round, g.sequence[g.playerIndex], got)

	g.epoch++
	g.releaseHeld()
	g.playerTurn = false
	g.statFailures.Add(1)
	g.transition(PhaseFailure)
	g.publish()

	stop := g.emitter.Play(constant.FrequencyFailure)
	epoch := g.epoch
	g.clock.AfterFunc(constant.FailureResetDelay, func() {
		stop()
		if g.closed || g.epoch != epoch {
			return
		}

		if err := g.reacquireEmitter(); err != nil {
			g.fatal(err)
			return
		}

		g.epoch++
		g.round = 0
		g.sequence = nil
		g.playerIndex = 0
		g.playerTurn = false
		g.started = false
		g.pace = StartPace
		g.transition(PhaseIdle)
		g.publish()
	})
}

// reacquireEmitter tears the emitter down and builds a fresh one for a clean acoustic state
func (g *Game) reacquireEmitter() error {
	g.releaseHeld()
	g.emitter.Teardown()

	emitter, err := g.newEmitter()
	if err != nil {
		g.emitter = nopEmitter{}
		g.closed = true
		g.epoch++
		return fmt.Errorf("reacquire audio: %w", err)
	}
	g.emitter = emitter
	return nil
}

func (g *Game) fatal(err error) {
	log.Printf("Session %s: fatal: %v", g.sessionID, err)
	if g.onFatal != nil {
		g.onFatal(err)
	}
}

// releaseHeld silences every signal the player is still holding
func (g *Game) releaseHeld() {
	for s, stop := range g.held {
		if stop == nil {
			continue
		}
		stop()
		g.held[s] = nil
		g.presenter.SetHighlight(core.Signal(s), false)
	}
}

func (g *Game) transition(to GamePhase) {
	if g.phase != to && !CanTransition(g.phase, to) {
		log.Printf("Session %s: unexpected transition %s -> %s", g.sessionID, g.phase, to)
	}
	g.phase = to
	g.statPhase.Store(to.String())
}

// publish pushes round and control state to the board
func (g *Game) publish() {
	g.statRound.Store(int64(g.round))
	g.statPace.Set(g.pace.Seconds())
	g.presenter.SetRoundDisplay(FormatRound(g.round))
	g.presenter.SetControlsVisibility(g.started)
}

func (g *Game) token() PlaybackToken {
	return PlaybackToken{Round: g.round, Epoch: g.epoch}
}

func (g *Game) currentEmitter() ToneEmitter {
	return g.emitter
}
