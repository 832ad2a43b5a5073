package main

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/simon/constant"
	"github.com/lixenwraith/simon/engine"
	"github.com/lixenwraith/simon/render"
	"github.com/lixenwraith/simon/status"
)

const helpText = "r g b y / 1-4 play   s start   x reset   q quit"

var (
	statusKeys   = []string{"game.phase", "game.best_round", "game.games", "game.pace", "audio.voices"}
	statusLabels = map[string]string{
		"game.phase":      "phase",
		"game.best_round": "best",
		"game.games":      "games",
		"game.pace":       "pace",
		"audio.voices":    "voices",
	}
)

// session binds one board to one game for the lifetime of the terminal
// The game is only touched from loop; the UI goroutine posts to it
type session struct {
	id     string
	screen tcell.Screen
	board  *render.Board
	mapper *render.InputMapper
	loop   *engine.Loop
	game   *engine.Game
	reg    *status.Registry
	voices func() int
	fatal  chan error
}

type sessionConfig struct {
	ID         string
	Screen     tcell.Screen
	NewEmitter engine.EmitterFactory
	Voices     func() int
	Seed       uint64
	Registry   *status.Registry
}

func newSession(sc sessionConfig) (*session, error) {
	reg := sc.Registry
	if reg == nil {
		reg = status.NewRegistry()
	}
	voices := sc.Voices
	if voices == nil {
		voices = func() int { return 0 }
	}

	board := render.NewBoard(sc.Screen)
	s := &session{
		id:     sc.ID,
		screen: sc.Screen,
		board:  board,
		mapper: render.NewInputMapper(board),
		loop:   engine.NewLoop(constant.LoopQueueSize),
		reg:    reg,
		voices: voices,
		fatal:  make(chan error, 1),
	}

	game, err := engine.NewGame(engine.GameConfig{
		Clock:      s.loop,
		Presenter:  board,
		NewEmitter: sc.NewEmitter,
		Generator:  engine.NewSequenceGenerator(sc.Seed),
		Registry:   reg,
		SessionID:  sc.ID,
		OnFatal:    s.reportFatal,
	})
	if err != nil {
		return nil, err
	}
	s.game = game

	s.loop.Start()
	return s, nil
}

func (s *session) reportFatal(err error) {
	select {
	case s.fatal <- err:
	default:
	}
}

// run pumps terminal events and frames until quit, a closed event source or a fatal error
func (s *session) run(events <-chan tcell.Event) error {
	ticker := time.NewTicker(constant.FrameInterval)
	defer ticker.Stop()

	s.frame()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !s.dispatch(s.mapper.Map(ev)) {
				return nil
			}
		case err := <-s.fatal:
			return err
		case <-ticker.C:
			s.frame()
		}
	}
}

// dispatch applies one action; false means quit
func (s *session) dispatch(a render.Action) bool {
	sig := a.Signal
	switch a.Kind {
	case render.ActionQuit:
		return false
	case render.ActionResize:
		s.board.Resize()
		s.screen.Sync()
	case render.ActionStart:
		s.loop.Post(s.game.Start)
	case render.ActionReset:
		s.loop.Post(func() {
			if err := s.game.Reset(); err != nil {
				s.reportFatal(err)
			}
		})
	case render.ActionPress:
		s.loop.Post(func() { s.game.SignalPressed(sig) })
	case render.ActionRelease:
		s.loop.Post(func() { s.game.SignalReleased(sig) })
	case render.ActionTap:
		s.loop.Post(func() { s.game.SignalPressed(sig) })
		s.loop.AfterFunc(constant.KeyTapHold, func() { s.game.SignalReleased(sig) })
	}
	return true
}

func (s *session) frame() {
	s.reg.Ints.Get("audio.voices").Store(int64(s.voices()))

	line := s.reg.Line(statusKeys, statusLabels)
	if line != "" {
		line += "   "
	}
	s.board.SetStatus(line + helpText)
	s.board.DrawIfDirty()
}

// close tears the game down on its own goroutine, then stops the loop
func (s *session) close() {
	s.loop.Do(s.game.Teardown)
	s.loop.Stop()
}
