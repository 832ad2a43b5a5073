package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/simon/core"
)

// ActionKind is what a terminal event asks the game to do
type ActionKind int

const (
	ActionNone    ActionKind = iota
	ActionPress              // Pad pressed, release follows
	ActionRelease            // Pad released
	ActionTap                // Pad pressed by key, caller releases after a short hold
	ActionStart
	ActionReset
	ActionQuit
	ActionResize
)

// Action is one mapped input
type Action struct {
	Kind   ActionKind
	Signal core.Signal
}

var keySignals = map[rune]core.Signal{
	'r': core.SignalRed,
	'g': core.SignalGreen,
	'b': core.SignalBlue,
	'y': core.SignalYellow,
	// Digits follow quadrant reading order
	'1': core.SignalGreen,
	'2': core.SignalRed,
	'3': core.SignalYellow,
	'4': core.SignalBlue,
}

// InputMapper turns tcell events into game actions
// Tracks the mouse button so each release is attributed to the pad that was pressed
type InputMapper struct {
	board    *Board
	pressed  core.Signal
	pressing bool
	buttons  tcell.ButtonMask
}

// NewInputMapper creates a mapper hit-testing against board
func NewInputMapper(board *Board) *InputMapper {
	return &InputMapper{board: board}
}

// Map converts one event
func (m *InputMapper) Map(ev tcell.Event) Action {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return m.mapKey(ev)
	case *tcell.EventMouse:
		return m.mapMouse(ev)
	case *tcell.EventResize:
		return Action{Kind: ActionResize}
	}
	return Action{}
}

func (m *InputMapper) mapKey(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Action{Kind: ActionQuit}
	case tcell.KeyEnter:
		return Action{Kind: ActionStart}
	case tcell.KeyRune:
	default:
		return Action{}
	}

	r := ev.Rune()
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	switch r {
	case 'q':
		return Action{Kind: ActionQuit}
	case 's', ' ':
		return Action{Kind: ActionStart}
	case 'x':
		return Action{Kind: ActionReset}
	}
	if s, ok := keySignals[r]; ok {
		return Action{Kind: ActionTap, Signal: s}
	}
	return Action{}
}

func (m *InputMapper) mapMouse(ev *tcell.EventMouse) Action {
	buttons := ev.Buttons() & tcell.ButtonPrimary
	prev := m.buttons
	m.buttons = buttons

	switch {
	case buttons != 0 && prev == 0:
		x, y := ev.Position()
		hit := m.board.HitTest(x, y)
		switch hit.Kind {
		case HitPad:
			m.pressed = hit.Signal
			m.pressing = true
			return Action{Kind: ActionPress, Signal: hit.Signal}
		case HitControl:
			if m.board.Started() {
				return Action{Kind: ActionReset}
			}
			return Action{Kind: ActionStart}
		}
	case buttons == 0 && prev != 0:
		if m.pressing {
			m.pressing = false
			return Action{Kind: ActionRelease, Signal: m.pressed}
		}
	}
	return Action{}
}
