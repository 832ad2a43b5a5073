package render

import (
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/simon/constant"
	"github.com/lixenwraith/simon/core"
)

const (
	boardTitle       = "SIMON"
	controlStart     = "[ Start ]"
	controlReset     = "[ Reset ]"
	tooSmallHint     = "enlarge terminal"
	roundLabelPrefix = "ROUND "
)

// padOrder is the quadrant placement, reading order: top-left, top-right, bottom-left, bottom-right
var padOrder = [core.SignalCount]core.Signal{core.SignalGreen, core.SignalRed, core.SignalYellow, core.SignalBlue}

// HitKind classifies a screen position
type HitKind int

const (
	HitNone HitKind = iota
	HitPad
	HitControl
)

// Hit is the result of HitTest
type Hit struct {
	Kind   HitKind
	Signal core.Signal // Valid when Kind == HitPad
}

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// layout positions in screen cells; zero value means the screen is too small
type layout struct {
	valid   bool
	width   int
	height  int
	pads    [core.SignalCount]rect
	control rect
}

func computeLayout(width, height int) layout {
	l := layout{width: width, height: height}
	if width < constant.MinBoardWidth || height < constant.MinBoardHeight {
		return l
	}
	l.valid = true

	top := constant.BoardHeaderRows
	areaH := height - constant.BoardStatusRows - top
	gap := constant.BoardPadGap

	leftW := (width - gap) / 2
	rightW := width - gap - leftW
	topH := (areaH - gap) / 2
	bottomH := areaH - gap - topH

	cells := [4]rect{
		{0, top, leftW, topH},
		{leftW + gap, top, rightW, topH},
		{0, top + topH + gap, leftW, bottomH},
		{leftW + gap, top + topH + gap, rightW, bottomH},
	}
	for i, s := range padOrder {
		l.pads[s] = cells[i]
	}

	labelW := len(controlStart)
	l.control = rect{(width - labelW) / 2, 1, labelW, 1}
	return l
}

// Board draws the four pads, the round counter and the Start/Reset control
// Presenter methods may be called from the game loop while Draw runs on the UI goroutine
type Board struct {
	screen tcell.Screen

	mu      sync.Mutex
	layout  layout
	lit     [core.SignalCount]bool
	round   string
	started bool
	status  string

	dirty atomic.Bool
}

// NewBoard creates a board sized to the screen
func NewBoard(screen tcell.Screen) *Board {
	b := &Board{
		screen: screen,
		round:  "00",
	}
	b.Resize()
	return b
}

// SetHighlight implements engine.Presenter
func (b *Board) SetHighlight(s core.Signal, active bool) {
	if !s.Valid() {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.lit[s] != active {
		b.lit[s] = active
		b.dirty.Store(true)
	}
}

// SetRoundDisplay implements engine.Presenter
func (b *Board) SetRoundDisplay(round string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.round != round {
		b.round = round
		b.dirty.Store(true)
	}
}

// SetControlsVisibility implements engine.Presenter
// started shows Reset, otherwise Start
func (b *Board) SetControlsVisibility(started bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.started != started {
		b.started = started
		b.dirty.Store(true)
	}
}

// SetStatus replaces the bottom line text
func (b *Board) SetStatus(line string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.status != line {
		b.status = line
		b.dirty.Store(true)
	}
}

// Started reports which control is shown
func (b *Board) Started() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.started
}

// Lit reports whether a pad is highlighted
func (b *Board) Lit(s core.Signal) bool {
	if !s.Valid() {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lit[s]
}

// Round returns the displayed round text
func (b *Board) Round() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.round
}

// Resize recomputes the layout from the current screen size
func (b *Board) Resize() {
	w, h := b.screen.Size()
	b.mu.Lock()
	b.layout = computeLayout(w, h)
	b.mu.Unlock()
	b.dirty.Store(true)
}

// HitTest maps a screen cell to a pad or the control
func (b *Board) HitTest(x, y int) Hit {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.layout.valid {
		return Hit{}
	}
	if b.layout.control.contains(x, y) {
		return Hit{Kind: HitControl}
	}
	for _, s := range core.Signals {
		if b.layout.pads[s].contains(x, y) {
			return Hit{Kind: HitPad, Signal: s}
		}
	}
	return Hit{}
}

// DrawIfDirty redraws only when state changed since the last frame
func (b *Board) DrawIfDirty() bool {
	if !b.dirty.Swap(false) {
		return false
	}
	b.Draw()
	return true
}

// Draw renders the full board and shows it
func (b *Board) Draw() {
	b.mu.Lock()
	defer b.mu.Unlock()

	base := tcell.StyleDefault.Background(RgbBackground)
	b.screen.Fill(' ', base)

	l := b.layout
	if !l.valid {
		b.drawText((l.width-len(tooSmallHint))/2, l.height/2, tooSmallHint, base.Foreground(RgbStatusBar), l.width)
		b.screen.Show()
		return
	}

	// Header
	b.drawText(1, 0, boardTitle, base.Foreground(RgbTitle).Bold(true), l.width)
	roundText := roundLabelPrefix + b.round
	b.drawText(l.width-len(roundText)-1, 0, roundText, base.Foreground(RgbRound).Bold(true), l.width)

	label := controlStart
	if b.started {
		label = controlReset
	}
	b.drawText(l.control.x, l.control.y, label, tcell.StyleDefault.Background(RgbControlBg).Foreground(RgbControlText), l.width)

	// Pads
	for _, s := range core.Signals {
		level := LevelDark
		switch {
		case b.lit[s]:
			level = LevelBright
		case b.started:
			level = LevelNormal
		}
		b.drawPad(l.pads[s], s, GetStyleForPad(s, level))
	}

	// Status
	b.drawText(0, l.height-1, b.status, base.Foreground(RgbStatusBar), l.width)

	b.screen.Show()
}

func (b *Board) drawPad(r rect, s core.Signal, style tcell.Style) {
	for y := r.y; y < r.y+r.h; y++ {
		for x := r.x; x < r.x+r.w; x++ {
			b.screen.SetContent(x, y, ' ', nil, style)
		}
	}
	name := s.Name()
	if len(name) <= r.w {
		b.drawText(r.x+(r.w-len(name))/2, r.y+r.h/2, name, style, r.x+r.w)
	}
}

// drawText writes ASCII text clipped at maxX
func (b *Board) drawText(x, y int, text string, style tcell.Style, maxX int) {
	if x < 0 {
		x = 0
	}
	for i, r := range text {
		if x+i >= maxX {
			return
		}
		b.screen.SetContent(x+i, y, r, nil, style)
	}
}
