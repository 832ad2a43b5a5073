package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/simon/core"
)

// Level is the brightness of a pad
type Level int

const (
	LevelDark   Level = iota // Game not started
	LevelNormal              // Waiting
	LevelBright              // Highlighted
)

// RGB color definitions for pads - dark/normal/bright levels
var (
	RgbPadGreenDark   = tcell.NewRGBColor(0, 90, 0)    // Dark Green
	RgbPadGreenNormal = tcell.NewRGBColor(0, 160, 0)   // Normal Green
	RgbPadGreenBright = tcell.NewRGBColor(80, 255, 80) // Bright Green

	RgbPadRedDark   = tcell.NewRGBColor(110, 20, 20)   // Dark Red
	RgbPadRedNormal = tcell.NewRGBColor(200, 40, 40)   // Normal Red
	RgbPadRedBright = tcell.NewRGBColor(255, 110, 110) // Bright Red

	RgbPadBlueDark   = tcell.NewRGBColor(20, 40, 110)   // Dark Blue
	RgbPadBlueNormal = tcell.NewRGBColor(50, 90, 210)   // Normal Blue
	RgbPadBlueBright = tcell.NewRGBColor(140, 190, 255) // Bright Blue

	RgbPadYellowDark   = tcell.NewRGBColor(110, 100, 0)   // Dark Yellow
	RgbPadYellowNormal = tcell.NewRGBColor(210, 190, 0)   // Normal Yellow
	RgbPadYellowBright = tcell.NewRGBColor(255, 255, 120) // Bright Yellow

	RgbBackground  = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbTitle       = tcell.NewRGBColor(255, 255, 255) // White
	RgbRound       = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbControlBg   = tcell.NewRGBColor(135, 206, 250) // Light sky blue
	RgbControlText = tcell.NewRGBColor(0, 0, 0)       // Dark text on control
	RgbStatusBar   = tcell.NewRGBColor(180, 180, 180) // Brighter gray
	RgbPadLabel    = tcell.NewRGBColor(0, 0, 0)       // Dark label on pads
)

var padColors = [core.SignalCount][3]tcell.Color{
	core.SignalRed:    {RgbPadRedDark, RgbPadRedNormal, RgbPadRedBright},
	core.SignalGreen:  {RgbPadGreenDark, RgbPadGreenNormal, RgbPadGreenBright},
	core.SignalBlue:   {RgbPadBlueDark, RgbPadBlueNormal, RgbPadBlueBright},
	core.SignalYellow: {RgbPadYellowDark, RgbPadYellowNormal, RgbPadYellowBright},
}

// PadColor returns the fill color of a pad at the given level
func PadColor(s core.Signal, level Level) tcell.Color {
	if !s.Valid() || level < LevelDark || level > LevelBright {
		return RgbBackground
	}
	return padColors[s][level]
}

// GetStyleForPad returns the fill style for a pad
func GetStyleForPad(s core.Signal, level Level) tcell.Style {
	return tcell.StyleDefault.Background(PadColor(s, level)).Foreground(RgbPadLabel)
}
