package constant

import "time"

// Board layout
const (
	// BoardHeaderRows is the title/round/control band at the top
	BoardHeaderRows = 2

	// BoardStatusRows is the help/metrics band at the bottom
	BoardStatusRows = 1

	// BoardPadGap is the number of blank cells between quadrants
	BoardPadGap = 1

	// MinBoardWidth and MinBoardHeight below which a resize hint is drawn instead
	MinBoardWidth  = 24
	MinBoardHeight = 10
)

// FrameInterval caps redraw rate of the board
const FrameInterval = 16 * time.Millisecond
