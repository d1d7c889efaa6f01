package theme

import "charm.land/lipgloss/v2"

// BarHex is the bar base color; bars are drawn at decreasing opacity left to right.
const BarHex = "#6b9080"

var (
	ColorBlack = lipgloss.Color("#000000")
	ColorWhite = lipgloss.Color("#FFFFFF")
	ColorDim   = lipgloss.Color("#666666")
	ColorInk   = lipgloss.Color("#1b1f1d") // text on light prediction boxes
)

var (
	ColorBar     = lipgloss.Color(BarHex)
	ColorGrid    = lipgloss.Color("#3a4542")
	ColorLive    = lipgloss.Color("#84c69b")
	ColorStale   = lipgloss.Color("#f4a261")
	ColorWaiting = lipgloss.Color("#5c6b66")
)

var (
	ColorBgDark  = lipgloss.Color("#101518") // Darker end of gradient
	ColorBgLight = lipgloss.Color("#283339") // Lighter end of gradient
)
