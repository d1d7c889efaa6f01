package predictionbox

import (
	"image/color"

	"charm.land/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/garrettladley/moodwatch/internal/tui/theme"
)

const placeholder = "Waiting for emotion stats..."

// CIE L* on a 0-1 scale above which dark text reads better.
const lightnessThreshold = 0.65

// Box shows the current verdict on the dominant emotion's color.
type Box struct {
	Text  string
	Color string // hex
	Width int
}

func New(text, hex string, width int) Box {
	return Box{Text: text, Color: hex, Width: width}
}

func (b Box) Render() string {
	style := lipgloss.NewStyle().
		Bold(true).
		Padding(1, 2).
		Align(lipgloss.Center)
	if b.Width > 0 {
		style = style.Width(b.Width)
	}

	bg, ok := parseHex(b.Color)
	if b.Text == "" || !ok {
		return style.
			Foreground(theme.ColorDim).
			Background(theme.ColorBgLight).
			Bold(false).
			Render(placeholder)
	}

	return style.
		Foreground(TextColor(bg)).
		Background(bg).
		Render(b.Text)
}

// TextColor picks dark or light text for legibility on bg.
func TextColor(bg color.Color) color.Color {
	c, ok := colorful.MakeColor(bg)
	if !ok {
		return theme.ColorWhite
	}
	l, _, _ := c.Lab()
	if l > lightnessThreshold {
		return theme.ColorInk
	}
	return theme.ColorWhite
}

func parseHex(hex string) (colorful.Color, bool) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}
