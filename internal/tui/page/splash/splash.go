package splash

import (
	"time"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/moodwatch/internal/emotion"
	"github.com/garrettladley/moodwatch/internal/tui/theme"
)

const Duration = 1500 * time.Millisecond

const Logo = `
┌┬┐┌─┐┌─┐┌┬┐┬ ┬┌─┐┌┬┐┌─┐┬ ┬
││││ ││ │ │││││├─┤ │ │  ├─┤
┴ ┴└─┘└─┘─┴┘└┴┘┴ ┴ ┴ └─┘┴ ┴`

type TickMsg struct{}

func LogoView(t theme.Theme) string {
	var faces string
	for i, e := range emotion.All {
		if i > 0 {
			faces += " "
		}
		faces += e.Emoji()
	}
	return lipgloss.JoinVertical(
		lipgloss.Center,
		t.TextAccent().Bold(true).Render(Logo),
		"",
		faces,
	)
}

func View(t theme.Theme, width, height int) string {
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		LogoView(t),
	)
}
