package status

import (
	"time"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/moodwatch/internal/tui/theme"
)

const statusDot = "●"

// staleAfter is how many missed polls turn a live indicator stale.
const staleAfter = 3

type Indicator struct {
	LastUpdate time.Time
	Interval   time.Duration
	Now        time.Time
}

func (s Indicator) Stale() bool {
	if s.LastUpdate.IsZero() || s.Interval <= 0 {
		return false
	}
	return s.Now.Sub(s.LastUpdate) > staleAfter*s.Interval
}

func (s Indicator) Render() string {
	if s.LastUpdate.IsZero() {
		return lipgloss.NewStyle().
			Foreground(theme.ColorWaiting).
			Render(statusDot + " waiting...")
	}

	if s.Stale() {
		return lipgloss.NewStyle().
			Foreground(theme.ColorStale).
			Render(statusDot + " stale " + s.Now.Sub(s.LastUpdate).Truncate(time.Second).String())
	}

	return lipgloss.NewStyle().
		Foreground(theme.ColorLive).
		Render(statusDot + " live")
}
