//go:build release

package footer

import (
	"charm.land/lipgloss/v2"

	"github.com/garrettladley/moodwatch/internal/tui/theme"
	"github.com/garrettladley/moodwatch/internal/version"
)

var versionStyle = lipgloss.NewStyle().Foreground(theme.ColorDim)

func (f Footer) leftContent() string {
	return versionStyle.Render(version.Get())
}
