package tui

import (
	"time"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/moodwatch/internal/emotion"
	"github.com/garrettladley/moodwatch/internal/tui/components/barchart"
	"github.com/garrettladley/moodwatch/internal/tui/components/predictionbox"
	"github.com/garrettladley/moodwatch/internal/tui/components/status"
)

type DashboardState struct {
	Series   emotion.Series
	HasData  bool
	Selected int // -1 when no bar is inspected

	Text  string
	Color string

	LastUpdate time.Time
	Now        time.Time
}

func (m *Model) chart() barchart.Chart {
	return barchart.New(
		m.state.Series,
		m.state.HasData,
		barchart.WithSelected(m.state.Selected),
		barchart.WithBackground(m.theme.Background()),
	)
}

func (m *Model) predictionBoxView() string {
	return predictionbox.New(m.state.Text, m.state.Color, barchart.Width()).Render()
}

func (m *Model) DashboardView() string {
	return lipgloss.JoinVertical(
		lipgloss.Center,
		m.predictionBoxView(),
		"",
		m.chart().Render(),
	)
}

func (m *Model) StatusView() string {
	return status.Indicator{
		LastUpdate: m.state.LastUpdate,
		Interval:   m.deps.Interval,
		Now:        m.state.Now,
	}.Render()
}

// barAt maps a terminal cell to the bar under it, or -1. It mirrors the
// centering done in View.
func (m *Model) barAt(x, y int) int {
	if m.page != dashboardPage {
		return -1
	}

	content := m.DashboardView()
	var (
		width  = lipgloss.Width(content)
		height = lipgloss.Height(content)
		left   = max(m.viewportWidth-width, 0) / 2
		top    = max(m.bodyHeight()-height, 0) / 2
	)

	chartLeft := left + (width-barchart.Width())/2
	chartTop := top + lipgloss.Height(m.predictionBoxView()) + 1

	if y < chartTop || y >= chartTop+barchart.Height() {
		return -1
	}
	return barchart.BarAt(x - chartLeft)
}

func (m *Model) selectBar(step int) {
	switch {
	case m.state.Selected < 0 && step > 0:
		m.state.Selected = 0
	case m.state.Selected < 0:
		m.state.Selected = emotion.Count - 1
	default:
		m.state.Selected = (m.state.Selected + step + emotion.Count) % emotion.Count
	}
}
