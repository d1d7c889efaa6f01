package tui

import (
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/garrettladley/moodwatch/internal/tui/components/footer"
	"github.com/garrettladley/moodwatch/internal/tui/page/splash"
	"github.com/garrettladley/moodwatch/internal/tui/theme"
)

var _ tea.Model = (*Model)(nil)

type page uint

const (
	splashPage page = iota
	dashboardPage
)

const keyHints = "←/→ inspect · esc clear · q quit"

type Model struct {
	ready          bool
	page           page
	viewportWidth  int
	viewportHeight int
	theme          theme.Theme
	state          DashboardState
	deps           Deps
}

func New(deps Deps) Model {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return Model{
		page:  splashPage,
		theme: theme.New(),
		deps:  deps,
		state: DashboardState{
			Selected: -1,
			Now:      deps.Now(),
		},
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		tea.Tick(splash.Duration, func(time.Time) tea.Msg {
			return splash.TickMsg{}
		}),
		clockCmd(),
	)
}

func clockCmd() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg {
		return ClockMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewportWidth = msg.Width
		m.viewportHeight = msg.Height
		m.ready = true

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.deps.Logger.Debug("quit requested")
			return m, tea.Quit
		case "left", "h":
			m.selectBar(-1)
		case "right", "l":
			m.selectBar(1)
		case "esc":
			m.state.Selected = -1
		}

	case tea.MouseMsg:
		mouse := msg.Mouse()
		m.state.Selected = m.barAt(mouse.X, mouse.Y)

	// splash timer expired - transition to dashboard
	case splash.TickMsg:
		m.page = dashboardPage

	case SeriesMsg:
		m.state.Series = msg.Series
		m.state.HasData = true
		m.state.LastUpdate = msg.At

	case TextMsg:
		m.state.Text = msg.Text

	case ColorMsg:
		m.state.Color = msg.Hex

	case ClockMsg:
		m.state.Now = time.Time(msg)
		return m, clockCmd()
	}

	return m, nil
}

func (m *Model) View() tea.View {
	view := tea.NewView("")
	view.AltScreen = true
	view.MouseMode = tea.MouseModeAllMotion

	// splash uses pure black BG, everything else uses default dark
	if m.page == splashPage {
		view.BackgroundColor = theme.ColorBlack
	} else {
		view.BackgroundColor = m.theme.Background()
	}

	if !m.ready {
		return view
	}

	var content string
	switch m.page {
	case splashPage:
		content = splash.View(m.theme, m.viewportWidth, m.viewportHeight)
	case dashboardPage:
		body := lipgloss.Place(
			m.viewportWidth,
			m.bodyHeight(),
			lipgloss.Center,
			lipgloss.Center,
			m.DashboardView(),
		)
		content = lipgloss.JoinVertical(lipgloss.Left, body, m.footerView())
	}

	view.SetContent(content)
	return view
}

func (m *Model) footerView() string {
	right := m.StatusView() + "   " + m.theme.Muted().Render(keyHints)
	return footer.New(right, m.viewportWidth).Render()
}

func (m *Model) bodyHeight() int {
	return max(m.viewportHeight-lipgloss.Height(m.footerView()), 0)
}
