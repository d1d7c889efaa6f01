package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/garrettladley/moodwatch/internal/emotion"
)

// Bridge forwards dashboard updates into a running program so the model is
// only ever touched from the program's event loop.
type Bridge struct {
	send func(tea.Msg)
	now  func() time.Time
}

func NewBridge(send func(tea.Msg)) *Bridge {
	return &Bridge{send: send, now: time.Now}
}

func (b *Bridge) SetSeries(s emotion.Series) {
	b.send(SeriesMsg{Series: s, At: b.now()})
}

func (b *Bridge) SetText(text string) {
	b.send(TextMsg{Text: text})
}

func (b *Bridge) SetColor(hex string) {
	b.send(ColorMsg{Hex: hex})
}
