package tui

import (
	"time"

	"github.com/garrettladley/moodwatch/internal/emotion"
)

const clockInterval = time.Second

type SeriesMsg struct {
	Series emotion.Series
	At     time.Time
}

type TextMsg struct {
	Text string
}

type ColorMsg struct {
	Hex string
}

type ClockMsg time.Time
