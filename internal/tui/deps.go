package tui

import (
	"log/slog"
	"time"
)

type Deps struct {
	Logger *slog.Logger
	// Interval is the poll interval, used to tell when the feed went stale.
	Interval time.Duration
	Now      func() time.Time
}
