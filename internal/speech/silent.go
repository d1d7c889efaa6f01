package speech

import (
	"context"
	"log/slog"

	"github.com/garrettladley/moodwatch/internal/xslog"
)

// Silent logs utterances instead of playing them.
type Silent struct {
	Logger *slog.Logger
}

var _ Voice = Silent{}

func (s Silent) Say(ctx context.Context, u Utterance) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "muted utterance", xslog.Text(u.Text))
	return nil
}
