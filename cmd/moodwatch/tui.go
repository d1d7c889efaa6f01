package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/garrettladley/moodwatch/internal/client/stats"
	"github.com/garrettladley/moodwatch/internal/config"
	"github.com/garrettladley/moodwatch/internal/dashboard"
	"github.com/garrettladley/moodwatch/internal/paths"
	"github.com/garrettladley/moodwatch/internal/speech"
	"github.com/garrettladley/moodwatch/internal/tui"
	"github.com/garrettladley/moodwatch/internal/xslog"
)

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Read()
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	logger, closeLog, err := fileLogger()
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	voice, err := newVoice(cfg, logger)
	if err != nil {
		return err
	}
	speaker := speech.NewSpeaker(voice, logger)
	defer func() { _ = speaker.Close() }()

	model := tui.New(tui.Deps{
		Logger:   logger,
		Interval: cfg.PollInterval,
	})
	p := tea.NewProgram(&model, tea.WithContext(cmd.Context()))

	bridge := tui.NewBridge(p.Send)
	dash := dashboard.New(dashboard.Deps{
		Fetcher: stats.New(cfg.StatsURL,
			stats.WithTimeout(cfg.StatsTimeout),
			stats.WithLogger(logger),
		),
		Chart:     bridge,
		Presenter: bridge,
		Speaker:   speaker,
		Logger:    logger,
	}, dashboard.Config{
		Interval: cfg.PollInterval,
		Lang:     cfg.Speech.Lang,
		Rate:     cfg.Speech.Rate,
	})

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	polled := make(chan struct{})
	go func() {
		defer close(polled)
		_ = dash.Run(ctx)
	}()

	logger.InfoContext(ctx, "starting moodwatch", xslog.Version(), xslog.URL(cfg.StatsURL))

	_, runErr := p.Run()
	cancel()
	<-polled

	if runErr != nil {
		if errors.Is(runErr, tea.ErrProgramKilled) && cmd.Context().Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to run TUI: %w", runErr)
	}
	return nil
}

// fileLogger writes logs under the config dir so they stay off the alt
// screen.
func fileLogger() (*slog.Logger, func(), error) {
	if _, err := paths.EnsureDir(); err != nil {
		return nil, nil, err
	}
	path, err := paths.LogFile()
	if err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return xslog.NewLoggerFromEnv(f), func() { _ = f.Close() }, nil
}
