package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/garrettladley/moodwatch/internal/client/stats"
	"github.com/garrettladley/moodwatch/internal/config"
	"github.com/garrettladley/moodwatch/internal/dashboard"
	"github.com/garrettladley/moodwatch/internal/emotion"
	"github.com/garrettladley/moodwatch/internal/speech"
	"github.com/garrettladley/moodwatch/internal/tui/components/barchart"
	"github.com/garrettladley/moodwatch/internal/tui/components/predictionbox"
	"github.com/garrettladley/moodwatch/internal/xslog"
)

func onceCmd() *cobra.Command {
	var mute bool

	cmd := &cobra.Command{
		Use:   "once",
		Short: "Poll once and print the chart",
		Long:  "Fetches a single snapshot, prints the chart and verdict to stdout and speaks the verdict.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.Read()
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}

			logger := xslog.NewLoggerFromEnv(os.Stderr)

			var voice speech.Voice = speech.Silent{Logger: logger}
			if !mute {
				if voice, err = newVoice(cfg, logger); err != nil {
					return err
				}
			}
			speaker := speech.NewSpeaker(voice, logger)
			defer func() { _ = speaker.Close() }()

			view := &snapshotView{}
			dash := dashboard.New(dashboard.Deps{
				Fetcher: stats.New(cfg.StatsURL,
					stats.WithTimeout(cfg.StatsTimeout),
					stats.WithLogger(logger),
				),
				Chart:     view,
				Presenter: view,
				Speaker:   speaker,
				Logger:    logger,
			}, dashboard.Config{
				Interval: cfg.PollInterval,
				Lang:     cfg.Speech.Lang,
				Rate:     cfg.Speech.Rate,
			})

			if err := dash.Poll(ctx); err != nil {
				return fmt.Errorf("failed to fetch emotion stats: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), view.Render())

			if err := speaker.Wait(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&mute, "mute", false, "print without speaking")

	return cmd
}

// snapshotView collects one applied snapshot for printing.
type snapshotView struct {
	series emotion.Series
	text   string
	color  string
}

func (v *snapshotView) SetSeries(s emotion.Series) { v.series = s }
func (v *snapshotView) SetText(text string)       { v.text = text }
func (v *snapshotView) SetColor(hex string)       { v.color = hex }

func (v *snapshotView) Render() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		predictionbox.New(v.text, v.color, barchart.Width()).Render(),
		"",
		barchart.New(v.series, true).Render(),
	)
}
