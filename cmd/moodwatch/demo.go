//go:build !release

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/garrettladley/moodwatch/internal/demo"
	"github.com/garrettladley/moodwatch/internal/detectlog"
	"github.com/garrettladley/moodwatch/internal/xslog"
)

const defaultDemoAddr = "127.0.0.1:5000"

func demoCmd() *cobra.Command {
	var (
		addr     string
		dbPath   string
		cadence  time.Duration
		seed     uint64
		simulate bool
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Serve a stand-in emotion stats backend",
		Long: "Serves /emotion_stats from a detection log. Without --db the log " +
			"lives in memory and is fed simulated detections; with --db an " +
			"existing camera log is served read-only, or fed simulated " +
			"detections as well when --simulate is set.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := xslog.NewLoggerFromEnv(os.Stderr)

			log, feed, err := openDemoLog(ctx, dbPath, simulate)
			if err != nil {
				return err
			}
			defer func() { _ = log.Close() }()

			if seed == 0 {
				seed = uint64(time.Now().UnixNano())
			}

			if err := demo.Run(ctx, demo.Config{
				Addr:     addr,
				Cadence:  cadence,
				Seed:     seed,
				Simulate: feed,
			}, log, logger); err != nil {
				return fmt.Errorf("demo backend failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultDemoAddr, "listen address")
	cmd.Flags().StringVar(&dbPath, "db", "", "serve an existing detection log (read-only unless --simulate)")
	cmd.Flags().BoolVar(&simulate, "simulate", false, "with --db, write simulated detections into the log")
	cmd.Flags().DurationVar(&cadence, "cadence", demo.DefaultCadence, "interval between simulated detections")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "simulation seed (0 picks one from the clock)")

	return cmd
}

// openDemoLog picks the log the demo serves and whether it is fed simulated
// detections. Without a path the log is in memory and always simulated.
func openDemoLog(ctx context.Context, path string, simulate bool) (*detectlog.Log, bool, error) {
	switch {
	case path == "":
		log, err := detectlog.OpenMemory(ctx)
		return log, true, err
	case simulate:
		log, err := detectlog.Open(ctx, path)
		return log, true, err
	default:
		log, err := detectlog.OpenReadOnly(ctx, path)
		return log, false, err
	}
}
