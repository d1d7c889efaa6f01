// Package demo serves a stand-in for the camera backend's /emotion_stats
// endpoint so the dashboard can run without a camera.
package demo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/garrettladley/moodwatch/internal/detectlog"
	"github.com/garrettladley/moodwatch/internal/xslog"
)

const (
	// DefaultCadence matches how often the camera pipeline logs a face.
	DefaultCadence  = 2 * time.Second
	shutdownTimeout = 5 * time.Second
)

type Recorder interface {
	Record(ctx context.Context, d detectlog.Detection) error
}

// Feed records a simulated detection immediately and then every cadence
// until ctx is done.
func Feed(ctx context.Context, rec Recorder, sim *Simulator, cadence time.Duration, logger *slog.Logger) error {
	if cadence <= 0 {
		cadence = DefaultCadence
	}

	ticker := time.NewTicker(cadence)
	defer ticker.Stop()

	for {
		d := sim.Next(time.Now())
		if err := rec.Record(ctx, d); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("failed to record simulated detection: %w", err)
		}
		logger.DebugContext(ctx, "recorded simulated detection", xslog.Emotion(d.Emotion))

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Serve runs handler on ln until ctx is done, then shuts down gracefully.
func Serve(ctx context.Context, ln net.Listener, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.InfoContext(ctx, "demo backend listening", xslog.Addr(ln.Addr().String()), xslog.Version())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("demo backend: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("demo backend shutdown failed: %w", err)
		}
		logger.InfoContext(ctx, "demo backend stopped")
		return nil
	})

	return g.Wait()
}

type Config struct {
	Addr    string
	Cadence time.Duration
	Seed    uint64
	// Simulate feeds the log with generated detections. Off when serving a
	// log the camera pipeline is already writing.
	Simulate bool
}

// Run serves stats computed from log, feeding it with simulated detections
// when cfg.Simulate is set.
func Run(ctx context.Context, cfg Config, log *detectlog.Log, logger *slog.Logger) error {
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Addr, err)
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Simulate {
		g.Go(func() error {
			return Feed(gctx, log, NewSimulator(cfg.Seed), cfg.Cadence, logger)
		})
	}

	g.Go(func() error {
		return Serve(gctx, ln, NewHandler(log).Routes(logger), logger)
	})

	return g.Wait()
}
