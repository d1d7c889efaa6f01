package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/garrettladley/moodwatch/internal/emotion"
	"github.com/garrettladley/moodwatch/internal/speech"
	"github.com/garrettladley/moodwatch/internal/xslog"
)

const DefaultInterval = 3 * time.Second

// Fetcher returns the latest percentages from the backend.
type Fetcher interface {
	Fetch(ctx context.Context) (emotion.Snapshot, error)
}

// Chart redraws the bars for a new series.
type Chart interface {
	SetSeries(s emotion.Series)
}

// Presenter shows the prediction text and box color.
type Presenter interface {
	SetText(text string)
	SetColor(hex string)
}

// Speaker queues an utterance, cancelling any in progress, and returns
// without waiting for playback.
type Speaker interface {
	Speak(ctx context.Context, u speech.Utterance) error
}

type Deps struct {
	Fetcher   Fetcher
	Chart     Chart
	Presenter Presenter
	Speaker   Speaker
	Logger    *slog.Logger
}

type Config struct {
	Interval time.Duration
	Lang     string
	Rate     float64
}

// Dashboard polls the backend, renders every applied snapshot and announces
// the dominant emotion when it changes.
type Dashboard struct {
	deps Deps
	cfg  Config

	issued atomic.Uint64

	mu          sync.Mutex
	applied     uint64
	series      emotion.Series
	lastSpoken  emotion.Emotion
	hasSnapshot bool

	inflight sync.WaitGroup
}

func New(deps Deps, cfg Config) *Dashboard {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Lang == "" {
		cfg.Lang = speech.DefaultLang
	}
	if cfg.Rate <= 0 {
		cfg.Rate = speech.DefaultRate
	}
	return &Dashboard{deps: deps, cfg: cfg}
}

// Run polls once immediately and then every interval until ctx is done.
// Each tick fetches in its own goroutine, so a slow request never delays
// the next tick. Run waits for in-flight fetches before returning.
func (d *Dashboard) Run(ctx context.Context) error {
	d.deps.Logger.InfoContext(ctx, "dashboard polling started", xslog.Interval(d.cfg.Interval))

	ticker := time.NewTicker(d.cfg.Interval)
	defer ticker.Stop()

	d.spawnPoll(ctx)
	for {
		select {
		case <-ctx.Done():
			d.inflight.Wait()
			d.deps.Logger.InfoContext(ctx, "dashboard polling stopped")
			return nil
		case <-ticker.C:
			d.spawnPoll(ctx)
		}
	}
}

func (d *Dashboard) spawnPoll(ctx context.Context) {
	d.inflight.Add(1)
	go func() {
		defer d.inflight.Done()
		_ = d.Poll(ctx)
	}()
}

// Poll runs one fetch-render-announce cycle. A failed fetch is logged and
// returned; nothing is rendered or announced for it.
func (d *Dashboard) Poll(ctx context.Context) error {
	seq := d.issued.Add(1)

	snapshot, err := d.deps.Fetcher.Fetch(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return err
		}
		d.deps.Logger.ErrorContext(ctx, "failed to fetch emotion stats", xslog.Seq(seq), xslog.Error(err))
		return err
	}

	d.Apply(ctx, seq, snapshot)
	return nil
}

// Apply renders and announces snapshot unless a newer request has already
// been applied. It reports whether the snapshot was used.
func (d *Dashboard) Apply(ctx context.Context, seq uint64, snapshot emotion.Snapshot) bool {
	// held across the Chart, Presenter and Speaker calls so they observe
	// snapshots in sequence order; a slow sink delays other polls
	d.mu.Lock()
	defer d.mu.Unlock()

	if seq <= d.applied {
		d.deps.Logger.DebugContext(ctx, "discarding stale snapshot", xslog.Seq(seq), xslog.AppliedSeq(d.applied))
		return false
	}
	d.applied = seq

	series := emotion.SeriesFrom(snapshot)
	d.series = series
	d.hasSnapshot = true
	d.deps.Chart.SetSeries(series)

	d.announceLocked(ctx, series)
	return true
}

func (d *Dashboard) announceLocked(ctx context.Context, series emotion.Series) {
	dominant := series.Dominant()

	d.deps.Presenter.SetText(emotion.Caption(dominant))
	d.deps.Presenter.SetColor(dominant.Color())

	if dominant == d.lastSpoken {
		return
	}

	err := d.deps.Speaker.Speak(ctx, speech.Utterance{
		Text: emotion.Phrase(dominant),
		Lang: d.cfg.Lang,
		Rate: d.cfg.Rate,
	})
	if err != nil {
		d.deps.Logger.ErrorContext(ctx, "failed to announce emotion", xslog.Emotion(dominant), xslog.Error(err))
		return
	}

	d.deps.Logger.InfoContext(ctx, "announced emotion",
		xslog.Emotion(dominant),
		xslog.PreviousEmotion(d.lastSpoken),
		xslog.SeriesGroup(series),
	)
	d.lastSpoken = dominant
}

// State is a copy of what the dashboard last applied.
type State struct {
	Series        emotion.Series
	LastAnnounced emotion.Emotion
	AppliedSeq    uint64
	HasSnapshot   bool
}

func (d *Dashboard) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return State{
		Series:        d.series,
		LastAnnounced: d.lastSpoken,
		AppliedSeq:    d.applied,
		HasSnapshot:   d.hasSnapshot,
	}
}
