package speech

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/garrettladley/moodwatch/internal/xslog"
)

var (
	ErrEmptyText = errors.New("speech: empty utterance")
	ErrClosed    = errors.New("speech: speaker closed")
)

const (
	DefaultLang = "en-US"
	DefaultRate = 1.0
)

type Utterance struct {
	Text string
	Lang string
	Rate float64
}

// Voice makes one utterance audible. Say blocks until playback finishes or
// ctx is cancelled, in which case playback must stop promptly.
type Voice interface {
	Say(ctx context.Context, u Utterance) error
}

// Speaker keeps at most one utterance audible. Starting a new one cancels
// the current one and waits for it to stop before the new one plays.
type Speaker struct {
	voice  Voice
	logger *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	closed bool
}

func NewSpeaker(voice Voice, logger *slog.Logger) *Speaker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Speaker{voice: voice, logger: logger}
}

// Speak queues u and returns without waiting for playback. The utterance
// outlives ctx cancellation; only a later Speak or Close stops it.
func (s *Speaker) Speak(ctx context.Context, u Utterance) error {
	u.Text = strings.TrimSpace(u.Text)
	if u.Text == "" {
		return ErrEmptyText
	}
	if u.Lang == "" {
		u.Lang = DefaultLang
	}
	if u.Rate <= 0 {
		u.Rate = DefaultRate
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	if s.cancel != nil {
		s.cancel()
	}

	uctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	prev := s.done
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done

	go func() {
		defer close(done)
		defer cancel()

		if prev != nil {
			<-prev
		}
		if uctx.Err() != nil {
			return
		}

		if err := s.voice.Say(uctx, u); err != nil && !errors.Is(err, context.Canceled) {
			s.logger.ErrorContext(uctx, "speech playback failed", xslog.Text(u.Text), xslog.Error(err))
		}
	}()

	return nil
}

// Wait blocks until the current utterance finishes playing or ctx is done.
func (s *Speaker) Wait(ctx context.Context) error {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the current utterance and waits for it to finish.
func (s *Speaker) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	if s.cancel != nil {
		s.cancel()
	}
	done := s.done
	s.mu.Unlock()

	if done != nil {
		<-done
	}
	return nil
}
