//go:build !release

package main

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/garrettladley/moodwatch/internal/detectlog"
	"github.com/garrettladley/moodwatch/internal/emotion"
)

func TestOpenDemoLog(t *testing.T) {
	t.Parallel()

	det := detectlog.Detection{Name: "UNKNOWN", Emotion: emotion.Sad, At: time.Now()}

	t.Run("memory is always simulated", func(t *testing.T) {
		t.Parallel()
		log, feed, err := openDemoLog(t.Context(), "", false)
		if err != nil {
			t.Fatalf("openDemoLog() error = %v", err)
		}
		t.Cleanup(func() { _ = log.Close() })
		if !feed {
			t.Error("in-memory log not simulated")
		}
	})

	t.Run("file log with simulate is writable", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "detections.db")

		log, feed, err := openDemoLog(t.Context(), path, true)
		if err != nil {
			t.Fatalf("openDemoLog() error = %v", err)
		}
		if !feed {
			t.Error("simulate flag dropped")
		}
		if err := log.Record(t.Context(), det); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
		_ = log.Close()

		// served read-only afterwards, the detection is still there
		ro, feed, err := openDemoLog(t.Context(), path, false)
		if err != nil {
			t.Fatalf("openDemoLog() read-only error = %v", err)
		}
		t.Cleanup(func() { _ = ro.Close() })
		if feed {
			t.Error("read-only log simulated")
		}
		got, err := ro.Stats(t.Context())
		if err != nil {
			t.Fatalf("Stats() error = %v", err)
		}
		if got["Sad"] != 100 {
			t.Errorf("Stats() = %v, want Sad 100", got)
		}
		if err := ro.Record(t.Context(), det); !errors.Is(err, detectlog.ErrReadOnly) {
			t.Errorf("Record() on read-only log error = %v, want ErrReadOnly", err)
		}
	})
}
