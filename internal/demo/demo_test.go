package demo

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	go_json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/garrettladley/moodwatch/internal/client/stats"
	"github.com/garrettladley/moodwatch/internal/detectlog"
	"github.com/garrettladley/moodwatch/internal/emotion"
	"github.com/garrettladley/moodwatch/internal/xhttp"
)

const waitTimeout = 2 * time.Second

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type staticSource struct {
	snapshot emotion.Snapshot
	err      error
}

func (s staticSource) Stats(context.Context) (emotion.Snapshot, error) {
	return s.snapshot, s.err
}

func TestHandleStats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		source   staticSource
		wantBody map[string]any
		want     emotion.Snapshot
	}{
		{
			name:     "snapshot",
			source:   staticSource{snapshot: emotion.Snapshot{"Happy": 75.5, "Sad": 10.2}},
			wantBody: map[string]any{"Happy": 75.5, "Sad": 10.2},
			want:     emotion.Snapshot{"Happy": 75.5, "Sad": 10.2},
		},
		{
			// the dashboard reads this as an empty snapshot
			name:     "failure reported in the body",
			source:   staticSource{err: errors.New("database is locked")},
			wantBody: map[string]any{"error": "database is locked"},
			want:     emotion.Snapshot{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := NewHandler(tt.source).Routes(discardLogger())

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, statsPath, nil))
			if rec.Code != http.StatusOK {
				t.Errorf("status = %d, want 200", rec.Code)
			}
			var body map[string]any
			if err := go_json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decoding body: %v", err)
			}
			if diff := cmp.Diff(tt.wantBody, body); diff != "" {
				t.Errorf("body mismatch (-want +got):\n%s", diff)
			}

			srv := httptest.NewServer(handler)
			t.Cleanup(srv.Close)

			got, err := stats.New(srv.URL).Fetch(t.Context())
			if err != nil {
				t.Fatalf("Fetch() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Fetch() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRoutesLogClientIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		xForwardedFor string
		remoteAddr    string
		want          string
	}{
		{"peer address", "", "192.0.2.1:1234", "192.0.2.1"},
		{"peer ipv6", "", "[::1]:5000", "::1"},
		{"forwarded wins", "203.0.113.195", "192.0.2.1:1234", "203.0.113.195"},
		{"forwarded with port", "[2001:db8::1]:8080", "192.0.2.1:1234", "2001:db8::1"},
		{"first forwarded hop", "203.0.113.7, 10.0.0.2", "192.0.2.1:1234", "203.0.113.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))
			handler := NewHandler(staticSource{snapshot: emotion.Snapshot{}}).Routes(logger)

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xForwardedFor != "" {
				req.Header.Set(xhttp.XForwardedFor, tt.xForwardedFor)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)

			if want := `"ip":"` + tt.want + `"`; !strings.Contains(buf.String(), want) {
				t.Errorf("access log missing %s:\n%s", want, buf.String())
			}
		})
	}
}

func TestRoutesHeaders(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(NewHandler(staticSource{snapshot: emotion.Snapshot{}}).Routes(discardLogger()))
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + statsPath)
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	checks := map[string]string{
		xhttp.CacheControl:     "no-store",
		xhttp.XContentTypeOpts: "nosniff",
		xhttp.ContentType:      "application/json",
	}
	for header, want := range checks {
		if got := resp.Header.Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
	if resp.Header.Get(xhttp.XRequestID) == "" {
		t.Errorf("%s missing", xhttp.XRequestID)
	}

	post, err := http.Post(srv.URL+statsPath, "application/json", nil)
	if err != nil {
		t.Fatalf("POST error = %v", err)
	}
	_ = post.Body.Close()
	if post.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("POST status = %d, want %d", post.StatusCode, http.StatusMethodNotAllowed)
	}
}

func TestStatsFromDetectionLog(t *testing.T) {
	t.Parallel()

	log, err := detectlog.OpenMemory(t.Context())
	if err != nil {
		t.Fatalf("OpenMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = log.Close() })

	sim := NewSimulator(7)
	for range detectlog.Window {
		if err := log.Record(t.Context(), sim.Next(time.Now())); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	want, err := log.Stats(t.Context())
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}

	srv := httptest.NewServer(NewHandler(log).Routes(discardLogger()))
	t.Cleanup(srv.Close)

	got, err := stats.New(srv.URL).Fetch(t.Context())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("Fetch() mismatch (-want +got):\n%s", diff)
	}

	var total float64
	for _, v := range got {
		total += v
	}
	if total < 99.999 || total > 100.001 {
		t.Errorf("percentages sum to %g, want 100", total)
	}
}

func TestSimulator(t *testing.T) {
	t.Parallel()

	const n = 200
	a, b := NewSimulator(42), NewSimulator(42)
	now := time.Now()

	var switches int
	prev := emotion.None
	for i := range n {
		da, db := a.Next(now), b.Next(now)
		if da.Emotion != db.Emotion {
			t.Fatalf("detection %d differs between equal seeds: %v vs %v", i, da.Emotion, db.Emotion)
		}
		if !da.Emotion.Valid() {
			t.Fatalf("detection %d has invalid emotion %v", i, da.Emotion)
		}
		if da.Name != defaultName || !da.At.Equal(now) {
			t.Fatalf("detection %d = %+v", i, da)
		}
		if da.Emotion != prev {
			switches++
		}
		prev = da.Emotion
	}

	// mostly stays put
	if switches > n/2 {
		t.Errorf("mood changed %d times in %d detections", switches, n)
	}
}

type countingRecorder struct {
	recorded chan detectlog.Detection
}

func (r *countingRecorder) Record(_ context.Context, d detectlog.Detection) error {
	r.recorded <- d
	return nil
}

func TestFeed(t *testing.T) {
	t.Parallel()

	rec := &countingRecorder{recorded: make(chan detectlog.Detection, 64)}
	ctx, cancel := context.WithCancel(t.Context())

	done := make(chan error, 1)
	go func() { done <- Feed(ctx, rec, NewSimulator(1), 5*time.Millisecond, discardLogger()) }()

	for i := range 3 {
		select {
		case <-rec.recorded:
		case <-time.After(waitTimeout):
			t.Fatalf("detection %d never recorded", i)
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Feed() error = %v", err)
		}
	case <-time.After(waitTimeout):
		t.Fatal("Feed() did not stop after cancel")
	}
}

type failingRecorder struct{}

func (failingRecorder) Record(context.Context, detectlog.Detection) error {
	return errors.New("disk full")
}

func TestFeedRecordError(t *testing.T) {
	t.Parallel()

	err := Feed(t.Context(), failingRecorder{}, NewSimulator(1), time.Hour, discardLogger())
	if err == nil {
		t.Fatal("Feed() error = nil, want record failure")
	}
}

func TestServeShutsDown(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}

	ctx, cancel := context.WithCancel(t.Context())
	handler := NewHandler(staticSource{snapshot: emotion.Snapshot{"Fear": 100}}).Routes(discardLogger())

	done := make(chan error, 1)
	go func() { done <- Serve(ctx, ln, handler, discardLogger()) }()

	got, err := stats.New("http://" + ln.Addr().String()).Fetch(t.Context())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if got["Fear"] != 100 {
		t.Errorf("Fetch() = %v, want Fear 100", got)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(waitTimeout):
		t.Fatal("Serve() did not stop after cancel")
	}
}
