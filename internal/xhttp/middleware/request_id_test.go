package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/garrettladley/moodwatch/internal/xcontext"
	"github.com/garrettladley/moodwatch/internal/xhttp"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		incoming string
		opts     []RequestIDOption
		wantID   string
	}{
		{
			name:     "incoming header propagated",
			incoming: "abc-123",
			wantID:   "abc-123",
		},
		{
			name:     "custom id func",
			incoming: "ignored",
			opts:     []RequestIDOption{WithIDFunc(func(*http.Request) string { return "fixed" })},
			wantID:   "fixed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotCtxID string
			h := RequestID(tt.opts...)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotCtxID, _ = xcontext.GetRequestID(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/emotion_stats", nil)
			if tt.incoming != "" {
				req.Header.Set(xhttp.XRequestID, tt.incoming)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if gotCtxID != tt.wantID {
				t.Errorf("context request id = %q, want %q", gotCtxID, tt.wantID)
			}
			if got := rec.Header().Get(xhttp.XRequestID); got != tt.wantID {
				t.Errorf("response header = %q, want %q", got, tt.wantID)
			}
		})
	}
}

func TestRequestIDGenerated(t *testing.T) {
	t.Parallel()

	h := RequestID()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := rec.Header().Get(xhttp.XRequestID); len(got) != 36 {
		t.Errorf("generated request id = %q, want a uuid", got)
	}
}
