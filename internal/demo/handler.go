package demo

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/garrettladley/moodwatch/internal/emotion"
	"github.com/garrettladley/moodwatch/internal/xhttp"
	"github.com/garrettladley/moodwatch/internal/xhttp/middleware"
	"github.com/garrettladley/moodwatch/internal/xslog"
)

const statsPath = "/emotion_stats"

type StatsSource interface {
	Stats(ctx context.Context) (emotion.Snapshot, error)
}

type Handler struct {
	source StatsSource
}

func NewHandler(source StatsSource) *Handler {
	return &Handler{source: source}
}

func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	xhttp.SetHeaderNoStore(w)

	snapshot, err := h.source.Stats(ctx)
	if err != nil {
		xslog.FromContext(ctx).ErrorContext(ctx, "failed to compute emotion stats", xslog.Error(err))
		// failures go in the body with a 200, as the camera backend does
		xhttp.WriteOK(w, map[string]string{"error": err.Error()})
		return
	}

	xhttp.WriteOK(w, snapshot)
}

func HandleHealth(w http.ResponseWriter, _ *http.Request) {
	xhttp.WriteOK(w, map[string]string{"status": "ok"})
}

// Routes wires the handler into a mux behind the standard middleware.
func (h *Handler) Routes(logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+statsPath, h.HandleStats)
	mux.HandleFunc("GET /health", HandleHealth)

	return middleware.Chain(mux,
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery,
		middleware.Logging,
		middleware.SecurityHeaders,
	)
}
