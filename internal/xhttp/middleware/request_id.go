package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/garrettladley/moodwatch/internal/xcontext"
	"github.com/garrettladley/moodwatch/internal/xhttp"
)

type RequestIDMiddleware struct {
	IDFunc func(*http.Request) string
}

// incoming X-Request-ID wins so client and server logs share one id.
func defaultRequestID(r *http.Request) string {
	if id := r.Header.Get(xhttp.XRequestID); id != "" {
		return id
	}
	return uuid.New().String()
}

type RequestIDOption func(*RequestIDMiddleware)

func WithIDFunc(fn func(*http.Request) string) RequestIDOption {
	return func(m *RequestIDMiddleware) { m.IDFunc = fn }
}

func RequestID(opts ...RequestIDOption) func(http.Handler) http.Handler {
	middleware := &RequestIDMiddleware{IDFunc: defaultRequestID}

	for _, opt := range opts {
		opt(middleware)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := middleware.IDFunc(r)
			ctx := xcontext.SetRequestID(r.Context(), id)
			xhttp.SetHeaderRequestID(w, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
