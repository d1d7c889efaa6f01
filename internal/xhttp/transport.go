package xhttp

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/garrettladley/moodwatch/internal/version"
)

type moodwatchTransport struct {
	base http.RoundTripper
}

var _ http.RoundTripper = (*moodwatchTransport)(nil)

func (t *moodwatchTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrip must not mutate the caller's request.
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set(version.Header, version.Get())
	if req.Header.Get(XRequestID) == "" {
		req.Header.Set(XRequestID, uuid.New().String())
	}
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform round trip: %w", err)
	}
	return resp, nil
}

// NewTransport returns an http.RoundTripper with standard moodwatch headers.
func NewTransport() http.RoundTripper {
	return &moodwatchTransport{base: http.DefaultTransport}
}
