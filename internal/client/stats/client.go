package stats

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	go_json "github.com/goccy/go-json"

	"github.com/garrettladley/moodwatch/internal/emotion"
	"github.com/garrettladley/moodwatch/internal/xhttp"
	"github.com/garrettladley/moodwatch/internal/xslog"
)

// Path is the backend route serving the latest percentages.
const Path = "/emotion_stats"

// maxBody caps how much of a response is read; a snapshot is tiny.
const maxBody = 1 << 20

type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

type clientConfig struct {
	httpClient *http.Client
	logger     *slog.Logger
	timeout    time.Duration
}

type Option func(*clientConfig)

func WithHTTPClient(c *http.Client) Option {
	return func(cfg *clientConfig) { cfg.httpClient = c }
}

func WithLogger(logger *slog.Logger) Option {
	return func(cfg *clientConfig) { cfg.logger = logger }
}

// WithTimeout bounds each request. Zero means no client-side limit.
func WithTimeout(d time.Duration) Option {
	return func(cfg *clientConfig) { cfg.timeout = d }
}

func New(baseURL string, opts ...Option) *Client {
	cfg := &clientConfig{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = xhttp.NewHTTPClient(xhttp.WithTimeout(cfg.timeout))
	}

	return &Client{
		endpoint:   strings.TrimRight(baseURL, "/") + Path,
		httpClient: httpClient,
		logger:     cfg.logger,
	}
}

// Endpoint is the full URL polled by Fetch.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Fetch requests the current snapshot. Any JSON object is a snapshot,
// whatever the status: only the seven known categories are kept and other
// keys, including a backend "error" message, are ignored. A body that is not
// a JSON object fails the fetch, as an *APIError for non-2xx statuses.
func (c *Client) Fetch(ctx context.Context) (emotion.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	xhttp.SetRequestHeaderAcceptJSON(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300

	snapshot, err := decodeSnapshot(body)
	if err != nil {
		if !ok {
			return nil, parseAPIError(resp, body)
		}
		return nil, err
	}

	if !ok {
		c.logger.WarnContext(ctx, "applying snapshot from non-2xx response", xslog.HTTPStatus(resp.StatusCode))
	}
	if msg, isString := ignoredError(body); isString {
		c.logger.WarnContext(ctx, "backend reported an error", xslog.BackendError(msg))
	}

	c.logger.DebugContext(ctx, "fetched snapshot", slog.Int("categories", len(snapshot)))
	return snapshot, nil
}

func decodeSnapshot(body []byte) (emotion.Snapshot, error) {
	var raw map[string]any
	if err := go_json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decoding response: %w\nbody: %s", err, truncate(body))
	}
	if raw == nil {
		return nil, fmt.Errorf("decoding response: expected a JSON object, got %s", truncate(body))
	}

	snapshot := make(emotion.Snapshot, emotion.Count)
	for _, e := range emotion.All {
		// null and non-numeric values count as absent
		if f, ok := raw[e.String()].(float64); ok {
			snapshot[e.String()] = f
		}
	}
	return snapshot, nil
}

// ignoredError returns the backend's {"error": "..."} message, which is
// logged but otherwise treated like any extra key.
func ignoredError(body []byte) (string, bool) {
	var b struct {
		Error *string `json:"error"`
	}
	if err := go_json.Unmarshal(body, &b); err != nil || b.Error == nil {
		return "", false
	}
	return *b.Error, true
}

func truncate(b []byte) string {
	const limit = 256
	if len(b) > limit {
		return string(b[:limit]) + "..."
	}
	return string(b)
}
