package stats

import (
	"fmt"
	"net/http"
	"strings"

	go_json "github.com/goccy/go-json"
)

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("emotion stats: %d %s", e.StatusCode, e.Message)
}

func parseAPIError(resp *http.Response, body []byte) error {
	var errResp struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}

	if err := go_json.Unmarshal(body, &errResp); err != nil {
		msg := strings.TrimSpace(truncate(body))
		if msg == "" {
			msg = resp.Status
		}
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    msg,
		}
	}

	msg := errResp.Error
	if msg == "" {
		msg = errResp.Message
	}
	if msg == "" {
		msg = resp.Status
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    msg,
	}
}
