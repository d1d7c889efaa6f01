package speech

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	go_json "github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"

	"github.com/garrettladley/moodwatch/internal/xhttp"
	"github.com/garrettladley/moodwatch/internal/xslog"
)

const (
	audioFormat = "mp3"
	// speed bounds accepted by the speech endpoint
	minSpeed = 0.25
	maxSpeed = 4.0
)

type OpenAIConfig struct {
	APIKey   string
	BaseURL  string
	Model    string
	Voice    string
	Timeout  time.Duration
	CacheDir string
	// Player is a command line; the clip path is appended as its last argument.
	Player string
}

// OpenAIVoice synthesizes speech through the OpenAI audio API, caches the
// clip on disk by content hash and plays it with a local player.
type OpenAIVoice struct {
	cfg        OpenAIConfig
	http       *http.Client
	logger     *slog.Logger
	playerName string
	playerArgs []string
	play       runFunc

	sf singleflight.Group
}

var _ Voice = (*OpenAIVoice)(nil)

type Clip struct {
	Path     string
	CacheHit bool
}

func NewOpenAIVoice(cfg OpenAIConfig, logger *slog.Logger) (*OpenAIVoice, error) {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if cfg.APIKey == "" {
		return nil, errors.New("speech: missing OpenAI API key")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Model == "" {
		cfg.Model = "tts-1"
	}
	if cfg.Voice == "" {
		cfg.Voice = "nova"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.CacheDir == "" {
		return nil, errors.New("speech: missing audio cache directory")
	}
	player := strings.Fields(cfg.Player)
	if len(player) == 0 {
		return nil, errors.New("speech: missing audio player command")
	}
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(cfg.CacheDir, 0o700); err != nil {
		return nil, fmt.Errorf("speech: creating audio cache: %w", err)
	}

	return &OpenAIVoice{
		cfg:        cfg,
		http:       xhttp.NewHTTPClient(xhttp.WithTimeout(cfg.Timeout)),
		logger:     logger,
		playerName: player[0],
		playerArgs: player[1:],
		play:       runCommand,
	}, nil
}

func (v *OpenAIVoice) Say(ctx context.Context, u Utterance) error {
	clip, err := v.Synthesize(ctx, u)
	if err != nil {
		return err
	}
	v.logger.DebugContext(ctx, "playing clip", xslog.Path(clip.Path), xslog.CacheHit(clip.CacheHit))

	args := append(append([]string(nil), v.playerArgs...), clip.Path)
	return v.play(ctx, v.playerName, args...)
}

// Synthesize returns a cached clip for u, calling the API on a miss.
// Concurrent misses for the same clip share one request, and the request is
// not tied to ctx so a cancelled utterance still fills the cache.
func (v *OpenAIVoice) Synthesize(ctx context.Context, u Utterance) (Clip, error) {
	speed := clampSpeed(u.Rate)
	key := v.cacheKey(u.Text, speed)
	finalPath := filepath.Join(v.cfg.CacheDir, key+"."+audioFormat)

	if fileExists(finalPath) {
		return Clip{Path: finalPath, CacheHit: true}, nil
	}

	ch := v.sf.DoChan(key, func() (any, error) {
		if fileExists(finalPath) {
			return Clip{Path: finalPath, CacheHit: true}, nil
		}

		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), v.cfg.Timeout)
		defer cancel()

		audio, err := v.synthesize(sctx, u.Text, speed)
		if err != nil {
			return Clip{}, err
		}
		if err := writeAtomic(finalPath, audio); err != nil {
			return Clip{}, err
		}
		return Clip{Path: finalPath}, nil
	})

	select {
	case <-ctx.Done():
		return Clip{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return Clip{}, res.Err
		}
		return res.Val.(Clip), nil
	}
}

func (v *OpenAIVoice) synthesize(ctx context.Context, text string, speed float64) ([]byte, error) {
	payload := map[string]any{
		"model":           v.cfg.Model,
		"voice":           v.cfg.Voice,
		"input":           text,
		"response_format": audioFormat,
		"speed":           speed,
	}
	body, err := go_json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding speech request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.cfg.BaseURL+"/audio/speech", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating speech request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+v.cfg.APIKey)
	req.Header.Set(xhttp.ContentType, "application/json")
	req.Header.Set(xhttp.Accept, "*/*")

	resp, err := v.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing speech request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading speech response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(data))
		var parsed struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if go_json.Unmarshal(data, &parsed) == nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		return nil, fmt.Errorf("openai speech: status=%d msg=%s", resp.StatusCode, msg)
	}
	if len(data) == 0 {
		return nil, errors.New("openai speech: empty audio response")
	}
	return data, nil
}

func (v *OpenAIVoice) cacheKey(text string, speed float64) string {
	raw := fmt.Sprintf("%s|%s|%s|%.3f|%s", v.cfg.Model, v.cfg.Voice, audioFormat, speed, text)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func clampSpeed(rate float64) float64 {
	switch {
	case rate <= 0:
		return DefaultRate
	case rate < minSpeed:
		return minSpeed
	case rate > maxSpeed:
		return maxSpeed
	default:
		return rate
	}
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp clip: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing clip: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("closing clip: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("renaming clip: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !st.IsDir() && st.Size() > 0
}
