package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
)

const DefaultStatsURL = "http://127.0.0.1:5000"

type SpeechBackend string

const (
	SpeechCommand SpeechBackend = "command"
	SpeechOpenAI  SpeechBackend = "openai"
	SpeechOff     SpeechBackend = "off"
)

type Config struct {
	StatsURL     string        `env:"STATS_URL" envDefault:"http://127.0.0.1:5000"`
	PollInterval time.Duration `env:"POLL_INTERVAL" envDefault:"3s"`
	// 0 leaves the request unbounded; shutdown still cancels it.
	StatsTimeout time.Duration `env:"STATS_TIMEOUT" envDefault:"0s"`

	Speech Speech `envPrefix:"SPEECH_"`
	OpenAI OpenAI `envPrefix:"OPENAI_"`
}

type Speech struct {
	Backend SpeechBackend `env:"BACKEND" envDefault:"command"`
	Command string        `env:"COMMAND" envDefault:"espeak-ng"`
	Lang    string        `env:"LANG" envDefault:"en-US"`
	Rate    float64       `env:"RATE" envDefault:"1.0"`
	Player  string        `env:"PLAYER" envDefault:"ffplay -nodisp -autoexit -loglevel quiet"`
}

type OpenAI struct {
	APIKey  string        `env:"API_KEY"`
	BaseURL string        `env:"BASE_URL" envDefault:"https://api.openai.com/v1"`
	Model   string        `env:"TTS_MODEL" envDefault:"tts-1"`
	Voice   string        `env:"TTS_VOICE" envDefault:"nova"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

func Read() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.StatsURL)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("STATS_URL: %w", err))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, fmt.Errorf("STATS_URL: unsupported scheme %q", u.Scheme))
	case u.Host == "":
		errs = append(errs, errors.New("STATS_URL: missing host"))
	}

	if c.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("POLL_INTERVAL must be positive, got %s", c.PollInterval))
	}
	if c.StatsTimeout < 0 {
		errs = append(errs, fmt.Errorf("STATS_TIMEOUT must not be negative, got %s", c.StatsTimeout))
	}
	if c.Speech.Rate <= 0 {
		errs = append(errs, fmt.Errorf("SPEECH_RATE must be positive, got %g", c.Speech.Rate))
	}

	switch c.Speech.Backend {
	case SpeechCommand:
		if c.Speech.Command == "" {
			errs = append(errs, errors.New("SPEECH_COMMAND is required for the command backend"))
		}
	case SpeechOpenAI:
		if c.OpenAI.APIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is required for the openai backend"))
		}
		if c.Speech.Player == "" {
			errs = append(errs, errors.New("SPEECH_PLAYER is required for the openai backend"))
		}
	case SpeechOff:
	default:
		errs = append(errs, fmt.Errorf("SPEECH_BACKEND: unknown backend %q (valid: command, openai, off)", c.Speech.Backend))
	}

	return errors.Join(errs...)
}
