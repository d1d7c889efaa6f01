package main

import (
	"fmt"
	"log/slog"

	"github.com/garrettladley/moodwatch/internal/config"
	"github.com/garrettladley/moodwatch/internal/paths"
	"github.com/garrettladley/moodwatch/internal/speech"
)

func newVoice(cfg config.Config, logger *slog.Logger) (speech.Voice, error) {
	switch cfg.Speech.Backend {
	case config.SpeechOff:
		return speech.Silent{Logger: logger}, nil

	case config.SpeechOpenAI:
		cacheDir, err := paths.AudioCache()
		if err != nil {
			return nil, err
		}
		voice, err := speech.NewOpenAIVoice(speech.OpenAIConfig{
			APIKey:   cfg.OpenAI.APIKey,
			BaseURL:  cfg.OpenAI.BaseURL,
			Model:    cfg.OpenAI.Model,
			Voice:    cfg.OpenAI.Voice,
			Timeout:  cfg.OpenAI.Timeout,
			CacheDir: cacheDir,
			Player:   cfg.Speech.Player,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to set up openai speech: %w", err)
		}
		return voice, nil

	default:
		voice, err := speech.NewCommandVoice(cfg.Speech.Command)
		if err != nil {
			return nil, fmt.Errorf("failed to set up speech command: %w", err)
		}
		return voice, nil
	}
}
