package tts

import (
	"context"
	"fmt"

	"github.com/tahcohcat/ttsstudio/config"
	"github.com/tahcohcat/ttsstudio/internal/logger"
)

type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGoogle Provider = "google"
	ProviderDummy  Provider = "dummy"
)

// New creates the synthesizer selected by cfg.Tts.Provider. A missing OpenAI
// key degrades to the dummy synthesizer so the form still renders and the
// credential hint reaches the user.
func New(ctx context.Context, cfg *config.Config) (Synthesizer, error) {
	switch Provider(cfg.Tts.Provider) {
	case ProviderOpenAI:
		if cfg.OpenAI.APIKey == "" {
			logger.Named("tts").Warn("OPENAI_API_KEY is not set; generation will fail until it is configured")
			return NewDummyTts(), nil
		}
		return NewOpenAITts(&cfg.OpenAI)
	case ProviderGoogle:
		return NewGoogleTts(ctx, &cfg.Google)
	case ProviderDummy:
		return NewDummyTts(), nil
	default:
		return nil, fmt.Errorf("unsupported TTS provider: %s", cfg.Tts.Provider)
	}
}
