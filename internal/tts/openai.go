package tts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/tahcohcat/ttsstudio/config"
	"github.com/tahcohcat/ttsstudio/internal/logger"
)

// OpenAITts calls the OpenAI audio/speech endpoint.
type OpenAITts struct {
	client *openai.Client
	model  openai.SpeechModel
	logger *logger.Log
}

func NewOpenAITts(cfg *config.OpenAIConfig) (*OpenAITts, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{
		Timeout: time.Duration(cfg.Timeout) * time.Second,
	}

	model := cfg.Model
	if model == "" {
		model = string(openai.TTSModel1HD)
	}

	return &OpenAITts{
		client: openai.NewClientWithConfig(clientCfg),
		model:  openai.SpeechModel(model),
		logger: logger.Named("openai"),
	}, nil
}

func (o *OpenAITts) Synthesize(ctx context.Context, req SpeechRequest) ([]byte, error) {
	format := req.Format
	if format == "" {
		format = FormatMP3
	}

	o.logger.Debug(fmt.Sprintf("Requesting speech: model=%s voice=%s speed=%.1f chars=%d",
		o.model, req.Voice, req.Speed, len(req.Text)))

	start := time.Now()
	resp, err := o.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          o.model,
		Input:          req.Text,
		Voice:          openai.SpeechVoice(req.Voice),
		ResponseFormat: openai.SpeechResponseFormat(format),
		Speed:          req.Speed,
	})
	if err != nil {
		return nil, fmt.Errorf("openai speech request failed: %w", err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read speech response: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("empty audio content received from OpenAI")
	}

	o.logger.Debug(fmt.Sprintf("Received %d bytes of %s audio in %s", len(audio), format, time.Since(start).Round(time.Millisecond)))
	return audio, nil
}

func (o *OpenAITts) Name() string {
	return "OpenAI Text-to-Speech (" + string(o.model) + ")"
}
