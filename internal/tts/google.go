package tts

import (
	"context"
	"fmt"
	"strings"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	ttspb "cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"google.golang.org/api/option"

	"github.com/tahcohcat/ttsstudio/config"
	"github.com/tahcohcat/ttsstudio/internal/logger"
)

// GoogleTts maps studio voices onto Google Cloud voices.
type GoogleTts struct {
	client *texttospeech.Client
	cfg    config.GoogleConfig
	logger *logger.Log
}

func NewGoogleTts(ctx context.Context, cfg *config.GoogleConfig) (*GoogleTts, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := texttospeech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google TTS client: %w", err)
	}

	return &GoogleTts{
		client: client,
		cfg:    *cfg,
		logger: logger.Named("google"),
	}, nil
}

// voiceName resolves a studio voice to a Google voice name, falling back to
// the configured default.
func (g *GoogleTts) voiceName(voice string) string {
	if name, ok := g.cfg.Voices[voice]; ok && name != "" {
		return name
	}
	return g.cfg.DefaultVoice
}

// Extract language code from voice name (e.g., "en-US-Chirp-HD-F" -> "en-US")
func (g *GoogleTts) languageCode(voiceName string) string {
	parts := strings.Split(voiceName, "-")
	if len(parts) >= 2 {
		return fmt.Sprintf("%s-%s", parts[0], parts[1])
	}
	if g.cfg.LanguageCode != "" {
		return g.cfg.LanguageCode
	}
	return "en-US"
}

func (g *GoogleTts) Synthesize(ctx context.Context, req SpeechRequest) ([]byte, error) {
	if req.Format != "" && req.Format != FormatMP3 {
		return nil, fmt.Errorf("unsupported output format %q", req.Format)
	}

	name := g.voiceName(req.Voice)
	resp, err := g.client.SynthesizeSpeech(ctx, &ttspb.SynthesizeSpeechRequest{
		Input: &ttspb.SynthesisInput{
			InputSource: &ttspb.SynthesisInput_Text{Text: req.Text},
		},
		Voice: &ttspb.VoiceSelectionParams{
			LanguageCode: g.languageCode(name),
			Name:         name,
		},
		AudioConfig: &ttspb.AudioConfig{
			AudioEncoding: ttspb.AudioEncoding_MP3,
			SpeakingRate:  req.Speed,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize speech: %w", err)
	}

	if len(resp.AudioContent) == 0 {
		return nil, fmt.Errorf("empty audio content received from Google TTS")
	}

	g.logger.Debug(fmt.Sprintf("Generated %d bytes of MP3 audio with voice %s", len(resp.AudioContent), name))
	return resp.AudioContent, nil
}

func (g *GoogleTts) Name() string {
	return "Google Cloud Text-to-Speech"
}

func (g *GoogleTts) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
