package tts

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned by the dummy synthesizer when no provider
// credential is available.
var ErrNotConfigured = errors.New("no text-to-speech provider configured")

// Output formats
const (
	FormatMP3 = "mp3"
)

// SpeechRequest is one synthesis call.
type SpeechRequest struct {
	Text   string
	Voice  string
	Speed  float64
	Format string
}

// Synthesizer converts text into encoded audio bytes. The whole response
// body is returned; callers never see a partial stream.
type Synthesizer interface {
	Synthesize(ctx context.Context, req SpeechRequest) ([]byte, error)
	Name() string
}
