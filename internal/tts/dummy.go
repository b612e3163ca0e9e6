package tts

import (
	"context"

	"github.com/tahcohcat/ttsstudio/internal/logger"
)

type DummyTts struct {
}

func NewDummyTts() *DummyTts {
	return &DummyTts{}
}

func (d *DummyTts) Synthesize(_ context.Context, _ SpeechRequest) ([]byte, error) {
	logger.Named("tts").Debug("no tts configured. rejecting synthesis request")
	return nil, ErrNotConfigured
}

func (d *DummyTts) Name() string {
	return "dummy"
}
