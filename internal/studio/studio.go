// Package studio turns form input into a saved audio file: it rewrites the
// text, compiles the delivery instructions, calls the synthesizer once and
// stores the result.
package studio

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tahcohcat/ttsstudio/internal/instructions"
	"github.com/tahcohcat/ttsstudio/internal/logger"
	"github.com/tahcohcat/ttsstudio/internal/metrics"
	"github.com/tahcohcat/ttsstudio/internal/models"
	"github.com/tahcohcat/ttsstudio/internal/storage"
	"github.com/tahcohcat/ttsstudio/internal/textproc"
	"github.com/tahcohcat/ttsstudio/internal/tts"
)

// ErrEmptyText is returned when the input is empty or whitespace only. No
// synthesis request is made.
var ErrEmptyText = errors.New("please enter text before generating audio")

// GenerationError wraps any synthesis or storage failure.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return "audio generation failed: " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// History records saved artifacts.
type History interface {
	Record(g *models.Generation) error
}

// Notifier receives generation status events.
type Notifier interface {
	Publish(e Event)
}

type Option func(*Studio)

func WithHistory(h History) Option {
	return func(s *Studio) { s.history = h }
}

func WithNotifier(n Notifier) Option {
	return func(s *Studio) { s.notifier = n }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Studio) { s.metrics = m }
}

// WithClock overrides time.Now; the clock drives artifact file names.
func WithClock(now func() time.Time) Option {
	return func(s *Studio) { s.now = now }
}

type Studio struct {
	synth    tts.Synthesizer
	store    *storage.FileStore
	history  History
	notifier Notifier
	metrics  *metrics.Metrics
	logger   *logger.Log
	now      func() time.Time
}

func New(synth tts.Synthesizer, store *storage.FileStore, opts ...Option) *Studio {
	s := &Studio{
		synth:  synth,
		store:  store,
		logger: logger.Named("studio"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesizer returns the provider in use.
func (s *Studio) Synthesizer() tts.Synthesizer {
	return s.synth
}

// Preview is the text and instruction block a generation would use.
type Preview struct {
	Text         string             `json:"text"`
	Instructions string             `json:"instructions"`
	Stats        models.TextStats   `json:"stats"`
	Preferences  models.Preferences `json:"preferences"`
}

// Preview runs the text pipeline and the instruction compiler without
// calling the synthesizer.
func (s *Studio) Preview(text string, prefs models.Preferences) Preview {
	return Preview{
		Text:         textproc.Transform(text, prefs.Style, prefs.Punctuation),
		Instructions: instructions.ForPreferences(prefs),
		Stats:        models.StatsFor(text),
		Preferences:  prefs,
	}
}

// Result describes a saved artifact.
type Result struct {
	Preview
	ID       string    `json:"id"`
	Path     string    `json:"path"`
	FileName string    `json:"file_name"`
	Size     int64     `json:"size_bytes"`
	Created  time.Time `json:"created_at"`
}

// Generate synthesizes text with prefs and writes the audio to the store.
//
// The instruction block is compiled and returned but is not part of the
// synthesis request: the speech endpoint in use takes no free-form delivery
// instructions.
func (s *Studio) Generate(ctx context.Context, text string, prefs models.Preferences) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		s.reject()
		return nil, ErrEmptyText
	}
	if err := prefs.Validate(); err != nil {
		s.reject()
		return nil, err
	}

	id := uuid.NewString()
	preview := s.Preview(text, prefs)
	s.logger.Debug(fmt.Sprintf("Compiled instructions for %s:\n%s", id, preview.Instructions))

	s.publish(Event{ID: id, Type: EventStarted, Message: fmt.Sprintf("Generating audio with %s (%s)", prefs.Voice, prefs.Style)})
	if s.metrics != nil {
		s.metrics.GenerationsStarted.Inc()
		s.metrics.InputCharacters.Observe(float64(len(preview.Text)))
	}

	start := s.now()
	audio, err := s.synth.Synthesize(ctx, tts.SpeechRequest{
		Text:   preview.Text,
		Voice:  prefs.Voice,
		Speed:  prefs.Speed,
		Format: tts.FormatMP3,
	})
	if err != nil {
		return nil, s.fail(id, metrics.StageSynthesis, err)
	}

	// named after the moment the audio came back
	created := s.now()
	name := storage.FileName(prefs.Voice, prefs.Style, created)
	path, err := s.store.Save(name, audio)
	if err != nil {
		return nil, s.fail(id, metrics.StageStorage, err)
	}

	result := &Result{
		Preview:  preview,
		ID:       id,
		Path:     path,
		FileName: name,
		Size:     int64(len(audio)),
		Created:  created,
	}

	if s.history != nil {
		if err := s.history.Record(s.generation(result)); err != nil {
			// the file is already on disk; history is best effort
			s.logger.WithError(err).Warn("failed to record generation")
		}
	}

	if s.metrics != nil {
		s.metrics.GenerationDuration.Observe(s.now().Sub(start).Seconds())
		s.metrics.AudioBytes.Observe(float64(result.Size))
		s.metrics.GenerationsByVoice.WithLabelValues(prefs.Voice).Inc()
	}

	s.logger.Success(fmt.Sprintf("Saved %s (%d bytes)", path, result.Size))
	s.publish(Event{ID: id, Type: EventCompleted, Message: "Audio generated successfully", FileName: name})
	return result, nil
}

func (s *Studio) generation(r *Result) *models.Generation {
	p := r.Preferences
	return &models.Generation{
		ID:          r.ID,
		FileName:    r.FileName,
		Path:        r.Path,
		Voice:       p.Voice,
		Style:       p.Style,
		Tone:        p.Tone,
		Punctuation: p.Punctuation,
		Delivery:    p.Delivery,
		Emphasis:    p.Emphasis,
		Speed:       p.Speed,
		Characters:  r.Stats.Characters,
		Words:       r.Stats.Words,
		SizeBytes:   r.Size,
		CreatedAt:   r.Created,
	}
}

func (s *Studio) fail(id, stage string, err error) error {
	genErr := &GenerationError{Err: err}
	s.logger.WithError(err).Error(fmt.Sprintf("Generation %s failed during %s", id, stage))
	if s.metrics != nil {
		s.metrics.GenerationsFailed.WithLabelValues(stage).Inc()
	}
	s.publish(Event{ID: id, Type: EventFailed, Message: genErr.Error()})
	return genErr
}

func (s *Studio) reject() {
	if s.metrics != nil {
		s.metrics.GenerationsRejected.Inc()
	}
}

func (s *Studio) publish(e Event) {
	if s.notifier == nil {
		return
	}
	if e.Time.IsZero() {
		e.Time = s.now()
	}
	s.notifier.Publish(e)
}
