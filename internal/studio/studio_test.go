package studio

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tahcohcat/ttsstudio/internal/metrics"
	"github.com/tahcohcat/ttsstudio/internal/models"
	"github.com/tahcohcat/ttsstudio/internal/storage"
	"github.com/tahcohcat/ttsstudio/internal/tts"
)

type fakeSynth struct {
	audio []byte
	err   error
	calls []tts.SpeechRequest
}

func (f *fakeSynth) Synthesize(_ context.Context, req tts.SpeechRequest) ([]byte, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.audio, nil
}

func (f *fakeSynth) Name() string { return "fake" }

type fakeHistory struct {
	records []*models.Generation
	err     error
}

func (h *fakeHistory) Record(g *models.Generation) error {
	h.records = append(h.records, g)
	return h.err
}

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Publish(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

var fixedNow = time.Unix(1700000000, 0)

func newTestStudio(t *testing.T, synth tts.Synthesizer, opts ...Option) (*Studio, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "TTS_Output")
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return New(synth, storage.NewFileStore(dir), opts...), dir
}

func TestGenerateWritesReturnedBytes(t *testing.T) {
	synth := &fakeSynth{audio: []byte("ID3\x04fake mp3 payload")}
	history := &fakeHistory{}
	events := &recorder{}
	s, dir := newTestStudio(t, synth, WithHistory(history), WithNotifier(events), WithMetrics(metrics.NewMetrics(prometheus.NewRegistry())))

	prefs := models.DefaultPreferences()
	prefs.Voice = "nova"
	prefs.Style = models.StyleNewsAnchor
	prefs.Speed = 1.2

	res, err := s.Generate(context.Background(), "Hello there. General news.", prefs)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	wantName := "professional_audio_nova_News_Anchor_Style_1700000000.mp3"
	if res.FileName != wantName {
		t.Errorf("file name = %q, want %q", res.FileName, wantName)
	}
	if !filepath.IsAbs(res.Path) || filepath.Base(res.Path) != wantName {
		t.Errorf("path = %q", res.Path)
	}
	absDir, _ := filepath.Abs(dir)
	if filepath.Dir(res.Path) != absDir {
		t.Errorf("file not under output dir: %s", res.Path)
	}

	data, err := os.ReadFile(res.Path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != string(synth.audio) {
		t.Errorf("file content = %q, want %q", data, synth.audio)
	}

	if len(synth.calls) != 1 {
		t.Fatalf("expected one synthesis call, got %d", len(synth.calls))
	}
	call := synth.calls[0]
	if call.Text != "Hello there.\n\nGeneral news." {
		t.Errorf("synthesized text = %q", call.Text)
	}
	if call.Voice != "nova" || call.Speed != 1.2 || call.Format != tts.FormatMP3 {
		t.Errorf("unexpected request %+v", call)
	}

	if !strings.Contains(res.Instructions, "news broadcaster") {
		t.Errorf("instructions not compiled: %q", res.Instructions)
	}

	if len(history.records) != 1 || history.records[0].FileName != wantName || history.records[0].SizeBytes != int64(len(synth.audio)) {
		t.Errorf("history not recorded: %+v", history.records)
	}

	if got := strings.Join(events.types(), ","); got != "started,completed" {
		t.Errorf("events = %s", got)
	}
}

func TestGenerateRejectsEmptyText(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t "} {
		synth := &fakeSynth{audio: []byte("x")}
		s, dir := newTestStudio(t, synth)

		_, err := s.Generate(context.Background(), text, models.DefaultPreferences())
		if !errors.Is(err, ErrEmptyText) {
			t.Errorf("Generate(%q) error = %v, want ErrEmptyText", text, err)
		}
		if len(synth.calls) != 0 {
			t.Errorf("synthesizer called for %q", text)
		}
		if _, err := os.Stat(dir); !os.IsNotExist(err) {
			t.Errorf("output dir created for empty input")
		}
	}
}

func TestGenerateRejectsInvalidVoice(t *testing.T) {
	synth := &fakeSynth{audio: []byte("x")}
	s, _ := newTestStudio(t, synth)

	prefs := models.DefaultPreferences()
	prefs.Voice = "robot"

	_, err := s.Generate(context.Background(), "hi", prefs)
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(synth.calls) != 0 {
		t.Error("synthesizer called for invalid voice")
	}
}

func TestGenerateWrapsSynthesisFailure(t *testing.T) {
	cause := errors.New("connection refused")
	synth := &fakeSynth{err: cause}
	events := &recorder{}
	s, dir := newTestStudio(t, synth, WithNotifier(events))

	res, err := s.Generate(context.Background(), "Some text.", models.DefaultPreferences())
	if res != nil {
		t.Errorf("expected nil result, got %+v", res)
	}

	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %T: %v", err, err)
	}
	if !errors.Is(err, cause) {
		t.Error("original error not reachable through the wrapper")
	}
	if err.Error() != "audio generation failed: connection refused" {
		t.Errorf("message = %q", err.Error())
	}

	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Errorf("files written on failure: %v", entries)
	}
	if got := strings.Join(events.types(), ","); got != "started,failed" {
		t.Errorf("events = %s", got)
	}
}

func TestGenerateWrapsStorageFailure(t *testing.T) {
	synth := &fakeSynth{audio: []byte("x")}
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(blocker, []byte("file"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := New(synth, storage.NewFileStore(filepath.Join(blocker, "out")))

	_, err := s.Generate(context.Background(), "text", models.DefaultPreferences())
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "audio generation failed: ") {
		t.Errorf("message = %q", err.Error())
	}
}

func TestHistoryFailureDoesNotFailGeneration(t *testing.T) {
	synth := &fakeSynth{audio: []byte("x")}
	s, _ := newTestStudio(t, synth, WithHistory(&fakeHistory{err: errors.New("db locked")}))

	if _, err := s.Generate(context.Background(), "text", models.DefaultPreferences()); err != nil {
		t.Fatalf("Generate: %v", err)
	}
}

func TestPreviewDoesNotSynthesize(t *testing.T) {
	synth := &fakeSynth{}
	s, _ := newTestStudio(t, synth)

	prefs := models.DefaultPreferences()
	prefs.Style = models.StyleDramatic

	p := s.Preview("This is critical.", prefs)
	if p.Text != "This is **critical**." {
		t.Errorf("text = %q", p.Text)
	}
	if p.Stats.Words != 3 {
		t.Errorf("words = %d", p.Stats.Words)
	}
	if len(synth.calls) != 0 {
		t.Error("preview called the synthesizer")
	}
}

// slowSynth moves the clock forward while the request is in flight.
type slowSynth struct {
	now *time.Time
}

func (s *slowSynth) Synthesize(context.Context, tts.SpeechRequest) ([]byte, error) {
	*s.now = s.now.Add(90 * time.Second)
	return []byte("mp3"), nil
}

func (s *slowSynth) Name() string { return "slow" }

func TestFileNameUsesTimeAfterSynthesis(t *testing.T) {
	now := fixedNow
	synth := &slowSynth{now: &now}
	s := New(synth, storage.NewFileStore(t.TempDir()), WithClock(func() time.Time { return now }))

	res, err := s.Generate(context.Background(), "hello", models.DefaultPreferences())
	if err != nil {
		t.Fatal(err)
	}
	want := "professional_audio_alloy_Professional_Authoritative_1700000090.mp3"
	if res.FileName != want {
		t.Errorf("file name = %q, want %q", res.FileName, want)
	}
	if !res.Created.Equal(fixedNow.Add(90 * time.Second)) {
		t.Errorf("created = %v", res.Created)
	}
}
