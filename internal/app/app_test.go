package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tahcohcat/ttsstudio/config"
	"github.com/tahcohcat/ttsstudio/internal/models"
	"github.com/tahcohcat/ttsstudio/internal/studio"
	"github.com/tahcohcat/ttsstudio/internal/tts"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Default()
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	cfg.Output.Dir = filepath.Join(dir, "out")
	cfg.Database.Path = filepath.Join(dir, "history.db")
	cfg.Audio.FFmpegPath = ""
	return cfg
}

func TestBuildWithoutCredentialUsesDummy(t *testing.T) {
	a, err := Build(context.Background(), testConfig(t), prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer a.Close()

	if a.History == nil || a.Metrics == nil {
		t.Fatal("history and metrics should be wired")
	}

	_, err = a.Studio.Generate(context.Background(), "hello", models.DefaultPreferences())
	var genErr *studio.GenerationError
	if !errors.As(err, &genErr) || !errors.Is(err, tts.ErrNotConfigured) {
		t.Errorf("expected wrapped ErrNotConfigured, got %v", err)
	}
}

func TestBuildWithoutDatabase(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.Enabled = false

	a, err := Build(context.Background(), cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	if a.History != nil {
		t.Error("history should be nil when the database is disabled")
	}
}

func TestBuildRejectsUnknownProvider(t *testing.T) {
	cfg := testConfig(t)
	cfg.Tts.Provider = "festival"
	if _, err := Build(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected error")
	}
}
