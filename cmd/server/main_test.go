package main

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tahcohcat/ttsstudio/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Default()
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	cfg.Tts.Provider = "dummy"
	cfg.Server.TemplatesDir = "../../web/templates"
	cfg.Output.Dir = filepath.Join(dir, "out")
	cfg.Database.Path = filepath.Join(dir, "history.db")
	cfg.Audio.FFmpegPath = ""
	return cfg
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestRunServesRoutesAndClosesOnListenError(t *testing.T) {
	reg := prometheus.NewRegistry()
	listenErr := errors.New("address already in use")

	var served http.Handler
	err := run(testConfig(t), reg, reg, func(addr string, h http.Handler) error {
		if addr != ":8080" {
			t.Errorf("addr = %q", addr)
		}
		served = h

		if rec := get(h, "/api/v1/health"); rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"generations":0`) {
			t.Errorf("health: %d %s", rec.Code, rec.Body.String())
		}
		if rec := get(h, "/"); rec.Code != http.StatusOK {
			t.Errorf("form: %d", rec.Code)
		}
		if rec := get(h, "/metrics"); rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "promhttp_metric_handler_requests_total") {
			t.Errorf("metrics: %d", rec.Code)
		}
		return listenErr
	})
	if !errors.Is(err, listenErr) {
		t.Fatalf("run = %v, want listen error", err)
	}

	// the history database is closed once run returns
	if rec := get(served, "/api/v1/health"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("health after shutdown: %d %s", rec.Code, rec.Body.String())
	}
}

func TestRunFailsOnMissingTemplates(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.TemplatesDir = filepath.Join(t.TempDir(), "nope")

	reg := prometheus.NewRegistry()
	err := run(cfg, reg, reg, func(string, http.Handler) error {
		t.Fatal("listen should not be reached")
		return nil
	})
	if err == nil || !strings.Contains(err.Error(), "template") {
		t.Fatalf("run = %v", err)
	}
}
