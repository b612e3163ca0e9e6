// Package app wires a Studio from configuration for the server and the CLI.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tahcohcat/ttsstudio/config"
	"github.com/tahcohcat/ttsstudio/internal/database"
	"github.com/tahcohcat/ttsstudio/internal/logger"
	"github.com/tahcohcat/ttsstudio/internal/metrics"
	"github.com/tahcohcat/ttsstudio/internal/services"
	"github.com/tahcohcat/ttsstudio/internal/storage"
	"github.com/tahcohcat/ttsstudio/internal/studio"
	"github.com/tahcohcat/ttsstudio/internal/tts"
)

type App struct {
	Config  *config.Config
	Studio  *studio.Studio
	Store   *storage.FileStore
	History *services.HistoryService // nil when the database is disabled
	Metrics *metrics.Metrics

	closers []io.Closer
}

// Build creates the synthesizer, store, history and metrics described by
// cfg. Extra studio options (a notifier, for instance) are applied last.
func Build(ctx context.Context, cfg *config.Config, reg prometheus.Registerer, opts ...studio.Option) (*App, error) {
	logger.SetGlobalLevel(cfg.Log.Level)
	log := logger.Named("app")

	checkEncoder(cfg.Audio.FFmpegPath, log)

	synth, err := tts.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create synthesizer: %w", err)
	}

	a := &App{
		Config: cfg,
		Store:  storage.NewFileStore(cfg.Output.Dir),
	}
	if c, ok := synth.(io.Closer); ok {
		a.closers = append(a.closers, c)
	}

	studioOpts := []studio.Option{}

	if reg != nil {
		a.Metrics = metrics.NewMetrics(reg)
		studioOpts = append(studioOpts, studio.WithMetrics(a.Metrics))
	}

	if cfg.Database.Enabled {
		db, err := database.NewDB(cfg.Database.Path)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.closers = append(a.closers, db)
		a.History = services.NewHistoryService(db)
		studioOpts = append(studioOpts, studio.WithHistory(a.History))
	}

	a.Studio = studio.New(synth, a.Store, append(studioOpts, opts...)...)

	log.Info(fmt.Sprintf("Synthesizer: %s", synth.Name()))
	log.Info(fmt.Sprintf("Output folder: %s", cfg.Output.Dir))
	return a, nil
}

// checkEncoder only warns: the encoder is handed to audio tooling outside
// the generation path.
func checkEncoder(path string, log *logger.Log) {
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		log.Warn(fmt.Sprintf("FFmpeg not found at %s; set audio.ffmpeg_path", path))
	}
}

func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}
