// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/tahcohcat/ttsstudio/config"
	"github.com/tahcohcat/ttsstudio/internal/api"
	"github.com/tahcohcat/ttsstudio/internal/app"
	"github.com/tahcohcat/ttsstudio/internal/auth"
	"github.com/tahcohcat/ttsstudio/internal/logger"
	"github.com/tahcohcat/ttsstudio/internal/studio"
	"github.com/tahcohcat/ttsstudio/internal/web"
	"github.com/tahcohcat/ttsstudio/internal/websocket"
)

func main() {
	log := logger.Named("server")

	// Load config from files, .env and environment variables
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Error("Failed to load config")
		os.Exit(1)
	}

	if err := run(cfg, prometheus.DefaultRegisterer, prometheus.DefaultGatherer, http.ListenAndServe); err != nil {
		log.WithError(err).Error("Server stopped")
		os.Exit(1)
	}
}

// listenFunc serves handler on addr until it fails.
type listenFunc func(addr string, handler http.Handler) error

// run wires the studio into the router and blocks in listen. Everything the
// studio opened is closed before it returns.
func run(cfg *config.Config, reg prometheus.Registerer, gatherer prometheus.Gatherer, listen listenFunc) error {
	log := logger.Named("server")

	hub := websocket.NewHub()
	go hub.Run()

	a, err := app.Build(context.Background(), cfg, reg, studio.WithNotifier(hub))
	if err != nil {
		return fmt.Errorf("failed to initialize studio: %w", err)
	}
	defer a.Close()

	templates, err := web.LoadTemplates(cfg.Server.TemplatesDir)
	if err != nil {
		return err
	}

	timeout := time.Duration(cfg.OpenAI.Timeout) * time.Second

	// a nil *HistoryService must not become a non-nil interface
	var history api.HistoryLister
	if a.History != nil {
		history = a.History
	}

	gate := auth.New(&cfg.Auth, templates.Login)

	r := mux.NewRouter()

	// Public routes (no authentication required)
	r.HandleFunc("/login", gate.LoginHandler).Methods("GET", "POST")
	r.HandleFunc("/logout", gate.LogoutHandler).Methods("POST", "GET")
	r.Handle("/metrics", promhttp.InstrumentMetricHandler(reg, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))).Methods("GET")
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("./web/static/"))))

	// Authenticated routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(gate.Middleware)

	api.RegisterRoutes(authRouter.PathPrefix("/api/v1").Subrouter(), api.NewHandler(a.Studio, history, timeout))
	api.RegisterAudioRoutes(authRouter, api.NewAudioHandler(a.Store))
	websocket.RegisterRoutes(authRouter, hub)
	web.RegisterRoutes(authRouter, web.NewHandler(a.Studio, history, templates, timeout))

	// CORS setup for development
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := cfg.Server.Port
	if port == "" {
		port = "8080"
	}

	log.Info(fmt.Sprintf("🎙️ TTS Studio starting on port %s", port))
	log.Info(fmt.Sprintf("📍 Open http://localhost:%s in your browser", port))
	if gate.Enabled() {
		log.Info("🔒 Password login enabled")
	}

	return listen(":"+port, handler)
}
