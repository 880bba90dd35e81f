package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/careassist/internal/api/handlers"
	"github.com/zatekoja/careassist/internal/api/routes"
	"github.com/zatekoja/careassist/internal/application/services"
	"github.com/zatekoja/careassist/internal/infrastructure/clients/assist"
	"github.com/zatekoja/careassist/internal/infrastructure/observability"
	"github.com/zatekoja/careassist/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger(cfg.App.Name, cfg.App.Env, cfg.App.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	assistClient := assist.NewClient(cfg.Assist.BaseURL, cfg.Assist.Timeout, metrics)
	registry := services.NewSessionRegistry(assistClient, cfg.Session.DefaultPatientID)

	router := routes.NewRouter(
		handlers.NewSessionHandler(registry),
		cfg.Server.AllowedOrigins,
		metrics,
	)

	server := &http.Server{
		Addr:        cfg.Server.ServerAddr(),
		Handler:     router.SetupRoutes(),
		ReadTimeout: 15 * time.Second,
		// exchanges are bounded only by ASSIST_TIMEOUT
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", server.Addr).
			Str("assist_base_url", cfg.Assist.BaseURL).
			Msg("session gateway starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Int("sessions", registry.Len()).Msg("server stopped")
}
