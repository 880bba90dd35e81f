package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/zatekoja/careassist/internal/application/services"
	"github.com/zatekoja/careassist/internal/console"
	"github.com/zatekoja/careassist/internal/infrastructure/clients/assist"
	"github.com/zatekoja/careassist/internal/infrastructure/observability"
	"github.com/zatekoja/careassist/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	baseURL := flag.String("assist-url", cfg.Assist.BaseURL, "backend assistant base URL")
	patientID := flag.String("patient", cfg.Session.DefaultPatientID, "initial patient id")
	flag.Parse()

	// logs go to stderr so they never interleave with the transcript
	observability.InitLoggerTo(os.Stderr, cfg.App.Name, cfg.App.Env, cfg.App.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	client := assist.NewClient(*baseURL, cfg.Assist.Timeout, metrics)
	session := services.NewSession(uuid.New().String(), client, *patientID)

	if err := console.New(session, os.Stdin, os.Stdout).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("console stopped")
	}
}
