package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	httpadapter "github.com/couchcryptid/fallout-sim-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/fallout-sim-service/internal/adapter/kafka"
	"github.com/couchcryptid/fallout-sim-service/internal/config"
	"github.com/couchcryptid/fallout-sim-service/internal/observability"
	"github.com/couchcryptid/fallout-sim-service/internal/runner"
	"github.com/couchcryptid/fallout-sim-service/internal/simulation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	sim, err := simulation.New(cfg.ZoneCount)
	if err != nil {
		logger.Error("failed to create simulator", "error", err)
		os.Exit(1)
	}
	sim.SetWind(cfg.WindSpeedMS, cfg.WindDirectionDeg)

	// Snapshot publishing is feature-flagged via KAFKA_ENABLED.
	var publisher runner.Publisher
	var kafkaPublisher *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		kafkaPublisher = kafkaadapter.NewPublisher(cfg, logger)
		publisher = kafkaPublisher
		logger.Info("kafka snapshot publishing enabled",
			"brokers", cfg.KafkaBrokers, "topic", cfg.KafkaSnapshotTopic)
	} else {
		logger.Info("kafka snapshot publishing disabled")
	}

	r := runner.New(sim, clockwork.NewRealClock(), cfg.TickInterval, cfg.TickStepHours, publisher, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, r, r, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start scenario tick loop.
	go func() {
		if err := r.Run(ctx); err != nil {
			logger.Error("runner error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
