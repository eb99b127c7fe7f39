package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fastbreakhq/fastbreak/go/internal/dbconfig"
	"github.com/fastbreakhq/fastbreak/go/internal/draft/gateway"
	"github.com/fastbreakhq/fastbreak/go/internal/draft/outbox"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	cfg, err := loadConfig(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	dbCfg := dbconfig.NewConfigFromEnv()
	database, err := setupDatabase(dbCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up database")
	}
	defer database.Close()

	clk := clockwork.NewRealClock()
	services := setupServices(database, clk)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// NATS is optional in development. Without it the outbox relay logs
	// events instead of publishing and the WebSocket gateway is disabled.
	var natsConn *nats.Conn
	var publisher outbox.Publisher = outbox.NewLogPublisher()
	if cfg.NATS.Enabled {
		natsConn, err = nats.Connect(cfg.NATS.URL)
		if err != nil {
			log.Fatal().Err(err).Str("url", cfg.NATS.URL).Msg("failed to connect to NATS")
		}
		defer natsConn.Close()

		jsPublisher, err := outbox.NewJetStreamPublisher(ctx, natsConn)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create JetStream publisher")
		}
		publisher = jsPublisher
	}

	listenerCfg := outbox.DefaultListenerConfig()
	listenerCfg.DatabaseURL = dbCfg.DSN()
	listenerCfg.NotifyChannel = cfg.Outbox.NotifyChannel
	listenerCfg.FallbackInterval = cfg.Outbox.FallbackInterval
	listenerCfg.BatchSize = cfg.Outbox.BatchSize

	listener, err := outbox.NewListener(services.OutboxRepo, publisher, listenerCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create outbox listener")
	}
	go func() {
		if err := listener.Start(ctx); err != nil {
			log.Error().Err(err).Msg("outbox listener stopped")
		}
	}()

	go func() {
		if err := services.Orchestrator.RunScheduler(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("orchestrator stopped")
		}
	}()

	var gw *gateway.Service
	if cfg.Gateway.Enabled && cfg.NATS.Enabled {
		consumerCfg := gateway.DefaultJetStreamConsumerConfig()
		consumerCfg.URL = cfg.NATS.URL
		consumerCfg.ConsumerName = cfg.Gateway.ConsumerName

		gw, err = gateway.NewService(ctx, services.LeagueRepo, services.PickRepo, clk, consumerCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create gateway service")
		}
		if err := gw.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to start gateway service")
		}
		defer gw.Stop()
	}

	health := outbox.NewHealthChecker(database, natsConn)
	server := setupServer(cfg.Server.Addr, services, gw, health)

	go func() {
		log.Info().Str("addr", server.Addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
