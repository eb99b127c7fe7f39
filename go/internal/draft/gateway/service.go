package gateway

import (
	"context"
	"fmt"

	"github.com/go-chi/chi/v5"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/fastbreakhq/fastbreak/go/internal/draft/pick"
	"github.com/fastbreakhq/fastbreak/go/internal/league"
)

// Service bundles the WebSocket fanout, the JetStream consumer feeding it,
// and the HTTP state endpoint.
type Service struct {
	manager      *ConnectionManager
	wsHandler    *WebSocketHandler
	stateHandler *StateHandler
	consumer     *EventConsumer

	cancel context.CancelFunc
}

// NewService wires the gateway components. consumerCfg.URL may point at any
// reachable NATS server carrying the draft events stream.
func NewService(ctx context.Context, leagueRepo *league.Repository, pickRepo *pick.Repository, clk clockwork.Clock, consumerCfg JetStreamConsumerConfig) (*Service, error) {
	manager := NewConnectionManager(DefaultConnectionConfig())

	consumer, err := NewEventConsumer(ctx, manager, consumerCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create event consumer: %w", err)
	}

	provider := NewStateProvider(leagueRepo, pickRepo, clk)

	return &Service{
		manager:      manager,
		wsHandler:    NewWebSocketHandler(manager),
		stateHandler: NewStateHandler(provider),
		consumer:     consumer,
	}, nil
}

// Start launches the broadcast loop and the event consumer.
func (s *Service) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	go s.manager.Start(ctx)

	if err := s.consumer.Start(ctx); err != nil {
		cancel()
		return fmt.Errorf("failed to start event consumer: %w", err)
	}

	log.Info().Msg("gateway service started")
	return nil
}

// Stop shuts down the consumer and broadcast loop.
func (s *Service) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	if s.consumer != nil {
		s.consumer.Stop()
	}
	log.Info().Msg("gateway service stopped")
}

// RegisterRoutes mounts the WebSocket and state endpoints.
func (s *Service) RegisterRoutes(r chi.Router) {
	s.wsHandler.RegisterRoutes(r)
	s.stateHandler.RegisterRoutes(r)
}
