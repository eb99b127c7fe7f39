package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog/log"

	"github.com/fastbreakhq/fastbreak/go/internal/draft/outbox"
)

// JetStreamConsumerConfig holds configuration for the JetStream consumer
type JetStreamConsumerConfig struct {
	URL           string
	StreamName    string
	ConsumerName  string
	SubjectFilter string
	MaxDeliver    int
	AckWait       time.Duration
	MaxAckPending int
	MaxReconnects int
	ReconnectWait time.Duration
}

// DefaultJetStreamConsumerConfig returns default consumer configuration
func DefaultJetStreamConsumerConfig() JetStreamConsumerConfig {
	return JetStreamConsumerConfig{
		URL:           nats.DefaultURL,
		StreamName:    outbox.StreamName,
		ConsumerName:  "draft-gateway",
		SubjectFilter: outbox.SubjectPrefix + ".>",
		MaxDeliver:    5,
		AckWait:       30 * time.Second,
		MaxAckPending: 100,
		MaxReconnects: -1,
		ReconnectWait: 2 * time.Second,
	}
}

// EventConsumer consumes draft events from JetStream and pushes them to the
// connection manager for fanout.
type EventConsumer struct {
	nc      *nats.Conn
	js      jetstream.JetStream
	manager *ConnectionManager
	config  JetStreamConsumerConfig

	consumeCtx jetstream.ConsumeContext
}

// NewEventConsumer connects to NATS and prepares the durable consumer.
func NewEventConsumer(ctx context.Context, manager *ConnectionManager, config JetStreamConsumerConfig) (*EventConsumer, error) {
	nc, err := nats.Connect(config.URL,
		nats.MaxReconnects(config.MaxReconnects),
		nats.ReconnectWait(config.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Warn().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	c := &EventConsumer{
		nc:      nc,
		js:      js,
		manager: manager,
		config:  config,
	}

	if err := c.ensureConsumer(ctx); err != nil {
		nc.Close()
		return nil, err
	}

	return c, nil
}

func (c *EventConsumer) ensureConsumer(ctx context.Context) error {
	_, err := c.js.CreateOrUpdateConsumer(ctx, c.config.StreamName, jetstream.ConsumerConfig{
		Durable:       c.config.ConsumerName,
		FilterSubject: c.config.SubjectFilter,
		AckPolicy:     jetstream.AckExplicitPolicy,
		DeliverPolicy: jetstream.DeliverNewPolicy,
		MaxDeliver:    c.config.MaxDeliver,
		AckWait:       c.config.AckWait,
		MaxAckPending: c.config.MaxAckPending,
	})
	if err != nil {
		return fmt.Errorf("failed to ensure consumer %s: %w", c.config.ConsumerName, err)
	}
	return nil
}

// Start begins consuming events and broadcasting them to connected clients.
func (c *EventConsumer) Start(ctx context.Context) error {
	consumer, err := c.js.Consumer(ctx, c.config.StreamName, c.config.ConsumerName)
	if err != nil {
		return fmt.Errorf("failed to get consumer: %w", err)
	}

	consumeCtx, err := consumer.Consume(func(msg jetstream.Msg) {
		if err := c.processMessage(msg); err != nil {
			log.Error().Err(err).Str("subject", msg.Subject()).Msg("failed to process message")
			msg.Nak()
			return
		}
		msg.Ack()
	})
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}
	c.consumeCtx = consumeCtx

	log.Info().
		Str("stream", c.config.StreamName).
		Str("consumer", c.config.ConsumerName).
		Str("filter", c.config.SubjectFilter).
		Msg("event consumer started")
	return nil
}

// Stop drains the consumer and closes the NATS connection.
func (c *EventConsumer) Stop() {
	if c.consumeCtx != nil {
		c.consumeCtx.Stop()
	}
	if c.nc != nil {
		c.nc.Close()
	}
	log.Info().Msg("event consumer stopped")
}

func (c *EventConsumer) processMessage(msg jetstream.Msg) error {
	var envelope outbox.Envelope
	if err := json.Unmarshal(msg.Data(), &envelope); err != nil {
		return fmt.Errorf("failed to unmarshal envelope: %w", err)
	}

	eventType, known := eventTypes[envelope.EventType]
	if !known {
		log.Warn().Str("event_type", envelope.EventType).Msg("unknown event type, skipping")
		return nil
	}

	leagueID, err := uuid.Parse(envelope.LeagueID)
	if err != nil {
		return fmt.Errorf("invalid league id in envelope: %w", err)
	}

	timestamp, err := time.Parse(time.RFC3339Nano, envelope.Timestamp)
	if err != nil {
		timestamp = time.Now().UTC()
	}

	event := &DraftEvent{
		ID:        envelope.EventID,
		LeagueID:  envelope.LeagueID,
		Type:      eventType,
		Timestamp: timestamp,
		Data:      envelope.Payload,
	}

	c.manager.BroadcastToLeague(leagueID, event)
	return nil
}
