package outbox

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventStore struct {
	events      map[uuid.UUID]OutboxEvent
	fetchErr    error
	markedSent  []uuid.UUID
	markSentErr error
}

func newFakeEventStore(events ...OutboxEvent) *fakeEventStore {
	s := &fakeEventStore{events: make(map[uuid.UUID]OutboxEvent)}
	for _, e := range events {
		s.events[e.ID] = e
	}
	return s
}

func (s *fakeEventStore) FetchOutboxByID(_ context.Context, id uuid.UUID) (*OutboxEvent, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	e, ok := s.events[id]
	if !ok {
		return nil, ErrEventNotFound
	}
	return &e, nil
}

func (s *fakeEventStore) FetchUnsentOutbox(_ context.Context, limit int32) ([]OutboxEvent, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	var out []OutboxEvent
	for _, e := range s.events {
		out = append(out, e)
		if int32(len(out)) == limit {
			break
		}
	}
	return out, nil
}

func (s *fakeEventStore) MarkOutboxSent(_ context.Context, id uuid.UUID) error {
	if s.markSentErr != nil {
		return s.markSentErr
	}
	s.markedSent = append(s.markedSent, id)
	return nil
}

type fakePublisher struct {
	published []OutboxEvent
	failFirst int // number of leading calls that fail
	calls     int
}

func (p *fakePublisher) Publish(_ context.Context, event OutboxEvent) error {
	p.calls++
	if p.calls <= p.failFirst {
		return errors.New("nats unavailable")
	}
	p.published = append(p.published, event)
	return nil
}

func testListener(store EventStore, pub Publisher) *Listener {
	cfg := DefaultListenerConfig()
	cfg.MaxRetries = 2
	cfg.RetryDelay = time.Millisecond
	return &Listener{repo: store, publisher: pub, cfg: cfg}
}

func TestHandleNotificationPublishesAndMarksSent(t *testing.T) {
	event := OutboxEvent{
		ID:        uuid.New(),
		LeagueID:  uuid.New(),
		EventType: "PickMade",
		Payload:   []byte(`{"pick_number":1}`),
		CreatedAt: time.Now(),
	}
	store := newFakeEventStore(event)
	pub := &fakePublisher{}
	l := testListener(store, pub)

	err := l.handleNotification(context.Background(), event.ID.String())
	require.NoError(t, err)

	require.Len(t, pub.published, 1)
	assert.Equal(t, event.ID, pub.published[0].ID)
	assert.Equal(t, []uuid.UUID{event.ID}, store.markedSent)
}

func TestHandleNotificationSkipsAlreadySentEvent(t *testing.T) {
	store := newFakeEventStore()
	pub := &fakePublisher{}
	l := testListener(store, pub)

	err := l.handleNotification(context.Background(), uuid.New().String())
	require.NoError(t, err)

	assert.Empty(t, pub.published)
	assert.Empty(t, store.markedSent)
}

func TestHandleNotificationPropagatesFetchError(t *testing.T) {
	store := newFakeEventStore()
	store.fetchErr = errors.New("connection reset by peer")
	pub := &fakePublisher{}
	l := testListener(store, pub)

	err := l.handleNotification(context.Background(), uuid.New().String())
	require.Error(t, err)
	assert.ErrorContains(t, err, "connection reset by peer")
	assert.Empty(t, pub.published)
}

func TestHandleNotificationRejectsBadID(t *testing.T) {
	l := testListener(newFakeEventStore(), &fakePublisher{})

	err := l.handleNotification(context.Background(), "not-a-uuid")
	require.Error(t, err)
}

func TestPublishWithRetryRecovers(t *testing.T) {
	event := OutboxEvent{ID: uuid.New(), EventType: "DraftPaused"}
	pub := &fakePublisher{failFirst: 2}
	l := testListener(newFakeEventStore(), pub)

	err := l.publishWithRetry(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, 3, pub.calls)
	require.Len(t, pub.published, 1)
}

func TestPublishWithRetryExhaustsAttempts(t *testing.T) {
	event := OutboxEvent{ID: uuid.New(), EventType: "DraftPaused"}
	pub := &fakePublisher{failFirst: 10}
	l := testListener(newFakeEventStore(), pub)

	err := l.publishWithRetry(context.Background(), event)
	require.Error(t, err)
	assert.Equal(t, 3, pub.calls)
	assert.Empty(t, pub.published)
}
