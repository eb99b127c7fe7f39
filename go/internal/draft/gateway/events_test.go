package gateway

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastbreakhq/fastbreak/go/internal/draft/events"
)

func TestEventTypesCoverAllOutboxTypes(t *testing.T) {
	outboxTypes := []string{
		events.TypeDraftStarted,
		events.TypeDraftPaused,
		events.TypeDraftResumed,
		events.TypeDraftCompleted,
		events.TypePickStarted,
		events.TypePickMade,
		events.TypePickReversed,
		events.TypeLineupGenerated,
	}

	for _, name := range outboxTypes {
		_, ok := eventTypes[name]
		assert.True(t, ok, "no WebSocket mapping for outbox type %s", name)
	}
	assert.Len(t, eventTypes, len(outboxTypes))
}

func TestParseEventPayload(t *testing.T) {
	t.Run("pick made", func(t *testing.T) {
		data, err := json.Marshal(events.PickMadePayload{
			PickID:     "p1",
			PlayerName: "Ava Johnson",
			Round:      2,
			PickNumber: 14,
		})
		require.NoError(t, err)

		parsed, err := ParseEventPayload(&DraftEvent{Type: EventTypePickMade, Data: data})
		require.NoError(t, err)

		payload, ok := parsed.(events.PickMadePayload)
		require.True(t, ok)
		assert.Equal(t, "Ava Johnson", payload.PlayerName)
		assert.Equal(t, 14, payload.PickNumber)
	})

	t.Run("unknown type parses to nil", func(t *testing.T) {
		parsed, err := ParseEventPayload(&DraftEvent{Type: "Unknown", Data: []byte(`{}`)})
		require.NoError(t, err)
		assert.Nil(t, parsed)
	})

	t.Run("malformed data errors", func(t *testing.T) {
		_, err := ParseEventPayload(&DraftEvent{Type: EventTypePickStarted, Data: []byte(`{`)})
		assert.Error(t, err)
	})
}
