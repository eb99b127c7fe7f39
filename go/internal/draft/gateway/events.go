package gateway

import (
	"encoding/json"
	"time"

	"github.com/fastbreakhq/fastbreak/go/internal/draft/events"
)

// DraftEvent is the message pushed to WebSocket clients.
type DraftEvent struct {
	ID        string          `json:"id"`
	LeagueID  string          `json:"league_id"`
	Type      EventType       `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// EventType represents the type of draft event
type EventType string

const (
	EventTypePickStarted     EventType = "PickStarted"
	EventTypePickMade        EventType = "PickMade"
	EventTypePickReversed    EventType = "PickReversed"
	EventTypeDraftStarted    EventType = "DraftStarted"
	EventTypeDraftPaused     EventType = "DraftPaused"
	EventTypeDraftResumed    EventType = "DraftResumed"
	EventTypeDraftCompleted  EventType = "DraftCompleted"
	EventTypeLineupGenerated EventType = "LineupGenerated"
)

// eventTypes maps the outbox event type names onto WebSocket event types.
var eventTypes = map[string]EventType{
	events.TypePickStarted:     EventTypePickStarted,
	events.TypePickMade:        EventTypePickMade,
	events.TypePickReversed:    EventTypePickReversed,
	events.TypeDraftStarted:    EventTypeDraftStarted,
	events.TypeDraftPaused:     EventTypeDraftPaused,
	events.TypeDraftResumed:    EventTypeDraftResumed,
	events.TypeDraftCompleted:  EventTypeDraftCompleted,
	events.TypeLineupGenerated: EventTypeLineupGenerated,
}

// ParseEventPayload parses event data into the appropriate payload struct.
func ParseEventPayload(event *DraftEvent) (any, error) {
	switch event.Type {
	case EventTypePickStarted:
		var payload events.PickStartedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventTypePickMade:
		var payload events.PickMadePayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventTypePickReversed:
		var payload events.PickReversedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventTypeDraftStarted:
		var payload events.DraftStartedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventTypeDraftPaused:
		var payload events.DraftPausedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventTypeDraftResumed:
		var payload events.DraftResumedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventTypeDraftCompleted:
		var payload events.DraftCompletedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventTypeLineupGenerated:
		var payload events.LineupGeneratedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	default:
		return nil, nil
	}
}
