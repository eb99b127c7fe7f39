package events

import (
	"time"
)

// Event type names as written to the outbox and published on NATS subjects
// draft.events.<EventType>.
const (
	TypeDraftStarted    = "DraftStarted"
	TypeDraftPaused     = "DraftPaused"
	TypeDraftResumed    = "DraftResumed"
	TypeDraftCompleted  = "DraftCompleted"
	TypePickStarted     = "PickStarted"
	TypePickMade        = "PickMade"
	TypePickReversed    = "PickReversed"
	TypeLineupGenerated = "LineupGenerated"
)

// Event payload types shared between the draft packages and the gateway

// PickStartedPayload is the payload for a PickStarted event
type PickStartedPayload struct {
	DraftOrderID   string    `json:"draft_order_id"`
	TeamPosition   int       `json:"team_position"`
	Round          int       `json:"round"`
	PickNumber     int       `json:"pick_number"`
	StartedAt      time.Time `json:"started_at"`
	TimeoutAt      time.Time `json:"timeout_at"`
	TimePerPickSec int       `json:"time_per_pick_sec"`
}

// PickMadePayload is the payload for a PickMade event
type PickMadePayload struct {
	PickID         string    `json:"pick_id"`
	DraftOrderID   string    `json:"draft_order_id"`
	FantasyTeamID  string    `json:"fantasy_team_id"`
	PlayerID       string    `json:"player_id"`
	PlayerName     string    `json:"player_name"`
	Round          int       `json:"round"`
	PickNumber     int       `json:"pick_number"`
	IsAutoPick     bool      `json:"is_auto_pick"`
	AutoPickReason string    `json:"auto_pick_reason,omitempty"`
	MadeAt         time.Time `json:"made_at"`
}

// PickReversedPayload is the payload for a PickReversed event
type PickReversedPayload struct {
	PickID        string    `json:"pick_id"`
	DraftOrderID  string    `json:"draft_order_id"`
	FantasyTeamID string    `json:"fantasy_team_id"`
	PlayerID      string    `json:"player_id"`
	PickNumber    int       `json:"pick_number"`
	ReversedBy    string    `json:"reversed_by"`
	ReversedAt    time.Time `json:"reversed_at"`
}

// DraftStartedPayload is the payload for a DraftStarted event
type DraftStartedPayload struct {
	LeagueID   string    `json:"league_id"`
	StartedAt  time.Time `json:"started_at"`
	TotalPicks int       `json:"total_picks"`
}

// DraftCompletedPayload is the payload for a DraftCompleted event
type DraftCompletedPayload struct {
	LeagueID    string    `json:"league_id"`
	CompletedAt time.Time `json:"completed_at"`
	TotalPicks  int       `json:"total_picks"`
}

// DraftPausedPayload is the payload for a DraftPaused event
type DraftPausedPayload struct {
	LeagueID string    `json:"league_id"`
	PausedAt time.Time `json:"paused_at"`
	Reason   string    `json:"reason"`
}

// DraftResumedPayload is the payload for a DraftResumed event
type DraftResumedPayload struct {
	LeagueID  string    `json:"league_id"`
	ResumedAt time.Time `json:"resumed_at"`
}

// LineupGeneratedPayload is the payload for a LineupGenerated event
type LineupGeneratedPayload struct {
	LeagueID            string    `json:"league_id"`
	FantasyTeamID       string    `json:"fantasy_team_id"`
	WeekNumber          int       `json:"week_number"`
	AssignedCount       int       `json:"assigned_count"`
	RemovedInvalidCount int       `json:"removed_invalid_count"`
	GeneratedAt         time.Time `json:"generated_at"`
}
