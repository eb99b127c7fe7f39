package models

import (
	"time"

	"github.com/google/uuid"
)

// DraftPick records a committed selection against a draft order entry.
type DraftPick struct {
	ID             uuid.UUID `json:"id"`
	LeagueID       uuid.UUID `json:"league_id"`
	SeasonID       uuid.UUID `json:"season_id"`
	DraftOrderID   uuid.UUID `json:"draft_order_id"`
	PickNumber     int       `json:"pick_number"`
	Round          int       `json:"round"`
	TeamPosition   int       `json:"team_position"`
	PlayerID       uuid.UUID `json:"player_id"`
	FantasyTeamID  uuid.UUID `json:"fantasy_team_id"`
	IsAutoPick     bool      `json:"is_auto_pick"`
	AutoPickReason *string   `json:"auto_pick_reason,omitempty"`
	PickedAt       time.Time `json:"picked_at"`
}
