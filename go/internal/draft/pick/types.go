package pick

import (
	"github.com/google/uuid"
)

// AutoPickRequest represents a request to commit an automatic pick
type AutoPickRequest struct {
	LeagueID      uuid.UUID `json:"league_id"`
	SeasonID      uuid.UUID `json:"season_id"` // optional, defaults to the league's current season
	PlayerID      uuid.UUID `json:"player_id"`
	FantasyTeamID uuid.UUID `json:"fantasy_team_id"`
	PickNumber    int       `json:"pick_number"`
	Reason        string    `json:"reason,omitempty"`
}

// InitializeDraftOrderRequest represents a request to generate a league's
// snake draft order
type InitializeDraftOrderRequest struct {
	LeagueID uuid.UUID `json:"league_id"`
	Rounds   int       `json:"rounds"`
	NumTeams int       `json:"num_teams"`
}

// DueEntry is an order entry whose clock has expired, joined to the league
// fields the orchestrator needs to dispatch it.
type DueEntry struct {
	EntryID        uuid.UUID `json:"entry_id"`
	LeagueID       uuid.UUID `json:"league_id"`
	PickNumber     int       `json:"pick_number"`
	Round          int       `json:"round"`
	TeamPosition   int       `json:"team_position"`
	TimePerPickSec int       `json:"time_per_pick_sec"`
}
