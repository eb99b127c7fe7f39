package models

import (
	"time"

	"github.com/google/uuid"
)

type FantasyTeam struct {
	ID               uuid.UUID `json:"id"`
	LeagueID         uuid.UUID `json:"league_id"`
	OwnerID          uuid.UUID `json:"owner_id"`
	TeamName         string    `json:"team_name"`
	TeamPosition     int       `json:"team_position"`
	AutodraftEnabled bool      `json:"autodraft_enabled"`
	CreatedAt        time.Time `json:"created_at"`
}
