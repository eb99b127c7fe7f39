package models

import (
	"time"

	"github.com/google/uuid"
)

// Player represents a basketball player in the draft pool. Position is the
// real-world designation ("Guard", "Guard-Forward", "Center", ...), not a
// roster slot.
type Player struct {
	ID                      uuid.UUID `json:"id"`
	FullName                string    `json:"full_name"`
	Position                string    `json:"position"`
	TeamAbbreviation        string    `json:"team_abbreviation"`
	ProjectedFantasyPoints  float64   `json:"projected_fantasy_points"`
	IsActive                bool      `json:"is_active"`
	CreatedAt               time.Time `json:"created_at"`
}
