package models

import (
	"time"

	"github.com/google/uuid"
)

// SpotPosition represents the slot a roster spot fills.
type SpotPosition string

const (
	SpotPositionPG    SpotPosition = "PG"
	SpotPositionSG    SpotPosition = "SG"
	SpotPositionSF    SpotPosition = "SF"
	SpotPositionPF    SpotPosition = "PF"
	SpotPositionC     SpotPosition = "C"
	SpotPositionG     SpotPosition = "G"
	SpotPositionF     SpotPosition = "F"
	SpotPositionUtil  SpotPosition = "UTIL"
	SpotPositionBench SpotPosition = "BENCH"
	SpotPositionIR    SpotPosition = "IR"
)

// RosterSpot is one slot on a fantasy team's roster. PlayerID is nil while
// the slot is open.
type RosterSpot struct {
	ID            uuid.UUID    `json:"id"`
	FantasyTeamID uuid.UUID    `json:"fantasy_team_id"`
	PlayerID      *uuid.UUID   `json:"player_id,omitempty"`
	Position      SpotPosition `json:"position"`
	PositionOrder int          `json:"position_order"`
	AssignedAt    *time.Time   `json:"assigned_at,omitempty"`
}

// RosteredPlayer joins a filled roster spot to the player's identity, used
// by lineup allocation.
type RosteredPlayer struct {
	SpotID       uuid.UUID    `json:"spot_id"`
	PlayerID     uuid.UUID    `json:"player_id"`
	FullName     string       `json:"full_name"`
	Position     string       `json:"position"` // real-world position, e.g. "Guard-Forward"
	SpotPosition SpotPosition `json:"spot_position"`
}
