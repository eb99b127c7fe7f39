package models

import (
	"github.com/google/uuid"
)

// PositionUnitAssignments maps unit -> position -> slot count, e.g.
// {"STARTERS": {"G": 2, "F": 2, "C": 1}}. Stored as JSONB on the settings
// row.
type PositionUnitAssignments map[LineupUnit]map[string]int

// LeagueSeasonSettings holds the per-season lineup configuration for a
// league.
type LeagueSeasonSettings struct {
	ID                      uuid.UUID               `json:"id"`
	LeagueID                uuid.UUID               `json:"league_id"`
	SeasonID                uuid.UUID               `json:"season_id"`
	SeasonYear              int                     `json:"season_year"`
	PositionUnitAssignments PositionUnitAssignments `json:"position_unit_assignments"`
	StartersCount           int                     `json:"starters_count"`
	RotationCount           int                     `json:"rotation_count"`
	BenchCount              int                     `json:"bench_count"`
}
