package models

import (
	"github.com/google/uuid"
)

// LineupUnit identifies which block of the court view an assignment
// belongs to.
type LineupUnit string

const (
	LineupUnitStarters LineupUnit = "STARTERS"
	LineupUnitRotation LineupUnit = "ROTATION"
	LineupUnitBench    LineupUnit = "BENCH"
)

// LineupAssignment places one player in one slot of a weekly lineup. X and Y
// are court coordinates in percent, origin top-left.
type LineupAssignment struct {
	ID            uuid.UUID  `json:"id"`
	LeagueID      uuid.UUID  `json:"league_id"`
	SeasonID      uuid.UUID  `json:"season_id"`
	FantasyTeamID uuid.UUID  `json:"fantasy_team_id"`
	MatchupID     *uuid.UUID `json:"matchup_id,omitempty"`
	WeekNumber    int        `json:"week_number"`
	SeasonYear    int        `json:"season_year"`
	Unit          LineupUnit `json:"unit"`
	Position      string     `json:"position"`
	PositionOrder int        `json:"position_order"`
	PlayerID      uuid.UUID  `json:"player_id"`
	X             float64    `json:"x"`
	Y             float64    `json:"y"`
}
