package lineup

import (
	"log"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/fastbreakhq/fastbreak/go/internal/models"
)

// positionBuckets maps the position tokens carried on player records to the
// court buckets used by lineup slot positions. Multi-position players list
// tokens joined with "-", e.g. "Guard-Forward".
var positionBuckets = map[string]string{
	"Guard":   "G",
	"Forward": "F",
	"Center":  "C",
}

// unitOrder fixes the fill order. Starters claim players before rotation,
// rotation before bench.
var unitOrder = []models.LineupUnit{
	models.LineupUnitStarters,
	models.LineupUnitRotation,
	models.LineupUnitBench,
}

// Slot is one allocated lineup slot before it is stamped with week and team
// identifiers.
type Slot struct {
	Unit          models.LineupUnit
	Position      string
	PositionOrder int
	PlayerID      uuid.UUID
	X             float64
	Y             float64
}

// Allocate greedily fills unit slots from the roster. Units run in fixed
// order, positions within a unit in sorted key order and players sorted by
// id, so the same roster and settings always produce the same assignment.
// UTIL slots take any unused player, and a positional slot with no matching
// player falls back to any unused player. Slots that still cannot be filled
// are skipped.
func Allocate(rosterPlayers []models.RosteredPlayer, settings *models.LeagueSeasonSettings) []Slot {
	players := make([]models.RosteredPlayer, len(rosterPlayers))
	copy(players, rosterPlayers)
	sort.Slice(players, func(i, j int) bool {
		return players[i].PlayerID.String() < players[j].PlayerID.String()
	})

	capacities := map[models.LineupUnit]int{
		models.LineupUnitStarters: settings.StartersCount,
		models.LineupUnitRotation: settings.RotationCount,
		models.LineupUnitBench:    settings.BenchCount,
	}

	used := make(map[uuid.UUID]bool, len(players))
	var slots []Slot

	for _, unit := range unitOrder {
		requirements := settings.PositionUnitAssignments[unit]
		if len(requirements) == 0 {
			continue
		}

		positions := make([]string, 0, len(requirements))
		for pos := range requirements {
			positions = append(positions, pos)
		}
		sort.Strings(positions)

		capacity := capacities[unit]
		unitCount := 0

		for _, pos := range positions {
			required := requirements[pos]
			for i := 0; i < required; i++ {
				if capacity > 0 && unitCount >= capacity {
					log.Printf("Lineup unit %s at capacity %d, skipping remaining %s slots", unit, capacity, pos)
					break
				}

				player, ok := takePlayer(players, used, pos)
				if !ok && pos != "UTIL" {
					// Flex fallback: an open positional slot takes any
					// unused player rather than staying empty.
					player, ok = takePlayer(players, used, "UTIL")
				}
				if !ok {
					log.Printf("No player available for %s slot %s, leaving unfilled", unit, pos)
					continue
				}

				used[player.PlayerID] = true
				slots = append(slots, Slot{
					Unit:          unit,
					Position:      pos,
					PositionOrder: positionIndex(slots, unit, pos) + 1,
					PlayerID:      player.PlayerID,
				})
				unitCount++
			}
		}
	}

	placeOnCourt(slots)
	return slots
}

// takePlayer returns the first unused player eligible for the slot position.
// Position "UTIL" matches anyone.
func takePlayer(players []models.RosteredPlayer, used map[uuid.UUID]bool, pos string) (models.RosteredPlayer, bool) {
	for _, p := range players {
		if used[p.PlayerID] {
			continue
		}
		if pos == "UTIL" || eligible(p.Position, pos) {
			return p, true
		}
	}
	return models.RosteredPlayer{}, false
}

// eligible reports whether a player's listed positions cover the slot bucket.
func eligible(playerPosition, slotPosition string) bool {
	for _, token := range strings.Split(playerPosition, "-") {
		if positionBuckets[strings.TrimSpace(token)] == slotPosition {
			return true
		}
	}
	return false
}

// positionIndex counts slots already allocated in this unit at this position.
func positionIndex(slots []Slot, unit models.LineupUnit, pos string) int {
	n := 0
	for _, s := range slots {
		if s.Unit == unit && s.Position == pos {
			n++
		}
	}
	return n
}

// courtLayout fixes display coordinates per bucket for the common slot
// counts. Coordinates are percentages with the origin top-left, so guards sit
// near the bottom of the court view and forwards near the top.
var courtLayout = map[string][][2]float64{
	"G":    {{25, 80}, {75, 80}},
	"F":    {{25, 20}, {75, 20}},
	"C":    {{50, 30}},
	"UTIL": {{25, 50}, {50, 50}, {75, 50}},
}

// rowY is the fallback row for buckets that overflow the fixed layout.
var rowY = map[string]float64{
	"G":    80,
	"F":    20,
	"C":    30,
	"UTIL": 50,
}

// placeOnCourt stamps court coordinates onto the allocated slots. When a
// position holds more slots than the fixed layout, the row is spread evenly
// at 100/(count+1) intervals.
func placeOnCourt(slots []Slot) {
	counts := make(map[string]int)
	for i := range slots {
		if slots[i].Unit == models.LineupUnitStarters {
			counts[slots[i].Position]++
		}
	}

	seen := make(map[string]int)
	for i := range slots {
		s := &slots[i]
		if s.Unit != models.LineupUnitStarters {
			// Rotation and bench render as lists, not court markers.
			s.X, s.Y = 0, 0
			continue
		}

		idx := seen[s.Position]
		seen[s.Position]++
		total := counts[s.Position]

		layout := courtLayout[s.Position]
		if idx < len(layout) && total <= len(layout) {
			s.X, s.Y = layout[idx][0], layout[idx][1]
			continue
		}

		y, ok := rowY[s.Position]
		if !ok {
			y = 50
		}
		s.X = 100 * float64(idx+1) / float64(total+1)
		s.Y = y
	}
}
