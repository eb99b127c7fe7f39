package lineup

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastbreakhq/fastbreak/go/internal/models"
)

func standardSettings() *models.LeagueSeasonSettings {
	return &models.LeagueSeasonSettings{
		StartersCount: 5,
		RotationCount: 3,
		BenchCount:    5,
		PositionUnitAssignments: models.PositionUnitAssignments{
			models.LineupUnitStarters: {"G": 2, "F": 2, "C": 1},
			models.LineupUnitRotation: {"UTIL": 3},
			models.LineupUnitBench:    {"UTIL": 5},
		},
	}
}

func rostered(position string) models.RosteredPlayer {
	return models.RosteredPlayer{
		SpotID:   uuid.New(),
		PlayerID: uuid.New(),
		Position: position,
	}
}

func TestAllocateFillsStartersByBucket(t *testing.T) {
	players := []models.RosteredPlayer{
		rostered("Guard"),
		rostered("Guard"),
		rostered("Forward"),
		rostered("Forward"),
		rostered("Center"),
	}

	slots := Allocate(players, standardSettings())
	require.Len(t, slots, 5)

	byPosition := map[string]int{}
	for _, s := range slots {
		assert.Equal(t, models.LineupUnitStarters, s.Unit)
		byPosition[s.Position]++
	}
	assert.Equal(t, map[string]int{"G": 2, "F": 2, "C": 1}, byPosition)

	// Every player used exactly once.
	seen := map[uuid.UUID]bool{}
	for _, s := range slots {
		assert.False(t, seen[s.PlayerID], "player assigned twice")
		seen[s.PlayerID] = true
	}
}

func TestAllocateIsDeterministic(t *testing.T) {
	players := []models.RosteredPlayer{
		rostered("Guard"),
		rostered("Guard"),
		rostered("Guard"),
		rostered("Forward"),
		rostered("Forward"),
		rostered("Center"),
		rostered("Center"),
		rostered("Forward"),
	}

	first := Allocate(players, standardSettings())

	// Same inputs in a different order produce the same assignment.
	reversed := make([]models.RosteredPlayer, len(players))
	for i, p := range players {
		reversed[len(players)-1-i] = p
	}
	second := Allocate(reversed, standardSettings())

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i], second[i])
	}
}

func TestAllocateMultiPositionEligibility(t *testing.T) {
	guardForward := rostered("Guard-Forward")
	center := rostered("Center")

	settings := &models.LeagueSeasonSettings{
		StartersCount: 2,
		PositionUnitAssignments: models.PositionUnitAssignments{
			models.LineupUnitStarters: {"F": 1, "C": 1},
		},
	}

	slots := Allocate([]models.RosteredPlayer{guardForward, center}, settings)
	require.Len(t, slots, 2)

	byPosition := map[string]uuid.UUID{}
	for _, s := range slots {
		byPosition[s.Position] = s.PlayerID
	}
	assert.Equal(t, guardForward.PlayerID, byPosition["F"])
	assert.Equal(t, center.PlayerID, byPosition["C"])
}

func TestAllocatePositionalFallbackTakesAnyPlayer(t *testing.T) {
	// No center on the roster; the C slot takes an unused guard instead of
	// staying empty.
	players := []models.RosteredPlayer{
		rostered("Guard"),
		rostered("Guard"),
		rostered("Guard"),
	}

	settings := &models.LeagueSeasonSettings{
		StartersCount: 3,
		PositionUnitAssignments: models.PositionUnitAssignments{
			models.LineupUnitStarters: {"G": 2, "C": 1},
		},
	}

	slots := Allocate(players, settings)
	require.Len(t, slots, 3)

	positions := map[string]int{}
	for _, s := range slots {
		positions[s.Position]++
	}
	assert.Equal(t, map[string]int{"G": 2, "C": 1}, positions)
}

func TestAllocateLeavesSlotUnfilledWhenRosterExhausted(t *testing.T) {
	players := []models.RosteredPlayer{
		rostered("Guard"),
	}

	slots := Allocate(players, standardSettings())
	require.Len(t, slots, 1)
	assert.Equal(t, models.LineupUnitStarters, slots[0].Unit)
}

func TestAllocateRespectsUnitCapacity(t *testing.T) {
	players := []models.RosteredPlayer{
		rostered("Guard"),
		rostered("Guard"),
		rostered("Guard"),
		rostered("Guard"),
	}

	settings := &models.LeagueSeasonSettings{
		StartersCount: 2,
		PositionUnitAssignments: models.PositionUnitAssignments{
			models.LineupUnitStarters: {"G": 4},
		},
	}

	slots := Allocate(players, settings)
	assert.Len(t, slots, 2)
}

func TestAllocatePositionOrderIsSequential(t *testing.T) {
	players := []models.RosteredPlayer{
		rostered("Guard"),
		rostered("Guard"),
		rostered("Forward"),
		rostered("Forward"),
		rostered("Center"),
	}

	slots := Allocate(players, standardSettings())
	orders := map[string][]int{}
	for _, s := range slots {
		orders[s.Position] = append(orders[s.Position], s.PositionOrder)
	}
	assert.Equal(t, []int{1, 2}, orders["G"])
	assert.Equal(t, []int{1, 2}, orders["F"])
	assert.Equal(t, []int{1}, orders["C"])
}

func TestAllocateCourtCoordinates(t *testing.T) {
	players := []models.RosteredPlayer{
		rostered("Guard"),
		rostered("Guard"),
		rostered("Forward"),
		rostered("Forward"),
		rostered("Center"),
		rostered("Guard"),
		rostered("Forward"),
		rostered("Center"),
	}

	slots := Allocate(players, standardSettings())

	for _, s := range slots {
		switch s.Unit {
		case models.LineupUnitStarters:
			switch s.Position {
			case "G":
				assert.Equal(t, float64(80), s.Y)
				assert.Contains(t, []float64{25, 75}, s.X)
			case "F":
				assert.Equal(t, float64(20), s.Y)
				assert.Contains(t, []float64{25, 75}, s.X)
			case "C":
				assert.Equal(t, [2]float64{50, 30}, [2]float64{s.X, s.Y})
			}
		default:
			assert.Zero(t, s.X)
			assert.Zero(t, s.Y)
		}
	}
}

func TestAllocateOverflowSpreadsRow(t *testing.T) {
	players := []models.RosteredPlayer{
		rostered("Guard"),
		rostered("Guard"),
		rostered("Guard"),
	}

	settings := &models.LeagueSeasonSettings{
		StartersCount: 3,
		PositionUnitAssignments: models.PositionUnitAssignments{
			models.LineupUnitStarters: {"G": 3},
		},
	}

	slots := Allocate(players, settings)
	require.Len(t, slots, 3)

	// Three guards overflow the two fixed guard markers, so the row is
	// spread at 25/50/75.
	xs := []float64{slots[0].X, slots[1].X, slots[2].X}
	assert.Equal(t, []float64{25, 50, 75}, xs)
	for _, s := range slots {
		assert.Equal(t, float64(80), s.Y)
	}
}
