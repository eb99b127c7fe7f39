package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastbreakhq/fastbreak/go/internal/models"
)

func TestDefaultSpotLayout(t *testing.T) {
	require.Equal(t, 13, DefaultSpotCount)
	require.Len(t, defaultSpots, DefaultSpotCount)

	wantPositions := []models.SpotPosition{
		models.SpotPositionPG,
		models.SpotPositionSG,
		models.SpotPositionSF,
		models.SpotPositionPF,
		models.SpotPositionC,
		models.SpotPositionG,
		models.SpotPositionF,
		models.SpotPositionUtil,
		models.SpotPositionUtil,
		models.SpotPositionBench,
		models.SpotPositionBench,
		models.SpotPositionBench,
		models.SpotPositionIR,
	}

	for i, spot := range defaultSpots {
		assert.Equal(t, wantPositions[i], spot.position)
		assert.Equal(t, i+1, spot.order)
	}
}
