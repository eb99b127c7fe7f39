package lineup

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() GenerateLineupRequest {
	week := 5
	return GenerateLineupRequest{
		LeagueID:      uuid.New(),
		SeasonID:      uuid.New(),
		FantasyTeamID: uuid.New(),
		MatchupID:     uuid.New(),
		WeekNumber:    &week,
		SeasonYear:    2025,
	}
}

func TestValidateGenerateRequest(t *testing.T) {
	t.Run("valid request passes", func(t *testing.T) {
		assert.NoError(t, validateGenerateRequest(validRequest()))
	})

	t.Run("week zero is a legal week", func(t *testing.T) {
		req := validRequest()
		week := 0
		req.WeekNumber = &week
		assert.NoError(t, validateGenerateRequest(req))
	})

	t.Run("missing week number", func(t *testing.T) {
		req := validRequest()
		req.WeekNumber = nil
		err := validateGenerateRequest(req)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{"week_number"}, verr.Missing)
	})

	t.Run("all missing reported in field order", func(t *testing.T) {
		err := validateGenerateRequest(GenerateLineupRequest{})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{
			"league_id",
			"season_id",
			"fantasy_team_id",
			"matchup_id",
			"week_number",
			"season_year",
		}, verr.Missing)
	})

	t.Run("error message names missing fields", func(t *testing.T) {
		req := validRequest()
		req.MatchupID = uuid.Nil
		err := validateGenerateRequest(req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
		assert.Contains(t, err.Error(), "matchup_id")
	})
}
