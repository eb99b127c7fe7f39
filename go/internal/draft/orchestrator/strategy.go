package orchestrator

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/fastbreakhq/fastbreak/go/internal/player"
)

// AutoPickStrategy chooses the player to draft when a pick is forced.
type AutoPickStrategy interface {
	SelectPlayer(ctx context.Context, leagueID, fantasyTeamID uuid.UUID) (uuid.UUID, error)
}

// BestAvailableStrategy drafts the highest projected undrafted player, with
// player id as the tie break so forced picks are reproducible.
type BestAvailableStrategy struct {
	playerApp *player.App
}

func NewBestAvailableStrategy(playerApp *player.App) *BestAvailableStrategy {
	return &BestAvailableStrategy{playerApp: playerApp}
}

// SelectPlayer implements AutoPickStrategy.
func (s *BestAvailableStrategy) SelectPlayer(ctx context.Context, leagueID, fantasyTeamID uuid.UUID) (uuid.UUID, error) {
	p, err := s.playerApp.BestAvailablePlayer(ctx, leagueID)
	if err != nil {
		return uuid.Nil, err
	}

	log.Info().
		Str("league_id", leagueID.String()).
		Str("team_id", fantasyTeamID.String()).
		Str("player", p.FullName).
		Float64("projected", p.ProjectedFantasyPoints).
		Msg("auto-pick selected best available player")

	return p.ID, nil
}
