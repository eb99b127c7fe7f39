package fantasyteam

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/fastbreakhq/fastbreak/go/internal/models"
)

// FantasyTeamRepository defines what the app layer needs from the repository
type FantasyTeamRepository interface {
	GetFantasyTeam(ctx context.Context, id uuid.UUID) (*models.FantasyTeam, error)
	GetTeamByLeagueAndPosition(ctx context.Context, leagueID uuid.UUID, teamPosition int) (*models.FantasyTeam, error)
	ListTeamsByLeague(ctx context.Context, leagueID uuid.UUID) ([]models.FantasyTeam, error)
	SetAutodraftEnabled(ctx context.Context, id uuid.UUID, enabled bool) error
}

// App handles fantasy team business logic
type App struct {
	repo FantasyTeamRepository
}

// NewApp creates a new fantasy team App
func NewApp(repo FantasyTeamRepository) *App {
	return &App{repo: repo}
}

// GetFantasyTeam retrieves a fantasy team by ID
func (a *App) GetFantasyTeam(ctx context.Context, id uuid.UUID) (*models.FantasyTeam, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("fantasy team id is required")
	}
	return a.repo.GetFantasyTeam(ctx, id)
}

// GetTeamByLeagueAndPosition resolves the team owning a draft slot
func (a *App) GetTeamByLeagueAndPosition(ctx context.Context, leagueID uuid.UUID, teamPosition int) (*models.FantasyTeam, error) {
	if leagueID == uuid.Nil {
		return nil, fmt.Errorf("league id is required")
	}
	if teamPosition <= 0 {
		return nil, fmt.Errorf("team position must be positive")
	}
	return a.repo.GetTeamByLeagueAndPosition(ctx, leagueID, teamPosition)
}

// ListTeamsByLeague retrieves all teams in a league ordered by draft position
func (a *App) ListTeamsByLeague(ctx context.Context, leagueID uuid.UUID) ([]models.FantasyTeam, error) {
	return a.repo.ListTeamsByLeague(ctx, leagueID)
}

// EnableAutodraft turns autodraft on for a team that missed its pick.
func (a *App) EnableAutodraft(ctx context.Context, id uuid.UUID) error {
	if err := a.repo.SetAutodraftEnabled(ctx, id, true); err != nil {
		return fmt.Errorf("failed to enable autodraft: %w", err)
	}
	log.Printf("Enabled autodraft for team %s", id)
	return nil
}

// DisableAutodraft turns autodraft back off.
func (a *App) DisableAutodraft(ctx context.Context, id uuid.UUID) error {
	if err := a.repo.SetAutodraftEnabled(ctx, id, false); err != nil {
		return fmt.Errorf("failed to disable autodraft: %w", err)
	}
	log.Printf("Disabled autodraft for team %s", id)
	return nil
}
