package roster

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/fastbreakhq/fastbreak/go/internal/models"
)

// ErrRosterFull indicates a team has no open roster spots left.
var ErrRosterFull = errors.New("no open roster spots")

// RosterRepository defines what the app layer needs from the repository
type RosterRepository interface {
	CountSpots(ctx context.Context, fantasyTeamID uuid.UUID) (int, error)
	EnsureDefaultSpots(ctx context.Context, fantasyTeamID uuid.UUID) (int, error)
	FirstFreeSpot(ctx context.Context, fantasyTeamID uuid.UUID) (*models.RosterSpot, error)
	AssignPlayer(ctx context.Context, spotID, playerID uuid.UUID, assignedAt time.Time) error
	ClearPlayer(ctx context.Context, fantasyTeamID, playerID uuid.UUID) error
	GetSpotsByFantasyTeam(ctx context.Context, fantasyTeamID uuid.UUID) ([]models.RosterSpot, error)
	RosteredPlayers(ctx context.Context, fantasyTeamID uuid.UUID) ([]models.RosteredPlayer, error)
}

// FantasyTeamsRepository defines what the app layer needs from the fantasy teams repository for validation
type FantasyTeamsRepository interface {
	GetFantasyTeam(ctx context.Context, id uuid.UUID) (*models.FantasyTeam, error)
}

// App handles roster business logic
type App struct {
	repo             RosterRepository
	fantasyTeamsRepo FantasyTeamsRepository
}

// NewApp creates a new roster App
func NewApp(repo RosterRepository, fantasyTeamsRepo FantasyTeamsRepository) *App {
	return &App{
		repo:             repo,
		fantasyTeamsRepo: fantasyTeamsRepo,
	}
}

// EnsureDefaultSpots lazily creates the standard 13-spot roster for a team.
func (a *App) EnsureDefaultSpots(ctx context.Context, fantasyTeamID uuid.UUID) error {
	if fantasyTeamID == uuid.Nil {
		return fmt.Errorf("fantasy_team_id is required")
	}

	created, err := a.repo.EnsureDefaultSpots(ctx, fantasyTeamID)
	if err != nil {
		return fmt.Errorf("failed to ensure default roster spots: %w", err)
	}
	if created > 0 {
		log.Printf("Created %d default roster spots for team %s", created, fantasyTeamID)
	}
	return nil
}

// AssignToFirstFreeSpot places a player in the open spot with the lowest
// position order. Returns ErrRosterFull when every spot is filled.
func (a *App) AssignToFirstFreeSpot(ctx context.Context, fantasyTeamID, playerID uuid.UUID, now time.Time) (*models.RosterSpot, error) {
	spot, err := a.repo.FirstFreeSpot(ctx, fantasyTeamID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRosterFull
		}
		return nil, fmt.Errorf("failed to find free roster spot: %w", err)
	}

	if err := a.repo.AssignPlayer(ctx, spot.ID, playerID, now); err != nil {
		return nil, err
	}

	spot.PlayerID = &playerID
	spot.AssignedAt = &now
	return spot, nil
}

// ClearPlayer opens the spot holding playerID on the given team.
func (a *App) ClearPlayer(ctx context.Context, fantasyTeamID, playerID uuid.UUID) error {
	if err := a.repo.ClearPlayer(ctx, fantasyTeamID, playerID); err != nil {
		return err
	}
	log.Printf("Cleared player %s from team %s roster", playerID, fantasyTeamID)
	return nil
}

// GetSpotsByFantasyTeam retrieves all roster spots for a team
func (a *App) GetSpotsByFantasyTeam(ctx context.Context, fantasyTeamID uuid.UUID) ([]models.RosterSpot, error) {
	// Verify fantasy team exists
	_, err := a.fantasyTeamsRepo.GetFantasyTeam(ctx, fantasyTeamID)
	if err != nil {
		return nil, fmt.Errorf("fantasy team not found: %w", err)
	}

	spots, err := a.repo.GetSpotsByFantasyTeam(ctx, fantasyTeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster spots: %w", err)
	}
	return spots, nil
}

// RosteredPlayers retrieves the filled spots joined to player identity
func (a *App) RosteredPlayers(ctx context.Context, fantasyTeamID uuid.UUID) ([]models.RosteredPlayer, error) {
	players, err := a.repo.RosteredPlayers(ctx, fantasyTeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rostered players: %w", err)
	}
	return players, nil
}
