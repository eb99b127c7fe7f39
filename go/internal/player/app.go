package player

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fastbreakhq/fastbreak/go/internal/models"
)

// PlayerRepository defines what the app layer needs from the repository
type PlayerRepository interface {
	GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error)
	ListAvailablePlayers(ctx context.Context, leagueID uuid.UUID, limit int) ([]models.Player, error)
}

// App handles player business logic
type App struct {
	repo PlayerRepository
}

// NewApp creates a new player App
func NewApp(repo PlayerRepository) *App {
	return &App{repo: repo}
}

// GetPlayer retrieves a player by ID
func (a *App) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("player id is required")
	}
	return a.repo.GetPlayer(ctx, id)
}

// BestAvailablePlayer returns the undrafted active player with the highest
// projected fantasy points. Returns ErrNoAvailablePlayers when the pool is
// exhausted.
func (a *App) BestAvailablePlayer(ctx context.Context, leagueID uuid.UUID) (*models.Player, error) {
	players, err := a.repo.ListAvailablePlayers(ctx, leagueID, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to list available players: %w", err)
	}
	if len(players) == 0 {
		return nil, ErrNoAvailablePlayers
	}
	return &players[0], nil
}

// ListAvailablePlayers returns up to limit undrafted players, best first.
func (a *App) ListAvailablePlayers(ctx context.Context, leagueID uuid.UUID, limit int) ([]models.Player, error) {
	if limit <= 0 {
		limit = 50
	}
	return a.repo.ListAvailablePlayers(ctx, leagueID, limit)
}
