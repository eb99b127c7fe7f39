package league

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fastbreakhq/fastbreak/go/internal/models"
)

// LeagueRepository defines what the app layer needs from the repository
type LeagueRepository interface {
	GetLeague(ctx context.Context, id uuid.UUID) (*models.League, error)
	ListScheduledLeaguesDue(ctx context.Context, now time.Time) ([]models.League, error)
	UpdateDraftStatus(ctx context.Context, id uuid.UUID, status models.DraftStatus) error
	UpdateTimePerPick(ctx context.Context, id uuid.UUID, seconds int) error
	GetSeasonSettings(ctx context.Context, leagueID uuid.UUID, seasonYear int) (*models.LeagueSeasonSettings, error)
}

// App handles league business logic
type App struct {
	repo LeagueRepository
}

// NewApp creates a new league App
func NewApp(repo LeagueRepository) *App {
	return &App{repo: repo}
}

// GetLeague retrieves a league by ID
func (a *App) GetLeague(ctx context.Context, id uuid.UUID) (*models.League, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("league id is required")
	}
	return a.repo.GetLeague(ctx, id)
}

// ListScheduledLeaguesDue returns leagues whose scheduled draft should start
func (a *App) ListScheduledLeaguesDue(ctx context.Context, now time.Time) ([]models.League, error) {
	return a.repo.ListScheduledLeaguesDue(ctx, now)
}

// GetSeasonSettings loads the lineup configuration for a league season
func (a *App) GetSeasonSettings(ctx context.Context, leagueID uuid.UUID, seasonYear int) (*models.LeagueSeasonSettings, error) {
	if leagueID == uuid.Nil {
		return nil, fmt.Errorf("league id is required")
	}
	return a.repo.GetSeasonSettings(ctx, leagueID, seasonYear)
}
