package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/fastbreakhq/fastbreak/go/internal/draft/clock"
	"github.com/fastbreakhq/fastbreak/go/internal/draft/pick"
	"github.com/fastbreakhq/fastbreak/go/internal/league"
	"github.com/fastbreakhq/fastbreak/go/internal/models"
)

// recentPickLimit caps how many completed picks the state response carries.
const recentPickLimit = 10

// LeagueState is the full draft view a reconnecting client needs before it
// starts applying live events.
type LeagueState struct {
	Clock          clock.Snapshot     `json:"clock"`
	TotalPicks     int                `json:"total_picks"`
	CompletedPicks int                `json:"completed_picks"`
	RecentPicks    []models.DraftPick `json:"recent_picks"`
}

// StateProvider assembles league draft state from the database.
type StateProvider struct {
	leagueRepo *league.Repository
	pickRepo   *pick.Repository
	clock      clockwork.Clock
}

func NewStateProvider(leagueRepo *league.Repository, pickRepo *pick.Repository, clk clockwork.Clock) *StateProvider {
	return &StateProvider{
		leagueRepo: leagueRepo,
		pickRepo:   pickRepo,
		clock:      clk,
	}
}

// GetLeagueState returns the current draft state for a league.
func (p *StateProvider) GetLeagueState(ctx context.Context, leagueID uuid.UUID) (*LeagueState, error) {
	lg, err := p.leagueRepo.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	entry, err := p.pickRepo.CurrentEntryOnClock(ctx, leagueID)
	if err != nil && !errors.Is(err, pick.ErrNoActivePick) {
		return nil, fmt.Errorf("failed to load current pick: %w", err)
	}

	total, err := p.pickRepo.CountOrderEntries(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to count order entries: %w", err)
	}

	remaining, err := p.pickRepo.CountRemaining(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to count remaining picks: %w", err)
	}

	picks, err := p.pickRepo.ListPicksByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list picks: %w", err)
	}
	if len(picks) > recentPickLimit {
		picks = picks[len(picks)-recentPickLimit:]
	}

	return &LeagueState{
		Clock:          clock.BuildSnapshot(p.clock.Now(), lg, entry),
		TotalPicks:     total,
		CompletedPicks: total - remaining,
		RecentPicks:    picks,
	}, nil
}
