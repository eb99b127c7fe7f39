package roster

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastbreakhq/fastbreak/go/internal/models"
)

type fakeRosterRepo struct {
	freeSpot     *models.RosterSpot
	freeSpotErr  error
	assigned     []uuid.UUID
	assignErr    error
	ensured      int
	ensureErr    error
	ensuredTeams []uuid.UUID
}

func (f *fakeRosterRepo) CountSpots(ctx context.Context, fantasyTeamID uuid.UUID) (int, error) {
	return 0, nil
}

func (f *fakeRosterRepo) EnsureDefaultSpots(ctx context.Context, fantasyTeamID uuid.UUID) (int, error) {
	f.ensuredTeams = append(f.ensuredTeams, fantasyTeamID)
	return f.ensured, f.ensureErr
}

func (f *fakeRosterRepo) FirstFreeSpot(ctx context.Context, fantasyTeamID uuid.UUID) (*models.RosterSpot, error) {
	if f.freeSpotErr != nil {
		return nil, f.freeSpotErr
	}
	return f.freeSpot, nil
}

func (f *fakeRosterRepo) AssignPlayer(ctx context.Context, spotID, playerID uuid.UUID, assignedAt time.Time) error {
	if f.assignErr != nil {
		return f.assignErr
	}
	f.assigned = append(f.assigned, playerID)
	return nil
}

func (f *fakeRosterRepo) ClearPlayer(ctx context.Context, fantasyTeamID, playerID uuid.UUID) error {
	return nil
}

func (f *fakeRosterRepo) GetSpotsByFantasyTeam(ctx context.Context, fantasyTeamID uuid.UUID) ([]models.RosterSpot, error) {
	return nil, nil
}

func (f *fakeRosterRepo) RosteredPlayers(ctx context.Context, fantasyTeamID uuid.UUID) ([]models.RosteredPlayer, error) {
	return nil, nil
}

type fakeFantasyTeamsRepo struct{}

func (fakeFantasyTeamsRepo) GetFantasyTeam(ctx context.Context, id uuid.UUID) (*models.FantasyTeam, error) {
	return &models.FantasyTeam{ID: id}, nil
}

func TestAssignToFirstFreeSpot(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	teamID := uuid.New()
	playerID := uuid.New()

	t.Run("assigns to the open spot", func(t *testing.T) {
		spotID := uuid.New()
		repo := &fakeRosterRepo{freeSpot: &models.RosterSpot{ID: spotID, FantasyTeamID: teamID}}
		app := NewApp(repo, fakeFantasyTeamsRepo{})

		spot, err := app.AssignToFirstFreeSpot(ctx, teamID, playerID, now)
		require.NoError(t, err)
		assert.Equal(t, spotID, spot.ID)
		require.NotNil(t, spot.PlayerID)
		assert.Equal(t, playerID, *spot.PlayerID)
		require.NotNil(t, spot.AssignedAt)
		assert.Equal(t, now, *spot.AssignedAt)
		assert.Equal(t, []uuid.UUID{playerID}, repo.assigned)
	})

	t.Run("full roster returns ErrRosterFull", func(t *testing.T) {
		repo := &fakeRosterRepo{freeSpotErr: sql.ErrNoRows}
		app := NewApp(repo, fakeFantasyTeamsRepo{})

		_, err := app.AssignToFirstFreeSpot(ctx, teamID, playerID, now)
		assert.ErrorIs(t, err, ErrRosterFull)
	})
}

func TestEnsureDefaultSpots(t *testing.T) {
	ctx := context.Background()

	t.Run("requires a team id", func(t *testing.T) {
		app := NewApp(&fakeRosterRepo{}, fakeFantasyTeamsRepo{})
		assert.Error(t, app.EnsureDefaultSpots(ctx, uuid.Nil))
	})

	t.Run("creates spots once", func(t *testing.T) {
		teamID := uuid.New()
		repo := &fakeRosterRepo{ensured: 13}
		app := NewApp(repo, fakeFantasyTeamsRepo{})

		require.NoError(t, app.EnsureDefaultSpots(ctx, teamID))
		assert.Equal(t, []uuid.UUID{teamID}, repo.ensuredTeams)
	})
}
