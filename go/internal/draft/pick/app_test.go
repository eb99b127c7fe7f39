package pick

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastbreakhq/fastbreak/go/internal/models"
	"github.com/fastbreakhq/fastbreak/go/internal/player"
)

func TestGenerateSnakeOrder(t *testing.T) {
	leagueID := uuid.New()

	t.Run("even rounds reverse", func(t *testing.T) {
		entries := generateSnakeOrder(leagueID, 2, 4)
		require.Len(t, entries, 8)

		wantPositions := []int{1, 2, 3, 4, 4, 3, 2, 1}
		for i, e := range entries {
			assert.Equal(t, leagueID, e.LeagueID)
			assert.Equal(t, i+1, e.PickNumber)
			assert.Equal(t, wantPositions[i], e.TeamPosition)
		}

		assert.Equal(t, 1, entries[0].Round)
		assert.Equal(t, 1, entries[3].Round)
		assert.Equal(t, 2, entries[4].Round)
		assert.Equal(t, 2, entries[7].Round)
	})

	t.Run("odd round count ends forward", func(t *testing.T) {
		entries := generateSnakeOrder(leagueID, 3, 2)
		require.Len(t, entries, 6)
		positions := make([]int, 0, 6)
		for _, e := range entries {
			positions = append(positions, e.TeamPosition)
		}
		assert.Equal(t, []int{1, 2, 2, 1, 1, 2}, positions)
	})

	t.Run("pick numbers are unique and sequential", func(t *testing.T) {
		entries := generateSnakeOrder(leagueID, 13, 10)
		require.Len(t, entries, 130)
		for i, e := range entries {
			assert.Equal(t, i+1, e.PickNumber)
			assert.Equal(t, i/10+1, e.Round)
		}
	})
}

func TestValidateAutoPickRequest(t *testing.T) {
	app := &App{}

	valid := AutoPickRequest{
		LeagueID:      uuid.New(),
		PlayerID:      uuid.New(),
		FantasyTeamID: uuid.New(),
		PickNumber:    1,
	}

	tests := []struct {
		name    string
		mutate  func(*AutoPickRequest)
		wantErr string
	}{
		{
			name:   "valid request",
			mutate: func(r *AutoPickRequest) {},
		},
		{
			name:   "season is optional",
			mutate: func(r *AutoPickRequest) { r.SeasonID = uuid.New() },
		},
		{
			name:    "missing league",
			mutate:  func(r *AutoPickRequest) { r.LeagueID = uuid.Nil },
			wantErr: "league_id is required",
		},
		{
			name:    "missing player",
			mutate:  func(r *AutoPickRequest) { r.PlayerID = uuid.Nil },
			wantErr: "player_id is required",
		},
		{
			name:    "missing fantasy team",
			mutate:  func(r *AutoPickRequest) { r.FantasyTeamID = uuid.Nil },
			wantErr: "fantasy_team_id is required",
		},
		{
			name:    "zero pick number",
			mutate:  func(r *AutoPickRequest) { r.PickNumber = 0 },
			wantErr: "pick_number must be greater than 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			err := app.validateAutoPickRequest(req)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

type fakeOrderRepo struct {
	entries map[int]*models.DraftOrderEntry // keyed by pick number
	picks   []models.DraftPick
}

func (f *fakeOrderRepo) CreateDraftOrderBatch(_ context.Context, entries []models.DraftOrderEntry) error {
	for i := range entries {
		e := entries[i]
		f.entries[e.PickNumber] = &e
	}
	return nil
}

func (f *fakeOrderRepo) CountOrderEntries(_ context.Context, _ uuid.UUID) (int, error) {
	return len(f.entries), nil
}

func (f *fakeOrderRepo) GetEntryByPickNumber(_ context.Context, _ uuid.UUID, pickNumber int) (*models.DraftOrderEntry, error) {
	e, ok := f.entries[pickNumber]
	if !ok {
		return nil, ErrDraftOrderNotFound
	}
	copied := *e
	return &copied, nil
}

func (f *fakeOrderRepo) NextPendingEntry(_ context.Context, _ uuid.UUID) (*models.DraftOrderEntry, error) {
	return nil, ErrDraftOrderNotFound
}

func (f *fakeOrderRepo) CurrentEntryOnClock(_ context.Context, _ uuid.UUID) (*models.DraftOrderEntry, error) {
	return nil, ErrNoActivePick
}

func (f *fakeOrderRepo) CompleteEntry(_ context.Context, id uuid.UUID, isAutoPicked bool, reason *string) error {
	for _, e := range f.entries {
		if e.ID == id {
			if e.IsCompleted {
				return ErrPickAlreadyMade
			}
			e.IsCompleted = true
			e.IsAutoPicked = isAutoPicked
			e.AutoPickReason = reason
			return nil
		}
	}
	return ErrPickAlreadyMade
}

func (f *fakeOrderRepo) reopen(id uuid.UUID) {
	for _, e := range f.entries {
		if e.ID == id {
			e.IsCompleted = false
			e.IsAutoPicked = false
			e.AutoPickReason = nil
		}
	}
}

func (f *fakeOrderRepo) InsertDraftPick(_ context.Context, p models.DraftPick) error {
	f.picks = append(f.picks, p)
	return nil
}

func (f *fakeOrderRepo) CountRemaining(_ context.Context, _ uuid.UUID) (int, error) {
	remaining := 0
	for _, e := range f.entries {
		if !e.IsCompleted {
			remaining++
		}
	}
	return remaining, nil
}

func (f *fakeOrderRepo) ListPicksByLeague(_ context.Context, _ uuid.UUID) ([]models.DraftPick, error) {
	return f.picks, nil
}

type fakeRosterRepo struct {
	spots []models.RosterSpot
}

func (f *fakeRosterRepo) EnsureDefaultSpots(_ context.Context, _ uuid.UUID) (int, error) {
	return 0, nil
}

func (f *fakeRosterRepo) FirstFreeSpot(_ context.Context, _ uuid.UUID) (*models.RosterSpot, error) {
	for i := range f.spots {
		if f.spots[i].PlayerID == nil {
			copied := f.spots[i]
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeRosterRepo) AssignPlayer(_ context.Context, spotID, playerID uuid.UUID, assignedAt time.Time) error {
	for i := range f.spots {
		if f.spots[i].ID == spotID {
			f.spots[i].PlayerID = &playerID
			f.spots[i].AssignedAt = &assignedAt
		}
	}
	return nil
}

type fakePlayerRepo struct {
	players map[uuid.UUID]models.Player
}

func (f *fakePlayerRepo) GetPlayer(_ context.Context, id uuid.UUID) (*models.Player, error) {
	p, ok := f.players[id]
	if !ok {
		return nil, player.ErrPlayerNotFound
	}
	return &p, nil
}

type fakeLeagueRepo struct {
	league models.League
	calls  int
}

func (f *fakeLeagueRepo) GetLeague(_ context.Context, _ uuid.UUID) (*models.League, error) {
	f.calls++
	copied := f.league
	return &copied, nil
}

type fakeOutboxRepo struct {
	events []string
}

func (f *fakeOutboxRepo) InsertEvent(_ context.Context, _ uuid.UUID, eventType string, _ []byte) error {
	f.events = append(f.events, eventType)
	return nil
}

type autoPickFixture struct {
	app     *App
	order   *fakeOrderRepo
	rosters *fakeRosterRepo
	leagues *fakeLeagueRepo
	outbox  *fakeOutboxRepo
	req     AutoPickRequest
}

func newAutoPickFixture(t *testing.T) *autoPickFixture {
	t.Helper()

	leagueID := uuid.New()
	teamID := uuid.New()
	playerID := uuid.New()

	order := &fakeOrderRepo{entries: map[int]*models.DraftOrderEntry{
		1: {ID: uuid.New(), LeagueID: leagueID, Round: 1, PickNumber: 1, TeamPosition: 1},
	}}
	rosters := &fakeRosterRepo{spots: []models.RosterSpot{
		{ID: uuid.New(), FantasyTeamID: teamID, Position: models.SpotPositionPG, PositionOrder: 1},
		{ID: uuid.New(), FantasyTeamID: teamID, Position: models.SpotPositionSG, PositionOrder: 2},
	}}
	players := &fakePlayerRepo{players: map[uuid.UUID]models.Player{
		playerID: {ID: playerID, FullName: "Nikola Jokic", Position: "Center"},
	}}
	leagues := &fakeLeagueRepo{league: models.League{
		ID:              leagueID,
		CurrentSeasonID: uuid.New(),
	}}
	ob := &fakeOutboxRepo{}

	app := &App{
		repo:       order,
		playerRepo: players,
		leagueRepo: leagues,
		clock:      clockwork.NewFakeClock(),
		inTx: func(ctx context.Context, fn func(txRepos) error) error {
			return fn(txRepos{order: order, roster: rosters, outbox: ob})
		},
	}

	return &autoPickFixture{
		app:     app,
		order:   order,
		rosters: rosters,
		leagues: leagues,
		outbox:  ob,
		req: AutoPickRequest{
			LeagueID:      leagueID,
			PlayerID:      playerID,
			FantasyTeamID: teamID,
			PickNumber:    1,
		},
	}
}

func TestAutoPickResolvesSeasonFromLeague(t *testing.T) {
	fx := newAutoPickFixture(t)

	committed, err := fx.app.AutoPick(context.Background(), fx.req)
	require.NoError(t, err)

	assert.Equal(t, fx.leagues.league.CurrentSeasonID, committed.SeasonID)
	assert.Equal(t, 1, fx.leagues.calls)
	assert.Equal(t, []string{"PickMade"}, fx.outbox.events)
}

func TestAutoPickKeepsExplicitSeason(t *testing.T) {
	fx := newAutoPickFixture(t)
	seasonID := uuid.New()
	fx.req.SeasonID = seasonID

	committed, err := fx.app.AutoPick(context.Background(), fx.req)
	require.NoError(t, err)

	assert.Equal(t, seasonID, committed.SeasonID)
	assert.Zero(t, fx.leagues.calls)
}

func TestAutoPickSamePickNumberConflicts(t *testing.T) {
	fx := newAutoPickFixture(t)

	first, err := fx.app.AutoPick(context.Background(), fx.req)
	require.NoError(t, err)
	require.Equal(t, 1, first.PickNumber)

	_, err = fx.app.AutoPick(context.Background(), fx.req)
	require.ErrorIs(t, err, ErrPickAlreadyMade)

	// The conflict leaves exactly one committed pick and one event.
	assert.Len(t, fx.order.picks, 1)
	assert.Equal(t, []string{"PickMade"}, fx.outbox.events)
}

func TestAutoPickSucceedsAfterEntryReopened(t *testing.T) {
	fx := newAutoPickFixture(t)

	first, err := fx.app.AutoPick(context.Background(), fx.req)
	require.NoError(t, err)

	fx.order.reopen(first.DraftOrderID)

	redo, err := fx.app.AutoPick(context.Background(), fx.req)
	require.NoError(t, err)
	assert.Equal(t, first.DraftOrderID, redo.DraftOrderID)
	assert.NotEqual(t, first.ID, redo.ID)
}

func TestAutoPickFillsFirstFreeSpot(t *testing.T) {
	fx := newAutoPickFixture(t)

	_, err := fx.app.AutoPick(context.Background(), fx.req)
	require.NoError(t, err)

	require.NotNil(t, fx.rosters.spots[0].PlayerID)
	assert.Equal(t, fx.req.PlayerID, *fx.rosters.spots[0].PlayerID)
	assert.Nil(t, fx.rosters.spots[1].PlayerID)
}
