package commissioner

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastbreakhq/fastbreak/go/internal/draft/pick"
	"github.com/fastbreakhq/fastbreak/go/internal/models"
)

func TestUpdateTimePerPickValidation(t *testing.T) {
	app := &App{}

	for _, seconds := range []int{0, -5} {
		err := app.UpdateTimePerPick(context.Background(), uuid.New(), seconds)
		require.Error(t, err)
		assert.True(t, strings.HasPrefix(err.Error(), "validation failed"))
	}
}

func TestExtendPickTimerValidation(t *testing.T) {
	app := &App{}

	_, err := app.ExtendPickTimer(context.Background(), uuid.New(), 0)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "validation failed"))
}

type fakeLeagueRepo struct {
	league models.League
}

func (f *fakeLeagueRepo) GetLeague(_ context.Context, _ uuid.UUID) (*models.League, error) {
	copied := f.league
	return &copied, nil
}

func (f *fakeLeagueRepo) SetPaused(_ context.Context, _ uuid.UUID, pausedAt time.Time) error {
	f.league.DraftStatus = models.DraftStatusPaused
	f.league.PausedAt = &pausedAt
	return nil
}

func (f *fakeLeagueRepo) SetResumed(_ context.Context, _ uuid.UUID) error {
	f.league.DraftStatus = models.DraftStatusInProgress
	f.league.PausedAt = nil
	return nil
}

func (f *fakeLeagueRepo) UpdateTimePerPick(_ context.Context, _ uuid.UUID, seconds int) error {
	f.league.TimePerPickSec = seconds
	return nil
}

type fakePickRepo struct {
	entry    *models.DraftOrderEntry // the entry on the clock, nil when none
	lastDone *models.DraftOrderEntry
	picks    map[uuid.UUID]*models.DraftPick // keyed by draft order id
	deleted  []uuid.UUID
}

func (f *fakePickRepo) CurrentEntryOnClock(_ context.Context, _ uuid.UUID) (*models.DraftOrderEntry, error) {
	if f.entry == nil {
		return nil, pick.ErrNoActivePick
	}
	copied := *f.entry
	return &copied, nil
}

func (f *fakePickRepo) SetEntryExpiry(_ context.Context, _ uuid.UUID, expiresAt time.Time) error {
	f.entry.TimeExpires = &expiresAt
	return nil
}

func (f *fakePickRepo) ExtendEntryExpiry(_ context.Context, id uuid.UUID, expiresAt time.Time) error {
	if f.entry == nil || f.entry.ID != id {
		return pick.ErrNoActivePick
	}
	f.entry.TimeExpires = &expiresAt
	f.entry.TimeExtensionsUsed++
	return nil
}

func (f *fakePickRepo) LastCompletedEntry(_ context.Context, _ uuid.UUID) (*models.DraftOrderEntry, error) {
	if f.lastDone == nil {
		return nil, pick.ErrNoPickToReverse
	}
	copied := *f.lastDone
	return &copied, nil
}

func (f *fakePickRepo) GetPickByDraftOrderID(_ context.Context, draftOrderID uuid.UUID) (*models.DraftPick, error) {
	p, ok := f.picks[draftOrderID]
	if !ok {
		return nil, pick.ErrNoPickToReverse
	}
	copied := *p
	return &copied, nil
}

func (f *fakePickRepo) DeleteDraftPick(_ context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	for orderID, p := range f.picks {
		if p.ID == id {
			delete(f.picks, orderID)
		}
	}
	return nil
}

func (f *fakePickRepo) ReopenEntry(_ context.Context, id uuid.UUID) error {
	if f.lastDone != nil && f.lastDone.ID == id {
		f.lastDone.IsCompleted = false
		f.entry = f.lastDone
		f.lastDone = nil
	}
	return nil
}

func (f *fakePickRepo) StartEntryClock(_ context.Context, id uuid.UUID, startedAt, expiresAt time.Time) error {
	if f.entry != nil && f.entry.ID == id {
		f.entry.TimeStarted = &startedAt
		f.entry.TimeExpires = &expiresAt
	}
	return nil
}

type fakeRosterRepo struct {
	cleared [][2]uuid.UUID // team, player pairs
}

func (f *fakeRosterRepo) ClearPlayer(_ context.Context, fantasyTeamID, playerID uuid.UUID) error {
	f.cleared = append(f.cleared, [2]uuid.UUID{fantasyTeamID, playerID})
	return nil
}

type fakeOutboxRepo struct {
	events []string
}

func (f *fakeOutboxRepo) InsertEvent(_ context.Context, _ uuid.UUID, eventType string, _ []byte) error {
	f.events = append(f.events, eventType)
	return nil
}

type fakeExecutor struct {
	reasons []string
}

func (f *fakeExecutor) ExecutePickForLeague(_ context.Context, _ uuid.UUID, reason string) error {
	f.reasons = append(f.reasons, reason)
	return nil
}

type commissionerFixture struct {
	app     *App
	clk     *clockwork.FakeClock
	leagues *fakeLeagueRepo
	picks   *fakePickRepo
	rosters *fakeRosterRepo
	outbox  *fakeOutboxRepo
}

func newCommissionerFixture(t *testing.T, lg models.League) *commissionerFixture {
	t.Helper()

	leagues := &fakeLeagueRepo{league: lg}
	picks := &fakePickRepo{picks: make(map[uuid.UUID]*models.DraftPick)}
	rosters := &fakeRosterRepo{}
	ob := &fakeOutboxRepo{}
	clk := clockwork.NewFakeClock()

	app := &App{
		leagueRepo: leagues,
		pickRepo:   picks,
		clk:        clk,
		waker:      noopWaker{},
		inTx: func(ctx context.Context, fn func(txRepos) error) error {
			return fn(txRepos{league: leagues, pick: picks, roster: rosters, outbox: ob})
		},
	}

	return &commissionerFixture{app: app, clk: clk, leagues: leagues, picks: picks, rosters: rosters, outbox: ob}
}

func TestSkipCurrentPickNoActivePick(t *testing.T) {
	fx := newCommissionerFixture(t, models.League{ID: uuid.New()})
	executor := &fakeExecutor{}
	fx.app.AttachExecutor(executor)

	err := fx.app.SkipCurrentPick(context.Background(), fx.leagues.league.ID)
	require.ErrorIs(t, err, pick.ErrNoActivePick)
	assert.Empty(t, executor.reasons)
}

func TestSkipCurrentPickInvokesExecutor(t *testing.T) {
	fx := newCommissionerFixture(t, models.League{ID: uuid.New()})
	fx.picks.entry = &models.DraftOrderEntry{ID: uuid.New(), PickNumber: 3}
	executor := &fakeExecutor{}
	fx.app.AttachExecutor(executor)

	err := fx.app.SkipCurrentPick(context.Background(), fx.leagues.league.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"commissioner manual skip"}, executor.reasons)
}

func TestExtendPickTimerReplacesDeadline(t *testing.T) {
	fx := newCommissionerFixture(t, models.League{
		ID:                  uuid.New(),
		AllowTimeExtensions: true,
	})
	initial := fx.clk.Now().Add(10 * time.Second)
	fx.picks.entry = &models.DraftOrderEntry{ID: uuid.New(), PickNumber: 1, TimeExpires: &initial}

	first, err := fx.app.ExtendPickTimer(context.Background(), fx.leagues.league.ID, 30)
	require.NoError(t, err)
	assert.Equal(t, fx.clk.Now().Add(30*time.Second), *first)
	assert.True(t, first.After(initial))

	// A later extension lands after the earlier one even with a shorter
	// allowance, since the new expiry is anchored at now.
	fx.clk.Advance(25 * time.Second)
	second, err := fx.app.ExtendPickTimer(context.Background(), fx.leagues.league.ID, 20)
	require.NoError(t, err)
	assert.True(t, second.After(*first))
	assert.Equal(t, 2, fx.picks.entry.TimeExtensionsUsed)
}

func TestExtendPickTimerLeagueDisallows(t *testing.T) {
	fx := newCommissionerFixture(t, models.League{ID: uuid.New()})
	fx.picks.entry = &models.DraftOrderEntry{ID: uuid.New(), PickNumber: 1}

	_, err := fx.app.ExtendPickTimer(context.Background(), fx.leagues.league.ID, 30)
	require.ErrorIs(t, err, ErrExtensionsNotAllowed)
}

func TestReversePickRequiresCommissioner(t *testing.T) {
	fx := newCommissionerFixture(t, models.League{
		ID:             uuid.New(),
		CommissionerID: uuid.New(),
	})

	_, err := fx.app.ReversePick(context.Background(), fx.leagues.league.ID, uuid.New())
	require.ErrorIs(t, err, ErrNotAuthorized)
}

func TestReversePickNothingToReverse(t *testing.T) {
	commissionerID := uuid.New()
	fx := newCommissionerFixture(t, models.League{
		ID:             uuid.New(),
		CommissionerID: commissionerID,
	})

	_, err := fx.app.ReversePick(context.Background(), fx.leagues.league.ID, commissionerID)
	require.ErrorIs(t, err, pick.ErrNoPickToReverse)
}

func TestReversePickReopensEntryAndRestartsClock(t *testing.T) {
	commissionerID := uuid.New()
	fx := newCommissionerFixture(t, models.League{
		ID:             uuid.New(),
		CommissionerID: commissionerID,
		TimePerPickSec: 60,
	})

	entry := &models.DraftOrderEntry{ID: uuid.New(), PickNumber: 5, IsCompleted: true}
	committed := &models.DraftPick{
		ID:            uuid.New(),
		DraftOrderID:  entry.ID,
		PickNumber:    5,
		PlayerID:      uuid.New(),
		FantasyTeamID: uuid.New(),
	}
	fx.picks.lastDone = entry
	fx.picks.picks[entry.ID] = committed

	reversed, err := fx.app.ReversePick(context.Background(), fx.leagues.league.ID, commissionerID)
	require.NoError(t, err)
	assert.Equal(t, committed.ID, reversed.ID)

	// Pick row deleted and the roster spot opened back up.
	assert.Equal(t, []uuid.UUID{committed.ID}, fx.picks.deleted)
	require.Len(t, fx.rosters.cleared, 1)
	assert.Equal(t, committed.FantasyTeamID, fx.rosters.cleared[0][0])
	assert.Equal(t, committed.PlayerID, fx.rosters.cleared[0][1])

	// The reopened entry is back on the clock with a full allowance.
	require.NotNil(t, fx.picks.entry)
	assert.Equal(t, entry.ID, fx.picks.entry.ID)
	assert.False(t, fx.picks.entry.IsCompleted)
	require.NotNil(t, fx.picks.entry.TimeExpires)
	assert.Equal(t, fx.clk.Now().Add(60*time.Second), *fx.picks.entry.TimeExpires)

	assert.Equal(t, []string{"PickReversed"}, fx.outbox.events)
}

func TestPauseAndResumeShiftDeadline(t *testing.T) {
	fx := newCommissionerFixture(t, models.League{
		ID:          uuid.New(),
		DraftStatus: models.DraftStatusInProgress,
	})
	expiry := fx.clk.Now().Add(40 * time.Second)
	fx.picks.entry = &models.DraftOrderEntry{ID: uuid.New(), PickNumber: 2, TimeExpires: &expiry}

	require.NoError(t, fx.app.PauseDraft(context.Background(), fx.leagues.league.ID))
	assert.Equal(t, models.DraftStatusPaused, fx.leagues.league.DraftStatus)

	// Pausing again is a no-op.
	require.NoError(t, fx.app.PauseDraft(context.Background(), fx.leagues.league.ID))
	assert.Equal(t, []string{"DraftPaused"}, fx.outbox.events)

	fx.clk.Advance(90 * time.Second)
	require.NoError(t, fx.app.ResumeDraft(context.Background(), fx.leagues.league.ID))
	assert.Equal(t, models.DraftStatusInProgress, fx.leagues.league.DraftStatus)

	// The team keeps the 40 seconds it had when the pause landed.
	require.NotNil(t, fx.picks.entry.TimeExpires)
	assert.Equal(t, fx.clk.Now().Add(40*time.Second), *fx.picks.entry.TimeExpires)
	assert.Equal(t, []string{"DraftPaused", "DraftResumed"}, fx.outbox.events)
}
