package orchestrator

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/fastbreakhq/fastbreak/go/internal/draft/events"
	"github.com/fastbreakhq/fastbreak/go/internal/draft/outbox"
	"github.com/fastbreakhq/fastbreak/go/internal/draft/pick"
	"github.com/fastbreakhq/fastbreak/go/internal/fantasyteam"
	"github.com/fastbreakhq/fastbreak/go/internal/league"
	"github.com/fastbreakhq/fastbreak/go/internal/models"
	"github.com/fastbreakhq/fastbreak/go/internal/player"
	"github.com/fastbreakhq/fastbreak/go/internal/sqlutil"
)

// autodraftPickDelay is the allowance for teams with autodraft enabled. The
// pick still goes through the normal expiry path, just on a short clock.
const autodraftPickDelay = 3 * time.Second

// Orchestrator owns the server side of the pick clock: it sweeps scheduled
// drafts into progress, sleeps until the earliest running expiry and fires
// auto-picks for entries whose clock has elapsed.
type Orchestrator struct {
	db         *sql.DB
	leagueRepo *league.Repository
	pickRepo   *pick.Repository
	outboxRepo *outbox.Repository
	pickApp    *pick.App
	teamApp    *fantasyteam.App
	strat      AutoPickStrategy
	clock      clockwork.Clock
	wakeCh     chan struct{}
	instanceID string

	numWorkers int
	workCh     chan uuid.UUID

	// Track in-flight leagues so a slow commit is not dispatched twice.
	inFlight   map[uuid.UUID]bool
	inFlightMu sync.Mutex
}

// NewOrchestrator creates a new draft orchestrator with a worker pool.
func NewOrchestrator(db *sql.DB, leagueRepo *league.Repository, pickRepo *pick.Repository, outboxRepo *outbox.Repository, pickApp *pick.App, teamApp *fantasyteam.App, strat AutoPickStrategy, clock clockwork.Clock) *Orchestrator {
	numWorkers := 10
	return &Orchestrator{
		db:         db,
		leagueRepo: leagueRepo,
		pickRepo:   pickRepo,
		outboxRepo: outboxRepo,
		pickApp:    pickApp,
		teamApp:    teamApp,
		strat:      strat,
		clock:      clock,
		wakeCh:     make(chan struct{}, 1),
		instanceID: uuid.New().String()[:8],

		numWorkers: numWorkers,
		workCh:     make(chan uuid.UUID, numWorkers*2),
		inFlight:   make(map[uuid.UUID]bool),
	}
}

// Wake nudges the scheduler to re-read the next deadline. Called after any
// mutation that moves a deadline (pause, resume, extend, reverse).
func (o *Orchestrator) Wake() {
	select {
	case o.wakeCh <- struct{}{}:
	default:
	}
}

// ExecutePickForLeague forces the auto-pick path for whatever pick is on the
// clock in the league. This is the timeout handler and also backs the
// commissioner's skip action.
func (o *Orchestrator) ExecutePickForLeague(ctx context.Context, leagueID uuid.UUID, reason string) error {
	lg, err := o.leagueRepo.GetLeague(ctx, leagueID)
	if err != nil {
		return err
	}
	if lg.DraftStatus != models.DraftStatusInProgress {
		log.Debug().
			Str("league_id", leagueID.String()).
			Str("status", string(lg.DraftStatus)).
			Msg("league not in progress, skipping auto-pick")
		return nil
	}

	entry, err := o.pickRepo.CurrentEntryOnClock(ctx, leagueID)
	if err != nil {
		return err
	}

	team, err := o.teamApp.GetTeamByLeagueAndPosition(ctx, leagueID, entry.TeamPosition)
	if err != nil {
		return err
	}

	playerID, err := o.strat.SelectPlayer(ctx, leagueID, team.ID)
	if err != nil {
		if errors.Is(err, player.ErrNoAvailablePlayers) {
			// The entry must still close, or its elapsed deadline would
			// re-fire on every scheduler pass.
			log.Warn().
				Str("league_id", leagueID.String()).
				Int("pick_number", entry.PickNumber).
				Msg("no players left to draft, skipping pick")
			skipReason := "no_eligible_players"
			if err := o.pickRepo.CompleteEntry(ctx, entry.ID, true, &skipReason); err != nil && !errors.Is(err, pick.ErrPickAlreadyMade) {
				return err
			}
			return o.advanceClock(ctx, lg)
		}
		return fmt.Errorf("auto-pick strategy failed: %w", err)
	}

	if reason == "time_expired" && team.AutodraftEnabled {
		reason = "autodraft_enabled"
	}

	_, err = o.pickApp.AutoPick(ctx, pick.AutoPickRequest{
		LeagueID:      leagueID,
		SeasonID:      lg.CurrentSeasonID,
		PlayerID:      playerID,
		FantasyTeamID: team.ID,
		PickNumber:    entry.PickNumber,
		Reason:        reason,
	})
	if err != nil {
		if errors.Is(err, pick.ErrPickAlreadyMade) {
			// Lost the race to a manual pick. Whoever won advanced the clock.
			log.Debug().
				Str("league_id", leagueID.String()).
				Int("pick_number", entry.PickNumber).
				Msg("pick already made, dropping timeout")
			return nil
		}
		return err
	}

	// A team that let the clock run out drafts on the short clock from here
	// on. The commissioner can turn it back off.
	if reason == "time_expired" && !team.AutodraftEnabled {
		if err := o.teamApp.EnableAutodraft(ctx, team.ID); err != nil {
			log.Error().Err(err).Str("team_id", team.ID.String()).Msg("failed to enable autodraft")
		}
	}

	return o.advanceClock(ctx, lg)
}

// advanceClock puts the next pending pick on the clock, or completes the
// draft when none remain. The clock start and the PickStarted event commit
// together.
func (o *Orchestrator) advanceClock(ctx context.Context, lg *models.League) error {
	next, err := o.pickRepo.NextPendingEntry(ctx, lg.ID)
	if err != nil {
		if errors.Is(err, pick.ErrDraftOrderNotFound) {
			return o.finalizeIfComplete(ctx, lg)
		}
		return err
	}

	team, err := o.teamApp.GetTeamByLeagueAndPosition(ctx, lg.ID, next.TeamPosition)
	if err != nil {
		return err
	}

	allowance := time.Duration(lg.TimePerPickSec) * time.Second
	if team.AutodraftEnabled {
		allowance = autodraftPickDelay
	}

	now := o.clock.Now()
	expiry := now.Add(allowance)
	err = sqlutil.RunTx(ctx, o.db, func(tx *sql.Tx) error {
		if err := o.pickRepo.WithTx(tx).StartEntryClock(ctx, next.ID, now, expiry); err != nil {
			return err
		}
		payload, err := json.Marshal(events.PickStartedPayload{
			DraftOrderID:   next.ID.String(),
			TeamPosition:   next.TeamPosition,
			Round:          next.Round,
			PickNumber:     next.PickNumber,
			StartedAt:      now,
			TimeoutAt:      expiry,
			TimePerPickSec: int(allowance / time.Second),
		})
		if err != nil {
			return fmt.Errorf("failed to marshal PickStarted payload: %w", err)
		}
		return o.outboxRepo.WithTx(tx).InsertEvent(ctx, lg.ID, events.TypePickStarted, payload)
	})
	if err != nil {
		return err
	}

	log.Info().
		Str("league_id", lg.ID.String()).
		Int("pick_number", next.PickNumber).
		Time("expires", expiry).
		Msg("pick on the clock")

	o.Wake()
	return nil
}

// finalizeIfComplete marks the league completed once no order entries remain.
func (o *Orchestrator) finalizeIfComplete(ctx context.Context, lg *models.League) error {
	remaining, err := o.pickRepo.CountRemaining(ctx, lg.ID)
	if err != nil {
		return err
	}
	if remaining > 0 {
		return nil
	}

	total, err := o.pickRepo.CountOrderEntries(ctx, lg.ID)
	if err != nil {
		return err
	}

	now := o.clock.Now()
	err = sqlutil.RunTx(ctx, o.db, func(tx *sql.Tx) error {
		if err := o.leagueRepo.WithTx(tx).UpdateDraftStatus(ctx, lg.ID, models.DraftStatusCompleted); err != nil {
			return err
		}
		payload, err := json.Marshal(events.DraftCompletedPayload{
			LeagueID:    lg.ID.String(),
			CompletedAt: now,
			TotalPicks:  total,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal DraftCompleted payload: %w", err)
		}
		return o.outboxRepo.WithTx(tx).InsertEvent(ctx, lg.ID, events.TypeDraftCompleted, payload)
	})
	if err != nil {
		return err
	}

	log.Info().Str("league_id", lg.ID.String()).Int("total_picks", total).Msg("draft completed")
	return nil
}

// startDueDrafts moves scheduled leagues whose draft date has arrived into
// progress and puts their first pick on the clock.
func (o *Orchestrator) startDueDrafts(ctx context.Context) error {
	due, err := o.leagueRepo.ListScheduledLeaguesDue(ctx, o.clock.Now())
	if err != nil {
		return err
	}

	for i := range due {
		lg := &due[i]
		if err := o.startDraft(ctx, lg); err != nil {
			log.Error().Err(err).Str("league_id", lg.ID.String()).Msg("failed to start draft")
		}
	}
	return nil
}

func (o *Orchestrator) startDraft(ctx context.Context, lg *models.League) error {
	total, err := o.pickRepo.CountOrderEntries(ctx, lg.ID)
	if err != nil {
		return err
	}
	if total == 0 {
		log.Warn().Str("league_id", lg.ID.String()).Msg("draft due but no order initialized, skipping")
		return nil
	}

	now := o.clock.Now()
	err = sqlutil.RunTx(ctx, o.db, func(tx *sql.Tx) error {
		if err := o.leagueRepo.WithTx(tx).UpdateDraftStatus(ctx, lg.ID, models.DraftStatusInProgress); err != nil {
			return err
		}
		payload, err := json.Marshal(events.DraftStartedPayload{
			LeagueID:   lg.ID.String(),
			StartedAt:  now,
			TotalPicks: total,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal DraftStarted payload: %w", err)
		}
		return o.outboxRepo.WithTx(tx).InsertEvent(ctx, lg.ID, events.TypeDraftStarted, payload)
	})
	if err != nil {
		return err
	}

	log.Info().Str("league_id", lg.ID.String()).Int("total_picks", total).Msg("draft started")

	lg.DraftStatus = models.DraftStatusInProgress
	return o.advanceClock(ctx, lg)
}
