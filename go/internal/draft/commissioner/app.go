package commissioner

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/fastbreakhq/fastbreak/go/internal/draft/clock"
	"github.com/fastbreakhq/fastbreak/go/internal/draft/events"
	"github.com/fastbreakhq/fastbreak/go/internal/draft/outbox"
	"github.com/fastbreakhq/fastbreak/go/internal/draft/pick"
	"github.com/fastbreakhq/fastbreak/go/internal/league"
	"github.com/fastbreakhq/fastbreak/go/internal/models"
	"github.com/fastbreakhq/fastbreak/go/internal/roster"
	"github.com/fastbreakhq/fastbreak/go/internal/sqlutil"
)

// AutoPickExecutor forces the timeout path for the pick on the clock.
// Implemented by the orchestrator handler.
type AutoPickExecutor interface {
	ExecutePickForLeague(ctx context.Context, leagueID uuid.UUID, reason string) error
}

// Waker nudges the orchestrator scheduler after a deadline changes.
type Waker interface {
	Wake()
}

// noopWaker is used until the orchestrator is attached.
type noopWaker struct{}

func (noopWaker) Wake() {}

// LeagueRepository defines what the app layer needs from the league repository
type LeagueRepository interface {
	GetLeague(ctx context.Context, id uuid.UUID) (*models.League, error)
	SetPaused(ctx context.Context, id uuid.UUID, pausedAt time.Time) error
	SetResumed(ctx context.Context, id uuid.UUID) error
	UpdateTimePerPick(ctx context.Context, id uuid.UUID, seconds int) error
}

// PickRepository defines what the app layer needs from the pick repository
type PickRepository interface {
	CurrentEntryOnClock(ctx context.Context, leagueID uuid.UUID) (*models.DraftOrderEntry, error)
	SetEntryExpiry(ctx context.Context, id uuid.UUID, expiresAt time.Time) error
	ExtendEntryExpiry(ctx context.Context, id uuid.UUID, expiresAt time.Time) error
	LastCompletedEntry(ctx context.Context, leagueID uuid.UUID) (*models.DraftOrderEntry, error)
	GetPickByDraftOrderID(ctx context.Context, draftOrderID uuid.UUID) (*models.DraftPick, error)
	DeleteDraftPick(ctx context.Context, id uuid.UUID) error
	ReopenEntry(ctx context.Context, id uuid.UUID) error
	StartEntryClock(ctx context.Context, id uuid.UUID, startedAt, expiresAt time.Time) error
}

// RosterRepository defines what the reverse path needs from the roster repository
type RosterRepository interface {
	ClearPlayer(ctx context.Context, fantasyTeamID, playerID uuid.UUID) error
}

// OutboxRepository defines what the app layer needs from the outbox repository
type OutboxRepository interface {
	InsertEvent(ctx context.Context, leagueID uuid.UUID, eventType string, payload []byte) error
}

// txRepos bundles the transaction-bound repositories the pause, resume and
// reverse paths write through.
type txRepos struct {
	league LeagueRepository
	pick   PickRepository
	roster RosterRepository
	outbox OutboxRepository
}

// App handles commissioner control actions over a league draft.
type App struct {
	leagueRepo LeagueRepository
	pickRepo   PickRepository
	clk        clockwork.Clock
	executor   AutoPickExecutor
	waker      Waker
	inTx       func(ctx context.Context, fn func(txRepos) error) error
}

// NewApp creates a new commissioner App
func NewApp(db *sql.DB, leagueRepo *league.Repository, pickRepo *pick.Repository, rosterRepo *roster.Repository, outboxRepo *outbox.Repository, clk clockwork.Clock) *App {
	return &App{
		leagueRepo: leagueRepo,
		pickRepo:   pickRepo,
		clk:        clk,
		waker:      noopWaker{},
		inTx: func(ctx context.Context, fn func(txRepos) error) error {
			return sqlutil.RunTx(ctx, db, func(tx *sql.Tx) error {
				return fn(txRepos{
					league: leagueRepo.WithTx(tx),
					pick:   pickRepo.WithTx(tx),
					roster: rosterRepo.WithTx(tx),
					outbox: outboxRepo.WithTx(tx),
				})
			})
		},
	}
}

// AttachExecutor wires the auto-pick executor used by SkipCurrentPick.
func (a *App) AttachExecutor(executor AutoPickExecutor) {
	a.executor = executor
}

// AttachWaker wires the scheduler wake hook.
func (a *App) AttachWaker(waker Waker) {
	a.waker = waker
}

// PauseDraft stops the pick clock and suspends auto-picks. Pausing an
// already paused draft is a no-op.
func (a *App) PauseDraft(ctx context.Context, leagueID uuid.UUID) error {
	lg, err := a.leagueRepo.GetLeague(ctx, leagueID)
	if err != nil {
		return err
	}
	if lg.DraftStatus == models.DraftStatusPaused {
		return nil
	}
	if lg.DraftStatus != models.DraftStatusInProgress {
		return fmt.Errorf("cannot pause draft with status %s", lg.DraftStatus)
	}

	now := a.clk.Now()
	err = a.inTx(ctx, func(repos txRepos) error {
		if err := repos.league.SetPaused(ctx, leagueID, now); err != nil {
			return err
		}
		payload, err := json.Marshal(events.DraftPausedPayload{
			LeagueID: leagueID.String(),
			PausedAt: now,
			Reason:   "commissioner_pause",
		})
		if err != nil {
			return fmt.Errorf("failed to marshal DraftPaused payload: %w", err)
		}
		return repos.outbox.InsertEvent(ctx, leagueID, events.TypeDraftPaused, payload)
	})
	if err != nil {
		return err
	}

	a.waker.Wake()
	log.Printf("Paused draft for league %s", leagueID)
	return nil
}

// ResumeDraft restarts the clock where it left off: the current pick's
// expiry is shifted forward by the paused duration so the team keeps the
// time it had. Resuming a draft that is not paused is a no-op.
func (a *App) ResumeDraft(ctx context.Context, leagueID uuid.UUID) error {
	lg, err := a.leagueRepo.GetLeague(ctx, leagueID)
	if err != nil {
		return err
	}
	if lg.DraftStatus != models.DraftStatusPaused {
		return nil
	}

	now := a.clk.Now()
	err = a.inTx(ctx, func(repos txRepos) error {
		entry, err := repos.pick.CurrentEntryOnClock(ctx, leagueID)
		if err == nil && entry.TimeExpires != nil && lg.PausedAt != nil {
			shifted := clock.ShiftedExpiry(*entry.TimeExpires, *lg.PausedAt, now)
			if err := repos.pick.SetEntryExpiry(ctx, entry.ID, shifted); err != nil {
				return err
			}
		} else if err != nil && !errors.Is(err, pick.ErrNoActivePick) {
			return err
		}

		if err := repos.league.SetResumed(ctx, leagueID); err != nil {
			return err
		}

		payload, err := json.Marshal(events.DraftResumedPayload{
			LeagueID:  leagueID.String(),
			ResumedAt: now,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal DraftResumed payload: %w", err)
		}
		return repos.outbox.InsertEvent(ctx, leagueID, events.TypeDraftResumed, payload)
	})
	if err != nil {
		return err
	}

	// A deadline that elapsed during the pause fires as soon as the
	// scheduler wakes.
	a.waker.Wake()
	log.Printf("Resumed draft for league %s", leagueID)
	return nil
}

// UpdateTimePerPick changes the per-pick allowance for future picks only.
// The pick currently on the clock keeps its deadline.
func (a *App) UpdateTimePerPick(ctx context.Context, leagueID uuid.UUID, seconds int) error {
	if seconds <= 0 {
		return fmt.Errorf("validation failed: time per pick must be greater than 0")
	}
	if _, err := a.leagueRepo.GetLeague(ctx, leagueID); err != nil {
		return err
	}
	if err := a.leagueRepo.UpdateTimePerPick(ctx, leagueID, seconds); err != nil {
		return err
	}
	log.Printf("Updated time per pick for league %s to %ds", leagueID, seconds)
	return nil
}

// ExtendPickTimer gives the team on the clock more time. The new expiry is
// now + seconds, replacing the old deadline rather than adding to it.
func (a *App) ExtendPickTimer(ctx context.Context, leagueID uuid.UUID, seconds int) (*time.Time, error) {
	if seconds <= 0 {
		return nil, fmt.Errorf("validation failed: additional seconds must be greater than 0")
	}
	lg, err := a.leagueRepo.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if !lg.AllowTimeExtensions {
		return nil, ErrExtensionsNotAllowed
	}

	entry, err := a.pickRepo.CurrentEntryOnClock(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	newExpiry := a.clk.Now().Add(time.Duration(seconds) * time.Second)
	if err := a.pickRepo.ExtendEntryExpiry(ctx, entry.ID, newExpiry); err != nil {
		return nil, err
	}

	a.waker.Wake()
	log.Printf("Extended pick %d for league %s until %s", entry.PickNumber, leagueID, newExpiry)
	return &newExpiry, nil
}

// SkipCurrentPick forces the auto-pick path for the pick on the clock.
func (a *App) SkipCurrentPick(ctx context.Context, leagueID uuid.UUID) error {
	if _, err := a.pickRepo.CurrentEntryOnClock(ctx, leagueID); err != nil {
		return err
	}
	if a.executor == nil {
		return fmt.Errorf("auto-pick executor not attached")
	}
	if err := a.executor.ExecutePickForLeague(ctx, leagueID, "commissioner manual skip"); err != nil {
		return fmt.Errorf("failed to skip current pick: %w", err)
	}
	log.Printf("Commissioner skipped current pick for league %s", leagueID)
	return nil
}

// ReversePick undoes the most recent committed pick: the draft pick row is
// deleted, the roster spot reopened and the order entry put back on the
// clock, all in one transaction.
func (a *App) ReversePick(ctx context.Context, leagueID, requestedBy uuid.UUID) (*models.DraftPick, error) {
	lg, err := a.leagueRepo.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if lg.CommissionerID != requestedBy {
		return nil, ErrNotAuthorized
	}

	now := a.clk.Now()
	var reversed *models.DraftPick
	err = a.inTx(ctx, func(repos txRepos) error {
		entry, err := repos.pick.LastCompletedEntry(ctx, leagueID)
		if err != nil {
			return err
		}
		p, err := repos.pick.GetPickByDraftOrderID(ctx, entry.ID)
		if err != nil {
			return err
		}

		if err := repos.pick.DeleteDraftPick(ctx, p.ID); err != nil {
			return err
		}
		if err := repos.roster.ClearPlayer(ctx, p.FantasyTeamID, p.PlayerID); err != nil {
			return err
		}
		if err := repos.pick.ReopenEntry(ctx, entry.ID); err != nil {
			return err
		}

		// The reopened pick goes straight back on the clock with a full
		// allowance.
		expiry := now.Add(time.Duration(lg.TimePerPickSec) * time.Second)
		if err := repos.pick.StartEntryClock(ctx, entry.ID, now, expiry); err != nil {
			return err
		}

		payload, err := json.Marshal(events.PickReversedPayload{
			PickID:        p.ID.String(),
			DraftOrderID:  entry.ID.String(),
			FantasyTeamID: p.FantasyTeamID.String(),
			PlayerID:      p.PlayerID.String(),
			PickNumber:    p.PickNumber,
			ReversedBy:    requestedBy.String(),
			ReversedAt:    now,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal PickReversed payload: %w", err)
		}
		if err := repos.outbox.InsertEvent(ctx, leagueID, events.TypePickReversed, payload); err != nil {
			return err
		}

		reversed = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	a.waker.Wake()
	log.Printf("Reversed pick %d for league %s", reversed.PickNumber, leagueID)
	return reversed, nil
}

// ClockSnapshot returns the derived clock view for a league.
func (a *App) ClockSnapshot(ctx context.Context, leagueID uuid.UUID) (*clock.Snapshot, error) {
	lg, err := a.leagueRepo.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	entry, err := a.pickRepo.CurrentEntryOnClock(ctx, leagueID)
	if err != nil && !errors.Is(err, pick.ErrNoActivePick) {
		return nil, err
	}

	snap := clock.BuildSnapshot(a.clk.Now(), lg, entry)
	return &snap, nil
}
