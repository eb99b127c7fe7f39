package pick

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

	"github.com/fastbreakhq/fastbreak/go/internal/draft/events"
	"github.com/fastbreakhq/fastbreak/go/internal/draft/outbox"
	"github.com/fastbreakhq/fastbreak/go/internal/league"
	"github.com/fastbreakhq/fastbreak/go/internal/models"
	"github.com/fastbreakhq/fastbreak/go/internal/player"
	"github.com/fastbreakhq/fastbreak/go/internal/roster"
	"github.com/fastbreakhq/fastbreak/go/internal/sqlutil"
)

// OrderRepository defines what the app layer needs from the pick repository
type OrderRepository interface {
	CreateDraftOrderBatch(ctx context.Context, entries []models.DraftOrderEntry) error
	CountOrderEntries(ctx context.Context, leagueID uuid.UUID) (int, error)
	GetEntryByPickNumber(ctx context.Context, leagueID uuid.UUID, pickNumber int) (*models.DraftOrderEntry, error)
	NextPendingEntry(ctx context.Context, leagueID uuid.UUID) (*models.DraftOrderEntry, error)
	CurrentEntryOnClock(ctx context.Context, leagueID uuid.UUID) (*models.DraftOrderEntry, error)
	CompleteEntry(ctx context.Context, id uuid.UUID, isAutoPicked bool, reason *string) error
	InsertDraftPick(ctx context.Context, p models.DraftPick) error
	CountRemaining(ctx context.Context, leagueID uuid.UUID) (int, error)
	ListPicksByLeague(ctx context.Context, leagueID uuid.UUID) ([]models.DraftPick, error)
}

// RosterRepository defines what the auto-pick commit needs from the roster repository
type RosterRepository interface {
	EnsureDefaultSpots(ctx context.Context, fantasyTeamID uuid.UUID) (int, error)
	FirstFreeSpot(ctx context.Context, fantasyTeamID uuid.UUID) (*models.RosterSpot, error)
	AssignPlayer(ctx context.Context, spotID, playerID uuid.UUID, assignedAt time.Time) error
}

// PlayerRepository defines what the app layer needs from the player repository
type PlayerRepository interface {
	GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error)
}

// LeagueRepository defines what the app layer needs from the league repository
type LeagueRepository interface {
	GetLeague(ctx context.Context, id uuid.UUID) (*models.League, error)
}

// OutboxRepository defines what the app layer needs from the outbox repository
type OutboxRepository interface {
	InsertEvent(ctx context.Context, leagueID uuid.UUID, eventType string, payload []byte) error
}

// txRepos bundles the transaction-bound repositories an auto-pick commit
// writes through.
type txRepos struct {
	order  OrderRepository
	roster RosterRepository
	outbox OutboxRepository
}

// App handles pick business logic. Auto-pick commits run as one transaction
// across the draft order, draft picks, roster spots and outbox tables.
type App struct {
	repo       OrderRepository
	playerRepo PlayerRepository
	leagueRepo LeagueRepository
	clock      clockwork.Clock
	inTx       func(ctx context.Context, fn func(txRepos) error) error
}

// NewApp creates a new pick App
func NewApp(db *sql.DB, repo *Repository, rosterRepo *roster.Repository, playerRepo *player.Repository, leagueRepo *league.Repository, outboxRepo *outbox.Repository, clock clockwork.Clock) *App {
	return &App{
		repo:       repo,
		playerRepo: playerRepo,
		leagueRepo: leagueRepo,
		clock:      clock,
		inTx: func(ctx context.Context, fn func(txRepos) error) error {
			return sqlutil.RunTx(ctx, db, func(tx *sql.Tx) error {
				return fn(txRepos{
					order:  repo.WithTx(tx),
					roster: rosterRepo.WithTx(tx),
					outbox: outboxRepo.WithTx(tx),
				})
			})
		},
	}
}

// AutoPick commits an automatic pick: claims the order entry, records the
// pick, places the player on the first open roster spot and enqueues the
// PickMade event. All steps share one transaction, so a failed step leaves
// no partial state, and the conditional claim means a concurrent manual
// pick surfaces as ErrPickAlreadyMade instead of a double commit.
// The season defaults to the league's current season when the request
// leaves it unset.
func (a *App) AutoPick(ctx context.Context, req AutoPickRequest) (*models.DraftPick, error) {
	if err := a.validateAutoPickRequest(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	p, err := a.playerRepo.GetPlayer(ctx, req.PlayerID)
	if err != nil {
		return nil, err
	}

	seasonID := req.SeasonID
	if seasonID == uuid.Nil {
		lg, err := a.leagueRepo.GetLeague(ctx, req.LeagueID)
		if err != nil {
			return nil, err
		}
		seasonID = lg.CurrentSeasonID
	}

	reason := req.Reason
	if reason == "" {
		reason = "time_expired"
	}
	now := a.clock.Now()

	var committed models.DraftPick
	err = a.inTx(ctx, func(repos txRepos) error {
		entry, err := repos.order.GetEntryByPickNumber(ctx, req.LeagueID, req.PickNumber)
		if err != nil {
			return err
		}

		if err := repos.order.CompleteEntry(ctx, entry.ID, true, &reason); err != nil {
			return err
		}

		committed = models.DraftPick{
			ID:             uuid.New(),
			LeagueID:       req.LeagueID,
			SeasonID:       seasonID,
			DraftOrderID:   entry.ID,
			PickNumber:     entry.PickNumber,
			Round:          entry.Round,
			TeamPosition:   entry.TeamPosition,
			PlayerID:       req.PlayerID,
			FantasyTeamID:  req.FantasyTeamID,
			IsAutoPick:     true,
			AutoPickReason: &reason,
			PickedAt:       now,
		}
		if err := repos.order.InsertDraftPick(ctx, committed); err != nil {
			return err
		}

		// Teams drafted into before setting a roster get the default layout.
		if _, err := repos.roster.EnsureDefaultSpots(ctx, req.FantasyTeamID); err != nil {
			return err
		}
		spot, err := repos.roster.FirstFreeSpot(ctx, req.FantasyTeamID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return roster.ErrRosterFull
			}
			return fmt.Errorf("failed to find free roster spot: %w", err)
		}
		if err := repos.roster.AssignPlayer(ctx, spot.ID, req.PlayerID, now); err != nil {
			return err
		}

		payload, err := json.Marshal(events.PickMadePayload{
			PickID:         committed.ID.String(),
			DraftOrderID:   entry.ID.String(),
			FantasyTeamID:  req.FantasyTeamID.String(),
			PlayerID:       req.PlayerID.String(),
			PlayerName:     p.FullName,
			Round:          entry.Round,
			PickNumber:     entry.PickNumber,
			IsAutoPick:     true,
			AutoPickReason: reason,
			MadeAt:         now,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal PickMade payload: %w", err)
		}
		return repos.outbox.InsertEvent(ctx, req.LeagueID, events.TypePickMade, payload)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Auto-picked %s (pick %d) for team %s: %s", p.FullName, committed.PickNumber, req.FantasyTeamID, reason)
	return &committed, nil
}

// InitializeDraftOrder generates the full snake order for a league: odd
// rounds run positions 1..N, even rounds run N..1.
func (a *App) InitializeDraftOrder(ctx context.Context, req InitializeDraftOrderRequest) (int, error) {
	if req.LeagueID == uuid.Nil {
		return 0, fmt.Errorf("league_id is required")
	}
	if req.Rounds <= 0 {
		return 0, fmt.Errorf("rounds must be greater than 0")
	}
	if req.NumTeams <= 0 {
		return 0, fmt.Errorf("num_teams must be greater than 0")
	}

	existing, err := a.repo.CountOrderEntries(ctx, req.LeagueID)
	if err != nil {
		return 0, fmt.Errorf("failed to check existing draft order: %w", err)
	}
	if existing > 0 {
		return 0, fmt.Errorf("draft order already exists for this league (%d entries found)", existing)
	}

	entries := generateSnakeOrder(req.LeagueID, req.Rounds, req.NumTeams)
	if err := a.repo.CreateDraftOrderBatch(ctx, entries); err != nil {
		return 0, err
	}

	log.Printf("Initialized snake draft order for league %s: %d entries", req.LeagueID, len(entries))
	return len(entries), nil
}

// generateSnakeOrder builds one entry per round and team position with
// even rounds reversed.
func generateSnakeOrder(leagueID uuid.UUID, rounds, numTeams int) []models.DraftOrderEntry {
	entries := make([]models.DraftOrderEntry, 0, rounds*numTeams)
	overall := 1

	for round := 1; round <= rounds; round++ {
		for slot := 1; slot <= numTeams; slot++ {
			teamPosition := slot
			if round%2 == 0 {
				teamPosition = numTeams - slot + 1
			}
			entries = append(entries, models.DraftOrderEntry{
				ID:           uuid.New(),
				LeagueID:     leagueID,
				Round:        round,
				PickNumber:   overall,
				TeamPosition: teamPosition,
			})
			overall++
		}
	}
	return entries
}

// NextPendingEntry returns the lowest incomplete pick
func (a *App) NextPendingEntry(ctx context.Context, leagueID uuid.UUID) (*models.DraftOrderEntry, error) {
	return a.repo.NextPendingEntry(ctx, leagueID)
}

// CurrentEntryOnClock returns the entry whose clock is running
func (a *App) CurrentEntryOnClock(ctx context.Context, leagueID uuid.UUID) (*models.DraftOrderEntry, error) {
	return a.repo.CurrentEntryOnClock(ctx, leagueID)
}

// CountRemaining returns the number of incomplete order entries
func (a *App) CountRemaining(ctx context.Context, leagueID uuid.UUID) (int, error) {
	return a.repo.CountRemaining(ctx, leagueID)
}

// ListPicksByLeague returns all committed picks in pick order
func (a *App) ListPicksByLeague(ctx context.Context, leagueID uuid.UUID) ([]models.DraftPick, error) {
	return a.repo.ListPicksByLeague(ctx, leagueID)
}

func (a *App) validateAutoPickRequest(req AutoPickRequest) error {
	if req.LeagueID == uuid.Nil {
		return fmt.Errorf("league_id is required")
	}
	if req.PlayerID == uuid.Nil {
		return fmt.Errorf("player_id is required")
	}
	if req.FantasyTeamID == uuid.Nil {
		return fmt.Errorf("fantasy_team_id is required")
	}
	if req.PickNumber <= 0 {
		return fmt.Errorf("pick_number must be greater than 0")
	}
	return nil
}
