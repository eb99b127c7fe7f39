package lineup

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/fastbreakhq/fastbreak/go/internal/draft/events"
	"github.com/fastbreakhq/fastbreak/go/internal/draft/outbox"
	"github.com/fastbreakhq/fastbreak/go/internal/league"
	"github.com/fastbreakhq/fastbreak/go/internal/models"
	"github.com/fastbreakhq/fastbreak/go/internal/roster"
	"github.com/fastbreakhq/fastbreak/go/internal/sqlutil"
)

// GenerateLineupRequest identifies the team and week to allocate. WeekNumber
// is a pointer because week 0 is valid.
type GenerateLineupRequest struct {
	LeagueID      uuid.UUID `json:"league_id"`
	SeasonID      uuid.UUID `json:"season_id"`
	FantasyTeamID uuid.UUID `json:"fantasy_team_id"`
	MatchupID     uuid.UUID `json:"matchup_id"`
	WeekNumber    *int      `json:"week_number"`
	SeasonYear    int       `json:"season_year"`
}

// GenerateLineupResult reports what the allocation run did.
type GenerateLineupResult struct {
	AssignedCount       int `json:"assigned_count"`
	RemovedInvalidCount int `json:"removed_invalid_count"`
}

// App handles lineup allocation. The delete-then-reinsert of a week's rows
// runs in one transaction, so a failed run leaves the previous lineup intact.
type App struct {
	db         *sql.DB
	repo       *Repository
	leagueRepo *league.Repository
	rosterRepo *roster.Repository
	outboxRepo *outbox.Repository
	clock      clockwork.Clock
}

// NewApp creates a new lineup App
func NewApp(db *sql.DB, repo *Repository, leagueRepo *league.Repository, rosterRepo *roster.Repository, outboxRepo *outbox.Repository, clock clockwork.Clock) *App {
	return &App{
		db:         db,
		repo:       repo,
		leagueRepo: leagueRepo,
		rosterRepo: rosterRepo,
		outboxRepo: outboxRepo,
		clock:      clock,
	}
}

// GenerateAutoLineup rebuilds one team's weekly lineup from its current
// roster and the league's season settings. Stored assignments whose player
// has left the roster are counted as removed, then the whole week is
// replaced with the freshly allocated set.
func (a *App) GenerateAutoLineup(ctx context.Context, req GenerateLineupRequest) (*GenerateLineupResult, error) {
	if err := validateGenerateRequest(req); err != nil {
		return nil, err
	}
	weekNumber := *req.WeekNumber

	settings, err := a.leagueRepo.GetSeasonSettings(ctx, req.LeagueID, req.SeasonYear)
	if err != nil {
		return nil, err
	}

	rosterPlayers, err := a.rosterRepo.RosteredPlayers(ctx, req.FantasyTeamID)
	if err != nil {
		return nil, err
	}

	existing, err := a.repo.ListWeekAssignments(ctx, req.LeagueID, req.FantasyTeamID, weekNumber, req.SeasonYear)
	if err != nil {
		return nil, err
	}

	onRoster := make(map[uuid.UUID]bool, len(rosterPlayers))
	for _, p := range rosterPlayers {
		onRoster[p.PlayerID] = true
	}
	removedInvalid := 0
	for _, e := range existing {
		if !onRoster[e.PlayerID] {
			removedInvalid++
		}
	}

	slots := Allocate(rosterPlayers, settings)

	matchupID := req.MatchupID
	assignments := make([]models.LineupAssignment, 0, len(slots))
	for _, s := range slots {
		assignments = append(assignments, models.LineupAssignment{
			ID:            uuid.New(),
			LeagueID:      req.LeagueID,
			SeasonID:      req.SeasonID,
			FantasyTeamID: req.FantasyTeamID,
			MatchupID:     &matchupID,
			WeekNumber:    weekNumber,
			SeasonYear:    req.SeasonYear,
			Unit:          s.Unit,
			Position:      s.Position,
			PositionOrder: s.PositionOrder,
			PlayerID:      s.PlayerID,
			X:             s.X,
			Y:             s.Y,
		})
	}

	err = sqlutil.RunTx(ctx, a.db, func(tx *sql.Tx) error {
		repo := a.repo.WithTx(tx)
		if err := repo.DeleteWeekAssignments(ctx, req.LeagueID, req.FantasyTeamID, weekNumber, req.SeasonYear); err != nil {
			return err
		}
		if err := repo.InsertAssignments(ctx, assignments); err != nil {
			return err
		}

		payload, err := json.Marshal(events.LineupGeneratedPayload{
			LeagueID:            req.LeagueID.String(),
			FantasyTeamID:       req.FantasyTeamID.String(),
			WeekNumber:          weekNumber,
			AssignedCount:       len(assignments),
			RemovedInvalidCount: removedInvalid,
			GeneratedAt:         a.clock.Now(),
		})
		if err != nil {
			return fmt.Errorf("failed to marshal LineupGenerated payload: %w", err)
		}
		return a.outboxRepo.WithTx(tx).InsertEvent(ctx, req.LeagueID, events.TypeLineupGenerated, payload)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Generated lineup for team %s week %d: %d assigned, %d invalid removed",
		req.FantasyTeamID, weekNumber, len(assignments), removedInvalid)
	return &GenerateLineupResult{
		AssignedCount:       len(assignments),
		RemovedInvalidCount: removedInvalid,
	}, nil
}

// GetWeekLineup returns the stored lineup for one team and week.
func (a *App) GetWeekLineup(ctx context.Context, leagueID, fantasyTeamID uuid.UUID, weekNumber, seasonYear int) ([]models.LineupAssignment, error) {
	return a.repo.ListWeekAssignments(ctx, leagueID, fantasyTeamID, weekNumber, seasonYear)
}

func validateGenerateRequest(req GenerateLineupRequest) error {
	var missing []string
	if req.LeagueID == uuid.Nil {
		missing = append(missing, "league_id")
	}
	if req.SeasonID == uuid.Nil {
		missing = append(missing, "season_id")
	}
	if req.FantasyTeamID == uuid.Nil {
		missing = append(missing, "fantasy_team_id")
	}
	if req.MatchupID == uuid.Nil {
		missing = append(missing, "matchup_id")
	}
	if req.WeekNumber == nil {
		missing = append(missing, "week_number")
	}
	if req.SeasonYear == 0 {
		missing = append(missing, "season_year")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}
