package lineup

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/fastbreakhq/fastbreak/go/internal/models"
	"github.com/fastbreakhq/fastbreak/go/internal/sqlutil"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Repository struct {
	db DBTX
}

func NewRepository(db DBTX) *Repository {
	return &Repository{db: db}
}

// WithTx returns a copy of the repository bound to tx.
func (r *Repository) WithTx(tx *sql.Tx) *Repository {
	return &Repository{db: tx}
}

const assignmentColumns = `id, league_id, season_id, fantasy_team_id, matchup_id, week_number, season_year, unit, position, position_order, player_id, x, y`

// ListWeekAssignments returns the stored lineup for one team and week.
func (r *Repository) ListWeekAssignments(ctx context.Context, leagueID, fantasyTeamID uuid.UUID, weekNumber, seasonYear int) ([]models.LineupAssignment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+assignmentColumns+`
		 FROM lineup_assignments
		 WHERE league_id = $1 AND fantasy_team_id = $2 AND week_number = $3 AND season_year = $4
		 ORDER BY unit, position, position_order`,
		leagueID, fantasyTeamID, weekNumber, seasonYear,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get lineup assignments: %w", err)
	}
	defer rows.Close()

	var assignments []models.LineupAssignment
	for rows.Next() {
		a, err := scanAssignment(rows.Scan)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, *a)
	}
	return assignments, rows.Err()
}

// DeleteWeekAssignments clears the stored lineup for one team and week.
func (r *Repository) DeleteWeekAssignments(ctx context.Context, leagueID, fantasyTeamID uuid.UUID, weekNumber, seasonYear int) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM lineup_assignments
		 WHERE league_id = $1 AND fantasy_team_id = $2 AND week_number = $3 AND season_year = $4`,
		leagueID, fantasyTeamID, weekNumber, seasonYear,
	)
	if err != nil {
		return fmt.Errorf("failed to delete lineup assignments: %w", err)
	}
	return nil
}

// InsertAssignments writes the computed lineup rows.
func (r *Repository) InsertAssignments(ctx context.Context, assignments []models.LineupAssignment) error {
	for _, a := range assignments {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO lineup_assignments (`+assignmentColumns+`)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			a.ID, a.LeagueID, a.SeasonID, a.FantasyTeamID, sqlutil.ToNullUUID(a.MatchupID),
			a.WeekNumber, a.SeasonYear, string(a.Unit), a.Position, a.PositionOrder,
			a.PlayerID, a.X, a.Y,
		)
		if err != nil {
			return fmt.Errorf("failed to insert lineup assignment: %w", err)
		}
	}
	return nil
}

func scanAssignment(scan func(dest ...any) error) (*models.LineupAssignment, error) {
	var a models.LineupAssignment
	var matchupID uuid.NullUUID
	var unit string
	err := scan(&a.ID, &a.LeagueID, &a.SeasonID, &a.FantasyTeamID, &matchupID,
		&a.WeekNumber, &a.SeasonYear, &unit, &a.Position, &a.PositionOrder,
		&a.PlayerID, &a.X, &a.Y)
	if err != nil {
		return nil, fmt.Errorf("failed to scan lineup assignment: %w", err)
	}
	a.MatchupID = sqlutil.FromNullUUID(matchupID)
	a.Unit = models.LineupUnit(unit)
	return &a, nil
}
