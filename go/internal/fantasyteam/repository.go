package fantasyteam

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/fastbreakhq/fastbreak/go/internal/models"
)

// ErrFantasyTeamNotFound is returned when no team exists for the lookup
var ErrFantasyTeamNotFound = errors.New("fantasy team not found")

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

const teamColumns = `id, league_id, owner_id, team_name, team_position, autodraft_enabled, created_at`

func (r *Repository) GetFantasyTeam(ctx context.Context, id uuid.UUID) (*models.FantasyTeam, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+teamColumns+` FROM fantasy_teams WHERE id = $1`, id,
	)
	return scanTeam(row.Scan)
}

// GetTeamByLeagueAndPosition resolves the team owning a draft slot.
func (r *Repository) GetTeamByLeagueAndPosition(ctx context.Context, leagueID uuid.UUID, teamPosition int) (*models.FantasyTeam, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+teamColumns+` FROM fantasy_teams
		 WHERE league_id = $1 AND team_position = $2`,
		leagueID, teamPosition,
	)
	return scanTeam(row.Scan)
}

func (r *Repository) ListTeamsByLeague(ctx context.Context, leagueID uuid.UUID) ([]models.FantasyTeam, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+teamColumns+` FROM fantasy_teams
		 WHERE league_id = $1
		 ORDER BY team_position`,
		leagueID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list fantasy teams: %w", err)
	}
	defer rows.Close()

	var teams []models.FantasyTeam
	for rows.Next() {
		team, err := scanTeam(rows.Scan)
		if err != nil {
			return nil, err
		}
		teams = append(teams, *team)
	}
	return teams, rows.Err()
}

// SetAutodraftEnabled flips the autodraft flag for a team.
func (r *Repository) SetAutodraftEnabled(ctx context.Context, id uuid.UUID, enabled bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE fantasy_teams SET autodraft_enabled = $2 WHERE id = $1`,
		id, enabled,
	)
	if err != nil {
		return fmt.Errorf("failed to set autodraft enabled: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrFantasyTeamNotFound
	}
	return nil
}

func scanTeam(scan func(dest ...any) error) (*models.FantasyTeam, error) {
	var t models.FantasyTeam
	err := scan(&t.ID, &t.LeagueID, &t.OwnerID, &t.TeamName, &t.TeamPosition, &t.AutodraftEnabled, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFantasyTeamNotFound
		}
		return nil, fmt.Errorf("failed to scan fantasy team: %w", err)
	}
	return &t, nil
}
