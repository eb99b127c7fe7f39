package player

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/fastbreakhq/fastbreak/go/internal/models"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repository handles all player-related database operations
type Repository struct {
	db DBTX
}

// NewRepository creates a new player repository
func NewRepository(db DBTX) *Repository {
	return &Repository{db: db}
}

// WithTx returns a copy of the repository bound to tx.
func (r *Repository) WithTx(tx *sql.Tx) *Repository {
	return &Repository{db: tx}
}

const playerColumns = `id, full_name, position, team_abbreviation, projected_fantasy_points, is_active, created_at`

// GetPlayer retrieves a player by ID
func (r *Repository) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+playerColumns+` FROM players WHERE id = $1`, id,
	)
	p, err := scanPlayer(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return p, nil
}

// ListAvailablePlayers returns active players not yet drafted in the league,
// best available first. Ordering is by projected fantasy points descending
// with id ascending as the tie break, so repeated calls see the same order.
func (r *Repository) ListAvailablePlayers(ctx context.Context, leagueID uuid.UUID, limit int) ([]models.Player, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+playerColumns+`
		 FROM players p
		 WHERE p.is_active
		   AND NOT EXISTS (
		     SELECT 1 FROM draft_picks dp
		     WHERE dp.league_id = $1 AND dp.player_id = p.id
		   )
		 ORDER BY p.projected_fantasy_points DESC, p.id ASC
		 LIMIT $2`,
		leagueID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list available players: %w", err)
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		p, err := scanPlayer(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

func scanPlayer(scan func(dest ...any) error) (*models.Player, error) {
	var p models.Player
	err := scan(&p.ID, &p.FullName, &p.Position, &p.TeamAbbreviation, &p.ProjectedFantasyPoints, &p.IsActive, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
