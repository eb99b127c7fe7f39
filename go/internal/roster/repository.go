package roster

import (
	"context"
	"database/sql"
	"fmt"
	"time"

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

// defaultSpot describes one slot of the standard 13-spot roster layout.
type defaultSpot struct {
	position models.SpotPosition
	order    int
}

var defaultSpots = [...]defaultSpot{
	{models.SpotPositionPG, 1},
	{models.SpotPositionSG, 2},
	{models.SpotPositionSF, 3},
	{models.SpotPositionPF, 4},
	{models.SpotPositionC, 5},
	{models.SpotPositionG, 6},
	{models.SpotPositionF, 7},
	{models.SpotPositionUtil, 8},
	{models.SpotPositionUtil, 9},
	{models.SpotPositionBench, 10},
	{models.SpotPositionBench, 11},
	{models.SpotPositionBench, 12},
	{models.SpotPositionIR, 13},
}

// DefaultSpotCount is the number of slots created for a team with no roster.
const DefaultSpotCount = len(defaultSpots)

func (r *Repository) CountSpots(ctx context.Context, fantasyTeamID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM roster_spots WHERE fantasy_team_id = $1`,
		fantasyTeamID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count roster spots: %w", err)
	}
	return count, nil
}

// EnsureDefaultSpots creates the standard 13-spot roster for a team that has
// no spots yet. Returns the number of spots created (0 if the roster already
// exists).
func (r *Repository) EnsureDefaultSpots(ctx context.Context, fantasyTeamID uuid.UUID) (int, error) {
	count, err := r.CountSpots(ctx, fantasyTeamID)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	for _, spot := range defaultSpots {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO roster_spots (id, fantasy_team_id, position, position_order)
			 VALUES ($1, $2, $3, $4)`,
			uuid.New(), fantasyTeamID, string(spot.position), spot.order,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to create default roster spot %s: %w", spot.position, err)
		}
	}
	return len(defaultSpots), nil
}

// FirstFreeSpot returns the open spot with the lowest position_order, or
// sql.ErrNoRows when the roster is full.
func (r *Repository) FirstFreeSpot(ctx context.Context, fantasyTeamID uuid.UUID) (*models.RosterSpot, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, fantasy_team_id, player_id, position, position_order, assigned_at
		 FROM roster_spots
		 WHERE fantasy_team_id = $1 AND player_id IS NULL
		 ORDER BY position_order
		 LIMIT 1`,
		fantasyTeamID,
	)
	return scanSpot(row)
}

func (r *Repository) AssignPlayer(ctx context.Context, spotID, playerID uuid.UUID, assignedAt time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE roster_spots SET player_id = $2, assigned_at = $3
		 WHERE id = $1 AND player_id IS NULL`,
		spotID, playerID, assignedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to assign player to roster spot: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("roster spot already filled or not found")
	}
	return nil
}

// ClearPlayer opens the spot holding playerID on the given team. Used when a
// pick is reversed.
func (r *Repository) ClearPlayer(ctx context.Context, fantasyTeamID, playerID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE roster_spots SET player_id = NULL, assigned_at = NULL
		 WHERE fantasy_team_id = $1 AND player_id = $2`,
		fantasyTeamID, playerID,
	)
	if err != nil {
		return fmt.Errorf("failed to clear player from roster: %w", err)
	}
	return nil
}

func (r *Repository) GetSpotsByFantasyTeam(ctx context.Context, fantasyTeamID uuid.UUID) ([]models.RosterSpot, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, fantasy_team_id, player_id, position, position_order, assigned_at
		 FROM roster_spots
		 WHERE fantasy_team_id = $1
		 ORDER BY position_order`,
		fantasyTeamID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster spots: %w", err)
	}
	defer rows.Close()

	var spots []models.RosterSpot
	for rows.Next() {
		spot, err := scanSpotRows(rows)
		if err != nil {
			return nil, err
		}
		spots = append(spots, *spot)
	}
	return spots, rows.Err()
}

// RosteredPlayers returns the filled spots joined to player identity, for
// lineup allocation.
func (r *Repository) RosteredPlayers(ctx context.Context, fantasyTeamID uuid.UUID) ([]models.RosteredPlayer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT rs.id, p.id, p.full_name, p.position, rs.position
		 FROM roster_spots rs
		 JOIN players p ON p.id = rs.player_id
		 WHERE rs.fantasy_team_id = $1
		 ORDER BY rs.position_order`,
		fantasyTeamID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get rostered players: %w", err)
	}
	defer rows.Close()

	var players []models.RosteredPlayer
	for rows.Next() {
		var rp models.RosteredPlayer
		var spotPosition string
		if err := rows.Scan(&rp.SpotID, &rp.PlayerID, &rp.FullName, &rp.Position, &spotPosition); err != nil {
			return nil, fmt.Errorf("failed to scan rostered player: %w", err)
		}
		rp.SpotPosition = models.SpotPosition(spotPosition)
		players = append(players, rp)
	}
	return players, rows.Err()
}

func scanSpot(row *sql.Row) (*models.RosterSpot, error) {
	var spot models.RosterSpot
	var playerID uuid.NullUUID
	var assignedAt sql.NullTime
	var position string
	err := row.Scan(&spot.ID, &spot.FantasyTeamID, &playerID, &position, &spot.PositionOrder, &assignedAt)
	if err != nil {
		return nil, err
	}
	spot.PlayerID = sqlutil.FromNullUUID(playerID)
	spot.Position = models.SpotPosition(position)
	spot.AssignedAt = sqlutil.FromSqlTime(assignedAt)
	return &spot, nil
}

func scanSpotRows(rows *sql.Rows) (*models.RosterSpot, error) {
	var spot models.RosterSpot
	var playerID uuid.NullUUID
	var assignedAt sql.NullTime
	var position string
	err := rows.Scan(&spot.ID, &spot.FantasyTeamID, &playerID, &position, &spot.PositionOrder, &assignedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan roster spot: %w", err)
	}
	spot.PlayerID = sqlutil.FromNullUUID(playerID)
	spot.Position = models.SpotPosition(position)
	spot.AssignedAt = sqlutil.FromSqlTime(assignedAt)
	return &spot, nil
}
