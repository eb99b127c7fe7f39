package league

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"

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

const leagueColumns = `id, name, commissioner_id, current_season_id, draft_status, draft_date, time_per_pick_sec,
	allow_trades, allow_time_extensions, is_auto_pick_active, paused_at, created_at, updated_at`

func (r *Repository) GetLeague(ctx context.Context, id uuid.UUID) (*models.League, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+leagueColumns+` FROM leagues WHERE id = $1`, id,
	)
	return scanLeague(row.Scan)
}

// ListScheduledLeaguesDue returns leagues whose draft is scheduled and whose
// draft date has arrived.
func (r *Repository) ListScheduledLeaguesDue(ctx context.Context, now time.Time) ([]models.League, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+leagueColumns+` FROM leagues
		 WHERE draft_status = $1 AND draft_date IS NOT NULL AND draft_date <= $2`,
		string(models.DraftStatusScheduled), now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled leagues: %w", err)
	}
	defer rows.Close()

	var leagues []models.League
	for rows.Next() {
		l, err := scanLeague(rows.Scan)
		if err != nil {
			return nil, err
		}
		leagues = append(leagues, *l)
	}
	return leagues, rows.Err()
}

func (r *Repository) UpdateDraftStatus(ctx context.Context, id uuid.UUID, status models.DraftStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE leagues SET draft_status = $2, updated_at = NOW() WHERE id = $1`,
		id, string(status),
	)
	if err != nil {
		return fmt.Errorf("failed to update draft status: %w", err)
	}
	return requireRow(result)
}

// SetPaused records the pause timestamp and suspends auto-picks.
func (r *Repository) SetPaused(ctx context.Context, id uuid.UUID, pausedAt time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE leagues
		 SET draft_status = $2, is_auto_pick_active = FALSE, paused_at = $3, updated_at = NOW()
		 WHERE id = $1`,
		id, string(models.DraftStatusPaused), pausedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to pause league draft: %w", err)
	}
	return requireRow(result)
}

// SetResumed clears the pause timestamp and reactivates auto-picks.
func (r *Repository) SetResumed(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE leagues
		 SET draft_status = $2, is_auto_pick_active = TRUE, paused_at = NULL, updated_at = NOW()
		 WHERE id = $1`,
		id, string(models.DraftStatusInProgress),
	)
	if err != nil {
		return fmt.Errorf("failed to resume league draft: %w", err)
	}
	return requireRow(result)
}

func (r *Repository) UpdateTimePerPick(ctx context.Context, id uuid.UUID, seconds int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE leagues SET time_per_pick_sec = $2, updated_at = NOW() WHERE id = $1`,
		id, seconds,
	)
	if err != nil {
		return fmt.Errorf("failed to update time per pick: %w", err)
	}
	return requireRow(result)
}

// GetSeasonSettings loads the lineup configuration for a league season.
// Returns ErrSettingsNotFound when no row exists.
func (r *Repository) GetSeasonSettings(ctx context.Context, leagueID uuid.UUID, seasonYear int) (*models.LeagueSeasonSettings, error) {
	var s models.LeagueSeasonSettings
	var assignments pqtype.NullRawMessage
	err := r.db.QueryRowContext(ctx,
		`SELECT id, league_id, season_id, season_year, position_unit_assignments,
		        starters_count, rotation_count, bench_count
		 FROM league_season_settings
		 WHERE league_id = $1 AND season_year = $2`,
		leagueID, seasonYear,
	).Scan(&s.ID, &s.LeagueID, &s.SeasonID, &s.SeasonYear, &assignments,
		&s.StartersCount, &s.RotationCount, &s.BenchCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("failed to get league season settings: %w", err)
	}

	if assignments.Valid {
		if err := json.Unmarshal(assignments.RawMessage, &s.PositionUnitAssignments); err != nil {
			return nil, fmt.Errorf("failed to decode position unit assignments: %w", err)
		}
	}
	return &s, nil
}

func scanLeague(scan func(dest ...any) error) (*models.League, error) {
	var l models.League
	var status string
	var draftDate, pausedAt sql.NullTime
	err := scan(&l.ID, &l.Name, &l.CommissionerID, &l.CurrentSeasonID, &status, &draftDate, &l.TimePerPickSec,
		&l.AllowTrades, &l.AllowTimeExtensions, &l.AutoPickActive, &pausedAt,
		&l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLeagueNotFound
		}
		return nil, fmt.Errorf("failed to scan league: %w", err)
	}
	l.DraftStatus = models.DraftStatus(status)
	l.DraftDate = sqlutil.FromSqlTime(draftDate)
	l.PausedAt = sqlutil.FromSqlTime(pausedAt)
	return &l, nil
}

func requireRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrLeagueNotFound
	}
	return nil
}
