package pick

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

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

const orderColumns = `id, league_id, round, pick_number, team_position, time_started,
	time_expires, time_extensions_used, is_completed, is_auto_picked, auto_pick_reason`

// CreateDraftOrderBatch inserts all order entries for a league in one
// statement using unnest.
func (r *Repository) CreateDraftOrderBatch(ctx context.Context, entries []models.DraftOrderEntry) error {
	if len(entries) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(entries))
	leagueIDs := make([]uuid.UUID, len(entries))
	rounds := make([]int32, len(entries))
	pickNumbers := make([]int32, len(entries))
	teamPositions := make([]int32, len(entries))

	for i, e := range entries {
		ids[i] = e.ID
		leagueIDs[i] = e.LeagueID
		rounds[i] = int32(e.Round)
		pickNumbers[i] = int32(e.PickNumber)
		teamPositions[i] = int32(e.TeamPosition)
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO draft_order (id, league_id, round, pick_number, team_position)
		 SELECT * FROM unnest($1::uuid[], $2::uuid[], $3::int[], $4::int[], $5::int[])`,
		pq.Array(ids), pq.Array(leagueIDs), pq.Array(rounds), pq.Array(pickNumbers), pq.Array(teamPositions),
	)
	if err != nil {
		return fmt.Errorf("failed to batch create draft order entries: %w", err)
	}
	return nil
}

func (r *Repository) CountOrderEntries(ctx context.Context, leagueID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM draft_order WHERE league_id = $1`, leagueID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count draft order entries: %w", err)
	}
	return count, nil
}

func (r *Repository) GetEntryByPickNumber(ctx context.Context, leagueID uuid.UUID, pickNumber int) (*models.DraftOrderEntry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM draft_order
		 WHERE league_id = $1 AND pick_number = $2`,
		leagueID, pickNumber,
	)
	return scanEntry(row.Scan)
}

// NextPendingEntry returns the lowest incomplete pick number, or
// ErrDraftOrderNotFound when the draft has no entries left.
func (r *Repository) NextPendingEntry(ctx context.Context, leagueID uuid.UUID) (*models.DraftOrderEntry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM draft_order
		 WHERE league_id = $1 AND is_completed = FALSE
		 ORDER BY pick_number
		 LIMIT 1`,
		leagueID,
	)
	return scanEntry(row.Scan)
}

// CurrentEntryOnClock returns the incomplete entry whose clock is running.
// ErrNoActivePick when nothing is on the clock.
func (r *Repository) CurrentEntryOnClock(ctx context.Context, leagueID uuid.UUID) (*models.DraftOrderEntry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM draft_order
		 WHERE league_id = $1 AND is_completed = FALSE AND time_expires IS NOT NULL
		 ORDER BY pick_number
		 LIMIT 1`,
		leagueID,
	)
	entry, err := scanEntry(row.Scan)
	if err != nil {
		if errors.Is(err, ErrDraftOrderNotFound) {
			return nil, ErrNoActivePick
		}
		return nil, err
	}
	return entry, nil
}

// LastCompletedEntry returns the highest completed pick number, or
// ErrNoPickToReverse when no picks have been committed.
func (r *Repository) LastCompletedEntry(ctx context.Context, leagueID uuid.UUID) (*models.DraftOrderEntry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM draft_order
		 WHERE league_id = $1 AND is_completed = TRUE
		 ORDER BY pick_number DESC
		 LIMIT 1`,
		leagueID,
	)
	entry, err := scanEntry(row.Scan)
	if err != nil {
		if errors.Is(err, ErrDraftOrderNotFound) {
			return nil, ErrNoPickToReverse
		}
		return nil, err
	}
	return entry, nil
}

// CompleteEntry claims an order entry. The is_completed guard makes the
// claim conditional so only one committer wins.
func (r *Repository) CompleteEntry(ctx context.Context, id uuid.UUID, isAutoPicked bool, reason *string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE draft_order
		 SET is_completed = TRUE, is_auto_picked = $2, auto_pick_reason = $3, time_expires = NULL
		 WHERE id = $1 AND is_completed = FALSE`,
		id, isAutoPicked, sqlutil.ToSqlString(reason),
	)
	if err != nil {
		return fmt.Errorf("failed to complete draft order entry: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrPickAlreadyMade
	}
	return nil
}

// ReopenEntry undoes a completion when a pick is reversed.
func (r *Repository) ReopenEntry(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE draft_order
		 SET is_completed = FALSE, is_auto_picked = FALSE, auto_pick_reason = NULL,
		     time_started = NULL, time_expires = NULL
		 WHERE id = $1 AND is_completed = TRUE`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to reopen draft order entry: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNoPickToReverse
	}
	return nil
}

// StartEntryClock arms the timer on an entry.
func (r *Repository) StartEntryClock(ctx context.Context, id uuid.UUID, startedAt, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE draft_order SET time_started = $2, time_expires = $3 WHERE id = $1`,
		id, startedAt, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to start entry clock: %w", err)
	}
	return nil
}

// SetEntryExpiry replaces the expiry without touching time_started. Used on
// resume to shift the deadline by the paused duration.
func (r *Repository) SetEntryExpiry(ctx context.Context, id uuid.UUID, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE draft_order SET time_expires = $2 WHERE id = $1 AND is_completed = FALSE`,
		id, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to set entry expiry: %w", err)
	}
	return nil
}

// ExtendEntryExpiry replaces the expiry and counts the extension.
func (r *Repository) ExtendEntryExpiry(ctx context.Context, id uuid.UUID, expiresAt time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE draft_order
		 SET time_expires = $2, time_extensions_used = time_extensions_used + 1
		 WHERE id = $1 AND is_completed = FALSE`,
		id, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to extend entry expiry: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNoActivePick
	}
	return nil
}

// CountRemaining returns the number of incomplete order entries.
func (r *Repository) CountRemaining(ctx context.Context, leagueID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM draft_order WHERE league_id = $1 AND is_completed = FALSE`,
		leagueID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count remaining picks: %w", err)
	}
	return count, nil
}

// NextDeadline returns the earliest running expiry across all leagues that
// are in progress with auto-picks active. Nil when no clock is running.
func (r *Repository) NextDeadline(ctx context.Context) (*time.Time, error) {
	var deadline sql.NullTime
	err := r.db.QueryRowContext(ctx,
		`SELECT MIN(d.time_expires)
		 FROM draft_order d
		 JOIN leagues l ON l.id = d.league_id
		 WHERE d.is_completed = FALSE
		   AND d.time_expires IS NOT NULL
		   AND l.draft_status = 'IN_PROGRESS'
		   AND l.is_auto_pick_active`,
	).Scan(&deadline)
	if err != nil {
		return nil, fmt.Errorf("failed to get next deadline: %w", err)
	}
	return sqlutil.FromSqlTime(deadline), nil
}

// ListDueEntries returns entries whose clock has expired, joined to league
// settings, oldest deadline first.
func (r *Repository) ListDueEntries(ctx context.Context, now time.Time) ([]DueEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT d.id, d.league_id, d.pick_number, d.round, d.team_position, l.time_per_pick_sec
		 FROM draft_order d
		 JOIN leagues l ON l.id = d.league_id
		 WHERE d.is_completed = FALSE
		   AND d.time_expires IS NOT NULL
		   AND d.time_expires <= $1
		   AND l.draft_status = 'IN_PROGRESS'
		   AND l.is_auto_pick_active
		 ORDER BY d.time_expires`,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list due entries: %w", err)
	}
	defer rows.Close()

	var due []DueEntry
	for rows.Next() {
		var d DueEntry
		if err := rows.Scan(&d.EntryID, &d.LeagueID, &d.PickNumber, &d.Round, &d.TeamPosition, &d.TimePerPickSec); err != nil {
			return nil, fmt.Errorf("failed to scan due entry: %w", err)
		}
		due = append(due, d)
	}
	return due, rows.Err()
}

// InsertDraftPick records a committed selection.
func (r *Repository) InsertDraftPick(ctx context.Context, p models.DraftPick) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO draft_picks (id, league_id, season_id, draft_order_id, pick_number, round,
		                          team_position, player_id, fantasy_team_id, is_auto_pick,
		                          auto_pick_reason, picked_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		p.ID, p.LeagueID, p.SeasonID, p.DraftOrderID, p.PickNumber, p.Round,
		p.TeamPosition, p.PlayerID, p.FantasyTeamID, p.IsAutoPick,
		sqlutil.ToSqlString(p.AutoPickReason), p.PickedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert draft pick: %w", err)
	}
	return nil
}

// GetPickByDraftOrderID returns the pick committed against an order entry.
func (r *Repository) GetPickByDraftOrderID(ctx context.Context, draftOrderID uuid.UUID) (*models.DraftPick, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, league_id, season_id, draft_order_id, pick_number, round, team_position,
		        player_id, fantasy_team_id, is_auto_pick, auto_pick_reason, picked_at
		 FROM draft_picks
		 WHERE draft_order_id = $1`,
		draftOrderID,
	)
	return scanPick(row.Scan)
}

func (r *Repository) DeleteDraftPick(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM draft_picks WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete draft pick: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNoPickToReverse
	}
	return nil
}

func (r *Repository) ListPicksByLeague(ctx context.Context, leagueID uuid.UUID) ([]models.DraftPick, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, league_id, season_id, draft_order_id, pick_number, round, team_position,
		        player_id, fantasy_team_id, is_auto_pick, auto_pick_reason, picked_at
		 FROM draft_picks
		 WHERE league_id = $1
		 ORDER BY pick_number`,
		leagueID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list draft picks: %w", err)
	}
	defer rows.Close()

	var picks []models.DraftPick
	for rows.Next() {
		p, err := scanPick(rows.Scan)
		if err != nil {
			return nil, err
		}
		picks = append(picks, *p)
	}
	return picks, rows.Err()
}

func scanEntry(scan func(dest ...any) error) (*models.DraftOrderEntry, error) {
	var e models.DraftOrderEntry
	var timeStarted, timeExpires sql.NullTime
	var reason sql.NullString
	err := scan(&e.ID, &e.LeagueID, &e.Round, &e.PickNumber, &e.TeamPosition,
		&timeStarted, &timeExpires, &e.TimeExtensionsUsed, &e.IsCompleted,
		&e.IsAutoPicked, &reason)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDraftOrderNotFound
		}
		return nil, fmt.Errorf("failed to scan draft order entry: %w", err)
	}
	e.TimeStarted = sqlutil.FromSqlTime(timeStarted)
	e.TimeExpires = sqlutil.FromSqlTime(timeExpires)
	e.AutoPickReason = sqlutil.FromSqlStringPtr(reason)
	return &e, nil
}

func scanPick(scan func(dest ...any) error) (*models.DraftPick, error) {
	var p models.DraftPick
	var reason sql.NullString
	err := scan(&p.ID, &p.LeagueID, &p.SeasonID, &p.DraftOrderID, &p.PickNumber, &p.Round,
		&p.TeamPosition, &p.PlayerID, &p.FantasyTeamID, &p.IsAutoPick, &reason, &p.PickedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoPickToReverse
		}
		return nil, fmt.Errorf("failed to scan draft pick: %w", err)
	}
	p.AutoPickReason = sqlutil.FromSqlStringPtr(reason)
	return &p, nil
}
