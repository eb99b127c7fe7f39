// Package clock derives pick timer state from persisted timestamps. The
// stored expiry is the source of truth; seconds remaining are always
// computed, never counted down.
package clock

import (
	"time"

	"github.com/google/uuid"

	"github.com/fastbreakhq/fastbreak/go/internal/models"
)

// Remaining returns whole seconds left on the pick clock, clamped at zero.
// Returns nil when there is no active pick (expiry is nil). While the draft
// is paused the remaining time is computed against pausedAt, so it holds
// steady until resume.
func Remaining(now time.Time, expiry *time.Time, pausedAt *time.Time) *int {
	if expiry == nil {
		return nil
	}
	ref := now
	if pausedAt != nil && pausedAt.Before(now) {
		ref = *pausedAt
	}
	secs := int(expiry.Sub(ref) / time.Second)
	if secs < 0 {
		secs = 0
	}
	return &secs
}

// ShiftedExpiry returns the expiry adjusted for a pause that started at
// pausedAt and ends now. The team keeps the time it had left when the
// draft paused.
func ShiftedExpiry(expiry time.Time, pausedAt, now time.Time) time.Time {
	if !pausedAt.Before(now) {
		return expiry
	}
	return expiry.Add(now.Sub(pausedAt))
}

// Snapshot describes the pick currently on the clock, for reconnecting
// clients. RemainingSec is nil when no pick is active.
type Snapshot struct {
	LeagueID       uuid.UUID          `json:"league_id"`
	DraftStatus    models.DraftStatus `json:"draft_status"`
	PickNumber     *int               `json:"pick_number,omitempty"`
	Round          *int               `json:"round,omitempty"`
	TeamPosition   *int               `json:"team_position,omitempty"`
	TimePerPickSec int                `json:"time_per_pick_sec"`
	TimeExpires    *time.Time         `json:"time_expires,omitempty"`
	RemainingSec   *int               `json:"remaining_sec,omitempty"`
	Paused         bool               `json:"paused"`
}

// BuildSnapshot assembles the clock view for a league. entry may be nil when
// no pick is on the clock.
func BuildSnapshot(now time.Time, lg *models.League, entry *models.DraftOrderEntry) Snapshot {
	snap := Snapshot{
		LeagueID:       lg.ID,
		DraftStatus:    lg.DraftStatus,
		TimePerPickSec: lg.TimePerPickSec,
		Paused:         lg.DraftStatus == models.DraftStatusPaused,
	}
	if entry == nil {
		return snap
	}
	snap.PickNumber = &entry.PickNumber
	snap.Round = &entry.Round
	snap.TeamPosition = &entry.TeamPosition
	snap.TimeExpires = entry.TimeExpires
	snap.RemainingSec = Remaining(now, entry.TimeExpires, lg.PausedAt)
	return snap
}
