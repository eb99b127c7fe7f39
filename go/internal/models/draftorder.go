package models

import (
	"time"

	"github.com/google/uuid"
)

// DraftOrderEntry is one slot in a league's draft order. The entry on the
// clock is the lowest pick_number with is_completed = false and a non-nil
// TimeExpires.
type DraftOrderEntry struct {
	ID                 uuid.UUID  `json:"id"`
	LeagueID           uuid.UUID  `json:"league_id"`
	Round              int        `json:"round"`
	PickNumber         int        `json:"pick_number"` // overall pick number
	TeamPosition       int        `json:"team_position"`
	TimeStarted        *time.Time `json:"time_started,omitempty"`
	TimeExpires        *time.Time `json:"time_expires,omitempty"`
	TimeExtensionsUsed int        `json:"time_extensions_used"`
	IsCompleted        bool       `json:"is_completed"`
	IsAutoPicked       bool       `json:"is_auto_picked"`
	AutoPickReason     *string    `json:"auto_pick_reason,omitempty"`
}
