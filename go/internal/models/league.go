package models

import (
	"time"

	"github.com/google/uuid"
)

// DraftStatus defines the draft lifecycle state of a league.
type DraftStatus string

const (
	DraftStatusScheduled  DraftStatus = "SCHEDULED"
	DraftStatusInProgress DraftStatus = "IN_PROGRESS"
	DraftStatusPaused     DraftStatus = "PAUSED"
	DraftStatusCompleted  DraftStatus = "COMPLETED"
)

// League represents a fantasy basketball league and its draft settings.
type League struct {
	ID                  uuid.UUID   `json:"id"`
	Name                string      `json:"name"`
	CommissionerID      uuid.UUID   `json:"commissioner_id"`
	CurrentSeasonID     uuid.UUID   `json:"current_season_id"`
	DraftStatus         DraftStatus `json:"draft_status"`
	DraftDate           *time.Time  `json:"draft_date,omitempty"`
	TimePerPickSec      int         `json:"time_per_pick_sec"`
	AllowTrades         bool        `json:"allow_trades"`
	AllowTimeExtensions bool        `json:"allow_time_extensions"`
	AutoPickActive      bool        `json:"is_auto_pick_active"`
	PausedAt            *time.Time  `json:"paused_at,omitempty"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}
