package clock

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastbreakhq/fastbreak/go/internal/models"
)

func TestRemaining(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		expiry   *time.Time
		pausedAt *time.Time
		want     *int
	}{
		{
			name:   "no active pick",
			expiry: nil,
			want:   nil,
		},
		{
			name:   "time left",
			expiry: timePtr(now.Add(45 * time.Second)),
			want:   intPtr(45),
		},
		{
			name:   "expired clamps to zero",
			expiry: timePtr(now.Add(-10 * time.Second)),
			want:   intPtr(0),
		},
		{
			name:     "paused holds remaining steady",
			expiry:   timePtr(now.Add(10 * time.Second)),
			pausedAt: timePtr(now.Add(-20 * time.Second)),
			want:     intPtr(30),
		},
		{
			name:     "pause in the future is ignored",
			expiry:   timePtr(now.Add(10 * time.Second)),
			pausedAt: timePtr(now.Add(5 * time.Second)),
			want:     intPtr(10),
		},
		{
			name:   "sub-second remainder truncates",
			expiry: timePtr(now.Add(1500 * time.Millisecond)),
			want:   intPtr(1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Remaining(now, tt.expiry, tt.pausedAt)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestShiftedExpiry(t *testing.T) {
	expiry := time.Date(2025, 10, 1, 12, 1, 0, 0, time.UTC)
	pausedAt := time.Date(2025, 10, 1, 12, 0, 30, 0, time.UTC)

	t.Run("pause duration is added to expiry", func(t *testing.T) {
		now := pausedAt.Add(5 * time.Minute)
		got := ShiftedExpiry(expiry, pausedAt, now)
		assert.Equal(t, expiry.Add(5*time.Minute), got)
	})

	t.Run("zero length pause leaves expiry unchanged", func(t *testing.T) {
		got := ShiftedExpiry(expiry, pausedAt, pausedAt)
		assert.Equal(t, expiry, got)
	})
}

func TestBuildSnapshot(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	leagueID := uuid.New()

	lg := &models.League{
		ID:             leagueID,
		DraftStatus:    models.DraftStatusInProgress,
		TimePerPickSec: 60,
	}

	t.Run("no pick on the clock", func(t *testing.T) {
		snap := BuildSnapshot(now, lg, nil)
		assert.Equal(t, leagueID, snap.LeagueID)
		assert.Equal(t, models.DraftStatusInProgress, snap.DraftStatus)
		assert.Equal(t, 60, snap.TimePerPickSec)
		assert.Nil(t, snap.PickNumber)
		assert.Nil(t, snap.RemainingSec)
		assert.False(t, snap.Paused)
	})

	t.Run("active pick", func(t *testing.T) {
		entry := &models.DraftOrderEntry{
			PickNumber:   7,
			Round:        2,
			TeamPosition: 4,
			TimeExpires:  timePtr(now.Add(42 * time.Second)),
		}
		snap := BuildSnapshot(now, lg, entry)
		require.NotNil(t, snap.PickNumber)
		assert.Equal(t, 7, *snap.PickNumber)
		assert.Equal(t, 2, *snap.Round)
		assert.Equal(t, 4, *snap.TeamPosition)
		require.NotNil(t, snap.RemainingSec)
		assert.Equal(t, 42, *snap.RemainingSec)
	})

	t.Run("paused draft keeps frozen remaining", func(t *testing.T) {
		paused := &models.League{
			ID:             leagueID,
			DraftStatus:    models.DraftStatusPaused,
			TimePerPickSec: 60,
			PausedAt:       timePtr(now.Add(-15 * time.Second)),
		}
		entry := &models.DraftOrderEntry{
			PickNumber:  3,
			Round:       1,
			TimeExpires: timePtr(now.Add(10 * time.Second)),
		}
		snap := BuildSnapshot(now, paused, entry)
		assert.True(t, snap.Paused)
		require.NotNil(t, snap.RemainingSec)
		assert.Equal(t, 25, *snap.RemainingSec)
	})
}

func timePtr(t time.Time) *time.Time { return &t }
func intPtr(n int) *int              { return &n }
