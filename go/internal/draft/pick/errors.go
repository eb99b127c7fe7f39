package pick

import "errors"

var (
	// ErrPickAlreadyMade indicates the order entry was completed by a
	// concurrent commit. The conditional update serializes races between
	// the timeout path and a manual pick.
	ErrPickAlreadyMade = errors.New("pick already made or pick not found")

	// ErrDraftOrderNotFound indicates no order entry exists for the lookup
	ErrDraftOrderNotFound = errors.New("draft order entry not found")

	// ErrNoActivePick indicates no entry is currently on the clock
	ErrNoActivePick = errors.New("no active pick")

	// ErrNoPickToReverse indicates no completed pick exists to undo
	ErrNoPickToReverse = errors.New("no pick to reverse")
)
