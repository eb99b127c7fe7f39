package player

import "errors"

// ErrPlayerNotFound is returned when no player exists for the given ID
var ErrPlayerNotFound = errors.New("player not found")

// ErrNoAvailablePlayers is returned when every active player has been drafted
var ErrNoAvailablePlayers = errors.New("no available players")
