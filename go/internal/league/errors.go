package league

import "errors"

// ErrLeagueNotFound is returned when no league exists for the given ID
var ErrLeagueNotFound = errors.New("league not found")

// ErrSettingsNotFound is returned when a league has no season settings row
var ErrSettingsNotFound = errors.New("league season settings not found")
