package app

import "errors"

var (
	// ErrTeamNotFound is returned when a matchup references a team the
	// stats table does not know. The matchup is skipped; a slate keeps
	// going.
	ErrTeamNotFound = errors.New("team not found in stats table")
)
