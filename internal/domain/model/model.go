// Package model contains domain models passed between layers.
package model

// TeamRecord is a team's season-to-date aggregate line, normalized from a
// raw snapshot row.
type TeamRecord struct {
	Abbrev       string // team abbreviation, e.g. "MTL"
	Name         string // display name
	GamesPlayed  int
	Points       int
	GoalsFor     int
	GoalsAgainst int

	// Per-game rates, valid only when HasRates is true (GamesPlayed > 0).
	// Consumers substitute configured league averages otherwise.
	GoalsForPerGame     float64
	GoalsAgainstPerGame float64
	HasRates            bool
}

// RecentGame is a single entry of a player's recent game log,
// most recent first where the source provides ordering.
type RecentGame struct {
	Goals   int
	Assists int
	Points  int
	// HasPoints reports whether the points field was present on the source
	// row; when false the entry contributes goals+assists instead.
	HasPoints bool
}

// PlayerRecord is a skater's (or goaltender's) season aggregate line plus
// whatever recent-form signals the snapshot carried.
type PlayerRecord struct {
	Name     string
	Team     string // team abbreviation, upper-cased
	Position string // canonical position code; "G" marks goaltenders

	GamesPlayed  int
	Points       float64
	Shots        float64
	ShotsOnGoal  float64
	Hits         float64
	Blocks       float64
	PlusMinus    float64
	PenaltyMin   float64
	CorsiPct     float64 // possession proxy, defaults to 50 when unknown
	FenwickPct   float64
	ShootingPct  float64
	TimeOnIceMin float64 // minutes per game, parsed from "MM:SS" or numeric

	// Recent-form sources, in the estimator's priority order. Any of these
	// may be absent on a given snapshot.
	RecentGames     []RecentGame // per-game log, up to the source's window
	LastNPoints     float64      // explicit "points over last N games" aggregate
	HasLastNPoints  bool
	RecentPoints    float64 // explicit recent points / recent games pair
	RecentGamesSeen int
	PerGamePoints   []float64 // bare list of per-game point values
}

// Goaltender reports whether the player is excluded from skater-based
// ranking and form adjustment.
func (p PlayerRecord) Goaltender() bool {
	return p.Position == "G"
}

// SeasonPointsPerGame is the season scoring rate, zero when no games played.
func (p PlayerRecord) SeasonPointsPerGame() float64 {
	if p.GamesPlayed <= 0 {
		return 0
	}
	return p.Points / float64(p.GamesPlayed)
}

// Matchup identifies one scheduled game between two known teams.
type Matchup struct {
	HomeAbbrev string
	AwayAbbrev string
	Date       string
	StartUTC   string
	Venue      string
}
