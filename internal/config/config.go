// Package config defines process configuration structures and loading hooks.
//
// Conventions:
//   - Provide New() initializer to build a Config with defaults.
//   - Domain packages never read configuration themselves; the values here
//     are mapped into their explicit parameter structs at composition time.
//   - External errors must be wrapped via this package's error helpers.
package config

import (
	"fmt"
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// TeamsPath, PlayersPath and GamesPath locate the snapshot files the
	// data-loading layer reads.
	TeamsPath   string `koanf:"teams_path"`
	PlayersPath string `koanf:"players_path"`
	GamesPath   string `koanf:"games_path"`

	// WorkerCount bounds concurrent matchup forecasts in a slate.
	WorkerCount int `koanf:"worker_count"`

	// TrialCount is the number of Monte Carlo trials per matchup.
	TrialCount int `koanf:"trial_count"`

	// TotalThresholds are the goal totals reported as tail probabilities.
	TotalThresholds []int `koanf:"total_thresholds"`

	// Seed fixes the simulation random streams for reproducible runs;
	// zero selects fresh entropy per run.
	Seed int64 `koanf:"seed"`

	// Expected-rate model constants.
	HomeAdvantage         float64 `koanf:"home_advantage"`
	LeagueAvgGoalsFor     float64 `koanf:"league_avg_goals_for"`
	LeagueAvgGoalsAgainst float64 `koanf:"league_avg_goals_against"`
	LambdaHomeMin         float64 `koanf:"lambda_home_min"`
	LambdaHomeMax         float64 `koanf:"lambda_home_max"`
	LambdaAwayMin         float64 `koanf:"lambda_away_min"`
	LambdaAwayMax         float64 `koanf:"lambda_away_max"`

	// Form signal bounds.
	RecentWindow   int     `koanf:"recent_window"`
	ContributorCap int     `koanf:"contributor_cap"`
	FormFactorMin  float64 `koanf:"form_factor_min"`
	FormFactorMax  float64 `koanf:"form_factor_max"`
	TeamFormMin    float64 `koanf:"team_form_min"`
	TeamFormMax    float64 `koanf:"team_form_max"`

	// Effectiveness ranking knobs.
	TopK               int     `koanf:"top_k"`
	SmallSampleGames   int     `koanf:"small_sample_games"`
	SmallSamplePenalty float64 `koanf:"small_sample_penalty"`

	// Composite score weights.
	WeightRecentRate   float64 `koanf:"weight_recent_rate"`
	WeightSeasonRate   float64 `koanf:"weight_season_rate"`
	WeightShots        float64 `koanf:"weight_shots"`
	WeightShotsOnGoal  float64 `koanf:"weight_shots_on_goal"`
	WeightTimeOnIce    float64 `koanf:"weight_time_on_ice"`
	WeightPossession   float64 `koanf:"weight_possession"`
	WeightDefense      float64 `koanf:"weight_defense"`
	WeightPlusMinus    float64 `koanf:"weight_plus_minus"`
	WeightPenaltyMin   float64 `koanf:"weight_penalty_min"`
	WeightSeasonPoints float64 `koanf:"weight_season_points"`
	WeightGamesPlayed  float64 `koanf:"weight_games_played"`
}

// New creates a Config carrying the documented defaults.
func New() *Config {
	return &Config{
		LogLevel:    "info",
		TeamsPath:   "snapshots/teamsStats.json",
		PlayersPath: "snapshots/playerStats.json",
		GamesPath:   "snapshots/todayGames.json",

		WorkerCount: runtime.NumCPU(),

		TrialCount:      3000,
		TotalThresholds: []int{5, 6},
		Seed:            0,

		HomeAdvantage:         0.12,
		LeagueAvgGoalsFor:     2.7,
		LeagueAvgGoalsAgainst: 2.9,
		LambdaHomeMin:         0.2,
		LambdaHomeMax:         6.0,
		LambdaAwayMin:         0.1,
		LambdaAwayMax:         6.0,

		RecentWindow:   5,
		ContributorCap: 9,
		FormFactorMin:  0.5,
		FormFactorMax:  1.5,
		TeamFormMin:    0.85,
		TeamFormMax:    1.15,

		TopK:               3,
		SmallSampleGames:   3,
		SmallSamplePenalty: 0.25,

		WeightRecentRate:   0.40,
		WeightSeasonRate:   0.15,
		WeightShots:        0.12,
		WeightShotsOnGoal:  0.08,
		WeightTimeOnIce:    0.10,
		WeightPossession:   0.08,
		WeightDefense:      0.07,
		WeightPlusMinus:    0.06,
		WeightPenaltyMin:   0.03,
		WeightSeasonPoints: 0.002,
		WeightGamesPlayed:  0.001,
	}
}

// Validate fails fast on configuration that would silently produce
// meaningless statistics.
func (c *Config) Validate() error {
	if c.TrialCount < 1 {
		return fmt.Errorf("%w: trial_count must be >= 1, got %d", ErrInvalidConfig, c.TrialCount)
	}
	if c.WorkerCount < 1 {
		return fmt.Errorf("%w: worker_count must be >= 1, got %d", ErrInvalidConfig, c.WorkerCount)
	}
	if c.TopK < 1 {
		return fmt.Errorf("%w: top_k must be >= 1, got %d", ErrInvalidConfig, c.TopK)
	}
	if c.FormFactorMin >= c.FormFactorMax {
		return fmt.Errorf("%w: form factor band [%v, %v] is empty", ErrInvalidConfig, c.FormFactorMin, c.FormFactorMax)
	}
	if c.TeamFormMin >= c.TeamFormMax {
		return fmt.Errorf("%w: team form band [%v, %v] is empty", ErrInvalidConfig, c.TeamFormMin, c.TeamFormMax)
	}
	if c.LambdaHomeMin >= c.LambdaHomeMax || c.LambdaAwayMin >= c.LambdaAwayMax {
		return fmt.Errorf("%w: lambda clamp bands are empty", ErrInvalidConfig)
	}
	for name, w := range map[string]float64{
		"weight_recent_rate":   c.WeightRecentRate,
		"weight_season_rate":   c.WeightSeasonRate,
		"weight_shots":         c.WeightShots,
		"weight_shots_on_goal": c.WeightShotsOnGoal,
		"weight_time_on_ice":   c.WeightTimeOnIce,
		"weight_possession":    c.WeightPossession,
		"weight_defense":       c.WeightDefense,
		"weight_plus_minus":    c.WeightPlusMinus,
		"weight_penalty_min":   c.WeightPenaltyMin,
		"weight_season_points": c.WeightSeasonPoints,
		"weight_games_played":  c.WeightGamesPlayed,
	} {
		if w < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidConfig, name, w)
		}
	}
	for _, t := range c.TotalThresholds {
		if t < 0 {
			return fmt.Errorf("%w: total_thresholds must be non-negative, got %d", ErrInvalidConfig, t)
		}
	}
	return nil
}
