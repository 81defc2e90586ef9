// Package rates derives expected-goal rates for a matchup from two teams'
// season scoring and conceding tendencies.
package rates

import "github.com/okian/rinkcast/internal/domain/model"

// Default model constants. The blend weights and home-ice term are tunable
// configuration, not fitted values.
const (
	defaultScoringWeight    = 0.55
	defaultConcedingWeight  = 0.45
	defaultHomeAdvantage    = 0.12
	defaultLeagueAvgFor     = 2.7
	defaultLeagueAvgAgainst = 2.9
	defaultHomeMin          = 0.2
	defaultHomeMax          = 6.0
	defaultAwayMin          = 0.1
	defaultAwayMax          = 6.0
)

// Params configures the expected-rate model.
type Params struct {
	// ScoringWeight and ConcedingWeight blend a team's own scoring rate
	// with the opponent's conceding rate.
	ScoringWeight   float64
	ConcedingWeight float64
	// HomeAdvantage is the additive home-ice term.
	HomeAdvantage float64
	// LeagueAvgGoalsFor and LeagueAvgGoalsAgainst substitute for unknown
	// per-game rates (e.g. a team with zero games played).
	LeagueAvgGoalsFor     float64
	LeagueAvgGoalsAgainst float64
	// Clamp bounds keeping the simulator inputs plausible.
	HomeMin float64
	HomeMax float64
	AwayMin float64
	AwayMax float64
}

// DefaultParams returns the documented default model parameters.
func DefaultParams() Params {
	return Params{
		ScoringWeight:         defaultScoringWeight,
		ConcedingWeight:       defaultConcedingWeight,
		HomeAdvantage:         defaultHomeAdvantage,
		LeagueAvgGoalsFor:     defaultLeagueAvgFor,
		LeagueAvgGoalsAgainst: defaultLeagueAvgAgainst,
		HomeMin:               defaultHomeMin,
		HomeMax:               defaultHomeMax,
		AwayMin:               defaultAwayMin,
		AwayMax:               defaultAwayMax,
	}
}

// Normalize fills zero fields with defaults.
func (p Params) Normalize() Params {
	d := DefaultParams()
	if p.ScoringWeight <= 0 && p.ConcedingWeight <= 0 {
		p.ScoringWeight, p.ConcedingWeight = d.ScoringWeight, d.ConcedingWeight
	}
	if p.LeagueAvgGoalsFor <= 0 {
		p.LeagueAvgGoalsFor = d.LeagueAvgGoalsFor
	}
	if p.LeagueAvgGoalsAgainst <= 0 {
		p.LeagueAvgGoalsAgainst = d.LeagueAvgGoalsAgainst
	}
	if p.HomeMax <= p.HomeMin || p.HomeMax == 0 {
		p.HomeMin, p.HomeMax = d.HomeMin, d.HomeMax
	}
	if p.AwayMax <= p.AwayMin || p.AwayMax == 0 {
		p.AwayMin, p.AwayMax = d.AwayMin, d.AwayMax
	}
	return p
}

// Pair is the expected-goal rate for each side of one matchup.
type Pair struct {
	Home float64
	Away float64
}

// Expected blends each team's scoring rate with the opponent's conceding
// rate and adds the home-ice term:
//
//	lambda_home = w_s*gf_home + w_c*ga_away + homeAdvantage
//	lambda_away = w_s*gf_away + w_c*ga_home
//
// Unknown rates fall back to league averages and both lambdas are clamped
// to a plausible band so the simulator never sees pathological inputs.
func Expected(home, away model.TeamRecord, p Params) Pair {
	p = p.Normalize()

	hGF, hGA := teamRates(home, p)
	aGF, aGA := teamRates(away, p)

	lamHome := p.ScoringWeight*hGF + p.ConcedingWeight*aGA + p.HomeAdvantage
	lamAway := p.ScoringWeight*aGF + p.ConcedingWeight*hGA

	return Pair{
		Home: clamp(lamHome, p.HomeMin, p.HomeMax),
		Away: clamp(lamAway, p.AwayMin, p.AwayMax),
	}
}

func teamRates(t model.TeamRecord, p Params) (gf, ga float64) {
	if !t.HasRates {
		return p.LeagueAvgGoalsFor, p.LeagueAvgGoalsAgainst
	}
	return t.GoalsForPerGame, t.GoalsAgainstPerGame
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
