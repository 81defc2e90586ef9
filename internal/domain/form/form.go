// Package form estimates recent scoring form for players and teams.
//
// The single signal propagated forward is the form factor: a player's
// recent per-game scoring rate divided by their season rate, clamped so a
// handful of outlier games can never dominate a forecast.
package form

import (
	"sort"

	"github.com/okian/rinkcast/internal/domain/model"
)

// Default form configuration constants.
const (
	defaultRecentWindow   = 5
	defaultContributorCap = 9 // a lineup-sized sample
	defaultPlayerMin      = 0.5
	defaultPlayerMax      = 1.5
	defaultTeamMin        = 0.85
	defaultTeamMax        = 1.15
)

// Params bounds the form signal. Zero values fall back to the documented
// defaults via Normalize.
type Params struct {
	// RecentWindow is the number of recent-game entries considered.
	RecentWindow int
	// ContributorCap caps how many regular contributors feed a team factor.
	ContributorCap int
	// PlayerMin and PlayerMax clamp the per-player form factor.
	PlayerMin float64
	PlayerMax float64
	// TeamMin and TeamMax clamp the team-level adjustment factor.
	TeamMin float64
	TeamMax float64
}

// DefaultParams returns the documented default form parameters.
func DefaultParams() Params {
	return Params{
		RecentWindow:   defaultRecentWindow,
		ContributorCap: defaultContributorCap,
		PlayerMin:      defaultPlayerMin,
		PlayerMax:      defaultPlayerMax,
		TeamMin:        defaultTeamMin,
		TeamMax:        defaultTeamMax,
	}
}

// Normalize fills zero fields with defaults.
func (p Params) Normalize() Params {
	d := DefaultParams()
	if p.RecentWindow <= 0 {
		p.RecentWindow = d.RecentWindow
	}
	if p.ContributorCap <= 0 {
		p.ContributorCap = d.ContributorCap
	}
	if p.PlayerMax <= p.PlayerMin || p.PlayerMax == 0 {
		p.PlayerMin, p.PlayerMax = d.PlayerMin, d.PlayerMax
	}
	if p.TeamMax <= p.TeamMin || p.TeamMax == 0 {
		p.TeamMin, p.TeamMax = d.TeamMin, d.TeamMax
	}
	return p
}

// RecentRate determines a player's recent per-game scoring rate from the
// best available source, in priority order: the recent-games sequence,
// explicit aggregate recent fields, a bare per-game point list, and finally
// the season rate itself.
func RecentRate(p model.PlayerRecord, window int) float64 {
	if window <= 0 {
		window = defaultRecentWindow
	}

	if len(p.RecentGames) > 0 {
		games := p.RecentGames
		if len(games) > window {
			games = games[:window]
		}
		sum := 0.0
		for _, g := range games {
			if g.HasPoints {
				sum += float64(g.Points)
			} else {
				sum += float64(g.Goals + g.Assists)
			}
		}
		return sum / float64(len(games))
	}

	if p.HasLastNPoints {
		return p.LastNPoints / float64(window)
	}
	if p.RecentGamesSeen > 0 {
		return p.RecentPoints / float64(p.RecentGamesSeen)
	}

	if len(p.PerGamePoints) > 0 {
		sum := 0.0
		for _, v := range p.PerGamePoints {
			sum += v
		}
		return sum / float64(len(p.PerGamePoints))
	}

	gp := p.GamesPlayed
	if gp < 1 {
		gp = 1
	}
	return p.Points / float64(gp)
}

// Factor computes the bounded recent/season ratio. A zero season rate
// yields the neutral 1.0 rather than zero, so scoreless players do not
// drag a team factor down on no evidence.
func Factor(recentRate, seasonRate float64, params Params) float64 {
	params = params.Normalize()
	factor := 1.0
	if seasonRate > 0 {
		factor = recentRate / seasonRate
	}
	return clamp(factor, params.PlayerMin, params.PlayerMax)
}

// PlayerFactor is Factor applied to one record with the standard sources.
func PlayerFactor(p model.PlayerRecord, params Params) float64 {
	params = params.Normalize()
	return Factor(RecentRate(p, params.RecentWindow), p.SeasonPointsPerGame(), params)
}

// TeamFactor aggregates the form of a team's regular contributors into a
// single multiplier for the team's expected-goals rate. Contributors are
// the players with season games played, preferring those with the most,
// capped at a lineup-sized sample. Teams with no usable players get the
// neutral 1.0.
func TeamFactor(players []model.PlayerRecord, teamAbbrev string, params Params) float64 {
	params = params.Normalize()

	var teamPlayers []model.PlayerRecord
	for _, p := range players {
		if p.Team == teamAbbrev && !p.Goaltender() {
			teamPlayers = append(teamPlayers, p)
		}
	}
	if len(teamPlayers) == 0 {
		return 1.0
	}

	candidates := make([]model.PlayerRecord, 0, len(teamPlayers))
	for _, p := range teamPlayers {
		if p.GamesPlayed > 0 {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		candidates = teamPlayers
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].GamesPlayed > candidates[j].GamesPlayed
	})
	if len(candidates) > params.ContributorCap {
		candidates = candidates[:params.ContributorCap]
	}

	sum := 0.0
	for _, p := range candidates {
		sum += PlayerFactor(p, params)
	}
	avg := sum / float64(len(candidates))
	return clamp(avg, params.TeamMin, params.TeamMax)
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
