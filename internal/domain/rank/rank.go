// Package rank scores the skaters of one matchup on a weighted composite
// of recent form, usage, shot activity, possession, and discipline, and
// explains the extremes in plain language.
package rank

import (
	"context"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/okian/rinkcast/internal/domain/form"
	"github.com/okian/rinkcast/internal/domain/model"
)

// Default ranker configuration constants.
const (
	defaultTopK               = 3
	defaultSmallSampleGames   = 3
	defaultSmallSamplePenalty = 0.25
	toiNormalizationMinutes   = 20.0
	maxCountedGames           = 82 // a full regular season
)

// Weights are the composite score coefficients. They are configuration,
// not fitted values.
type Weights struct {
	RecentRate  float64
	SeasonRate  float64
	Shots       float64
	ShotsOnGoal float64
	TimeOnIce   float64
	Possession  float64
	Defense     float64
	PlusMinus   float64
	PenaltyMin  float64
	// Tiebreak coefficients; deliberately small so they separate
	// near-equal composites without reordering materially different ones.
	SeasonPoints float64
	GamesPlayed  float64
}

// DefaultWeights returns the documented default coefficients.
func DefaultWeights() Weights {
	return Weights{
		RecentRate:   0.40,
		SeasonRate:   0.15,
		Shots:        0.12,
		ShotsOnGoal:  0.08,
		TimeOnIce:    0.10,
		Possession:   0.08,
		Defense:      0.07,
		PlusMinus:    0.06,
		PenaltyMin:   0.03,
		SeasonPoints: 0.002,
		GamesPlayed:  0.001,
	}
}

// Params configures the ranker.
type Params struct {
	Weights Weights
	// TopK is how many hot and cold players are reported.
	TopK int
	// SmallSampleGames and SmallSamplePenalty penalize tiny samples: a
	// player below the games threshold loses the flat penalty.
	SmallSampleGames   int
	SmallSamplePenalty float64
	// Form bounds the recent-rate signal feeding the composite.
	Form form.Params
}

// DefaultParams returns the documented default ranker parameters.
func DefaultParams() Params {
	return Params{
		Weights:            DefaultWeights(),
		TopK:               defaultTopK,
		SmallSampleGames:   defaultSmallSampleGames,
		SmallSamplePenalty: defaultSmallSamplePenalty,
		Form:               form.DefaultParams(),
	}
}

// Entry is one skater's composite score with its component breakdown,
// used purely for ranking and explanation text within a single report.
type Entry struct {
	Name string
	Team string

	GamesPlayed   int
	RecentRate    float64
	SeasonRate    float64
	SeasonPoints  float64
	ShotsPerGame  float64
	SOGPerGame    float64
	TimeOnIceMin  float64
	PossessionPct float64
	HitsPerGame   float64
	BlocksPerGame float64
	PlusMinus     float64
	PenaltyMin    float64
	PIMPerGame    float64

	BaseScore  float64
	AdjScore   float64
	FinalScore float64

	// NoData flags a player whose inputs were entirely absent; such
	// entries rank but are distinguished from genuinely computed lows.
	NoData bool

	Explanation string
}

// Ranking is the per-matchup result: all eligible skaters sorted by final
// score descending, with the hot and cold extremes broken out.
type Ranking struct {
	Players []Entry
	Hot     []Entry
	Cold    []Entry
}

// Empty reports whether no eligible skater data was available.
func (r Ranking) Empty() bool { return len(r.Players) == 0 }

// Option applies a configuration option to the Ranker.
type Option func(*Ranker)

// WithParams replaces the ranker parameters.
func WithParams(p Params) Option {
	return func(r *Ranker) { r.params = p }
}

// WithPhrasingSeed makes the cosmetic template selection deterministic.
// Template choice never influences scores or ordering.
func WithPhrasingSeed(seed int64) Option {
	return func(r *Ranker) {
		r.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // cosmetic phrasing selection only
	}
}

// Ranker computes effectiveness rankings for matchups. Not safe for
// concurrent use; create one per worker.
type Ranker struct {
	params Params
	rng    *rand.Rand
}

// New creates a Ranker with configuration options.
func New(opts ...Option) *Ranker {
	r := &Ranker{
		params: DefaultParams(),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // cosmetic phrasing selection only
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rank scores every eligible skater on the two matchup teams and selects
// the hot and cold extremes. Goaltenders are excluded. An empty ranking is
// a condition, not an error.
func (r *Ranker) Rank(_ context.Context, matchup model.Matchup, players []model.PlayerRecord) Ranking {
	// Slate entries are not guaranteed to carry upper-case abbreviations.
	home := strings.ToUpper(matchup.HomeAbbrev)
	away := strings.ToUpper(matchup.AwayAbbrev)

	entries := make([]Entry, 0, len(players))
	for _, p := range players {
		if team := strings.ToUpper(p.Team); team != home && team != away {
			continue
		}
		if p.Goaltender() {
			continue
		}
		entries = append(entries, r.score(p))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].FinalScore > entries[j].FinalScore
	})

	ranking := Ranking{Players: entries}
	if len(entries) == 0 {
		return ranking
	}

	k := r.params.TopK
	if k <= 0 {
		k = defaultTopK
	}

	ranking.Hot = append([]Entry(nil), entries[:min(k, len(entries))]...)
	ranking.Cold = r.coldest(entries, k)

	for i := range ranking.Hot {
		ranking.Hot[i].Explanation = r.describeHot(ranking.Hot[i])
	}
	for i := range ranking.Cold {
		ranking.Cold[i].Explanation = r.describeCold(ranking.Cold[i])
	}

	return ranking
}

// score computes the weighted composite for one skater.
func (r *Ranker) score(p model.PlayerRecord) Entry {
	w := r.params.Weights

	e := Entry{
		Name:          p.Name,
		Team:          p.Team,
		GamesPlayed:   p.GamesPlayed,
		RecentRate:    form.RecentRate(p, r.params.Form.RecentWindow),
		SeasonRate:    p.SeasonPointsPerGame(),
		SeasonPoints:  p.Points,
		TimeOnIceMin:  p.TimeOnIceMin,
		PossessionPct: p.CorsiPct,
		PlusMinus:     p.PlusMinus,
		PenaltyMin:    p.PenaltyMin,
		NoData:        noData(p),
	}

	if p.GamesPlayed > 0 {
		gp := float64(p.GamesPlayed)
		e.ShotsPerGame = p.Shots / gp
		e.SOGPerGame = p.ShotsOnGoal / gp
		e.HitsPerGame = p.Hits / gp
		e.BlocksPerGame = p.Blocks / gp
		e.PIMPerGame = p.PenaltyMin / gp
	} else {
		// Penalty minutes are sometimes already per-game on sparse rows.
		e.PIMPerGame = p.PenaltyMin
	}

	e.BaseScore = w.RecentRate*e.RecentRate +
		w.SeasonRate*e.SeasonRate +
		w.Shots*e.ShotsPerGame +
		w.ShotsOnGoal*e.SOGPerGame +
		w.TimeOnIce*(e.TimeOnIceMin/toiNormalizationMinutes) +
		w.Possession*((e.PossessionPct-50)/50) +
		w.Defense*((e.HitsPerGame+e.BlocksPerGame)/2)

	e.AdjScore = e.BaseScore + w.PlusMinus*e.PlusMinus - w.PenaltyMin*e.PIMPerGame
	if p.GamesPlayed < r.params.SmallSampleGames {
		e.AdjScore -= r.params.SmallSamplePenalty
	}

	counted := p.GamesPlayed
	if counted > maxCountedGames {
		counted = maxCountedGames
	}
	e.FinalScore = e.AdjScore + w.SeasonPoints*e.SeasonPoints + float64(counted)*w.GamesPlayed

	return e
}

// coldest selects the K lowest entries, preferring players with actual
// data over no-data sentinels; the latter pad the list only when fewer
// than K computed entries exist.
func (r *Ranker) coldest(entries []Entry, k int) []Entry {
	ascending := append([]Entry(nil), entries...)
	sort.SliceStable(ascending, func(i, j int) bool {
		return ascending[i].FinalScore < ascending[j].FinalScore
	})

	cold := make([]Entry, 0, k)
	for _, e := range ascending {
		if len(cold) == k {
			return cold
		}
		if !e.NoData {
			cold = append(cold, e)
		}
	}
	for _, e := range ascending {
		if len(cold) == k {
			break
		}
		if e.NoData {
			cold = append(cold, e)
		}
	}
	// Keep cold entries in ascending score order.
	sort.SliceStable(cold, func(i, j int) bool {
		return cold[i].FinalScore < cold[j].FinalScore
	})
	return cold
}

// noData reports whether a record carries no usable signal at all.
func noData(p model.PlayerRecord) bool {
	return p.GamesPlayed == 0 &&
		p.Points == 0 &&
		p.Shots == 0 &&
		p.TimeOnIceMin == 0 &&
		p.PlusMinus == 0 &&
		p.PenaltyMin == 0 &&
		len(p.RecentGames) == 0 &&
		!p.HasLastNPoints &&
		p.RecentGamesSeen == 0 &&
		len(p.PerGamePoints) == 0
}
