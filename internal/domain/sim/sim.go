// Package sim estimates matchup outcome probabilities by Monte Carlo
// simulation over a Poisson goal model.
package sim

import (
	"context"
	"math/rand"
	"time"

	"github.com/okian/rinkcast/internal/domain/rates"
)

// Default simulation configuration constants.
const (
	defaultTrials = 3000
)

// defaultThresholds are the goal totals reported as tail probabilities.
var defaultThresholds = []int{5, 6}

// Result aggregates the outcome of a finite number of independent trials.
// It is recomputed per report and never persisted.
type Result struct {
	Trials int

	HomeWinProb float64
	AwayWinProb float64
	DrawProb    float64

	AvgHomeGoals  float64
	AvgAwayGoals  float64
	AvgTotalGoals float64

	// TotalsOver maps a goal threshold t to P(total goals > t), estimated
	// from the same sample as the win probabilities.
	TotalsOver map[int]float64
}

// Option applies a configuration option to the Simulator.
type Option func(*Simulator)

// WithTrials sets the number of independent trials per run.
func WithTrials(n int) Option {
	return func(s *Simulator) {
		if n > 0 {
			s.trials = n
		}
	}
}

// WithThresholds sets the goal totals reported as tail probabilities.
func WithThresholds(thresholds []int) Option {
	return func(s *Simulator) {
		if len(thresholds) > 0 {
			s.thresholds = append([]int(nil), thresholds...)
		}
	}
}

// WithSeed makes the simulator deterministic for a fixed trial count.
func WithSeed(seed int64) Option {
	return func(s *Simulator) {
		s.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // statistical sampling, not security
	}
}

// WithRand injects a random stream. Concurrent simulations must each own
// their stream; sharing one would make outcome probabilities
// order-dependent.
func WithRand(rng *rand.Rand) Option {
	return func(s *Simulator) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// Simulator draws repeated independent game outcomes from a Poisson model.
// It is not safe for concurrent use; create one per worker.
type Simulator struct {
	trials     int
	thresholds []int
	rng        *rand.Rand
}

// New creates a Simulator with configuration options. Without WithSeed or
// WithRand it uses a fresh entropy source per construction.
func New(opts ...Option) *Simulator {
	s := &Simulator{
		trials:     defaultTrials,
		thresholds: defaultThresholds,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // statistical sampling, not security
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Trials reports the configured trial count.
func (s *Simulator) Trials() int { return s.trials }

// Run simulates the matchup for the adjusted rate pair. Probabilities sum
// to one up to floating-point error; runtime is linear in the trial count.
func (s *Simulator) Run(_ context.Context, lambda rates.Pair) Result {
	res := Result{
		Trials:     s.trials,
		TotalsOver: make(map[int]float64, len(s.thresholds)),
	}

	var homeWins, awayWins, draws int
	var homeSum, awaySum int
	over := make(map[int]int, len(s.thresholds))

	for i := 0; i < s.trials; i++ {
		hg := poissonSample(s.rng, lambda.Home)
		ag := poissonSample(s.rng, lambda.Away)

		switch {
		case hg > ag:
			homeWins++
		case ag > hg:
			awayWins++
		default:
			draws++
		}

		homeSum += hg
		awaySum += ag
		for _, t := range s.thresholds {
			if hg+ag > t {
				over[t]++
			}
		}
	}

	n := float64(s.trials)
	res.HomeWinProb = float64(homeWins) / n
	res.AwayWinProb = float64(awayWins) / n
	res.DrawProb = float64(draws) / n
	res.AvgHomeGoals = float64(homeSum) / n
	res.AvgAwayGoals = float64(awaySum) / n
	res.AvgTotalGoals = res.AvgHomeGoals + res.AvgAwayGoals
	for _, t := range s.thresholds {
		res.TotalsOver[t] = float64(over[t]) / n
	}

	return res
}
