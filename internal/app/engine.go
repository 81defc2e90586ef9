// Package app wires the domain stages into the forecasting engine: team
// lookup, expected-rate model, player-form adjustment, Monte Carlo
// simulation and player ranking, for single games or a whole slate.
package app

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/okian/rinkcast/internal/domain/form"
	"github.com/okian/rinkcast/internal/domain/model"
	"github.com/okian/rinkcast/internal/domain/rank"
	"github.com/okian/rinkcast/internal/domain/rates"
	"github.com/okian/rinkcast/internal/domain/sim"
	"github.com/okian/rinkcast/internal/report"
	"github.com/okian/rinkcast/pkg/logger"
	"github.com/okian/rinkcast/pkg/metrics"
)

const nanosecondsPerMillisecond = 1e6

// Engine runs the per-matchup forecasting pipeline.
type Engine struct {
	workerCount int
	trials      int
	thresholds  []int
	seed        int64

	ratesParams rates.Params
	formParams  form.Params
	rankParams  rank.Params

	logger logger.Logger
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithWorkerCount sets how many matchups a slate forecasts concurrently.
func WithWorkerCount(count int) Option {
	return func(e *Engine) {
		if count > 0 {
			e.workerCount = count
		}
	}
}

// WithTrials sets the Monte Carlo trial count per matchup.
func WithTrials(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.trials = n
		}
	}
}

// WithThresholds sets the total-goal thresholds reported per matchup.
func WithThresholds(thresholds []int) Option {
	return func(e *Engine) {
		if len(thresholds) > 0 {
			e.thresholds = append([]int(nil), thresholds...)
		}
	}
}

// WithSeed pins the simulation and phrasing randomness for reproducible
// runs. Zero keeps fresh entropy.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

// WithRatesParams replaces the expected-rate model parameters.
func WithRatesParams(p rates.Params) Option {
	return func(e *Engine) {
		e.ratesParams = p.Normalize()
	}
}

// WithFormParams replaces the form-estimator parameters.
func WithFormParams(p form.Params) Option {
	return func(e *Engine) {
		e.formParams = p.Normalize()
	}
}

// WithRankParams replaces the player-ranking parameters.
func WithRankParams(p rank.Params) Option {
	return func(e *Engine) {
		e.rankParams = p
	}
}

// WithLogger sets a custom logger for the engine.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates a forecasting engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		workerCount: runtime.NumCPU(),
		thresholds:  []int{5, 6},
		ratesParams: rates.DefaultParams(),
		formParams:  form.DefaultParams(),
		rankParams:  rank.DefaultParams(),
		logger:      logger.Named("engine"),
	}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// SlateResult pairs one slate entry with its forecast or its error. Order
// matches the input slate.
type SlateResult struct {
	Matchup  model.Matchup
	Forecast report.Forecast
	Err      error
}

// ForecastGame runs the full pipeline for a single matchup. A matchup
// whose team is absent from the stats table returns ErrTeamNotFound;
// missing player data degrades to an empty ranking instead of failing.
func (e *Engine) ForecastGame(ctx context.Context, matchup model.Matchup, teams []model.TeamRecord, players []model.PlayerRecord) (report.Forecast, error) {
	return e.forecast(ctx, matchup, indexTeams(teams), players, e.newSimulator(0), e.newRanker(0))
}

// ForecastSlate forecasts every matchup in the slate over a bounded pool
// of workers. Each worker owns its simulator and ranker so RNG state is
// never shared. Per-matchup failures are carried in the result; the slate
// always completes.
func (e *Engine) ForecastSlate(ctx context.Context, matchups []model.Matchup, teams []model.TeamRecord, players []model.PlayerRecord) []SlateResult {
	results := make([]SlateResult, len(matchups))
	if len(matchups) == 0 {
		return results
	}

	table := indexTeams(teams)
	jobs := make(chan int)

	workers := e.workerCount
	if workers > len(matchups) {
		workers = len(matchups)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			// Each worker derives its own stream so seeded runs stay
			// reproducible without sharing a rand.Rand across goroutines.
			simulator := e.newSimulator(int64(worker))
			ranker := e.newRanker(int64(worker))

			for i := range jobs {
				fc, err := e.forecast(ctx, matchups[i], table, players, simulator, ranker)
				results[i] = SlateResult{Matchup: matchups[i], Forecast: fc, Err: err}
			}
		}(w)
	}

	for i := range matchups {
		if err := ctx.Err(); err != nil {
			for j := i; j < len(matchups); j++ {
				results[j] = SlateResult{Matchup: matchups[j], Err: err}
			}

			break
		}
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

func (e *Engine) forecast(ctx context.Context, matchup model.Matchup, table map[string]model.TeamRecord, players []model.PlayerRecord, simulator *sim.Simulator, ranker *rank.Ranker) (report.Forecast, error) {
	started := time.Now()

	home, ok := table[strings.ToUpper(matchup.HomeAbbrev)]
	if !ok {
		metrics.RecordMatchupSkipped()
		e.logger.Warn(ctx, "skipping matchup, team missing from stats table",
			logger.String("team", matchup.HomeAbbrev),
		)

		return report.Forecast{}, fmt.Errorf("%w: %s", ErrTeamNotFound, matchup.HomeAbbrev)
	}
	away, ok := table[strings.ToUpper(matchup.AwayAbbrev)]
	if !ok {
		metrics.RecordMatchupSkipped()
		e.logger.Warn(ctx, "skipping matchup, team missing from stats table",
			logger.String("team", matchup.AwayAbbrev),
		)

		return report.Forecast{}, fmt.Errorf("%w: %s", ErrTeamNotFound, matchup.AwayAbbrev)
	}

	fc := report.New(matchup)
	fc.Home = home
	fc.Away = away

	fc.Expected = rates.Expected(home, away, e.ratesParams)
	fc.HomeFormFactor = form.TeamFactor(players, home.Abbrev, e.formParams)
	fc.AwayFormFactor = form.TeamFactor(players, away.Abbrev, e.formParams)
	fc.Adjusted = rates.Pair{
		Home: fc.Expected.Home * fc.HomeFormFactor,
		Away: fc.Expected.Away * fc.AwayFormFactor,
	}

	simStarted := time.Now()
	fc.Sim = simulator.Run(ctx, fc.Adjusted)
	metrics.RecordSimulationLatency(float64(time.Since(simStarted).Nanoseconds()) / nanosecondsPerMillisecond)
	metrics.RecordTrialsSimulated(fc.Sim.Trials)

	fc.Ranking = ranker.Rank(ctx, matchup, players)
	if fc.Ranking.Empty() {
		metrics.RecordRankingEmpty()
	} else {
		metrics.RecordRankingBuilt()
	}

	metrics.RecordMatchupForecast()
	metrics.RecordForecastLatency(float64(time.Since(started).Nanoseconds()) / nanosecondsPerMillisecond)

	e.logger.Debug(ctx, "matchup forecast",
		logger.String("forecast_id", fc.ID),
		logger.String("home", matchup.HomeAbbrev),
		logger.String("away", matchup.AwayAbbrev),
		logger.Float64("lambda_home", fc.Adjusted.Home),
		logger.Float64("lambda_away", fc.Adjusted.Away),
	)

	return fc, nil
}

func (e *Engine) newSimulator(stream int64) *sim.Simulator {
	opts := []sim.Option{sim.WithThresholds(e.thresholds)}
	if e.trials > 0 {
		opts = append(opts, sim.WithTrials(e.trials))
	}
	if e.seed != 0 {
		opts = append(opts, sim.WithSeed(e.seed+stream))
	}

	return sim.New(opts...)
}

func (e *Engine) newRanker(stream int64) *rank.Ranker {
	opts := []rank.Option{rank.WithParams(e.rankParams)}
	if e.seed != 0 {
		opts = append(opts, rank.WithPhrasingSeed(e.seed+stream))
	}

	return rank.New(opts...)
}

func indexTeams(teams []model.TeamRecord) map[string]model.TeamRecord {
	table := make(map[string]model.TeamRecord, len(teams))
	for _, t := range teams {
		table[strings.ToUpper(t.Abbrev)] = t
	}

	return table
}
