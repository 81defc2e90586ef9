package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	app "github.com/okian/rinkcast/internal/app"
	"github.com/okian/rinkcast/internal/config"
	"github.com/okian/rinkcast/internal/domain/form"
	"github.com/okian/rinkcast/internal/domain/normalize"
	"github.com/okian/rinkcast/internal/domain/rank"
	"github.com/okian/rinkcast/internal/domain/rates"
	"github.com/okian/rinkcast/internal/report"
	"github.com/okian/rinkcast/internal/snapshot"
	"github.com/okian/rinkcast/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics;
	// the engine registers its own.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			os.Stderr.WriteString("failed to flush logs: " + err.Error() + "\n")
		}
	}()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if err := run(ctx, cfg, loggerInstance); err != nil {
		loggerInstance.Error(ctx, "run failed", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	loader := snapshot.New(snapshot.WithLogger(log.Named("snapshot")))
	teamRows, playerRows, games, err := loader.Load(ctx, cfg.TeamsPath, cfg.PlayersPath, cfg.GamesPath)
	if err != nil {
		return err
	}

	norm := normalize.New(normalize.WithLogger(log.Named("normalize")))
	teams := norm.Teams(ctx, teamRows)
	players := norm.Players(ctx, playerRows)

	log.Info(ctx, "snapshots loaded",
		logger.Int("teams", len(teams)),
		logger.Int("players", len(players)),
		logger.Int("games", len(games)),
	)

	if len(games) == 0 {
		fmt.Println("No games found in the daily slate.")
		return nil
	}

	fmt.Print(report.GamesList(games))

	engine := app.New(
		app.WithLogger(log.Named("engine")),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithTrials(cfg.TrialCount),
		app.WithThresholds(cfg.TotalThresholds),
		app.WithSeed(cfg.Seed),
		app.WithRatesParams(ratesParams(cfg)),
		app.WithFormParams(formParams(cfg)),
		app.WithRankParams(rankParams(cfg)),
	)

	for _, res := range engine.ForecastSlate(ctx, games, teams, players) {
		if res.Err != nil {
			log.Warn(ctx, "matchup skipped",
				logger.String("home", res.Matchup.HomeAbbrev),
				logger.String("away", res.Matchup.AwayAbbrev),
				logger.Error(res.Err),
			)

			continue
		}
		fmt.Print(report.Render(res.Forecast))
	}

	return nil
}

func ratesParams(cfg *config.Config) rates.Params {
	p := rates.DefaultParams()
	p.HomeAdvantage = cfg.HomeAdvantage
	p.LeagueAvgGoalsFor = cfg.LeagueAvgGoalsFor
	p.LeagueAvgGoalsAgainst = cfg.LeagueAvgGoalsAgainst
	p.HomeMin = cfg.LambdaHomeMin
	p.HomeMax = cfg.LambdaHomeMax
	p.AwayMin = cfg.LambdaAwayMin
	p.AwayMax = cfg.LambdaAwayMax

	return p
}

func formParams(cfg *config.Config) form.Params {
	return form.Params{
		RecentWindow:   cfg.RecentWindow,
		ContributorCap: cfg.ContributorCap,
		PlayerMin:      cfg.FormFactorMin,
		PlayerMax:      cfg.FormFactorMax,
		TeamMin:        cfg.TeamFormMin,
		TeamMax:        cfg.TeamFormMax,
	}
}

func rankParams(cfg *config.Config) rank.Params {
	return rank.Params{
		Weights: rank.Weights{
			RecentRate:   cfg.WeightRecentRate,
			SeasonRate:   cfg.WeightSeasonRate,
			Shots:        cfg.WeightShots,
			ShotsOnGoal:  cfg.WeightShotsOnGoal,
			TimeOnIce:    cfg.WeightTimeOnIce,
			Possession:   cfg.WeightPossession,
			Defense:      cfg.WeightDefense,
			PlusMinus:    cfg.WeightPlusMinus,
			PenaltyMin:   cfg.WeightPenaltyMin,
			SeasonPoints: cfg.WeightSeasonPoints,
			GamesPlayed:  cfg.WeightGamesPlayed,
		},
		TopK:               cfg.TopK,
		SmallSampleGames:   cfg.SmallSampleGames,
		SmallSamplePenalty: cfg.SmallSamplePenalty,
		Form:               formParams(cfg),
	}
}
