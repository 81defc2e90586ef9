package normalize

import (
	"context"
	"strings"

	"github.com/okian/rinkcast/internal/domain/model"
	"github.com/okian/rinkcast/pkg/logger"
)

// Candidate keys per logical field, tried in priority order. These cover
// the naming variants seen across snapshot sources.
var (
	teamAbbrevKeys = []string{"abrev", "abbrev", "abbreviation", "teamAbbrev"}
	teamNameKeys   = []string{"team", "name", "teamName", "fullName"}

	playerNameKeys = []string{"fullName", "name", "playerName", "displayName", "player"}
	playerTeamKeys = []string{"team", "teamAbbrev", "currentTeamAbbrev", "team_name"}

	recentGamesKeys = []string{
		"last5Games", "last_5", "recentGames", "recent_game_stats",
		"recentGameStats", "lastGames", "gameLog", "gameLogs",
	}
)

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithLogger sets a custom logger for the normalizer.
func WithLogger(l logger.Logger) Option {
	return func(n *Normalizer) {
		if l != nil {
			n.logger = l
		}
	}
}

// Normalizer is a pure transform from raw rows to model records. Missing or
// malformed fields degrade to defaults and are logged as informational,
// never fatal.
type Normalizer struct {
	logger logger.Logger
}

// New creates a Normalizer with configuration options.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Teams builds the TeamRecord table from raw team rows.
func (n *Normalizer) Teams(ctx context.Context, rows []Row) []model.TeamRecord {
	teams := make([]model.TeamRecord, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		t := n.team(ctx, row)
		if t.Abbrev == "" {
			n.info(ctx, "skipping team row without abbreviation")
			continue
		}
		teams = append(teams, t)
	}
	return teams
}

func (n *Normalizer) team(ctx context.Context, row Row) model.TeamRecord {
	t := model.TeamRecord{
		Abbrev: strings.ToUpper(text(row, "", teamAbbrevKeys...)),
		Name:   text(row, "", teamNameKeys...),
	}
	t.GamesPlayed, _ = integer(row, 0, "gamesPlayed", "gp", "games")
	t.Points, _ = integer(row, 0, "points", "pts")
	t.GoalsAgainst, _ = integer(row, 0, "goalAgainst", "goalsAgainst", "ga")

	// Some sources publish goal differential instead of goals-for; the sum
	// with goals-against recovers the total.
	if gf, ok := integer(row, 0, "goalFor", "goalsFor", "gf"); ok {
		t.GoalsFor = gf
	} else if gd, ok := integer(row, 0, "goalDifferential", "goalDiff", "gd"); ok {
		t.GoalsFor = gd + t.GoalsAgainst
	} else {
		n.info(ctx, "team row missing goals-for and goal differential", logger.String("team", t.Abbrev))
	}

	// Per-game rates are undefined at zero games played; consumers fall
	// back to league averages.
	if t.GamesPlayed > 0 {
		t.GoalsForPerGame = float64(t.GoalsFor) / float64(t.GamesPlayed)
		t.GoalsAgainstPerGame = float64(t.GoalsAgainst) / float64(t.GamesPlayed)
		t.HasRates = true
	}
	return t
}

// Players builds the PlayerRecord table from raw player rows.
func (n *Normalizer) Players(ctx context.Context, rows []Row) []model.PlayerRecord {
	players := make([]model.PlayerRecord, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		players = append(players, n.player(ctx, row))
	}
	return players
}

func (n *Normalizer) player(ctx context.Context, row Row) model.PlayerRecord {
	p := model.PlayerRecord{
		Name: text(row, "", playerNameKeys...),
		Team: strings.ToUpper(text(row, "", playerTeamKeys...)),
	}
	if p.Name == "" {
		p.Name = text(row, "unknown", "id", "playerId")
	}

	p.Position = strings.ToUpper(text(row, "", "position", "pos"))
	if goaltender(row["position"]) || goaltender(row["pos"]) {
		p.Position = "G"
	}

	p.GamesPlayed, _ = integer(row, 0, "gamesPlayed", "gp", "games")
	p.Points, _ = number(row, 0, "points", "pts")
	p.Shots, _ = number(row, 0, "shots", "shotsTotal", "shotsFor")
	p.ShotsOnGoal, _ = number(row, 0, "shotsOnGoal", "sog")
	p.Hits, _ = number(row, 0, "hits", "h")
	p.Blocks, _ = number(row, 0, "blocked", "blocks")
	p.PlusMinus, _ = number(row, 0, "plusMinus", "plus_minus")
	p.PenaltyMin, _ = number(row, 0, "penaltyMinutes", "pim")
	p.CorsiPct, _ = number(row, 50, "corsiForPct", "cf_pct", "corsi_pct")
	p.FenwickPct, _ = number(row, 50, "fenwickForPct", "ff_pct")
	p.ShootingPct, _ = number(row, 0, "shootingPct", "shPct", "shootingPercentage")

	for _, k := range []string{"timeOnIcePerGame", "timeOnIce", "toi"} {
		if v, ok := row[k]; ok && v != nil {
			p.TimeOnIceMin = ParseTimeOnIce(v)
			break
		}
	}

	n.recentForm(ctx, row, &p)
	return p
}

// recentForm extracts whichever recent-scoring signals the row carries:
// a per-game log, explicit aggregates, or a bare list of point values.
func (n *Normalizer) recentForm(ctx context.Context, row Row, p *model.PlayerRecord) {
	for _, entry := range list(row, recentGamesKeys...) {
		g, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		rg := model.RecentGame{}
		goals, _ := integer(g, 0, "goals", "G", "g")
		assists, _ := integer(g, 0, "assists", "A", "a")
		rg.Goals = goals
		rg.Assists = assists
		rg.Points, rg.HasPoints = integer(g, 0, "points", "PTS", "pts")
		p.RecentGames = append(p.RecentGames, rg)
	}

	// Explicit aggregates only matter when no per-game log was found.
	if len(p.RecentGames) == 0 {
		if v, ok := number(row, 0, "last5Points", "lastNPoints"); ok {
			p.LastNPoints = v
			p.HasLastNPoints = true
		}
		if pts, ok := number(row, 0, "recentPoints"); ok {
			if games, ok := integer(row, 0, "recentGames", "recentGamesPlayed"); ok && games > 0 {
				p.RecentPoints = pts
				p.RecentGamesSeen = games
			}
		}
	}

	// "lastFive" style: a bare list of per-game point values.
	for _, v := range list(row, "lastFive", "recentPointsPerGame") {
		if f, ok := toFloat(v); ok {
			p.PerGamePoints = append(p.PerGamePoints, f)
		} else {
			n.info(ctx, "ignoring non-numeric recent point value", logger.String("player", p.Name))
		}
	}
}

func (n *Normalizer) info(ctx context.Context, msg string, fields ...logger.Field) {
	if n.logger != nil {
		n.logger.Info(ctx, msg, fields...)
	}
}
