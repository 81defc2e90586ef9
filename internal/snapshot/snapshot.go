// Package snapshot reads the collector's JSON snapshot files from disk:
// team stats, player stats and the daily game slate. The files are loose
// arrays of objects; teams and players are handed to the normalizer as raw
// rows, games are parsed into matchups here.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/okian/rinkcast/internal/domain/model"
	"github.com/okian/rinkcast/internal/domain/normalize"
	"github.com/okian/rinkcast/pkg/logger"
	"github.com/okian/rinkcast/pkg/metrics"
)

// Option configures the loader.
type Option func(*Loader)

// WithLogger sets the logger used for per-row warnings.
func WithLogger(l logger.Logger) Option {
	return func(ld *Loader) {
		ld.log = l
	}
}

// Loader reads snapshot files produced by the stats collector.
type Loader struct {
	log logger.Logger
}

// New creates a snapshot loader.
func New(opts ...Option) *Loader {
	ld := &Loader{
		log: logger.Named("snapshot"),
	}
	for _, opt := range opts {
		opt(ld)
	}

	return ld
}

// Teams reads the team stats file and returns its rows untouched. Schema
// differences between collector versions are resolved downstream by the
// normalizer.
func (ld *Loader) Teams(ctx context.Context, path string) ([]normalize.Row, error) {
	return ld.rows(ctx, path)
}

// Players reads the player stats file and returns its rows untouched.
func (ld *Loader) Players(ctx context.Context, path string) ([]normalize.Row, error) {
	return ld.rows(ctx, path)
}

// Games reads the daily slate file and parses each entry into a matchup.
// Entries missing either team abbreviation are dropped with a warning so a
// single malformed game cannot sink the slate.
func (ld *Loader) Games(ctx context.Context, path string) ([]model.Matchup, error) {
	rows, err := ld.rows(ctx, path)
	if err != nil {
		return nil, err
	}

	matchups := make([]model.Matchup, 0, len(rows))
	for i, row := range rows {
		m := parseGame(row)
		if m.HomeAbbrev == "" || m.AwayAbbrev == "" {
			ld.log.Warn(ctx, "dropping game without both team abbreviations",
				logger.String("path", path),
				logger.Int("index", i),
			)

			continue
		}
		matchups = append(matchups, m)
	}

	return matchups, nil
}

// Load reads all three snapshot files in one call and reports the snapshot
// sizes to the metrics gauges.
func (ld *Loader) Load(ctx context.Context, teamsPath, playersPath, gamesPath string) ([]normalize.Row, []normalize.Row, []model.Matchup, error) {
	teams, err := ld.Teams(ctx, teamsPath)
	if err != nil {
		return nil, nil, nil, err
	}

	players, err := ld.Players(ctx, playersPath)
	if err != nil {
		return nil, nil, nil, err
	}

	games, err := ld.Games(ctx, gamesPath)
	if err != nil {
		return nil, nil, nil, err
	}

	metrics.UpdateSnapshotSizes(len(teams), len(players))

	return teams, players, games, nil
}

func (ld *Loader) rows(_ context.Context, path string) ([]normalize.Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadSnapshot, path, err)
	}

	var rows []normalize.Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecodeSnapshot, path, err)
	}

	return rows, nil
}

func parseGame(row normalize.Row) model.Matchup {
	return model.Matchup{
		HomeAbbrev: teamAbbrev(row["homeTeam"]),
		AwayAbbrev: teamAbbrev(row["awayTeam"]),
		Date:       stringField(row["date"]),
		StartUTC:   stringField(row["startTimeUTC"]),
		Venue:      stringField(row["venue"]),
	}
}

// teamAbbrev digs the abbreviation out of a slate entry's team object. Some
// collector versions emit a bare string instead of an object.
func teamAbbrev(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]any:
		for _, key := range []string{"abbrev", "abrev", "abbreviation"} {
			if s := stringField(t[key]); s != "" {
				return s
			}
		}
	}

	return ""
}

func stringField(v any) string {
	s, _ := v.(string)

	return s
}
