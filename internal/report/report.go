// Package report assembles the final matchup forecast: the inputs and
// intermediates of one game's pipeline plus a fixed-width textual rendering
// suitable for a terminal.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/okian/rinkcast/internal/domain/model"
	"github.com/okian/rinkcast/internal/domain/rank"
	"github.com/okian/rinkcast/internal/domain/rates"
	"github.com/okian/rinkcast/internal/domain/sim"
)

// width is the fixed rendering width of every report section.
const width = 88

// Forecast carries everything produced for a single matchup.
type Forecast struct {
	// ID uniquely identifies this forecast run.
	ID string

	Matchup model.Matchup
	Home    model.TeamRecord
	Away    model.TeamRecord

	// Expected holds the raw model rates; Adjusted the rates after the
	// player-form adjustment was applied.
	Expected rates.Pair
	Adjusted rates.Pair

	HomeFormFactor float64
	AwayFormFactor float64

	Sim     sim.Result
	Ranking rank.Ranking
}

// New stamps a forecast with a fresh identifier.
func New(matchup model.Matchup) Forecast {
	return Forecast{
		ID:      uuid.NewString(),
		Matchup: matchup,
	}
}

// Render produces the full textual report for one forecast.
func Render(f Forecast) string {
	var b strings.Builder

	b.WriteString(strings.Repeat("=", width) + "\n")
	title := fmt.Sprintf("%s (HOME)  vs  %s (AWAY)", f.Matchup.HomeAbbrev, f.Matchup.AwayAbbrev)
	meta := fmt.Sprintf("%s  @ %s  -  %s", f.Matchup.Date, f.Matchup.StartUTC, f.Matchup.Venue)
	b.WriteString(center(title) + "\n")
	b.WriteString(center(meta) + "\n")
	sep(&b, "-")

	b.WriteString(teamLine("Home", f.Home) + "\n")
	b.WriteString(teamLine("Away", f.Away) + "\n")
	b.WriteString(fmt.Sprintf("Model expected goals (lambda): home=%.2f, away=%.2f\n", f.Expected.Home, f.Expected.Away))
	sep(&b, "-")

	if f.HomeFormFactor != 1.0 || f.AwayFormFactor != 1.0 {
		b.WriteString(fmt.Sprintf("Applied player-form adjustments - home_factor=%.3f  away_factor=%.3f\n",
			f.HomeFormFactor, f.AwayFormFactor))
		b.WriteString(fmt.Sprintf("Adjusted lambdas: home=%.2f, away=%.2f\n", f.Adjusted.Home, f.Adjusted.Away))
		sep(&b, "-")
	}

	b.WriteString(fmt.Sprintf("Win probs - Home: %5.1f%%  Away: %5.1f%%  Draw: %5.1f%%\n",
		f.Sim.HomeWinProb*100, f.Sim.AwayWinProb*100, f.Sim.DrawProb*100))
	b.WriteString(fmt.Sprintf("Expected goals - home: %.2f  away: %.2f  total: %.2f\n",
		f.Sim.AvgHomeGoals, f.Sim.AvgAwayGoals, f.Sim.AvgTotalGoals))
	sep(&b, "-")

	renderPlayers(&b, f.Ranking)

	sep(&b, "-")
	b.WriteString(totalsLine(f.Sim) + "\n")
	b.WriteString(strings.Repeat("=", width) + "\n")

	return b.String()
}

// GamesList renders the daily slate as a fixed-width table.
func GamesList(games []model.Matchup) string {
	var b strings.Builder

	b.WriteString(strings.Repeat("=", width) + "\n")
	b.WriteString(center(fmt.Sprintf(" Today's games (%d) ", len(games))) + "\n")
	sep(&b, "-")
	b.WriteString(fmt.Sprintf("%3s  %-20s vs %-20s  %-12s  %-25s\n", "#", "Home", "Away", "Start(UTC)", "Venue"))
	sep(&b, "-")
	for i, g := range games {
		b.WriteString(fmt.Sprintf("%3d  %-20s vs %-20s  %-12s  %-25s\n",
			i, trunc(g.HomeAbbrev, 20), trunc(g.AwayAbbrev, 20), trunc(g.StartUTC, 12), trunc(g.Venue, 25)))
	}
	sep(&b, "-")

	return b.String()
}

func renderPlayers(b *strings.Builder, r rank.Ranking) {
	if r.Empty() {
		b.WriteString("No skater player data available for this game (missing players or only goalies).\n")

		return
	}

	b.WriteString("Top players (hot):\n")
	for _, e := range r.Hot {
		b.WriteString("  " + playerLine(e) + "\n")
		b.WriteString("   " + strings.TrimSpace(e.Explanation) + "\n")
	}

	sep(b, ".")

	b.WriteString("Least effective players (cold):\n")
	for _, e := range r.Cold {
		b.WriteString("  " + playerLine(e) + "\n")
		b.WriteString("   " + strings.TrimSpace(e.Explanation) + "\n")
	}
}

func teamLine(label string, t model.TeamRecord) string {
	return fmt.Sprintf("%6s: GF/G=%4.2f  GA/G=%4.2f  pts=%3d",
		label, t.GoalsForPerGame, t.GoalsAgainstPerGame, t.Points)
}

func playerLine(e rank.Entry) string {
	return fmt.Sprintf("%-20.20s %-3s  adj=%7.3f  recent=%4.2f  season=%4.2f  +/-=%+4.0f  PIM=%3.0f  shots=%4.2f  TOI=%4.1fm",
		e.Name, e.Team, e.AdjScore, e.RecentRate, e.SeasonRate, e.PlusMinus, e.PenaltyMin, e.ShotsPerGame, e.TimeOnIceMin)
}

func totalsLine(r sim.Result) string {
	thresholds := make([]int, 0, len(r.TotalsOver))
	for t := range r.TotalsOver {
		thresholds = append(thresholds, t)
	}
	sort.Ints(thresholds)

	parts := make([]string, 0, len(thresholds))
	for _, t := range thresholds {
		parts = append(parts, fmt.Sprintf("P(total>%d)=%4.1f%%", t, r.TotalsOver[t]*100))
	}

	return "Totals: " + strings.Join(parts, "   ")
}

func center(s string) string {
	if len(s) >= width {
		return s
	}
	pad := (width - len(s)) / 2

	return strings.Repeat(" ", pad) + s
}

func trunc(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}

	return s
}

func sep(b *strings.Builder, ch string) {
	b.WriteString(strings.Repeat(ch, width) + "\n")
}
