package rank

import (
	"fmt"
	"strings"
)

// Thresholds for the explanation condition battery. Purely presentational;
// they never feed back into scores or ordering.
const (
	coldFormRatio    = 0.6
	hotFormRatio     = 1.25
	smallSampleGames = 5
	lowUsageMinutes  = 10.0
	heavyUsageMins   = 15.0
	lowShotVolume    = 0.5
	highShotVolume   = 2.0
	strongPossession = 55.0
	highPenaltyMins  = 5.0
)

// describeCold builds a short explanation for a low-ranked player by
// concatenating whichever conditions fire, with a generic fallback.
func (r *Ranker) describeCold(e Entry) string {
	var reasons []string

	switch {
	case e.SeasonRate > 0 && e.RecentRate < e.SeasonRate*coldFormRatio:
		reasons = append(reasons, fmt.Sprintf("recent form down (%.2f ppg vs season %.2f)", e.RecentRate, e.SeasonRate))
	case e.RecentRate == 0 && e.SeasonRate == 0:
		reasons = append(reasons, "no scoring this season")
	case e.RecentRate == 0 && e.SeasonRate > 0:
		reasons = append(reasons, "no points in recent games")
	}

	if e.GamesPlayed < smallSampleGames {
		reasons = append(reasons, fmt.Sprintf("small sample (%d games)", e.GamesPlayed))
	}
	if e.TimeOnIceMin > 0 && e.TimeOnIceMin < lowUsageMinutes {
		reasons = append(reasons, fmt.Sprintf("limited usage (~%.1f min TOI/game)", e.TimeOnIceMin))
	}
	if e.ShotsPerGame < lowShotVolume {
		reasons = append(reasons, fmt.Sprintf("low shot volume (%.2f S/G)", e.ShotsPerGame))
	}
	if e.PlusMinus < 0 {
		reasons = append(reasons, fmt.Sprintf("negative +/- (%+.0f)", e.PlusMinus))
	}
	// Discipline is judged on season-total penalty minutes.
	if e.PenaltyMin > highPenaltyMins {
		reasons = append(reasons, fmt.Sprintf("high PIM (%.0f) reducing availability", e.PenaltyMin))
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "composite score low on form, usage and activity signals")
	}

	templates := []string{
		"%s is less effective because %s.",
		"%s has struggled recently: %s.",
		"%s shows reduced impact: %s.",
		"%s is a concern: %s.",
	}
	return fmt.Sprintf(r.pick(templates), e.Name, strings.Join(reasons, ", "))
}

// describeHot builds a short explanation for a top-ranked player.
func (r *Ranker) describeHot(e Entry) string {
	var highlights []string

	switch {
	case e.SeasonRate == 0 && e.RecentRate > 0:
		highlights = append(highlights, fmt.Sprintf("caught fire recently (%.2f ppg in recent games)", e.RecentRate))
	case e.RecentRate > e.SeasonRate*hotFormRatio:
		highlights = append(highlights, fmt.Sprintf("hot streak (%.2f ppg vs season %.2f)", e.RecentRate, e.SeasonRate))
	case e.RecentRate > 0 && e.RecentRate >= e.SeasonRate:
		highlights = append(highlights, fmt.Sprintf("consistent recent scoring (%.2f ppg)", e.RecentRate))
	}

	if e.ShotsPerGame >= highShotVolume {
		highlights = append(highlights, fmt.Sprintf("high shot volume (%.2f S/G)", e.ShotsPerGame))
	}
	if e.TimeOnIceMin >= heavyUsageMins {
		highlights = append(highlights, fmt.Sprintf("heavy usage (~%.1f min TOI/game)", e.TimeOnIceMin))
	}
	if e.PossessionPct >= strongPossession {
		highlights = append(highlights, fmt.Sprintf("strong possession (Corsi %.0f%%)", e.PossessionPct))
	}
	if e.PlusMinus > 0 {
		highlights = append(highlights, fmt.Sprintf("positive +/- (%+.0f)", e.PlusMinus))
	}

	if len(highlights) == 0 {
		highlights = append(highlights, "recent form and usage indicate above-average impact")
	}

	templates := []string{
		"%s is heating up: %s.",
		"Expect production from %s: %s.",
		"%s looks dangerous right now: %s.",
		"%s has momentum: %s.",
	}
	return fmt.Sprintf(r.pick(templates), e.Name, strings.Join(highlights, ", "))
}

// pick selects a phrasing template from the ranker's cosmetic stream.
func (r *Ranker) pick(templates []string) string {
	return templates[r.rng.Intn(len(templates))]
}
