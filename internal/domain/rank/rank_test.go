package rank_test

import (
	"context"
	"strings"
	"testing"

	"github.com/okian/rinkcast/internal/domain/model"
	rank "github.com/okian/rinkcast/internal/domain/rank"
	. "github.com/smartystreets/goconvey/convey"
)

var matchup = model.Matchup{HomeAbbrev: "MTL", AwayAbbrev: "TOR"}

func skater(name, team string, gp int, points float64) model.PlayerRecord {
	return model.PlayerRecord{
		Name:        name,
		Team:        team,
		Position:    "C",
		GamesPlayed: gp,
		Points:      points,
		CorsiPct:    50,
	}
}

func TestRankerEligibility(t *testing.T) {
	Convey("Given a ranker with a fixed phrasing seed", t, func() {
		r := rank.New(rank.WithPhrasingSeed(1))
		ctx := context.Background()

		Convey("When the pool contains goaltenders and other teams", func() {
			players := []model.PlayerRecord{
				skater("Skater A", "MTL", 20, 18),
				skater("Skater B", "TOR", 20, 10),
				{Name: "Goalie", Team: "MTL", Position: "G", GamesPlayed: 20},
				skater("Elsewhere", "BOS", 20, 30),
			}
			ranking := r.Rank(ctx, matchup, players)

			Convey("Then only matchup skaters are ranked", func() {
				So(ranking.Players, ShouldHaveLength, 2)
				for _, e := range ranking.Players {
					So(e.Name, ShouldNotEqual, "Goalie")
					So(e.Name, ShouldNotEqual, "Elsewhere")
				}
			})
		})

		Convey("When the slate carries lowercase abbreviations", func() {
			players := []model.PlayerRecord{
				skater("Skater A", "MTL", 20, 18),
				skater("Skater B", "TOR", 20, 10),
			}
			lower := model.Matchup{HomeAbbrev: "mtl", AwayAbbrev: "tor"}
			ranking := r.Rank(ctx, lower, players)

			Convey("Then matching is case-insensitive", func() {
				So(ranking.Empty(), ShouldBeFalse)
				So(ranking.Players, ShouldHaveLength, 2)
			})
		})

		Convey("When no skater data exists for either team", func() {
			ranking := r.Rank(ctx, matchup, []model.PlayerRecord{
				{Name: "Goalie", Team: "MTL", Position: "G"},
			})

			Convey("Then the ranking is empty rather than an error", func() {
				So(ranking.Empty(), ShouldBeTrue)
				So(ranking.Hot, ShouldBeEmpty)
				So(ranking.Cold, ShouldBeEmpty)
			})
		})
	})
}

func TestRankerScoring(t *testing.T) {
	Convey("Given the default weights", t, func() {
		r := rank.New(rank.WithPhrasingSeed(1))
		ctx := context.Background()

		Convey("When a player has fewer than three games played", func() {
			with := skater("Tiny Sample", "MTL", 2, 1)
			without := skater("Tiny Sample", "MTL", 3, 1.5) // same season rate

			ranking := r.Rank(ctx, matchup, []model.PlayerRecord{with})
			baseline := r.Rank(ctx, matchup, []model.PlayerRecord{without})

			Convey("Then the flat small-sample penalty applies", func() {
				penalized := ranking.Players[0]
				free := baseline.Players[0]
				So(penalized.AdjScore, ShouldAlmostEqual, penalized.BaseScore-0.25, 1e-9)
				So(free.AdjScore, ShouldAlmostEqual, free.BaseScore, 1e-9)
			})
		})

		Convey("When two players differ only in season points and games", func() {
			veteran := skater("Veteran", "MTL", 82, 82)
			rookie := skater("Rookie", "MTL", 10, 10)
			// identical season rate of 1.0, so the composite matches and
			// the tie-breaker decides
			ranking := r.Rank(ctx, matchup, []model.PlayerRecord{rookie, veteran})

			Convey("Then the established player ranks first", func() {
				So(ranking.Players[0].Name, ShouldEqual, "Veteran")
			})
		})

		Convey("When games played exceeds a full season", func() {
			p := skater("Iron Man", "MTL", 100, 50)
			ranking := r.Rank(ctx, matchup, []model.PlayerRecord{p})

			Convey("Then the tie-break term caps at 82 games", func() {
				e := ranking.Players[0]
				So(e.FinalScore, ShouldAlmostEqual, e.AdjScore+0.002*50+82.0/1000, 1e-9)
			})
		})

		Convey("When a player carries full activity stats", func() {
			p := model.PlayerRecord{
				Name: "Complete", Team: "MTL", Position: "D",
				GamesPlayed: 20, Points: 10, Shots: 40, ShotsOnGoal: 30,
				Hits: 20, Blocks: 40, PlusMinus: 4, PenaltyMin: 10,
				CorsiPct: 56, TimeOnIceMin: 22,
			}
			ranking := r.Rank(ctx, matchup, []model.PlayerRecord{p})
			e := ranking.Players[0]

			Convey("Then the composite matches the documented formula", func() {
				base := 0.40*0.5 + 0.15*0.5 + 0.12*2 + 0.08*1.5 +
					0.10*(22.0/20) + 0.08*((56.0-50)/50) + 0.07*((1.0+2.0)/2)
				adj := base + 0.06*4 - 0.03*0.5
				So(e.BaseScore, ShouldAlmostEqual, base, 1e-9)
				So(e.AdjScore, ShouldAlmostEqual, adj, 1e-9)
				So(e.FinalScore, ShouldAlmostEqual, adj+0.002*10+20.0/1000, 1e-9)
			})
		})
	})
}

func TestRankerColdSelection(t *testing.T) {
	Convey("Given a pool with both computed lows and no-data players", t, func() {
		r := rank.New(rank.WithPhrasingSeed(1))
		ctx := context.Background()

		players := []model.PlayerRecord{
			skater("Star", "MTL", 40, 50),
			skater("Solid", "MTL", 40, 30),
			skater("Quiet", "TOR", 40, 8),
			skater("Cold", "TOR", 40, 2),
			skater("Colder", "TOR", 40, 1),
			{Name: "Ghost", Team: "TOR", Position: "C", CorsiPct: 50}, // no data at all
		}
		ranking := r.Rank(ctx, matchup, players)

		Convey("Then no-data players are flagged", func() {
			var ghost *rank.Entry
			for i := range ranking.Players {
				if ranking.Players[i].Name == "Ghost" {
					ghost = &ranking.Players[i]
				}
			}
			So(ghost, ShouldNotBeNil)
			So(ghost.NoData, ShouldBeTrue)
		})

		Convey("And cold selection prefers computed entries over no-data ones", func() {
			So(ranking.Cold, ShouldHaveLength, 3)
			for _, e := range ranking.Cold {
				So(e.Name, ShouldNotEqual, "Ghost")
			}
		})

		Convey("And no-data entries pad the cold list only when needed", func() {
			short := r.Rank(ctx, matchup, []model.PlayerRecord{
				skater("Only One", "MTL", 40, 5),
				{Name: "Ghost", Team: "TOR", Position: "C", CorsiPct: 50},
			})
			So(short.Cold, ShouldHaveLength, 2)
		})

		Convey("And hot entries are the highest final scores", func() {
			So(ranking.Hot[0].Name, ShouldEqual, "Star")
		})
	})
}

func TestExplanations(t *testing.T) {
	Convey("Given ranked extremes", t, func() {
		r := rank.New(rank.WithPhrasingSeed(42))
		ctx := context.Background()

		Convey("When a scoreless player had a pointless recent stretch", func() {
			p := model.PlayerRecord{
				Name: "Scoreless", Team: "MTL", Position: "C",
				GamesPlayed: 12, Points: 0, CorsiPct: 50,
				RecentGames: []model.RecentGame{
					{HasPoints: true}, {HasPoints: true}, {HasPoints: true},
					{HasPoints: true}, {HasPoints: true},
				},
			}
			ranking := r.Rank(ctx, matchup, []model.PlayerRecord{p})

			Convey("Then the cold text says no scoring, not recent form down", func() {
				So(ranking.Cold, ShouldHaveLength, 1)
				text := ranking.Cold[0].Explanation
				So(text, ShouldContainSubstring, "no scoring this season")
				So(text, ShouldNotContainSubstring, "recent form down")
			})
		})

		Convey("When a slumping scorer ranks cold", func() {
			p := model.PlayerRecord{
				Name: "Slumping", Team: "MTL", Position: "C",
				GamesPlayed: 40, Points: 40, CorsiPct: 50, PlusMinus: -8,
				RecentGames: []model.RecentGame{
					{HasPoints: true}, {HasPoints: true}, {HasPoints: true},
					{HasPoints: true}, {HasPoints: true},
				},
			}
			ranking := r.Rank(ctx, matchup, []model.PlayerRecord{p})
			text := ranking.Cold[0].Explanation

			Convey("Then the fired conditions concatenate", func() {
				So(text, ShouldContainSubstring, "recent form down")
				So(text, ShouldContainSubstring, "negative +/-")
			})
		})

		Convey("When a penalized player ranks cold", func() {
			// 20 PIM over 40 games is only 0.5 per game; the discipline
			// condition keys on the season total.
			p := model.PlayerRecord{
				Name: "Penalized", Team: "MTL", Position: "D",
				GamesPlayed: 40, Points: 2, CorsiPct: 50, PenaltyMin: 20,
			}
			ranking := r.Rank(ctx, matchup, []model.PlayerRecord{p})
			text := ranking.Cold[0].Explanation

			Convey("Then the high-PIM condition fires on season totals", func() {
				So(text, ShouldContainSubstring, "high PIM (20) reducing availability")
			})
		})

		Convey("When a player is on a heater", func() {
			p := model.PlayerRecord{
				Name: "Heater", Team: "TOR", Position: "R",
				GamesPlayed: 30, Points: 15, Shots: 90, CorsiPct: 58,
				TimeOnIceMin: 19, PlusMinus: 6,
				RecentGames: []model.RecentGame{
					{Points: 2, HasPoints: true}, {Points: 2, HasPoints: true},
					{Points: 1, HasPoints: true}, {Points: 2, HasPoints: true},
					{Points: 2, HasPoints: true},
				},
			}
			ranking := r.Rank(ctx, matchup, []model.PlayerRecord{p})
			text := ranking.Hot[0].Explanation

			Convey("Then the hot highlights concatenate", func() {
				So(text, ShouldContainSubstring, "hot streak")
				So(text, ShouldContainSubstring, "high shot volume")
				So(text, ShouldContainSubstring, "heavy usage")
				So(text, ShouldContainSubstring, "strong possession")
			})
		})

		Convey("When nothing specific fires for a hot player", func() {
			p := skater("Plain", "MTL", 20, 0)
			ranking := r.Rank(ctx, matchup, []model.PlayerRecord{p})
			So(ranking.Hot[0].Explanation, ShouldNotBeEmpty)
		})

		Convey("When the same seed is used twice", func() {
			p := skater("Anyone", "MTL", 20, 10)
			a := rank.New(rank.WithPhrasingSeed(7)).Rank(ctx, matchup, []model.PlayerRecord{p})
			b := rank.New(rank.WithPhrasingSeed(7)).Rank(ctx, matchup, []model.PlayerRecord{p})

			Convey("Then phrasing is reproducible", func() {
				So(a.Hot[0].Explanation, ShouldEqual, b.Hot[0].Explanation)
			})
		})
	})
}

func TestExplanationDoesNotAffectOrdering(t *testing.T) {
	Convey("Given two rankers with different phrasing seeds", t, func() {
		players := []model.PlayerRecord{
			skater("A", "MTL", 40, 40),
			skater("B", "MTL", 40, 20),
			skater("C", "TOR", 40, 10),
			skater("D", "TOR", 40, 5),
		}
		ctx := context.Background()
		a := rank.New(rank.WithPhrasingSeed(1)).Rank(ctx, matchup, players)
		b := rank.New(rank.WithPhrasingSeed(999)).Rank(ctx, matchup, players)

		Convey("Then scores and order are identical", func() {
			So(len(a.Players), ShouldEqual, len(b.Players))
			names := func(es []rank.Entry) string {
				var sb strings.Builder
				for _, e := range es {
					sb.WriteString(e.Name)
				}
				return sb.String()
			}
			So(names(a.Players), ShouldEqual, names(b.Players))
			So(a.Players[0].FinalScore, ShouldAlmostEqual, b.Players[0].FinalScore, 1e-12)
		})
	})
}
