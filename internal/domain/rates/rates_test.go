package rates_test

import (
	"testing"

	"github.com/okian/rinkcast/internal/domain/model"
	rates "github.com/okian/rinkcast/internal/domain/rates"
	. "github.com/smartystreets/goconvey/convey"
)

func team(gf, ga float64, gp int) model.TeamRecord {
	return model.TeamRecord{
		GamesPlayed:         gp,
		GoalsForPerGame:     gf,
		GoalsAgainstPerGame: ga,
		HasRates:            gp > 0,
	}
}

func TestExpected(t *testing.T) {
	Convey("Given the default model parameters", t, func() {
		params := rates.DefaultParams()

		Convey("When a strong scorer hosts a weak defense", func() {
			home := team(3.5, 2.5, 20)
			away := team(2.0, 3.5, 20)
			pair := rates.Expected(home, away, params)

			Convey("Then the home lambda exceeds the away lambda", func() {
				So(pair.Home, ShouldBeGreaterThan, pair.Away)
			})

			Convey("And the blend matches the documented formula", func() {
				So(pair.Home, ShouldAlmostEqual, 0.55*3.5+0.45*3.5+0.12)
				So(pair.Away, ShouldAlmostEqual, 0.55*2.0+0.45*2.5)
			})
		})

		Convey("When a team has no per-game rates", func() {
			home := team(0, 0, 0)
			away := team(3.0, 3.0, 10)
			pair := rates.Expected(home, away, params)

			Convey("Then league averages substitute and the result stays clamped", func() {
				So(pair.Home, ShouldAlmostEqual, 0.55*2.7+0.45*3.0+0.12)
				So(pair.Home, ShouldBeBetweenOrEqual, params.HomeMin, params.HomeMax)
				So(pair.Away, ShouldBeBetweenOrEqual, params.AwayMin, params.AwayMax)
			})
		})

		Convey("When inputs are pathological", func() {
			Convey("Then extreme high rates clamp to the upper bound", func() {
				pair := rates.Expected(team(25, 25, 5), team(25, 25, 5), params)
				So(pair.Home, ShouldAlmostEqual, params.HomeMax)
				So(pair.Away, ShouldAlmostEqual, params.AwayMax)
			})

			Convey("Then zero rates clamp to the lower bound", func() {
				pair := rates.Expected(team(0, 0, 5), team(0, 0, 5), params)
				So(pair.Home, ShouldBeGreaterThanOrEqualTo, params.HomeMin)
				So(pair.Away, ShouldBeGreaterThanOrEqualTo, params.AwayMin)
			})
		})

		Convey("When zero-valued params are normalized", func() {
			pair := rates.Expected(team(3, 3, 10), team(3, 3, 10), rates.Params{})

			Convey("Then defaults apply except the explicit zero home advantage", func() {
				So(pair.Home, ShouldAlmostEqual, 0.55*3+0.45*3)
				So(pair.Away, ShouldAlmostEqual, 0.55*3+0.45*3)
			})
		})
	})
}
