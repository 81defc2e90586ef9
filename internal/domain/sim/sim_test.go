package sim_test

import (
	"context"
	"testing"

	"github.com/okian/rinkcast/internal/domain/rates"
	sim "github.com/okian/rinkcast/internal/domain/sim"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSimulatorRun(t *testing.T) {
	Convey("Given a seeded simulator", t, func() {
		ctx := context.Background()

		Convey("When simulating any valid rate pair", func() {
			s := sim.New(sim.WithSeed(42), sim.WithTrials(2000))
			res := s.Run(ctx, rates.Pair{Home: 3.1, Away: 2.8})

			Convey("Then the outcome probabilities sum to one", func() {
				So(res.HomeWinProb+res.AwayWinProb+res.DrawProb, ShouldAlmostEqual, 1.0, 1e-9)
			})

			Convey("And the averages track the rates within sampling noise", func() {
				So(res.AvgHomeGoals, ShouldAlmostEqual, 3.1, 0.3)
				So(res.AvgAwayGoals, ShouldAlmostEqual, 2.8, 0.3)
				So(res.AvgTotalGoals, ShouldAlmostEqual, res.AvgHomeGoals+res.AvgAwayGoals, 1e-9)
			})

			Convey("And the default tail thresholds are reported", func() {
				So(res.TotalsOver, ShouldContainKey, 5)
				So(res.TotalsOver, ShouldContainKey, 6)
				So(res.TotalsOver[5], ShouldBeGreaterThanOrEqualTo, res.TotalsOver[6])
			})
		})

		Convey("When running twice with the same seed and trial count", func() {
			a := sim.New(sim.WithSeed(7), sim.WithTrials(1500)).Run(ctx, rates.Pair{Home: 2.9, Away: 3.2})
			b := sim.New(sim.WithSeed(7), sim.WithTrials(1500)).Run(ctx, rates.Pair{Home: 2.9, Away: 3.2})

			Convey("Then the results are identical", func() {
				So(a, ShouldResemble, b)
			})
		})

		Convey("When both rates are zero", func() {
			s := sim.New(sim.WithSeed(1), sim.WithTrials(500))
			res := s.Run(ctx, rates.Pair{Home: 0, Away: 0})

			Convey("Then every trial is a scoreless draw", func() {
				So(res.DrawProb, ShouldEqual, 1.0)
				So(res.HomeWinProb, ShouldEqual, 0.0)
				So(res.AwayWinProb, ShouldEqual, 0.0)
				So(res.AvgTotalGoals, ShouldEqual, 0.0)
			})
		})

		Convey("When the home rate rises with the away rate fixed", func() {
			low := sim.New(sim.WithSeed(99), sim.WithTrials(5000)).Run(ctx, rates.Pair{Home: 2.0, Away: 2.5})
			high := sim.New(sim.WithSeed(99), sim.WithTrials(5000)).Run(ctx, rates.Pair{Home: 4.5, Away: 2.5})

			Convey("Then the home win probability does not decrease", func() {
				So(high.HomeWinProb, ShouldBeGreaterThanOrEqualTo, low.HomeWinProb)
			})
		})

		Convey("When a single trial is requested", func() {
			res := sim.New(sim.WithSeed(3), sim.WithTrials(1)).Run(ctx, rates.Pair{Home: 3, Away: 3})

			Convey("Then probabilities still sum to one", func() {
				So(res.Trials, ShouldEqual, 1)
				So(res.HomeWinProb+res.AwayWinProb+res.DrawProb, ShouldAlmostEqual, 1.0, 1e-9)
			})
		})

		Convey("When custom thresholds are configured", func() {
			s := sim.New(sim.WithSeed(11), sim.WithThresholds([]int{3}))
			res := s.Run(ctx, rates.Pair{Home: 3, Away: 3})

			So(res.TotalsOver, ShouldContainKey, 3)
			So(res.TotalsOver, ShouldNotContainKey, 5)
		})
	})
}
