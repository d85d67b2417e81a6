package scoring_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/okian/heropick/internal/domain/catalog"
	"github.com/okian/heropick/internal/domain/model"
	"github.com/okian/heropick/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func scenario() catalog.Dataset {
	c, err := catalog.New([]model.Hero{
		{Name: "A", Tags: []string{"Frontliner", "Melee"}},
		{Name: "B", Tags: []string{"Disabler", "Ranged"}},
		{Name: "C", Tags: []string{"Initiator", "Melee"}},
	})
	if err != nil {
		panic(err)
	}
	p, err := catalog.NewPool([]catalog.PoolEntry{
		{Hero: "A", Comfort: model.OK},
		{Hero: "B", Comfort: model.Comfortable},
		{Hero: "C", Comfort: model.VeryComfortable},
	})
	if err != nil {
		panic(err)
	}
	m := catalog.NewMatchupTable(map[string]model.MatchupRecord{
		"C": {
			Synergy:  map[string]float64{"A": 2.0},
			Counters: map[string]float64{"B": 1.5},
		},
	})
	return catalog.Dataset{Catalog: c, Pool: p, Matchups: m}
}

var desired = []string{"Frontliner", "Disabler", "Initiator"}

func TestEngineScore(t *testing.T) {
	ctx := context.Background()

	Convey("Given the reference draft", t, func() {
		e, err := scoring.New(scenario())
		So(err, ShouldBeNil)

		Convey("When scoring C with A on the team and B on the enemy", func() {
			r, err := e.Score(ctx, "C", []string{"A"}, []string{"B"}, desired)

			Convey("Then the composite should be 7.35", func() {
				So(err, ShouldBeNil)
				So(r.Hero, ShouldEqual, "C")
				So(r.Value, ShouldEqual, 7.35)
			})

			Convey("Then the breakdown should hold weighted components", func() {
				So(r.Breakdown, ShouldResemble, scoring.Breakdown{
					Role:        1.0,
					Synergy:     2.4,
					Counter:     2.2,
					CounteredBy: 0,
					Comfort:     1.3,
				})
			})
		})

		Convey("When a team role is already covered", func() {
			// A is Frontliner; scoring A against a team that already has a Frontliner
			c, _ := catalog.New([]model.Hero{
				{Name: "A", Tags: []string{"Frontliner", "Melee"}},
				{Name: "A2", Tags: []string{"Frontliner"}},
			})
			e2, err := scoring.New(catalog.Dataset{Catalog: c})
			So(err, ShouldBeNil)
			r, err := e2.Score(ctx, "A", []string{"A2"}, nil, desired)

			Convey("Then it should earn partial credit", func() {
				So(err, ShouldBeNil)
				So(r.Breakdown.Role, ShouldEqual, 0.5)
				So(r.Value, ShouldEqual, 0.55)
			})
		})

		Convey("When the candidate is unknown", func() {
			_, err := e.Score(ctx, "Zeus", nil, nil, desired)

			Convey("Then it should fail with ErrUnknownHero", func() {
				So(errors.Is(err, catalog.ErrUnknownHero), ShouldBeTrue)
			})
		})

		Convey("When a pick is unknown", func() {
			_, err := e.Score(ctx, "C", []string{"Zeus"}, nil, desired)
			So(errors.Is(err, catalog.ErrUnknownHero), ShouldBeTrue)

			_, err = e.Score(ctx, "C", nil, []string{"Zeus"}, desired)
			So(errors.Is(err, catalog.ErrUnknownHero), ShouldBeTrue)
		})

		Convey("When the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := e.Score(cctx, "C", nil, nil, desired)

			Convey("Then it should return the context error", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})
}

func TestDefaulting(t *testing.T) {
	ctx := context.Background()

	Convey("Given a hero absent from the matchup table", t, func() {
		ds := scenario()
		e, err := scoring.New(ds)
		So(err, ShouldBeNil)
		degraded, err := scoring.New(ds, scoring.WithoutMatchups())
		So(err, ShouldBeNil)

		Convey("Then its score should equal the score with matchups disabled", func() {
			r, err := e.Score(ctx, "A", []string{"B"}, []string{"C"}, desired)
			So(err, ShouldBeNil)
			d, err := degraded.Score(ctx, "A", []string{"B"}, []string{"C"}, desired)
			So(err, ShouldBeNil)
			So(r, ShouldResemble, d)
			So(r.Breakdown.Synergy, ShouldEqual, 0)
			So(r.Breakdown.Counter, ShouldEqual, 0)
			So(r.Breakdown.CounteredBy, ShouldEqual, 0)
			So(r.Value, ShouldEqual, 1.1)
		})

		Convey("Then the degraded engine should ignore existing matchups", func() {
			So(degraded.UsesMatchups(), ShouldBeFalse)
			d, err := degraded.Score(ctx, "C", []string{"A"}, []string{"B"}, desired)
			So(err, ShouldBeNil)
			So(d.Value, ShouldEqual, 1.3)
		})
	})

	Convey("Given an engine without pool or matchups", t, func() {
		ds := scenario()
		e, err := scoring.New(catalog.Dataset{Catalog: ds.Catalog})
		So(err, ShouldBeNil)

		Convey("Then every hero should read as comfort ok", func() {
			r, err := e.Score(ctx, "C", nil, nil, desired)
			So(err, ShouldBeNil)
			So(r.Breakdown.Comfort, ShouldEqual, 1.1)
			So(r.Value, ShouldEqual, 1.1)
		})
	})

	Convey("Given no catalog", t, func() {
		_, err := scoring.New(catalog.Dataset{})
		So(errors.Is(err, scoring.ErrNilDataset), ShouldBeTrue)
	})
}

func TestClamps(t *testing.T) {
	ctx := context.Background()

	Convey("Given matchup entries with the wrong sign", t, func() {
		ds := scenario()
		ds.Matchups = catalog.NewMatchupTable(map[string]model.MatchupRecord{
			"C": {
				Counters:    map[string]float64{"A": -2.0, "B": 1.0},
				CounteredBy: map[string]float64{"A": 3.0, "B": -0.4},
			},
		})
		e, err := scoring.New(ds)
		So(err, ShouldBeNil)

		r, err := e.Score(ctx, "C", nil, []string{"A", "B"}, desired)
		So(err, ShouldBeNil)

		Convey("Then a negative counter should contribute nothing", func() {
			So(r.Breakdown.Counter, ShouldEqual, 1.5)
		})

		Convey("Then a positive countered_by should contribute nothing", func() {
			So(r.Breakdown.CounteredBy, ShouldEqual, -0.4)
		})
	})

	Convey("Given a negative synergy entry", t, func() {
		ds := scenario()
		ds.Matchups = catalog.NewMatchupTable(map[string]model.MatchupRecord{
			"C": {Synergy: map[string]float64{"A": -1.0}},
		})
		e, _ := scoring.New(ds)
		r, err := e.Score(ctx, "C", []string{"A"}, nil, desired)

		Convey("Then it should be summed as is", func() {
			So(err, ShouldBeNil)
			So(r.Breakdown.Synergy, ShouldEqual, -1.2)
		})
	})
}

func TestMonotonicRoleIncentive(t *testing.T) {
	Convey("Given two heroes differing only by a missing role tag", t, func() {
		c, err := catalog.New([]model.Hero{
			{Name: "With", Tags: []string{"Initiator", "Melee"}},
			{Name: "Without", Tags: []string{"Melee"}},
		})
		So(err, ShouldBeNil)
		e, err := scoring.New(catalog.Dataset{Catalog: c})
		So(err, ShouldBeNil)

		with, err := e.Score(context.Background(), "With", nil, nil, desired)
		So(err, ShouldBeNil)
		without, err := e.Score(context.Background(), "Without", nil, nil, desired)
		So(err, ShouldBeNil)

		Convey("Then the role component should differ by exactly 1.0", func() {
			So(with.Breakdown.Role-without.Breakdown.Role, ShouldEqual, 1.0)
		})
	})
}

func TestOptions(t *testing.T) {
	Convey("Given custom weights and comfort", t, func() {
		e, err := scoring.New(scenario(),
			scoring.WithWeights(scoring.Weights{Role: 2, Synergy: 0, Counter: 0, CounteredBy: 0}),
			scoring.WithComfortTable(model.ComfortTable{model.VeryComfortable: 1.0, model.OK: 1.0}),
		)
		So(err, ShouldBeNil)
		So(e.Weights().Role, ShouldEqual, 2)

		r, err := e.Score(context.Background(), "C", []string{"A"}, []string{"B"}, desired)
		So(err, ShouldBeNil)
		So(r.Value, ShouldEqual, 2.0)
		So(r.Breakdown.Comfort, ShouldEqual, 1.0)
	})

	Convey("Given a non-finite weight", t, func() {
		_, err := scoring.New(scenario(), scoring.WithWeights(scoring.Weights{Role: math.NaN()}))
		So(errors.Is(err, scoring.ErrInvalidWeights), ShouldBeTrue)
	})
}

func TestRound(t *testing.T) {
	Convey("Given values near rounding boundaries", t, func() {
		So(scoring.Round(7.345000000000001, 2), ShouldEqual, 7.35)
		So(scoring.Round(2.25, 1), ShouldEqual, 2.2)
		So(scoring.Round(2.35, 1), ShouldEqual, 2.4)
		So(scoring.Round(-0.04, 1), ShouldEqual, 0)
		So(math.Signbit(scoring.Round(-0.04, 1)), ShouldBeFalse)
		So(scoring.Round(1.0/3.0, 2), ShouldEqual, 0.33)
		So(math.IsNaN(scoring.Round(math.NaN(), 2)), ShouldBeTrue)
	})
}
