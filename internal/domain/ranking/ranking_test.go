package ranking_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/okian/heropick/internal/domain/catalog"
	"github.com/okian/heropick/internal/domain/model"
	"github.com/okian/heropick/internal/domain/ranking"
	"github.com/okian/heropick/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

var desired = []string{"Frontliner", "Disabler", "Initiator"}

func dataset() catalog.Dataset {
	c, _ := catalog.New([]model.Hero{
		{Name: "A", Tags: []string{"Frontliner", "Melee"}},
		{Name: "B", Tags: []string{"Disabler", "Ranged"}},
		{Name: "C", Tags: []string{"Initiator", "Melee"}},
		{Name: "D", Tags: []string{"Disabler", "Ranged"}},
		{Name: "E", Tags: []string{"Support", "Ranged"}},
	})
	p, _ := catalog.NewPool([]catalog.PoolEntry{
		{Hero: "A", Comfort: model.OK},
		{Hero: "B", Comfort: model.Comfortable},
		{Hero: "C", Comfort: model.VeryComfortable},
		{Hero: "E", Comfort: model.OK},
		{Hero: "D", Comfort: model.Comfortable},
	})
	m := catalog.NewMatchupTable(map[string]model.MatchupRecord{
		"C": {
			Synergy:  map[string]float64{"A": 2.0},
			Counters: map[string]float64{"B": 1.5},
		},
	})
	return catalog.Dataset{Catalog: c, Pool: p, Matchups: m}
}

func newRanker(ds catalog.Dataset, opts ...ranking.Option) *ranking.Ranker {
	e, err := scoring.New(ds)
	if err != nil {
		panic(err)
	}
	r, err := ranking.New(ds, e, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

func names(cs []ranking.Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Hero
	}
	return out
}

func TestRank(t *testing.T) {
	ctx := context.Background()

	Convey("Given the reference draft", t, func() {
		r := newRanker(dataset())

		Convey("When ranking with A on the team and B on the enemy", func() {
			got, err := r.Rank(ctx, []string{"A"}, []string{"B"}, desired)
			So(err, ShouldBeNil)

			Convey("Then picked heroes should be excluded", func() {
				So(names(got), ShouldNotContain, "A")
				So(names(got), ShouldNotContain, "B")
			})

			Convey("Then C should lead with 7.35", func() {
				So(got[0].Hero, ShouldEqual, "C")
				So(got[0].Score.Value, ShouldEqual, 7.35)
				So(got[0].AttackType, ShouldEqual, model.AttackMelee)
				So(got[0].Tags, ShouldResemble, []string{"Initiator", "Melee"})
				So(got[0].Fulfills, ShouldResemble, []string{"Initiator"})
				So(got[0].Comfort, ShouldEqual, "very_comfortable")
			})

			Convey("Then the rest should follow by score", func() {
				// D: Disabler missing -> 1.0 * 1.2; E: nothing -> 0
				So(names(got), ShouldResemble, []string{"C", "D", "E"})
				So(got[1].Score.Value, ShouldEqual, 1.2)
				So(got[2].Score.Value, ShouldEqual, 0)
			})
		})

		Convey("When an unknown hero is picked", func() {
			_, err := r.Rank(ctx, []string{"Zeus"}, nil, desired)
			So(errors.Is(err, catalog.ErrUnknownHero), ShouldBeTrue)
		})

		Convey("When a hero is picked twice", func() {
			_, err := r.Rank(ctx, []string{"A"}, []string{"A"}, desired)
			So(errors.Is(err, catalog.ErrDuplicatePick), ShouldBeTrue)
		})

		Convey("When the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := r.Rank(cctx, nil, nil, desired)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})

		Convey("Then missing roles should be exposed", func() {
			So(r.Missing([]string{"A"}, desired), ShouldResemble, []string{"Disabler", "Initiator"})
		})
	})

	Convey("Given heroes with equal scores", t, func() {
		r := newRanker(dataset())
		got, err := r.Rank(ctx, []string{"C"}, nil, desired)
		So(err, ShouldBeNil)

		Convey("Then ties should keep pool order", func() {
			// A 1.1, B 1.2, E 0, D 1.2: B precedes D as in the pool
			So(names(got), ShouldResemble, []string{"B", "D", "A", "E"})
		})
	})
}

func TestParallelRank(t *testing.T) {
	Convey("Given a large pool with many ties", t, func() {
		heroes := make([]model.Hero, 0, 64)
		entries := make([]catalog.PoolEntry, 0, 64)
		for i := 0; i < 64; i++ {
			name := fmt.Sprintf("H%02d", i)
			tags := []string{"Ranged"}
			if i%3 == 0 {
				tags = append(tags, "Disabler")
			}
			heroes = append(heroes, model.Hero{Name: name, Tags: tags})
			entries = append(entries, catalog.PoolEntry{Hero: name, Comfort: model.OK})
		}
		c, _ := catalog.New(heroes)
		p, _ := catalog.NewPool(entries)
		ds := catalog.Dataset{Catalog: c, Pool: p}

		serial := newRanker(ds)
		parallel := newRanker(ds, ranking.WithParallelism(8))

		Convey("Then parallel scoring should match serial scoring exactly", func() {
			for i := 0; i < 5; i++ {
				want, err := serial.Rank(context.Background(), []string{"H01"}, []string{"H02"}, desired)
				So(err, ShouldBeNil)
				got, err := parallel.Rank(context.Background(), []string{"H01"}, []string{"H02"}, desired)
				So(err, ShouldBeNil)
				So(got, ShouldResemble, want)
			}
		})
	})
}

func TestNew(t *testing.T) {
	Convey("Given invalid inputs", t, func() {
		ds := dataset()
		_, err := ranking.New(ds, nil)
		So(errors.Is(err, ranking.ErrNoScorer), ShouldBeTrue)

		p, _ := catalog.NewPool([]catalog.PoolEntry{{Hero: "Zeus"}})
		bad := catalog.Dataset{Catalog: ds.Catalog, Pool: p}
		e, _ := scoring.New(bad)
		_, err = ranking.New(bad, e)
		So(errors.Is(err, catalog.ErrUnknownHero), ShouldBeTrue)
	})

	Convey("Given an engine built over another data set", t, func() {
		ds := dataset()
		other, err := scoring.New(dataset())
		So(err, ShouldBeNil)

		_, err = ranking.New(ds, other)
		So(errors.Is(err, ranking.ErrDatasetMismatch), ShouldBeTrue)

		Convey("When only the pool differs", func() {
			p, _ := catalog.NewPool([]catalog.PoolEntry{{Hero: "A"}})
			e, err := scoring.New(catalog.Dataset{Catalog: ds.Catalog, Pool: p, Matchups: ds.Matchups})
			So(err, ShouldBeNil)
			_, err = ranking.New(ds, e)
			So(errors.Is(err, ranking.ErrDatasetMismatch), ShouldBeTrue)
		})

		Convey("When the engine shares the data set", func() {
			e, err := scoring.New(ds)
			So(err, ShouldBeNil)
			r, err := ranking.New(ds, e)
			So(err, ShouldBeNil)
			So(r, ShouldNotBeNil)
		})
	})
}
