package ingest_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/okian/heropick/internal/adapters/repository"
	"github.com/okian/heropick/internal/adapters/stratz"
	"github.com/okian/heropick/internal/ingest"
	logging "github.com/okian/heropick/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeProvider struct {
	mu       sync.Mutex
	heroes   []stratz.HeroInfo
	heroErr  error
	matchups map[int]stratz.RawMatchups
	failIDs  map[int]bool
	asked    []int
}

func (f *fakeProvider) FetchHeroes(context.Context) ([]stratz.HeroInfo, error) {
	return f.heroes, f.heroErr
}

func (f *fakeProvider) FetchMatchups(_ context.Context, id int) (stratz.RawMatchups, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.asked = append(f.asked, id)
	if f.failIDs[id] {
		return stratz.RawMatchups{}, stratz.ErrUpstream
	}
	return f.matchups[id], nil
}

func provider() *fakeProvider {
	return &fakeProvider{
		heroes: []stratz.HeroInfo{
			{ID: 2, DisplayName: "Axe", Roles: []string{"Initiator", "Durable"}, AttackType: "Melee"},
			{ID: 26, DisplayName: "Lion", Roles: []string{"Disabler"}, AttackType: "Ranged"},
			{ID: 5, DisplayName: "Crystal Maiden", Roles: []string{"Support"}, AttackType: "Ranged"},
		},
		matchups: map[int]stratz.RawMatchups{
			2: {
				HeroID: 2,
				Advantage: stratz.Side{
					With: []stratz.Pair{{HeroID2: 26, Synergy: 1.46}, {HeroID2: 999, Synergy: 3}},
					Vs:   []stratz.Pair{{HeroID2: 5, Synergy: 2.04}},
				},
				Disadvantage: stratz.Side{
					With: []stratz.Pair{{HeroID2: 5, Synergy: -0.71}},
					Vs:   []stratz.Pair{{HeroID2: 26, Synergy: -1.25}},
				},
			},
			26: {HeroID: 26, Advantage: stratz.Side{With: []stratz.Pair{{HeroID2: 2, Synergy: 1.44}}}},
		},
		failIDs: map[int]bool{},
	}
}

func writeFile(path, body string) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		panic(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		panic(err)
	}
}

func TestSyncerRun(t *testing.T) {
	_ = logging.Init()
	ctx := context.Background()

	Convey("Given a pool, an existing catalog with custom tags and a provider", t, func() {
		dir := t.TempDir()
		catalogPath := filepath.Join(dir, "data", "hero_tags.json")
		poolPath := filepath.Join(dir, "config", "hero_pool.json")
		matchupsPath := filepath.Join(dir, "data", "hero_synergy_matchups.json")

		writeFile(poolPath, `{"Axe": "very_comfortable", "Pudge": "ok", "Lion": "comfortable"}`)
		writeFile(catalogPath, `{
  "Axe": {"stratz_tags": ["Old"], "custom_tags": ["Frontliner"]},
  "Local Hero": ["Wave Clear"]
}`)

		p := provider()
		s, err := ingest.New(p,
			ingest.WithPaths(catalogPath, poolPath, matchupsPath),
			ingest.WithWorkers(2),
		)
		So(err, ShouldBeNil)

		Convey("When the sync runs", func() {
			res, err := s.Run(ctx)
			So(err, ShouldBeNil)

			Convey("Then the result should summarise the run", func() {
				So(res.RunID, ShouldNotBeEmpty)
				So(res.Heroes, ShouldEqual, 3)
				So(res.Jobs, ShouldEqual, 2)
				So(res.Fetched, ShouldEqual, 2)
				So(res.Failed, ShouldEqual, 0)
				So(res.Skipped, ShouldResemble, []string{"Pudge"})
			})

			Convey("Then the catalog should keep custom tags and local heroes", func() {
				entries, err := repository.LoadCatalogEntries(catalogPath)
				So(err, ShouldBeNil)
				byName := map[string]repository.CatalogEntry{}
				for _, e := range entries {
					byName[e.Name] = e
				}
				So(byName["Axe"].StratzTags, ShouldResemble, []string{"Initiator", "Durable", "Melee"})
				So(byName["Axe"].CustomTags, ShouldResemble, []string{"Frontliner"})
				So(byName["Lion"].StratzTags, ShouldResemble, []string{"Disabler", "Ranged"})
				So(byName["Local Hero"].Tags(), ShouldResemble, []string{"Wave Clear"})
			})

			Convey("Then the matchup file should hold rounded records by name", func() {
				records, err := repository.LoadMatchupRecords(matchupsPath)
				So(err, ShouldBeNil)
				So(len(records), ShouldEqual, 2)
				axe := records["Axe"]
				So(axe.Synergy, ShouldResemble, map[string]float64{"Lion": 1.5})
				So(axe.Counters, ShouldResemble, map[string]float64{"Crystal Maiden": 2})
				So(axe.CounteredBy, ShouldResemble, map[string]float64{"Lion": -1.2})
				So(axe.WorstSynergy, ShouldResemble, map[string]float64{"Crystal Maiden": -0.7})
				So(records["Lion"].Synergy["Axe"], ShouldEqual, 1.4)
			})
		})

		Convey("When one hero fails and an older record exists", func() {
			writeFile(matchupsPath, `{"Lion": {"synergy": {"Axe": 9.9}}}`)
			p.failIDs[26] = true

			res, err := s.Run(ctx)
			So(err, ShouldBeNil)

			Convey("Then the failure should be counted and the old record kept", func() {
				So(res.Fetched, ShouldEqual, 1)
				So(res.Failed, ShouldEqual, 1)
				records, err := repository.LoadMatchupRecords(matchupsPath)
				So(err, ShouldBeNil)
				So(records["Lion"].Synergy["Axe"], ShouldEqual, 9.9)
				So(records["Axe"].Synergy["Lion"], ShouldEqual, 1.5)
			})
		})

		Convey("When a snapshot store is configured", func() {
			store, err := repository.OpenSQLite(ctx, ":memory:")
			So(err, ShouldBeNil)
			defer store.Close()

			s, err := ingest.New(p,
				ingest.WithPaths(catalogPath, poolPath, matchupsPath),
				ingest.WithStore(store),
			)
			So(err, ShouldBeNil)
			_, err = s.Run(ctx)
			So(err, ShouldBeNil)

			Convey("Then the store should hold the same data", func() {
				records, err := store.LoadMatchups(ctx)
				So(err, ShouldBeNil)
				So(records["Axe"].Counters["Crystal Maiden"], ShouldEqual, 2)
				entries, err := store.LoadCatalog(ctx)
				So(err, ShouldBeNil)
				So(entries[0].Name, ShouldEqual, "Axe")
			})
		})
	})

	Convey("Given a failing provider", t, func() {
		dir := t.TempDir()
		p := provider()
		p.heroErr = stratz.ErrUpstream
		s, _ := ingest.New(p, ingest.WithPaths(
			filepath.Join(dir, "tags.json"), filepath.Join(dir, "pool.json"), filepath.Join(dir, "m.json")))

		_, err := s.Run(ctx)
		So(errors.Is(err, stratz.ErrUpstream), ShouldBeTrue)
	})

	Convey("Given no heroes", t, func() {
		s, _ := ingest.New(&fakeProvider{})
		_, err := s.Run(ctx)
		So(errors.Is(err, ingest.ErrNoHeroes), ShouldBeTrue)
	})

	Convey("Given no provider", t, func() {
		_, err := ingest.New(nil)
		So(errors.Is(err, ingest.ErrNoProvider), ShouldBeTrue)
	})
}

func TestToRecord(t *testing.T) {
	Convey("Given raw matchups with an unknown id", t, func() {
		raw := stratz.RawMatchups{
			Advantage: stratz.Side{With: []stratz.Pair{{HeroID2: 1, Synergy: 0.25}, {HeroID2: 7, Synergy: 5}}},
		}
		rec := ingest.ToRecord(raw, map[int]string{1: "Anti-Mage"})

		So(rec.Synergy, ShouldResemble, map[string]float64{"Anti-Mage": 0.2})
		So(rec.Counters, ShouldBeEmpty)
		So(rec.CounteredBy, ShouldNotBeNil)
	})
}
