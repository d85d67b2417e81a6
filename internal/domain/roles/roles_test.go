package roles_test

import (
	"testing"

	"github.com/okian/heropick/internal/domain/model"
	"github.com/okian/heropick/internal/domain/roles"
	. "github.com/smartystreets/goconvey/convey"
)

type tagMap map[string][]string

func (m tagMap) Tags(hero string) []string { return m[hero] }

var tags = tagMap{
	"A": {"Frontliner", "Melee"},
	"B": {"Disabler", "Ranged"},
	"C": {"Initiator", "Melee", "Disabler"},
	"D": {"Wave Clear", "Ranged"},
	"E": {"Support"},
}

func TestMissingRoles(t *testing.T) {
	desired := []string{"Frontliner", "Disabler", "Initiator"}

	Convey("Given an empty team", t, func() {
		Convey("Then every desired role should be missing", func() {
			So(roles.MissingRoles(tags, nil, desired), ShouldResemble, desired)
		})
	})

	Convey("Given a team with a frontliner", t, func() {
		missing := roles.MissingRoles(tags, []string{"A"}, desired)

		Convey("Then the remaining roles should be missing in desired order", func() {
			So(missing, ShouldResemble, []string{"Disabler", "Initiator"})
		})
	})

	Convey("Given a team covering every role", t, func() {
		missing := roles.MissingRoles(tags, []string{"A", "C"}, desired)

		Convey("Then nothing should be missing", func() {
			So(missing, ShouldBeEmpty)
		})
	})

	Convey("Given a team with a hero absent from the tag source", t, func() {
		missing := roles.MissingRoles(tags, []string{"Unknown"}, desired)

		Convey("Then the hero should contribute no tags", func() {
			So(missing, ShouldResemble, desired)
		})
	})

	Convey("Given desired roles in a different order", t, func() {
		reordered := []string{"Initiator", "Wave Clear", "Frontliner", "Disabler"}
		missing := roles.MissingRoles(tags, []string{"B"}, reordered)

		Convey("Then the output should follow that order", func() {
			So(missing, ShouldResemble, []string{"Initiator", "Wave Clear", "Frontliner"})
		})
	})

	Convey("Given every subset of picks", t, func() {
		heroes := []string{"A", "B", "C", "D", "E"}
		all := []string{"Frontliner", "Disabler", "Initiator", "Tower Push", "Wave Clear", "Support"}

		Convey("Then missing roles should be exactly the zero-tally roles", func() {
			for mask := 0; mask < 1<<len(heroes); mask++ {
				var picks []string
				for i, h := range heroes {
					if mask&(1<<i) != 0 {
						picks = append(picks, h)
					}
				}
				counts := roles.Tally(tags, picks)
				var want []string
				for _, r := range all {
					if counts[r] == 0 {
						want = append(want, r)
					}
				}
				got := roles.MissingRoles(tags, picks, all)
				So(len(got), ShouldEqual, len(want))
				for i := range want {
					So(got[i], ShouldEqual, want[i])
				}
			}
		})
	})
}

func TestCountAttackTypes(t *testing.T) {
	Convey("Given a mixed team", t, func() {
		counts := roles.CountAttackTypes(tags, []string{"A", "B", "C", "E"})

		Convey("Then melee and ranged heroes should be counted", func() {
			So(counts, ShouldResemble, roles.AttackCounts{Melee: 2, Ranged: 1})
		})
	})
}

func TestSortedTagCounts(t *testing.T) {
	Convey("Given a tally with ties and attack tags", t, func() {
		out := roles.SortedTagCounts(roles.Tally(tags, []string{"A", "B", "C"}))

		Convey("Then rows should be ordered by count then tag without attack tags", func() {
			So(out, ShouldResemble, []roles.TagCount{
				{Tag: "Disabler", Count: 2},
				{Tag: "Frontliner", Count: 1},
				{Tag: "Initiator", Count: 1},
			})
		})
	})
}

func TestHeroesFillingRoles(t *testing.T) {
	Convey("Given missing roles and a candidate list", t, func() {
		missing := []string{"Disabler", "Initiator", "Wave Clear"}
		excluded := map[string]struct{}{"B": {}}
		fills := roles.HeroesFillingRoles(tags, []string{"E", "D", "C", "B", "A"}, missing, excluded)

		Convey("Then only covering, non-excluded heroes should be listed in candidate order", func() {
			So(fills, ShouldResemble, []roles.RoleFill{
				{Hero: "D", Roles: []string{"Wave Clear"}, Attack: model.AttackRanged},
				{Hero: "C", Roles: []string{"Disabler", "Initiator"}, Attack: model.AttackMelee},
			})
		})
	})
}

func TestIntersect(t *testing.T) {
	Convey("Given two lists", t, func() {
		So(roles.Intersect([]string{"x", "y", "z"}, []string{"z", "x"}), ShouldResemble, []string{"x", "z"})
		So(roles.Intersect(nil, []string{"x"}), ShouldResemble, []string{})
	})
}
