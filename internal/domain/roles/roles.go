// Package roles derives composition facts from a team's picks: which desired
// roles are still uncovered, how tags are distributed, and which pool heroes
// would fill a gap.
package roles

import (
	"sort"

	"github.com/okian/heropick/internal/domain/model"
)

// TagSource resolves a hero's tags. Unknown heroes resolve to no tags.
type TagSource interface {
	Tags(hero string) []string
}

// Tally counts every tag across every hero in picks.
func Tally(src TagSource, picks []string) map[string]int {
	counts := make(map[string]int)
	for _, h := range picks {
		for _, tag := range src.Tags(h) {
			counts[tag]++
		}
	}
	return counts
}

// MissingRoles returns the desired roles whose tally across picks is zero, in
// desired order.
func MissingRoles(src TagSource, picks, desired []string) []string {
	return missingFrom(Tally(src, picks), desired)
}

func missingFrom(counts map[string]int, desired []string) []string {
	missing := make([]string, 0, len(desired))
	for _, role := range desired {
		if counts[role] == 0 {
			missing = append(missing, role)
		}
	}
	return missing
}

// AttackCounts counts heroes per attack type.
type AttackCounts struct {
	Melee  int `json:"melee"`
	Ranged int `json:"ranged"`
}

// CountAttackTypes counts Melee and Ranged heroes in picks. Heroes of
// unknown attack type are not counted.
func CountAttackTypes(src TagSource, picks []string) AttackCounts {
	var c AttackCounts
	for _, h := range picks {
		switch model.AttackTypeOf(src.Tags(h)) {
		case model.AttackMelee:
			c.Melee++
		case model.AttackRanged:
			c.Ranged++
		}
	}
	return c
}

// TagCount is one row of a side's tag summary.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// SortedTagCounts orders a tally by count descending then tag ascending and
// drops attack type tags and zero counts.
func SortedTagCounts(counts map[string]int) []TagCount {
	out := make([]TagCount, 0, len(counts))
	for tag, n := range counts {
		if n <= 0 || model.IsAttackTag(tag) {
			continue
		}
		out = append(out, TagCount{Tag: tag, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}

// RoleFill lists the roles a candidate would cover.
type RoleFill struct {
	Hero   string           `json:"hero"`
	Roles  []string         `json:"roles"`
	Attack model.AttackType `json:"attack_type"`
}

// HeroesFillingRoles returns, in candidates order, every candidate not in
// excluded whose tags cover at least one of roles. Matched roles keep the
// order of roles.
func HeroesFillingRoles(src TagSource, candidates, roles []string, excluded map[string]struct{}) []RoleFill {
	var out []RoleFill
	for _, h := range candidates {
		if _, skip := excluded[h]; skip {
			continue
		}
		matched := Intersect(roles, src.Tags(h))
		if len(matched) == 0 {
			continue
		}
		out = append(out, RoleFill{Hero: h, Roles: matched, Attack: model.AttackTypeOf(src.Tags(h))})
	}
	return out
}

// Intersect returns the members of ordered that also appear in set, keeping
// the order of ordered.
func Intersect(ordered, set []string) []string {
	lookup := make(map[string]struct{}, len(set))
	for _, s := range set {
		lookup[s] = struct{}{}
	}
	out := make([]string, 0)
	for _, o := range ordered {
		if _, ok := lookup[o]; ok {
			out = append(out, o)
		}
	}
	return out
}
