// Package types contains the request and report shapes shared by the service,
// the HTTP API and the CLI.
package types

import (
	"github.com/okian/heropick/internal/domain/ranking"
	"github.com/okian/heropick/internal/domain/roles"
	"github.com/okian/heropick/internal/domain/scoring"
)

// Request is a draft state to recommend for.
type Request struct {
	Team  []string `json:"team"`
	Enemy []string `json:"enemy"`
	// Roles overrides the configured desired roles when non-empty.
	Roles []string `json:"roles,omitempty"`
	// Limit caps the number of suggestions; 0 uses the configured default.
	Limit int `json:"limit,omitempty"`
}

// Suggestion is one ranked hero.
type Suggestion struct {
	Rank       int               `json:"rank"`
	Hero       string            `json:"hero"`
	Score      float64           `json:"score"`
	Breakdown  scoring.Breakdown `json:"breakdown"`
	Tags       []string          `json:"tags"`
	Fulfills   []string          `json:"fulfills"`
	AttackType string            `json:"attack_type"`
	Comfort    string            `json:"comfort"`
}

// Report is the full answer to a Request.
type Report struct {
	Team         []string           `json:"team"`
	Enemy        []string           `json:"enemy"`
	DesiredRoles []string           `json:"desired_roles"`
	MissingRoles []string           `json:"missing_roles"`
	TeamAttack   roles.AttackCounts `json:"team_attack"`
	TeamTags     []roles.TagCount   `json:"team_tags"`
	EnemyTags    []roles.TagCount   `json:"enemy_tags"`
	RoleFillers  []roles.RoleFill   `json:"role_fillers"`
	Suggestions  []Suggestion       `json:"suggestions"`
	// Considered is the number of pool heroes that were ranked before the
	// limit was applied.
	Considered int  `json:"considered"`
	Cached     bool `json:"cached"`
}

// HeroView is a catalog entry as exposed by the API.
type HeroView struct {
	Name       string   `json:"name"`
	Tags       []string `json:"tags"`
	AttackType string   `json:"attack_type"`
}

// PoolView is a pool entry with its resolved multiplier.
type PoolView struct {
	Hero       string  `json:"hero"`
	Comfort    string  `json:"comfort"`
	Multiplier float64 `json:"multiplier"`
}

// Suggestions converts ranked candidates into numbered suggestions, keeping at
// most limit entries. A limit <= 0 keeps all of them.
func Suggestions(cands []ranking.Candidate, limit int) []Suggestion {
	n := len(cands)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Suggestion, n)
	for i := 0; i < n; i++ {
		c := cands[i]
		out[i] = Suggestion{
			Rank:       i + 1,
			Hero:       c.Hero,
			Score:      c.Score.Value,
			Breakdown:  c.Score.Breakdown,
			Tags:       c.Tags,
			Fulfills:   c.Fulfills,
			AttackType: string(c.AttackType),
			Comfort:    c.Comfort,
		}
	}
	return out
}
