// Package ranking scores every eligible pool hero and orders them by score.
package ranking

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/okian/heropick/internal/domain/catalog"
	"github.com/okian/heropick/internal/domain/model"
	"github.com/okian/heropick/internal/domain/roles"
	"github.com/okian/heropick/internal/domain/scoring"
)

// Candidate is one ranked pool hero.
type Candidate struct {
	Hero       string           `json:"hero"`
	Score      scoring.Result   `json:"result"`
	Tags       []string         `json:"tags"`
	Fulfills   []string         `json:"fulfills"`
	AttackType model.AttackType `json:"attack_type"`
	Comfort    string           `json:"comfort"`
}

// Ranker applies an engine to the pool.
type Ranker struct {
	engine      *scoring.Engine
	catalog     *catalog.Catalog
	pool        *catalog.Pool
	parallelism int
}

// New validates ds and returns a ranker over its pool.
func New(ds catalog.Dataset, engine *scoring.Engine, opts ...Option) (*Ranker, error) {
	if engine == nil {
		return nil, ErrNoScorer
	}
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("ranking: %w", err)
	}
	if got := engine.Dataset(); got.Catalog != ds.Catalog || got.Pool != ds.Pool || got.Matchups != ds.Matchups {
		return nil, ErrDatasetMismatch
	}
	r := &Ranker{
		engine:      engine,
		catalog:     ds.Catalog,
		pool:        ds.Pool,
		parallelism: 1,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Rank scores every pool hero not picked by either side and returns them by
// descending score. Equal scores keep pool order: candidates are collected in
// pool order and sorted with a stable sort.
func (r *Ranker) Rank(ctx context.Context, team, enemy, desired []string) ([]Candidate, error) {
	if err := r.catalog.ValidateDraft(team, enemy); err != nil {
		return nil, err
	}

	excluded := make(map[string]struct{}, len(team)+len(enemy))
	for _, h := range team {
		excluded[h] = struct{}{}
	}
	for _, h := range enemy {
		excluded[h] = struct{}{}
	}

	var eligible []string
	for _, h := range r.pool.Names() {
		if _, skip := excluded[h]; !skip {
			eligible = append(eligible, h)
		}
	}

	missing := roles.MissingRoles(r.catalog, team, desired)
	out := make([]Candidate, len(eligible))
	build := func(i int) {
		h := eligible[i]
		tags := r.catalog.Tags(h)
		out[i] = Candidate{
			Hero:       h,
			Score:      r.engine.ScoreWithMissing(h, team, enemy, desired, missing),
			Tags:       tags,
			Fulfills:   roles.Intersect(tags, missing),
			AttackType: model.AttackTypeOf(tags),
			Comfort:    string(r.pool.Comfort(h)),
		}
	}

	if r.parallelism < 2 || len(eligible) < 2 {
		for i := range eligible {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			build(i)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(r.parallelism)
		for i := range eligible {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				build(i)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score.Value > out[j].Score.Value
	})
	return out, nil
}

// Missing returns the desired roles the team lacks, using the ranker's catalog.
func (r *Ranker) Missing(team, desired []string) []string {
	return roles.MissingRoles(r.catalog, team, desired)
}
