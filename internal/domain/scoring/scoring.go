// Package scoring computes the composite pick score of a pool hero for a given
// draft state, together with an explainable breakdown.
package scoring

import (
	"context"
	"fmt"
	"math"

	"github.com/okian/heropick/internal/domain/catalog"
	"github.com/okian/heropick/internal/domain/model"
	"github.com/okian/heropick/internal/domain/roles"
)

// Rounding applied to the composite value and to the breakdown entries.
const (
	valuePlaces     = 2
	breakdownPlaces = 1
)

// Role credit per matching desired tag.
const (
	missingRoleCredit = 1.0
	coveredRoleCredit = 0.5
)

// Weights scales each component before the comfort multiplier is applied.
type Weights struct {
	Role        float64 `json:"role" yaml:"role"`
	Synergy     float64 `json:"synergy" yaml:"synergy"`
	Counter     float64 `json:"counter" yaml:"counter"`
	CounteredBy float64 `json:"countered_by" yaml:"countered_by"`
}

// DefaultWeights returns 1.0 / 1.2 / 1.5 / 1.0.
func DefaultWeights() Weights {
	return Weights{Role: 1.0, Synergy: 1.2, Counter: 1.5, CounteredBy: 1.0}
}

func (w Weights) validate() error {
	for name, v := range map[string]float64{
		"role": w.Role, "synergy": w.Synergy, "counter": w.Counter, "countered_by": w.CounteredBy,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s=%v", ErrInvalidWeights, name, v)
		}
	}
	return nil
}

// Breakdown holds the weighted components before the comfort multiplier,
// each rounded to one decimal, plus the multiplier itself.
type Breakdown struct {
	Role        float64 `json:"role"`
	Synergy     float64 `json:"synergy"`
	Counter     float64 `json:"counter"`
	CounteredBy float64 `json:"countered_by"`
	Comfort     float64 `json:"comfort"`
}

// Result is the score of one hero.
type Result struct {
	Hero      string    `json:"hero"`
	Value     float64   `json:"score"`
	Breakdown Breakdown `json:"breakdown"`
}

// Scorer scores a single hero against a draft state.
type Scorer interface {
	Score(ctx context.Context, hero string, team, enemy, desired []string) (Result, error)
}

// Engine is the default Scorer. It is safe for concurrent use; all of its
// inputs are read-only.
type Engine struct {
	catalog     *catalog.Catalog
	pool        *catalog.Pool
	matchups    *catalog.MatchupTable
	weights     Weights
	comfort     model.ComfortTable
	useMatchups bool
}

// New builds an engine over ds. Pool and matchups may be nil: every hero then
// reads as comfort "ok" with no matchup entries.
func New(ds catalog.Dataset, opts ...Option) (*Engine, error) {
	if ds.Catalog == nil {
		return nil, ErrNilDataset
	}
	e := &Engine{
		catalog:     ds.Catalog,
		pool:        ds.Pool,
		matchups:    ds.Matchups,
		weights:     DefaultWeights(),
		comfort:     model.DefaultComfortTable(),
		useMatchups: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.weights.validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Weights returns the configured weights.
func (e *Engine) Weights() Weights { return e.weights }

// UsesMatchups reports whether matchup terms contribute to the score.
func (e *Engine) UsesMatchups() bool { return e.useMatchups }

// Dataset returns the data set the engine was built over.
func (e *Engine) Dataset() catalog.Dataset {
	return catalog.Dataset{Catalog: e.catalog, Pool: e.pool, Matchups: e.matchups}
}

// Score computes the score of hero for the given draft. The hero and every
// pick must exist in the catalog.
func (e *Engine) Score(ctx context.Context, hero string, team, enemy, desired []string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("score %q: %w", hero, err)
	}
	if err := e.catalog.Require(hero); err != nil {
		return Result{}, fmt.Errorf("score candidate: %w", err)
	}
	if err := e.catalog.Require(team...); err != nil {
		return Result{}, fmt.Errorf("score team: %w", err)
	}
	if err := e.catalog.Require(enemy...); err != nil {
		return Result{}, fmt.Errorf("score enemy: %w", err)
	}
	return e.score(hero, team, enemy, desired, roles.MissingRoles(e.catalog, team, desired)), nil
}

// ScoreWithMissing is Score for callers that already validated the draft and
// computed the missing roles once for many candidates.
func (e *Engine) ScoreWithMissing(hero string, team, enemy, desired, missing []string) Result {
	return e.score(hero, team, enemy, desired, missing)
}

func (e *Engine) score(hero string, team, enemy, desired, missing []string) Result {
	role := roleComponent(e.catalog.Tags(hero), desired, missing)

	var synergy, counter, counteredBy float64
	if e.useMatchups {
		rec := e.matchups.Record(hero)
		for _, m := range team {
			synergy += rec.SynergyWith(m)
		}
		for _, en := range enemy {
			if v := rec.CounterOf(en); v > 0 {
				counter += v
			}
			if v := rec.CounteredByHero(en); v < 0 {
				counteredBy += v
			}
		}
	}

	comfort := e.comfort.Multiplier(e.comfortOf(hero))

	// explicit conversions keep each product rounded on its own
	wRole := float64(e.weights.Role * role)
	wSynergy := float64(e.weights.Synergy * synergy)
	wCounter := float64(e.weights.Counter * counter)
	wCounteredBy := float64(e.weights.CounteredBy * counteredBy)
	base := float64(wRole + wSynergy + wCounter + wCounteredBy)
	value := float64(base * comfort)

	return Result{
		Hero:  hero,
		Value: Round(value, valuePlaces),
		Breakdown: Breakdown{
			Role:        Round(wRole, breakdownPlaces),
			Synergy:     Round(wSynergy, breakdownPlaces),
			Counter:     Round(wCounter, breakdownPlaces),
			CounteredBy: Round(wCounteredBy, breakdownPlaces),
			Comfort:     Round(comfort, breakdownPlaces),
		},
	}
}

func (e *Engine) comfortOf(hero string) model.ComfortLevel {
	if e.pool == nil {
		return model.OK
	}
	return e.pool.Comfort(hero)
}

// roleComponent credits every hero tag that is a desired role: full credit
// when the team still lacks it, partial credit otherwise.
func roleComponent(tags, desired, missing []string) float64 {
	want := make(map[string]struct{}, len(desired))
	for _, r := range desired {
		want[r] = struct{}{}
	}
	gap := make(map[string]struct{}, len(missing))
	for _, r := range missing {
		gap[r] = struct{}{}
	}
	var score float64
	for _, t := range tags {
		if _, ok := want[t]; !ok {
			continue
		}
		if _, ok := gap[t]; ok {
			score += missingRoleCredit
		} else {
			score += coveredRoleCredit
		}
	}
	return score
}
