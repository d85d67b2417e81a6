// Package catalog holds the read-only data the recommender consumes: the hero
// catalog, the player's comfort pool and the matchup table. Every lookup on
// optional data goes through a defaulting accessor and never fails.
package catalog

import (
	"fmt"
	"strings"

	"github.com/okian/heropick/internal/domain/model"
)

// Catalog maps hero names to their tags. Iteration order is the order the
// heroes were supplied in.
type Catalog struct {
	names  []string
	heroes map[string]model.Hero
}

// New builds a catalog. Names must be unique and non-empty.
func New(heroes []model.Hero) (*Catalog, error) {
	c := &Catalog{
		names:  make([]string, 0, len(heroes)),
		heroes: make(map[string]model.Hero, len(heroes)),
	}
	for _, h := range heroes {
		if strings.TrimSpace(h.Name) == "" {
			return nil, ErrEmptyName
		}
		if _, dup := c.heroes[h.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateHero, h.Name)
		}
		tags := make([]string, len(h.Tags))
		copy(tags, h.Tags)
		c.names = append(c.names, h.Name)
		c.heroes[h.Name] = model.Hero{Name: h.Name, Tags: tags}
	}
	return c, nil
}

// Hero returns the hero and whether it exists.
func (c *Catalog) Hero(name string) (model.Hero, bool) {
	h, ok := c.heroes[name]
	return h, ok
}

// Contains reports whether name is in the catalog.
func (c *Catalog) Contains(name string) bool {
	_, ok := c.heroes[name]
	return ok
}

// Tags returns the hero's tags, or nil for unknown heroes.
func (c *Catalog) Tags(name string) []string {
	return c.heroes[name].Tags
}

// AttackType returns the hero's attack type, Unknown for unknown heroes.
func (c *Catalog) AttackType(name string) model.AttackType {
	return model.AttackTypeOf(c.heroes[name].Tags)
}

// Names returns hero names in catalog order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Heroes returns every hero in catalog order.
func (c *Catalog) Heroes() []model.Hero {
	out := make([]model.Hero, 0, len(c.names))
	for _, n := range c.names {
		out = append(out, c.heroes[n])
	}
	return out
}

// Len returns the number of heroes.
func (c *Catalog) Len() int { return len(c.names) }

// Require fails with ErrUnknownHero for the first name not in the catalog.
func (c *Catalog) Require(names ...string) error {
	for _, n := range names {
		if !c.Contains(n) {
			return fmt.Errorf("%w: %q", ErrUnknownHero, n)
		}
	}
	return nil
}

// ValidateDraft checks both compositions against the catalog and rejects a
// hero that appears more than once across the two sides.
func (c *Catalog) ValidateDraft(team, enemy []string) error {
	seen := make(map[string]struct{}, len(team)+len(enemy))
	for _, side := range [][]string{team, enemy} {
		if err := c.Require(side...); err != nil {
			return err
		}
		for _, h := range side {
			if _, dup := seen[h]; dup {
				return fmt.Errorf("%w: %q", ErrDuplicatePick, h)
			}
			seen[h] = struct{}{}
		}
	}
	return nil
}
