package catalog

import (
	"fmt"
	"strings"

	"github.com/okian/heropick/internal/domain/model"
)

// PoolEntry is one hero the player is willing to play.
type PoolEntry struct {
	Hero    string
	Comfort model.ComfortLevel
}

// Pool is the comfort registry. Its entry order is the canonical iteration
// order used when ranking, so ties keep this order.
type Pool struct {
	entries []PoolEntry
	comfort map[string]model.ComfortLevel
}

// NewPool builds a pool from ordered entries.
func NewPool(entries []PoolEntry) (*Pool, error) {
	p := &Pool{
		entries: make([]PoolEntry, 0, len(entries)),
		comfort: make(map[string]model.ComfortLevel, len(entries)),
	}
	for _, e := range entries {
		if strings.TrimSpace(e.Hero) == "" {
			return nil, ErrEmptyName
		}
		if _, dup := p.comfort[e.Hero]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateHero, e.Hero)
		}
		p.entries = append(p.entries, e)
		p.comfort[e.Hero] = e.Comfort
	}
	return p, nil
}

// Comfort returns the hero's comfort level, OK when the hero is not in the pool
// or has no level.
func (p *Pool) Comfort(hero string) model.ComfortLevel {
	if c, ok := p.comfort[hero]; ok && c != "" {
		return c
	}
	return model.OK
}

// Contains reports whether hero is in the pool.
func (p *Pool) Contains(hero string) bool {
	_, ok := p.comfort[hero]
	return ok
}

// Entries returns the pool in canonical order.
func (p *Pool) Entries() []PoolEntry {
	out := make([]PoolEntry, len(p.entries))
	copy(out, p.entries)
	return out
}

// Names returns pool hero names in canonical order.
func (p *Pool) Names() []string {
	out := make([]string, len(p.entries))
	for i, e := range p.entries {
		out[i] = e.Hero
	}
	return out
}

// Len returns the pool size.
func (p *Pool) Len() int { return len(p.entries) }
