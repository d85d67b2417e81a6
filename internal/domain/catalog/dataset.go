package catalog

import "fmt"

// Dataset bundles the three inputs of a recommendation run.
type Dataset struct {
	Catalog  *Catalog
	Pool     *Pool
	Matchups *MatchupTable
}

// Validate checks that every pool hero exists in the catalog.
func (d Dataset) Validate() error {
	if d.Catalog == nil || d.Pool == nil {
		return ErrIncomplete
	}
	for _, h := range d.Pool.Names() {
		if !d.Catalog.Contains(h) {
			return fmt.Errorf("pool hero not in catalog: %w: %q", ErrUnknownHero, h)
		}
	}
	return nil
}
