package catalog

import (
	"sort"

	"github.com/okian/heropick/internal/domain/model"
)

// MatchupTable maps a hero to its pairwise statistics.
type MatchupTable struct {
	records map[string]model.MatchupRecord
}

// NewMatchupTable wraps records. A nil map yields an empty table.
func NewMatchupTable(records map[string]model.MatchupRecord) *MatchupTable {
	t := &MatchupTable{records: make(map[string]model.MatchupRecord, len(records))}
	for hero, r := range records {
		t.records[hero] = r
	}
	return t
}

// Record returns the hero's record; heroes absent from the table get an empty
// record whose accessors all read zero.
func (t *MatchupTable) Record(hero string) model.MatchupRecord {
	if t == nil {
		return model.MatchupRecord{}
	}
	return t.records[hero]
}

// Has reports whether the table carries a record for hero.
func (t *MatchupTable) Has(hero string) bool {
	if t == nil {
		return false
	}
	_, ok := t.records[hero]
	return ok
}

// Heroes returns the heroes with records, sorted by name.
func (t *MatchupTable) Heroes() []string {
	if t == nil {
		return nil
	}
	out := make([]string, 0, len(t.records))
	for h := range t.records {
		out = append(out, h)
	}
	sort.Strings(out)
	return out
}

// Records returns a shallow copy of the underlying map.
func (t *MatchupTable) Records() map[string]model.MatchupRecord {
	out := make(map[string]model.MatchupRecord)
	if t == nil {
		return out
	}
	for h, r := range t.records {
		out[h] = r
	}
	return out
}

// Len returns the number of heroes with records.
func (t *MatchupTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}
