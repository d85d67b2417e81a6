package model

// Matchup kinds as named in the interchange format.
const (
	KindSynergy      = "synergy"
	KindCounters     = "counters"
	KindCounteredBy  = "countered_by"
	KindWorstSynergy = "worst_synergy"
)

// MatchupKinds lists the four kinds in interchange order.
func MatchupKinds() []string {
	return []string{KindSynergy, KindCounters, KindCounteredBy, KindWorstSynergy}
}

// MatchupRecord holds one hero's pairwise statistics. Each map is keyed by the
// other hero's name. A missing entry means no notable relationship.
type MatchupRecord struct {
	Synergy      map[string]float64 `json:"synergy" yaml:"synergy"`
	Counters     map[string]float64 `json:"counters" yaml:"counters"`
	CounteredBy  map[string]float64 `json:"countered_by" yaml:"countered_by"`
	WorstSynergy map[string]float64 `json:"worst_synergy" yaml:"worst_synergy"`
}

// SynergyWith returns the synergy with teammate, 0 when absent.
func (r MatchupRecord) SynergyWith(teammate string) float64 { return r.Synergy[teammate] }

// CounterOf returns how strongly the hero beats opponent, 0 when absent.
func (r MatchupRecord) CounterOf(opponent string) float64 { return r.Counters[opponent] }

// CounteredByHero returns how strongly opponent beats the hero, 0 when absent.
func (r MatchupRecord) CounteredByHero(opponent string) float64 { return r.CounteredBy[opponent] }

// WorstSynergyWith returns the poor pairing value with teammate, 0 when absent.
func (r MatchupRecord) WorstSynergyWith(teammate string) float64 { return r.WorstSynergy[teammate] }

// Kind returns the map for a named kind, nil for unknown kinds.
func (r MatchupRecord) Kind(kind string) map[string]float64 {
	switch kind {
	case KindSynergy:
		return r.Synergy
	case KindCounters:
		return r.Counters
	case KindCounteredBy:
		return r.CounteredBy
	case KindWorstSynergy:
		return r.WorstSynergy
	}
	return nil
}

// Set stores value under kind, allocating the map on first use. Unknown kinds
// are ignored.
func (r *MatchupRecord) Set(kind, other string, value float64) {
	var m *map[string]float64
	switch kind {
	case KindSynergy:
		m = &r.Synergy
	case KindCounters:
		m = &r.Counters
	case KindCounteredBy:
		m = &r.CounteredBy
	case KindWorstSynergy:
		m = &r.WorstSynergy
	default:
		return
	}
	if *m == nil {
		*m = make(map[string]float64)
	}
	(*m)[other] = value
}

// Len returns the total number of entries across all kinds.
func (r MatchupRecord) Len() int {
	return len(r.Synergy) + len(r.Counters) + len(r.CounteredBy) + len(r.WorstSynergy)
}
