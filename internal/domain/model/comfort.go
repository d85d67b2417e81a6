package model

import "strings"

// ComfortLevel is a player's self-rating with a pool hero.
type ComfortLevel string

// Comfort levels, most to least comfortable.
const (
	VeryComfortable ComfortLevel = "very_comfortable"
	Comfortable     ComfortLevel = "comfortable"
	OK              ComfortLevel = "ok"
	Learning        ComfortLevel = "learning"
)

// ComfortLevels lists the known levels in order.
func ComfortLevels() []ComfortLevel {
	return []ComfortLevel{VeryComfortable, Comfortable, OK, Learning}
}

// ParseComfort normalises s. Unknown values are returned as-is with ok=false;
// they still read as OK wherever a multiplier is needed.
func ParseComfort(s string) (ComfortLevel, bool) {
	c := ComfortLevel(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case VeryComfortable, Comfortable, OK, Learning:
		return c, true
	}
	return ComfortLevel(s), false
}

// ComfortTable maps a comfort level to its score multiplier.
type ComfortTable map[ComfortLevel]float64

// DefaultComfortTable returns the stock multipliers.
func DefaultComfortTable() ComfortTable {
	return ComfortTable{
		VeryComfortable: 1.3,
		Comfortable:     1.2,
		OK:              1.1,
		Learning:        1.0,
	}
}

// Multiplier never fails: unknown levels use the OK multiplier, and a table
// without an OK entry falls back to the stock OK value.
func (t ComfortTable) Multiplier(level ComfortLevel) float64 {
	if m, ok := t[level]; ok {
		return m
	}
	if m, ok := t[OK]; ok {
		return m
	}
	return DefaultComfortTable()[OK]
}

// ComfortTableFromConfig builds a table from string keys, skipping unknown
// levels and non-positive multipliers.
func ComfortTableFromConfig(raw map[string]float64) ComfortTable {
	t := DefaultComfortTable()
	for k, v := range raw {
		level, ok := ParseComfort(k)
		if !ok || v <= 0 {
			continue
		}
		t[level] = v
	}
	return t
}
