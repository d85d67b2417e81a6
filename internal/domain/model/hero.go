// Package model contains domain models passed between layers.
package model

// Attack type tags share the role tag namespace.
const (
	TagMelee  = "Melee"
	TagRanged = "Ranged"
)

// AttackType is derived from a hero's tags.
type AttackType string

// Known attack types.
const (
	AttackMelee   AttackType = TagMelee
	AttackRanged  AttackType = TagRanged
	AttackUnknown AttackType = "Unknown"
)

// Hero is a selectable character and the tags it carries.
type Hero struct {
	Name string   // unique within the catalog
	Tags []string // role tags and attack type tags, in catalog order
}

// HasTag reports whether the hero carries tag.
func (h Hero) HasTag(tag string) bool {
	for _, t := range h.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// AttackType returns Melee or Ranged, else Unknown.
func (h Hero) AttackType() AttackType {
	return AttackTypeOf(h.Tags)
}

// AttackTypeOf derives the attack type from a tag list. Melee wins when a
// malformed entry carries both.
func AttackTypeOf(tags []string) AttackType {
	ranged := false
	for _, t := range tags {
		switch t {
		case TagMelee:
			return AttackMelee
		case TagRanged:
			ranged = true
		}
	}
	if ranged {
		return AttackRanged
	}
	return AttackUnknown
}

// IsAttackTag reports whether tag names an attack type rather than a role.
func IsAttackTag(tag string) bool {
	return tag == TagMelee || tag == TagRanged
}

// DefaultDesiredRoles is the composition a team should cover.
func DefaultDesiredRoles() []string {
	return []string{"Frontliner", "Disabler", "Initiator", "Tower Push", "Wave Clear"}
}
