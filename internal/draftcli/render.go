package draftcli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/okian/heropick/internal/domain/roles"
	"github.com/okian/heropick/internal/domain/types"
)

const tagColumn = 15

func attackIcon(attack string) string {
	switch attack {
	case "Melee":
		return "🗡️"
	case "Ranged":
		return "🏹"
	default:
		return "?"
	}
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeTags(b *strings.Builder, title string, tags []roles.TagCount) {
	fmt.Fprintf(b, "\n%s tags:\n", title)
	for _, t := range tags {
		fmt.Fprintf(b, "%-*s %s\n", tagColumn, t.Tag, strings.Repeat("+", t.Count))
	}
}

// Render writes the report the way the interactive prompt shows it.
func Render(w io.Writer, r types.Report) error {
	var b strings.Builder

	b.WriteString("\nTags to fulfill:\n")
	for _, role := range r.MissingRoles {
		fmt.Fprintf(&b, "- %s\n", role)
	}

	b.WriteString("\nCurrent team attack type:\n")
	fmt.Fprintf(&b, "%s %d  %s %d\n", attackIcon("Melee"), r.TeamAttack.Melee, attackIcon("Ranged"), r.TeamAttack.Ranged)

	writeTags(&b, "Team", r.TeamTags)
	writeTags(&b, "Enemy", r.EnemyTags)

	b.WriteString("\nHeroes that fill missing roles:\n")
	for _, f := range r.RoleFillers {
		fmt.Fprintf(&b, "%s %s: %s\n", f.Hero, attackIcon(string(f.Attack)), strings.Join(f.Roles, ", "))
	}

	b.WriteString("\nTop Hero Suggestions:\n")
	for _, s := range r.Suggestions {
		fmt.Fprintf(&b, "%s %s: %s [%s]\n", s.Hero, attackIcon(s.AttackType), formatScore(s.Score), strings.Join(s.Fulfills, ", "))
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
