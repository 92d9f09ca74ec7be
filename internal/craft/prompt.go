package craft

import (
	"fmt"
	"strings"

	"github.com/exilekitchen/buildcraft/internal/sanitizer"
	"github.com/exilekitchen/buildcraft/pkg/models"
)

// responseSchema lists the current field names the model must answer with.
const responseSchema = `{
  "analysis_log": "string",
  "build_title": "string",
  "build_reasoning": "string",
  "gear_gems": [{"name": "string", "quantity": "string", "unit": "string"}],
  "build_items": [{"name": "string", "quantity": "string", "unit": "string"}],
  "build_steps": ["string"],
  "compliance_badge": true,
  "build_archetype": "league_starter | mapper | bossing | hybrid",
  "build_cost_tier": "budget | mid_tier | high_investment | mirror_tier",
  "setup_time": "quick | plenty",
  "setup_time_minutes": 0
}`

// BuildPrompt renders the generation prompt for a normalized session. locale
// is the resolved response locale and picks the narrative language.
func BuildPrompt(s models.BuildSessionContext, locale string) string {
	var b strings.Builder

	b.WriteString("You are a Path of Exile build advisor. Design one character build for the party described below.\n")
	b.WriteString("Only talk about Path of Exile: skills, gems, gear, passives, ascendancies and currency. Never describe food or cooking.\n\n")

	b.WriteString("Party members: ")
	b.WriteString(listOrNone(s.PartyMemberIDs))
	b.WriteString("\nGear and gems already in the stash: ")
	b.WriteString(listOrNone(s.StashGearGems))
	fmt.Fprintf(&b, "\nRequested archetype: %s (%s)", s.RequestedArchetype, sanitizer.DefaultLabel(string(s.RequestedArchetype)))
	fmt.Fprintf(&b, "\nCost tier: %s (%s)", s.CostTierPreference, sanitizer.DefaultLabel(string(s.CostTierPreference)))
	fmt.Fprintf(&b, "\nSetup time: %s (%s)", s.SetupTimePreference, sanitizer.DefaultLabel(string(s.SetupTimePreference)))
	if notes := strings.TrimSpace(s.BuildNotes); notes != "" {
		b.WriteString("\nPlayer notes: ")
		b.WriteString(notes)
	}

	b.WriteString("\n\n")
	if sanitizer.IsSecondaryLocale(locale) {
		b.WriteString("Write every narrative field (analysis_log, build_title, build_reasoning, build_steps) in Brazilian Portuguese.\n")
	} else {
		b.WriteString("Write every narrative field in English.\n")
	}
	b.WriteString("Do not put enum values such as mid_tier or league_starter inside narrative text.\n")
	b.WriteString("Answer with a single JSON object using exactly this schema:\n")
	b.WriteString(responseSchema)
	b.WriteString("\n")
	return b.String()
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
