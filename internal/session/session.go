// Package session normalizes craft-request preferences across both API
// vocabulary generations.
//
// The legacy generation dates from the recipe assistant ("who is eating",
// "difficulty", "prep time"). Every field is read from its current name
// first and its legacy aliases second; enum values are folded through
// immutable synonym tables and never fail: unknown input resolves to a safe
// default so missing or garbled preferences cannot block generation.
package session

import (
	"strings"

	"github.com/exilekitchen/buildcraft/internal/fields"
	"github.com/exilekitchen/buildcraft/internal/textfold"
	"github.com/exilekitchen/buildcraft/pkg/models"
)

// Field names, current first. The first legacy alias is the one ToLegacy emits.
var (
	partyMemberKeys  = []string{"party_member_ids", "who_is_eating"}
	stashGearGemKeys = []string{"stash_gear_gems", "pantry_ingredients"}
	archetypeKeys    = []string{"requested_archetype", "requested_type"}
	costTierKeys     = []string{"cost_tier_preference", "difficulty_preference", "difficulty"}
	setupTimeKeys    = []string{"setup_time_preference", "prep_time_preference"}
	buildNotesKeys   = []string{"build_notes", "notes"}
	languageKeys     = []string{"language"}
)

// Defaults applied when a preference is missing or unrecognized.
const (
	DefaultArchetype = models.ArchetypeLeagueStarter
	DefaultCostTier  = models.CostTierMid
	DefaultSetupTime = models.SetupTimeQuick
)

// NormalizeArchetype folds any archetype spelling to the closed enum.
func NormalizeArchetype(v any) models.Archetype {
	if a, ok := archetypeSynonyms[textfold.Key(fields.String(v))]; ok {
		return a
	}
	return DefaultArchetype
}

// NormalizeCostTier folds any cost-tier or legacy difficulty spelling, in
// either language, to one of the four tiers.
func NormalizeCostTier(v any) models.CostTier {
	if c, ok := costTierSynonyms[textfold.Key(fields.String(v))]; ok {
		return c
	}
	return DefaultCostTier
}

// NormalizeSetupTime folds v to quick or plenty.
func NormalizeSetupTime(v any) models.SetupTime {
	if s, ok := setupTimeSynonyms[textfold.Key(fields.String(v))]; ok {
		return s
	}
	return DefaultSetupTime
}

// LegacyArchetypeToken returns the legacy-generation spelling of a.
func LegacyArchetypeToken(a models.Archetype) string {
	return legacyArchetypeTokens[NormalizeArchetype(string(a))]
}

// LegacyCostTierToken returns the legacy difficulty spelling of c.
func LegacyCostTierToken(c models.CostTier) string {
	return legacyCostTierTokens[NormalizeCostTier(string(c))]
}

// LegacySetupTimeToken returns the legacy prep-time spelling of s.
func LegacySetupTimeToken(s models.SetupTime) string {
	return legacySetupTimeTokens[NormalizeSetupTime(string(s))]
}

// Normalize reads a session context in either vocabulary.
func Normalize(raw map[string]any) models.BuildSessionContext {
	ctx := models.BuildSessionContext{
		PartyMemberIDs:      []string{},
		StashGearGems:       []string{},
		RequestedArchetype:  DefaultArchetype,
		CostTierPreference:  DefaultCostTier,
		SetupTimePreference: DefaultSetupTime,
	}
	if v, ok := fields.Lookup(raw, partyMemberKeys...); ok {
		ctx.PartyMemberIDs = fields.StringList(v)
	}
	if v, ok := fields.Lookup(raw, stashGearGemKeys...); ok {
		ctx.StashGearGems = fields.StringList(v)
	}
	if v, ok := fields.Lookup(raw, archetypeKeys...); ok {
		ctx.RequestedArchetype = NormalizeArchetype(v)
	}
	if v, ok := fields.Lookup(raw, costTierKeys...); ok {
		ctx.CostTierPreference = NormalizeCostTier(v)
	}
	if v, ok := fields.Lookup(raw, setupTimeKeys...); ok {
		ctx.SetupTimePreference = NormalizeSetupTime(v)
	}
	if v, ok := fields.Lookup(raw, buildNotesKeys...); ok {
		ctx.BuildNotes = strings.TrimSpace(fields.String(v))
	}
	if v, ok := fields.Lookup(raw, languageKeys...); ok {
		ctx.Language = strings.TrimSpace(fields.String(v))
	}
	return ctx
}

// ToCanonical projects ctx onto current field names.
func ToCanonical(ctx models.BuildSessionContext) map[string]any {
	return map[string]any{
		partyMemberKeys[0]:  copyList(ctx.PartyMemberIDs),
		stashGearGemKeys[0]: copyList(ctx.StashGearGems),
		archetypeKeys[0]:    string(NormalizeArchetype(string(ctx.RequestedArchetype))),
		costTierKeys[0]:     string(NormalizeCostTier(string(ctx.CostTierPreference))),
		setupTimeKeys[0]:    string(NormalizeSetupTime(string(ctx.SetupTimePreference))),
		buildNotesKeys[0]:   ctx.BuildNotes,
		languageKeys[0]:     ctx.Language,
	}
}

// ToLegacy projects ctx onto legacy field names and legacy enum spellings.
// Normalize(ToLegacy(ctx)) reproduces ctx.
func ToLegacy(ctx models.BuildSessionContext) map[string]any {
	return map[string]any{
		partyMemberKeys[1]:  copyList(ctx.PartyMemberIDs),
		stashGearGemKeys[1]: copyList(ctx.StashGearGems),
		archetypeKeys[1]:    LegacyArchetypeToken(ctx.RequestedArchetype),
		costTierKeys[1]:     LegacyCostTierToken(ctx.CostTierPreference),
		setupTimeKeys[1]:    LegacySetupTimeToken(ctx.SetupTimePreference),
		buildNotesKeys[1]:   ctx.BuildNotes,
		languageKeys[0]:     ctx.Language,
	}
}

func copyList(in []string) []string {
	out := make([]string, 0, len(in))
	return append(out, in...)
}
