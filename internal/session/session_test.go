package session_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exilekitchen/buildcraft/internal/session"
	"github.com/exilekitchen/buildcraft/pkg/models"
)

func TestNormalizeArchetype(t *testing.T) {
	cases := []struct {
		in   any
		want models.Archetype
	}{
		{"league_starter", models.ArchetypeLeagueStarter},
		{"  League   Starter  ", models.ArchetypeLeagueStarter},
		{"LEAGUE-STARTER", models.ArchetypeLeagueStarter},
		{"Início de Liga", models.ArchetypeLeagueStarter},
		{"mapper", models.ArchetypeMapper},
		{"Map Farmer", models.ArchetypeMapper},
		{"MAPEADOR", models.ArchetypeMapper},
		{"boss_killer", models.ArchetypeBossing},
		{"Bossing", models.ArchetypeBossing},
		{"Híbrido", models.ArchetypeHybrid},
		{"all rounder", models.ArchetypeHybrid},
		{"", models.ArchetypeLeagueStarter},
		{nil, models.ArchetypeLeagueStarter},
		{42.0, models.ArchetypeLeagueStarter},
		{"dessert", models.ArchetypeLeagueStarter},
	}
	closed := map[models.Archetype]bool{}
	for _, a := range models.Archetypes {
		closed[a] = true
	}
	for _, tc := range cases {
		got := session.NormalizeArchetype(tc.in)
		assert.Equal(t, tc.want, got, "NormalizeArchetype(%v)", tc.in)
		assert.True(t, closed[got], "NormalizeArchetype(%v) = %q escapes the closed set", tc.in, got)
	}
}

func TestNormalizeCostTier(t *testing.T) {
	cases := map[string]models.CostTier{
		"budget":            models.CostTierBudget,
		"Fácil":             models.CostTierBudget,
		"easy":              models.CostTierBudget,
		"Econômico":         models.CostTierBudget,
		"medium":            models.CostTierMid,
		"Médio":             models.CostTierMid,
		"intermediário":     models.CostTierMid,
		"hard":              models.CostTierHighInvestment,
		"Alto Investimento": models.CostTierHighInvestment,
		"difícil":           models.CostTierHighInvestment,
		"expert":            models.CostTierMirror,
		"Mirror Tier":       models.CostTierMirror,
		"mestre":            models.CostTierMirror,
		"???":               models.CostTierMid,
		"":                  models.CostTierMid,
	}
	for in, want := range cases {
		assert.Equal(t, want, session.NormalizeCostTier(in), "NormalizeCostTier(%q)", in)
	}
}

func TestNormalizeSetupTime(t *testing.T) {
	assert.Equal(t, models.SetupTimeQuick, session.NormalizeSetupTime("quick"))
	assert.Equal(t, models.SetupTimePlenty, session.NormalizeSetupTime(" Plenty "))
	assert.Equal(t, models.SetupTimePlenty, session.NormalizeSetupTime("sem pressa"))
	assert.Equal(t, models.SetupTimeQuick, session.NormalizeSetupTime("whenever"))
	assert.Equal(t, models.SetupTimeQuick, session.NormalizeSetupTime(nil))
}

func TestNormalize_LegacyVocabulary(t *testing.T) {
	raw := map[string]any{
		"who_is_eating":        []any{"m1", 2.0, " "},
		"pantry_ingredients":   "Tabula Rasa, Goldrim",
		"requested_type":       "map farmer",
		"difficulty":           "Difícil",
		"prep_time_preference": "plenty",
		"notes":                "  no melee  ",
		"language":             "pt-BR",
	}
	ctx := session.Normalize(raw)
	assert.Equal(t, []string{"m1", "2"}, ctx.PartyMemberIDs)
	assert.Equal(t, []string{"Tabula Rasa", "Goldrim"}, ctx.StashGearGems)
	assert.Equal(t, models.ArchetypeMapper, ctx.RequestedArchetype)
	assert.Equal(t, models.CostTierHighInvestment, ctx.CostTierPreference)
	assert.Equal(t, models.SetupTimePlenty, ctx.SetupTimePreference)
	assert.Equal(t, "no melee", ctx.BuildNotes)
	assert.Equal(t, "pt-BR", ctx.Language)
}

func TestNormalize_CurrentWinsOverLegacy(t *testing.T) {
	ctx := session.Normalize(map[string]any{
		"cost_tier_preference":  "mirror_tier",
		"difficulty_preference": "easy",
	})
	assert.Equal(t, models.CostTierMirror, ctx.CostTierPreference)
}

func TestNormalize_EmptyInputDefaults(t *testing.T) {
	ctx := session.Normalize(nil)
	assert.Equal(t, models.ArchetypeLeagueStarter, ctx.RequestedArchetype)
	assert.Equal(t, models.CostTierMid, ctx.CostTierPreference)
	assert.Equal(t, models.SetupTimeQuick, ctx.SetupTimePreference)
	assert.NotNil(t, ctx.PartyMemberIDs)
	assert.NotNil(t, ctx.StashGearGems)
}

// jsonTrip pushes a projection through encoding/json the way a client would.
func jsonTrip(t *testing.T, in map[string]any) map[string]any {
	t.Helper()
	data, err := json.Marshal(in)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestRoundTrip_FromCanonical(t *testing.T) {
	for _, a := range models.Archetypes {
		for _, c := range models.CostTiers {
			for _, s := range []models.SetupTime{models.SetupTimeQuick, models.SetupTimePlenty} {
				want := models.BuildSessionContext{
					PartyMemberIDs:      []string{"a", "b"},
					StashGearGems:       []string{"Chaos Orb"},
					RequestedArchetype:  a,
					CostTierPreference:  c,
					SetupTimePreference: s,
					BuildNotes:          "notes",
					Language:            "en",
				}
				legacy := jsonTrip(t, session.ToLegacy(want))
				back := session.Normalize(legacy)
				assert.Equal(t, want, back)
				assert.Equal(t, jsonTrip(t, session.ToCanonical(want)), jsonTrip(t, session.ToCanonical(back)))
			}
		}
	}
}

func TestRoundTrip_FromLegacy(t *testing.T) {
	legacy := map[string]any{
		"who_is_eating":         []any{"p1"},
		"pantry_ingredients":    []any{"Orb of Fusing"},
		"requested_type":        "boss_killer",
		"difficulty_preference": "expert",
		"prep_time_preference":  "plenty",
		"notes":                 "n",
		"language":              "en",
	}
	first := session.Normalize(legacy)
	canonical := jsonTrip(t, session.ToCanonical(first))
	second := session.Normalize(canonical)
	assert.Equal(t, first, second)

	again := jsonTrip(t, session.ToLegacy(second))
	assert.Equal(t, legacy, again)
}
