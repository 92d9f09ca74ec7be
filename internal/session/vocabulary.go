package session

import "github.com/exilekitchen/buildcraft/pkg/models"

// Synonym tables are keyed by textfold.Key output, so entries are lower-case,
// accent-free and underscore-separated. They are built once and never mutated.

var archetypeSynonyms = map[string]models.Archetype{
	// current
	"league_starter": models.ArchetypeLeagueStarter,
	"starter":        models.ArchetypeLeagueStarter,
	"leaguestarter":  models.ArchetypeLeagueStarter,
	"mapper":         models.ArchetypeMapper,
	"mapping":        models.ArchetypeMapper,
	"bossing":        models.ArchetypeBossing,
	"bosser":         models.ArchetypeBossing,
	"hybrid":         models.ArchetypeHybrid,
	// legacy "requested type"
	"league_start": models.ArchetypeLeagueStarter,
	"beginner":     models.ArchetypeLeagueStarter,
	"map_farmer":   models.ArchetypeMapper,
	"farmer":       models.ArchetypeMapper,
	"boss_killer":  models.ArchetypeBossing,
	"pinnacle":     models.ArchetypeBossing,
	"all_rounder":  models.ArchetypeHybrid,
	"allrounder":   models.ArchetypeHybrid,
	// Portuguese
	"inicio_de_liga":    models.ArchetypeLeagueStarter,
	"iniciante":         models.ArchetypeLeagueStarter,
	"mapeador":          models.ArchetypeMapper,
	"mapeamento":        models.ArchetypeMapper,
	"chefes":            models.ArchetypeBossing,
	"matador_de_chefes": models.ArchetypeBossing,
	"hibrido":           models.ArchetypeHybrid,
	"misto":             models.ArchetypeHybrid,
}

var costTierSynonyms = map[string]models.CostTier{
	// current, English
	"budget":          models.CostTierBudget,
	"cheap":           models.CostTierBudget,
	"low_budget":      models.CostTierBudget,
	"mid_tier":        models.CostTierMid,
	"mid":             models.CostTierMid,
	"midtier":         models.CostTierMid,
	"moderate":        models.CostTierMid,
	"high_investment": models.CostTierHighInvestment,
	"expensive":       models.CostTierHighInvestment,
	"high":            models.CostTierHighInvestment,
	"mirror_tier":     models.CostTierMirror,
	"mirror":          models.CostTierMirror,
	"luxury":          models.CostTierMirror,
	// current, Portuguese
	"economico":         models.CostTierBudget,
	"barato":            models.CostTierBudget,
	"orcamento_baixo":   models.CostTierBudget,
	"intermediario":     models.CostTierMid,
	"custo_medio":       models.CostTierMid,
	"moderado":          models.CostTierMid,
	"alto_investimento": models.CostTierHighInvestment,
	"caro":              models.CostTierHighInvestment,
	"nivel_espelho":     models.CostTierMirror,
	"espelho":           models.CostTierMirror,
	"luxo":              models.CostTierMirror,
	// legacy difficulty, English
	"easy":      models.CostTierBudget,
	"simple":    models.CostTierBudget,
	"medium":    models.CostTierMid,
	"normal":    models.CostTierMid,
	"hard":      models.CostTierHighInvestment,
	"difficult": models.CostTierHighInvestment,
	"expert":    models.CostTierMirror,
	"chef":      models.CostTierMirror,
	"very_hard": models.CostTierMirror,
	// legacy difficulty, Portuguese
	"facil":         models.CostTierBudget,
	"simples":       models.CostTierBudget,
	"medio":         models.CostTierMid,
	"media":         models.CostTierMid,
	"dificil":       models.CostTierHighInvestment,
	"avancado":      models.CostTierHighInvestment,
	"mestre":        models.CostTierMirror,
	"muito_dificil": models.CostTierMirror,
}

var setupTimeSynonyms = map[string]models.SetupTime{
	"quick":          models.SetupTimeQuick,
	"fast":           models.SetupTimeQuick,
	"short":          models.SetupTimeQuick,
	"rapido":         models.SetupTimeQuick,
	"pouco_tempo":    models.SetupTimeQuick,
	"plenty":         models.SetupTimePlenty,
	"plenty_of_time": models.SetupTimePlenty,
	"relaxed":        models.SetupTimePlenty,
	"long":           models.SetupTimePlenty,
	"slow":           models.SetupTimePlenty,
	"com_calma":      models.SetupTimePlenty,
	"sem_pressa":     models.SetupTimePlenty,
	"bastante_tempo": models.SetupTimePlenty,
}

// Legacy-generation spellings emitted by ToLegacy. Each value is a key of the
// matching synonym table that resolves back to the same canonical value.
var legacyArchetypeTokens = map[models.Archetype]string{
	models.ArchetypeLeagueStarter: "beginner",
	models.ArchetypeMapper:        "map_farmer",
	models.ArchetypeBossing:       "boss_killer",
	models.ArchetypeHybrid:        "all_rounder",
}

var legacyCostTierTokens = map[models.CostTier]string{
	models.CostTierBudget:         "easy",
	models.CostTierMid:            "medium",
	models.CostTierHighInvestment: "hard",
	models.CostTierMirror:         "expert",
}

var legacySetupTimeTokens = map[models.SetupTime]string{
	models.SetupTimeQuick:  "quick",
	models.SetupTimePlenty: "plenty",
}
