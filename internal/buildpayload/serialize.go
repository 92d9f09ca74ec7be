package buildpayload

import (
	"strings"

	"github.com/exilekitchen/buildcraft/internal/sanitizer"
	"github.com/exilekitchen/buildcraft/pkg/models"
)

// CanonicalBuild is the current-generation wire shape.
type CanonicalBuild models.BuildRecord

// LegacyTranslation carries both title spellings.
type LegacyTranslation struct {
	ID          string `json:"id"`
	Language    string `json:"language"`
	BuildTitle  string `json:"build_title"`
	RecipeTitle string `json:"recipe_title"`
}

// LegacyBuild is the canonical shape plus every recipe-era alias, for
// clients that still read the old field names. Aliases carry the same values
// as their current counterparts.
type LegacyBuild struct {
	CanonicalBuild

	Analysis          string              `json:"analysis"`
	RecipeTitle       string              `json:"recipe_title"`
	RecipeReasoning   string              `json:"recipe_reasoning"`
	UsedIngredients   []models.BuildEntry `json:"used_ingredients"`
	Ingredients       []models.BuildEntry `json:"ingredients"`
	StepByStep        []string            `json:"step_by_step"`
	DietaryCompliance bool                `json:"dietary_compliance"`
	RecipeType        models.Archetype    `json:"recipe_type"`
	Difficulty        models.CostTier     `json:"difficulty"`
	PrepTime          models.SetupTime    `json:"prep_time"`
	PrepTimeMinutes   int                 `json:"prep_time_minutes"`
	RecipeImage       string              `json:"recipe_image"`
	// Shadows CanonicalBuild.Translations in the encoded output.
	Translations []LegacyTranslation `json:"translations"`
}

// ParseShape maps a query value to an output shape. Unknown → canonical.
func ParseShape(s string) models.OutputShape {
	if strings.EqualFold(strings.TrimSpace(s), string(models.ShapeLegacy)) {
		return models.ShapeLegacy
	}
	return models.ShapeCanonical
}

// Serializer projects records into a wire shape, sanitizing narrative text
// with its Sanitizer as the last step.
type Serializer struct {
	sanitizer *sanitizer.Sanitizer
}

// NewSerializer creates a Serializer. A nil sanitizer uses sanitizer.Default.
func NewSerializer(s *sanitizer.Sanitizer) *Serializer {
	if s == nil {
		s = sanitizer.Default
	}
	return &Serializer{sanitizer: s}
}

var defaultSerializer = NewSerializer(nil)

// Serialize projects rec with the default label set.
func Serialize(rec *models.BuildRecord, shape models.OutputShape, locale string) any {
	return defaultSerializer.Serialize(rec, shape, locale)
}

// Serialize returns a CanonicalBuild or a LegacyBuild. rec is never mutated.
// Enum fields keep their raw values; only narrative fields and steps are
// sanitized for locale.
func (s *Serializer) Serialize(rec *models.BuildRecord, shape models.OutputShape, locale string) any {
	c := rec.Clone()
	if c == nil {
		c = Normalize(nil)
	}
	fillSlices(c)
	s.sanitizer.Record(c, locale)

	canonical := CanonicalBuild(*c)
	if shape != models.ShapeLegacy {
		return canonical
	}
	legacy := LegacyBuild{
		CanonicalBuild:    canonical,
		Analysis:          c.AnalysisLog,
		RecipeTitle:       c.BuildTitle,
		RecipeReasoning:   c.BuildReasoning,
		UsedIngredients:   c.GearGems,
		Ingredients:       c.BuildItems,
		StepByStep:        c.BuildSteps,
		DietaryCompliance: c.ComplianceBadge,
		RecipeType:        c.BuildArchetype,
		Difficulty:        c.BuildCostTier,
		PrepTime:          c.SetupTime,
		PrepTimeMinutes:   c.SetupTimeMinutes,
		RecipeImage:       c.BuildImage,
		Translations:      make([]LegacyTranslation, 0, len(c.Translations)),
	}
	for _, tr := range c.Translations {
		legacy.Translations = append(legacy.Translations, LegacyTranslation{
			ID:          tr.ID,
			Language:    tr.Language,
			BuildTitle:  tr.BuildTitle,
			RecipeTitle: tr.BuildTitle,
		})
	}
	return legacy
}

// fillSlices replaces nil slices so they encode as [] rather than null.
func fillSlices(rec *models.BuildRecord) {
	if rec.GearGems == nil {
		rec.GearGems = []models.BuildEntry{}
	}
	if rec.BuildItems == nil {
		rec.BuildItems = []models.BuildEntry{}
	}
	if rec.BuildSteps == nil {
		rec.BuildSteps = []string{}
	}
	if rec.Translations == nil {
		rec.Translations = []models.BuildTranslation{}
	}
}
