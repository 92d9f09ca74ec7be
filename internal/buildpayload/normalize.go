// Package buildpayload turns loosely-structured provider output into a
// models.BuildRecord and projects records back out in either API shape.
//
// Normalization is total. Every field is read from its current name first and
// its legacy recipe-era alias second, each field independently, so a payload
// mixing both generations still yields a complete record.
package buildpayload

import (
	"encoding/json"
	"strings"

	"github.com/exilekitchen/buildcraft/internal/fields"
	"github.com/exilekitchen/buildcraft/internal/session"
	"github.com/exilekitchen/buildcraft/pkg/models"
)

// Field names, current first then legacy aliases.
var (
	idKeys               = []string{"id"}
	analysisKeys         = []string{"analysis_log", "analysis"}
	titleKeys            = []string{"build_title", "recipe_title"}
	reasoningKeys        = []string{"build_reasoning", "recipe_reasoning"}
	gearGemKeys          = []string{"gear_gems", "used_ingredients"}
	itemKeys             = []string{"build_items", "ingredients"}
	stepKeys             = []string{"build_steps", "step_by_step"}
	complianceKeys       = []string{"compliance_badge", "dietary_compliance"}
	archetypeKeys        = []string{"build_archetype", "recipe_type"}
	costTierKeys         = []string{"build_cost_tier", "difficulty"}
	setupTimeKeys        = []string{"setup_time", "prep_time"}
	setupTimeMinutesKeys = []string{"setup_time_minutes", "prep_time_minutes"}
	imageKeys            = []string{"build_image", "recipe_image"}
	languageKeys         = []string{"language"}
	translationsKeys     = []string{"translations"}
	modelKeys            = []string{"model"}

	entryNameKeys     = []string{"name", "ingredient", "item"}
	entryQuantityKeys = []string{"quantity", "amount", "qty"}
	entryUnitKeys     = []string{"unit", "measure"}
	stepTextKeys      = []string{"text", "step"}
)

// Normalize reads a raw build payload in either vocabulary. A nil map yields a
// fully-defaulted record.
func Normalize(raw map[string]any) *models.BuildRecord {
	rec := &models.BuildRecord{
		GearGems:       []models.BuildEntry{},
		BuildItems:     []models.BuildEntry{},
		BuildSteps:     []string{},
		BuildArchetype: session.DefaultArchetype,
		BuildCostTier:  session.DefaultCostTier,
		SetupTime:      session.DefaultSetupTime,
		Translations:   []models.BuildTranslation{},
	}

	rec.ID = text(raw, idKeys)
	rec.AnalysisLog = text(raw, analysisKeys)
	rec.BuildTitle = text(raw, titleKeys)
	rec.BuildReasoning = text(raw, reasoningKeys)
	rec.BuildImage = text(raw, imageKeys)
	rec.Language = text(raw, languageKeys)
	rec.Model = text(raw, modelKeys)

	if v, ok := fields.Lookup(raw, gearGemKeys...); ok {
		rec.GearGems = NormalizeEntries(v)
	}
	if v, ok := fields.Lookup(raw, itemKeys...); ok {
		rec.BuildItems = NormalizeEntries(v)
	}
	if v, ok := fields.Lookup(raw, stepKeys...); ok {
		rec.BuildSteps = NormalizeSteps(v)
	}
	if v, ok := fields.Lookup(raw, complianceKeys...); ok {
		rec.ComplianceBadge = fields.Bool(v)
	}
	if v, ok := fields.Lookup(raw, archetypeKeys...); ok {
		rec.BuildArchetype = session.NormalizeArchetype(v)
	}
	if v, ok := fields.Lookup(raw, costTierKeys...); ok {
		rec.BuildCostTier = session.NormalizeCostTier(v)
	}
	if v, ok := fields.Lookup(raw, setupTimeKeys...); ok {
		rec.SetupTime = session.NormalizeSetupTime(v)
	}
	if v, ok := fields.Lookup(raw, setupTimeMinutesKeys...); ok {
		if n := fields.Int(v); n > 0 {
			rec.SetupTimeMinutes = n
		}
	}
	if v, ok := fields.Lookup(raw, translationsKeys...); ok {
		rec.Translations = normalizeTranslations(v)
	}
	return rec
}

func text(raw map[string]any, keys []string) string {
	v, _ := fields.Lookup(raw, keys...)
	return strings.TrimSpace(fields.String(v))
}

// NormalizeEntries coerces an item list into BuildEntry values. Elements may
// be plain strings, JSON-encoded objects, objects, or objects whose name is
// itself a JSON-encoded object. Malformed JSON is kept verbatim as the name;
// entries with a blank name are dropped. Anything that is not a list yields an
// empty slice.
func NormalizeEntries(v any) []models.BuildEntry {
	out := []models.BuildEntry{}
	var items []any
	switch t := v.(type) {
	case []any:
		items = t
	case []string:
		for _, s := range t {
			items = append(items, s)
		}
	case []map[string]any:
		for _, m := range t {
			items = append(items, m)
		}
	case []models.BuildEntry:
		for _, e := range t {
			items = append(items, map[string]any{"name": e.Name, "quantity": e.Quantity, "unit": e.Unit})
		}
	default:
		return out
	}
	for _, item := range items {
		if e, ok := normalizeEntry(item); ok {
			out = append(out, e)
		}
	}
	return out
}

func normalizeEntry(item any) (models.BuildEntry, bool) {
	var e models.BuildEntry
	switch t := item.(type) {
	case string:
		s := strings.TrimSpace(t)
		if obj, ok := decodeObject(s); ok {
			e = entryFromObject(obj)
		} else {
			e.Name = s
		}
	case map[string]any:
		e = entryFromObject(t)
	default:
		e.Name = strings.TrimSpace(fields.String(t))
	}
	return e, e.Name != ""
}

func entryFromObject(obj map[string]any) models.BuildEntry {
	nameVal, _ := fields.Lookup(obj, entryNameKeys...)
	name := strings.TrimSpace(fields.String(nameVal))
	qty, _ := fields.Lookup(obj, entryQuantityKeys...)
	unit, _ := fields.Lookup(obj, entryUnitKeys...)
	e := models.BuildEntry{
		Name:     name,
		Quantity: strings.TrimSpace(fields.String(qty)),
		Unit:     strings.TrimSpace(fields.String(unit)),
	}
	// Some models double-encode: {"name": "{\"name\":\"Chaos Orb\",...}"}.
	if inner, ok := decodeObject(name); ok {
		nested := entryFromObject(inner)
		e.Name = nested.Name
		if e.Quantity == "" {
			e.Quantity = nested.Quantity
		}
		if e.Unit == "" {
			e.Unit = nested.Unit
		}
	}
	return e
}

// decodeObject parses s as a JSON object when it looks like one.
func decodeObject(s string) (map[string]any, bool) {
	if !strings.HasPrefix(s, "{") {
		return nil, false
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

// NormalizeSteps coerces a step list into trimmed, non-blank strings. Elements
// may be strings or {text}/{step} objects; anything that is not a list yields
// an empty slice.
func NormalizeSteps(v any) []string {
	out := []string{}
	var items []any
	switch t := v.(type) {
	case []string:
		for _, s := range t {
			items = append(items, s)
		}
	case []any:
		items = t
	default:
		return out
	}
	for _, item := range items {
		var s string
		switch st := item.(type) {
		case map[string]any:
			v, _ := fields.Lookup(st, stepTextKeys...)
			s = fields.String(v)
		default:
			s = fields.String(st)
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func normalizeTranslations(v any) []models.BuildTranslation {
	out := []models.BuildTranslation{}
	items, ok := v.([]any)
	if !ok {
		return out
	}
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		tr := models.BuildTranslation{
			ID:         text(obj, idKeys),
			Language:   text(obj, languageKeys),
			BuildTitle: text(obj, titleKeys),
		}
		if tr.ID == "" && tr.Language == "" && tr.BuildTitle == "" {
			continue
		}
		out = append(out, tr)
	}
	return out
}
