package models

// ── Enumerations ────────────────────────────────────────────

// Archetype is a build's gameplay-role category.
type Archetype string

const (
	ArchetypeLeagueStarter Archetype = "league_starter"
	ArchetypeMapper        Archetype = "mapper"
	ArchetypeBossing       Archetype = "bossing"
	ArchetypeHybrid        Archetype = "hybrid"
)

// Archetypes lists every archetype in display order.
var Archetypes = []Archetype{ArchetypeLeagueStarter, ArchetypeMapper, ArchetypeBossing, ArchetypeHybrid}

// CostTier is a build's expected investment category.
type CostTier string

const (
	CostTierBudget         CostTier = "budget"
	CostTierMid            CostTier = "mid_tier"
	CostTierHighInvestment CostTier = "high_investment"
	CostTierMirror         CostTier = "mirror_tier"
)

// CostTiers lists every cost tier from cheapest to most expensive.
var CostTiers = []CostTier{CostTierBudget, CostTierMid, CostTierHighInvestment, CostTierMirror}

// SetupTime is the player's preference for how long a build takes to get online.
type SetupTime string

const (
	SetupTimeQuick  SetupTime = "quick"
	SetupTimePlenty SetupTime = "plenty"
)

// OutputShape selects the field-naming convention of a serialized build.
type OutputShape string

const (
	ShapeCanonical OutputShape = "canonical"
	ShapeLegacy    OutputShape = "legacy"
)

// ── Session Context ─────────────────────────────────────────

// BuildSessionContext is the canonical view of a craft request's preferences.
type BuildSessionContext struct {
	PartyMemberIDs      []string  `json:"party_member_ids"`
	StashGearGems       []string  `json:"stash_gear_gems"`
	RequestedArchetype  Archetype `json:"requested_archetype"`
	CostTierPreference  CostTier  `json:"cost_tier_preference"`
	SetupTimePreference SetupTime `json:"setup_time_preference"`
	BuildNotes          string    `json:"build_notes"`
	Language            string    `json:"language"`
}

// ── Build Record ────────────────────────────────────────────

// BuildEntry is one gear/gem/item line of a build. All fields are strings and
// never null once normalized.
type BuildEntry struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

// BuildTranslation points at a translated sibling of a build.
type BuildTranslation struct {
	ID         string `json:"id"`
	Language   string `json:"language"`
	BuildTitle string `json:"build_title"`
}

// BuildRecord is the single in-memory representation of a generated build.
// Both wire shapes are projections of this struct.
type BuildRecord struct {
	ID               string             `json:"id,omitempty"`
	AnalysisLog      string             `json:"analysis_log"`
	BuildTitle       string             `json:"build_title"`
	BuildReasoning   string             `json:"build_reasoning"`
	GearGems         []BuildEntry       `json:"gear_gems"`
	BuildItems       []BuildEntry       `json:"build_items"`
	BuildSteps       []string           `json:"build_steps"`
	ComplianceBadge  bool               `json:"compliance_badge"`
	BuildArchetype   Archetype          `json:"build_archetype"`
	BuildCostTier    CostTier           `json:"build_cost_tier"`
	SetupTime        SetupTime          `json:"setup_time"`
	SetupTimeMinutes int                `json:"setup_time_minutes"`
	BuildImage       string             `json:"build_image"`
	Language         string             `json:"language"`
	Translations     []BuildTranslation `json:"translations"`
	Model            string             `json:"model,omitempty"`
}

// Clone returns a deep copy so projections never mutate the caller's record.
func (b *BuildRecord) Clone() *BuildRecord {
	if b == nil {
		return nil
	}
	c := *b
	c.GearGems = append([]BuildEntry(nil), b.GearGems...)
	c.BuildItems = append([]BuildEntry(nil), b.BuildItems...)
	c.BuildSteps = append([]string(nil), b.BuildSteps...)
	c.Translations = append([]BuildTranslation(nil), b.Translations...)
	return &c
}

// ── Domain Guardrail ────────────────────────────────────────

// DomainAssessment is the outcome of the culinary-drift classifier.
type DomainAssessment struct {
	CulinaryHits               int      `json:"culinaryHits"`
	PoeHits                    int      `json:"poeHits"`
	HighConfidenceCulinaryHits int      `json:"highConfidenceCulinaryHits"`
	MatchedTerms               []string `json:"matchedTerms"`
	CulinaryTerms              []string `json:"culinaryTerms"`
	PoeTerms                   []string `json:"poeTerms"`
	CulinaryUnits              []string `json:"culinaryUnits"`
	IsInvalid                  bool     `json:"isInvalid"`
	Reason                     string   `json:"reason,omitempty"`
}

// ── Model Attempt Policy ────────────────────────────────────

// FailureKind classifies an AI-provider failure.
type FailureKind string

const (
	FailureQuotaExceeded  FailureKind = "quota_exceeded"
	FailureDomainMismatch FailureKind = "domain_mismatch"
	FailureModelNotFound  FailureKind = "model_not_found"
	FailureUnknown        FailureKind = "unknown"
)

// ProviderFailureClassification is the structured verdict on a provider error.
type ProviderFailureClassification struct {
	Kind              FailureKind `json:"kind"`
	RetryAfterSeconds *int        `json:"retryAfterSeconds,omitempty"`
	Status            *int        `json:"status,omitempty"`
	StatusText        string      `json:"statusText,omitempty"`
	Message           string      `json:"message,omitempty"`
}

// ModelAvailability is a snapshot of the model-availability cache.
type ModelAvailability struct {
	Chain     []string `json:"chain"`
	Available []string `json:"available,omitempty"`
	Known     bool     `json:"known"`
}
