// Package guardrails provides the domain guardrail for generated builds.
// It rejects model output that drifted into the culinary domain the product
// served before it became a Path of Exile build assistant.
//
// The verdict is a relative-signal comparison, not a blacklist:
//   - high_confidence_term: a culinary term that cannot appear in a build
//   - culinary_majority: enough culinary hits with weak or absent PoE signal
//   - culinary_unit: an item line measured in a kitchen unit
//
// Strong PoE vocabulary suppresses rejection caused by a few ambiguous
// overlap terms.
package guardrails

import (
	"strings"

	"github.com/exilekitchen/buildcraft/internal/textfold"
	"github.com/exilekitchen/buildcraft/pkg/models"
)

// Reasons reported in DomainAssessment.Reason.
const (
	ReasonHighConfidence   = "high_confidence_term"
	ReasonCulinaryMajority = "culinary_majority"
	ReasonCulinaryUnit     = "culinary_unit"
)

// ── Policy ──────────────────────────────────────────────────

// Policy holds the tunable thresholds of the classifier.
type Policy struct {
	// MinHighConfidenceHits high-confidence culinary terms reject on their own.
	MinHighConfidenceHits int
	// MinCulinaryHits is the culinary hit count at which the PoE signal is
	// compared at all.
	MinCulinaryHits int
	// PoeDominanceRatio: PoE signal is weak when poeHits*ratio < culinaryHits.
	PoeDominanceRatio int
}

// DefaultPolicy is calibrated against the guardrail test corpus.
var DefaultPolicy = Policy{
	MinHighConfidenceHits: 1,
	MinCulinaryHits:       2,
	PoeDominanceRatio:     2,
}

// ── Vocabulary index ────────────────────────────────────────

type vocabulary struct {
	poe            []string
	culinary       []string
	highConfidence map[string]bool
	units          map[string]bool
}

var vocab = buildVocabulary()

func buildVocabulary() vocabulary {
	v := vocabulary{
		highConfidence: make(map[string]bool),
		units:          make(map[string]bool),
	}
	v.poe = foldTerms(poeTerms)
	v.culinary = foldTerms(append(append([]string{}, culinaryTerms...), highConfidenceCulinaryTerms...))
	for _, t := range foldTerms(highConfidenceCulinaryTerms) {
		v.highConfidence[t] = true
	}
	for _, u := range foldTerms(culinaryUnits) {
		v.units[u] = true
	}
	return v
}

// foldTerms normalizes and de-duplicates a term list, preserving order.
func foldTerms(terms []string) []string {
	seen := make(map[string]bool, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		f := strings.TrimSpace(textfold.Words(t))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// ── Classifier ──────────────────────────────────────────────

// Classifier scores build text against the PoE and culinary vocabularies.
// It is stateless and safe for concurrent use.
type Classifier struct {
	policy Policy
}

// NewClassifier creates a classifier with the given policy. Zero-valued
// thresholds fall back to DefaultPolicy.
func NewClassifier(p Policy) *Classifier {
	if p.MinHighConfidenceHits <= 0 {
		p.MinHighConfidenceHits = DefaultPolicy.MinHighConfidenceHits
	}
	if p.MinCulinaryHits <= 0 {
		p.MinCulinaryHits = DefaultPolicy.MinCulinaryHits
	}
	if p.PoeDominanceRatio <= 0 {
		p.PoeDominanceRatio = DefaultPolicy.PoeDominanceRatio
	}
	return &Classifier{policy: p}
}

// Default is a classifier using DefaultPolicy.
var Default = NewClassifier(DefaultPolicy)

// AssessText classifies a raw text blob.
func AssessText(text string) models.DomainAssessment { return Default.AssessText(text) }

// AssessBuild classifies every textual surface of a build.
func AssessBuild(rec *models.BuildRecord) models.DomainAssessment { return Default.AssessBuild(rec) }

// AssessText classifies a raw text blob.
func (c *Classifier) AssessText(text string) models.DomainAssessment {
	var s scan
	s.text(text)
	return c.verdict(&s)
}

// AssessBuild classifies title, reasoning, analysis log, item names, steps
// and translation titles, and checks item units.
func (c *Classifier) AssessBuild(rec *models.BuildRecord) models.DomainAssessment {
	var s scan
	if rec != nil {
		s.text(rec.BuildTitle)
		s.text(rec.BuildReasoning)
		s.text(rec.AnalysisLog)
		for _, step := range rec.BuildSteps {
			s.text(step)
		}
		for _, tr := range rec.Translations {
			s.text(tr.BuildTitle)
		}
		for _, entries := range [][]models.BuildEntry{rec.GearGems, rec.BuildItems} {
			for _, e := range entries {
				s.text(e.Name)
				s.unit(e.Unit)
			}
		}
	}
	return c.verdict(&s)
}

func (c *Classifier) verdict(s *scan) models.DomainAssessment {
	a := models.DomainAssessment{
		CulinaryHits:               len(s.culinary),
		PoeHits:                    len(s.poe),
		HighConfidenceCulinaryHits: s.highConfidence,
		MatchedTerms:               make([]string, 0, len(s.culinary)+len(s.units)),
		CulinaryTerms:              append([]string{}, s.culinary...),
		PoeTerms:                   append([]string{}, s.poe...),
		CulinaryUnits:              append([]string{}, s.units...),
	}
	a.MatchedTerms = append(a.MatchedTerms, s.culinary...)
	a.MatchedTerms = append(a.MatchedTerms, s.units...)

	switch {
	case a.HighConfidenceCulinaryHits >= c.policy.MinHighConfidenceHits:
		a.IsInvalid, a.Reason = true, ReasonHighConfidence
	case a.CulinaryHits >= c.policy.MinCulinaryHits &&
		(a.PoeHits == 0 || a.PoeHits*c.policy.PoeDominanceRatio < a.CulinaryHits):
		a.IsInvalid, a.Reason = true, ReasonCulinaryMajority
	case len(s.units) > 0:
		a.IsInvalid, a.Reason = true, ReasonCulinaryUnit
	}
	return a
}

// ── Scanning ────────────────────────────────────────────────

// scan accumulates distinct matched terms across surfaces. Each surface is
// matched separately so multi-word terms never span two fields.
type scan struct {
	poe            []string
	culinary       []string
	units          []string
	highConfidence int
	seen           map[string]bool
}

func (s *scan) mark(kind, term string) bool {
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	key := kind + ":" + term
	if s.seen[key] {
		return false
	}
	s.seen[key] = true
	return true
}

func (s *scan) text(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	words := textfold.Words(text)
	for _, term := range vocab.poe {
		if strings.Contains(words, " "+term+" ") && s.mark("poe", term) {
			s.poe = append(s.poe, term)
		}
	}
	for _, term := range vocab.culinary {
		if strings.Contains(words, " "+term+" ") && s.mark("culinary", term) {
			s.culinary = append(s.culinary, term)
			if vocab.highConfidence[term] {
				s.highConfidence++
			}
		}
	}
}

func (s *scan) unit(unit string) {
	u := strings.TrimSpace(textfold.Words(unit))
	if u == "" || !vocab.units[u] {
		return
	}
	if s.mark("unit", u) {
		s.units = append(s.units, u)
	}
}
