// Package sanitizer rewrites leaked internal enum tokens inside narrative
// text into locale-appropriate labels.
//
// Model output regularly mentions "mid_tier" or `"league_starter"` verbatim.
// Underscore-joined variants are replaced bare or wrapped in a matching quote
// pair; the quotes are consumed. Single-word canonical tokens ("mapper",
// "budget") are ordinary words too, so they are only replaced when quoted and
// spelled exactly. Labels never contain an underscore or a lower-case
// canonical token, so sanitizing is idempotent. Only narrative fields
// and the step list are touched, never enum fields or item arrays.
package sanitizer

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/exilekitchen/buildcraft/internal/fields"
	"github.com/exilekitchen/buildcraft/internal/textfold"
	"github.com/exilekitchen/buildcraft/pkg/models"
	"github.com/rs/zerolog/log"
)

// SecondaryLanguagePrefix selects the hard-coded Portuguese label table.
const SecondaryLanguagePrefix = "pt"

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// quotePairs maps an opening quote to its closing partner.
var quotePairs = map[rune]rune{
	'"':  '"',
	'\'': '\'',
	'`':  '`',
	'“':  '”',
	'‘':  '’',
	'«':  '»',
}

// Raw-payload field names, both vocabularies.
var (
	narrativeKeys = []string{"analysis_log", "analysis", "build_title", "recipe_title", "build_reasoning", "recipe_reasoning"}
	stepKeys      = []string{"build_steps", "step_by_step"}
)

// translationTitleKeys are the title fields inside each translations[] element.
var translationTitleKeys = []string{"build_title", "recipe_title"}

// Sanitizer holds the resolved label tables. It is immutable after New and
// safe for concurrent use.
type Sanitizer struct {
	variants map[string]string // folded variant → canonical token
	quoted   map[string]string // exact canonical token, matched only when quoted
	primary  map[string]string
	pt       map[string]string
}

// New builds a Sanitizer. primary overrides the primary-language label per
// canonical token; blank overrides, and overrides that would themselves be
// rewritten, fall back to the hard-coded default.
func New(primary map[string]string) *Sanitizer {
	s := &Sanitizer{
		variants: make(map[string]string),
		quoted:   make(map[string]string, len(labels)),
		primary:  make(map[string]string, len(labels)),
		pt:       make(map[string]string, len(labels)),
	}
	for _, l := range labels {
		s.quoted[l.token] = l.token
		for _, v := range l.variants {
			s.variants[textfold.Fold(v)] = l.token
		}
	}
	for _, l := range labels {
		s.pt[l.token] = l.pt
		s.primary[l.token] = l.en
		custom := strings.TrimSpace(primary[l.token])
		if custom == "" {
			continue
		}
		if !s.safeLabel(custom) {
			log.Warn().Str("token", l.token).Str("label", custom).Msg("Configured label contains an internal token, using default")
			continue
		}
		s.primary[l.token] = custom
	}
	return s
}

// Default is a Sanitizer with the hard-coded labels only.
var Default = New(nil)

// safeLabel reports whether label can never be rewritten again: it holds no
// underscore (which could glue onto neighbouring text) and no word that is a
// variant or an exact canonical token.
func (s *Sanitizer) safeLabel(label string) bool {
	if strings.Contains(label, "_") {
		return false
	}
	for _, w := range wordPattern.FindAllString(label, -1) {
		if _, ok := s.variants[textfold.Fold(w)]; ok {
			return false
		}
		if _, ok := s.quoted[w]; ok {
			return false
		}
	}
	return true
}

// Label returns the label for a canonical token in locale.
func (s *Sanitizer) Label(token, locale string) string {
	if IsSecondaryLocale(locale) {
		return s.pt[token]
	}
	return s.primary[token]
}

// IsSecondaryLocale reports whether locale selects the Portuguese table.
func IsSecondaryLocale(locale string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(locale)), SecondaryLanguagePrefix)
}

// Text rewrites every leaked token in text.
func (s *Sanitizer) Text(text, locale string) string {
	matches := wordPattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		word := text[start:end]
		lq, rq := s.quotePair(text, start, end, last)
		token, ok := s.variants[textfold.Fold(word)]
		if !ok && lq > 0 {
			token, ok = s.quoted[word]
		}
		if !ok {
			continue
		}
		start -= lq
		end += rq
		b.WriteString(text[last:start])
		b.WriteString(s.Label(token, locale))
		last = end
	}
	b.WriteString(text[last:])
	return b.String()
}

// quotePair returns the byte widths of a matching quote pair around
// text[start:end], or zeros. A quote already consumed (before last) does not
// count.
func (s *Sanitizer) quotePair(text string, start, end, last int) (int, int) {
	open, size := utf8.DecodeLastRuneInString(text[:start])
	if size == 0 || start-size < last {
		return 0, 0
	}
	closing, paired := quotePairs[open]
	if !paired {
		return 0, 0
	}
	if r, csize := utf8.DecodeRuneInString(text[end:]); csize > 0 && r == closing {
		return size, csize
	}
	return 0, 0
}

// Value sanitizes a loosely-typed narrative value. nil becomes "".
func (s *Sanitizer) Value(v any, locale string) string {
	return s.Text(fields.String(v), locale)
}

// Steps sanitizes a step list. Lists of strings or {text} objects are
// rewritten into new slices; any non-list value is returned unchanged.
func (s *Sanitizer) Steps(v any, locale string) any {
	switch t := v.(type) {
	case []string:
		out := make([]string, len(t))
		for i, step := range t {
			out[i] = s.Text(step, locale)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, step := range t {
			switch st := step.(type) {
			case string:
				out[i] = s.Text(st, locale)
			case map[string]any:
				cp := make(map[string]any, len(st))
				for k, val := range st {
					cp[k] = val
				}
				if text, ok := st["text"].(string); ok {
					cp["text"] = s.Text(text, locale)
				}
				out[i] = cp
			default:
				out[i] = step
			}
		}
		return out
	default:
		return v
	}
}

// Record sanitizes the narrative fields and steps of rec in place.
func (s *Sanitizer) Record(rec *models.BuildRecord, locale string) {
	if rec == nil {
		return
	}
	rec.AnalysisLog = s.Text(rec.AnalysisLog, locale)
	rec.BuildTitle = s.Text(rec.BuildTitle, locale)
	rec.BuildReasoning = s.Text(rec.BuildReasoning, locale)
	for i, step := range rec.BuildSteps {
		rec.BuildSteps[i] = s.Text(step, locale)
	}
	for i := range rec.Translations {
		rec.Translations[i].BuildTitle = s.Text(rec.Translations[i].BuildTitle, locale)
	}
}

// Fields sanitizes the narrative and step fields of a raw build payload in
// either vocabulary and returns a shallow copy. Other fields are untouched.
func (s *Sanitizer) Fields(raw map[string]any, locale string) map[string]any {
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		out[k] = v
	}
	for _, k := range narrativeKeys {
		if v, ok := out[k]; ok {
			out[k] = s.Value(v, locale)
		}
	}
	for _, k := range stepKeys {
		if v, ok := out[k]; ok {
			out[k] = s.Steps(v, locale)
		}
	}
	if v, ok := out["translations"]; ok {
		out["translations"] = s.translations(v, locale)
	}
	return out
}

// translations sanitizes the titles of a raw translations list, copying each
// element. Non-list values and non-object elements pass through.
func (s *Sanitizer) translations(v any, locale string) any {
	items, ok := v.([]any)
	if !ok {
		return v
	}
	out := make([]any, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			out[i] = item
			continue
		}
		cp := make(map[string]any, len(obj))
		for k, val := range obj {
			cp[k] = val
		}
		for _, k := range translationTitleKeys {
			if title, ok := obj[k].(string); ok {
				cp[k] = s.Text(title, locale)
			}
		}
		out[i] = cp
	}
	return out
}
