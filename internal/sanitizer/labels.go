package sanitizer

// label describes one canonical enum token: the snake_case spellings that may
// leak into narrative text and its human-readable label per language.
type label struct {
	token    string
	variants []string
	en       string
	pt       string
}

// labels covers every archetype, cost tier and setup-time value. Variants
// include historical (recipe-era) and Portuguese spellings; all of them
// contain an underscore, so a bare "mapper" is never rewritten. The token
// itself is also matched, but only inside a quote pair.
var labels = []label{
	{
		token:    "league_starter",
		variants: []string{"league_starter", "league_start", "inicio_de_liga"},
		en:       "League Starter",
		pt:       "Início de Liga",
	},
	{
		token:    "mapper",
		variants: []string{"map_farmer", "map_farming"},
		en:       "Mapper",
		pt:       "Mapeador",
	},
	{
		token:    "bossing",
		variants: []string{"boss_killer", "matador_de_chefes"},
		en:       "Bossing",
		pt:       "Chefões",
	},
	{
		token:    "hybrid",
		variants: []string{"all_rounder"},
		en:       "Hybrid",
		pt:       "Híbrido",
	},
	{
		token:    "budget",
		variants: []string{"low_budget", "budget_tier", "orcamento_baixo"},
		en:       "Budget",
		pt:       "Econômico",
	},
	{
		token:    "mid_tier",
		variants: []string{"mid_tier", "medium_budget", "custo_medio"},
		en:       "Mid Tier",
		pt:       "Intermediário",
	},
	{
		token:    "high_investment",
		variants: []string{"high_investment", "alto_investimento"},
		en:       "High Investment",
		pt:       "Alto Investimento",
	},
	{
		token:    "mirror_tier",
		variants: []string{"mirror_tier", "nivel_espelho", "very_hard", "muito_dificil"},
		en:       "Mirror Tier",
		pt:       "Nível Espelho",
	},
	{
		token:    "quick",
		variants: []string{"quick_setup", "pouco_tempo"},
		en:       "Quick",
		pt:       "Rápido",
	},
	{
		token:    "plenty",
		variants: []string{"plenty_of_time", "sem_pressa", "com_calma", "bastante_tempo"},
		en:       "Plenty of Time",
		pt:       "Com Calma",
	},
}

// Tokens returns the canonical tokens whose primary-language label can be
// configured.
func Tokens() []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		out = append(out, l.token)
	}
	return out
}

// DefaultLabel returns the hard-coded primary-language label for token.
func DefaultLabel(token string) string {
	for _, l := range labels {
		if l.token == token {
			return l.en
		}
	}
	return ""
}
