package handlers

import (
	"net/http"

	"golang.org/x/text/language"
)

// supportedLocales are the response languages. The first is the default.
var supportedLocales = []language.Tag{
	language.English,
	language.BrazilianPortuguese,
}

var localeMatcher = language.NewMatcher(supportedLocales)

// ResolveLocale picks the response locale: the locale query parameter, then
// the best Accept-Language match, then fallback (usually the session
// language), then "en".
func ResolveLocale(r *http.Request, fallback string) string {
	if q := trimmed(r.URL.Query().Get("locale")); q != "" {
		return q
	}
	if al := r.Header.Get("Accept-Language"); al != "" {
		if tags, _, err := language.ParseAcceptLanguage(al); err == nil && len(tags) > 0 {
			if _, idx, conf := localeMatcher.Match(tags...); conf != language.No {
				return supportedLocales[idx].String()
			}
		}
	}
	if f := trimmed(fallback); f != "" {
		return f
	}
	return supportedLocales[0].String()
}
