package httpapi

import (
	"net/http"
	"strconv"

	"github.com/jisho-engine/dictsearch/internal/query"
	"github.com/jisho-engine/dictsearch/internal/types"
)

// Cookie names carrying the user settings of spec.md §6. No literal
// names are given by the spec, so these were chosen here (documented
// in DESIGN.md as an Open Question resolution).
const (
	cookieLanguage     = "dictsearch_lang"
	cookieShowEnglish  = "dictsearch_show_english"
	cookieEnglishOnTop = "dictsearch_english_on_top"
	cookiePageSize     = "dictsearch_page_size"
)

// settingsFromCookies overlays cookie-carried settings onto a base
// Settings value, leaving fields untouched when the cookie is absent
// or unparseable.
func settingsFromCookies(r *http.Request, base query.Settings) query.Settings {
	settings := base

	if c, err := r.Cookie(cookieLanguage); err == nil {
		if lang, ok := types.ParseLanguage(c.Value); ok {
			settings.PreferredLanguage = lang
		}
	}
	if c, err := r.Cookie(cookieShowEnglish); err == nil {
		if b, err := strconv.ParseBool(c.Value); err == nil {
			settings.ShowEnglish = b
		}
	}
	if c, err := r.Cookie(cookieEnglishOnTop); err == nil {
		if b, err := strconv.ParseBool(c.Value); err == nil {
			settings.EnglishOnTop = b
		}
	}
	if c, err := r.Cookie(cookiePageSize); err == nil {
		if n, err := strconv.Atoi(c.Value); err == nil && n > 0 {
			settings.PageSize = n
		}
	}

	return settings
}
