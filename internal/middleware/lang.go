package middleware

import (
	"context"
	"net/http"

	"factorysite/internal/i18n"
)

const (
	// LangCookieName persists an explicit language choice.
	LangCookieName = "lang"

	// LangQueryParam selects a language for one request and persists it.
	LangQueryParam = "lang"

	langKey contextKey = "lang"
)

// Lang negotiates the request language from ?lang=, the lang cookie and
// Accept-Language, in that order. An explicit ?lang= is stored in the
// cookie. Responses advertise the result in Content-Language.
func Lang(fallback i18n.Lang) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			explicit := r.URL.Query().Get(LangQueryParam)
			cookie := ""
			if c, err := r.Cookie(LangCookieName); err == nil {
				cookie = c.Value
			}
			lang := i18n.Negotiate(explicit, cookie, r.Header.Get("Accept-Language"), fallback)

			if chosen, ok := i18n.Parse(explicit); ok && chosen != i18n.Lang(cookie) {
				http.SetCookie(w, &http.Cookie{
					Name:     LangCookieName,
					Value:    string(chosen),
					Path:     "/",
					MaxAge:   365 * 24 * 60 * 60,
					SameSite: http.SameSiteLaxMode,
				})
			}
			w.Header().Set("Content-Language", string(lang))
			w.Header().Add("Vary", "Accept-Language, Cookie")
			next.ServeHTTP(w, r.WithContext(WithLang(r.Context(), lang)))
		})
	}
}

// WithLang returns ctx carrying lang.
func WithLang(ctx context.Context, lang i18n.Lang) context.Context {
	return context.WithValue(ctx, langKey, lang)
}

// LangFromCtx returns the negotiated language, or i18n.Default outside
// the Lang middleware.
func LangFromCtx(ctx context.Context) i18n.Lang {
	if lang, ok := ctx.Value(langKey).(i18n.Lang); ok {
		return lang
	}
	return i18n.Default
}
