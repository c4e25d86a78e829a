package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Insomnium-Eye/oaxacahouse/internal/i18n"
)

// LangCookie remembers an explicit language choice.
const LangCookie = "hl"

// Locale resolves the preferred language and stores it in the session and the `hl` cookie.
// Precedence: ?hl= query, session, cookie, Accept-Language, fallback. Answers vary on
// Accept-Language since a first visit is negotiated from it.
func Locale(bundle *i18n.Bundle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), fallbackLangKey, bundle.Fallback())
			r = r.WithContext(ctx)
			s := GetSession(r)
			if q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("hl"))); q != "" && bundle.IsSupported(q) {
				if s.Locale != q {
					s.Locale = q
					s.MarkDirty()
				}
				http.SetCookie(w, &http.Cookie{Name: LangCookie, Value: q, Path: "/", SameSite: http.SameSiteLaxMode})
			} else if s.Locale == "" || !bundle.IsSupported(s.Locale) {
				if c, err := r.Cookie(LangCookie); err == nil && bundle.IsSupported(strings.ToLower(c.Value)) {
					s.Locale = strings.ToLower(c.Value)
				} else {
					s.Locale = bundle.Resolve(r.Header.Get("Accept-Language"))
				}
				s.MarkDirty()
			}
			w.Header().Set("Content-Language", s.Locale)
			w.Header().Add("Vary", "Accept-Language")
			next.ServeHTTP(w, r)
		})
	}
}

// Lang returns current lang from session or the bundle fallback, finally "en".
func Lang(r *http.Request) string {
	if s := GetSession(r); s != nil && s.Locale != "" {
		return s.Locale
	}
	if v := r.Context().Value(fallbackLangKey); v != nil {
		if fb, ok := v.(string); ok && fb != "" {
			return fb
		}
	}
	return "en"
}
