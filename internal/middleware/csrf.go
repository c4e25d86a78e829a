package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"
)

const csrfCookieName = "csrf_token"

// CSRFHeader carries the token on htmx requests.
const CSRFHeader = "X-CSRF-Token"

// CSRFField is the form field read when the header is absent.
const CSRFField = "csrf_token"

// CSRF issues a CSRF cookie and verifies modifying requests carry the session token.
func CSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Tie token to session: use per-session token from session data
		s := GetSession(r)
		token := s.CSRFToken
		if token == "" {
			token = newCSRFToken()
			s.CSRFToken = token
			s.MarkDirty()
		}

		// double submit cookie
		needSet := true
		if c, err := r.Cookie(csrfCookieName); err == nil && c.Value == token {
			needSet = false
		}
		if needSet {
			http.SetCookie(w, &http.Cookie{
				Name:     csrfCookieName,
				Value:    token,
				Path:     "/",
				HttpOnly: false,
				Secure:   sessionSecure,
				SameSite: http.SameSiteLaxMode,
				Expires:  time.Now().Add(24 * time.Hour),
			})
		}

		if !isSafeMethod(r.Method) {
			got := r.Header.Get(CSRFHeader)
			if got == "" {
				// plain form posts when scripts are off
				got = r.PostFormValue(CSRFField)
			}
			if got == "" || got != token {
				WriteError(w, r, http.StatusForbidden, "invalid CSRF token")
				return
			}
			if c, err := r.Cookie(csrfCookieName); err != nil || c.Value != token {
				WriteError(w, r, http.StatusForbidden, "invalid CSRF token")
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

// CSRFToken returns the token templates embed in forms and hx-headers.
func CSRFToken(r *http.Request) string {
	return GetSession(r).CSRFToken
}

func newCSRFToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func isSafeMethod(m string) bool {
	switch m {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}
