package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/Insomnium-Eye/oaxacahouse/internal/gallery"
)

const sessionCookieName = "OAXACA_SESSION"

// SessionData is the visitor state carried in the signed session cookie.
type SessionData struct {
	ID        string        `json:"id"`
	Locale    string        `json:"locale,omitempty"`
	Gallery   gallery.Modal `json:"gallery,omitempty"`
	CSRFToken string        `json:"csrf,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
	// internal dirty flag; not serialized
	dirty bool `json:"-"`
}

var sessionSignKey []byte
var sessionSecure bool

func init() {
	// process-ephemeral key until ConfigureSessions provides one
	sessionSignKey = make([]byte, 32)
	if _, err := rand.Read(sessionSignKey); err != nil {
		sessionSignKey = []byte("insecure-dev-key-please-set-OAXACA_SESSION__SIGNING_KEY")
	}
}

// ConfigureSessions sets the cookie signing key and whether cookies are marked Secure.
// An empty key keeps the ephemeral one, which invalidates sessions on restart.
func ConfigureSessions(signingKey string, secure bool) {
	if k := strings.TrimSpace(signingKey); k != "" {
		sessionSignKey = []byte(k)
	}
	sessionSecure = secure
}

// Session loads or initializes a session and stores it in request context.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sd, fromCookie := readSessionCookie(r)
		if sd.ID == "" {
			sd.ID = randID()
			sd.CreatedAt = time.Now().UTC()
			sd.UpdatedAt = sd.CreatedAt
			sd.CSRFToken = newCSRFToken()
			sd.dirty = true
		}
		ctx := context.WithValue(r.Context(), sessionKey, sd)
		rw := NewResponseRecorder(w)
		// ensure cookie is set just before first write if needed
		rw.SetBeforeWrite(func(w http.ResponseWriter) {
			if sd.dirty || !fromCookie {
				writeSessionCookie(w, sd)
			}
		})
		next.ServeHTTP(rw, r.WithContext(ctx))
		// If nothing was written yet (e.g., HEAD), persist cookie now
		if !rw.Wrote() && (sd.dirty || !fromCookie) {
			writeSessionCookie(w, sd)
		}
	})
}

// GetSession returns session data from context
func GetSession(r *http.Request) *SessionData {
	if v := r.Context().Value(sessionKey); v != nil {
		if sd, ok := v.(*SessionData); ok {
			return sd
		}
	}
	return &SessionData{}
}

// MarkDirty flags the session for writing at end of request
func (s *SessionData) MarkDirty() { s.dirty = true; s.UpdatedAt = time.Now().UTC() }

// readSessionCookie parses and verifies the session cookie
func readSessionCookie(r *http.Request) (*SessionData, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return &SessionData{}, false
	}
	parts := strings.Split(c.Value, ".")
	if len(parts) != 2 {
		return &SessionData{}, false
	}
	payloadB, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return &SessionData{}, false
	}
	sigB, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return &SessionData{}, false
	}
	mac := hmac.New(sha256.New, sessionSignKey)
	mac.Write(payloadB)
	if !hmac.Equal(sigB, mac.Sum(nil)) {
		return &SessionData{}, false
	}
	var sd SessionData
	if err := json.Unmarshal(payloadB, &sd); err != nil {
		return &SessionData{}, false
	}
	return &sd, true
}

func writeSessionCookie(w http.ResponseWriter, sd *SessionData) {
	b, _ := json.Marshal(sd)
	payload := base64.RawURLEncoding.EncodeToString(b)
	mac := hmac.New(sha256.New, sessionSignKey)
	mac.Write(b)
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	// httpOnly to prevent JS access
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    payload + "." + sig,
		Path:     "/",
		HttpOnly: true,
		Secure:   sessionSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(30 * 24 * time.Hour),
	})
}

func randID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
