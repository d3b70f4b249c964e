// Package session manages the visitor cookies: the long-lived client id
// and the per-session splash flag.
package session

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	ClientCookie = "cb_client"
	SplashCookie = "splash_seen"

	clientMaxAge = 365 * 24 * time.Hour
)

// ClientID returns the visitor's client id, issuing a new one when the
// request carries none or a malformed one.
func ClientID(w http.ResponseWriter, r *http.Request) string {
	if id, ok := PeekClientID(r); ok {
		return id
	}
	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     ClientCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(clientMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	// Later reads within the same request see the new id.
	r.AddCookie(&http.Cookie{Name: ClientCookie, Value: id})
	return id
}

// PeekClientID returns the client id without issuing one.
func PeekClientID(r *http.Request) (string, bool) {
	c, err := r.Cookie(ClientCookie)
	if err != nil {
		return "", false
	}
	if _, err := uuid.Parse(c.Value); err != nil {
		return "", false
	}
	return c.Value, true
}

// SplashSeen reports whether the splash was already shown this session.
func SplashSeen(r *http.Request) bool {
	c, err := r.Cookie(SplashCookie)
	return err == nil && c.Value == "1"
}

// MarkSplashSeen sets the session-scoped splash flag. The cookie has no
// expiry so it ends with the browser session.
func MarkSplashSeen(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SplashCookie,
		Value:    "1",
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}
