package auth

import (
	"net/http"
	"time"
)

// SessionCookieName is the one cookie every protected route reads.
const SessionCookieName = "auth-token"

// SetSessionCookie stores the session token in the client's browser.
// HttpOnly keeps it away from page scripts; Secure is enabled in
// production only so local development over plain http still works.
func SetSessionCookie(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie overwrites the cookie with an immediately expired one.
// This is a soft logout: a previously captured token stays cryptographically
// valid until its natural expiry, since the server keeps no revocation list.
func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
