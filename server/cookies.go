package server

import "net/http"

const (
	// sessionCookieName carries the login session id out to the browser and
	// the authenticated session id after a successful callback.
	sessionCookieName = "SESSION"

	accessTokenCookieName  = "access_token"
	refreshTokenCookieName = "refresh_token"
)

// setAuthCookie writes a browser-session-lifetime cookie. No MaxAge on
// purpose: the provider-side token expiry is the real authority, the cookie
// just has to outlive the browser tab.
func setAuthCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearAuthCookie tells the browser to drop a cookie.
func clearAuthCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// cookieValue reads a request cookie, returning "" when it is absent.
func cookieValue(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
