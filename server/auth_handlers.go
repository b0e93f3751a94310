package server

import (
	"fmt"
	"net/http"

	"github.com/jrsteele09/go-login-service/authflow"
)

// LoginHandler starts a login attempt: it stores the CSRF state under a new
// session id, hands the id to the browser and bounces it to the provider.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		redirect, err := s.flow.StartLogin(r.Context())
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		setAuthCookie(w, sessionCookieName, redirect.SessionID)
		http.Redirect(w, r, redirect.AuthURL, http.StatusFound)
	}
}

// CallbackHandler handles the provider redirect that completes a login.
func (s *Server) CallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		// Providers report user denials and their own failures here.
		if errorParam := query.Get("error"); errorParam != "" {
			http.Error(w, fmt.Sprintf("Authorization failed: %s - %s", errorParam, query.Get("error_description")), http.StatusBadRequest)
			return
		}

		code := query.Get("code")
		state := query.Get("state")
		if code == "" || state == "" {
			http.Error(w, "Missing code or state parameter", http.StatusBadRequest)
			return
		}

		sessionID := cookieValue(r, sessionCookieName)
		if sessionID == "" {
			http.Error(w, "Missing session cookie", http.StatusUnauthorized)
			return
		}

		result, err := s.flow.Callback(r.Context(), authflow.CallbackInput{
			SessionID: sessionID,
			State:     state,
			Code:      code,
		})
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		// The login session is spent; the cookie now names the
		// authenticated session instead.
		setAuthCookie(w, sessionCookieName, result.SessionID)
		setAuthCookie(w, accessTokenCookieName, result.Tokens.AccessToken)
		setAuthCookie(w, refreshTokenCookieName, result.Tokens.RefreshToken)

		http.Redirect(w, r, RouteIndex, http.StatusSeeOther)
	}
}

// LogoutHandler revokes the refresh token, clears the session's user context
// and instructs the browser to drop its cookies. A failed revocation aborts
// the logout so the caller knows the provider still considers the tokens
// live.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := cookieValue(r, sessionCookieName)
		refreshToken := cookieValue(r, refreshTokenCookieName)

		if err := s.flow.Logout(r.Context(), sessionID, refreshToken); err != nil {
			s.writeError(w, r, err)
			return
		}

		clearAuthCookie(w, sessionCookieName)
		clearAuthCookie(w, accessTokenCookieName)
		clearAuthCookie(w, refreshTokenCookieName)

		http.Redirect(w, r, RouteIndex, http.StatusSeeOther)
	}
}

// RefreshHandler trades the refresh-token cookie for a fresh access token
// and re-sets the access-token cookie.
func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		refreshToken := cookieValue(r, refreshTokenCookieName)
		if refreshToken == "" {
			http.Error(w, "Missing refresh token cookie", http.StatusUnauthorized)
			return
		}

		accessToken, err := s.flow.RefreshAccessToken(r.Context(), refreshToken)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		setAuthCookie(w, accessTokenCookieName, accessToken)
		w.WriteHeader(http.StatusNoContent)
	}
}
