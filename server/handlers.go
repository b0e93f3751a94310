package server

import (
	"fmt"
	"net/http"

	"github.com/jrsteele09/go-login-service/users"
)

func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userCtx, ok := s.currentUser(r)
		if !ok {
			fmt.Fprintf(w, "You're not logged in.\nVisit `%s` to do so.", RouteAuthLogin)
			return
		}
		fmt.Fprintf(w, "Hey %s! You're logged in!\nYou may now access `%s`.\nLog out with `%s`.", userCtx.Name, RouteProtected, RouteAuthLogout)
	}
}

func (s *Server) ProtectedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userCtx, ok := s.currentUser(r)
		if !ok {
			http.Error(w, "You're not logged in.", http.StatusUnauthorized)
			return
		}
		fmt.Fprintf(w, "Welcome to the protected area, %s!", userCtx.Name)
	}
}

// currentUser resolves the authenticated user for the request's session
// cookie, if there is one.
func (s *Server) currentUser(r *http.Request) (users.Context, bool) {
	sessionID := cookieValue(r, sessionCookieName)
	if sessionID == "" {
		return users.Context{}, false
	}
	return s.flow.UserFor(sessionID)
}
