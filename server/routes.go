package server

import "net/http"

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET "+RouteIndex, s.withMiddleware(s.IndexHandler()))
	s.RegisterRouteFunc("GET "+RouteProtected, s.withMiddleware(s.ProtectedHandler()))

	// LOGIN
	s.RegisterRouteFunc("GET "+RouteAuthLogin, s.withMiddleware(s.LoginHandler()))
	s.RegisterRouteFunc("GET "+RouteAuthCallback, s.withMiddleware(s.CallbackHandler()))
	s.RegisterRouteFunc("GET "+RouteAuthLogout, s.withMiddleware(s.LogoutHandler()))
	s.RegisterRouteFunc("POST "+RouteAuthRefresh, s.withMiddleware(s.RefreshHandler()))
}

func (s *Server) withMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	return ChainMiddleware(handler, s.LoggingMiddleware, s.RecoverMiddleware)
}
